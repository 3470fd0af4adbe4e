package usecase

import (
	"fmt"

	"morgenstar/internal/errors"
)

// RetryableError marks a failure that should be redelivered by the message queue.
type RetryableError struct {
	err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *RetryableError) Unwrap() error {
	return e.err
}

// NewRetryableError wraps an error as retryable
func NewRetryableError(err error) error {
	if err == nil {
		return nil
	}

	return &RetryableError{err: err}
}

// IsRetryableError checks if an error is retryable
func IsRetryableError(err error) bool {
	_, ok := errors.AsType[*RetryableError](err)

	return ok
}
