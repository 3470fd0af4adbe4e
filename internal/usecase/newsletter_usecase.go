package usecase

import "context"

// SubscribeResult tells whether a signup was new or reactivated.
type SubscribeResult string

const (
	SubscribeResultCreated     SubscribeResult = "created"
	SubscribeResultReactivated SubscribeResult = "reactivated"
)

// NewsletterUsecase defines newsletter signup.
type NewsletterUsecase interface {
	Subscribe(ctx context.Context, email, name string) (SubscribeResult, error)
	Unsubscribe(ctx context.Context, email string) error
}
