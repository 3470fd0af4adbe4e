package usecase

import "morgenstar/internal/domain/service"

// NotificationUsecase turns shop events into customer mails and push messages.
// Transient failures are returned as RetryableError.
type NotificationUsecase interface {
	service.EventHandler
}
