package service

import (
	"context"

	"morgenstar/internal/domain/entity"
)

// MailMessage is a rendered mail.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers rendered mails.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}

// OrderStatusMail carries what the status update mail shows.
type OrderStatusMail struct {
	OrderID        string
	Status         entity.OrderStatus
	TrackingNumber string
}

// MailComposer renders the customer mails in German.
type MailComposer interface {
	Welcome(to, name string) (*MailMessage, error)
	OrderConfirmation(to, name string, order *entity.Order) (*MailMessage, error)
	OrderStatusUpdate(to, name string, update *OrderStatusMail) (*MailMessage, error)
}
