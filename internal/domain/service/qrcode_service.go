package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code linking to the order tracking page
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// TrackingURL returns the tracking URL encoded in the QR code
	TrackingURL(orderID uuid.UUID) string

	// ParseOrderQR extracts the order ID from scanned QR code content
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
