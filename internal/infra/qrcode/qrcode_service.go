package qrcode

import (
	"net/url"
	"path"
	"strings"

	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// TrackingPath is the storefront page that shows a placed order.
const TrackingPath = "/bestellung-erfolgreich/"

const defaultSize = 256

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(baseURL string, size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// TrackingURL returns <baseURL>/bestellung-erfolgreich/<orderID>.
func (s *qrcodeService) TrackingURL(orderID uuid.UUID) string {
	return s.baseURL + TrackingPath + orderID.String()
}

// GenerateOrderQR encodes the order tracking URL as a PNG QR code
func (s *qrcodeService) GenerateOrderQR(orderID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.TrackingURL(orderID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseOrderQR accepts a scanned tracking URL and returns the order ID
func (s *qrcodeService) ParseOrderQR(qrData string) (uuid.UUID, error) {
	parsed, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code URL")
	}

	dir, last := path.Split(parsed.Path)
	if !strings.HasSuffix(dir, TrackingPath) {
		return uuid.Nil, errors.Errorf("not an order tracking URL: %s", qrData)
	}

	orderID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse order ID")
	}

	return orderID, nil
}
