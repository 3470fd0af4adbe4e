// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Supported device platforms.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// IsSupportedPlatform reports whether FCM can reach devices of the platform.
func IsSupportedPlatform(platform string) bool {
	switch platform {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
		return true
	default:
		return false
	}
}

// UserDevice represents a customer's device registered for order push notifications.
type UserDevice struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FCMToken  string    `json:"fcmToken"` // Firebase Cloud Messaging token.
	DeviceID  string    `json:"deviceId"` // Unique device identifier from the client.
	Platform  string    `json:"platform"` // ios, android or web.
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
