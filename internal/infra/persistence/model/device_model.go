package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PushDeviceModel mirrors the 'push_devices' table: customer devices that receive order push
// notifications. A customer registers each physical device once; the FCM token is refreshed in place.
type PushDeviceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_push_devices_user_device"`
	DeviceID  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_push_devices_user_device"`
	FCMToken  string    `gorm:"column:fcm_token;type:varchar(255);not null;index"`
	Platform  string    `gorm:"type:varchar(16);not null;check:chk_push_devices_platform,platform IN ('ios','android','web')"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PushDeviceModel) TableName() string {
	return "push_devices"
}
