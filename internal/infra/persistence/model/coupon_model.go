package model

import (
	"time"

	"github.com/google/uuid"
)

// CouponModel mirrors the 'coupons' table.
type CouponModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code          string    `gorm:"type:varchar(64);unique;not null"`
	Description   string    `gorm:"type:varchar(255)"`
	Type          string    `gorm:"type:varchar(20);not null"`
	Value         int64     `gorm:"not null;check:value > 0"`
	MinOrderValue *int64
	MaxDiscount   *int64
	UsageLimit    *int
	UsedCount     int       `gorm:"not null;default:0"`
	ValidFrom     time.Time `gorm:"not null"`
	ValidUntil    *time.Time
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}
