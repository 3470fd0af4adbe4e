package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. Addresses are stored as JSON.
type OrderModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status          string         `gorm:"type:varchar(20);not null;default:PENDING;index"`
	PaymentStatus   string         `gorm:"type:varchar(20);not null;default:PENDING"`
	PaymentIntentID string         `gorm:"type:varchar(255);index"`
	PaymentMethod   string         `gorm:"type:varchar(50)"`
	SubtotalCents   int64          `gorm:"not null"`
	DiscountCents   int64          `gorm:"not null;default:0"`
	TotalCents      int64          `gorm:"not null;check:total_cents >= 0"`
	CouponCode      string         `gorm:"type:varchar(64)"`
	Currency        string         `gorm:"type:varchar(3);not null;default:EUR"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb"`
	BillingAddress  datatypes.JSON `gorm:"type:jsonb"`
	TrackingNumber  string         `gorm:"type:varchar(100)"`
	CreatedAt       time.Time      `gorm:"index"`
	UpdatedAt       time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User  *UserModel        `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price and names are snapshots.
type OrderItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Qty          int       `gorm:"not null;check:qty > 0"`
	PriceCents   int64     `gorm:"not null"`
	ProductTitle string    `gorm:"type:varchar(200)"`
	VariantName  string    `gorm:"type:varchar(120)"`

	Variant *ProductVariantModel `gorm:"foreignKey:VariantID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentEventModel mirrors the 'payment_events' table used for webhook replay protection.
type PaymentEventModel struct {
	ID          string     `gorm:"type:varchar(255);primaryKey"`
	Type        string     `gorm:"type:varchar(100);not null"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	ProcessedAt time.Time  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentEventModel) TableName() string {
	return "payment_events"
}
