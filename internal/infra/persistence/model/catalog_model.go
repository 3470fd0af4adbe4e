package model

import (
	"time"

	"github.com/google/uuid"
)

// BrandModel mirrors the 'brands' table.
type BrandModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug string    `gorm:"type:varchar(120);unique;not null"`
	Name string    `gorm:"type:varchar(120);not null"`
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brands"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug string    `gorm:"type:varchar(120);unique;not null"`
	Name string    `gorm:"type:varchar(120);not null"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug        string     `gorm:"type:varchar(200);unique;not null"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Subtitle    string     `gorm:"type:varchar(255)"`
	Description string     `gorm:"type:text"`
	ImageURL    string     `gorm:"type:varchar(500)"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index"`
	RatingAvg   float64    `gorm:"not null;default:0"`
	RatingCnt   int        `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Brand      *BrandModel            `gorm:"foreignKey:BrandID"`
	Categories []*CategoryModel       `gorm:"many2many:product_categories;joinForeignKey:ProductID;joinReferences:CategoryID"`
	Variants   []*ProductVariantModel `gorm:"foreignKey:ProductID"`
	Reviews    []*ReviewModel         `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductVariantModel mirrors the 'product_variants' table.
type ProductVariantModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU        string    `gorm:"column:sku;type:varchar(64);unique;not null"`
	Name       string    `gorm:"type:varchar(120);not null"`
	PriceCents int64     `gorm:"not null;check:price_cents >= 0"`
	InStock    int       `gorm:"not null;default:0;check:in_stock >= 0"`
	WeightGr   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Rating    int        `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Title     string     `gorm:"type:varchar(200)"`
	Comment   string     `gorm:"type:text"`
	Verified  bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
