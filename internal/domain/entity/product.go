package entity

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a coffee roaster or label.
type Brand struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// Category groups products, e.g. "espresso".
type Category struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// Product is a sellable coffee with one or more variants (pack sizes).
type Product struct {
	ID          uuid.UUID         `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	BrandID     *uuid.UUID        `json:"brandId,omitempty"`
	RatingAvg   float64           `json:"ratingAvg"`
	RatingCnt   int               `json:"ratingCnt"`
	CreatedAt   time.Time         `json:"createdAt"`
	Brand       *Brand            `json:"brand,omitempty"`
	Categories  []*Category       `json:"categories,omitempty"`
	Variants    []*ProductVariant `json:"variants,omitempty"`
	Reviews     []*Review         `json:"reviews,omitempty"`
}

// CheapestPriceCents returns the lowest variant price, or 0 without variants.
func (p *Product) CheapestPriceCents() int64 {
	var cheapest int64
	for i, v := range p.Variants {
		if i == 0 || v.PriceCents < cheapest {
			cheapest = v.PriceCents
		}
	}

	return cheapest
}

// ProductVariant is one purchasable pack of a product with its own SKU, price and stock.
type ProductVariant struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	InStock    int       `json:"inStock"`
	WeightGr   int       `json:"weightGr"`
	Product    *Product  `json:"product,omitempty"`
}

// Review is a customer rating of a product.
type Review struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"productId"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Rating    int        `json:"rating"`
	Title     string     `json:"title"`
	Comment   string     `json:"comment"`
	Verified  bool       `json:"verified"`
	CreatedAt time.Time  `json:"createdAt"`
}
