package main

import (
	"context"
	"time"

	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedVariant struct {
	sku        string
	name       string
	priceCents int64
	inStock    int
	weightGr   int
}

type seedReview struct {
	rating  int
	title   string
	comment string
}

type seedProduct struct {
	slug        string
	title       string
	subtitle    string
	description string
	brand       string
	category    string
	ratingAvg   float64
	ratingCnt   int
	variants    []seedVariant
	reviews     []seedReview
}

var brands = []model.BrandModel{
	{Slug: "morgenstar", Name: "Morgenstar"},
	{Slug: "premium-coffee", Name: "Premium Coffee Co."},
}

var categories = []model.CategoryModel{
	{Slug: "kaffee-bohnen", Name: "Kaffee Bohnen"},
	{Slug: "espresso", Name: "Espresso"},
	{Slug: "filterkaffee", Name: "Filterkaffee"},
}

var products = []seedProduct{
	{
		slug:        "morgenstar-premium-espresso",
		title:       "Morgenstar Premium Espresso",
		subtitle:    "Hochwertiger Espresso für den perfekten Start in den Tag",
		description: "Unser Premium Espresso wird aus sorgfältig ausgewählten Arabica-Bohnen hergestellt. Mit seinem kräftigen Geschmack und der cremigen Konsistenz ist er perfekt für Ihren morgendlichen Espresso oder Cappuccino.",
		brand:       "morgenstar",
		category:    "espresso",
		ratingAvg:   4.5,
		ratingCnt:   23,
		variants: []seedVariant{
			{sku: "MSE-250", name: "250g", priceCents: 1299, inStock: 50, weightGr: 250},
			{sku: "MSE-500", name: "500g", priceCents: 2399, inStock: 30, weightGr: 500},
		},
		reviews: []seedReview{
			{rating: 5, title: "Perfekter Espresso!", comment: "Wirklich ausgezeichneter Espresso. Kräftig und cremig, genau wie ich es mag."},
			{rating: 4, title: "Sehr gut", comment: "Guter Espresso, kann ich empfehlen."},
		},
	},
	{
		slug:        "colombia-single-origin",
		title:       "Colombia Single Origin",
		subtitle:    "Einzigartiger Geschmack aus den kolumbianischen Anden",
		description: "Diese Single Origin Bohnen aus Kolumbien bieten einen milden, ausgewogenen Geschmack mit fruchtigen Noten. Perfekt für Filterkaffee und French Press.",
		brand:       "premium-coffee",
		category:    "filterkaffee",
		ratingAvg:   4.8,
		ratingCnt:   15,
		variants: []seedVariant{
			{sku: "CSO-250", name: "250g", priceCents: 1499, inStock: 40, weightGr: 250},
			{sku: "CSO-500", name: "500g", priceCents: 2799, inStock: 25, weightGr: 500},
		},
		reviews: []seedReview{
			{rating: 5, title: "Fantastischer Geschmack", comment: "Die kolumbianischen Bohnen haben einen wunderbaren Geschmack. Sehr zu empfehlen!"},
		},
	},
	{
		slug:        "ethiopia-yirgacheffe",
		title:       "Ethiopia Yirgacheffe",
		subtitle:    "Exquisite Bohnen aus der Wiege des Kaffees",
		description: "Yirgacheffe-Kaffee aus Äthiopien ist bekannt für seine blumigen und zitrusartigen Aromen. Ein wahrer Genuss für Kaffee-Liebhaber.",
		brand:       "morgenstar",
		category:    "filterkaffee",
		ratingAvg:   4.7,
		ratingCnt:   31,
		variants: []seedVariant{
			{sku: "EY-250", name: "250g", priceCents: 1599, inStock: 35, weightGr: 250},
			{sku: "EY-500", name: "500g", priceCents: 2999, inStock: 20, weightGr: 500},
		},
		reviews: []seedReview{
			{rating: 5, title: "Einzigartig", comment: "Der Yirgacheffe ist wirklich etwas Besonderes. Die blumigen Noten sind wunderbar."},
		},
	},
}

var demoCoupons = []model.CouponModel{
	{Code: "WILLKOMMEN10", Description: "10% Rabatt auf die erste Bestellung", Type: string(entity.CouponTypePercentage), Value: 10},
	{Code: "KAFFEE5", Description: "5 € Rabatt ab 30 € Bestellwert", Type: string(entity.CouponTypeFixed), Value: 500, MinOrderValue: ptr(int64(3000))},
}

// seedCatalog is idempotent: rows whose unique slug, sku or code already exists are kept as they are.
func seedCatalog(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandIDs, err := upsertBySlug(tx, brands, func(b *model.BrandModel) (string, *uuid.UUID) { return b.Slug, &b.ID })
		if err != nil {
			return errors.Wrap(err, "failed to seed brands")
		}
		categoryIDs, err := upsertBySlug(tx, categories, func(c *model.CategoryModel) (string, *uuid.UUID) { return c.Slug, &c.ID })
		if err != nil {
			return errors.Wrap(err, "failed to seed categories")
		}

		for _, p := range products {
			if err := seedOneProduct(tx, p, brandIDs, categoryIDs); err != nil {
				return errors.Wrapf(err, "failed to seed product %s", p.slug)
			}
		}

		now := time.Now()
		for i := range demoCoupons {
			demoCoupons[i].ValidFrom = now
			demoCoupons[i].IsActive = true
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&demoCoupons).Error; err != nil {
			return errors.Wrap(err, "failed to seed coupons")
		}

		return nil
	})
}

func seedOneProduct(tx *gorm.DB, p seedProduct, brandIDs, categoryIDs map[string]uuid.UUID) error {
	brandID := brandIDs[p.brand]
	row := model.ProductModel{
		Slug:        p.slug,
		Title:       p.title,
		Subtitle:    p.subtitle,
		Description: p.description,
		BrandID:     &brandID,
		RatingAvg:   p.ratingAvg,
		RatingCnt:   p.ratingCnt,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Already seeded
		return nil
	}

	variants := make([]model.ProductVariantModel, 0, len(p.variants))
	for _, v := range p.variants {
		variants = append(variants, model.ProductVariantModel{
			ProductID:  row.ID,
			SKU:        v.sku,
			Name:       v.name,
			PriceCents: v.priceCents,
			InStock:    v.inStock,
			WeightGr:   v.weightGr,
		})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&variants).Error; err != nil {
		return err
	}

	category := &model.CategoryModel{ID: categoryIDs[p.category]}
	if err := tx.Model(&row).Association("Categories").Append(category); err != nil {
		return err
	}

	reviews := make([]model.ReviewModel, 0, len(p.reviews))
	for _, r := range p.reviews {
		reviews = append(reviews, model.ReviewModel{
			ProductID: row.ID,
			Rating:    r.rating,
			Title:     r.title,
			Comment:   r.comment,
			Verified:  true,
		})
	}
	if len(reviews) == 0 {
		return nil
	}

	return tx.Create(&reviews).Error
}

// upsertBySlug inserts missing rows and returns the ids of all rows keyed by slug.
func upsertBySlug[T any](tx *gorm.DB, rows []T, key func(*T) (string, *uuid.UUID)) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(rows))
	for i := range rows {
		row := rows[i]
		slug, id := key(&row)
		if err := tx.Where("slug = ?", slug).Attrs(row).FirstOrCreate(&row).Error; err != nil {
			return nil, err
		}
		ids[slug] = *id
	}

	return ids, nil
}

type demoUser struct {
	email    string
	name     string
	password string
	role     entity.Role
}

var demoUsers = []demoUser{
	{email: "test@morgenstar.de", name: "Test Benutzer", password: "test1234", role: entity.RoleCustomer},
	{email: "admin@morgenstar.de", name: "Shop Admin", password: "admin1234", role: entity.RoleAdmin},
}

func seedUsers(ctx context.Context, db *gorm.DB, hasher service.PasswordHasher) error {
	for _, u := range demoUsers {
		hash, err := hasher.Hash(u.password)
		if err != nil {
			return errors.Wrap(err, "failed to hash demo password")
		}

		row := model.UserModel{
			Email:        u.email,
			Name:         u.name,
			PasswordHash: hash,
			Role:         string(u.role),
		}
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return errors.Wrapf(err, "failed to seed user %s", u.email)
		}
	}

	return nil
}

func ptr[T any](v T) *T {
	return &v
}
