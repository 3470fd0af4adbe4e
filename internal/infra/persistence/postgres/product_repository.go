package postgres

import (
	"context"
	"strings"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const productCategoriesTable = "product_categories"

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// withCatalogRelations preloads brand, categories and variants (cheapest first).
func withCatalogRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Brand").
		Preload("Categories").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("price_cents ASC")
		})
}

// List returns all products with brand, categories and variants.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := withCatalogRelations(repo.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(productModels), nil
}

// FindByID retrieves a product without relations.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySlug retrieves a product with relations and its latest verified reviews.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string, reviewLimit int) (*entity.Product, error) {
	var productM model.ProductModel

	if err := withCatalogRelations(repo.db.WithContext(ctx)).
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("verified = ?", true).Order("created_at DESC").Limit(reviewLimit)
		}).
		Where("slug = ?", slug).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// ListFeatured returns well rated products, best first.
func (repo *productRepository) ListFeatured(ctx context.Context, minRating float64, limit int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := withCatalogRelations(repo.db.WithContext(ctx)).
		Where("rating_avg >= ?", minRating).
		Order("rating_avg DESC").
		Order("rating_cnt DESC").
		Limit(limit).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return toProductDomainList(productModels), nil
}

// Search returns products matching the filter.
func (repo *productRepository) Search(ctx context.Context, filter repository.ProductSearchFilter) ([]*entity.Product, error) {
	query := withCatalogRelations(repo.db.WithContext(ctx).Model(&model.ProductModel{}))

	if filter.Query != "" {
		like := "%" + escapeLike(filter.Query) + "%"
		query = query.Where(
			"(products.title ILIKE ? OR products.description ILIKE ? OR products.subtitle ILIKE ?)",
			like, like, like,
		)
	}
	if filter.CategorySlug != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_categories pc JOIN categories c ON c.id = pc.category_id "+
				"WHERE pc.product_id = products.id AND c.slug = ?)",
			filter.CategorySlug,
		)
	}
	if filter.BrandSlug != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM brands b WHERE b.id = products.brand_id AND b.slug = ?)",
			filter.BrandSlug,
		)
	}
	if filter.MinPriceCents != nil || filter.MaxPriceCents != nil {
		conditions := []string{"v.product_id = products.id"}
		args := make([]any, 0, 2)
		if filter.MinPriceCents != nil {
			conditions = append(conditions, "v.price_cents >= ?")
			args = append(args, *filter.MinPriceCents)
		}
		if filter.MaxPriceCents != nil {
			conditions = append(conditions, "v.price_cents <= ?")
			args = append(args, *filter.MaxPriceCents)
		}
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_variants v WHERE "+strings.Join(conditions, " AND ")+")",
			args...,
		)
	}

	direction := " ASC"
	if filter.Descending {
		direction = " DESC"
	}
	switch filter.SortBy {
	case repository.SearchSortPrice:
		query = query.Order("(SELECT MIN(v.price_cents) FROM product_variants v WHERE v.product_id = products.id)" + direction)
	case repository.SearchSortRating:
		query = query.Order("products.rating_avg" + direction)
	default:
		query = query.Order("products.title" + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var productModels []*model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return toProductDomainList(productModels), nil
}

// Create persists a product with its variants and category links.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product, categoryIDs []uuid.UUID) error {
	productM := fromProductDomain(product)
	db := repo.db.WithContext(ctx)

	if err := db.Omit("Categories", "Brand", "Reviews").Create(productM).Error; err != nil {
		return translateProductWriteError(err)
	}

	if len(categoryIDs) > 0 {
		links := make([]map[string]any, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, map[string]any{
				"product_id":  productM.ID,
				"category_id": categoryID,
			})
		}
		if err := db.Table(productCategoriesTable).Create(links).Error; err != nil {
			return translateProductWriteError(err)
		}
	}

	created := toProductDomain(productM)
	product.ID = created.ID
	product.CreatedAt = created.CreatedAt
	product.Variants = created.Variants

	return nil
}

// Count returns the number of products.
func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// ListBrands returns all brands ordered by name.
func (repo *productRepository) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	var brandModels []*model.BrandModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&brandModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	brands := make([]*entity.Brand, 0, len(brandModels))
	for _, brandM := range brandModels {
		brands = append(brands, toBrandDomain(brandM))
	}

	return brands, nil
}

// ListCategories returns all categories ordered by name.
func (repo *productRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func translateProductWriteError(err error) error {
	if isUniqueConstraintViolation(err) {
		if violatesConstraintOn(err, "sku") {
			return repository.ErrDuplicateSKU
		}

		return repository.ErrDuplicateProduct
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown brand or category")
	}
	if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product data")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toBrandDomain(data *model.BrandModel) *entity.Brand {
	if data == nil {
		return nil
	}

	return &entity.Brand{ID: data.ID, Slug: data.Slug, Name: data.Name}
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{ID: data.ID, Slug: data.Slug, Name: data.Name}
}

func toProductDomainList(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, productM := range data {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ID:          data.ID,
		Slug:        data.Slug,
		Title:       data.Title,
		Subtitle:    data.Subtitle,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		BrandID:     data.BrandID,
		RatingAvg:   data.RatingAvg,
		RatingCnt:   data.RatingCnt,
		CreatedAt:   data.CreatedAt,
		Brand:       toBrandDomain(data.Brand),
	}

	for _, categoryM := range data.Categories {
		product.Categories = append(product.Categories, toCategoryDomain(categoryM))
	}
	for _, variantM := range data.Variants {
		// Variants nested under their product do not repeat the product.
		product.Variants = append(product.Variants, toVariantDomain(variantM, false))
	}
	for _, reviewM := range data.Reviews {
		product.Reviews = append(product.Reviews, toReviewDomain(reviewM))
	}

	return product
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	productM := &model.ProductModel{
		ID:          data.ID,
		Slug:        data.Slug,
		Title:       data.Title,
		Subtitle:    data.Subtitle,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		BrandID:     data.BrandID,
		RatingAvg:   data.RatingAvg,
		RatingCnt:   data.RatingCnt,
		CreatedAt:   data.CreatedAt,
	}
	for _, variant := range data.Variants {
		productM.Variants = append(productM.Variants, fromVariantDomain(variant))
	}

	return productM
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Title:     data.Title,
		Comment:   data.Comment,
		Verified:  data.Verified,
		CreatedAt: data.CreatedAt,
	}
}
