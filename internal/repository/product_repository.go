package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"storefront-catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cache TTL constants
const (
	productListCacheTTL = 2 * time.Minute
	categoryCacheTTL    = 30 * time.Minute

	cacheKeyPrefix = "storefront:catalog:"
)

// MaxListLimit caps the page size of product listings.
const MaxListLimit = 50

// upsertColumns are the columns replaced on every sync for an existing
// reference. created_at is deliberately absent: it is set once on insert.
var upsertColumns = []string{
	"name", "category", "description",
	"promo_price", "original_price", "discount_percentage",
	"total_stock", "total_sales", "total_sales_value",
	"ratio_ske", "ratio_total",
	"stock_frimoda", "stock_casa", "stock_rabat", "stock_marrakech",
	"stock_tanger", "stock_bouskoura", "stock_warehouse57",
	"available_cities", "primary_city",
	"is_featured", "is_almost_sold_out",
	"dimensions", "updated_at",
}

// ProductListOptions contains filters for listing products
type ProductListOptions struct {
	Category      string
	InStockOnly   bool
	FeaturedOnly  bool
	AlmostSoldOut bool
	Limit         int
}

// ProductRepositoryInterface abstracts product persistence for services
// and tests.
type ProductRepositoryInterface interface {
	Upsert(ctx context.Context, product *models.Product) error
	GetByReference(ctx context.Context, reference string) (*models.Product, error)
	List(ctx context.Context, opts ProductListOptions) ([]models.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InvalidateCaches(ctx context.Context)
}

// ProductRepository handles database operations for normalized products,
// with an optional Redis read-through cache on the listing queries.
type ProductRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB, redisClient *redis.Client) *ProductRepository {
	return &ProductRepository{db: db, redis: redisClient}
}

// Upsert inserts a product or fully replaces the row carrying the same
// reference. A single statement keeps the replace atomic per record.
func (r *ProductRepository) Upsert(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(product).Error
}

// GetByReference retrieves a product by its supplier reference
func (r *ProductRepository) GetByReference(ctx context.Context, reference string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List retrieves products with filtering, capped at MaxListLimit rows.
// Featured products sort first, then the most recently created.
func (r *ProductRepository) List(ctx context.Context, opts ProductListOptions) ([]models.Product, error) {
	limit := opts.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	cacheKey := r.listCacheKey(opts, limit)
	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.InStockOnly {
		query = query.Where("total_stock > 0")
	}
	if opts.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if opts.AlmostSoldOut {
		query = query.Where("is_almost_sold_out = ?", true)
	}

	var products []models.Product
	err := query.
		Order("is_featured DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			r.redis.Set(ctx, cacheKey, data, productListCacheTTL)
		}
	}

	return products, nil
}

// DistinctCategories returns the categories that currently have at least
// one product in stock.
func (r *ProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	cacheKey := cacheKeyPrefix + "categories"
	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("total_stock > 0").
		Distinct().
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(categories); err == nil {
			r.redis.Set(ctx, cacheKey, data, categoryCacheTTL)
		}
	}

	return categories, nil
}

// CountAll returns the total number of product rows
func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// DeleteAll clears the product table. Only the destructive full-resync
// path calls this; there is no rollback.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Product{}).Error
}

// InvalidateCaches drops the cached listing and category entries. Called
// after every sync run so readers see fresh rows.
func (r *ProductRepository) InvalidateCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

func (r *ProductRepository) listCacheKey(opts ProductListOptions, limit int) string {
	return fmt.Sprintf("%slist:%s:%t:%t:%t:%d",
		cacheKeyPrefix, opts.Category, opts.InStockOnly, opts.FeaturedOnly, opts.AlmostSoldOut, limit)
}
