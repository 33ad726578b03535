package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"storefront-catalog-service/internal/models"
	"storefront-catalog-service/internal/repository"
)

// defaultCategoryPageSize limits per-category listings used by the
// storefront navigation.
const defaultCategoryPageSize = 8

// placeholderImage is served for products whose category has no dedicated
// visual.
const placeholderImage = "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=500&h=400&fit=crop&q=80"

// categoryImages maps canonical categories to presentation images.
var categoryImages = map[string]string{
	models.CategorySalons:  "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=500&h=400&fit=crop&q=80",
	models.CategoryCanapes: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=500&h=400&fit=crop&q=80",
	models.CategoryTables:  "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=500&h=400&fit=crop&q=80",
	models.CategoryChambre: "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?w=500&h=400&fit=crop&q=80",
	models.CategoryJardin:  "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=500&h=400&fit=crop&q=80",
}

// CatalogService serves the already-normalized, persisted products to the
// storefront read API. Sync failures are invisible here: readers get
// whatever is currently persisted, or a small hardcoded list when the
// table is empty or unreachable.
type CatalogService struct {
	products repository.ProductRepositoryInterface
	logger   *logrus.Entry
}

// NewCatalogService creates a new catalog service
func NewCatalogService(products repository.ProductRepositoryInterface, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger.WithField("component", "catalog"),
	}
}

// ListProducts returns the main storefront listing: in-stock products,
// featured first, capped at 50. Falls back to the hardcoded campaign list
// when the table is empty or the store errors.
func (s *CatalogService) ListProducts(ctx context.Context, limit int) []models.StorefrontProduct {
	rows, err := s.products.List(ctx, repository.ProductListOptions{
		InStockOnly: true,
		Limit:       limit,
	})
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Product listing failed, serving fallback products")
		return FallbackProducts()
	}
	if len(rows) == 0 {
		return FallbackProducts()
	}
	return s.toStorefront(rows)
}

// ListByCategory returns up to 8 in-stock products of one category for the
// navigation menus; a larger limit may be requested up to the listing cap.
func (s *CatalogService) ListByCategory(ctx context.Context, category string, limit int) []models.StorefrontProduct {
	if limit <= 0 {
		limit = defaultCategoryPageSize
	}
	rows, err := s.products.List(ctx, repository.ProductListOptions{
		Category:    category,
		InStockOnly: true,
		Limit:       limit,
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"category": category,
			"error":    err.Error(),
		}).Warn("Category listing failed")
		return []models.StorefrontProduct{}
	}
	return s.toStorefront(rows)
}

// FeaturedProducts returns the products flagged during normalization as
// featured (high sales or scarce stock).
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.StorefrontProduct, error) {
	rows, err := s.products.List(ctx, repository.ProductListOptions{
		InStockOnly:  true,
		FeaturedOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return s.toStorefront(rows), nil
}

// AlmostSoldOutProducts returns products nearly out of stock
func (s *CatalogService) AlmostSoldOutProducts(ctx context.Context) ([]models.StorefrontProduct, error) {
	rows, err := s.products.List(ctx, repository.ProductListOptions{
		InStockOnly:   true,
		AlmostSoldOut: true,
	})
	if err != nil {
		return nil, err
	}
	return s.toStorefront(rows), nil
}

// GetProduct retrieves a single product by supplier reference
func (s *CatalogService) GetProduct(ctx context.Context, reference string) (*models.StorefrontProduct, error) {
	row, err := s.products.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	view := s.view(row)
	return &view, nil
}

// Categories returns the categories currently purchasable. Falls back to
// the canonical category list when the table is empty or unreachable.
func (s *CatalogService) Categories(ctx context.Context) []string {
	categories, err := s.products.DistinctCategories(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Category query failed, serving canonical categories")
		return models.CanonicalCategories
	}
	if len(categories) == 0 {
		return models.CanonicalCategories
	}
	return categories
}

func (s *CatalogService) toStorefront(rows []models.Product) []models.StorefrontProduct {
	views := make([]models.StorefrontProduct, 0, len(rows))
	for i := range rows {
		views = append(views, s.view(&rows[i]))
	}
	return views
}

func (s *CatalogService) view(p *models.Product) models.StorefrontProduct {
	image, ok := categoryImages[p.Category]
	if !ok {
		image = placeholderImage
	}
	return models.StorefrontProduct{
		ID:                 p.Reference,
		Name:               p.Name,
		OriginalPrice:      p.OriginalPrice,
		DiscountedPrice:    p.PromoPrice,
		DiscountPercentage: p.DiscountPercentage,
		Image:              image,
		Stock:              p.TotalStock,
		IsFeatured:         p.IsFeatured,
		IsAlmostSoldOut:    p.IsAlmostSoldOut,
		Category:           p.Category,
		Description:        p.Description,
		Dimensions:         p.Dimensions,
		AvailableCities:    p.AvailableCities,
		PrimaryCity:        p.PrimaryCity,
	}
}
