package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"storefront-catalog-service/internal/models"
	"storefront-catalog-service/internal/repository"
	"storefront-catalog-service/internal/services"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Upsert(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByReference(ctx context.Context, reference string) (*models.Product, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, opts repository.ProductListOptions) ([]models.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockProductRepo) InvalidateCaches(ctx context.Context) {
	m.Called(ctx)
}

func setupTestRouter(products *mockProductRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewProductsHandler(services.NewCatalogService(products, logger))

	router := gin.New()
	router.GET("/api/v1/products", handler.List)
	router.GET("/api/v1/products/featured", handler.Featured)
	router.GET("/api/v1/products/category/:category", handler.ListByCategory)
	router.GET("/api/v1/products/:reference", handler.Get)
	router.GET("/api/v1/categories", handler.Categories)
	return router
}

func testProduct(reference, category string, stock int) models.Product {
	return models.Product{
		Reference:     reference,
		Name:          "Produit " + reference,
		Category:      category,
		PromoPrice:    499,
		OriginalPrice: 998,
		TotalStock:    stock,
		PrimaryCity:   "Casa",
	}
}

func TestListProducts(t *testing.T) {
	t.Run("returns persisted products", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("List", mock.Anything, mock.Anything).Return([]models.Product{
			testProduct("SKE-1", models.CategoryChaises, 5),
			testProduct("SKE-2", models.CategoryTables, 3),
		}, nil)

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []models.StorefrontProduct
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body, 2)
		assert.Equal(t, "SKE-1", body[0].ID)
		assert.Equal(t, float64(499), body[0].DiscountedPrice)
		assert.NotEmpty(t, body[0].Image)
	})

	t.Run("serves fallback products when the store errors", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []models.StorefrontProduct
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body, 8)
	})

	t.Run("serves fallback products when the table is empty", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("List", mock.Anything, mock.Anything).Return([]models.Product{}, nil)

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []models.StorefrontProduct
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body, 8)
	})
}

func TestListByCategory(t *testing.T) {
	t.Run("filters by category with the default page size", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("List", mock.Anything, mock.MatchedBy(func(opts repository.ProductListOptions) bool {
			return opts.Category == models.CategoryChaises && opts.InStockOnly && opts.Limit == 8
		})).Return([]models.Product{testProduct("SKE-1", models.CategoryChaises, 5)}, nil)

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/category/Chaises", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		products.AssertExpectations(t)
	})

	t.Run("category errors yield an empty list, not a failure", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/category/Chaises", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("returns a product by reference", func(t *testing.T) {
		product := testProduct("SKE-1", models.CategoryTables, 5)
		products := new(mockProductRepo)
		products.On("GetByReference", mock.Anything, "SKE-1").Return(&product, nil)

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/SKE-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body models.StorefrontProduct
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "SKE-1", body.ID)
	})

	t.Run("unknown reference is a 404", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("GetByReference", mock.Anything, "SKE-404").Return(nil, errors.New("record not found"))

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/SKE-404", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategories(t *testing.T) {
	t.Run("returns categories with stock", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("DistinctCategories", mock.Anything).Return([]string{models.CategoryChaises, models.CategoryTables}, nil)

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{models.CategoryChaises, models.CategoryTables}, body)
	})

	t.Run("falls back to the canonical list on error", func(t *testing.T) {
		products := new(mockProductRepo)
		products.On("DistinctCategories", mock.Anything).Return(nil, errors.New("db down"))

		router := setupTestRouter(products)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.CanonicalCategories, body)
	})
}
