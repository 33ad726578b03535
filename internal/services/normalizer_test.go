package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"storefront-catalog-service/internal/feed"
	"storefront-catalog-service/internal/models"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"salon keyword", "Salon moderne", models.CategorySalons},
		{"canape maps to salons", "Canapé d'angle", models.CategorySalons},
		{"canape 3 places is claimed by the canape rule first", "Canapé 3 places", models.CategorySalons},
		{"table basse", "Table basse en chêne", models.CategoryTables},
		{"table de chevet", "Table de chevet", models.CategoryTables},
		{"lit", "Lit coffre 160", models.CategoryChambre},
		{"matelas", "Matelas mousse", models.CategoryChambre},
		{"fauteuil", "Fauteuil relax", models.CategoryCanapes},
		{"jardin", "Salon de jardin", models.CategorySalons},
		{"transat", "Transat pliable", models.CategoryJardin},
		{"chaise", "Chaise scandinave", models.CategoryChaises},
		{"coussins", "Coussins décoratifs", models.CategoryDeco},
		{"case insensitive", "TABLE BASSE", models.CategoryTables},
		{"unknown falls back to meubles", "Armoire vintage", models.CategoryMeubles},
		{"empty falls back to meubles", "", models.CategoryMeubles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCategory(tt.raw))
		})
	}
}

func TestDeriveAvailability(t *testing.T) {
	t.Run("keeps canonical order and picks max stock", func(t *testing.T) {
		cities, primary := DeriveAvailability([]models.CityStock{
			{Name: "Frimoda", Stock: 2},
			{Name: "Casa", Stock: 9},
			{Name: "Rabat", Stock: 0},
			{Name: "Marrakech", Stock: 4},
		})
		assert.Equal(t, []string{"Frimoda", "Casa", "Marrakech"}, cities)
		assert.Equal(t, "Casa", primary)
	})

	t.Run("ties resolve to the earlier canonical city", func(t *testing.T) {
		cities, primary := DeriveAvailability([]models.CityStock{
			{Name: "Frimoda", Stock: 0},
			{Name: "Casa", Stock: 7},
			{Name: "Rabat", Stock: 7},
		})
		assert.Equal(t, []string{"Casa", "Rabat"}, cities)
		assert.Equal(t, "Casa", primary)
	})

	t.Run("no stock anywhere defaults to Frimoda", func(t *testing.T) {
		cities, primary := DeriveAvailability([]models.CityStock{
			{Name: "Frimoda", Stock: 0},
			{Name: "Casa", Stock: 0},
		})
		assert.Nil(t, cities)
		assert.Equal(t, models.DefaultCity, primary)
	})

	t.Run("empty input defaults to Frimoda", func(t *testing.T) {
		cities, primary := DeriveAvailability(nil)
		assert.Nil(t, cities)
		assert.Equal(t, models.DefaultCity, primary)
	})
}

func TestExtractDimensions(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"three numbers with cm", "Canapé convertible 200 x 90 x 85 cm gris", "200 x 90 x 85 cm"},
		{"two numbers", "Table extensible 120 x 60", "120 x 60 cm"},
		{"single number", "Lit 180", "180 cm"},
		{"decimal numbers", "Tapis 2.5 x 1.5 cm", "2.5 x 1.5 cm"},
		{"mm input is still labeled cm", "Plaque 150 x 70 mm", "150 x 70 cm"},
		{"no digits", "Tapis moderne gris", ""},
		{"empty label", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDimensions(tt.label))
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	t.Run("derives the full product row", func(t *testing.T) {
		rec := &feed.SupplierRecord{
			Category:        "Canapé d'angle",
			Reference:       "SKE-1001",
			Label:           "Canapé panoramique 280 x 180 x 90 cm",
			PromoPrice:      1299.5,
			TotalStock:      12,
			StockFrimoda:    2,
			StockCasa:       10,
			TotalSales:      15,
			TotalSalesValue: 19492.5,
			RatioSKE:        "1.25",
		}

		product, err := NormalizeRecord(rec)
		assert.NoError(t, err)
		assert.Equal(t, "SKE-1001", product.Reference)
		assert.Equal(t, models.CategorySalons, product.Category)
		assert.Equal(t, "Canapé panoramique 280 x 180 x 90 cm - Canapé d'angle", product.Description)
		assert.Equal(t, 1299.5, product.PromoPrice)
		assert.Equal(t, float64(2599), product.OriginalPrice)
		assert.Equal(t, 50, product.DiscountPercentage)
		assert.Equal(t, []string{"Frimoda", "Casa"}, []string(product.AvailableCities))
		assert.Equal(t, "Casa", product.PrimaryCity)
		assert.True(t, product.IsFeatured)
		assert.False(t, product.IsAlmostSoldOut)
		if assert.NotNil(t, product.Dimensions) {
			assert.Equal(t, "280 x 180 x 90 cm", *product.Dimensions)
		}
	})

	t.Run("missing reference fails", func(t *testing.T) {
		_, err := NormalizeRecord(&feed.SupplierRecord{Label: "Chaise"})
		assert.Error(t, err)
	})

	t.Run("explicit dimensions field wins over extraction", func(t *testing.T) {
		rec := &feed.SupplierRecord{
			Reference:  "SKE-1002",
			Label:      "Table 120 x 60",
			Dimensions: "130 x 65 x 75 cm",
		}

		product, err := NormalizeRecord(rec)
		assert.NoError(t, err)
		if assert.NotNil(t, product.Dimensions) {
			assert.Equal(t, "130 x 65 x 75 cm", *product.Dimensions)
		}
	})

	t.Run("low stock flags featured and almost sold out", func(t *testing.T) {
		rec := &feed.SupplierRecord{
			Reference:  "SKE-1003",
			Label:      "Fauteuil",
			TotalStock: 2,
			TotalSales: 1,
		}

		product, err := NormalizeRecord(rec)
		assert.NoError(t, err)
		assert.True(t, product.IsFeatured)
		assert.True(t, product.IsAlmostSoldOut)
	})

	t.Run("no stock anywhere leaves no cities and default primary", func(t *testing.T) {
		rec := &feed.SupplierRecord{
			Reference:  "SKE-1004",
			Label:      "Matelas 140",
			TotalSales: 20,
		}

		product, err := NormalizeRecord(rec)
		assert.NoError(t, err)
		assert.Empty(t, product.AvailableCities)
		assert.Equal(t, models.DefaultCity, product.PrimaryCity)
	})
}
