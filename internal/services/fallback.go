package services

import "storefront-catalog-service/internal/models"

// FallbackProducts returns the hardcoded campaign products served when the
// product table is empty or unreachable. The slice is rebuilt per call so
// callers can't mutate the catalog fallback.
func FallbackProducts() []models.StorefrontProduct {
	return []models.StorefrontProduct{
		{
			ID:                 "1",
			Name:               "Canapé d'angle moderne en cuir",
			OriginalPrice:      8999,
			DiscountedPrice:    4499,
			DiscountPercentage: 50,
			Image:              placeholderImage,
			Stock:              3,
			IsFeatured:         true,
			IsAlmostSoldOut:    true,
			Category:           models.CategoryCanapes,
			Description:        "Canapé d'angle premium en cuir véritable",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "2",
			Name:               "Table basse marocaine sculptée",
			OriginalPrice:      1299,
			DiscountedPrice:    649,
			DiscountPercentage: 50,
			Image:              categoryImages[models.CategoryTables],
			Stock:              8,
			Category:           models.CategoryTables,
			Description:        "Table basse artisanale en bois sculpté",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "3",
			Name:               "Lit king size en bois massif",
			OriginalPrice:      5999,
			DiscountedPrice:    2999,
			DiscountPercentage: 50,
			Image:              categoryImages[models.CategoryChambre],
			Stock:              2,
			IsAlmostSoldOut:    true,
			Category:           models.CategoryChambre,
			Description:        "Lit king size en bois massif de qualité supérieure",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "4",
			Name:               "Ensemble salon 7 places",
			OriginalPrice:      12999,
			DiscountedPrice:    6499,
			DiscountPercentage: 50,
			Image:              categoryImages[models.CategorySalons],
			Stock:              1,
			IsFeatured:         true,
			IsAlmostSoldOut:    true,
			Category:           models.CategorySalons,
			Description:        "Ensemble salon complet 7 places",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "5",
			Name:               "Fauteuil club en cuir",
			OriginalPrice:      2999,
			DiscountedPrice:    1499,
			DiscountPercentage: 50,
			Image:              placeholderImage,
			Stock:              12,
			Category:           models.CategoryCanapes,
			Description:        "Fauteuil club confortable en cuir",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "6",
			Name:               "Table à manger 8 personnes",
			OriginalPrice:      3999,
			DiscountedPrice:    1999,
			DiscountPercentage: 50,
			Image:              categoryImages[models.CategoryTables],
			Stock:              5,
			Category:           models.CategoryTables,
			Description:        "Table à manger extensible 8 personnes",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "7",
			Name:               "Armoire 3 portes en bois",
			OriginalPrice:      2499,
			DiscountedPrice:    1249,
			DiscountPercentage: 50,
			Image:              placeholderImage,
			Stock:              4,
			Category:           models.CategoryMeubles,
			Description:        "Armoire 3 portes avec miroir",
			PrimaryCity:        models.DefaultCity,
		},
		{
			ID:                 "8",
			Name:               "Ensemble jardin 6 places",
			OriginalPrice:      4999,
			DiscountedPrice:    2499,
			DiscountPercentage: 50,
			Image:              categoryImages[models.CategoryJardin],
			Stock:              2,
			IsFeatured:         true,
			IsAlmostSoldOut:    true,
			Category:           models.CategoryJardin,
			Description:        "Ensemble jardin résistant aux intempéries",
			PrimaryCity:        models.DefaultCity,
		},
	}
}
