package services

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"storefront-catalog-service/internal/feed"
	"storefront-catalog-service/internal/models"
)

// categoryRule maps a keyword group to a canonical category. Rules are
// evaluated top to bottom and the first match wins.
type categoryRule struct {
	keywords []string
	result   string
}

// categoryRules mirrors the production mapping order exactly. Note that the
// "canapé 3/4 places" rule can never fire: any label containing it also
// contains "canapé", which the first rule already claims. The order is kept
// as-is because changing it would recategorize live products.
var categoryRules = []categoryRule{
	{[]string{"salon", "canapé"}, models.CategorySalons},
	{[]string{"canapé 3 places", "canapé 4 places"}, models.CategoryCanapes},
	{[]string{"table basse", "table de salle à manger", "table d'appoint", "table de chevet"}, models.CategoryTables},
	{[]string{"lit"}, models.CategoryChambre},
	{[]string{"matelas"}, models.CategoryChambre},
	{[]string{"fauteuil"}, models.CategoryCanapes},
	{[]string{"jardin", "exterieur", "ensemble d'exterieur", "transat"}, models.CategoryJardin},
	{[]string{"chaise"}, models.CategoryChaises},
	{[]string{"coussins"}, models.CategoryDeco},
}

// NormalizeCategory maps free-text supplier category labels onto the
// canonical category set. Matching is case-insensitive substring inclusion;
// unmatched labels fall back to "Meubles".
func NormalizeCategory(rawCategory string) string {
	category := strings.ToLower(rawCategory)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(category, kw) {
				return rule.result
			}
		}
	}
	return models.CategoryMeubles
}

// DeriveAvailability computes the cities a product can ship from and the
// primary city. Available cities keep the canonical city order; the primary
// city is the one with the most stock, ties resolved by canonical order.
// With no stock anywhere the primary city defaults to Frimoda.
func DeriveAvailability(stocks []models.CityStock) (availableCities []string, primaryCity string) {
	available := make([]models.CityStock, 0, len(stocks))
	for _, cs := range stocks {
		if cs.Stock > 0 {
			available = append(available, cs)
			availableCities = append(availableCities, cs.Name)
		}
	}

	if len(available) == 0 {
		return nil, models.DefaultCity
	}

	sorted := make([]models.CityStock, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stock > sorted[j].Stock
	})

	return availableCities, sorted[0].Name
}

// Dimension patterns found in French furniture labels, most specific first.
// The mm-suffixed variants duplicate the cm ones because the optional unit
// suffix never anchors the match; the formatted output is labeled "cm"
// regardless of the unit that appeared in the label. Known quirk, kept.
var dimensionPatterns = []struct {
	re     *regexp.Regexp
	groups int
}{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*(?:cm)?`), 3},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*(?:cm)?`), 2},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:cm)?`), 1},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*(?:mm)?`), 3},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*(?:mm)?`), 2},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mm)?`), 1},
}

// dimensionFallback catches any remaining digit sequences when none of the
// explicit patterns matched.
var dimensionFallback = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:x\s*(\d+(?:\.\d+)?))?\s*(?:x\s*(\d+(?:\.\d+)?))?`)

// ExtractDimensions pulls embedded physical dimensions out of a product
// label, formatted as "A x B x C cm", "A x B cm" or "A cm". Returns the
// empty string when the label carries no digits at all. The result is
// advisory display text only.
func ExtractDimensions(label string) string {
	if label == "" {
		return ""
	}

	for _, p := range dimensionPatterns {
		m := p.re.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		switch p.groups {
		case 3:
			return fmt.Sprintf("%s x %s x %s cm", m[1], m[2], m[3])
		case 2:
			return fmt.Sprintf("%s x %s cm", m[1], m[2])
		default:
			return fmt.Sprintf("%s cm", m[1])
		}
	}

	if m := dimensionFallback.FindStringSubmatch(label); m != nil {
		switch {
		case m[3] != "":
			return fmt.Sprintf("%s x %s x %s cm", m[1], m[2], m[3])
		case m[2] != "":
			return fmt.Sprintf("%s x %s cm", m[1], m[2])
		default:
			return fmt.Sprintf("%s cm", m[1])
		}
	}

	return ""
}

// NormalizeRecord derives a full product row from one raw supplier record.
// It fails only when the supplier reference is missing, since the reference
// is the sole upsert identity.
func NormalizeRecord(rec *feed.SupplierRecord) (*models.Product, error) {
	if rec.Reference == "" {
		return nil, fmt.Errorf("record is missing 'Ref. produit'")
	}

	availableCities, primaryCity := DeriveAvailability(rec.CityStocks())

	product := &models.Product{
		Reference:          rec.Reference,
		Name:               rec.Label,
		Category:           NormalizeCategory(rec.Category),
		Description:        fmt.Sprintf("%s - %s", rec.Label, rec.Category),
		PromoPrice:         rec.PromoPrice,
		OriginalPrice:      math.Round(rec.PromoPrice * 2),
		DiscountPercentage: 50,
		TotalStock:         rec.TotalStock,
		TotalSales:         rec.TotalSales,
		TotalSalesValue:    rec.TotalSalesValue,
		RatioSKE:           string(rec.RatioSKE),
		RatioTotal:         string(rec.RatioTotal),
		StockFrimoda:       rec.StockFrimoda,
		StockCasa:          rec.StockCasa,
		StockRabat:         rec.StockRabat,
		StockMarrakech:     rec.StockMarrakech,
		StockTanger:        rec.StockTanger,
		StockBouskoura:     rec.StockBouskoura,
		StockWarehouse57:   rec.StockWarehouse57,
		AvailableCities:    availableCities,
		PrimaryCity:        primaryCity,
		IsFeatured:         rec.TotalSales > 10 || rec.TotalStock < 5,
		IsAlmostSoldOut:    rec.TotalStock < 3,
	}

	// The feed's explicit dimensions field wins over text extraction.
	dims := rec.Dimensions
	if dims == "" {
		dims = ExtractDimensions(rec.Label)
	}
	if dims != "" {
		product.Dimensions = &dims
	}

	return product, nil
}
