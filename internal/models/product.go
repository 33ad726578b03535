package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Canonical storefront categories. Supplier category text is mapped onto
// this closed set during sync; CategoryMeubles is the fallback.
const (
	CategorySalons  = "Salons"
	CategoryCanapes = "Canapés"
	CategoryTables  = "Tables"
	CategoryChambre = "Chambre"
	CategoryJardin  = "Jardin"
	CategoryChaises = "Chaises"
	CategoryDeco    = "Déco"
	CategoryMeubles = "Meubles"
)

// CanonicalCategories lists all categories in display order. Also used as
// the fallback category list when the product table is empty.
var CanonicalCategories = []string{
	CategorySalons,
	CategoryCanapes,
	CategoryChambre,
	CategoryTables,
	CategoryChaises,
	CategoryJardin,
	CategoryMeubles,
	CategoryDeco,
}

// Warehouse cities in canonical order. The order matters: it is the
// iteration order for availability derivation and the tie-break order when
// two cities hold equal stock.
var Cities = []string{
	"Frimoda",
	"Casa",
	"Rabat",
	"Marrakech",
	"Tanger",
	"Bouskoura",
	"Warehouse57",
}

// DefaultCity is used as primary city when no warehouse has stock.
const DefaultCity = "Frimoda"

// Product is a normalized supplier product row. Reference is the supplier
// business key and the sole upsert identity; every sync fully replaces all
// other columns for an existing reference.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_products_reference" json:"reference"`

	Name        string `gorm:"type:varchar(500);not null" json:"name"`
	Category    string `gorm:"type:varchar(50);not null;index:idx_products_category" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	// Pricing. OriginalPrice is always round(PromoPrice * 2) and the
	// discount is fixed at 50 for the storefront campaign.
	PromoPrice         float64 `gorm:"not null" json:"promoPrice"`
	OriginalPrice      float64 `gorm:"not null" json:"originalPrice"`
	DiscountPercentage int     `gorm:"not null;default:50" json:"discountPercentage"`

	TotalStock      int     `gorm:"not null;default:0;index:idx_products_total_stock" json:"totalStock"`
	TotalSales      int     `gorm:"not null;default:0" json:"totalSales"`
	TotalSalesValue float64 `gorm:"not null;default:0" json:"totalSalesValue"`

	// Ratio fields arrive from the feed as either numbers or strings and
	// are mirrored verbatim as text.
	RatioSKE   string `gorm:"type:varchar(50)" json:"ratioSKE"`
	RatioTotal string `gorm:"type:varchar(50)" json:"ratioTotal"`

	// Per-warehouse stock counts, mirrored from the feed.
	StockFrimoda     int `gorm:"not null;default:0" json:"stockFrimoda"`
	StockCasa        int `gorm:"not null;default:0" json:"stockCasa"`
	StockRabat       int `gorm:"not null;default:0" json:"stockRabat"`
	StockMarrakech   int `gorm:"not null;default:0" json:"stockMarrakech"`
	StockTanger      int `gorm:"not null;default:0" json:"stockTanger"`
	StockBouskoura   int `gorm:"not null;default:0" json:"stockBouskoura"`
	StockWarehouse57 int `gorm:"not null;default:0" json:"stockWarehouse57"`

	// Derived availability. AvailableCities keeps the canonical city order
	// and must stay consistent with the stock columns above.
	AvailableCities pq.StringArray `gorm:"type:text[]" json:"availableCities"`
	PrimaryCity     string         `gorm:"type:varchar(50);not null;default:'Frimoda'" json:"primaryCity"`

	IsFeatured      bool `gorm:"not null;default:false;index:idx_products_featured" json:"isFeatured"`
	IsAlmostSoldOut bool `gorm:"not null;default:false" json:"isAlmostSoldOut"`

	// Dimensions text, "L x l [x H] cm". Explicit feed value wins over the
	// value extracted from the product name.
	Dimensions *string `gorm:"type:varchar(100)" json:"dimensions,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// CityStocks returns the per-warehouse stock counts in canonical city order.
func (p *Product) CityStocks() []CityStock {
	return []CityStock{
		{Name: "Frimoda", Stock: p.StockFrimoda},
		{Name: "Casa", Stock: p.StockCasa},
		{Name: "Rabat", Stock: p.StockRabat},
		{Name: "Marrakech", Stock: p.StockMarrakech},
		{Name: "Tanger", Stock: p.StockTanger},
		{Name: "Bouskoura", Stock: p.StockBouskoura},
		{Name: "Warehouse57", Stock: p.StockWarehouse57},
	}
}

// CityStock pairs a warehouse city with its stock count.
type CityStock struct {
	Name  string
	Stock int
}

// StorefrontProduct is the read-API view of a product, shaped for the
// storefront pages (id is the supplier reference, not the row UUID).
type StorefrontProduct struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	OriginalPrice      float64  `json:"originalPrice"`
	DiscountedPrice    float64  `json:"discountedPrice"`
	DiscountPercentage int      `json:"discountPercentage"`
	Image              string   `json:"image"`
	Stock              int      `json:"stock"`
	IsFeatured         bool     `json:"isFeatured"`
	IsAlmostSoldOut    bool     `json:"isAlmostSoldOut"`
	Category           string   `json:"category"`
	Description        string   `json:"description"`
	Dimensions         *string  `json:"dimensions"`
	AvailableCities    []string `json:"availableCities"`
	PrimaryCity        string   `json:"primaryCity"`
}
