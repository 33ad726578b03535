package feed

import (
	"bytes"
	"encoding/json"

	"storefront-catalog-service/internal/models"
)

// FlexString decodes a JSON value that the feed serves inconsistently as
// either a number or a string (the ratio columns).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// Numbers keep their literal representation.
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// SupplierRecord is one raw product row from the inventory feed. The feed
// keys are human-readable French labels and nothing about the payload is
// trusted: fields may be absent, zero or carry the wrong type, in which
// case decoding the individual record fails and the record is skipped.
type SupplierRecord struct {
	Category         string     `json:"Catégorie"`
	Reference        string     `json:"Ref. produit"`
	Label            string     `json:"Libellé"`
	PromoPrice       float64    `json:"Prix Promo"`
	TotalStock       int        `json:"Total Stock"`
	StockFrimoda     int        `json:"Stock Frimoda"`
	StockCasa        int        `json:"Stock Casa"`
	StockRabat       int        `json:"Stock Rabat"`
	StockMarrakech   int        `json:"Stock Marrakech"`
	StockTanger      int        `json:"Stock Tanger"`
	StockBouskoura   int        `json:"Stock Bouskoura"`
	StockWarehouse57 int        `json:"Stock Warehouse57"`
	TotalSales       int        `json:"Total Sales"`
	RatioSKE         FlexString `json:"Ratio SKE"`
	RatioTotal       FlexString `json:"Ratio Total"`
	TotalSalesValue  float64    `json:"TotalSalesValue"`
	Dimensions       string     `json:"Dimensions"`
}

// CityStocks returns the per-warehouse counts in canonical city order.
func (r *SupplierRecord) CityStocks() []models.CityStock {
	return []models.CityStock{
		{Name: "Frimoda", Stock: r.StockFrimoda},
		{Name: "Casa", Stock: r.StockCasa},
		{Name: "Rabat", Stock: r.StockRabat},
		{Name: "Marrakech", Stock: r.StockMarrakech},
		{Name: "Tanger", Stock: r.StockTanger},
		{Name: "Bouskoura", Stock: r.StockBouskoura},
		{Name: "Warehouse57", Stock: r.StockWarehouse57},
	}
}
