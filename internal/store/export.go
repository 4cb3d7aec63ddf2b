package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"facuatrack/internal/export"
)

// exportRecord is the flat scan target for the export join.
type exportRecord struct {
	Date        time.Time
	Amount      decimal.Decimal
	ProductName string
	BrandName   string
	Quantity    int
	Magnitude   float64
	Units       string
	Subcategory string
	Distinction string
	Eco         bool
	Category    string
	Supermarket string
	URL         string
}

// ExportRows flattens every stored price observation with its product
// context, ordered for stable CSV output. Products without a brand or
// subcategory export empty strings for those columns.
func (s *Store) ExportRows() ([]export.Row, error) {
	var records []exportRecord

	err := s.db.Table("prices").
		Select(`prices.date AS date,
			prices.price_amount AS amount,
			products.product_name_norm AS product_name,
			COALESCE(brands.brand_name, '') AS brand_name,
			products.quantity AS quantity,
			products.volume_weight AS magnitude,
			products.units AS units,
			COALESCE(subcategories.subcategory_name, '') AS subcategory,
			COALESCE(subcategories.distinction, '') AS distinction,
			COALESCE(subcategories.eco, false) AS eco,
			COALESCE(categories.category_name, '') AS category,
			supermarkets.supermarket_name AS supermarket,
			supermarkets_products.facua_url AS url`).
		Joins("JOIN supermarkets_products ON supermarkets_products.supermarket_product_id = prices.supermarket_product_id").
		Joins("JOIN products ON products.product_id = supermarkets_products.product_id").
		Joins("JOIN supermarkets ON supermarkets.supermarket_id = supermarkets_products.supermarket_id").
		Joins("LEFT JOIN brands ON brands.brand_id = products.brand_id").
		Joins("LEFT JOIN subcategories ON subcategories.subcategory_id = products.subcategory_id").
		Joins("LEFT JOIN categories ON categories.category_id = subcategories.category_id").
		Order("supermarkets.supermarket_name, products.product_name_norm, prices.date").
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}

	rows := make([]export.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, export.Row{
			Date:        rec.Date.Format("2006-01-02"),
			Amount:      rec.Amount.String(),
			ProductName: rec.ProductName,
			Brand:       rec.BrandName,
			Packs:       rec.Quantity,
			Magnitude:   rec.Magnitude,
			Units:       rec.Units,
			Subcategory: rec.Subcategory,
			Distinction: rec.Distinction,
			Eco:         rec.Eco,
			Category:    rec.Category,
			Supermarket: rec.Supermarket,
			URL:         rec.URL,
		})
	}

	return rows, nil
}
