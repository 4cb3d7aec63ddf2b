// Package models defines the relational entities for supermarket price
// tracking. Every entity carries a composite unique index on its natural
// key so find-or-create stays correct even against concurrent writers.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand is a product brand, keyed by its normalized (lowercase,
// accent-stripped) name. Informational only: deleting a brand nulls the
// product reference instead of cascading.
type Brand struct {
	ID   uint   `gorm:"primaryKey;column:brand_id"`
	Name string `gorm:"column:brand_name;uniqueIndex;not null"`
}

func (Brand) TableName() string { return "brands" }

// Supermarket is a retail chain, keyed by the URL path segment it is
// derived from.
type Supermarket struct {
	ID   uint   `gorm:"primaryKey;column:supermarket_id"`
	Name string `gorm:"column:supermarket_name;uniqueIndex;not null"`
}

func (Supermarket) TableName() string { return "supermarkets" }

// Category is a product category (URL path segment, hyphens replaced
// with underscores).
type Category struct {
	ID   uint   `gorm:"primaryKey;column:category_id"`
	Name string `gorm:"column:category_name;uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }

// Subcategory qualifies a category with a variant name, a free-text
// distinction and an eco flag. The same subcategory name can recur under
// different (category, distinction, eco) combinations; the 4-tuple is
// the natural key.
type Subcategory struct {
	ID          uint   `gorm:"primaryKey;column:subcategory_id"`
	Name        string `gorm:"column:subcategory_name;uniqueIndex:idx_subcategory_key;not null"`
	CategoryID  uint   `gorm:"column:category_id;uniqueIndex:idx_subcategory_key;not null"`
	Distinction string `gorm:"column:distinction;uniqueIndex:idx_subcategory_key"`
	Eco         bool   `gorm:"column:eco;uniqueIndex:idx_subcategory_key"`

	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (Subcategory) TableName() string { return "subcategories" }

// Product is a normalized product identity. Quantity is the pack count,
// Units is the coarse base unit ("g", "l" or empty) and Magnitude is the
// per-pack size converted to that base unit.
type Product struct {
	ID            uint    `gorm:"primaryKey;column:product_id"`
	Name          string  `gorm:"column:product_name_norm;uniqueIndex:idx_product_key;not null"`
	BrandID       *uint   `gorm:"column:brand_id;uniqueIndex:idx_product_key"`
	SubcategoryID *uint   `gorm:"column:subcategory_id;uniqueIndex:idx_product_key"`
	Quantity      int     `gorm:"column:quantity;uniqueIndex:idx_product_key;not null"`
	Units         string  `gorm:"column:units;uniqueIndex:idx_product_key;size:2"`
	Magnitude     float64 `gorm:"column:volume_weight;uniqueIndex:idx_product_key"`

	Brand       *Brand       `gorm:"foreignKey:BrandID;constraint:OnDelete:SET NULL"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

// SupermarketProduct links a product to one supermarket's listing of it,
// keeping the source URL and the supermarket's own product name.
type SupermarketProduct struct {
	ID            uint   `gorm:"primaryKey;column:supermarket_product_id"`
	SupermarketID uint   `gorm:"column:supermarket_id;uniqueIndex:idx_supermarket_product_key;not null"`
	ProductID     uint   `gorm:"column:product_id;uniqueIndex:idx_supermarket_product_key;not null"`
	URL           string `gorm:"column:facua_url;uniqueIndex:idx_supermarket_product_key;size:512;not null"`
	ListedName    string `gorm:"column:product_name_supermarket;uniqueIndex:idx_supermarket_product_key;size:512;not null"`

	Supermarket Supermarket `gorm:"foreignKey:SupermarketID;constraint:OnDelete:CASCADE"`
	Product     Product     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (SupermarketProduct) TableName() string { return "supermarkets_products" }

// Price is one observed price for a listing on a calendar day. One row
// per (listing, day); a repeated observation for the same day is dropped.
type Price struct {
	ID                   uint            `gorm:"primaryKey;column:price_id"`
	SupermarketProductID uint            `gorm:"column:supermarket_product_id;uniqueIndex:idx_price_key;not null"`
	Date                 time.Time       `gorm:"column:date;type:date;uniqueIndex:idx_price_key;not null"`
	Amount               decimal.Decimal `gorm:"column:price_amount;type:decimal(10,2);not null"`

	SupermarketProduct SupermarketProduct `gorm:"foreignKey:SupermarketProductID;constraint:OnDelete:CASCADE"`
}

func (Price) TableName() string { return "prices" }

// All returns every model in migration order.
func All() []any {
	return []any{
		&Brand{},
		&Supermarket{},
		&Category{},
		&Subcategory{},
		&Product{},
		&SupermarketProduct{},
		&Price{},
	}
}
