package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"facuatrack/internal/normalizer"
)

// Observation is one (date, amount) price row for a listing.
type Observation struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Persist resolves the reference entities for one normalized product and
// appends any previously-unseen price observations. The steps form a
// strict dependency chain: each resolved id feeds the next lookup.
// Re-running with identical inputs finds every row instead of
// duplicating it.
func (s *Store) Persist(
	product normalizer.Normalized,
	supermarketName, categoryName, sourceURL, listedName string,
	observations []Observation,
) error {
	brandID, err := s.FindOrCreateBrand(product.Brand)
	if err != nil {
		return fmt.Errorf("failed to resolve brand: %w", err)
	}

	supermarketID, err := s.FindOrCreateSupermarket(supermarketName)
	if err != nil {
		return fmt.Errorf("failed to resolve supermarket: %w", err)
	}

	categoryID, err := s.FindOrCreateCategory(categoryName)
	if err != nil {
		return fmt.Errorf("failed to resolve category: %w", err)
	}

	subcategoryID, err := s.FindOrCreateSubcategory(product.Subcategory, categoryID, product.Distinction, product.Eco)
	if err != nil {
		return fmt.Errorf("failed to resolve subcategory: %w", err)
	}

	displayName := DisplayName(categoryName, product.Subcategory, product.Distinction, product.Eco)

	productID, err := s.FindOrCreateProduct(
		displayName,
		&brandID,
		&subcategoryID,
		product.Quantity.Packs,
		product.Quantity.Unit,
		product.Quantity.Magnitude,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve product: %w", err)
	}

	linkID, err := s.FindOrCreateSupermarketProduct(supermarketID, productID, sourceURL, listedName)
	if err != nil {
		return fmt.Errorf("failed to resolve supermarket product: %w", err)
	}

	for _, obs := range observations {
		if err := s.InsertPrice(linkID, obs.Date, obs.Amount); err != nil {
			return fmt.Errorf("failed to insert price: %w", err)
		}
	}

	return nil
}

// DisplayName builds the product's canonical display name from category
// (underscores become spaces), subcategory and distinction. The eco flag
// deliberately does not alter the name: the subcategory row already
// carries it, and listings have always been recorded this way.
func DisplayName(categoryName, subcategory, distinction string, eco bool) string {
	parts := []string{strings.ReplaceAll(categoryName, "_", " ")}
	if subcategory != "" {
		parts = append(parts, subcategory)
	}
	if distinction != "" {
		parts = append(parts, distinction)
	}

	return strings.Join(parts, " ")
}
