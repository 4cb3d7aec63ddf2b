package store

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"facuatrack/internal/models"
)

// Each FindOrCreate method looks an entity up by its natural key and
// inserts it only when absent. Rows are never updated in place. The
// schema's composite unique indexes back these lookups, so the contract
// holds even if a concurrent writer races the insert (the loser's
// insert fails instead of duplicating).

// FindOrCreateBrand resolves a brand by name.
func (s *Store) FindOrCreateBrand(name string) (uint, error) {
	var brand models.Brand

	err := s.db.Where("brand_name = ?", name).First(&brand).Error
	if err == nil {
		return brand.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	brand = models.Brand{Name: name}
	if err := s.db.Create(&brand).Error; err != nil {
		return 0, err
	}

	s.log.Debug("brand created", "brand_id", brand.ID, "brand_name", name)

	return brand.ID, nil
}

// FindOrCreateSupermarket resolves a supermarket by name.
func (s *Store) FindOrCreateSupermarket(name string) (uint, error) {
	var supermarket models.Supermarket

	err := s.db.Where("supermarket_name = ?", name).First(&supermarket).Error
	if err == nil {
		return supermarket.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	supermarket = models.Supermarket{Name: name}
	if err := s.db.Create(&supermarket).Error; err != nil {
		return 0, err
	}

	s.log.Debug("supermarket created", "supermarket_id", supermarket.ID, "supermarket_name", name)

	return supermarket.ID, nil
}

// FindOrCreateCategory resolves a category by name.
func (s *Store) FindOrCreateCategory(name string) (uint, error) {
	var category models.Category

	err := s.db.Where("category_name = ?", name).First(&category).Error
	if err == nil {
		return category.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	category = models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return 0, err
	}

	s.log.Debug("category created", "category_id", category.ID, "category_name", name)

	return category.ID, nil
}

// FindOrCreateSubcategory resolves a subcategory by its full 4-tuple.
// The same subcategory name under a different category, distinction or
// eco flag is a distinct row.
func (s *Store) FindOrCreateSubcategory(name string, categoryID uint, distinction string, eco bool) (uint, error) {
	var subcategory models.Subcategory

	err := s.db.Where(map[string]any{
		"subcategory_name": name,
		"category_id":      categoryID,
		"distinction":      distinction,
		"eco":              eco,
	}).First(&subcategory).Error
	if err == nil {
		return subcategory.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	subcategory = models.Subcategory{
		Name:        name,
		CategoryID:  categoryID,
		Distinction: distinction,
		Eco:         eco,
	}
	if err := s.db.Create(&subcategory).Error; err != nil {
		return 0, err
	}

	s.log.Debug("subcategory created", "subcategory_id", subcategory.ID, "subcategory_name", name)

	return subcategory.ID, nil
}

// FindOrCreateProduct resolves a product by its 6-tuple natural key.
// Nil brand or subcategory ids match IS NULL, not zero.
func (s *Store) FindOrCreateProduct(name string, brandID, subcategoryID *uint, quantity int, units string, magnitude float64) (uint, error) {
	var product models.Product

	err := s.db.Where(map[string]any{
		"product_name_norm": name,
		"brand_id":          brandID,
		"subcategory_id":    subcategoryID,
		"quantity":          quantity,
		"units":             units,
		"volume_weight":     magnitude,
	}).First(&product).Error
	if err == nil {
		return product.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	product = models.Product{
		Name:          name,
		BrandID:       brandID,
		SubcategoryID: subcategoryID,
		Quantity:      quantity,
		Units:         units,
		Magnitude:     magnitude,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return 0, err
	}

	s.log.Debug("product created", "product_id", product.ID, "product_name_norm", name)

	return product.ID, nil
}

// FindOrCreateSupermarketProduct resolves the listing link by its
// 4-tuple natural key.
func (s *Store) FindOrCreateSupermarketProduct(supermarketID, productID uint, url, listedName string) (uint, error) {
	var link models.SupermarketProduct

	err := s.db.Where(map[string]any{
		"supermarket_id":           supermarketID,
		"product_id":               productID,
		"facua_url":                url,
		"product_name_supermarket": listedName,
	}).First(&link).Error
	if err == nil {
		return link.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	link = models.SupermarketProduct{
		SupermarketID: supermarketID,
		ProductID:     productID,
		URL:           url,
		ListedName:    listedName,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return 0, err
	}

	s.log.Debug("supermarket product created",
		"supermarket_product_id", link.ID,
		"product_id", productID,
		"product_name_supermarket", listedName,
	)

	return link.ID, nil
}

// InsertPrice records one observation for (listing, day). The amount is
// written only on creation: an existing row for that day keeps its
// original amount even if the newly scraped one differs.
func (s *Store) InsertPrice(supermarketProductID uint, date time.Time, amount decimal.Decimal) error {
	date = DateOnly(date)

	var price models.Price

	err := s.db.Where("supermarket_product_id = ? AND date = ?", supermarketProductID, date).
		First(&price).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	price = models.Price{
		SupermarketProductID: supermarketProductID,
		Date:                 date,
		Amount:               amount,
	}

	return s.db.Create(&price).Error
}

// DateOnly truncates a timestamp to its UTC calendar date, the prices
// table key granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
