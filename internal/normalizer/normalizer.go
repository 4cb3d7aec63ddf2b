// Package normalizer turns free-text Spanish retail product names into
// structured attributes: cleaned name, brand, pack count, magnitude and
// unit, subcategory, distinction and eco flag.
package normalizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BrandOther is the sentinel brand for names matching no known token.
// It is a legitimate value, not a missing-data marker.
const BrandOther = "otras"

// SubcategoryOther is the fallback subcategory for unclassified names.
const SubcategoryOther = "otras"

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizer maps (raw product name, category) to normalized attributes.
// It is pure: no external state beyond the injected tables.
type Normalizer struct {
	tables *Tables
	brands []string

	unsafePattern    *regexp.Regexp
	packPattern      *regexp.Regexp
	unitPattern      *regexp.Regexp
	magnitudePattern *regexp.Regexp
}

// NewNormalizer creates a normalizer with the production tables.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithTables(DefaultTables())
}

// NewNormalizerWithTables creates a normalizer with custom tables.
func NewNormalizerWithTables(tables *Tables) *Normalizer {
	// Longest brand first so a longer brand containing a shorter one as
	// a substring wins. Stable sort preserves declaration order on ties.
	brands := make([]string, len(tables.Brands))
	copy(brands, tables.Brands)
	sort.SliceStable(brands, func(i, j int) bool {
		return len(brands[i]) > len(brands[j])
	})

	return &Normalizer{
		tables:           tables,
		brands:           brands,
		unsafePattern:    regexp.MustCompile(`[<>:"/\\|?*]`),
		packPattern:      regexp.MustCompile(`(\d+)\s?x`),
		unitPattern:      regexp.MustCompile(`\d\s?([a-z]{1,2})$`),
		magnitudePattern: regexp.MustCompile(`(?:\d+\s?x\s?)?(\d*\.?\d+)`),
	}
}

// Normalized is the complete structured outcome for one product name.
type Normalized struct {
	Name        string
	Brand       string
	Quantity    Quantity
	Subcategory string
	Distinction string
	Eco         bool
}

// Normalize runs the full pipeline: cleanup, quantity extraction,
// classification and brand extraction. It never fails; fields that
// cannot be parsed fall back to their defaults.
func (n *Normalizer) Normalize(rawName, category string) Normalized {
	cleaned := n.Clean(rawName)
	subcategory, distinction, eco := n.Classify(cleaned, category)

	return Normalized{
		Name:        cleaned,
		Brand:       n.ExtractBrand(cleaned),
		Quantity:    n.ExtractQuantity(cleaned, category),
		Subcategory: subcategory,
		Distinction: distinction,
		Eco:         eco,
	}
}

// Clean lowercases, strips diacritics, removes filesystem-unsafe
// characters (the name doubles as a file-path fragment downstream) and
// applies the ordered phrase rewrites. Later steps assume this order.
func (n *Normalizer) Clean(rawName string) string {
	cleaned := strings.ToLower(rawName)
	if stripped, _, err := transform.String(stripAccents, cleaned); err == nil {
		cleaned = stripped
	}

	cleaned = n.unsafePattern.ReplaceAllString(cleaned, "")

	for _, rw := range n.tables.Rewrites {
		cleaned = rw.Pattern.ReplaceAllString(cleaned, rw.Replacement)
	}

	return strings.TrimSpace(cleaned)
}
