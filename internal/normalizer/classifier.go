package normalizer

import "strings"

// Category names as they appear after URL-segment derivation.
const (
	CategoryOliveOil     = "aceite_de_oliva"
	CategorySunflowerOil = "aceite_de_girasol"
	CategoryMilk         = "leche"
)

// milkSuffixes are the additive distinction qualifiers, checked in fixed
// order. Any subset may append; they are not mutually exclusive.
var milkSuffixes = []struct {
	token  string
	suffix string
}{
	{"lactosa", "sin lactosa"},
	{"calcio", "calcio"},
	{"proteina", "proteinas"},
	{"fresca", "fresca"},
}

// Classify derives subcategory, distinction and eco flag from a cleaned
// name. Distinction is only populated for milk; eco is
// category-independent.
func (n *Normalizer) Classify(cleanedName, category string) (subcategory, distinction string, eco bool) {
	eco = isEco(cleanedName)

	switch category {
	case CategorySunflowerOil:
		if strings.Contains(cleanedName, "freir") {
			return "freir", "", eco
		}

		return "normal", "", eco

	case CategoryOliveOil:
		// Products preserved IN oil are not oil themselves.
		if strings.Contains(cleanedName, "en aceite") || strings.Contains(cleanedName, "con aceite") {
			return SubcategoryOther, "", eco
		}

		return oliveOilSubcategory(cleanedName), "", eco

	case CategoryMilk:
		return milkSubcategory(cleanedName), milkDistinction(cleanedName), eco
	}

	return SubcategoryOther, "", eco
}

// isEco reports whether the name carries the standalone "eco" token or
// the "ecologic" stem.
func isEco(cleanedName string) bool {
	if strings.Contains(cleanedName, "ecologic") {
		return true
	}

	return strings.Contains(" "+cleanedName+" ", " eco ")
}

// oliveOilSubcategory checks grades in priority order; "virgen extra"
// must precede "virgen" since it is a superstring.
func oliveOilSubcategory(cleanedName string) string {
	switch {
	case strings.Contains(cleanedName, "virgen extra"):
		return "virgen extra"
	case strings.Contains(cleanedName, "virgen"):
		return "virgen"
	case strings.Contains(cleanedName, "intenso"):
		return "intenso"
	}

	return "suave"
}

// milkSubcategory checks animal origin in priority order; a generic
// "leche" token implies cow's milk.
func milkSubcategory(cleanedName string) string {
	switch {
	case strings.Contains(cleanedName, "cabra"):
		return "cabra"
	case strings.Contains(cleanedName, "vaca"):
		return "vaca"
	case strings.Contains(cleanedName, "condensada"):
		return "condensada"
	case strings.Contains(cleanedName, "leche"):
		return "vaca"
	}

	return SubcategoryOther
}

// milkDistinction resolves the mutually exclusive fat-content primary
// ("semidesnatada" before "desnatada": the former contains the latter),
// then appends the additive suffixes in fixed order.
func milkDistinction(cleanedName string) string {
	var primary string

	switch {
	case strings.Contains(cleanedName, "semidesnatada"):
		primary = "semidesnatada"
	case strings.Contains(cleanedName, "desnatada"):
		primary = "desnatada"
	case strings.Contains(cleanedName, "entera"):
		primary = "entera"
	}

	parts := make([]string, 0, len(milkSuffixes)+1)
	if primary != "" {
		parts = append(parts, primary)
	}

	for _, s := range milkSuffixes {
		if strings.Contains(cleanedName, s.token) {
			parts = append(parts, s.suffix)
		}
	}

	return strings.Join(parts, " ")
}
