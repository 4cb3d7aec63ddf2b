package normalizer

import "strings"

// ExtractBrand returns the canonical brand for a cleaned name. The
// longest matching brand token wins (the token list is pre-sorted by
// descending length, stable on ties); spelling variants collapse through
// the alias table. Names matching no token get the "otras" sentinel.
func (n *Normalizer) ExtractBrand(cleanedName string) string {
	for _, brand := range n.brands {
		if strings.Contains(cleanedName, brand) {
			if canonical, ok := n.tables.BrandAliases[brand]; ok {
				return canonical
			}

			return brand
		}
	}

	return BrandOther
}
