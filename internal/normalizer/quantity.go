package normalizer

import (
	"strconv"
	"strings"
)

// Quantity holds the pack count, per-pack magnitude and base unit
// extracted from a cleaned product name. Each field carries a Defaulted
// flag so callers can tell a parsed value that happens to equal the
// default from a parse miss.
type Quantity struct {
	Packs     int
	Magnitude float64
	Unit      string // "g", "l" or empty

	PacksDefaulted     bool
	MagnitudeDefaulted bool
	UnitDefaulted      bool
}

// defaultQuantity is the complete fallback record: one pack of magnitude
// 1.0 with no unit.
func defaultQuantity() Quantity {
	return Quantity{
		Packs:              1,
		Magnitude:          1.0,
		PacksDefaulted:     true,
		MagnitudeDefaulted: true,
		UnitDefaulted:      true,
	}
}

// ExtractQuantity locates the quantity substring for the category and
// parses pack count, magnitude and unit from it. A pattern or parse miss
// on any sub-step falls back to that field's default rather than
// failing; the result is always a complete record.
func (n *Normalizer) ExtractQuantity(cleanedName, category string) Quantity {
	pattern, ok := n.tables.QuantityPatterns[category]
	if !ok {
		return defaultQuantity()
	}

	token := pattern.FindString(cleanedName)
	if token == "" {
		return defaultQuantity()
	}

	// Abbreviate unit words ("litros" -> "l") before any parsing.
	for _, rw := range n.tables.UnitAbbreviations {
		token = rw.Pattern.ReplaceAllString(token, rw.Replacement)
	}

	q := defaultQuantity()

	// Pack count: only an explicit "N x" token sets it.
	if m := n.packPattern.FindStringSubmatch(token); m != nil {
		if packs, err := strconv.Atoi(m[1]); err == nil {
			q.Packs = packs
			q.PacksDefaulted = false
		}
	}

	decimalToken := strings.ReplaceAll(token, ",", ".")
	if m := n.magnitudePattern.FindStringSubmatch(decimalToken); m != nil {
		if magnitude, err := strconv.ParseFloat(m[1], 64); err == nil {
			q.Magnitude = magnitude
			q.MagnitudeDefaulted = false
		}
	}

	if m := n.unitPattern.FindStringSubmatch(token); m != nil {
		unit := m[1]
		if base, known := n.tables.BaseUnits[unit]; known {
			q.Unit = base
			q.UnitDefaulted = false
			q.Magnitude *= n.tables.MagnitudeFactors[unit]
		}
	}

	return q
}
