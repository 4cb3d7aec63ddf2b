package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are the formats the site uses in price tables, day-first
// first since that is what the tables show.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
}

// ParseDate parses a price table date cell.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// ParseAmount parses a price cell into an exact decimal. The crawler
// already normalized the decimal comma to a dot.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "€"))

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unrecognized amount %q: %w", raw, err)
	}

	return amount, nil
}
