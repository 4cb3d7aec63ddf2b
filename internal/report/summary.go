// Package report renders end-of-run summaries as aligned text tables.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// SupermarketStats accumulates per-supermarket counters during a run.
type SupermarketStats struct {
	Products int
	Skipped  int
	Prices   int
}

// Summary accumulates the full-run counters.
type Summary struct {
	Supermarkets int
	Categories   int
	Products     int
	Skipped      int
	Prices       int
	Elapsed      time.Duration

	PerSupermarket map[string]*SupermarketStats
}

// NewSummary creates an empty run summary.
func NewSummary() *Summary {
	return &Summary{
		PerSupermarket: make(map[string]*SupermarketStats),
	}
}

// Stats returns the (created-on-demand) stats for a supermarket.
func (s *Summary) Stats(supermarket string) *SupermarketStats {
	stats, ok := s.PerSupermarket[supermarket]
	if !ok {
		stats = &SupermarketStats{}
		s.PerSupermarket[supermarket] = stats
	}

	return stats
}

// Render returns the summary as an aligned table plus totals, suitable
// for terminal output.
func (s *Summary) Render() string {
	rows := [][]string{
		{"SUPERMARKET", "PRODUCTS", "SKIPPED", "PRICES"},
	}

	names := make([]string, 0, len(s.PerSupermarket))
	for name := range s.PerSupermarket {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		stats := s.PerSupermarket[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(stats.Products),
			strconv.Itoa(stats.Skipped),
			strconv.Itoa(stats.Prices),
		})
	}

	var sb strings.Builder

	sb.WriteString(renderTable(rows))
	sb.WriteString(fmt.Sprintf(
		"\nTotals: %d supermarkets, %d categories, %d products (%d skipped), %d prices in %s\n",
		s.Supermarkets, s.Categories, s.Products, s.Skipped, s.Prices, s.Elapsed.Round(time.Second),
	))

	return sb.String()
}

// renderTable aligns rows into fixed-width columns. Widths use display
// width, not byte length, so multibyte names stay aligned.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}

			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	var sb strings.Builder

	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(cell)

			if i < len(row)-1 {
				padding := widths[i] - runewidth.StringWidth(cell)
				sb.WriteString(strings.Repeat(" ", padding+2))
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
