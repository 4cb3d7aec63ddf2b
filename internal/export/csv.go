// Package export mirrors scraped price tables to CSV files for offline
// analysis: one file per product plus a final aggregate.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// header is the column layout shared by per-product and aggregate files.
var header = []string{
	"date", "price", "product_name", "brand_name", "quantity", "magnitude", "units",
	"subcategory", "distinction", "eco", "category_name", "supermarket_name", "url",
}

// Row is one flattened price observation with its product context.
// During a crawl ProductName is the cleaned listing name, the same
// string that names the per-product file; rows rebuilt from the
// database carry the stored display name instead, since the cleaned
// name is not persisted.
type Row struct {
	Date        string
	Amount      string
	ProductName string
	Brand       string
	Packs       int
	Magnitude   float64
	Units       string
	Subcategory string
	Distinction string
	Eco         bool
	Category    string
	Supermarket string
	URL         string
}

func (r Row) record() []string {
	return []string{
		r.Date,
		r.Amount,
		r.ProductName,
		r.Brand,
		strconv.Itoa(r.Packs),
		strconv.FormatFloat(r.Magnitude, 'f', -1, 64),
		r.Units,
		r.Subcategory,
		r.Distinction,
		strconv.FormatBool(r.Eco),
		r.Category,
		r.Supermarket,
		r.URL,
	}
}

// Writer writes CSV mirrors under a base directory, laid out as
// {base}/{supermarket}/{category}/{product}.csv.
type Writer struct {
	baseDir   string
	finalName string
}

// NewWriter creates a CSV writer rooted at baseDir.
func NewWriter(baseDir, finalName string) *Writer {
	return &Writer{
		baseDir:   baseDir,
		finalName: finalName,
	}
}

// Save writes one product's rows to its per-product file. The product
// name has already been sanitized for filesystem use by the normalizer.
func (w *Writer) Save(rows []Row, supermarket, category, product string) error {
	dir := filepath.Join(w.baseDir, supermarket, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return w.writeFile(filepath.Join(dir, product+".csv"), rows)
}

// SaveFinal writes the aggregate file with every row of the run.
func (w *Writer) SaveFinal(rows []Row) error {
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return w.writeFile(filepath.Join(w.baseDir, w.finalName), rows)
}

func (w *Writer) writeFile(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
