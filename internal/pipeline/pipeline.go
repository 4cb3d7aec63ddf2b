// Package pipeline runs the full extract-transform-load loop:
// crawl the supermarket/category/product hierarchy, normalize each
// product name, persist price observations and mirror them to CSV.
package pipeline

import (
	"fmt"
	"time"

	"facuatrack/internal/crawler"
	"facuatrack/internal/export"
	"facuatrack/internal/logger"
	"facuatrack/internal/normalizer"
	"facuatrack/internal/report"
	"facuatrack/internal/store"
)

// Site walks the scraped hierarchy. A fetch failure surfaces as an
// error; the runner skips the item and continues the crawl.
type Site interface {
	Supermarkets(baseURL string) ([]crawler.Card, error)
	Categories(supermarketURL string) ([]crawler.Card, error)
	Products(categoryURL string) ([]crawler.Card, error)
	Prices(productURL string) ([]crawler.PriceRow, error)
}

// Persister appends one product's observations to the relational store.
type Persister interface {
	Persist(product normalizer.Normalized, supermarket, category, url, listedName string, observations []store.Observation) error
}

// Sink mirrors rows to CSV. Sink failures are logged, never fatal.
type Sink interface {
	Save(rows []export.Row, supermarket, category, product string) error
	SaveFinal(rows []export.Row) error
}

// Runner drives one sequential pipeline run: one product at a time, one
// database connection for the whole run.
type Runner struct {
	site      Site
	norm      *normalizer.Normalizer
	persister Persister
	sink      Sink
	log       *logger.Logger
	baseURL   string
}

// NewRunner wires a pipeline run.
func NewRunner(site Site, norm *normalizer.Normalizer, persister Persister, sink Sink, baseURL string, log *logger.Logger) *Runner {
	return &Runner{
		site:      site,
		norm:      norm,
		persister: persister,
		sink:      sink,
		log:       log.With("component", "pipeline"),
		baseURL:   baseURL,
	}
}

// Run crawls every supermarket, category and product once, persisting
// and mirroring as it goes. Individual fetch or page misses skip the
// item; only a nil summary return means the run itself failed.
func (r *Runner) Run() (*report.Summary, error) {
	startTime := time.Now()
	summary := report.NewSummary()

	var finalRows []export.Row

	supermarkets, err := r.site.Supermarkets(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list supermarkets: %w", err)
	}

	for _, supermarketCard := range supermarkets {
		summary.Supermarkets++

		categories, err := r.site.Categories(supermarketCard.URL)
		if err != nil {
			r.log.Warn("skipping supermarket", "url", supermarketCard.URL, "error", err)

			continue
		}

		for _, categoryCard := range categories {
			summary.Categories++

			products, err := r.site.Products(categoryCard.URL)
			if err != nil {
				r.log.Warn("skipping category", "url", categoryCard.URL, "error", err)

				continue
			}

			for _, productCard := range products {
				rows := r.processProduct(productCard, summary)
				finalRows = append(finalRows, rows...)
			}
		}
	}

	if err := r.sink.SaveFinal(finalRows); err != nil {
		r.log.Warn("failed to write final CSV", "error", err)
	}

	summary.Elapsed = time.Since(startTime)

	return summary, nil
}

// processProduct handles one product card end to end and returns its
// CSV rows for the final aggregate.
func (r *Runner) processProduct(card crawler.Card, summary *report.Summary) []export.Row {
	supermarketName := crawler.SupermarketFromURL(card.URL)
	categoryName := crawler.CategoryFromURL(card.URL)
	stats := summary.Stats(supermarketName)

	summary.Products++
	stats.Products++

	r.log.Info("evaluating product",
		"n", summary.Products,
		"product", card.Name,
		"supermarket", supermarketName,
		"category", categoryName,
	)

	priceRows, err := r.site.Prices(card.URL)
	if err != nil {
		r.log.Warn("skipping product, fetch failed", "url", card.URL, "error", err)
		summary.Skipped++
		stats.Skipped++

		return nil
	}

	// No price table on the page means no data, not an error.
	if len(priceRows) == 0 {
		r.log.Debug("no price table for product", "url", card.URL)
		summary.Skipped++
		stats.Skipped++

		return nil
	}

	product := r.norm.Normalize(card.Name, categoryName)

	observations, csvRows := r.buildRows(product, priceRows, supermarketName, categoryName, card.URL)

	if err := r.persister.Persist(product, supermarketName, categoryName, card.URL, card.Name, observations); err != nil {
		r.log.Error("failed to persist product", "product", product.Name, "error", err)
		summary.Skipped++
		stats.Skipped++

		return nil
	}

	summary.Prices += len(observations)
	stats.Prices += len(observations)

	if err := r.sink.Save(csvRows, supermarketName, categoryName, product.Name); err != nil {
		r.log.Warn("failed to write product CSV", "product", product.Name, "error", err)
	}

	return csvRows
}

// buildRows converts scraped price rows into store observations and CSV
// rows. Rows with unparseable dates or amounts are dropped with a log.
func (r *Runner) buildRows(
	product normalizer.Normalized,
	priceRows []crawler.PriceRow,
	supermarketName, categoryName, url string,
) ([]store.Observation, []export.Row) {
	observations := make([]store.Observation, 0, len(priceRows))
	csvRows := make([]export.Row, 0, len(priceRows))

	for _, row := range priceRows {
		date, err := ParseDate(row.Date)
		if err != nil {
			r.log.Warn("dropping price row, bad date", "date", row.Date, "error", err)

			continue
		}

		amount, err := ParseAmount(row.Amount)
		if err != nil {
			r.log.Warn("dropping price row, bad amount", "amount", row.Amount, "error", err)

			continue
		}

		observations = append(observations, store.Observation{Date: date, Amount: amount})
		csvRows = append(csvRows, export.Row{
			Date:        date.Format("2006-01-02"),
			Amount:      amount.String(),
			ProductName: product.Name,
			Brand:       product.Brand,
			Packs:       product.Quantity.Packs,
			Magnitude:   product.Quantity.Magnitude,
			Units:       product.Quantity.Unit,
			Subcategory: product.Subcategory,
			Distinction: product.Distinction,
			Eco:         product.Eco,
			Category:    categoryName,
			Supermarket: supermarketName,
			URL:         url,
		})
	}

	return observations, csvRows
}
