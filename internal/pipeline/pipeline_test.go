package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"facuatrack/internal/crawler"
	"facuatrack/internal/export"
	"facuatrack/internal/logger"
	"facuatrack/internal/normalizer"
	"facuatrack/internal/store"
)

type fakeSite struct {
	supermarkets []crawler.Card
	categories   map[string][]crawler.Card
	products     map[string][]crawler.Card
	prices       map[string][]crawler.PriceRow
	pricesErr    map[string]error
}

func (f *fakeSite) Supermarkets(string) ([]crawler.Card, error) { return f.supermarkets, nil }

func (f *fakeSite) Categories(url string) ([]crawler.Card, error) { return f.categories[url], nil }

func (f *fakeSite) Products(url string) ([]crawler.Card, error) { return f.products[url], nil }

func (f *fakeSite) Prices(url string) ([]crawler.PriceRow, error) {
	if err := f.pricesErr[url]; err != nil {
		return nil, err
	}

	return f.prices[url], nil
}

type persistCall struct {
	product      normalizer.Normalized
	supermarket  string
	category     string
	url          string
	listedName   string
	observations []store.Observation
}

type fakePersister struct {
	calls []persistCall
	err   error
}

func (f *fakePersister) Persist(product normalizer.Normalized, supermarket, category, url, listedName string, observations []store.Observation) error {
	f.calls = append(f.calls, persistCall{product, supermarket, category, url, listedName, observations})

	return f.err
}

type fakeSink struct {
	saves     int
	finalRows []export.Row
}

func (f *fakeSink) Save([]export.Row, string, string, string) error { f.saves++; return nil }

func (f *fakeSink) SaveFinal(rows []export.Row) error { f.finalRows = rows; return nil }

func testSite() *fakeSite {
	return &fakeSite{
		supermarkets: []crawler.Card{{Name: "Mercadona", URL: "https://super.facua.org/mercadona/"}},
		categories: map[string][]crawler.Card{
			"https://super.facua.org/mercadona/": {
				{Name: "Leche", URL: "https://super.facua.org/mercadona/leche/"},
			},
		},
		products: map[string][]crawler.Card{
			"https://super.facua.org/mercadona/leche/": {
				{Name: "Leche Hacendado Desnatada 1L", URL: "https://super.facua.org/mercadona/leche/leche-hacendado-desnatada-1l/historico/"},
			},
		},
		prices: map[string][]crawler.PriceRow{
			"https://super.facua.org/mercadona/leche/leche-hacendado-desnatada-1l/historico/": {
				{Date: "15/03/2024", Amount: "0.83"},
				{Date: "16/03/2024", Amount: "0.85"},
			},
		},
	}
}

func newTestRunner(site Site, persister Persister, sink Sink) *Runner {
	log := logger.NewLogger("error")

	return NewRunner(site, normalizer.NewNormalizer(), persister, sink, "https://super.facua.org/", log)
}

func TestRunPersistsEveryObservation(t *testing.T) {
	persister := &fakePersister{}
	sink := &fakeSink{}

	summary, err := newTestRunner(testSite(), persister, sink).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(persister.calls) != 1 {
		t.Fatalf("persist calls = %d, want 1", len(persister.calls))
	}

	call := persister.calls[0]
	if call.supermarket != "mercadona" {
		t.Errorf("supermarket = %q, want %q", call.supermarket, "mercadona")
	}
	if call.category != "leche" {
		t.Errorf("category = %q, want %q", call.category, "leche")
	}
	if call.listedName != "Leche Hacendado Desnatada 1L" {
		t.Errorf("listedName = %q, want the raw listed name", call.listedName)
	}
	if call.product.Brand != "hacendado" {
		t.Errorf("brand = %q, want %q", call.product.Brand, "hacendado")
	}
	if len(call.observations) != 2 {
		t.Fatalf("observations = %d, want 2", len(call.observations))
	}

	wantDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !call.observations[0].Date.Equal(wantDate) {
		t.Errorf("first observation date = %v, want %v", call.observations[0].Date, wantDate)
	}
	if !call.observations[0].Amount.Equal(decimal.RequireFromString("0.83")) {
		t.Errorf("first observation amount = %v, want 0.83", call.observations[0].Amount)
	}

	if summary.Supermarkets != 1 || summary.Categories != 1 || summary.Products != 1 {
		t.Errorf("summary counts = %d/%d/%d, want 1/1/1",
			summary.Supermarkets, summary.Categories, summary.Products)
	}
	if summary.Prices != 2 {
		t.Errorf("summary.Prices = %d, want 2", summary.Prices)
	}
	if summary.Skipped != 0 {
		t.Errorf("summary.Skipped = %d, want 0", summary.Skipped)
	}
}

func TestRunWritesCSVMirrors(t *testing.T) {
	sink := &fakeSink{}

	if _, err := newTestRunner(testSite(), &fakePersister{}, sink).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sink.saves != 1 {
		t.Errorf("per-product saves = %d, want 1", sink.saves)
	}
	if len(sink.finalRows) != 2 {
		t.Fatalf("final rows = %d, want 2", len(sink.finalRows))
	}

	row := sink.finalRows[0]
	if row.Date != "2024-03-15" {
		t.Errorf("row date = %q, want %q", row.Date, "2024-03-15")
	}
	if row.Supermarket != "mercadona" || row.Category != "leche" {
		t.Errorf("row context = %q/%q, want mercadona/leche", row.Supermarket, row.Category)
	}
}

func TestRunSkipsProductWithoutPriceTable(t *testing.T) {
	site := testSite()
	site.prices = map[string][]crawler.PriceRow{}

	persister := &fakePersister{}

	summary, err := newTestRunner(site, persister, &fakeSink{}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(persister.calls) != 0 {
		t.Errorf("persist calls = %d, want 0", len(persister.calls))
	}
	if summary.Skipped != 1 {
		t.Errorf("summary.Skipped = %d, want 1", summary.Skipped)
	}
}

func TestRunContinuesAfterFetchFailure(t *testing.T) {
	site := testSite()
	site.products["https://super.facua.org/mercadona/leche/"] = append(
		[]crawler.Card{{
			Name: "Leche Rota",
			URL:  "https://super.facua.org/mercadona/leche/leche-rota/historico/",
		}},
		site.products["https://super.facua.org/mercadona/leche/"]...,
	)
	site.pricesErr = map[string]error{
		"https://super.facua.org/mercadona/leche/leche-rota/historico/": errors.New("boom"),
	}

	persister := &fakePersister{}

	summary, err := newTestRunner(site, persister, &fakeSink{}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(persister.calls) != 1 {
		t.Errorf("persist calls = %d, want 1 for the healthy product", len(persister.calls))
	}
	if summary.Products != 2 || summary.Skipped != 1 {
		t.Errorf("summary products/skipped = %d/%d, want 2/1", summary.Products, summary.Skipped)
	}
}

func TestRunCountsPersistFailureAsSkip(t *testing.T) {
	persister := &fakePersister{err: errors.New("db down")}
	sink := &fakeSink{}

	summary, err := newTestRunner(testSite(), persister, sink).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Skipped != 1 {
		t.Errorf("summary.Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Prices != 0 {
		t.Errorf("summary.Prices = %d, want 0", summary.Prices)
	}
	if sink.saves != 0 {
		t.Errorf("per-product saves = %d, want 0 after failed persist", sink.saves)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "day first", raw: "15/03/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso", raw: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "padded", raw: " 15/03/2024 ", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "ayer", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tc.raw, got)
				}

				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tc.raw, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "0.83", want: "0.83"},
		{name: "euro suffix", raw: "1.05 €", want: "1.05"},
		{name: "padded", raw: " 2.19 ", want: "2.19"},
		{name: "garbage", raw: "n/d", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %v", tc.raw, got)
				}

				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tc.raw, err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
