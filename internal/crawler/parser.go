package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the site's Bootstrap layout.
const (
	cardSelector       = "div.card.h-100"
	cardGridSelector   = "div.row.gx-4.gx-lg-5.row-cols-2.row-cols-md-3.row-cols-xl-4.justify-content-center"
	priceTableSelector = "table.table.table-striped.table-responsive.text-center"
)

// Card is one linked card from a listing grid: a supermarket, a category
// or a product.
type Card struct {
	Name string
	URL  string
}

// PriceRow is one row of a product's price-history table. At most two
// columns are read; amounts use "." as the decimal separator.
type PriceRow struct {
	Date   string
	Amount string
}

// Parser extracts card links and price tables from raw HTML.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// CardLinks returns the linked cards found in the document, in page
// order. Cards without a link are skipped.
func (p *Parser) CardLinks(html string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var cards []Card

	doc.Find(cardSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return
		}

		name := strings.TrimSpace(sel.Find("p").First().Text())
		if name == "" {
			name = strings.TrimSpace(sel.Find("a").First().Text())
		}

		cards = append(cards, Card{Name: name, URL: href})
	})

	return cards, nil
}

// ProductCards returns the cards of the last product grid on a category
// page. Category pages repeat the grid layout for navigation; the final
// grid holds the products.
func (p *Parser) ProductCards(html string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	grid := doc.Find(cardGridSelector).Last()
	if grid.Length() == 0 {
		return nil, nil
	}

	var cards []Card

	grid.Find(cardSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return
		}

		name := strings.TrimSpace(sel.Find("p").First().Text())

		cards = append(cards, Card{Name: name, URL: href})
	})

	return cards, nil
}

// PriceRows extracts the price-history rows from a product page. A
// missing table means "no data for this product": the result is nil
// with no error and the caller moves on.
func (p *Parser) PriceRows(html string) ([]PriceRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find(priceTableSelector).First()
	if table.Length() == 0 {
		return nil, nil
	}

	var rows []PriceRow

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}

		date := strings.TrimSpace(cells.Eq(0).Text())
		amount := strings.ReplaceAll(strings.TrimSpace(cells.Eq(1).Text()), ",", ".")

		rows = append(rows, PriceRow{Date: date, Amount: amount})
	})

	return rows, nil
}
