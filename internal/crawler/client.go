package crawler

import (
	"fmt"
	"strings"
)

// Client manages HTTP communications and page extraction for crawling
// the supermarket → category → product hierarchy.
type Client struct {
	scraper *Scraper
	parser  *Parser
}

// NewClient creates a new crawler client with default dependencies.
func NewClient() *Client {
	return &Client{
		scraper: NewScraper(),
		parser:  NewParser(),
	}
}

// NewClientWithDeps creates a new crawler client with injected dependencies.
func NewClientWithDeps(scraper *Scraper, parser *Parser) *Client {
	return &Client{
		scraper: scraper,
		parser:  parser,
	}
}

// Supermarkets fetches the landing page and returns the supermarket cards.
func (c *Client) Supermarkets(baseURL string) ([]Card, error) {
	html, err := c.scraper.Fetch(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supermarkets page: %w", err)
	}

	return c.parser.CardLinks(html)
}

// Categories fetches a supermarket page and returns its category cards.
func (c *Client) Categories(supermarketURL string) ([]Card, error) {
	html, err := c.scraper.Fetch(supermarketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories page: %w", err)
	}

	return c.parser.CardLinks(html)
}

// Products fetches a category page and returns its product cards.
func (c *Client) Products(categoryURL string) ([]Card, error) {
	html, err := c.scraper.Fetch(categoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products page: %w", err)
	}

	return c.parser.ProductCards(html)
}

// Prices fetches a product page and returns its price-history rows.
// Exhausted retries surface as an error; a missing table yields nil
// rows with no error.
func (c *Client) Prices(productURL string) ([]PriceRow, error) {
	html, err := c.scraper.Fetch(productURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}

	return c.parser.PriceRows(html)
}

// SupermarketFromURL derives the supermarket name from a product URL's
// first path segment, e.g. "https://host/mercadona/leche/p" → "mercadona".
func SupermarketFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 4 {
		return ""
	}

	return parts[3]
}

// CategoryFromURL derives the category name from a product URL's second
// path segment, hyphens replaced with underscores, e.g.
// ".../aceite-de-oliva/p" → "aceite_de_oliva".
func CategoryFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 5 {
		return ""
	}

	return strings.ReplaceAll(parts[4], "-", "_")
}
