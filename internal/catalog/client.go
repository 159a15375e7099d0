package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Product is the catalog's view of a purchasable item, as served by
// the upstream products API.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
}

// ProductPage is the upstream list shape. Handlers serve this shape
// with empty data when the upstream call fails.
type ProductPage struct {
	Data  []Product `json:"data"`
	Count int       `json:"count"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryList struct {
	Data []Category `json:"data"`
}

// Client talks to the upstream storefront REST API. It returns errors
// to its callers; the degrade-to-empty policy lives at the HTTP
// boundary, keeping failures distinguishable internally.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

func NewClient(base string, log *slog.Logger) *Client {
	return &Client{
		base: base,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		log: log,
	}
}

// Products fetches a product page, forwarding the query untouched.
func (c *Client) Products(ctx context.Context, query url.Values) (ProductPage, error) {
	var page ProductPage

	u := c.base + "/products/"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	if err := c.getJSON(ctx, u, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) (CategoryList, error) {
	var list CategoryList
	if err := c.getJSON(ctx, c.base+"/products/categories/", &list); err != nil {
		return CategoryList{}, err
	}
	return list, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("catalog request build failed: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog fetch failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog response parse failed: %w", err)
	}
	return nil
}
