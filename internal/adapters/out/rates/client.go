// Package rates quotes shipping rates from the external carrier rating
// service over HTTP. Quotes for identical packages are cached in Redis for a
// short window to keep checkout refreshes off the carrier API.
package rates

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

const (
	quoteTimeout  = 5 * time.Second
	quoteCacheTTL = 5 * time.Minute
)

// quoteRequest is the rating service request payload.
type quoteRequest struct {
	ShipmentID string      `json:"shipment_id"`
	Address    addressBody `json:"address"`
	Items      []itemBody  `json:"items"`
}

type addressBody struct {
	Line1       string `json:"line1"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

type itemBody struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// quoteBody is one rate in the rating service response.
type quoteBody struct {
	MethodID   string `json:"method_id"`
	MethodName string `json:"method_name"`
	CostCents  int64  `json:"cost_cents"`
}

// Client implements RateEstimator against the carrier rating service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
}

// NewClient creates a rating service client. The Redis client is optional;
// when nil every quote goes to the carrier API.
func NewClient(baseURL string, cache *redis.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: quoteTimeout},
		cache:      cache,
	}
}

// Quote returns the available shipping rates for the package, in the
// carrier's preferred order.
func (c *Client) Quote(ctx context.Context, pkg shipment.Package) ([]*shipment.ShippingRate, error) {
	body, err := json.Marshal(buildRequest(pkg))
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote request: %w", err)
	}

	if cached, ok := c.readCache(ctx, body); ok {
		return toRates(cached)
	}

	quotes, err := c.fetch(ctx, body)
	if err != nil {
		return nil, err
	}

	c.writeCache(ctx, body, quotes)
	return toRates(quotes)
}

// fetch calls the rating service.
func (c *Client) fetch(ctx context.Context, body []byte) ([]quoteBody, error) {
	url := fmt.Sprintf("%s/api/v1/quotes", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach rating service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rating service returned status %d", resp.StatusCode)
	}

	var quotes []quoteBody
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	return quotes, nil
}

// readCache returns cached quotes for the request body, if present.
func (c *Client) readCache(ctx context.Context, body []byte) ([]quoteBody, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, cacheKey(body)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("quote cache read failed", "error", err)
		}
		return nil, false
	}

	var quotes []quoteBody
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, false
	}
	return quotes, true
}

// writeCache stores quotes for the request body. Cache failures are logged
// and otherwise ignored.
func (c *Client) writeCache(ctx context.Context, body []byte, quotes []quoteBody) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(quotes)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(body), raw, quoteCacheTTL).Err(); err != nil {
		slog.Warn("quote cache write failed", "error", err)
	}
}

func cacheKey(body []byte) string {
	return fmt.Sprintf("rates:quote:%x", sha256.Sum256(body))
}

// buildRequest maps the package onto the rating service payload.
func buildRequest(pkg shipment.Package) quoteRequest {
	items := make([]itemBody, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		items = append(items, itemBody{
			VariantID: item.VariantID().String(),
			Quantity:  item.Quantity(),
		})
	}

	return quoteRequest{
		ShipmentID: pkg.ShipmentID.String(),
		Address: addressBody{
			Line1:       pkg.Address.Line1(),
			City:        pkg.Address.City(),
			PostalCode:  pkg.Address.PostalCode(),
			CountryCode: pkg.Address.CountryCode(),
		},
		Items: items,
	}
}

// toRates converts service quotes into unselected domain rates.
func toRates(quotes []quoteBody) ([]*shipment.ShippingRate, error) {
	rates := make([]*shipment.ShippingRate, 0, len(quotes))
	for _, quote := range quotes {
		methodID, err := kernel.UUIDFromString(quote.MethodID)
		if err != nil {
			return nil, fmt.Errorf("rating service returned invalid method id %q: %w", quote.MethodID, err)
		}

		rate, err := shipment.NewShippingRate(
			kernel.NewUUID(), methodID, quote.MethodName,
			kernel.NewMoneyFromCents(quote.CostCents), false)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
