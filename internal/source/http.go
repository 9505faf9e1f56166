package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hay-kot/moment/internal/core/quote"
)

// HTTP fetches the collection from a URL, bypassing caches.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP source. A nil client gets a 15s timeout default.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTP{url: url, client: client}
}

// Fetch downloads and validates the collection.
func (h *HTTP) Fetch(ctx context.Context) ([]quote.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", h.url, resp.Status)
	}

	quotes, err := decode(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := quote.Validate(quotes); err != nil {
		return nil, err
	}

	return quotes, nil
}
