// Package source loads the quote collection from a URL or local files.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hay-kot/moment/internal/core/quote"
)

// maxBodySize caps how much of a collection document is read.
const maxBodySize = 16 << 20

// Source fetches the quote collection.
type Source interface {
	Fetch(ctx context.Context) ([]quote.Quote, error)
}

// New returns an HTTP source for http(s) locations and a file source for
// everything else. client may be nil.
func New(location string, client *http.Client) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("quote source location is empty")
	}

	if IsURL(location) {
		return NewHTTP(location, client), nil
	}

	return NewFile(location), nil
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// decode parses a JSON array of quotes.
func decode(r io.Reader) ([]quote.Quote, error) {
	var quotes []quote.Quote
	if err := json.NewDecoder(io.LimitReader(r, maxBodySize)).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return quotes, nil
}
