package app

import (
	"fmt"
	"net/url"

	"github.com/guttosm/pricestats/config"
	"github.com/guttosm/pricestats/internal/quandl"
)

// NewQuandlClient builds the upstream client from configuration.
//
// Behavior:
//   - Rejects a base URL that is not absolute http(s).
//   - Applies the configured request timeout.
//
// The API key is not part of the client; it travels with each request.
func NewQuandlClient(cfg config.Config) (*quandl.Client, error) {
	u, err := url.Parse(cfg.Quandl.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid QUANDL_BASE_URL %q", cfg.Quandl.BaseURL)
	}
	return quandl.NewClient(cfg.Quandl.BaseURL, cfg.Quandl.Timeout), nil
}

// clientFactory is an indirection for unit testing.
var clientFactory = NewQuandlClient
