// Package quandl fetches daily price datasets from the Quandl (Nasdaq Data
// Link) v3 time-series API.
package quandl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/pricestats/internal/domain/models"
	"github.com/guttosm/pricestats/internal/logger"
)

const datasetPath = "/datasets/{database}/{dataset}.json"

// ErrUpstream marks failures to reach the API or to read its response.
var ErrUpstream = errors.New("upstream unavailable")

// APIError is an error reported by the upstream API, either as a non-2xx
// status or as a quandl_error payload.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("quandl")
	if e.Status != 0 {
		b.WriteString(" status " + strconv.Itoa(e.Status))
	}
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// NotFound reports whether the upstream said the dataset does not exist.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Request describes one dataset query. APIKey is sent with this request
// only; the client never stores it.
type Request struct {
	Database  string
	Dataset   string
	StartDate time.Time
	EndDate   time.Time
	Rows      int // 0 means no limit
	APIKey    string
}

// ParseCode splits a "DATABASE/DATASET" code.
func ParseCode(code string) (database, dataset string, err error) {
	database, dataset, ok := strings.Cut(strings.TrimSpace(code), "/")
	if !ok || database == "" || dataset == "" || strings.Contains(dataset, "/") {
		return "", "", fmt.Errorf("invalid dataset code %q, expected DATABASE/DATASET", code)
	}
	return strings.ToUpper(database), strings.ToUpper(dataset), nil
}

// Client performs dataset requests against one API base URL.
type Client struct {
	http    *resty.Client
	aliases ColumnAliases
}

// NewClient builds a client for baseURL (e.g. "https://data.nasdaq.com/api/v3").
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, aliases: DefaultColumnAliases}
}

// WithColumnAliases replaces the column alias table used for decoding.
func (c *Client) WithColumnAliases(a ColumnAliases) *Client {
	c.aliases = a
	return c
}

// FetchDataset runs one GET for req and decodes the response.
// Records are requested in ascending date order.
func (c *Client) FetchDataset(ctx context.Context, req Request) (*models.Dataset, error) {
	start := time.Now()

	params := map[string]string{"order": "asc"}
	if !req.StartDate.IsZero() {
		params["start_date"] = req.StartDate.Format(dateLayout)
	}
	if !req.EndDate.IsZero() {
		params["end_date"] = req.EndDate.Format(dateLayout)
	}
	if req.Rows > 0 {
		params["rows"] = strconv.Itoa(req.Rows)
	}
	if req.APIKey != "" {
		params["api_key"] = req.APIKey
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"database": req.Database,
			"dataset":  req.Dataset,
		}).
		SetQueryParams(params).
		Get(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w: %w", req.Database, req.Dataset, ErrUpstream, err)
	}

	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode()}
		var doc any
		if json.Unmarshal(resp.Body(), &doc) == nil {
			if e := errorFromDoc(doc); e != nil {
				apiErr.Code, apiErr.Message = e.Code, e.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return nil, apiErr
	}

	ds, err := DecodeDataset(resp.Body(), c.aliases)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("decode %s/%s: %w: %w", req.Database, req.Dataset, ErrUpstream, err)
	}
	if ds.DatabaseCode == "" {
		ds.DatabaseCode = req.Database
	}
	if ds.DatasetCode == "" {
		ds.DatasetCode = req.Dataset
	}

	logger.L().Debug().
		Str("dataset", ds.Code()).
		Int("records", len(ds.Records)).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("dataset fetched")

	return ds, nil
}

// Peek fetches a single row of the dataset, enough to confirm that the
// upstream is reachable and the credential accepted.
func (c *Client) Peek(ctx context.Context, database, dataset, apiKey string) error {
	_, err := c.FetchDataset(ctx, Request{Database: database, Dataset: dataset, Rows: 1, APIKey: apiKey})
	return err
}
