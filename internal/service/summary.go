package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/pricestats/internal/domain/models"
	"github.com/guttosm/pricestats/internal/logger"
	"github.com/guttosm/pricestats/internal/quandl"
	"github.com/guttosm/pricestats/internal/stats"
)

// Statistic names one scalar query of the reducer.
type Statistic string

const (
	StatHighest                Statistic = "highest"
	StatLowest                 Statistic = "lowest"
	StatMaxIntradayRange       Statistic = "max-intraday-range"
	StatMaxInterdayCloseChange Statistic = "max-interday-close-change"
	StatAverageVolume          Statistic = "average-volume"
	StatMedianVolume           Statistic = "median-volume"
)

// Statistics lists every supported statistic.
var Statistics = []Statistic{
	StatHighest,
	StatLowest,
	StatMaxIntradayRange,
	StatMaxInterdayCloseChange,
	StatAverageVolume,
	StatMedianVolume,
}

// NeedsField reports whether s takes a field argument.
func (s Statistic) NeedsField() bool {
	return s == StatHighest || s == StatLowest
}

// ParseStatistic maps a URL/CLI name to a Statistic.
func ParseStatistic(name string) (Statistic, error) {
	for _, s := range Statistics {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown statistic %q", name)
}

// Query selects one dataset over one calendar year.
type Query struct {
	Dataset string // "DATABASE/DATASET"
	Year    int
}

// Validate checks the dataset code and year bounds.
func (q Query) Validate() error {
	if _, _, err := quandl.ParseCode(q.Dataset); err != nil {
		return err
	}
	if q.Year < 1900 || q.Year > 9999 {
		return fmt.Errorf("invalid year %d", q.Year)
	}
	return nil
}

// Fetcher retrieves a dataset from the upstream API.
type Fetcher interface {
	FetchDataset(ctx context.Context, req quandl.Request) (*models.Dataset, error)
}

// SummaryService defines business logic for computing statistics over one
// dataset-year. Each call fetches once and discards the dataset afterwards.
type SummaryService interface {
	GetSummary(ctx context.Context, q Query) (*models.Summary, error)
	GetStatistic(ctx context.Context, q Query, stat Statistic, field models.Field) (float64, error)
}

type summaryService struct {
	fetcher Fetcher
	apiKey  string
}

// NewSummaryService builds the service. apiKey is attached to each upstream
// request individually.
func NewSummaryService(fetcher Fetcher, apiKey string) SummaryService {
	return &summaryService{fetcher: fetcher, apiKey: apiKey}
}

func (s *summaryService) GetSummary(ctx context.Context, q Query) (*models.Summary, error) {
	ds, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	sum, err := stats.NewReducer(*ds).Summarize()
	if err != nil {
		return nil, err
	}
	sum.Dataset = ds.Code()
	sum.Year = q.Year
	return sum, nil
}

func (s *summaryService) GetStatistic(ctx context.Context, q Query, stat Statistic, field models.Field) (float64, error) {
	if _, err := ParseStatistic(string(stat)); err != nil {
		return 0, err
	}
	if stat.NeedsField() {
		if _, err := models.ParseField(string(field)); err != nil {
			return 0, err
		}
	}
	ds, err := s.fetch(ctx, q)
	if err != nil {
		return 0, err
	}
	r := stats.NewReducer(*ds)
	switch stat {
	case StatHighest:
		return r.HighestValue(field)
	case StatLowest:
		return r.LowestValue(field)
	case StatMaxIntradayRange:
		return r.MaxIntradayRange()
	case StatMaxInterdayCloseChange:
		return r.MaxInterdayCloseChange()
	case StatAverageVolume:
		return r.AverageVolume()
	case StatMedianVolume:
		return r.MedianVolume()
	default:
		return 0, fmt.Errorf("unknown statistic %q", stat)
	}
}

func (s *summaryService) fetch(ctx context.Context, q Query) (*models.Dataset, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	database, dataset, _ := quandl.ParseCode(q.Dataset)

	start := time.Now()
	ds, err := s.fetcher.FetchDataset(ctx, quandl.Request{
		Database:  database,
		Dataset:   dataset,
		StartDate: time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(q.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		APIKey:    s.apiKey,
	})
	if err != nil {
		logger.L().Error().Str("dataset", q.Dataset).Int("year", q.Year).Err(err).Msg("fetch failed")
		return nil, err
	}
	logger.L().Info().
		Str("dataset", ds.Code()).
		Int("year", q.Year).
		Int("records", len(ds.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}
