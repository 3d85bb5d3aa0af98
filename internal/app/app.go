package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricestats/config"
	"github.com/guttosm/pricestats/internal/api"
	"github.com/guttosm/pricestats/internal/quandl"
	"github.com/guttosm/pricestats/internal/service"
)

// NewService wires the upstream client and the summary service from
// configuration. Both report and API mode go through it.
func NewService(cfg config.Config) (service.SummaryService, *quandl.Client, error) {
	client, err := clientFactory(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize quandl client: %w", err)
	}
	return service.NewSummaryService(client, cfg.Quandl.APIKey), client, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Quandl client and the summary service.
//   - Creates the HTTP handler layer with the configured default dataset and year.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes; readiness peeks one row of the default dataset.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	svc, client, err := NewService(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(svc, api.Defaults{Dataset: cfg.Quandl.Dataset, Year: cfg.Report.Year})
	router := api.NewRouter(handler, cfg.Server.RateLimitPerMinute)

	database, dataset, err := quandl.ParseCode(cfg.Quandl.Dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid default dataset: %w", err)
	}
	ping := func(ctx context.Context) error {
		return client.Peek(ctx, database, dataset, cfg.Quandl.APIKey)
	}
	api.NewHealthHandler(ping).Register(router)

	// nothing to release; the HTTP client holds no long-lived resources
	cleanup := func() {}

	return router, cleanup, nil
}
