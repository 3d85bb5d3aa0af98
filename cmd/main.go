package main

//
//  @title           pricestats API
//  @version         1.0
//  @description     Yearly statistics over Quandl daily price datasets.
//  @termsOfService  https://github.com/guttosm/pricestats
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/pricestats
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        statistics
//  @tag.description Yearly price statistics of Quandl datasets
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/pricestats/config"
	_ "github.com/guttosm/pricestats/docs" // swagger docs
	"github.com/guttosm/pricestats/internal/app"
	"github.com/guttosm/pricestats/internal/logger"
	"github.com/guttosm/pricestats/internal/report"
	"github.com/guttosm/pricestats/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runReport computes the summary for q and writes it to w.
func runReport(ctx context.Context, w io.Writer, svc service.SummaryService, q service.Query, opts report.Options) error {
	sum, err := svc.GetSummary(ctx, q)
	if err != nil {
		return err
	}
	return report.Write(w, sum, opts)
}

// main is the entry point of the pricestats application.
//
// Modes (selected via --mode flag):
//   - report: Fetches one dataset-year, prints the summary and exits.
//   - api:    Starts the REST API exposing the summary and each statistic.
//
// Flags:
//   - --mode:     Execution mode ("report" or "api"). Default: "report".
//   - --dataset:  Dataset code DATABASE/DATASET. Defaults to QUANDL_DATASET.
//   - --year:     Calendar year. Defaults to REPORT_YEAR.
//   - --format:   Report format ("text" or "json"). Default: "text".
//   - --no-color: Disable colored text output.
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "report", "Mode: report or api")
	dataset := flag.String("dataset", config.AppConfig.Quandl.Dataset, "Dataset code DATABASE/DATASET")
	year := flag.Int("year", config.AppConfig.Report.Year, "Calendar year to summarize")
	format := flag.String("format", string(report.FormatText), "Report format: text or json")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	// Initialize JSON logger; in report mode stdout carries the report only
	if *mode == "report" {
		logger.SetOutput(os.Stderr)
	}
	logger.Init()

	switch *mode {
	case "report":
		f, err := report.ParseFormat(*format)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid flags")
		}
		svc, _, err := app.NewService(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		ctx, cancel := context.WithTimeout(ctx, config.AppConfig.Quandl.Timeout+5*time.Second)
		defer cancel()

		q := service.Query{Dataset: *dataset, Year: *year}
		if err := runReport(ctx, os.Stdout, svc, q, report.Options{Format: f, NoColor: *noColor}); err != nil {
			logger.L().Fatal().Err(err).Str("dataset", *dataset).Int("year", *year).Msg("report failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		// flags become the defaults for requests that omit dataset/year
		config.AppConfig.Quandl.Dataset = *dataset
		config.AppConfig.Report.Year = *year

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
