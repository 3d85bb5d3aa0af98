package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	RATE_LIMIT_PER_MINUTE=60
//	QUANDL_BASE_URL=https://data.nasdaq.com/api/v3
//	QUANDL_API_KEY=xxxxxxxx
//	QUANDL_DATASET=HKEX/58538
//	QUANDL_TIMEOUT=30s
//	REPORT_YEAR=2020
type Config struct {
	Server ServerConfig // HTTP server configuration
	Quandl QuandlConfig // Upstream data source
	Report ReportConfig // Defaults for the statistics run
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // TCP port the HTTP server listens on (e.g., "8080")
	RateLimitPerMinute int    // requests allowed per client IP per minute
}

// QuandlConfig describes the upstream time-series API.
//
// APIKey is loaded here but never stored on the HTTP client: callers pass it
// with every request.
type QuandlConfig struct {
	BaseURL string
	APIKey  string
	Dataset string // default "DATABASE/DATASET" code
	Timeout time.Duration
}

// ReportConfig holds defaults used when a request does not name a year.
type ReportConfig struct {
	Year int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by cmd and internal/app.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("QUANDL_BASE_URL", "https://data.nasdaq.com/api/v3")
	viper.SetDefault("QUANDL_API_KEY", "")
	viper.SetDefault("QUANDL_DATASET", "HKEX/58538")
	viper.SetDefault("QUANDL_TIMEOUT", "30s")

	viper.SetDefault("REPORT_YEAR", 2020)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Quandl: QuandlConfig{
			BaseURL: viper.GetString("QUANDL_BASE_URL"),
			APIKey:  viper.GetString("QUANDL_API_KEY"),
			Dataset: viper.GetString("QUANDL_DATASET"),
			Timeout: viper.GetDuration("QUANDL_TIMEOUT"),
		},
		Report: ReportConfig{
			Year: viper.GetInt("REPORT_YEAR"),
		},
	}

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// QUANDL_API_KEY is not required: the API serves anonymous calls at a lower
// rate limit.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Server.RateLimitPerMinute <= 0 {
		missing = append(missing, "RATE_LIMIT_PER_MINUTE")
	}
	if AppConfig.Quandl.BaseURL == "" {
		missing = append(missing, "QUANDL_BASE_URL")
	}
	if AppConfig.Quandl.Dataset == "" {
		missing = append(missing, "QUANDL_DATASET")
	}
	if AppConfig.Quandl.Timeout <= 0 {
		missing = append(missing, "QUANDL_TIMEOUT")
	}
	if AppConfig.Report.Year <= 0 {
		missing = append(missing, "REPORT_YEAR")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
