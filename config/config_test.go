package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded when no env is set.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "RATE_LIMIT_PER_MINUTE", "QUANDL_BASE_URL", "QUANDL_API_KEY", "QUANDL_DATASET", "QUANDL_TIMEOUT", "REPORT_YEAR"} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" || AppConfig.Server.RateLimitPerMinute != 60 {
		t.Fatalf("unexpected server defaults: %+v", AppConfig.Server)
	}
	q := AppConfig.Quandl
	if q.BaseURL != "https://data.nasdaq.com/api/v3" || q.Dataset != "HKEX/58538" || q.Timeout != 30*time.Second || q.APIKey != "" {
		t.Fatalf("unexpected quandl defaults: %+v", q)
	}
	if AppConfig.Report.Year != 2020 {
		t.Fatalf("unexpected report year %d", AppConfig.Report.Year)
	}
}

// TestLoadConfig_EnvOverrides checks that environment variables win over defaults.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("QUANDL_API_KEY", "abc123")
	t.Setenv("QUANDL_DATASET", "FSE/AFX_X")
	t.Setenv("QUANDL_TIMEOUT", "5s")
	t.Setenv("REPORT_YEAR", "2017")

	LoadConfig()

	q := AppConfig.Quandl
	if q.APIKey != "abc123" || q.Dataset != "FSE/AFX_X" || q.Timeout != 5*time.Second {
		t.Fatalf("env not applied: %+v", q)
	}
	if AppConfig.Report.Year != 2017 {
		t.Fatalf("REPORT_YEAR not applied: %d", AppConfig.Report.Year)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
