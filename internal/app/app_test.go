package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/pricestats/config"
	"github.com/guttosm/pricestats/internal/domain/models"
)

const upstreamBody = `{"dataset":{"dataset_code":"58538","database_code":"HKEX","name":"Test",
"column_names":["Date","Nominal Price","High","Low","Previous Close","Share Volume (000)"],
"data":[
["2020-01-02",10.0,12.0,9.0,11.0,100.0],
["2020-01-03",11.0,15.0,10.0,13.5,300.0],
["2020-01-06",14.0,16.0,13.0,12.0,200.0]]}}`

func upstream(t *testing.T, status int, body string, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		if !strings.HasSuffix(r.URL.Path, "/datasets/HKEX/58538.json") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"quandl_error":{"code":"QECx02","message":"You have submitted an incorrect Quandl code."}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func useConfig(t *testing.T, baseURL string) {
	t.Helper()
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "0", RateLimitPerMinute: 100},
		Quandl: config.QuandlConfig{BaseURL: baseURL, Dataset: "HKEX/58538", Timeout: time.Second, APIKey: "k"},
		Report: config.ReportConfig{Year: 2020},
	}
}

func TestNewQuandlClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "data.nasdaq.com/api/v3", "ftp://x", "http://"} {
		if _, err := NewQuandlClient(config.Config{Quandl: config.QuandlConfig{BaseURL: u}}); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
}

func TestInitializeApp_InvalidBaseURL(t *testing.T) {
	useConfig(t, "not a url")

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		t.Fatalf("expected error from InitializeApp with invalid base URL")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	var hits int
	srv := upstream(t, http.StatusOK, upstreamBody, &hits)
	useConfig(t, srv.URL)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}
	if hits != 0 {
		t.Fatalf("liveness must not call upstream, hits=%d", hits)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK || hits != 1 {
		t.Fatalf("readyz status=%d hits=%d", w.Code, hits)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("summary status=%d body=%s", w.Code, w.Body.String())
	}
	var sum models.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if sum.HighestOpen.Float64 != 14 || sum.LowestOpen.Float64 != 10 || sum.MaxIntradayRange != 5 || sum.MaxInterdayCloseChange != 2.5 || sum.MedianVolume != 200 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary?dataset=HKEX/1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown dataset status=%d", w.Code)
	}
}

func TestInitializeApp_NotReady(t *testing.T) {
	srv := upstream(t, http.StatusInternalServerError, `oops`, nil)
	useConfig(t, srv.URL)

	router, _, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("summary status=%d", w.Code)
	}
}
