package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/sitelog/internal/config"
	"github.com/terraincognita07/sitelog/internal/db"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	dir := t.TempDir()
	return config.Config{
		SecretKey: "0123456789abcdef0123456789abcdef",
		DBPath:    filepath.Join(dir, "sitelog.db"),
		Port:      "8080",
		Location:  time.UTC,
		Uploads: config.UploadConfig{
			Dir:      filepath.Join(dir, "uploads"),
			BaseURL:  "/uploads",
			MaxBytes: 1 << 20,
		},
		Geocoder:    config.GeocoderConfig{URL: "http://127.0.0.1:1/search", RequestsPerSecond: 1},
		Weather:     config.WeatherConfig{ForecastURL: "http://127.0.0.1:1/forecast", ArchiveURL: "http://127.0.0.1:1/archive"},
		HTTPTimeout: time.Second,
	}
}

func TestNewAppServesHealthAndMetrics(t *testing.T) {
	cfg := testConfig(t)
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	app, err := newApp(cfg, database)
	if err != nil {
		t.Fatalf("newApp() unexpected error: %v", err)
	}

	health, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", health.StatusCode)
	}
	if health.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}

	metricsResponse, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer metricsResponse.Body.Close()
	body, err := io.ReadAll(metricsResponse.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(body), `sitelog_http_requests_total{method="GET",route="/healthz",status="200"} 1`) {
		t.Fatalf("expected health request in metrics, got:\n%s", body)
	}
}

func TestDispatchCommand(t *testing.T) {
	var calls []string
	runners := commandRunners{
		resetPassword: func(dbPath string, email string) error {
			calls = append(calls, "reset:"+dbPath+":"+email)
			return nil
		},
		createUser: func(dbPath string, email string, name string) error {
			calls = append(calls, "create:"+dbPath+":"+email+":"+name)
			return nil
		},
	}
	dbPath := func() (string, error) { return "site.db", nil }

	if err := dispatchCommand([]string{"reset-password", "ana@example.com"}, dbPath, runners); err != nil {
		t.Fatalf("reset-password unexpected error: %v", err)
	}
	if err := dispatchCommand([]string{"create-user", "ana@example.com", "Ana", "Silva"}, dbPath, runners); err != nil {
		t.Fatalf("create-user unexpected error: %v", err)
	}
	want := []string{"reset:site.db:ana@example.com", "create:site.db:ana@example.com:Ana Silva"}
	if strings.Join(calls, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected calls %v", calls)
	}

	if err := dispatchCommand([]string{"reset-password"}, dbPath, runners); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := dispatchCommand([]string{"serve-forever"}, dbPath, runners); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	failing := func() (string, error) { return "", errors.New("bad config file") }
	if err := dispatchCommand([]string{"reset-password", "ana@example.com"}, failing, runners); err == nil || !strings.Contains(err.Error(), "bad config file") {
		t.Fatalf("expected config error, got %v", err)
	}
}
