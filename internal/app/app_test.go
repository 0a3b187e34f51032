package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/modules/history"
	"github.com/mx-space/docinsight/internal/modules/insight"
)

func newTestApp(t *testing.T, cfg *config.AppConfig) *App {
	t.Helper()
	if cfg.MaxUploadMB == 0 {
		cfg.MaxUploadMB = 1
	}
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), zap.NewNop())
	svc := insight.NewService(store, nil, zap.NewNop())
	return newApp(cfg, zap.NewNop(), store, svc)
}

func do(a *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	a := newTestApp(t, &config.AppConfig{Env: "production", Port: 8000})

	req := httptest.NewRequest(http.MethodOptions, "/upload-resume", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := do(a, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin=%q", got)
	}
}

func TestCORSRestrictsConfiguredOrigins(t *testing.T) {
	a := newTestApp(t, &config.AppConfig{
		Env:            "production",
		Port:           8000,
		AllowedOrigins: []string{"*.example.com"},
	})

	allowed := httptest.NewRequest(http.MethodGet, "/insights", nil)
	allowed.Header.Set("Origin", "https://app.example.com")
	if w := do(a, allowed); w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("allowed origin: status=%d allow-origin=%q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	denied := httptest.NewRequest(http.MethodGet, "/insights", nil)
	denied.Header.Set("Origin", "https://evil.test")
	if w := do(a, denied); w.Code != http.StatusForbidden {
		t.Fatalf("denied origin: status=%d", w.Code)
	}
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t, &config.AppConfig{Env: "production", Port: 8000})

	cases := []struct {
		method string
		target string
		status int
		body   string
	}{
		{http.MethodGet, "/health", http.StatusOK, `{"status":"ok","storage":true}`},
		{http.MethodGet, "/insights", http.StatusOK, `{"items":[]}`},
		{http.MethodGet, "/nope", http.StatusNotFound, `{"detail":"Not Found"}`},
		{http.MethodDelete, "/insights", http.StatusMethodNotAllowed, `{"detail":"Method Not Allowed"}`},
	}
	for _, tc := range cases {
		w := do(a, httptest.NewRequest(tc.method, tc.target, nil))
		if w.Code != tc.status || w.Body.String() != tc.body {
			t.Fatalf("%s %s: status=%d body=%s", tc.method, tc.target, w.Code, w.Body.String())
		}
		if w.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s %s: missing request id", tc.method, tc.target)
		}
	}
}

func TestNewWithFileBackend(t *testing.T) {
	cfg := &config.AppConfig{
		Env:         "production",
		Port:        8123,
		MaxUploadMB: 5,
		Paths:       config.RuntimePathsConfig{Data: t.TempDir()},
		History:     config.HistoryConfig{Backend: config.HistoryBackendFile, File: "history.json"},
		Summarizer:  config.SummarizerConfig{Provider: config.SummarizerGeneric},
	}
	a, err := New(context.Background(), zap.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	if a.Addr() != ":8123" {
		t.Fatalf("addr=%q", a.Addr())
	}
}

func TestAllowOrigin(t *testing.T) {
	patterns := []string{"https://docs.example.org", "*.example.com", "localhost:*", "intranet:8080"}
	cases := []struct {
		origin string
		want   bool
	}{
		{"https://docs.example.org", true},
		{"http://docs.example.org", false},
		{"https://a.example.com", true},
		{"https://A.Example.com", true},
		{"https://example.com", false},
		{"https://evil-example.com", false},
		{"http://localhost:3000", true},
		{"http://localhost", true},
		{"http://otherhost:3000", false},
		{"http://intranet:8080", true},
		{"http://intranet:9090", false},
		{"null", false},
		{"", false},
	}
	allow := allowOrigin(patterns)
	for _, tc := range cases {
		if got := allow(tc.origin); got != tc.want {
			t.Fatalf("allowOrigin(%q)=%v, want %v", tc.origin, got, tc.want)
		}
	}

	if !allowOrigin(nil)("https://anything.test") {
		t.Fatalf("expected an empty pattern list to allow every origin")
	}
	if !allowOrigin([]string{"*"})("https://anything.test") {
		t.Fatalf("expected * to allow every origin")
	}
}
