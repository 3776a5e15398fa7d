package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tsvd/internal/config"
)

// newTestServer builds a server with test-friendly configuration and no
// history store.
func newTestServer() *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  time.Minute,
		},
		Transform: config.TransformConfig{MaxBodySize: 1 << 20, MaxOutputLines: 1000},
		Rate:      config.RateLimitConfig{Enabled: false},
		Logging:   config.LoggingConfig{Level: "error", Format: "text"},
	}
	return NewServer(cfg, nil)
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "TSV") {
		t.Error("page body should mention TSV")
	}
}

func TestTransform_Normalize(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=normalize", "a:b\tx:y")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	want := "a\tx\na\ty\nb\tx\nb\ty\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
}

func TestTransform_Denormalize(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=denormalize", "k1\tv1\nk2\tv2\nk1\tv3\n")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := "k1\tv1:v3\nk2\tv2\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestTransform_DefaultModeIsNormalize(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/transform", "a:b\tx")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := "a\tx\nb\tx\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestTransform_UnknownMode(t *testing.T) {
	// An unrecognized mode returns a fixed diagnostic with 200, not an
	// error status.
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=shuffle", "a\tb")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != unknownModeBody {
		t.Errorf("body = %q, want %q", got, unknownModeBody)
	}
}

func TestTransform_EmptyBody(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=normalize", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "TSV001") {
		t.Errorf("body should carry code TSV001: %q", rec.Body.String())
	}
}

func TestTransform_MissingSeparator(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=normalize", "a\tb\nno separator here")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "TSV002") {
		t.Errorf("body should carry code TSV002: %q", rec.Body.String())
	}
}

func TestTransform_DenormalizeDropsShortLines(t *testing.T) {
	// Denormalize does not require separators; short lines are dropped.
	rec := doRequest(newTestServer(), http.MethodPost, "/transform?mode=denormalize", "k\tv\nno separator here")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	want := "k\tv\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestTransform_ExpansionTooLarge(t *testing.T) {
	s := newTestServer()
	s.cfg.Transform.MaxOutputLines = 3

	rec := doRequest(s, http.MethodPost, "/transform?mode=normalize", "a:b\tx:y")

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if !strings.Contains(rec.Body.String(), "TSV003") {
		t.Errorf("body should carry code TSV003: %q", rec.Body.String())
	}
}

func TestTransform_BodyTooLarge(t *testing.T) {
	s := newTestServer()
	s.cfg.Transform.MaxBodySize = 8

	rec := doRequest(s, http.MethodPost, "/transform?mode=normalize", "aaaa\tbbbb\ncccc\tdddd")

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if !strings.Contains(rec.Body.String(), "TSV004") {
		t.Errorf("body should carry code TSV004: %q", rec.Body.String())
	}
}

func TestHistory_DisabledReturnsNotFound(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/api/history", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "HIST001") {
		t.Errorf("body should carry code HIST001: %q", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/", "")

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", got, "nosniff")
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want %q", got, "DENY")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  time.Minute,
		},
		Transform: config.TransformConfig{MaxBodySize: 1 << 20, MaxOutputLines: 1000},
		Rate:      config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2},
		Logging:   config.LoggingConfig{Level: "error", Format: "text"},
	}
	s := NewServer(cfg, nil)

	for i := 0; i < 2; i++ {
		if rec := doRequest(s, http.MethodPost, "/transform?mode=normalize", "a\tb"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := doRequest(s, http.MethodPost, "/transform?mode=normalize", "a\tb")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if !strings.Contains(rec.Body.String(), "RATE001") {
		t.Errorf("body should carry code RATE001: %q", rec.Body.String())
	}
}
