package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/config"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"github.com/riskibarqy/osu-tournament/internal/platform/resilience"
)

func TestNewHTTPServer_InMemoryStore(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		RequestTimeout:     time.Second,
		IdentityBaseURL:    "http://identity.invalid",
		IdentityCircuit:    resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Second,
			HalfOpenMaxReq:   1,
		},
	}

	srv, closeStore, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	t.Cleanup(func() {
		if err := closeStore(context.Background()); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/osu/tournaments/owc", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tournament, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	if _, _, err := NewHTTPServer(context.Background(), config.Config{}, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
