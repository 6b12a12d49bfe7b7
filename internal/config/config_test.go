package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("HISTORY_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8443" || cfg.HistoryMaxItems != 100 || cfg.DescriptionMaxLen != 200 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HistoryCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache TTL, got %v", cfg.HistoryCacheTTL)
	}
	if cfg.TLS() {
		t.Fatalf("TLS must be off without cert and key")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRequiresTokenKey(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without TOKEN_KEY")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("HISTORY_TIMEZONE", "UTC")
	t.Setenv("HISTORY_MAX_ITEMS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TLS_CERT", "server.crt")
	t.Setenv("TLS_KEY", "server.key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HistoryMaxItems != 25 {
		t.Fatalf("expected 25, got %d", cfg.HistoryMaxItems)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.TLS() {
		t.Fatalf("expected TLS on")
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("HISTORY_TIMEZONE", "UTC")
	t.Setenv("RATE_LIMIT_BURST", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad RATE_LIMIT_BURST")
	}
}
