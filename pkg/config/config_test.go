package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd to be true")
	}
	if cfg.Catalog.Path != "testdata/catalog.json" {
		t.Fatalf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if cfg.Delivery.ExpressFeeCents != 1500 {
		t.Fatalf("expected default express fee 1500, got %d", cfg.Delivery.ExpressFeeCents)
	}
	if cfg.Sessions.UseRedis() {
		t.Fatalf("expected memory sessions by default")
	}
	if cfg.Sessions.TTL != 24*time.Hour {
		t.Fatalf("expected default session TTL 24h, got %v", cfg.Sessions.TTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownSessionsBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionsBackend, "zookeeper")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown sessions backend to return an error")
	}
}

func TestAllowedOrigins(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("STOREFRONT_CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	origins := cfg.App.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://shop.example.com" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvCatalogPath, "testdata/catalog.json")
}
