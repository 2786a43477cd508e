package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tasklight?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret-0123456789abcdef0123456789")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected development, got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.AppPort)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected 1h token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to be true")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore; unset so "required" trips.
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("JWT_SECRET", "x")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing required variables")
	}
}

func TestLoad_WeakSecretInProduction(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	if !errors.Is(err, ErrWeakSecret) {
		t.Errorf("expected ErrWeakSecret, got %v", err)
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", origins)
	}
}
