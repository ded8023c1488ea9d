package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("MATCH_DEFAULT_RADIUS_KM", "")
	t.Setenv("JWT_REMEMBER_TTL", "")

	cfg := Load()

	if cfg.Storage != StoragePostgres {
		t.Errorf("expected postgres storage by default, got %q", cfg.Storage)
	}
	if cfg.Matching.DefaultRadiusKm != 5 {
		t.Errorf("expected default radius 5, got %v", cfg.Matching.DefaultRadiusKm)
	}
	if cfg.Auth.RememberTTL != 30*24*time.Hour {
		t.Errorf("expected 30 day remember ttl, got %v", cfg.Auth.RememberTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("MATCH_DEFAULT_RADIUS_KM", "7.5")
	t.Setenv("BOOKING_LOCK_TTL", "2s")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	if cfg.Storage != StorageMemory {
		t.Errorf("expected memory storage, got %q", cfg.Storage)
	}
	if cfg.Matching.DefaultRadiusKm != 7.5 {
		t.Errorf("expected radius 7.5, got %v", cfg.Matching.DefaultRadiusKm)
	}
	if cfg.Booking.LockTTL != 2*time.Second {
		t.Errorf("expected 2s lock ttl, got %v", cfg.Booking.LockTTL)
	}
	if !cfg.RabbitMQ.Enabled {
		t.Error("expected rabbitmq enabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.CORS.AllowedOrigins)
	}
}

func TestGetFloatEnv_RejectsNonPositive(t *testing.T) {
	t.Setenv("TEST_FLOAT", "-3")
	if got := getFloatEnv("TEST_FLOAT", 5); got != 5 {
		t.Errorf("expected fallback 5, got %v", got)
	}
	t.Setenv("TEST_FLOAT", "abc")
	if got := getFloatEnv("TEST_FLOAT", 5); got != 5 {
		t.Errorf("expected fallback 5, got %v", got)
	}
}
