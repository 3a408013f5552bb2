package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOCK_TTL", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Addr())
	}
	if cfg.LockTTL != 5*time.Second {
		t.Fatalf("expected 5s lock ttl, got %v", cfg.LockTTL)
	}
	if cfg.TwilioEnabled() {
		t.Fatalf("twilio must be disabled without credentials")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOCK_TTL", "250ms")
	t.Setenv("LOCK_RETRIES", "x")
	t.Setenv("S3_BUCKET", "salon-backups")

	cfg := Load()

	if cfg.Addr() != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.Addr())
	}
	if cfg.LockTTL != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cfg.LockTTL)
	}
	if cfg.LockRetries != 3 {
		t.Fatalf("invalid int must fall back to default, got %d", cfg.LockRetries)
	}
	if !cfg.S3Enabled() {
		t.Fatalf("expected s3 enabled")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}
