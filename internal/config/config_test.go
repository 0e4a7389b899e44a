package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("EMAIL_PROVIDER", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development config to not be production")
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("expected wildcard cors default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "none" {
		t.Fatalf("expected default email provider none, got %s", cfg.EmailProvider)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.UseRedisRateLimit {
		t.Fatalf("expected redis rate limiting disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("ADMIN_JWT_SECRET", "topsecret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://swiftfreight.example, https://admin.swiftfreight.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("USE_REDIS_RATE_LIMIT", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("NOTIFY_INBOX_EMAIL", "ops@swiftfreight.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production config")
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.AdminJWTSecret != "topsecret" {
		t.Fatalf("expected jwt secret override")
	}
	want := []string{"https://swiftfreight.example", "https://admin.swiftfreight.example"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("expected cors override, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerMinute != 5 {
		t.Fatalf("expected rate limit override, got %d", cfg.RateLimitPerMinute)
	}
	if !cfg.UseRedisRateLimit || cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected redis rate limit wiring, got %v %s", cfg.UseRedisRateLimit, cfg.RedisAddr)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected provider normalized to lowercase, got %s", cfg.EmailProvider)
	}
	if cfg.NotifyInboxEmail != "ops@swiftfreight.example" {
		t.Fatalf("expected notify inbox override, got %s", cfg.NotifyInboxEmail)
	}
}
