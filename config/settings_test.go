package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{"API_PORT", "PORT", "DB_PORT", "TOKEN_MINUTE_LIFESPAN", "CORS_ALLOWED_ORIGINS", "APP_TIMEZONE", "PHONE_REGION", "RATE_LIMIT_ENABLED", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_WINDOW_SECONDS", "SKIP_MIGRATIONS"} {
		t.Setenv(key, "")
	}

	s := LoadSettings()
	if s.Port != defaultPort || s.DB.Port != "3306" {
		t.Fatalf("unexpected ports: %q %q", s.Port, s.DB.Port)
	}
	if s.TokenLifespan != 30*time.Minute || s.Timezone != "Asia/Tokyo" || s.PhoneRegion != "JP" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.AllowedOrigins) != 1 || s.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %v", s.AllowedOrigins)
	}
	if s.RateLimitEnabled || s.RateLimitMaxRequests != 600 || s.RateLimitWindow != time.Minute || s.SkipMigrations {
		t.Fatalf("unexpected rate limit defaults: %+v", s)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_MINUTE_LIFESPAN", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "1")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "not-a-number")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("GO_ENV", "Production")

	s := LoadSettings()
	if s.Port != "9090" || s.TokenLifespan != 15*time.Minute || !s.CookieSecure || !s.IsProduction() {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if len(s.AllowedOrigins) != 2 || s.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", s.AllowedOrigins)
	}
	if !s.RateLimitEnabled || s.RateLimitMaxRequests != 600 || s.RateLimitWindow != 5*time.Second {
		t.Fatalf("unexpected rate limit settings: %+v", s)
	}
}

func TestPubSubProjectIdFallback(t *testing.T) {
	t.Setenv("PUBSUB_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GCP_PROJECT", "legacy")
	if got := pubSubProjectID(); got != "legacy" {
		t.Fatalf("pubSubProjectID = %q", got)
	}
	t.Setenv("PUBSUB_PROJECT_ID", "explicit")
	if got := pubSubProjectID(); got != "explicit" {
		t.Fatalf("pubSubProjectID = %q", got)
	}
}

func TestBackoffIsCapped(t *testing.T) {
	if backoff(1) != 2*time.Second || backoff(3) != 8*time.Second || backoff(10) != 30*time.Second {
		t.Fatalf("unexpected backoff: %s %s %s", backoff(1), backoff(3), backoff(10))
	}
}

func TestLoggerLevelAndLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	if logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %s", logger.GetLevel())
	}
	if newLogger(&buf, "loud").GetLevel() != logrus.InfoLevel {
		t.Fatalf("unknown level should fall back to info")
	}

	LogError(logger, "reports", "Create", "insert", map[string]int{"id": 1}, errors.New("boom"))
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "boom" || entry["module"] != "reports" || entry["funcName"] != "Create" || entry["level"] != "error" {
		t.Fatalf("unexpected log entry: %v", entry)
	}

	buf.Reset()
	LogError(logger, "reports", "Create", "insert", nil, nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error should not log: %q", buf.String())
	}
}
