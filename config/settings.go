package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultPort = "8080"

type Settings struct {
	Port   string
	GoEnv  string
	DB     DatabaseSettings
	Redis  RedisSettings
	PubSub PubSubSettings

	ApiSecret      string
	TokenLifespan  time.Duration
	CookieSecure   bool
	AllowedOrigins []string
	Timezone       string
	PhoneRegion    string
	LogLevel       string
	SkipMigrations bool

	RateLimitEnabled     bool
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
}

type DatabaseSettings struct {
	User            string
	Password        string
	Host            string
	Port            string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisSettings struct {
	Address string
}

type PubSubSettings struct {
	ProjectId       string
	CredentialsJSON string
	Topic           string
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// LoadSettings reads the process environment (after .env) into Settings.
func LoadSettings() *Settings {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	return &Settings{
		Port:  port,
		GoEnv: strings.TrimSpace(os.Getenv("GO_ENV")),
		DB: DatabaseSettings{
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Host:            os.Getenv("DB_HOST"),
			Port:            stringFromEnv("DB_PORT", "3306"),
			Name:            os.Getenv("DB_NAME"),
			MaxOpenConns:    intFromEnv("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    intFromEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second,
		},
		Redis: RedisSettings{
			Address: os.Getenv("REDIS_ADDRESS"),
		},
		PubSub: PubSubSettings{
			ProjectId:       pubSubProjectID(),
			CredentialsJSON: os.Getenv("PUBSUB_CREDENTIALS_JSON"),
			Topic:           os.Getenv("PUBSUB_TOPIC"),
		},
		ApiSecret:      os.Getenv("API_SECRET"),
		TokenLifespan:  time.Duration(intFromEnv("TOKEN_MINUTE_LIFESPAN", 30)) * time.Minute,
		CookieSecure:   boolFromEnv("COOKIE_SECURE"),
		AllowedOrigins: splitAndTrim(stringFromEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Timezone:       stringFromEnv("APP_TIMEZONE", "Asia/Tokyo"),
		PhoneRegion:    stringFromEnv("PHONE_REGION", "JP"),
		LogLevel:       stringFromEnv("LOG_LEVEL", "info"),
		SkipMigrations: boolFromEnv("SKIP_MIGRATIONS"),

		RateLimitEnabled:     boolFromEnv("RATE_LIMIT_ENABLED"),
		RateLimitMaxRequests: intFromEnv("RATE_LIMIT_MAX_REQUESTS", 600),
		RateLimitWindow:      time.Duration(intFromEnv("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.GoEnv, "production")
}

func pubSubProjectID() string {
	// Prefer explicit override.
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		return v
	}
	// Cloud Run/Cloud Functions often set this.
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		return v
	}
	return os.Getenv("GCP_PROJECT")
}

func stringFromEnv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
