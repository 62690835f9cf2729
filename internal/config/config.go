package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ExtractorPlaceholder = "placeholder"
	ExtractorPDF         = "pdf"
)

type Config struct {
	Env  string
	Port int

	GoogleAPIKey string
	GeminiModel  string

	// Optional integrations; empty means disabled.
	DBURL         string
	RabbitMQURL   string
	RedisAddr     string
	RedisPassword string
	R2            *R2Config

	SessionTTL       time.Duration
	InsightsCacheTTL time.Duration
	ResumeExtractor  string
	AllowedOrigins   []string
	OtelEnabled      bool
}

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply a map.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Env:             get("APP_ENV", "development"),
		GoogleAPIKey:    get("GOOGLE_API_KEY", ""),
		GeminiModel:     get("GEMINI_MODEL", "gemini-2.5-flash"),
		DBURL:           get("DB_URL", ""),
		RabbitMQURL:     get("RABBITMQ_URL", ""),
		RedisAddr:       get("REDIS_ADDR", ""),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		ResumeExtractor: strings.ToLower(get("RESUME_EXTRACTOR", ExtractorPlaceholder)),
		AllowedOrigins:  splitList(get("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("empty GOOGLE_API_KEY in env")
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "2h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.InsightsCacheTTL, err = time.ParseDuration(get("INSIGHTS_CACHE_TTL", "6h")); err != nil {
		return nil, fmt.Errorf("invalid INSIGHTS_CACHE_TTL: %w", err)
	}

	switch cfg.ResumeExtractor {
	case ExtractorPlaceholder, ExtractorPDF:
	default:
		return nil, fmt.Errorf("unknown RESUME_EXTRACTOR %q", cfg.ResumeExtractor)
	}

	cfg.OtelEnabled, _ = strconv.ParseBool(get("OTEL_ENABLED", "false"))

	r2 := R2Config{
		AccountID: get("R2_ACCOUNT_ID", ""),
		Bucket:    get("R2_BUCKET", ""),
		AccessKey: get("R2_ACCESS_KEY", ""),
		SecretKey: get("R2_SECRET_KEY", ""),
	}
	switch set := countSet(r2.AccountID, r2.Bucket, r2.AccessKey, r2.SecretKey); set {
	case 0:
	case 4:
		cfg.R2 = &r2
	default:
		return nil, fmt.Errorf("R2 archive needs R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY and R2_SECRET_KEY (got %d of 4)", set)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
