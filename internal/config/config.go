package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultRefreshInterval   = 30 * time.Second
	defaultHeartbeatInterval = time.Second
)

type Config struct {
	HealthAPIURL      string
	HealthAPIKey      string
	HTTPAddr          string
	MetricsAddr       string
	DatabaseURL       string
	RefreshInterval   time.Duration
	HeartbeatInterval time.Duration
	ExcludedDomains   []string
}

type LoadOptions struct {
	RequireHealthAPIURL bool
	RequireDatabaseURL  bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireHealthAPIURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		HealthAPIURL:      strings.TrimSpace(os.Getenv("HEALTH_API_URL")),
		HealthAPIKey:      strings.TrimSpace(os.Getenv("HEALTH_API_KEY")),
		HTTPAddr:          getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RefreshInterval:   defaultRefreshInterval,
		HeartbeatInterval: defaultHeartbeatInterval,
		ExcludedDomains:   splitList(os.Getenv("EXCLUDED_DOMAINS")),
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}
	if v := os.Getenv("HEARTBEAT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HeartbeatInterval = d
		}
	}

	if opts.RequireHealthAPIURL && cfg.HealthAPIURL == "" {
		return cfg, errors.New("HEALTH_API_URL is required")
	}
	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
