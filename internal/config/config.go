package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Addr               string
	TLSCert            string
	TLSKey             string
	DatabaseURL        string
	TokenKey           string
	HistoryDir         string
	HistoryMaxItems    int
	DescriptionMaxLen  int
	HistoryTimezone    *time.Location
	RedisURL           string
	HistoryCacheTTL    time.Duration
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		return nil, fmt.Errorf("TOKEN_KEY environment variable is not set")
	}

	maxItems, err := strconv.Atoi(getEnv("HISTORY_MAX_ITEMS", "100"))
	if err != nil || maxItems <= 0 {
		return nil, fmt.Errorf("invalid HISTORY_MAX_ITEMS: %q", os.Getenv("HISTORY_MAX_ITEMS"))
	}

	descLen, err := strconv.Atoi(getEnv("DESCRIPTION_MAX_LEN", "200"))
	if err != nil || descLen <= 0 {
		return nil, fmt.Errorf("invalid DESCRIPTION_MAX_LEN: %q", os.Getenv("DESCRIPTION_MAX_LEN"))
	}

	tz, err := time.LoadLocation(getEnv("HISTORY_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_TIMEZONE: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("HISTORY_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_CACHE_TTL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %q", os.Getenv("RATE_LIMIT_RPS"))
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "3"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %q", os.Getenv("RATE_LIMIT_BURST"))
	}

	return &Config{
		Addr:               getEnv("SERVER_ADDR", ":8443"),
		TLSCert:            os.Getenv("TLS_CERT"),
		TLSKey:             os.Getenv("TLS_KEY"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		TokenKey:           tokenKey,
		HistoryDir:         getEnv("HISTORY_DIR", "./data/history"),
		HistoryMaxItems:    maxItems,
		DescriptionMaxLen:  descLen,
		HistoryTimezone:    tz,
		RedisURL:           os.Getenv("REDIS_URL"),
		HistoryCacheTTL:    cacheTTL,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
