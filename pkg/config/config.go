package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Pipeline
	Pipeline PipelineConfig

	// External services
	Enrich   EnrichConfig
	Telegram TelegramConfig
	Feeds    FeedConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// PipelineConfig tunes the classification and alerting pipeline.
type PipelineConfig struct {
	// AlertThreshold is the minimum materiality score an item must clear
	// before it enters the per-item pipeline.
	AlertThreshold float64

	// MaxConcurrent bounds simultaneously active per-item workers.
	MaxConcurrent int

	// PollInterval is the gap between polling cycles.
	PollInterval time.Duration

	// MinMarketCapM and MaxMarketCapM bound eligible subjects, in millions
	// of dollars. Zero means unbounded.
	MinMarketCapM float64
	MaxMarketCapM float64

	// DryRun disables external side effects: ledger writes go to memory
	// and alerts go to the noop sink.
	DryRun bool
}

// EnrichConfig holds remote reasoning service configuration.
type EnrichConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   time.Duration
	Enabled   bool
	CacheTTL  time.Duration
	RateLimit int // requests per minute against the remote service
}

// TelegramConfig holds alert delivery configuration.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	Enabled  bool
}

// FeedConfig holds news intake configuration.
type FeedConfig struct {
	URLs      []string
	UserAgent string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8099"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Pipeline: PipelineConfig{
			AlertThreshold: getEnvAsFloat("ALERT_SCORE_THRESHOLD", 0.55),
			MaxConcurrent:  getEnvAsInt("MAX_CONCURRENT", 4),
			PollInterval:   getEnvAsDuration("POLL_INTERVAL", "60s"),
			MinMarketCapM:  getEnvAsFloat("MIN_MARKET_CAP_M", 0),
			MaxMarketCapM:  getEnvAsFloat("MAX_MARKET_CAP_M", 0),
			DryRun:         getEnvAsBool("DRY_RUN", false),
		},

		Enrich: EnrichConfig{
			BaseURL:   getEnv("ENRICH_BASE_URL", "https://api.openai.com/v1"),
			APIKey:    getEnv("ENRICH_API_KEY", ""),
			Model:     getEnv("ENRICH_MODEL", "gpt-4o-mini"),
			Timeout:   getEnvAsDuration("ENRICH_TIMEOUT", "20s"),
			Enabled:   getEnvAsBool("ENRICH_ENABLED", true),
			CacheTTL:  getEnvAsDuration("ENRICH_CACHE_TTL", "6h"),
			RateLimit: getEnvAsInt("ENRICH_RATE_LIMIT", 30),
		},

		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
			Enabled:  getEnvAsBool("TELEGRAM_ENABLED", true),
		},

		Feeds: FeedConfig{
			URLs:      getEnvAsList("FEED_URLS"),
			UserAgent: getEnv("FEED_USER_AGENT", "newswatch/1.0"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required configuration values. Fatal configuration errors
// must surface here, before the polling loop starts; every failure past this
// point is recovered locally.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if !c.Pipeline.DryRun && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required unless DRY_RUN=true")
	}

	if c.Pipeline.MaxConcurrent < 1 {
		return fmt.Errorf("MAX_CONCURRENT must be >= 1, got %d", c.Pipeline.MaxConcurrent)
	}

	if c.Pipeline.AlertThreshold <= 0 || c.Pipeline.AlertThreshold > 1 {
		return fmt.Errorf("ALERT_SCORE_THRESHOLD must be in (0,1], got %.2f", c.Pipeline.AlertThreshold)
	}

	if c.Enrich.Enabled && c.Enrich.APIKey == "" {
		return fmt.Errorf("ENRICH_API_KEY is required when ENRICH_ENABLED=true")
	}

	if c.Telegram.Enabled && !c.Pipeline.DryRun {
		if c.Telegram.BotToken == "" || c.Telegram.ChatID == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when TELEGRAM_ENABLED=true")
		}
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
