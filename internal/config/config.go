package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// Telegram settings
	TelegramToken  string
	TelegramChatID string
	PagesBaseURL   string // public root of the generated site

	// Gemini settings
	GeminiAPIKey      string
	MaxGeminiRequests int // per day, 0 = unlimited

	// Output and sources
	OutputDir         string
	SourcesConfigPath string

	// Translation cache
	RedisAddr           string // empty = in-memory cache
	TranslationCacheTTL time.Duration

	// Pipeline settings
	FetchConcurrency     int
	TranslateConcurrency int
	RequestTimeout       time.Duration
	RetryAttempts        int
	RetryDelay           time.Duration

	// Scheduling and monitoring
	ScheduleCron         string // empty = run once and exit
	EnableHTTPMonitoring bool
	MonitoringPort       int

	// App settings
	Debug    bool
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		PagesBaseURL:   strings.TrimRight(os.Getenv("PAGES_BASE_URL"), "/"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ScheduleCron:   strings.TrimSpace(os.Getenv("SCHEDULE_CRON")),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),

		MaxGeminiRequests:    getEnvIntOrDefault("MAX_GEMINI_REQUESTS", 20),
		OutputDir:            getEnvOrDefault("OUTPUT_DIR", "docs"),
		SourcesConfigPath:    getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml"),
		TranslationCacheTTL:  getEnvDurationOrDefault("TRANSLATION_CACHE_TTL", 72*time.Hour),
		FetchConcurrency:     getEnvIntOrDefault("FETCH_CONCURRENCY", 4),
		TranslateConcurrency: getEnvIntOrDefault("TRANSLATE_CONCURRENCY", 3),
		RequestTimeout:       getEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		RetryAttempts:        getEnvIntOrDefault("RETRY_ATTEMPTS", 2),
		RetryDelay:           getEnvDurationOrDefault("RETRY_DELAY", time.Second),
		MonitoringPort:       getEnvIntOrDefault("MONITORING_PORT", 8080),
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("ENABLE_HTTP_MONITORING"); v == "true" || v == "1" {
		cfg.EnableHTTPMonitoring = true
	}

	return cfg, cfg.Validate()
}

// TelegramEnabled reports whether notification credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	var errs []error

	if c.TelegramEnabled() && c.PagesBaseURL == "" {
		errs = append(errs, errors.New("PAGES_BASE_URL is required when Telegram is configured"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("OUTPUT_DIR must not be empty"))
	}
	if c.MaxGeminiRequests < 0 {
		errs = append(errs, errors.New("MAX_GEMINI_REQUESTS must be >= 0"))
	}
	if c.FetchConcurrency < 1 {
		errs = append(errs, errors.New("FETCH_CONCURRENCY must be >= 1"))
	}
	if c.TranslateConcurrency < 1 {
		errs = append(errs, errors.New("TRANSLATE_CONCURRENCY must be >= 1"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, errors.New("RETRY_ATTEMPTS must be >= 1"))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, errors.New("RETRY_DELAY must not be negative"))
	}
	if c.TranslationCacheTTL <= 0 {
		errs = append(errs, errors.New("TRANSLATION_CACHE_TTL must be positive"))
	}
	if c.EnableHTTPMonitoring && (c.MonitoringPort < 1 || c.MonitoringPort > 65535) {
		errs = append(errs, fmt.Errorf("MONITORING_PORT %d out of range", c.MonitoringPort))
	}
	if c.ScheduleCron != "" {
		if _, err := cron.ParseStandard(c.ScheduleCron); err != nil {
			errs = append(errs, fmt.Errorf("SCHEDULE_CRON %q: %w", c.ScheduleCron, err))
		}
	}

	return errors.Join(errs...)
}
