package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "PAGES_BASE_URL", "GEMINI_API_KEY",
	"MAX_GEMINI_REQUESTS", "OUTPUT_DIR", "SOURCES_CONFIG_PATH", "REDIS_ADDR",
	"TRANSLATION_CACHE_TTL", "FETCH_CONCURRENCY", "TRANSLATE_CONCURRENCY",
	"REQUEST_TIMEOUT", "RETRY_ATTEMPTS", "RETRY_DELAY", "SCHEDULE_CRON",
	"ENABLE_HTTP_MONITORING", "MONITORING_PORT", "LOG_LEVEL", "DEBUG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "docs", cfg.OutputDir)
	require.Equal(t, "configs/sources.yaml", cfg.SourcesConfigPath)
	require.Equal(t, 20, cfg.MaxGeminiRequests)
	require.Equal(t, 72*time.Hour, cfg.TranslationCacheTTL)
	require.Equal(t, 4, cfg.FetchConcurrency)
	require.Equal(t, 3, cfg.TranslateConcurrency)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 2, cfg.RetryAttempts)
	require.Equal(t, time.Second, cfg.RetryDelay)
	require.Equal(t, 8080, cfg.MonitoringPort)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.Debug)
	require.False(t, cfg.EnableHTTPMonitoring)
	require.False(t, cfg.TelegramEnabled())
	require.Empty(t, cfg.ScheduleCron)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "@briefing")
	t.Setenv("PAGES_BASE_URL", "https://user.github.io/briefing/")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("SCHEDULE_CRON", "0 6 * * *")
	t.Setenv("ENABLE_HTTP_MONITORING", "true")
	t.Setenv("MONITORING_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.TelegramEnabled())
	require.Equal(t, "https://user.github.io/briefing", cfg.PagesBaseURL)
	require.Equal(t, 8, cfg.FetchConcurrency)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, "0 6 * * *", cfg.ScheduleCron)
	require.True(t, cfg.EnableHTTPMonitoring)
	require.Equal(t, 9090, cfg.MonitoringPort)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.True(t, cfg.Debug)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_CONCURRENCY", "lots")
	t.Setenv("RETRY_DELAY", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.FetchConcurrency)
	require.Equal(t, time.Second, cfg.RetryDelay)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"telegram without base url", func(c *Config) {
			c.TelegramToken, c.TelegramChatID, c.PagesBaseURL = "t", "c", ""
		}, "PAGES_BASE_URL"},
		{"zero fetch concurrency", func(c *Config) { c.FetchConcurrency = 0 }, "FETCH_CONCURRENCY"},
		{"zero retry attempts", func(c *Config) { c.RetryAttempts = 0 }, "RETRY_ATTEMPTS"},
		{"bad cron", func(c *Config) { c.ScheduleCron = "every morning" }, "SCHEDULE_CRON"},
		{"bad port", func(c *Config) { c.EnableHTTPMonitoring, c.MonitoringPort = true, 70000 }, "MONITORING_PORT"},
		{"port ignored when monitoring off", func(c *Config) { c.MonitoringPort = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				OutputDir:            "docs",
				MaxGeminiRequests:    20,
				FetchConcurrency:     4,
				TranslateConcurrency: 3,
				RequestTimeout:       10 * time.Second,
				RetryAttempts:        2,
				RetryDelay:           time.Second,
				TranslationCacheTTL:  time.Hour,
				MonitoringPort:       8080,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
