package app

import (
	"context"
	"log/slog"

	"github.com/deusflow/briefing/internal/cache"
	"github.com/deusflow/briefing/internal/translate"
)

// translationCache is a translate.Cache that owns a connection.
type translationCache interface {
	translate.Cache
	Close() error
}

var (
	_ translationCache = (*cache.Memory)(nil)
	_ translationCache = (*cache.Redis)(nil)
)

// newTranslationCache prefers redis when an address is configured and
// reachable, and falls back to the in-process cache otherwise.
func newTranslationCache(ctx context.Context, redisAddr string, log *slog.Logger) translationCache {
	if redisAddr == "" {
		return cache.New()
	}
	r, err := cache.NewRedis(ctx, redisAddr)
	if err != nil {
		log.Warn("redis unavailable, using in-memory translation cache", "addr", redisAddr, "error", err)
		return cache.New()
	}
	log.Info("translation cache connected", "backend", "redis", "addr", redisAddr)
	return r
}
