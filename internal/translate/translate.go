package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/cache"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/retry"
)

const (
	TargetLanguage = "ko"
	MaxChunkRunes  = 4500

	translatedMarker = " (번역)"
)

// ErrNoBackend means every configured backend failed for a chunk.
var ErrNoBackend = errors.New("no translation backend succeeded")

var errEmptyResult = errors.New("empty translation")

// Backend translates one chunk of text into TargetLanguage.
type Backend interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Cache stores translated chunks between calls and runs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Translator struct {
	backends []Backend
	cache    Cache
	cacheTTL time.Duration
	retry    retry.RetryConfig
	metrics  *metrics.Metrics
	log      *slog.Logger
}

type Option func(*Translator)

func WithCache(c Cache, ttl time.Duration) Option {
	return func(t *Translator) {
		t.cache = c
		t.cacheTTL = ttl
	}
}

func WithRetry(cfg retry.RetryConfig) Option {
	return func(t *Translator) { t.retry = cfg }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Translator) { t.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.log = l }
}

// New returns a Translator that tries backends in the given order.
func New(backends []Backend, opts ...Option) *Translator {
	t := &Translator{
		backends: backends,
		retry:    retry.RetryConfig{MaxAttempts: 3, Delay: time.Second},
		metrics:  metrics.Global,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("component", "translate")
	return t
}

// TranslateText translates text, splitting it into chunks that fit the
// backends. Chunks are reassembled in order, separated by spaces.
func (t *Translator) TranslateText(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if len(t.backends) == 0 {
		return "", ErrNoBackend
	}

	chunks := SplitChunks(text, MaxChunkRunes)
	out := make([]string, len(chunks))
	for i, chunk := range chunks {
		translated, err := t.translateChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out[i] = translated
	}
	return strings.Join(out, " "), nil
}

func (t *Translator) translateChunk(ctx context.Context, chunk string) (string, error) {
	key := cache.Key(TargetLanguage, chunk)
	if t.cache != nil {
		if v, ok, err := t.cache.Get(ctx, key); err != nil {
			t.log.Debug("cache read failed", "error", err)
		} else if ok {
			t.metrics.IncrementTranslationCacheHits()
			return v, nil
		}
	}

	var errs []error
	for _, b := range t.backends {
		var result string
		err := retry.WithRetry(ctx, t.retry, func() error {
			r, err := b.Translate(ctx, chunk)
			if err != nil {
				return err
			}
			if strings.TrimSpace(r) == "" {
				return errEmptyResult
			}
			result = r
			return nil
		})
		if err != nil {
			t.log.Debug("backend failed", "backend", b.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}

		if t.cache != nil {
			if err := t.cache.Set(ctx, key, result, t.cacheTTL); err != nil {
				t.log.Debug("cache write failed", "error", err)
			}
		}
		return result, nil
	}
	return "", fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}

// TranslateArticle returns a translated copy of a with the source-language
// text kept in Original. On any failure a is returned unchanged.
func (t *Translator) TranslateArticle(ctx context.Context, a article.Article) article.Article {
	title, err := t.TranslateText(ctx, a.Title)
	if err == nil && title == "" {
		err = errEmptyResult
	}
	var summary string
	if err == nil {
		summary, err = t.TranslateText(ctx, a.Summary)
	}
	if err != nil {
		t.metrics.IncrementFailedTranslations()
		t.log.Warn("translation failed, keeping original", "source", a.SourceID, "title", a.Title, "error", err)
		return a
	}

	t.metrics.IncrementSuccessfulTranslations()
	out := a
	out.Title = title
	out.Summary = summary
	out.Source = a.Source + translatedMarker
	out.Original = &article.Original{Title: a.Title, Summary: a.Summary}
	return out
}
