package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/deusflow/briefing/internal/aggregator"
	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/category"
	"github.com/deusflow/briefing/internal/config"
	"github.com/deusflow/briefing/internal/gemini"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/ratelimit"
	"github.com/deusflow/briefing/internal/render"
	"github.com/deusflow/briefing/internal/retry"
	"github.com/deusflow/briefing/internal/rss"
	"github.com/deusflow/briefing/internal/telegram"
	"github.com/deusflow/briefing/internal/translate"
)

type Aggregator interface {
	Run(ctx context.Context) aggregator.Result
}

type Renderer interface {
	Render(result map[category.Standard][]article.Article) (map[category.Standard]string, error)
}

type Notifier interface {
	SendBriefing(ctx context.Context, pages map[category.Standard]string, date string) error
}

// Pipeline is one aggregate, render, notify pass.
type Pipeline struct {
	aggregator Aggregator
	renderer   Renderer
	notifier   Notifier // nil disables notification
	metrics    *metrics.Metrics
	log        *slog.Logger
	now        func() time.Time
}

func NewPipeline(a Aggregator, r Renderer, n Notifier, m *metrics.Metrics, log *slog.Logger) *Pipeline {
	return &Pipeline{
		aggregator: a,
		renderer:   r,
		notifier:   n,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// Run executes the pipeline. Fetch and translation problems are absorbed
// by the aggregator; only render and notify failures are returned.
// Generated pages stay in place when notification fails.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.log.Info("briefing run started")

	result := p.aggregator.Run(ctx)

	pages, err := p.renderer.Render(result)
	if err != nil {
		p.metrics.SetError(err.Error())
		return fmt.Errorf("render: %w", err)
	}
	p.metrics.AddPagesRendered(len(pages))
	p.log.Info("pages rendered", "pages", len(pages), "articles", result.Total())

	if p.notifier == nil {
		p.log.Warn("telegram not configured, skipping notification")
	} else if err := p.notifier.SendBriefing(ctx, pages, p.now().Format("2006-01-02")); err != nil {
		p.metrics.SetError(err.Error())
		return fmt.Errorf("notify: %w", err)
	}

	p.metrics.SetLastRun()
	p.log.Info("briefing run finished", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// Build wires the production pipeline from cfg. The returned cleanup
// releases clients opened along the way.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Pipeline, func(), error) {
	m := metrics.Global
	noop := func() {}

	defs, err := loadDefinitions(cfg.SourcesConfigPath)
	if err != nil {
		return nil, noop, err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	fetchRetry := retry.RetryConfig{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}
	sources := make([]aggregator.Source, 0, len(defs))
	for _, def := range defs {
		sources = append(sources, rss.NewFeedSource(def,
			rss.WithHTTPClient(httpClient),
			rss.WithRetry(fetchRetry),
			rss.WithLogger(log),
		))
	}

	trCache := newTranslationCache(ctx, cfg.RedisAddr, log)
	closers := []func(){func() { _ = trCache.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	backends := []translate.Backend{translate.NewGoogleBackend()}
	if cfg.GeminiAPIKey != "" {
		limiter := ratelimit.New(map[string]int{gemini.Provider: cfg.MaxGeminiRequests}, log)
		g, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, limiter)
		if err != nil {
			log.Warn("gemini unavailable, using google translate only", "error", err)
		} else {
			backends = append(backends, g)
			closers = append(closers, g.Close)
		}
	}
	translator := translate.New(backends,
		translate.WithCache(trCache, cfg.TranslationCacheTTL),
		translate.WithMetrics(m),
		translate.WithLogger(log),
	)

	engine := aggregator.New(sources, translator, aggregator.Config{
		FetchConcurrency:     cfg.FetchConcurrency,
		TranslateConcurrency: cfg.TranslateConcurrency,
	}, aggregator.WithMetrics(m), aggregator.WithLogger(log))

	renderer, err := render.New(cfg.OutputDir, render.WithBaseURL(cfg.PagesBaseURL), render.WithLogger(log))
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	p := NewPipeline(engine, renderer, nil, m, log)
	if cfg.TelegramEnabled() {
		p.notifier = telegram.New(cfg.TelegramToken, cfg.TelegramChatID, cfg.PagesBaseURL,
			telegram.WithMetrics(m), telegram.WithLogger(log))
	}
	return p, cleanup, nil
}

// Run builds the pipeline and executes it once.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	p, cleanup, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()
	return p.Run(ctx)
}

func loadDefinitions(path string) ([]rss.Definition, error) {
	overrides, err := rss.LoadSources(path)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	return rss.Apply(rss.Builtin(), overrides), nil
}
