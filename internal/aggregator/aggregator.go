package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/category"
	"github.com/deusflow/briefing/internal/importance"
	"github.com/deusflow/briefing/internal/metrics"
)

// MaxPerCategory caps every category list in a Result.
const MaxPerCategory = 20

// Source is one upstream news provider.
type Source interface {
	ID() string
	Name() string
	Domestic() bool
	Limit() int
	Fetch(ctx context.Context, sourceCategory string, limit int) ([]article.Article, error)
}

// Translator rewrites a foreign-language article. It must return the
// input unchanged when translation fails.
type Translator interface {
	TranslateArticle(ctx context.Context, a article.Article) article.Article
}

// Result maps every standard category to its final article list.
type Result map[category.Standard][]article.Article

// Total returns the number of articles across all categories.
func (r Result) Total() int {
	n := 0
	for _, list := range r {
		n += len(list)
	}
	return n
}

type Config struct {
	FetchConcurrency     int
	TranslateConcurrency int
}

type Engine struct {
	sources    []Source
	translator Translator
	cfg        Config
	metrics    *metrics.Metrics
	log        *slog.Logger
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine over sources, processed in the given order. A nil
// translator leaves foreign articles untranslated.
func New(sources []Source, translator Translator, cfg Config, opts ...Option) *Engine {
	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}
	if cfg.TranslateConcurrency < 1 {
		cfg.TranslateConcurrency = 1
	}
	e := &Engine{
		sources:    sources,
		translator: translator,
		cfg:        cfg,
		metrics:    metrics.Global,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "aggregator")
	return e
}

// pair is one (source, source category) fetch unit, already resolved to
// its standard category.
type pair struct {
	source         Source
	sourceCategory string
	standard       category.Standard
}

// pairs lists fetch units in processing order: sources in registration
// order, each source's categories in declaration order. Keys that do not
// map to a standard category are left out.
func (e *Engine) pairs() []pair {
	var out []pair
	for _, src := range e.sources {
		for _, key := range category.SourceCategories(src.ID()) {
			std, ok := category.MapToStandard(src.ID(), key)
			if !ok {
				continue
			}
			out = append(out, pair{source: src, sourceCategory: key, standard: std})
		}
	}
	return out
}

// Run performs one aggregation pass. Fetch and translation failures are
// logged and absorbed; the result always holds all standard categories.
func (e *Engine) Run(ctx context.Context) Result {
	start := time.Now()
	log := e.log.With("run_id", uuid.NewString())

	pairs := e.pairs()
	log.Info("aggregation started", "sources", len(e.sources), "pairs", len(pairs))

	batches := e.fetchAll(ctx, log, pairs)
	e.translateAll(ctx, log, pairs, batches)

	collected := make(map[category.Standard][]article.Article, len(category.All()))
	for i, p := range pairs {
		for _, a := range batches[i] {
			a.Category = p.standard
			a.IsImportant = importance.Classify(a.Title, a.Summary)
			collected[p.standard] = append(collected[p.standard], a)
		}
	}

	result := make(Result, len(category.All()))
	for _, std := range category.All() {
		list, dropped := dedupe(collected[std])
		e.metrics.AddDuplicatesFiltered(dropped)
		sortByPublishedDesc(list)
		if len(list) > MaxPerCategory {
			list = list[:MaxPerCategory]
		}
		result[std] = list
		e.metrics.SetPublished(string(std), len(list))
		log.Info("category ready", "category", string(std), "collected", len(collected[std]), "duplicates", dropped, "kept", len(list))
	}

	elapsed := time.Since(start)
	e.metrics.RecordProcessingTime(elapsed)
	log.Info("aggregation finished", "articles", result.Total(), "duration", elapsed.Round(time.Millisecond))
	return result
}

// fetchAll runs every pair on a bounded pool. Slot i holds pair i's batch,
// nil when the call failed.
func (e *Engine) fetchAll(ctx context.Context, log *slog.Logger, pairs []pair) [][]article.Article {
	batches := make([][]article.Article, len(pairs))
	sem := make(chan struct{}, e.cfg.FetchConcurrency)

	var wg sync.WaitGroup
	for i := range pairs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			p := pairs[i]
			items, err := fetchOne(ctx, p)
			if err != nil {
				e.metrics.IncrementFeedsFailed()
				log.Warn("fetch failed", "source", p.source.ID(), "category", p.sourceCategory, "error", err)
				return
			}
			e.metrics.IncrementFeedsFetched()
			e.metrics.AddArticlesCollected(len(items))
			batches[i] = items
		}(i)
	}
	wg.Wait()
	return batches
}

func fetchOne(ctx context.Context, p pair) (items []article.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return p.source.Fetch(ctx, p.sourceCategory, p.source.Limit())
}

// translateAll replaces foreign articles in place, keeping their position
// within the batch.
func (e *Engine) translateAll(ctx context.Context, log *slog.Logger, pairs []pair, batches [][]article.Article) {
	if e.translator == nil {
		return
	}

	sem := make(chan struct{}, e.cfg.TranslateConcurrency)
	var wg sync.WaitGroup
	for i, p := range pairs {
		if p.source.Domestic() {
			continue
		}
		for j := range batches[i] {
			wg.Add(1)
			sem <- struct{}{}
			go func(i, j int) {
				defer wg.Done()
				defer func() { <-sem }()
				batches[i][j] = e.translateOne(ctx, log, batches[i][j])
			}(i, j)
		}
	}
	wg.Wait()
}

func (e *Engine) translateOne(ctx context.Context, log *slog.Logger, a article.Article) (out article.Article) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("translator panicked, keeping original", "source", a.SourceID, "title", a.Title, "panic", r)
			out = a
		}
	}()
	return e.translator.TranslateArticle(ctx, a)
}

// dedupe keeps the first article for every normalized title.
func dedupe(list []article.Article) ([]article.Article, int) {
	seen := make(map[string]struct{}, len(list))
	out := make([]article.Article, 0, len(list))
	for _, a := range list {
		key := article.NormalizeTitle(a.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out, len(list) - len(out)
}

func sortByPublishedDesc(list []article.Article) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Published.After(list[j].Published)
	})
}
