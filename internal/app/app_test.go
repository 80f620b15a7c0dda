package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deusflow/briefing/internal/aggregator"
	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/cache"
	"github.com/deusflow/briefing/internal/category"
	"github.com/deusflow/briefing/internal/config"
	"github.com/deusflow/briefing/internal/logger"
	"github.com/deusflow/briefing/internal/metrics"
)

type fakeAggregator struct{ result aggregator.Result }

func (f *fakeAggregator) Run(context.Context) aggregator.Result { return f.result }

type fakeRenderer struct {
	pages map[category.Standard]string
	err   error
	got   map[category.Standard][]article.Article
}

func (f *fakeRenderer) Render(res map[category.Standard][]article.Article) (map[category.Standard]string, error) {
	f.got = res
	return f.pages, f.err
}

type fakeNotifier struct {
	err   error
	calls int
	date  string
	pages map[category.Standard]string
}

func (f *fakeNotifier) SendBriefing(_ context.Context, pages map[category.Standard]string, date string) error {
	f.calls++
	f.pages = pages
	f.date = date
	return f.err
}

func testResult() aggregator.Result {
	res := aggregator.Result{}
	for _, std := range category.All() {
		res[std] = nil
	}
	res[category.WorldGeneral] = []article.Article{{Title: "headline"}}
	return res
}

func testPages() map[category.Standard]string {
	return map[category.Standard]string{category.DomesticGeneral: "2026/10/14/domestic_general.html"}
}

func TestPipelineRunSuccess(t *testing.T) {
	r := &fakeRenderer{pages: testPages()}
	n := &fakeNotifier{}
	m := metrics.New()
	p := NewPipeline(&fakeAggregator{result: testResult()}, r, n, m, logger.Discard())
	p.now = func() time.Time { return time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC) }

	require.NoError(t, p.Run(context.Background()))
	require.Len(t, r.got, 5)
	require.Equal(t, 1, n.calls)
	require.Equal(t, "2026-10-14", n.date)
	require.Equal(t, testPages(), n.pages)
	require.Equal(t, true, m.GetStats()["is_healthy"])
	require.Equal(t, int64(1), m.GetStats()["pages_rendered"])
}

func TestPipelineRenderFailureIsReturned(t *testing.T) {
	r := &fakeRenderer{err: errors.New("disk full")}
	n := &fakeNotifier{}
	m := metrics.New()
	p := NewPipeline(&fakeAggregator{result: testResult()}, r, n, m, logger.Discard())

	err := p.Run(context.Background())
	require.ErrorContains(t, err, "render: disk full")
	require.Zero(t, n.calls)
	require.Equal(t, false, m.GetStats()["is_healthy"])
}

func TestPipelineNotifyFailureIsReturned(t *testing.T) {
	n := &fakeNotifier{err: errors.New("chat not found")}
	p := NewPipeline(&fakeAggregator{result: testResult()}, &fakeRenderer{pages: testPages()}, n, metrics.New(), logger.Discard())

	err := p.Run(context.Background())
	require.ErrorContains(t, err, "notify: chat not found")
	require.Equal(t, 1, n.calls)
}

func TestPipelineWithoutNotifier(t *testing.T) {
	p := NewPipeline(&fakeAggregator{result: testResult()}, &fakeRenderer{pages: testPages()}, nil, metrics.New(), logger.Discard())
	require.NoError(t, p.Run(context.Background()))
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		OutputDir:            filepath.Join(dir, "docs"),
		SourcesConfigPath:    filepath.Join(dir, "missing.yaml"),
		MaxGeminiRequests:    20,
		TranslationCacheTTL:  time.Hour,
		FetchConcurrency:     2,
		TranslateConcurrency: 2,
		RequestTimeout:       time.Second,
		RetryAttempts:        1,
		RetryDelay:           time.Millisecond,
	}
}

func TestBuildWithoutTelegram(t *testing.T) {
	cfg := baseConfig(t)
	p, cleanup, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, p)
	require.Nil(t, p.notifier)
	require.NotNil(t, p.aggregator)
	require.NotNil(t, p.renderer)
}

func TestBuildWithTelegram(t *testing.T) {
	cfg := baseConfig(t)
	cfg.TelegramToken, cfg.TelegramChatID, cfg.PagesBaseURL = "t", "c", "https://example.com"

	p, cleanup, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, p.notifier)
}

func TestBuildRejectsBrokenSourcesFile(t *testing.T) {
	cfg := baseConfig(t)
	require.NoError(t, os.WriteFile(cfg.SourcesConfigPath, []byte("sources: [ {limit: 3} ]"), 0o644))

	_, cleanup, err := Build(context.Background(), cfg, logger.Discard())
	defer cleanup()
	require.ErrorContains(t, err, "load sources")
}

func TestTranslationCacheFallsBackToMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c := newTranslationCache(ctx, "127.0.0.1:1", logger.Discard())
	defer c.Close()
	_, ok := c.(*cache.Memory)
	require.True(t, ok)

	_, ok = newTranslationCache(ctx, "", logger.Discard()).(*cache.Memory)
	require.True(t, ok)
}
