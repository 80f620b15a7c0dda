package rss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/retry"
)

const userAgent = "Mozilla/5.0 (NewsAggregator Bot)"

// ErrEmptyFeed is returned when a feed parses but carries no entries.
var ErrEmptyFeed = errors.New("feed has no entries")

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
}

// FeedSource fetches one upstream provider's RSS feeds. Each value carries
// its own category -> URL table and shares nothing mutable with others.
type FeedSource struct {
	def    Definition
	parser *gofeed.Parser
	retry  retry.RetryConfig
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*FeedSource)

// WithHTTPClient sets the client used for feed requests; its Timeout is the
// per-call time bound.
func WithHTTPClient(c *http.Client) Option {
	return func(s *FeedSource) { s.parser.Client = c }
}

func WithRetry(cfg retry.RetryConfig) Option {
	return func(s *FeedSource) { s.retry = cfg }
}

func WithClock(now func() time.Time) Option {
	return func(s *FeedSource) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *FeedSource) { s.log = l }
}

// NewFeedSource builds an adapter for def.
func NewFeedSource(def Definition, opts ...Option) *FeedSource {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: 10 * time.Second}

	s := &FeedSource{
		def:    def,
		parser: parser,
		retry:  retry.RetryConfig{MaxAttempts: 2, Delay: time.Second},
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("source", def.ID)
	return s
}

func (s *FeedSource) ID() string     { return s.def.ID }
func (s *FeedSource) Name() string   { return s.def.Name }
func (s *FeedSource) Domestic() bool { return s.def.Domestic }
func (s *FeedSource) Limit() int     { return s.def.Limit }

// Fetch downloads the feed for sourceCategory and returns at most limit
// articles in feed order. Unknown categories use the source default. A
// transport failure, malformed document or empty feed yields no articles
// and an error describing why; a single bad entry is skipped.
func (s *FeedSource) Fetch(ctx context.Context, sourceCategory string, limit int) ([]article.Article, error) {
	key := sourceCategory
	url, ok := s.def.Feeds[key]
	if !ok {
		key = s.def.Default
		url = s.def.Feeds[key]
		s.log.Debug("unknown category, using default", "requested", sourceCategory, "default", key)
	}
	if url == "" {
		return nil, fmt.Errorf("%s/%s: no feed url configured", s.def.ID, key)
	}
	if limit <= 0 {
		limit = s.def.Limit
	}

	var feed *gofeed.Feed
	err := retry.WithRetry(ctx, s.retry, func() error {
		f, err := s.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			return err
		}
		feed = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s/%s: fetch %s: %w", s.def.ID, key, url, err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", s.def.ID, key, ErrEmptyFeed)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]article.Article, 0, len(items))
	for i, item := range items {
		a, ok := s.toArticle(item, key)
		if !ok {
			s.log.Debug("skipping malformed entry", "category", key, "index", i)
			continue
		}
		articles = append(articles, a)
	}

	s.log.Info("feed loaded", "category", key, "entries", len(feed.Items), "kept", len(articles))
	return articles, nil
}

func (s *FeedSource) toArticle(item *gofeed.Item, key string) (article.Article, bool) {
	if item == nil {
		return article.Article{}, false
	}
	title := strings.TrimSpace(StripHTML(item.Title))
	if title == "" {
		return article.Article{}, false
	}

	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = item.Content
	}

	return article.Article{
		Title:          title,
		Link:           strings.TrimSpace(item.Link),
		Published:      s.publishedAt(item),
		Summary:        StripHTML(summary),
		Source:         s.def.Name,
		SourceID:       s.def.ID,
		SourceCategory: key,
	}, true
}

// publishedAt prefers the parsed publish date, then the update date, then
// a manual parse of the raw strings, then the current time.
func (s *FeedSource) publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if t, ok := parseDate(raw); ok {
			return t
		}
	}
	return s.now()
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
