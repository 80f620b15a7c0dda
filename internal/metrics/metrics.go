package metrics

import (
	"sync"
	"time"
)

// Metrics accumulates pipeline counters across runs. All methods are safe
// for concurrent use.
type Metrics struct {
	mu sync.RWMutex

	// fetching
	FeedsFetched      int64
	FeedsFailed       int64
	ArticlesCollected int64

	// post-processing
	DuplicatesFiltered int64
	Published          map[string]int // last run, per standard category

	// translation
	SuccessfulTranslations int64
	FailedTranslations     int64
	TranslationCacheHits   int64

	// output
	PagesRendered        int64
	TelegramMessagesSent int64

	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true, Published: make(map[string]int)}
}

func (m *Metrics) add(field *int64, n int64) {
	m.mu.Lock()
	*field += n
	m.mu.Unlock()
}

func (m *Metrics) IncrementFeedsFetched()           { m.add(&m.FeedsFetched, 1) }
func (m *Metrics) IncrementFeedsFailed()            { m.add(&m.FeedsFailed, 1) }
func (m *Metrics) AddArticlesCollected(n int)       { m.add(&m.ArticlesCollected, int64(n)) }
func (m *Metrics) AddDuplicatesFiltered(n int)      { m.add(&m.DuplicatesFiltered, int64(n)) }
func (m *Metrics) IncrementSuccessfulTranslations() { m.add(&m.SuccessfulTranslations, 1) }
func (m *Metrics) IncrementFailedTranslations()     { m.add(&m.FailedTranslations, 1) }
func (m *Metrics) IncrementTranslationCacheHits()   { m.add(&m.TranslationCacheHits, 1) }
func (m *Metrics) AddPagesRendered(n int)           { m.add(&m.PagesRendered, int64(n)) }
func (m *Metrics) IncrementTelegramMessagesSent()   { m.add(&m.TelegramMessagesSent, 1) }

// SetPublished records how many articles a category ended up with in the
// latest run.
func (m *Metrics) SetPublished(category string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published[category] = n
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++
	m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
}

// SetLastRun marks a completed run and restores health.
func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

// GetStats returns a JSON-friendly snapshot. Times that were never set are
// reported as empty strings.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	published := make(map[string]int, len(m.Published))
	for k, v := range m.Published {
		published[k] = v
	}

	return map[string]interface{}{
		"feeds_fetched":              m.FeedsFetched,
		"feeds_failed":               m.FeedsFailed,
		"articles_collected":         m.ArticlesCollected,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"published":                  published,
		"successful_translations":    m.SuccessfulTranslations,
		"failed_translations":        m.FailedTranslations,
		"translation_cache_hits":     m.TranslationCacheHits,
		"pages_rendered":             m.PagesRendered,
		"telegram_messages_sent":     m.TelegramMessagesSent,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              formatTime(m.LastRunTime),
		"last_error_time":            formatTime(m.LastErrorTime),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
