package article

import (
	"strings"
	"time"

	"github.com/deusflow/briefing/internal/category"
)

// Article is the canonical news record flowing through the pipeline.
type Article struct {
	Title     string
	Link      string
	Published time.Time
	Summary   string
	Source    string // display label, e.g. "BBC News (번역)"

	SourceID       string
	SourceCategory string
	Category       category.Standard

	IsImportant bool

	// Original holds the pre-translation text; nil when never translated.
	Original *Original
}

// Original is the source-language text of a translated article.
type Original struct {
	Title   string
	Summary string
}

// Translated reports whether the article went through translation.
func (a Article) Translated() bool {
	return a.Original != nil
}

// NormalizeTitle returns the deduplication key for a title.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
