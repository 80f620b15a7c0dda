package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/category"
	"github.com/deusflow/briefing/internal/storage"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

const (
	archiveDataFile = "archive_data.json"
	archivePage     = "archive.html"
	indexPage       = "index.html"
	stylesheet      = "style.css"

	importantBadge = "⚠️ 중요"
)

// Renderer writes the static briefing site under an output directory.
type Renderer struct {
	outDir  string
	baseURL string
	now     func() time.Time
	log     *slog.Logger
	tmpl    *template.Template
}

type Option func(*Renderer)

// WithBaseURL sets the public site root used for absolute links in feeds.
func WithBaseURL(u string) Option {
	return func(r *Renderer) { r.baseURL = strings.TrimRight(u, "/") }
}

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

func New(outDir string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"badge": func() string { return importantBadge },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := &Renderer{
		outDir: outDir,
		now:    time.Now,
		log:    slog.Default(),
		tmpl:   tmpl,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "render")
	return r, nil
}

type articleView struct {
	Title           string
	Link            string
	Published       string
	Summary         string
	Source          string
	IsImportant     bool
	Translated      bool
	OriginalTitle   string
	OriginalSummary string
}

type navLink struct {
	Name    string
	File    string
	Current bool
}

type briefingPage struct {
	CategoryName string
	Date         string
	Articles     []articleView
	Nav          []navLink
	FeedFile     string
	CSSPath      string
	ArchivePath  string
}

type archiveDay struct {
	Date  string
	Pages []storage.ArchiveEntry
}

// Render writes one page and one RSS feed per standard category for
// today's date, then refreshes the archive, the index redirect and the
// stylesheet. It returns each category's page path relative to the
// output directory, e.g. "2026/10/14/domestic_general.html".
func (r *Renderer) Render(result map[category.Standard][]article.Article) (map[category.Standard]string, error) {
	now := r.now()
	dateStr := now.Format("2006-01-02")
	datePath := now.Format("2006/01/02")

	dayDir := filepath.Join(r.outDir, filepath.FromSlash(datePath))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := r.copyStylesheet(); err != nil {
		return nil, err
	}

	pages := make(map[category.Standard]string, len(category.All()))
	var entries []storage.ArchiveEntry
	for _, std := range category.All() {
		articles := result[std]
		file := category.FileName(std)

		page := briefingPage{
			CategoryName: displayName(std),
			Date:         dateStr,
			Articles:     views(articles),
			Nav:          nav(std),
			FeedFile:     feedFileName(std),
			CSSPath:      "../../../" + stylesheet,
			ArchivePath:  "../../../" + archivePage,
		}
		if err := r.writeTemplate(filepath.Join(dayDir, file), "briefing.html", page); err != nil {
			return nil, fmt.Errorf("render %s: %w", std, err)
		}
		rel := path.Join(datePath, file)
		if err := r.writeFeed(filepath.Join(dayDir, feedFileName(std)), std, dateStr, rel, articles, now); err != nil {
			return nil, fmt.Errorf("render %s feed: %w", std, err)
		}

		pages[std] = rel
		entries = append(entries, storage.ArchiveEntry{
			Title: fmt.Sprintf("%s - %s", dateStr, displayName(std)),
			Path:  rel,
		})
		r.log.Info("page generated", "category", string(std), "path", rel, "articles", len(articles))
	}

	if err := r.updateArchive(dateStr, entries); err != nil {
		return nil, err
	}
	if err := r.writeTemplate(filepath.Join(r.outDir, indexPage), "index.html", struct{ Latest string }{
		Latest: path.Join(datePath, category.FileName(category.DomesticGeneral)),
	}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}

	return pages, nil
}

func (r *Renderer) updateArchive(dateStr string, entries []storage.ArchiveEntry) error {
	archive := storage.NewArchive(filepath.Join(r.outDir, archiveDataFile))
	if err := archive.Load(); err != nil {
		return err
	}
	if archive.Add(dateStr, entries) {
		if err := archive.Save(); err != nil {
			return err
		}
	}

	var days []archiveDay
	for _, e := range archive.Entries() {
		if n := len(days); n > 0 && days[n-1].Date == e.Date {
			days[n-1].Pages = append(days[n-1].Pages, e)
			continue
		}
		days = append(days, archiveDay{Date: e.Date, Pages: []storage.ArchiveEntry{e}})
	}
	if err := r.writeTemplate(filepath.Join(r.outDir, archivePage), "archive.html", struct{ Days []archiveDay }{days}); err != nil {
		return fmt.Errorf("render archive: %w", err)
	}
	return nil
}

func (r *Renderer) copyStylesheet() error {
	css, err := templateFS.ReadFile("templates/" + stylesheet)
	if err != nil {
		return fmt.Errorf("read stylesheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.outDir, stylesheet), css, 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

func (r *Renderer) writeTemplate(dst, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

func displayName(std category.Standard) string {
	return category.Emoji(std) + " " + category.Label(std)
}

func views(articles []article.Article) []articleView {
	out := make([]articleView, 0, len(articles))
	for _, a := range articles {
		v := articleView{
			Title:       a.Title,
			Link:        a.Link,
			Published:   a.Published.Format("2006-01-02 15:04"),
			Summary:     a.Summary,
			Source:      a.Source,
			IsImportant: a.IsImportant,
		}
		if a.Original != nil {
			v.Translated = true
			v.OriginalTitle = a.Original.Title
			v.OriginalSummary = a.Original.Summary
		}
		out = append(out, v)
	}
	return out
}

func nav(current category.Standard) []navLink {
	var out []navLink
	for _, std := range category.All() {
		out = append(out, navLink{
			Name:    displayName(std),
			File:    category.FileName(std),
			Current: std == current,
		})
	}
	return out
}
