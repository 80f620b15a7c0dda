package render

import (
	"os"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/deusflow/briefing/internal/article"
	"github.com/deusflow/briefing/internal/category"
)

func feedFileName(std category.Standard) string {
	return strings.TrimSuffix(category.FileName(std), ".html") + ".xml"
}

// writeFeed publishes a category's articles as RSS 2.0 so the briefing
// can be followed from a feed reader.
func (r *Renderer) writeFeed(dst string, std category.Standard, dateStr, pagePath string, articles []article.Article, now time.Time) error {
	feed := &feeds.Feed{
		Title:       displayName(std) + " " + dateStr,
		Link:        &feeds.Link{Href: r.absolute(pagePath)},
		Description: category.Label(std) + " 브리핑",
		Created:     now,
	}

	for _, a := range articles {
		title := a.Title
		if a.IsImportant {
			title = importantBadge + " " + title
		}
		description := a.Summary
		if a.Original != nil && a.Original.Title != "" {
			description = strings.TrimSpace(description + "\n\n원문: " + a.Original.Title)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: a.Link},
			Id:          a.Link,
			Description: description,
			Author:      &feeds.Author{Name: a.Source},
			Created:     a.Published,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(rss), 0o644)
}

func (r *Renderer) absolute(rel string) string {
	if r.baseURL == "" {
		return rel
	}
	return r.baseURL + "/" + rel
}
