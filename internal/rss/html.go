package rss

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagPattern = regexp.MustCompile(`<[^<]+?>`)
	// block boundaries get a space so adjacent paragraphs do not glue together
	blockPattern = regexp.MustCompile(`(?i)<(br|/?p|/?div|/?li|/?h[1-6]|/?tr)[\s/>]`)
)

// StripHTML turns an HTML fragment into plain text with collapsed spaces.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	spaced := blockPattern.ReplaceAllString(s, " $0")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(spaced))
	if err != nil {
		return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, " ")), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
