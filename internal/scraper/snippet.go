package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an API snippet, such as HH's <highlighttext> tags,
// and collapses whitespace.
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
