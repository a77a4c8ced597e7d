package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripTags returns the visible text of an HTML fragment.
func stripTags(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
