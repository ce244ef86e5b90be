package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// StripHTML derives plain text from an HTML fragment.
// Markup is removed, consecutive blank lines are collapsed.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
