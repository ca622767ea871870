package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLText parses an HTML document and returns its title and normalized
// body text. Script, style and page-chrome elements are discarded.
func HTMLText(r io.Reader) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, nav, footer, header").Remove()

	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	lines := strings.Split(sel.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return title, Normalize(strings.Join(lines, "\n")), nil
}
