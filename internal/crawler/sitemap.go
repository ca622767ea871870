package crawler

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteSitemap renders the crawl records as an XML sitemap and writes it
// atomically. Summaries go into CDATA sections so raw page text never
// needs entity escaping.
func WriteSitemap(path string, records []CrawlRecord) error {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, rec := range records {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", xmlEscape(rec.URL))
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", rec.FetchedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "    <content>%s</content>\n", cdata(rec.Summary))
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("write sitemap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}

func xmlEscape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// cdata wraps s in a CDATA section, splitting any embedded "]]>" so the
// section cannot terminate early.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}
