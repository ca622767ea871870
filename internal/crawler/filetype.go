package crawler

import (
	"net/url"
	"path"
	"strings"
)

// Category partitions saved artifacts on disk by extraction strategy.
type Category string

const (
	CategoryPDF  Category = "pdf"
	CategoryDocs Category = "docs"
	CategoryHTML Category = "html"
)

var docExtensions = map[string]struct{}{
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
	".ppt":  {},
	".pptx": {},
	".txt":  {},
}

// skipExtensions are fetched but never persisted: media, fonts and
// archives carry no text worth extracting.
var skipExtensions = map[string]struct{}{
	".jpg":   {},
	".jpeg":  {},
	".png":   {},
	".gif":   {},
	".svg":   {},
	".ico":   {},
	".css":   {},
	".js":    {},
	".woff":  {},
	".woff2": {},
	".ttf":   {},
	".otf":   {},
	".eot":   {},
	".zip":   {},
	".rar":   {},
	".mp4":   {},
	".mp3":   {},
	".avi":   {},
	".mov":   {},
}

// CategoryFor maps a URL or file path to its artifact category. The second
// return is false when the target is skippable or has no known category.
func CategoryFor(rawURL string) (Category, bool) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))

	switch {
	case ext == ".pdf":
		return CategoryPDF, true
	case ext == ".html" || ext == ".htm" || ext == ".php":
		return CategoryHTML, true
	}
	if _, ok := docExtensions[ext]; ok {
		return CategoryDocs, true
	}
	return "", false
}

// Skippable reports whether the URL points at a known non-text asset.
func Skippable(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	_, ok := skipExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
