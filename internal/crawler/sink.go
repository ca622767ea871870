package crawler

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var invalidFilenameChars = regexp.MustCompile(`[^\w.\-]`)

// ArtifactSink persists fetched documents under root/<category>/ with
// collision-safe filenames derived from the source URL.
type ArtifactSink struct {
	root   string
	logger *zap.Logger
}

// NewArtifactSink creates the sink root and one subdirectory per category.
func NewArtifactSink(root string, logger *zap.Logger) (*ArtifactSink, error) {
	for _, cat := range []Category{CategoryPDF, CategoryDocs, CategoryHTML} {
		if err := os.MkdirAll(filepath.Join(root, string(cat)), 0o755); err != nil {
			return nil, fmt.Errorf("create sink dir: %w", err)
		}
	}
	return &ArtifactSink{root: root, logger: logger}, nil
}

// Save writes body under the category directory and returns the final path.
// When the derived name already exists a numeric suffix is appended, so
// distinct URLs with the same safe name never overwrite each other.
func (s *ArtifactSink) Save(category Category, rawURL string, body []byte) (string, error) {
	name := SafeFilename(rawURL, category)
	dir := filepath.Join(s.root, string(category))

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	path := filepath.Join(dir, name)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}
	s.logger.Debug("artifact saved",
		zap.String("url", rawURL),
		zap.String("path", path),
		zap.Int("bytes", len(body)))
	return path, nil
}

// SafeFilename derives a filesystem-safe name from a URL. Host, path and
// query all contribute so distinct URLs rarely collide, and the result is
// truncated to stay well under common filename limits.
func SafeFilename(rawURL string, category Category) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Path: rawURL}
	}

	ext := strings.ToLower(filepath.Ext(u.Path))
	if ext == "" || ext == ".php" {
		if category == CategoryHTML {
			ext = ".html"
		}
	}

	host := strings.NewReplacer(":", "_", ".", "_").Replace(u.Host)
	p := strings.TrimSuffix(u.Path, filepath.Ext(u.Path))
	p = strings.Trim(p, "/")
	p = strings.ReplaceAll(p, "/", "_")

	stem := host
	if p != "" {
		stem += "_" + p
	}
	if u.RawQuery != "" {
		q := strings.NewReplacer("&", "_", "=", "-").Replace(u.RawQuery)
		stem += "_" + q
	}
	stem = invalidFilenameChars.ReplaceAllString(stem, "_")
	if stem == "" {
		stem = "artifact"
	}
	if len(stem) > 190 {
		stem = stem[:190]
	}
	return stem + ext
}
