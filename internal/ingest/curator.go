package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/classify"
	"github.com/Recklore/sih2025/internal/crawler"
	"github.com/Recklore/sih2025/internal/vectorstore"
)

// partitionNames are the collections a curation run rebuilds.
var partitionNames = []string{
	string(classify.LabelStatic),
	string(classify.LabelDynamic),
	"sitemap",
}

// sourceTypes mirrors the extraction output layout.
var sourceTypes = []string{"pdf", "docs", "html"}

// CurationStats summarizes one curation run.
type CurationStats struct {
	Documents    int
	Failed       int
	SitemapPages int
}

// Curator rebuilds the vector store from scratch: every extracted text is
// classified and routed into the static/dynamic partitions, and the page
// log becomes the sitemap collection.
type Curator struct {
	classifier *classify.Classifier
	router     *Router
	store      vectorstore.Store
	logger     *zap.Logger
}

func NewCurator(classifier *classify.Classifier, router *Router, store vectorstore.Store, logger *zap.Logger) *Curator {
	return &Curator{
		classifier: classifier,
		router:     router,
		store:      store,
		logger:     logger,
	}
}

// Run replaces all partitions and repopulates them from processedDir and
// the page log. Individual documents fail soft; only infrastructure
// failures abort the run.
func (c *Curator) Run(ctx context.Context, processedDir, pageLogPath string) (CurationStats, error) {
	var stats CurationStats

	for _, name := range partitionNames {
		if err := c.store.ReplaceCollection(ctx, name); err != nil {
			return stats, fmt.Errorf("rebuild collection %s: %w", name, err)
		}
	}

	for _, sourceType := range sourceTypes {
		dir := filepath.Join(processedDir, sourceType)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			c.logger.Warn("source directory missing, skipping", zap.String("dir", dir))
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := c.curateFile(ctx, filepath.Join(dir, entry.Name()), sourceType); err != nil {
				stats.Failed++
				c.logger.Warn("document skipped", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			stats.Documents++
		}
	}

	pages, err := c.curateSitemap(ctx, pageLogPath)
	if err != nil {
		return stats, err
	}
	stats.SitemapPages = pages

	c.logger.Info("curation finished",
		zap.Int("documents", stats.Documents),
		zap.Int("failed", stats.Failed),
		zap.Int("sitemap_pages", stats.SitemapPages))
	return stats, nil
}

func (c *Curator) curateFile(ctx context.Context, path, sourceType string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	text := string(raw)

	res, err := c.classifier.Classify(ctx, text)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	targets := c.classifier.Targets(res)

	c.logger.Debug("document classified",
		zap.String("file", filepath.Base(path)),
		zap.String("label", string(res.Label)),
		zap.Float64("confidence", res.Confidence),
		zap.Int("partitions", len(targets)))

	doc := Document{
		Text:       text,
		FileName:   filepath.Base(path),
		SourceType: sourceType,
	}
	return c.router.Ingest(ctx, doc, targets)
}

// curateSitemap turns page log records into the sitemap collection. Pages
// without a summary carry no retrieval value and are skipped.
func (c *Curator) curateSitemap(ctx context.Context, pageLogPath string) (int, error) {
	records, err := crawler.ReadPageLog(pageLogPath)
	if errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("page log missing, sitemap collection left empty", zap.String("path", pageLogPath))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	pages := 0
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		summary := strings.TrimSpace(rec.Summary)
		if summary == "" {
			continue
		}
		title := strings.TrimSpace(rec.Title)
		text := summary
		if title != "" {
			text = fmt.Sprintf("Title: %s\n\n%s", title, summary)
		}

		doc := Document{
			Text:       text,
			FileName:   fmt.Sprintf("page_%d", i+1),
			SourceType: "webpage",
			URL:        rec.URL,
			Title:      title,
			FetchedAt:  rec.FetchedAt.UTC().Format(time.RFC3339),
		}
		if err := c.router.IngestInto(ctx, "sitemap", doc); err != nil {
			c.logger.Warn("sitemap page skipped", zap.String("url", rec.URL), zap.Error(err))
			continue
		}
		pages++
	}
	return pages, nil
}
