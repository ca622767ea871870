package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	documentsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sih_extract_documents_total",
		Help: "Source files successfully extracted, by category.",
	}, []string{"category"})
	extractionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sih_extract_failures_total",
		Help: "Source files that failed extraction and were skipped.",
	})
)

// batchCategories mirrors the crawl sink's directory layout.
var batchCategories = []string{"pdf", "docs", "html"}

// BatchRunner walks the data directory tree and writes one .txt per
// extracted source under the output directory, mirroring categories.
type BatchRunner struct {
	extractor *Extractor
	logger    *zap.Logger
}

func NewBatchRunner(extractor *Extractor, logger *zap.Logger) *BatchRunner {
	return &BatchRunner{extractor: extractor, logger: logger}
}

// Run processes every file under dataDir/<category>/. A failed file is
// logged and skipped, never fatal. limitPerType <= 0 means no limit.
func (r *BatchRunner) Run(ctx context.Context, dataDir, outDir string, limitPerType int) (processed, failed int, err error) {
	for _, category := range batchCategories {
		srcDir := filepath.Join(dataDir, category)
		entries, err := os.ReadDir(srcDir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return processed, failed, fmt.Errorf("read %s: %w", srcDir, err)
		}

		dstDir := filepath.Join(outDir, category)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return processed, failed, fmt.Errorf("create %s: %w", dstDir, err)
		}

		done := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if limitPerType > 0 && done >= limitPerType {
				break
			}
			if err := ctx.Err(); err != nil {
				return processed, failed, err
			}

			src := filepath.Join(srcDir, entry.Name())
			doc, err := r.extractor.Extract(src)
			if err != nil {
				failed++
				extractionsFailed.Inc()
				r.logger.Warn("extraction failed", zap.String("path", src), zap.Error(err))
				continue
			}
			if strings.TrimSpace(doc.Text) == "" {
				r.logger.Warn("extraction produced no text", zap.String("path", src))
				continue
			}

			dst := filepath.Join(dstDir, stem(entry.Name())+".txt")
			if err := os.WriteFile(dst, []byte(doc.Text), 0o644); err != nil {
				failed++
				r.logger.Warn("write extracted text", zap.String("path", dst), zap.Error(err))
				continue
			}
			processed++
			done++
			documentsExtracted.WithLabelValues(category).Inc()
		}
	}

	r.logger.Info("extraction run finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed))
	return processed, failed, nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
