// Package watch mirrors drop folders into the vector store: files added to
// watch_folders/{static,dynamic,miscellaneous} are extracted, classified
// where needed, ingested and archived; deletions propagate to the store.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/classify"
	"github.com/Recklore/sih2025/internal/extract"
	"github.com/Recklore/sih2025/internal/ingest"
	"github.com/Recklore/sih2025/internal/vectorstore"
)

var eventsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sih_watch_events_total",
	Help: "Watch folder events processed, by change type.",
}, []string{"change"})

// archiveSuppressWindow covers the spurious delete event the watcher
// receives right after a processed file is moved to the archive.
const archiveSuppressWindow = 10 * time.Second

// Create events fire as soon as a file appears, which for a large copy is
// before the writer has finished. The controller waits until the size
// holds steady for one settle interval before extracting.
const (
	settleInterval  = 500 * time.Millisecond
	maxSettleChecks = 20
)

// sourceType stamped on every chunk ingested from a watch folder.
const watchSourceType = "watch_folder"

// TextExtractor extracts one file into a normalized document.
type TextExtractor interface {
	Extract(path string) (extract.Document, error)
}

// Classifier routes miscellaneous documents.
type Classifier interface {
	Classify(ctx context.Context, text string) (classify.Result, error)
	Targets(res classify.Result) []classify.Label
}

// Ingestor writes one document into one collection.
type Ingestor interface {
	IngestInto(ctx context.Context, collection string, doc ingest.Document) error
}

// Config locates the watch folder tree.
type Config struct {
	BaseDir      string
	ProcessedDir string
}

// Controller consumes folder events sequentially. One slow document delays
// the queue rather than racing the OCR engine or the store.
type Controller struct {
	cfg        Config
	extractor  TextExtractor
	classifier Classifier
	ingestor   Ingestor
	store      vectorstore.Store
	logger     *zap.Logger

	now         func() time.Time
	settleDelay time.Duration

	mu       sync.Mutex
	archived map[string]time.Time
}

func NewController(cfg Config, extractor TextExtractor, classifier Classifier, ingestor Ingestor, store vectorstore.Store, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:         cfg,
		extractor:   extractor,
		classifier:  classifier,
		ingestor:    ingestor,
		store:       store,
		logger:      logger,
		now:         time.Now,
		settleDelay: settleInterval,
		archived:    make(map[string]time.Time),
	}
}

// Setup creates the folder tree and makes sure the target collections exist.
func (c *Controller) Setup(ctx context.Context) error {
	for _, folder := range watchFolders {
		if err := os.MkdirAll(filepath.Join(c.cfg.BaseDir, string(folder)), 0o755); err != nil {
			return fmt.Errorf("create watch folder: %w", err)
		}
	}
	if err := os.MkdirAll(c.cfg.ProcessedDir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	for _, label := range []classify.Label{classify.LabelStatic, classify.LabelDynamic} {
		if err := c.store.EnsureCollection(ctx, string(label)); err != nil {
			return err
		}
	}
	return nil
}

// Run watches the folder tree until the context is canceled.
func (c *Controller) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, folder := range watchFolders {
		dir := filepath.Join(c.cfg.BaseDir, string(folder))
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		c.logger.Info("watching folder", zap.String("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("watch service stopping")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", zap.Error(err))
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			change, relevant := changeType(ev.Op)
			if !relevant {
				continue
			}
			folder, inside := folderFor(c.cfg.BaseDir, ev.Name)
			if !inside {
				continue
			}
			c.HandleEvent(ctx, Event{Type: change, Path: ev.Name, Folder: folder})
		}
	}
}

// SweepStats summarizes one pass over the watch folders.
type SweepStats struct {
	Processed int
	Failed    int
}

// Sweep ingests every supported file already sitting in the watched
// folders through the same path live events take. Files dropped while the
// service was down are only ever picked up this way, since fsnotify
// reports nothing for them. An empty filter sweeps every folder.
func (c *Controller) Sweep(ctx context.Context, only Folder) (SweepStats, error) {
	var stats SweepStats
	for _, folder := range watchFolders {
		if only != "" && folder != only {
			continue
		}
		dir := filepath.Join(c.cfg.BaseDir, string(folder))
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if ignorable(path) || !supported(path) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := c.handleAdded(ctx, Event{Type: ChangeAdded, Path: path, Folder: folder}); err != nil {
				stats.Failed++
				continue
			}
			stats.Processed++
		}
	}
	c.logger.Info("sweep finished",
		zap.Int("processed", stats.Processed),
		zap.Int("failed", stats.Failed))
	return stats, nil
}

// HandleEvent processes one normalized event. Failures are logged, never
// propagated: a bad document must not stop the service.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) {
	if ignorable(ev.Path) {
		return
	}
	eventsHandled.WithLabelValues(ev.Type.String()).Inc()

	switch ev.Type {
	case ChangeAdded:
		c.handleAdded(ctx, ev)
	case ChangeModified:
		c.handleModified(ctx, ev)
	case ChangeDeleted:
		c.handleDeleted(ctx, ev)
	}
}

func (c *Controller) handleAdded(ctx context.Context, ev Event) error {
	base := filepath.Base(ev.Path)
	if !supported(ev.Path) {
		c.logger.Warn("unsupported file ignored", zap.String("file", base))
		return nil
	}
	// Directories show up as create events too.
	if info, err := os.Stat(ev.Path); err != nil || info.IsDir() {
		return nil
	}
	if err := c.waitSettled(ctx, ev.Path); err != nil {
		c.logger.Warn("file not settled, left in place",
			zap.String("file", base), zap.Error(err))
		return err
	}

	c.logger.Info("new file",
		zap.String("file", base),
		zap.String("folder", string(ev.Folder)))

	doc, err := c.extractor.Extract(ev.Path)
	if err != nil {
		c.logger.Warn("extraction failed, file left in place",
			zap.String("file", base), zap.Error(err))
		return err
	}

	targets, err := c.targetsFor(ctx, ev.Folder, doc.Text)
	if err != nil {
		c.logger.Warn("classification failed, file left in place",
			zap.String("file", base), zap.Error(err))
		return err
	}

	ingDoc := ingest.Document{
		Text:       doc.Text,
		FileName:   base,
		SourceType: watchSourceType,
		FetchedAt:  c.now().UTC().Format(time.RFC3339),
	}
	for _, target := range targets {
		if err := c.ingestor.IngestInto(ctx, string(target), ingDoc); err != nil {
			c.logger.Warn("ingestion failed, file left in place",
				zap.String("file", base),
				zap.String("collection", string(target)),
				zap.Error(err))
			return err
		}
	}

	dest, err := archiveFile(c.cfg.ProcessedDir, ev.Path, c.now())
	if err != nil {
		c.logger.Warn("could not archive file", zap.String("file", base), zap.Error(err))
		return err
	}
	c.markArchived(base)
	c.logger.Info("file processed",
		zap.String("file", base),
		zap.String("archived_to", dest),
		zap.Int("partitions", len(targets)))
	return nil
}

// waitSettled blocks until the file's size stops changing between polls,
// so a document still being copied in is not extracted half-written.
func (c *Controller) waitSettled(ctx context.Context, path string) error {
	last := int64(-1)
	for i := 0; i < maxSettleChecks; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}
		if info.Size() == last {
			return nil
		}
		last = info.Size()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.settleDelay):
		}
	}
	return fmt.Errorf("size still changing after %d checks", maxSettleChecks)
}

// handleModified treats an in-place change as delete-then-add so the store
// never holds chunks from two versions of the same file.
func (c *Controller) handleModified(ctx context.Context, ev Event) {
	if _, err := os.Stat(ev.Path); err != nil {
		// Write events can trail an archive move; the file is gone.
		return
	}
	c.deleteFromCollections(ctx, ev)
	c.handleAdded(ctx, ev)
}

func (c *Controller) handleDeleted(ctx context.Context, ev Event) {
	base := filepath.Base(ev.Path)
	if c.recentlyArchived(base) {
		// The controller itself moved the file to the archive.
		return
	}
	c.deleteFromCollections(ctx, ev)
	c.logger.Info("file removed from store", zap.String("file", base))
}

func (c *Controller) deleteFromCollections(ctx context.Context, ev Event) {
	base := filepath.Base(ev.Path)
	for _, label := range c.collectionsFor(ev.Folder) {
		removed, err := c.store.DeleteByFileName(ctx, string(label), base)
		if err != nil {
			c.logger.Warn("delete from store failed",
				zap.String("file", base),
				zap.String("collection", string(label)),
				zap.Error(err))
			continue
		}
		if removed > 0 {
			c.logger.Info("stale chunks removed",
				zap.String("file", base),
				zap.String("collection", string(label)),
				zap.Int64("chunks", removed))
		}
	}
}

// targetsFor maps a folder to its partitions; only miscellaneous needs the
// classifier.
func (c *Controller) targetsFor(ctx context.Context, folder Folder, text string) ([]classify.Label, error) {
	switch folder {
	case FolderStatic:
		return []classify.Label{classify.LabelStatic}, nil
	case FolderDynamic:
		return []classify.Label{classify.LabelDynamic}, nil
	default:
		res, err := c.classifier.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		c.logger.Info("document classified",
			zap.String("label", string(res.Label)),
			zap.Float64("confidence", res.Confidence))
		return c.classifier.Targets(res), nil
	}
}

// collectionsFor lists where a folder's files may have landed.
func (c *Controller) collectionsFor(folder Folder) []classify.Label {
	switch folder {
	case FolderStatic:
		return []classify.Label{classify.LabelStatic}
	case FolderDynamic:
		return []classify.Label{classify.LabelDynamic}
	default:
		return []classify.Label{classify.LabelStatic, classify.LabelDynamic}
	}
}

func (c *Controller) markArchived(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.archived[base] = c.now()
}

func (c *Controller) recentlyArchived(base string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	when, ok := c.archived[base]
	if !ok {
		return false
	}
	if c.now().Sub(when) > archiveSuppressWindow {
		delete(c.archived, base)
		return false
	}
	return true
}
