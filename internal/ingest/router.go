// Package ingest chunks, embeds and routes documents into vector store
// partitions.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/classify"
	"github.com/Recklore/sih2025/internal/vectorstore"
)

var (
	chunksIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sih_ingest_chunks_total",
		Help: "Chunks inserted into the vector store, by collection.",
	}, []string{"collection"})
	ingestFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sih_ingest_failures_total",
		Help: "Documents that could not be inserted into a partition.",
	})
)

// Document is one extracted text with the metadata stored on every chunk.
// Category is filled per partition by the router.
type Document struct {
	Text       string
	FileName   string
	SourceType string
	URL        string
	Title      string
	FetchedAt  string
}

// Embedder produces one vector per chunk.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IngestionError reports that a document contributed nothing to a partition.
type IngestionError struct {
	FileName   string
	Collection string
	Err        error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingest %s into %s: %v", e.FileName, e.Collection, e.Err)
	}
	return fmt.Sprintf("ingest %s into %s: no chunks inserted", e.FileName, e.Collection)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// Router turns a document into embedded chunks and writes them to one or
// more partitions.
type Router struct {
	store        vectorstore.Store
	embedder     Embedder
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger
}

func NewRouter(store vectorstore.Store, embedder Embedder, chunkSize, chunkOverlap int, logger *zap.Logger) *Router {
	return &Router{
		store:        store,
		embedder:     embedder,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

// Ingest writes the document into every target partition. Partitions fail
// independently; the joined error reports all of them.
func (r *Router) Ingest(ctx context.Context, doc Document, targets []classify.Label) error {
	var errs []error
	for _, target := range targets {
		if err := r.IngestInto(ctx, string(target), doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IngestInto chunks and embeds the document and inserts the chunks into a
// single collection, stamping each chunk's category with the collection
// name. A failed chunk embedding is logged and skipped; the call fails only
// when no chunk at all makes it in.
func (r *Router) IngestInto(ctx context.Context, collection string, doc Document) error {
	chunks := Chunk(doc.Text, r.chunkSize, r.chunkOverlap)
	if len(chunks) == 0 {
		ingestFailures.Inc()
		return &IngestionError{FileName: doc.FileName, Collection: collection, Err: errors.New("document has no text")}
	}

	if err := r.store.EnsureCollection(ctx, collection); err != nil {
		ingestFailures.Inc()
		return &IngestionError{FileName: doc.FileName, Collection: collection, Err: err}
	}

	objs := make([]vectorstore.Object, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := r.embedder.Embed(ctx, chunk)
		if err != nil {
			r.logger.Warn("embed chunk failed",
				zap.String("file", doc.FileName),
				zap.Int("chunk", i),
				zap.Error(err))
			continue
		}
		objs = append(objs, vectorstore.Object{
			Text:       chunk,
			FileName:   doc.FileName,
			Category:   collection,
			SourceType: doc.SourceType,
			URL:        doc.URL,
			Title:      doc.Title,
			FetchedAt:  doc.FetchedAt,
			Vector:     vec,
		})
	}
	if len(objs) == 0 {
		ingestFailures.Inc()
		return &IngestionError{FileName: doc.FileName, Collection: collection, Err: errors.New("no chunks embedded")}
	}

	inserted, err := r.store.Insert(ctx, collection, objs)
	if err != nil {
		ingestFailures.Inc()
		return &IngestionError{FileName: doc.FileName, Collection: collection, Err: err}
	}
	if inserted == 0 {
		ingestFailures.Inc()
		return &IngestionError{FileName: doc.FileName, Collection: collection}
	}

	chunksIngested.WithLabelValues(collection).Add(float64(inserted))
	r.logger.Debug("document ingested",
		zap.String("file", doc.FileName),
		zap.String("collection", collection),
		zap.Int("chunks", inserted))
	return nil
}
