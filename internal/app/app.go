// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/classify"
	"github.com/Recklore/sih2025/internal/config"
	"github.com/Recklore/sih2025/internal/embedding"
	"github.com/Recklore/sih2025/internal/extract"
	"github.com/Recklore/sih2025/internal/ingest"
	"github.com/Recklore/sih2025/internal/logging"
	"github.com/Recklore/sih2025/internal/summary"
	"github.com/Recklore/sih2025/internal/vectorstore"
	weaviatestore "github.com/Recklore/sih2025/internal/vectorstore/weaviate"
)

// App holds the shared services for one command invocation. Expensive
// collaborators (the vector store connection, the OCR engine) are built
// lazily so commands only pay for what they use: a crawl never touches
// Weaviate, a curation run never loads Tesseract.
type App struct {
	cfg    config.Config
	logger *zap.Logger

	mu        sync.Mutex
	store     vectorstore.Store
	extractor *extract.Extractor
}

// NewApp builds the container and, when enabled, starts the metrics server.
func NewApp(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("starting metrics server", zap.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	return &App{cfg: cfg, logger: logger}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Store connects to Weaviate on first use and caches the connection.
func (a *App) Store(ctx context.Context) (vectorstore.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	store, err := weaviatestore.New(ctx, weaviatestore.Config{
		Host:   a.cfg.Weaviate.Host,
		Scheme: a.cfg.Weaviate.Scheme,
		APIKey: a.cfg.Weaviate.APIKey,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect vector store: %w", err)
	}
	a.store = store
	return a.store, nil
}

// Extractor returns the shared document extractor. Cached because it owns
// the OCR engine.
func (a *App) Extractor() *extract.Extractor {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.extractor == nil {
		a.extractor = extract.New(extract.Config{
			OCRLanguages: a.cfg.Extract.OCRLanguages,
			OCRDPI:       a.cfg.Extract.OCRDPI,
		}, a.logger)
	}
	return a.extractor
}

// Embedder returns a client for the embedding server.
func (a *App) Embedder() *embedding.Client {
	return embedding.NewClient(a.cfg.Embedding.BaseURL, a.cfg.Embedding.Model, a.cfg.Embedding.Timeout)
}

// Classifier returns the zero-shot classifier backed by the NLI endpoint.
func (a *App) Classifier() *classify.Classifier {
	scorer := classify.NewHTTPScorer(a.cfg.Classify.Endpoint, a.cfg.Classify.Timeout)
	return classify.New(scorer, a.cfg.Classify.Threshold, a.cfg.Classify.TruncateChars)
}

// Summarizer returns the page summarizer.
func (a *App) Summarizer() *summary.Client {
	return summary.NewClient(summary.Config{
		BaseURL:       a.cfg.Summary.BaseURL,
		APIKey:        a.cfg.Summary.APIKey,
		Model:         a.cfg.Summary.Model,
		MaxInputChars: a.cfg.Summary.MaxInputChars,
		FallbackChars: a.cfg.Summary.FallbackChars,
		Timeout:       a.cfg.Summary.Timeout,
	}, a.logger)
}

// Router builds the chunk router on top of the shared store and embedder.
func (a *App) Router(ctx context.Context) (*ingest.Router, error) {
	store, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.NewRouter(store, a.Embedder(), a.cfg.Ingest.ChunkSize, a.cfg.Ingest.ChunkOverlap, a.logger), nil
}

// Close shuts down the lazily created services and flushes the logger.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.extractor != nil {
		if err := a.extractor.Close(); err != nil {
			a.logger.Warn("error closing extractor", zap.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("error closing vector store", zap.Error(err))
		}
	}
	// Best effort; stderr sync failures are expected on some platforms.
	_ = a.logger.Sync()
}
