package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/extract"
)

// Summarizer produces a short description of page text. Implementations
// must degrade gracefully and never block a crawl on a failed summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

const fallbackSummaryChars = 2000

// Config holds the knobs for one crawl run.
type Config struct {
	SeedURL     string
	UserAgent   string
	MaxDepth    int // link hops from the seed; 0 means unlimited
	Delay       time.Duration
	Budget      time.Duration
	PageLogPath string
	SitemapPath string
}

// Engine drives a polite same-host crawl: HTML pages are summarized into
// the page log, downloadable documents are persisted by category, and a
// sitemap is regenerated when the run ends.
type Engine struct {
	cfg        Config
	logger     *zap.Logger
	sink       *ArtifactSink
	pageLog    *PageLog
	summarizer Summarizer
	visited    *visitTracker
	host       string

	pages    atomic.Int64
	saved    atomic.Int64
	failures atomic.Int64
}

// NewEngine validates the config and builds an engine bound to the seed's host.
func NewEngine(cfg Config, sink *ArtifactSink, pageLog *PageLog, summarizer Summarizer, logger *zap.Logger) (*Engine, error) {
	u, err := url.Parse(cfg.SeedURL)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid seed URL %q", cfg.SeedURL)
	}
	if cfg.Budget <= 0 {
		return nil, fmt.Errorf("crawl budget must be positive")
	}
	return &Engine{
		cfg:        cfg,
		logger:     logger,
		sink:       sink,
		pageLog:    pageLog,
		summarizer: summarizer,
		visited:    newVisitTracker(),
		host:       u.Hostname(),
	}, nil
}

// Run crawls until the frontier drains or the budget expires, then writes
// the sitemap from the accumulated page log.
func (e *Engine) Run(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, e.cfg.Budget)
	defer cancel()

	opts := []colly.CollectorOption{
		colly.AllowedDomains(e.host),
		colly.UserAgent(e.cfg.UserAgent),
		colly.Async(true),
	}
	if e.cfg.MaxDepth > 0 {
		// colly counts the seed itself as depth 1.
		opts = append(opts, colly.MaxDepth(e.cfg.MaxDepth+1))
	}
	c := colly.NewCollector(opts...)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       e.cfg.Delay,
	}); err != nil {
		return fmt.Errorf("configure limits: %w", err)
	}

	c.OnRequest(func(r *colly.Request) {
		if runCtx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(e.handleResponse(runCtx))
	c.OnHTML("a[href]", e.handleLink)
	c.OnError(func(r *colly.Response, err error) {
		e.failures.Add(1)
		pagesFailed.Inc()
		e.logger.Warn("request failed",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode),
			zap.Error(err))
	})

	start := time.Now()
	if err := c.Visit(e.cfg.SeedURL); err != nil {
		return fmt.Errorf("visit seed: %w", err)
	}
	c.Wait()

	e.logger.Info("crawl finished",
		zap.Int64("pages", e.pages.Load()),
		zap.Int64("artifacts", e.saved.Load()),
		zap.Int64("failures", e.failures.Load()),
		zap.Duration("elapsed", time.Since(start)))

	if e.cfg.SitemapPath == "" {
		return nil
	}
	records, err := ReadPageLog(e.cfg.PageLogPath)
	if err != nil {
		return fmt.Errorf("rebuild sitemap: %w", err)
	}
	if err := WriteSitemap(e.cfg.SitemapPath, records); err != nil {
		return fmt.Errorf("rebuild sitemap: %w", err)
	}
	e.logger.Info("sitemap written",
		zap.String("path", e.cfg.SitemapPath),
		zap.Int("entries", len(records)))
	return nil
}

func (e *Engine) handleResponse(ctx context.Context) colly.ResponseCallback {
	return func(r *colly.Response) {
		rawURL := r.Request.URL.String()
		canon := Canonicalize(rawURL)
		if !e.visited.MarkIfNew(canon) {
			duplicatesSkipped.Inc()
			return
		}
		if len(r.Body) == 0 || Skippable(rawURL) {
			return
		}

		if cat, ok := CategoryFor(rawURL); ok && cat != CategoryHTML {
			if _, err := e.sink.Save(cat, rawURL, r.Body); err != nil {
				e.logger.Warn("save artifact", zap.String("url", rawURL), zap.Error(err))
				return
			}
			artifactsSaved.WithLabelValues(string(cat)).Inc()
			e.saved.Add(1)
			return
		}

		if !looksLikeHTML(r) {
			return
		}
		title, text, err := extract.HTMLText(bytes.NewReader(r.Body))
		if err != nil {
			e.logger.Warn("parse page", zap.String("url", rawURL), zap.Error(err))
			return
		}
		if _, err := e.sink.Save(CategoryHTML, rawURL, r.Body); err != nil {
			e.logger.Warn("save page", zap.String("url", rawURL), zap.Error(err))
		} else {
			artifactsSaved.WithLabelValues(string(CategoryHTML)).Inc()
			e.saved.Add(1)
		}

		rec := CrawlRecord{
			URL:       canon,
			Title:     title,
			Summary:   e.summarize(ctx, text),
			FetchedAt: time.Now().UTC(),
		}
		if err := e.pageLog.Append(rec); err != nil {
			e.logger.Warn("append page log", zap.String("url", canon), zap.Error(err))
			return
		}
		pagesCrawled.Inc()
		e.pages.Add(1)
		e.logger.Debug("page recorded", zap.String("url", canon), zap.String("title", title))
	}
}

func (e *Engine) handleLink(el *colly.HTMLElement) {
	link := el.Request.AbsoluteURL(el.Attr("href"))
	if link == "" {
		return
	}
	u, err := url.Parse(link)
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return
	}
	if !strings.EqualFold(u.Hostname(), e.host) {
		return
	}
	if Skippable(link) || e.visited.Seen(Canonicalize(link)) {
		return
	}
	// Revisit and depth errors are routine here, not failures.
	_ = el.Request.Visit(link)
}

func (e *Engine) summarize(ctx context.Context, text string) string {
	if e.summarizer != nil {
		return e.summarizer.Summarize(ctx, text)
	}
	if len(text) > fallbackSummaryChars {
		return text[:fallbackSummaryChars]
	}
	return text
}

func looksLikeHTML(r *colly.Response) bool {
	ct := strings.ToLower(r.Headers.Get("Content-Type"))
	if ct != "" {
		return strings.Contains(ct, "html") || strings.Contains(ct, "xml")
	}
	cat, ok := CategoryFor(r.Request.URL.String())
	return !ok || cat == CategoryHTML
}
