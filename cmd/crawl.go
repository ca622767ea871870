package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/crawler"
)

func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the configured site and collect documents",
		Long: `Recursively crawls the configured seed URL, staying on the seed's
host. HTML pages are summarized into the page log and the sitemap;
PDF and Office documents are saved into the data directory for the
extract step.`,
		RunE: runCrawlCommand,
	}
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.Config().Crawler
	logger := appInstance.Logger()

	if cfg.SeedURL == "" {
		return errors.New("crawler.seed_url is not set")
	}

	sink, err := crawler.NewArtifactSink(cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("init artifact sink: %w", err)
	}

	pageLog, err := crawler.OpenPageLog(cfg.PageLogPath)
	if err != nil {
		return fmt.Errorf("open page log: %w", err)
	}
	defer func() {
		if cerr := pageLog.Close(); cerr != nil {
			logger.Warn("failed to close page log", zap.Error(cerr))
		}
	}()

	engine, err := crawler.NewEngine(crawler.Config{
		SeedURL:     cfg.SeedURL,
		UserAgent:   cfg.UserAgent,
		MaxDepth:    cfg.MaxDepth,
		Delay:       cfg.Delay,
		Budget:      cfg.Budget,
		PageLogPath: cfg.PageLogPath,
		SitemapPath: cfg.SitemapPath,
	}, sink, pageLog, appInstance.Summarizer(), logger)
	if err != nil {
		return fmt.Errorf("init crawler: %w", err)
	}

	if err := engine.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run crawler: %w", err)
	}
	logger.Info("crawl command finished")
	return nil
}
