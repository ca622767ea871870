package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/ingest"
)

func newCurateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curate",
		Short: "Classify extracted documents and rebuild the vector store",
		Long: `Rebuilds the static, dynamic and sitemap collections from scratch:
every extracted text is classified and chunked into its partition(s),
and the crawl's page log becomes the sitemap collection.`,
		RunE: runCurateCommand,
	}
}

func runCurateCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.Config()
	logger := appInstance.Logger()

	// Fail fast before dropping collections.
	if err := appInstance.Embedder().Ping(cmd.Context()); err != nil {
		return fmt.Errorf("embedding server check: %w", err)
	}

	store, err := appInstance.Store(cmd.Context())
	if err != nil {
		return err
	}
	router, err := appInstance.Router(cmd.Context())
	if err != nil {
		return err
	}

	curator := ingest.NewCurator(appInstance.Classifier(), router, store, logger)
	stats, err := curator.Run(cmd.Context(), cfg.Extract.OutputDir, cfg.Crawler.PageLogPath)
	if err != nil {
		return fmt.Errorf("run curation: %w", err)
	}

	logger.Info("curate command finished",
		zap.Int("documents", stats.Documents),
		zap.Int("failed", stats.Failed),
		zap.Int("sitemap_pages", stats.SitemapPages))
	return nil
}
