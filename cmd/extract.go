package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/extract"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract text from collected documents",
		Long: `Walks the data directory produced by the crawl and extracts
normalized plain text from every PDF, Office and HTML file into the
output directory. Scanned PDFs go through OCR.`,
		RunE: runExtractCommand,
	}
}

func runExtractCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.Config().Extract
	logger := appInstance.Logger()

	runner := extract.NewBatchRunner(appInstance.Extractor(), logger)
	processed, failed, err := runner.Run(cmd.Context(), cfg.DataDir, cfg.OutputDir, cfg.LimitPerType)
	if err != nil {
		return fmt.Errorf("run extraction: %w", err)
	}

	logger.Info("extract command finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed))
	return nil
}
