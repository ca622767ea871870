package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/app"
	"github.com/Recklore/sih2025/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch drop folders and keep the vector store in sync",
		Long: `Runs the watch folder service: files dropped into the static,
dynamic or miscellaneous folder are extracted, routed into the store
and archived; deletions propagate to the store. Runs until
interrupted.`,
		RunE: runWatchCommand,
	}
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.Logger()

	controller, err := newWatchController(cmd.Context(), appInstance)
	if err != nil {
		return err
	}

	if err := controller.Setup(cmd.Context()); err != nil {
		return fmt.Errorf("set up watch folders: %w", err)
	}

	// Files dropped while the service was down produce no events; pick
	// them up before watching.
	stats, err := controller.Sweep(cmd.Context(), "")
	if err != nil {
		return fmt.Errorf("process pending files: %w", err)
	}
	if stats.Processed > 0 || stats.Failed > 0 {
		logger.Info("pending files processed",
			zap.Int("processed", stats.Processed),
			zap.Int("failed", stats.Failed))
	}

	if err := controller.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run watch service: %w", err)
	}
	logger.Info("watch command finished")
	return nil
}

// newWatchController wires the controller used by both the watch service
// and the one-shot add command.
func newWatchController(ctx context.Context, appInstance *app.App) (*watch.Controller, error) {
	cfg := appInstance.Config()

	store, err := appInstance.Store(ctx)
	if err != nil {
		return nil, err
	}
	router, err := appInstance.Router(ctx)
	if err != nil {
		return nil, err
	}

	return watch.NewController(
		watch.Config{
			BaseDir:      cfg.Watch.BaseDir,
			ProcessedDir: cfg.Watch.ProcessedDir,
		},
		appInstance.Extractor(),
		appInstance.Classifier(),
		router,
		store,
		appInstance.Logger(),
	), nil
}
