package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/watch"
)

func newAddCmd() *cobra.Command {
	var folderName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Process files already sitting in the watch folders",
		Long: `One-shot batch pass over the watch folders: every supported file in
static, dynamic and miscellaneous is extracted, routed into the store
and archived, exactly as the watch service would. Useful for initial
setup or bulk additions without leaving the service running.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			logger := appInstance.Logger()

			var only watch.Folder
			if folderName != "" {
				only, err = watch.ParseFolder(folderName)
				if err != nil {
					return err
				}
			}

			controller, err := newWatchController(cmd.Context(), appInstance)
			if err != nil {
				return err
			}
			if err := controller.Setup(cmd.Context()); err != nil {
				return fmt.Errorf("set up watch folders: %w", err)
			}

			stats, err := controller.Sweep(cmd.Context(), only)
			if err != nil {
				return fmt.Errorf("process watch folders: %w", err)
			}
			logger.Info("add command finished",
				zap.Int("processed", stats.Processed),
				zap.Int("failed", stats.Failed))
			return nil
		},
	}

	cmd.Flags().StringVar(&folderName, "folder", "",
		"only process this folder (static, dynamic or miscellaneous)")
	return cmd
}
