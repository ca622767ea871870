// Package cmd defines the CLI commands for the ingestion pipeline.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Recklore/sih2025/internal/app"
	"github.com/Recklore/sih2025/internal/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// newRootCmd creates and configures the root command. The app container is
// built in PersistentPreRunE so every subcommand finds it in its context.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sih2025",
		Short: "Campus knowledge-base ingestion pipeline",
		Long: `sih2025 builds and maintains a searchable knowledge base from a
university website: it crawls the site, extracts text from the collected
documents, classifies and loads them into Weaviate, and keeps watch
folders in sync with the store.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			appInstance, err := app.NewApp(cfg)
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(*app.App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newCurateCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newAddCmd())

	return cmd
}

func resolveApp(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point. Interrupts cancel the command context so
// long runs shut down cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
