// Package cmd defines and implements the CLI commands for the clara-discovery
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/app"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the command context.
type appKeyType string

const appKey appKeyType = "app"

// newApp is the application factory. It is a variable so tests can replace
// it with a mock factory.
var newApp = func(ctx context.Context, cfg config.Config) (*app.App, error) {
	return app.New(ctx, cfg)
}

// newRootCmd creates and configures the root command. The app container is
// built after config loads and before any subcommand runs, then torn down
// once the subcommand finishes.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clara-discovery",
		Short: "Discovers, scores, and batches content URLs for knowledge-store ingestion.",
		Long: `clara-discovery walks a target domain's sitemaps and seed URLs, scores each
page against an ordered rule table, partitions the ranked set into priority
tiers, and dispatches tiered batches to the ingestion queue followed by the
two-phase ingestion sentinels.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			appInstance, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("initialize services: %w", err)
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

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus CLARA_* env vars)")

	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func resolveApp(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
