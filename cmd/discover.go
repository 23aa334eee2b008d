package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/pipeline"
)

// newDiscoverCmd creates the 'discover' subcommand: one synchronous discovery
// run printed as JSON.
func newDiscoverCmd() *cobra.Command {
	var (
		targetDomain     string
		maxURLsPerBatch  int
		maxDiscoveryURLs int
		minPriority      int
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Runs one discovery pass against the target domain",
		Long: `Aggregates sitemap and seed URLs, classifies and ranks them, dispatches
tiered batches to the queue, and emits the ingestion sentinels. Prints the
run summary as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			result, err := appInstance.Pipeline().Run(cmd.Context(), pipeline.Request{
				TargetDomain:     targetDomain,
				MaxURLsPerBatch:  maxURLsPerBatch,
				MaxDiscoveryURLs: maxDiscoveryURLs,
				MinPriority:      minPriority,
			})
			if err != nil {
				return fmt.Errorf("discovery run: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDomain, "domain", "", "override the configured target domain")
	cmd.Flags().IntVar(&maxURLsPerBatch, "batch-size", 0, "override max URLs per batch")
	cmd.Flags().IntVar(&maxDiscoveryURLs, "max-urls", 0, "override the discovery URL cap")
	cmd.Flags().IntVar(&minPriority, "min-priority", 0, "override the minimum priority threshold")
	return cmd
}
