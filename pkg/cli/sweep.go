package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalboard/console/pkg/evals"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete retired legacy artifacts from the cache namespace",
	Long: `sweep removes files written under the retired per-benchmark naming
scheme from the processed-artifact cache. Raw result files are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := evals.SweepLegacyArtifacts(cfg.CacheDir)
		if err != nil {
			return err
		}
		for _, path := range deleted {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d legacy files\n", len(deleted))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
