package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalboard/console/pkg/evals"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List discovered model entries as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := evals.ScanModels(cfg.RawRoot)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
