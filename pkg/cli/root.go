// Package cli implements the console command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evalboard/console/pkg/api"
)

var (
	cfgFile string
	cfg     api.Config
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Dashboard backend for externally produced model-evaluation results",
	Long: `console ingests model-evaluation result sets from a raw results
directory, normalizes them into processed artifacts, and serves them over a
paginated HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()
		cfg = api.LoadConfigFromEnv()
		if cfgFile != "" {
			if err := api.ApplyConfigFile(&cfg, cfgFile); err != nil {
				return err
			}
		}
		if v, _ := cmd.Flags().GetString("raw-root"); v != "" {
			cfg.RawRoot = v
		}
		if v, _ := cmd.Flags().GetString("cache-dir"); v != "" {
			cfg.CacheDir = v
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().String("raw-root", "", "raw results root (overrides env/config)")
	rootCmd.PersistentFlags().String("cache-dir", "", "processed-artifact cache directory (overrides env/config)")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
