package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evalboard/console/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Port = port
		}
		if dev, _ := cmd.Flags().GetBool("dev"); dev {
			cfg.DevMode = true
		}
		if watchFlag, _ := cmd.Flags().GetBool("watch"); watchFlag {
			cfg.WatchRawRoot = true
		}

		server, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("Shutting down...")
			if err := server.Shutdown(); err != nil {
				log.Printf("Shutdown error: %v", err)
			}
			os.Exit(0)
		}()

		log.Printf("[server] listening on :%d (raw=%s cache=%s)", cfg.Port, cfg.RawRoot, cfg.CacheDir)
		return server.Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "server port (default: 8080)")
	serveCmd.Flags().Bool("dev", false, "run in development mode")
	serveCmd.Flags().Bool("watch", false, "watch the raw root and pre-process new model directories")
	rootCmd.AddCommand(serveCmd)
}
