package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/parley/internal/cli"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the turn API over HTTP",
	Long: `Exposes the dialogue engine as an HTTP API: session management,
one-turn-per-request processing, graph introspection, and Prometheus
metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runOpts, err := gatherRunOptions(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		return cli.Serve(cli.ServeOptions{
			RunOptions: runOpts,
			Addr:       addr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("store", "", "Directory for file-based session persistence")
	serveCmd.Flags().String("redis", "", "Redis address for session persistence (host:port)")
}
