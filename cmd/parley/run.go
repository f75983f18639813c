package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/parley/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive conversation",
	Long: `Loads the scenario graph and slot table, then reads utterances from
the terminal one turn at a time. Sessions persist between runs when --session
and a store are configured; /state, /reset and /quit work inside the loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := gatherRunOptions(cmd)
		if err != nil {
			return err
		}
		return cli.Run(opts)
	},
}

func gatherRunOptions(cmd *cobra.Command) (cli.RunOptions, error) {
	scenarios, _ := cmd.Flags().GetStringSlice("scenario")
	slots, _ := cmd.Flags().GetString("slots")
	debug, _ := cmd.Flags().GetBool("debug")
	sessionID, _ := cmd.Flags().GetString("session")
	fresh, _ := cmd.Flags().GetBool("fresh")
	plain, _ := cmd.Flags().GetBool("plain")
	storePath, _ := cmd.Flags().GetString("store")
	redisURL, _ := cmd.Flags().GetString("redis")

	if len(scenarios) == 0 || slots == "" {
		return cli.RunOptions{}, fmt.Errorf("at least one --scenario and a --slots file are required")
	}
	for _, path := range scenarios {
		if _, err := os.Stat(path); err != nil {
			return cli.RunOptions{}, fmt.Errorf("scenario file %q: %w", path, err)
		}
	}

	return cli.RunOptions{
		ScenarioPaths: scenarios,
		SlotPath:      slots,
		SessionID:     sessionID,
		Fresh:         fresh,
		Debug:         debug,
		Plain:         plain,
		StorePath:     storePath,
		RedisURL:      redisURL,
	}, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("session", "", "Session ID to resume or create")
	runCmd.Flags().Bool("fresh", false, "Discard any stored state for the session before starting")
	runCmd.Flags().Bool("plain", false, "Disable banner and markdown rendering")
	runCmd.Flags().String("store", "", "Directory for file-based session persistence")
	runCmd.Flags().String("redis", "", "Redis address for session persistence (host:port)")
}
