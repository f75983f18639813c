package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley is a scripted multi-turn dialogue engine",
	Long: `Parley runs task-oriented conversations over a directed graph of
scenario nodes, collecting slot values turn by turn and replaying the
previous reply when the user asks for a repeat.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringSlice("scenario", []string{}, "Scenario document(s) to load (repeatable)")
	rootCmd.PersistentFlags().String("slots", "", "Slot table file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}
