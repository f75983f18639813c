package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/adapters"
	"github.com/aretw0/parley/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the scenario graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the scenario graph. With
--session, overlays the visited path and current node of a stored session.`,
	Run: func(cmd *cobra.Command, args []string) {
		scenarios, _ := cmd.Flags().GetStringSlice("scenario")
		slots, _ := cmd.Flags().GetString("slots")
		if len(scenarios) == 0 || slots == "" {
			fmt.Println("Error: at least one --scenario and a --slots file are required")
			os.Exit(1)
		}

		engine, err := parley.New(scenarios, slots)
		if err != nil {
			fmt.Printf("Error loading scenarios: %v\n", err)
			os.Exit(1)
		}

		overlay, err := loadOverlay(cmd)
		if err != nil {
			fmt.Printf("Error loading session overlay: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(engine.Inspect(), overlay))
	},
}

func loadOverlay(cmd *cobra.Command) (*graph.Overlay, error) {
	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		return nil, nil
	}

	storePath, _ := cmd.Flags().GetString("store")
	store := adapters.NewFileStore(storePath)
	state, err := store.Load(cmd.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	return &graph.Overlay{
		VisitedNodes: state.History,
		CurrentNode:  state.HitNode,
	}, nil
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Session ID to overlay on the graph")
	graphCmd.Flags().String("store", "", "Directory for file-based session persistence")
}
