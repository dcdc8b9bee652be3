package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

var pathMaxDepth int

var pathCmd = &cobra.Command{
	Use:   "path <from-entity-id> <to-entity-id>",
	Short: "Find the shortest relationship path between two entities",
	Args:  cobra.ExactArgs(2),
	RunE:  runPath,
}

func init() {
	pathCmd.Flags().IntVar(&pathMaxDepth, "max-depth", graph.DefaultPathDepth, "maximum hops to search")
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := newEngine(db, cfg)
	path, err := engine.ShortestPath(cmd.Context(), args[0], args[1], pathMaxDepth)
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}
	if path == nil {
		fmt.Printf("No path from %s to %s within %d hops.\n", args[0], args[1], pathMaxDepth)
		return nil
	}

	for i, step := range path {
		if i == 0 {
			fmt.Printf("%s (%s)\n", step.Entity.Label, step.Entity.Type)
			continue
		}
		fmt.Printf("  --[%s]--> %s (%s)\n", step.Relationship, step.Entity.Label, step.Entity.Type)
	}
	return nil
}
