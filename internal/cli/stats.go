package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print knowledge graph statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := newEngine(db, cfg)
	stats, err := engine.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("Entities:   %d\n", stats.EntityCount)
	fmt.Printf("Links:      %d\n", stats.LinkCount)
	fmt.Printf("References: %d\n", stats.ReferenceCount)

	if len(stats.EntitiesByType) > 0 {
		fmt.Println("\nBy type:")
		for _, t := range graph.EntityTypes() {
			if n := stats.EntitiesByType[t]; n > 0 {
				fmt.Printf("  %-14s %d\n", t, n)
			}
		}
	}

	if len(stats.MostConnected) > 0 {
		fmt.Println("\nMost connected:")
		for _, c := range stats.MostConnected {
			fmt.Printf("  %-30s %d links\n", c.Entity.Label, c.LinkCount)
		}
	}

	fmt.Printf("\nActivity: %d today, %d this week, %d this month\n",
		stats.RecentActivity.LastDay, stats.RecentActivity.LastWeek, stats.RecentActivity.LastMonth)
	return nil
}
