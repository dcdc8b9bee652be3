package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
)

var bridgesMinDomains int

var bridgesCmd = &cobra.Command{
	Use:   "bridges",
	Short: "List entities that bridge multiple life domains",
	RunE:  runBridges,
}

func init() {
	bridgesCmd.Flags().IntVar(&bridgesMinDomains, "min-domains", 2, "minimum distinct domains")
}

func runBridges(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := newEngine(db, cfg)
	bridges, err := engine.BridgingEntities(cmd.Context(), bridgesMinDomains)
	if err != nil {
		return fmt.Errorf("bridges: %w", err)
	}

	if len(bridges) == 0 {
		fmt.Println("No bridging entities found.")
		return nil
	}

	for _, b := range bridges {
		fmt.Printf("%-30s %d domains, strength %.3f\n", b.Entity.Label, b.DomainCount(), b.ConnectionStrength)
		for domain, refs := range b.References {
			fmt.Printf("  %-14s %d items\n", domain, len(refs))
		}
	}
	return nil
}
