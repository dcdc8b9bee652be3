package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/Johnsonbros/Zeke-sub009/internal/semantic"
)

var (
	queryMaxEntities int
	queryMaxItems    int
	queryAsContext   bool
	queryMaxTokens   int
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Query the knowledge graph",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryMaxEntities, "max-entities", 0, "cap on returned entities")
	queryCmd.Flags().IntVar(&queryMaxItems, "max-items", 0, "cap on returned items")
	queryCmd.Flags().BoolVar(&queryAsContext, "context", false, "print a prompt-ready context bundle instead of the ranked result")
	queryCmd.Flags().IntVar(&queryMaxTokens, "max-tokens", 0, "approximate token budget for --context")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := newEngine(db, cfg)

	// CLI queries use the TF-IDF embedder; Ollama probing is for the server.
	if emb, err := semantic.NewTFIDFEmbedder(cmd.Context(), db, 512); err == nil {
		engine.SetSearcher(semantic.NewSearcher(db, emb))
	}

	text := strings.Join(args, " ")

	if queryAsContext {
		fmt.Println(engine.ContextBundle(cmd.Context(), text, queryMaxTokens))
		return nil
	}

	result, err := engine.Query(cmd.Context(), text, graph.QueryOptions{
		MaxEntities: queryMaxEntities,
		MaxItems:    queryMaxItems,
		DecayDays:   cfg.Graph.DecayDays,
	})
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	fmt.Println(result.QueryContext)
	if len(result.Entities) > 0 {
		fmt.Println("\nEntities:")
		for _, n := range result.Entities {
			fmt.Printf("  %-14s %-30s score=%.3f\n", n.Entity.Type, n.Entity.Label, n.Score)
		}
	}
	if len(result.RelevantItems) > 0 {
		fmt.Println("\nItems:")
		for _, it := range result.RelevantItems {
			fmt.Printf("  [%s] %s\n", it.Domain, it.Content)
		}
	}
	return nil
}
