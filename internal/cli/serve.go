package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Johnsonbros/Zeke-sub009/internal/config"
	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
	"github.com/Johnsonbros/Zeke-sub009/internal/semantic"
	"github.com/Johnsonbros/Zeke-sub009/internal/server"
	"github.com/Johnsonbros/Zeke-sub009/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := newEngine(db, cfg)

	// Detect and configure embedder
	var embedder semantic.Embedder
	if semantic.ProbeOllama(cfg.Semantic.OllamaURL, cfg.Semantic.EmbeddingModel) {
		embedder = semantic.NewOllamaEmbedder(cfg.Semantic.OllamaURL, cfg.Semantic.EmbeddingModel, 768)
		fmt.Fprintf(os.Stderr, "  embedder: ollama (%s)\n", cfg.Semantic.EmbeddingModel)
	} else {
		emb, tfidfErr := semantic.NewTFIDFEmbedder(cmd.Context(), db, 512)
		if tfidfErr != nil {
			fmt.Fprintf(os.Stderr, "warning: tfidf embedder init failed: %v\n", tfidfErr)
		} else {
			embedder = emb
			fmt.Fprintf(os.Stderr, "  embedder: tfidf (fallback)\n")
		}
	}

	if embedder != nil {
		searcher := semantic.NewSearcher(db, embedder)
		engine.SetSearcher(searcher)

		// Embed any items missing vectors
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if n, err := searcher.EmbedMissing(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "embed missing: %v\n", err)
			} else if n > 0 {
				fmt.Fprintf(os.Stderr, "  embedded %d missing items\n", n)
			}
		}()
	} else {
		fmt.Fprintln(os.Stderr, "warning: semantic search disabled, no embedder available")
	}

	srv := server.New(db, engine, VersionString())
	srv.SetTraverseDefaults(graph.TraverseOptions{
		MaxDepth:  cfg.Graph.MaxDepth,
		MaxNodes:  cfg.Graph.MaxNodes,
		MinScore:  cfg.Graph.MinScore,
		DecayDays: cfg.Graph.DecayDays,
	})
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "zeke serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", db.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

// newEngine builds a graph engine with the store resolver and the
// configured tuning applied.
func newEngine(db *store.DB, cfg config.Config) *graph.Engine {
	engine := graph.New(db)
	engine.SetResolver(db)
	engine.SetDecayDays(cfg.Graph.DecayDays)
	engine.SetSearchTimeout(time.Duration(cfg.Semantic.SearchTimeout) * time.Second)
	return engine
}

// openDB opens the configured database, falling back to the default path.
func openDB(cfg config.Config) (*store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
