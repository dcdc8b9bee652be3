package config

import (
	"testing"

	"github.com/Johnsonbros/Zeke-sub009/internal/graph"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.ListenAddr() != "127.0.0.1:38111" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:38111", cfg.ListenAddr())
	}
	if cfg.Graph.DecayDays != 30 {
		t.Errorf("DecayDays = %f, want 30", cfg.Graph.DecayDays)
	}
	if cfg.Semantic.SearchTimeout != 5 {
		t.Errorf("SearchTimeout = %d, want 5", cfg.Semantic.SearchTimeout)
	}

	// The traversal defaults shipped in config must agree with the engine's.
	def := graph.DefaultTraverseOptions()
	if cfg.Graph.MaxDepth != def.MaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.Graph.MaxDepth, def.MaxDepth)
	}
	if cfg.Graph.MaxNodes != def.MaxNodes {
		t.Errorf("MaxNodes = %d, want %d", cfg.Graph.MaxNodes, def.MaxNodes)
	}
	if cfg.Graph.MinScore != def.MinScore {
		t.Errorf("MinScore = %f, want %f", cfg.Graph.MinScore, def.MinScore)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZEKE_BIND", "0.0.0.0")
	t.Setenv("ZEKE_PORT", "9000")
	t.Setenv("ZEKE_DB_PATH", "/tmp/zeke-test.db")
	t.Setenv("ZEKE_OLLAMA_URL", "http://ollama:11434")
	t.Setenv("ZEKE_EMBEDDING_MODEL", "all-minilm")
	t.Setenv("ZEKE_SEARCH_TIMEOUT", "12")
	t.Setenv("ZEKE_DECAY_DAYS", "7.5")

	cfg := Load()

	if cfg.ListenAddr() != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q, want 0.0.0.0:9000", cfg.ListenAddr())
	}
	if cfg.Database.Path != "/tmp/zeke-test.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Semantic.OllamaURL != "http://ollama:11434" {
		t.Errorf("ollama url = %q", cfg.Semantic.OllamaURL)
	}
	if cfg.Semantic.EmbeddingModel != "all-minilm" {
		t.Errorf("embedding model = %q", cfg.Semantic.EmbeddingModel)
	}
	if cfg.Semantic.SearchTimeout != 12 {
		t.Errorf("search timeout = %d, want 12", cfg.Semantic.SearchTimeout)
	}
	if cfg.Graph.DecayDays != 7.5 {
		t.Errorf("decay days = %f, want 7.5", cfg.Graph.DecayDays)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("ZEKE_PORT", "not-a-port")
	t.Setenv("ZEKE_DECAY_DAYS", "-3")
	t.Setenv("ZEKE_SEARCH_TIMEOUT", "0")

	cfg := Load()
	def := Default()

	if cfg.Server.Port != def.Server.Port {
		t.Errorf("port = %d, want default %d", cfg.Server.Port, def.Server.Port)
	}
	if cfg.Graph.DecayDays != def.Graph.DecayDays {
		t.Errorf("decay days = %f, want default %f", cfg.Graph.DecayDays, def.Graph.DecayDays)
	}
	if cfg.Semantic.SearchTimeout != def.Semantic.SearchTimeout {
		t.Errorf("search timeout = %d, want default %d", cfg.Semantic.SearchTimeout, def.Semantic.SearchTimeout)
	}
}
