package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all zeke configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Semantic SemanticConfig `toml:"semantic"`
	Graph    GraphConfig    `toml:"graph"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SemanticConfig struct {
	OllamaURL      string `toml:"ollama_url"`
	EmbeddingModel string `toml:"embedding_model"` // e.g. "nomic-embed-text"
	SearchTimeout  int    `toml:"search_timeout"`  // seconds
}

type GraphConfig struct {
	DecayDays float64 `toml:"decay_days"` // temporal decay half-window
	MaxDepth  int     `toml:"max_depth"`
	MaxNodes  int     `toml:"max_nodes"`
	MinScore  float64 `toml:"min_score"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38111,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Semantic: SemanticConfig{
			OllamaURL:      "http://localhost:11434",
			EmbeddingModel: "nomic-embed-text",
			SearchTimeout:  5,
		},
		Graph: GraphConfig{
			DecayDays: 30,
			MaxDepth:  3,
			MaxNodes:  50,
			MinScore:  0.1,
		},
	}
}

// Load returns the default config with ZEKE_* environment overrides applied.
func Load() Config {
	cfg := Default()
	if v := os.Getenv("ZEKE_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("ZEKE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("ZEKE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ZEKE_OLLAMA_URL"); v != "" {
		cfg.Semantic.OllamaURL = v
	}
	if v := os.Getenv("ZEKE_EMBEDDING_MODEL"); v != "" {
		cfg.Semantic.EmbeddingModel = v
	}
	if v := os.Getenv("ZEKE_SEARCH_TIMEOUT"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			cfg.Semantic.SearchTimeout = s
		}
	}
	if v := os.Getenv("ZEKE_DECAY_DAYS"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			cfg.Graph.DecayDays = d
		}
	}
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
