package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/margdarshak/disha/dispatch"
	serverhttp "github.com/margdarshak/disha/server/http"
)

var cfg struct {
	// Embedder config
	EmbedderProvider string `help:"Embedding provider (google or openai)" default:"google"`
	EmbedderKey      string `help:"API key for the embedder" env:"EMBEDDER_API_KEY" default:""`
	EmbedderModel    string `help:"Model identifier for the embedder (provider default when empty)" default:""`

	// Generator config
	GeneratorKey   string `help:"API key for the generation provider" env:"GENERATOR_API_KEY" default:""`
	GeneratorModel string `help:"Model identifier for the generator (provider default when empty)" default:""`

	// Vector store config
	Store           string `help:"Vector store backend (local, postgres, or qdrant)" default:"local"`
	StoreLocation   string `help:"Postgres DSN or Qdrant base URL (the local backend uses the persist dir from initialize)" default:""`
	StoreCollection string `help:"Qdrant collection or Postgres table name" default:"career_chunks"`
	StoreKey        string `help:"API key for the vector store" env:"VECTOR_STORE_API_KEY" default:""`
	VectorSize      int    `help:"Embedding dimensionality used to provision remote stores" default:"768"`

	// Observability
	HTTPAddr string `help:"Optional listen address for the health endpoint" default:""`
}

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	// stdout carries protocol responses; everything else goes to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dispatcher := dispatch.New(newServiceFactory())

	if len(cfg.HTTPAddr) > 0 {
		health := serverhttp.New(cfg.HTTPAddr, dispatcher.Ready)
		health.Start()
		defer health.Shutdown(context.Background())
		slog.Info("health endpoint listening", "addr", cfg.HTTPAddr)
	}

	if err := dispatcher.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		slog.Error("command loop terminated", "error", err)
		os.Exit(1)
	}
}
