package main

import (
	"context"
	"fmt"

	disha "github.com/margdarshak/disha"
	"github.com/margdarshak/disha/chunker"
	"github.com/margdarshak/disha/dispatch"
	"github.com/margdarshak/disha/embedder"
	googleembedder "github.com/margdarshak/disha/embedder/google"
	openaiembedder "github.com/margdarshak/disha/embedder/openai"
	"github.com/margdarshak/disha/generator"
	anthropicgenerator "github.com/margdarshak/disha/generator/anthropic"
	googlegenerator "github.com/margdarshak/disha/generator/google"
	groqgenerator "github.com/margdarshak/disha/generator/groq"
	openaigenerator "github.com/margdarshak/disha/generator/openai"
	"github.com/margdarshak/disha/vectorstore"
	localstore "github.com/margdarshak/disha/vectorstore/local"
	postgresstore "github.com/margdarshak/disha/vectorstore/postgres"
	qdrantstore "github.com/margdarshak/disha/vectorstore/qdrant"
)

func newGenerator(provider string) (generator.Generator, error) {
	opts := []generator.Option{
		generator.WithApiKey(cfg.GeneratorKey),
		generator.WithModel(cfg.GeneratorModel),
	}

	switch provider {
	case "google":
		return googlegenerator.NewGenerator(opts...), nil
	case "groq":
		return groqgenerator.NewGenerator(opts...), nil
	case "openai":
		return openaigenerator.NewGenerator(opts...), nil
	case "anthropic":
		return anthropicgenerator.NewGenerator(opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func newEmbedder() (embedder.Embedder, error) {
	opts := []embedder.Option{
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.EmbedderModel),
	}

	switch cfg.EmbedderProvider {
	case "google":
		return googleembedder.NewEmbedder(opts...), nil
	case "openai":
		return openaiembedder.NewEmbedder(opts...), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbedderProvider)
	}
}

func newStore(e embedder.Embedder, persistDir string) (vectorstore.Store, error) {
	switch cfg.Store {
	case "local":
		return localstore.NewStore(
			e,
			vectorstore.WithLocation(persistDir),
		), nil
	case "postgres":
		return postgresstore.NewStore(
			e,
			vectorstore.WithLocation(cfg.StoreLocation),
			vectorstore.WithCollection(cfg.StoreCollection),
			vectorstore.WithVectorSize(cfg.VectorSize),
		), nil
	case "qdrant":
		return qdrantstore.NewStore(
			e,
			vectorstore.WithLocation(cfg.StoreLocation),
			vectorstore.WithCollection(cfg.StoreCollection),
			vectorstore.WithVectorSize(cfg.VectorSize),
			vectorstore.WithApiKey(cfg.StoreKey),
		), nil
	default:
		return nil, fmt.Errorf("unknown vector store backend: %s", cfg.Store)
	}
}

// newServiceFactory wires an embedder, a vector store, and the selected
// generation provider into a chat service, building or loading the index as
// needed. The dispatcher invokes it once per initialize command.
func newServiceFactory() dispatch.Factory {
	return func(ctx context.Context, careersPath string, persistDir string, provider string) (*disha.Service, error) {
		gen, err := newGenerator(provider)
		if err != nil {
			return nil, err
		}

		emb, err := newEmbedder()
		if err != nil {
			return nil, err
		}

		store, err := newStore(emb, persistDir)
		if err != nil {
			return nil, err
		}

		if err := disha.Bootstrap(ctx, store, chunker.New(), careersPath); err != nil {
			return nil, err
		}

		return disha.New(store, gen), nil
	}
}
