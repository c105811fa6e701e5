package disha

import (
	"context"
	"log/slog"

	"github.com/margdarshak/disha/chunker"
	"github.com/margdarshak/disha/corpus"
	"github.com/margdarshak/disha/vectorstore"
)

// Bootstrap makes the store queryable: if a previously built index exists it
// is loaded as-is, otherwise the corpus is read, chunked, and built into a new
// index. Safe to call again after a process restart.
func Bootstrap(ctx context.Context, store vectorstore.Store, ck *chunker.Chunker, corpusPath string) error {
	ready, err := store.Ready(ctx)
	if err != nil {
		return err
	}

	if ready {
		slog.Info("loading existing vector index")
		return store.Load(ctx)
	}

	slog.Info("building vector index", "corpus", corpusPath)

	records, err := corpus.Load(corpusPath)
	if err != nil {
		return err
	}

	chunks, err := ck.Split(records)
	if err != nil {
		return err
	}

	return store.Build(ctx, chunks)
}
