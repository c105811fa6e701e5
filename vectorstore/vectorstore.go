package vectorstore

import (
	"context"

	"github.com/margdarshak/disha/chunker"
)

// Result is one retrieved chunk. Results come back best-match first; rank
// order is the only relevance signal callers may rely on across backends.
type Result struct {
	SourceID   int
	Title      string
	ChunkIndex int
	Text       string
	Score      float32
}

// Store is the similarity index over corpus chunks. A store is built once,
// persists itself, and is read-only afterwards. Ready reports whether a
// previously built index exists so callers can Load instead of rebuilding.
type Store interface {
	Ready(ctx context.Context) (bool, error)
	Build(ctx context.Context, chunks []chunker.Chunk) error
	Load(ctx context.Context) error
	Query(ctx context.Context, text string, k int) ([]Result, error)
}
