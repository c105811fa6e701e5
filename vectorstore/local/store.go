package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/margdarshak/disha/chunker"
	"github.com/margdarshak/disha/embedder"
	"github.com/margdarshak/disha/vectorstore"
)

const indexFile = "index.json"

type entry struct {
	SourceID   int       `json:"source_id"`
	Title      string    `json:"title"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding"`
}

// localStore keeps the whole index in memory and persists it as a single JSON
// file inside the persist directory. A non-empty persist directory means the
// index was already built by a previous run.
type localStore struct {
	options  vectorstore.Options
	embedder embedder.Embedder
	entries  []entry
	mtx      sync.RWMutex
}

func (s *localStore) Ready(ctx context.Context) (bool, error) {
	dirents, err := os.ReadDir(s.options.Location)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return len(dirents) > 0, nil
}

func (s *localStore) Build(ctx context.Context, chunks []chunker.Chunk) error {
	entries := make([]entry, 0, len(chunks))

	for _, ch := range chunks {
		vec, err := s.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of record %d: %w", ch.Index, ch.SourceID, err)
		}
		entries = append(entries, entry{
			SourceID:   ch.SourceID,
			Title:      ch.Title,
			ChunkIndex: ch.Index,
			Text:       ch.Text,
			Embedding:  vec,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.options.Location, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.options.Location, indexFile), data, 0o644); err != nil {
		return err
	}

	s.mtx.Lock()
	s.entries = entries
	s.mtx.Unlock()

	return nil
}

func (s *localStore) Load(ctx context.Context) error {
	data, err := os.ReadFile(filepath.Join(s.options.Location, indexFile))
	if err != nil {
		return fmt.Errorf("failed to open persisted index: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse persisted index: %w", err)
	}

	s.mtx.Lock()
	s.entries = entries
	s.mtx.Unlock()

	return nil
}

func (s *localStore) Query(ctx context.Context, text string, k int) ([]vectorstore.Result, error) {
	if k < 1 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	results := make([]vectorstore.Result, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, vectorstore.Result{
			SourceID:   e.SourceID,
			Title:      e.Title,
			ChunkIndex: e.ChunkIndex,
			Text:       e.Text,
			Score:      float32(vectorstore.CosineSimilarity(vec, e.Embedding)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

func NewStore(e embedder.Embedder, opts ...vectorstore.Option) vectorstore.Store {
	options := vectorstore.NewOptions(opts...)

	if len(options.Location) == 0 {
		panic("missing persist directory for local store")
	}

	if e == nil {
		panic("embedder is required for local store")
	}

	return &localStore{
		options:  options,
		embedder: e,
	}
}
