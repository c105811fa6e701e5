package chunker

import (
	"fmt"
	"strings"

	"github.com/margdarshak/disha/corpus"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunk is one retrieval-sized segment of a corpus record.
type Chunk struct {
	SourceID int
	Title    string
	Index    int
	Text     string
}

// Chunker splits corpus records into overlapping segments using a hierarchical
// separator strategy: paragraph breaks first, then line breaks, spaces, and
// finally raw characters. Splitting is deterministic.
type Chunker struct {
	options  Options
	splitter textsplitter.RecursiveCharacter
}

func New(opts ...Option) *Chunker {
	options := NewOptions(opts...)

	return &Chunker{
		options: options,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(options.ChunkSize),
			textsplitter.WithChunkOverlap(options.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
	}
}

// Split chunks every record in order. Chunk indexes are assigned sequentially
// per record starting at zero; records with no text produce no chunks.
func (c *Chunker) Split(records []corpus.Record) ([]Chunk, error) {
	var chunks []Chunk

	for _, rec := range records {
		combined := rec.Title + "\n\n" + rec.Content
		if len(strings.TrimSpace(combined)) == 0 {
			continue
		}

		pieces, err := c.splitter.SplitText(combined)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk record %d: %w", rec.ID, err)
		}

		idx := 0
		for _, piece := range pieces {
			if len(strings.TrimSpace(piece)) == 0 {
				continue
			}
			chunks = append(chunks, Chunk{
				SourceID: rec.ID,
				Title:    rec.Title,
				Index:    idx,
				Text:     piece,
			})
			idx++
		}
	}

	return chunks, nil
}
