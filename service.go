package disha

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/margdarshak/disha/generator"
	"github.com/margdarshak/disha/vectorstore"
)

const (
	// one retrieval per turn; the top results feed generation context and
	// citation display with independent caps
	contextTopK = 3
	sourceTopK  = 4

	snippetMaxChars = 250
)

// Source is one citation shown to the caller alongside an answer.
type Source struct {
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
	Snippet    string `json:"snippet"`
}

// Answer is the result of a chat or greeting turn. For chat turns exactly one
// of Response and Err is set. A greeting that fell back to the fixed text
// carries both the fallback Response and the Err that caused it.
type Answer struct {
	Response *string  `json:"response"`
	Sources  []Source `json:"sources"`
	Err      *string  `json:"error"`
}

type Service struct {
	store     vectorstore.Store
	generator generator.Generator
}

func New(store vectorstore.Store, gen generator.Generator) *Service {
	if store == nil {
		panic("vector store is required")
	}

	if gen == nil {
		panic("generator is required")
	}

	return &Service{
		store:     store,
		generator: gen,
	}
}

// Chat runs one conversation turn: window the history, retrieve, format the
// context, assemble the directive, generate, and normalize the output. Any
// collaborator failure is absorbed here and surfaced on the Answer; it never
// escapes as an error or panic.
func (s *Service) Chat(ctx context.Context, message string, history []Message, language string) Answer {
	if len(strings.TrimSpace(language)) == 0 {
		language = DefaultLanguage
	}

	turns := WindowHistory(history)

	results, err := s.store.Query(ctx, message, sourceTopK)
	if err != nil {
		return failedAnswer(fmt.Errorf("retrieval failed: %w", err))
	}

	contextResults := results
	if len(contextResults) > contextTopK {
		contextResults = contextResults[:contextTopK]
	}

	req := generator.Request{
		System:   AssembleDirective(language, FormatContext(contextResults)),
		History:  turns,
		Question: message,
	}

	raw, err := s.generator.Generate(ctx, req)
	if err != nil {
		return failedAnswer(fmt.Errorf("generation failed: %w", err))
	}

	response := NormalizeOutput(raw)

	return Answer{
		Response: &response,
		Sources:  FormatSources(results),
		Err:      nil,
	}
}

// NormalizeOutput is the single place model output is coerced into the text
// the caller sees.
func NormalizeOutput(raw string) string {
	return strings.TrimSpace(raw)
}

func failedAnswer(err error) Answer {
	slog.Error("chat turn failed", "error", err)
	msg := err.Error()
	return Answer{
		Response: nil,
		Sources:  []Source{},
		Err:      &msg,
	}
}
