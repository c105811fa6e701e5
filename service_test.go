package disha

import (
	"context"
	"errors"
	"testing"

	"github.com/margdarshak/disha/chunker"
	"github.com/margdarshak/disha/generator"
	"github.com/margdarshak/disha/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	results []vectorstore.Result
	queryFn func(text string, k int) ([]vectorstore.Result, error)

	ready bool
	built []chunker.Chunk
}

func (f *fakeStore) Ready(ctx context.Context) (bool, error) {
	return f.ready, nil
}

func (f *fakeStore) Build(ctx context.Context, chunks []chunker.Chunk) error {
	f.built = chunks
	return nil
}

func (f *fakeStore) Load(ctx context.Context) error {
	return nil
}

func (f *fakeStore) Query(ctx context.Context, text string, k int) ([]vectorstore.Result, error) {
	if f.queryFn != nil {
		return f.queryFn(text, k)
	}
	if len(f.results) > k {
		return f.results[:k], nil
	}
	return f.results, nil
}

type fakeGenerator struct {
	response string
	err      error
	requests []generator.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func doctorResults() []vectorstore.Result {
	return []vectorstore.Result{
		{SourceID: 1, Title: "Doctor", ChunkIndex: 0, Text: "Doctors diagnose and treat illness.", Score: 0.9},
		{SourceID: 1, Title: "Doctor", ChunkIndex: 1, Text: "Doctors work in hospitals and clinics.", Score: 0.8},
	}
}

func TestChatSuccess(t *testing.T) {
	store := &fakeStore{results: doctorResults()}
	gen := &fakeGenerator{response: "  Doctors help sick people get better.  "}
	svc := New(store, gen)

	answer := svc.Chat(context.Background(), "What does a doctor do?", nil, "en")

	require.NotNil(t, answer.Response)
	require.Nil(t, answer.Err)
	assert.Equal(t, "Doctors help sick people get better.", *answer.Response)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "Doctor", answer.Sources[0].Title)
}

func TestChatSendsDirectiveAndHistory(t *testing.T) {
	store := &fakeStore{results: doctorResults()}
	gen := &fakeGenerator{response: "answer"}
	svc := New(store, gen)

	history := []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
	}

	svc.Chat(context.Background(), "What does a doctor do?", history, "hi")

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Contains(t, req.System, "You MUST respond in this language: hi")
	assert.Contains(t, req.System, "[Source 1: Doctor]")
	require.Len(t, req.History, 2)
	assert.Equal(t, "hello", req.History[0].Content)
	assert.Equal(t, "What does a doctor do?", req.Question)
}

func TestChatEmptyRetrievalUsesMarker(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{response: "general advice"}
	svc := New(store, gen)

	answer := svc.Chat(context.Background(), "anything", nil, "en")

	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].System, "No relevant information found.")
	require.NotNil(t, answer.Response)
	assert.Empty(t, answer.Sources)
	assert.NotNil(t, answer.Sources, "sources must encode as [], not null")
}

func TestChatGenerationFailure(t *testing.T) {
	store := &fakeStore{results: doctorResults()}
	gen := &fakeGenerator{err: errors.New("rate limited")}
	svc := New(store, gen)

	answer := svc.Chat(context.Background(), "What does a doctor do?", nil, "en")

	assert.Nil(t, answer.Response)
	require.NotNil(t, answer.Err)
	assert.Contains(t, *answer.Err, "rate limited")
	assert.Empty(t, answer.Sources)
}

func TestChatRetrievalFailure(t *testing.T) {
	store := &fakeStore{
		queryFn: func(text string, k int) ([]vectorstore.Result, error) {
			return nil, errors.New("index unavailable")
		},
	}
	gen := &fakeGenerator{response: "unused"}
	svc := New(store, gen)

	answer := svc.Chat(context.Background(), "question", nil, "en")

	assert.Nil(t, answer.Response)
	require.NotNil(t, answer.Err)
	assert.Contains(t, *answer.Err, "index unavailable")
	assert.Empty(t, gen.requests, "generation must not run after retrieval failure")
}

func TestChatAnswerIsExactlyOneOf(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"success", &fakeGenerator{response: "ok"}},
		{"failure", &fakeGenerator{err: errors.New("boom")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&fakeStore{results: doctorResults()}, tc.gen)
			answer := svc.Chat(context.Background(), "q", nil, "en")

			if answer.Response != nil && answer.Err != nil {
				t.Fatal("both response and error are set")
			}
			if answer.Response == nil && answer.Err == nil {
				t.Fatal("neither response nor error is set")
			}
		})
	}
}

func TestChatContextUsesTopThreeSourcesTopFour(t *testing.T) {
	var results []vectorstore.Result
	for i := 0; i < 4; i++ {
		results = append(results, vectorstore.Result{Title: "Doctor", ChunkIndex: i, Text: "text"})
	}
	store := &fakeStore{results: results}
	gen := &fakeGenerator{response: "ok"}
	svc := New(store, gen)

	answer := svc.Chat(context.Background(), "q", nil, "en")

	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].System, "[Source 3: Doctor]")
	assert.NotContains(t, gen.requests[0].System, "[Source 4:")
	assert.Len(t, answer.Sources, 4)
}

func TestChatDefaultsLanguage(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{response: "ok"}
	svc := New(store, gen)

	svc.Chat(context.Background(), "q", nil, "  ")

	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].System, "You MUST respond in this language: en")
}
