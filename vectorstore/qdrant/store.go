package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/margdarshak/disha/chunker"
	"github.com/margdarshak/disha/embedder"
	"github.com/margdarshak/disha/util/getsafe"
	"github.com/margdarshak/disha/vectorstore"
)

type qdrantStore struct {
	options  vectorstore.Options
	embedder embedder.Embedder
	client   *http.Client
}

func (s *qdrantStore) Ready(ctx context.Context) (bool, error) {
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	count, err := s.count(ctx)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *qdrantStore) Build(ctx context.Context, chunks []chunker.Chunk) error {
	if err := s.configure(ctx); err != nil {
		return err
	}

	points := make([]map[string]any, 0, len(chunks))

	for _, ch := range chunks {
		vec, err := s.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of record %d: %w", ch.Index, ch.SourceID, err)
		}

		points = append(points, map[string]any{
			"id":     uuid.New().String(),
			"vector": vec,
			"payload": map[string]any{
				"source_id":   ch.SourceID,
				"title":       ch.Title,
				"chunk_index": ch.Index,
				"text":        ch.Text,
			},
		})
	}

	req := map[string]any{
		"points": points,
	}

	var rsp qdrantEnvelope[json.RawMessage]

	path := fmt.Sprintf("/collections/%s/points?wait=true", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPut, path, req, &rsp); err != nil {
		return err
	}

	if !strings.EqualFold(rsp.Status.State, "ok") && len(rsp.Status.Error) > 0 {
		return errors.New(rsp.Status.Error)
	}

	return nil
}

func (s *qdrantStore) Load(ctx context.Context) error {
	// points stay in qdrant; nothing to pull into memory
	return nil
}

func (s *qdrantStore) Query(ctx context.Context, text string, k int) ([]vectorstore.Result, error) {
	if k < 1 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	req := map[string]any{
		"vector":       vec,
		"limit":        k,
		"with_payload": true,
	}

	var rsp qdrantEnvelope[[]qdrantPointResult]

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return nil, err
	}

	results := make([]vectorstore.Result, 0, len(rsp.Result))

	for _, point := range rsp.Result {
		payload := point.Payload

		results = append(results, vectorstore.Result{
			SourceID:   getsafe.Int(payload, "source_id"),
			Title:      getsafe.String(payload, "title"),
			ChunkIndex: getsafe.Int(payload, "chunk_index"),
			Text:       getsafe.String(payload, "text"),
			Score:      float32(point.Score),
		})
	}

	return results, nil
}

func (s *qdrantStore) count(ctx context.Context) (int64, error) {
	req := map[string]any{
		"exact": true,
	}

	var rsp qdrantEnvelope[qdrantCountResult]

	path := fmt.Sprintf("/collections/%s/points/count", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return 0, err
	}

	return rsp.Result.Count, nil
}

func (s *qdrantStore) do(ctx context.Context, method string, path string, req any, rsp any) error {
	u := s.options.Location + path
	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	if len(s.options.ApiKey) > 0 {
		request.Header.Set("api-key", s.options.ApiKey)
		request.Header.Set("Authorization", "Bearer "+s.options.ApiKey)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("qdrant http %d: %s", response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}

func (s *qdrantStore) configure(ctx context.Context) error {
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return s.createCollection(ctx)
}

func (s *qdrantStore) collectionExists(ctx context.Context) (bool, error) {
	path := fmt.Sprintf("/collections/%s", url.PathEscape(s.options.Collection))

	var rsp qdrantEnvelope[json.RawMessage]

	err := s.do(ctx, http.MethodGet, path, nil, &rsp)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}

	return strings.EqualFold(rsp.Status.State, "ok"), nil
}

func (s *qdrantStore) createCollection(ctx context.Context) error {
	distance := s.options.Distance
	if len(distance) == 0 {
		distance = "Cosine"
	}
	req := map[string]any{
		"vectors": map[string]any{
			"size":     s.options.VectorSize,
			"distance": distance,
		},
	}

	path := fmt.Sprintf("/collections/%s", url.PathEscape(s.options.Collection))

	var rsp qdrantEnvelope[json.RawMessage]

	if err := s.do(ctx, http.MethodPut, path, req, &rsp); err != nil {
		return err
	}

	if !strings.EqualFold(rsp.Status.State, "ok") {
		return errors.New(rsp.Status.Error)
	}

	return nil
}

func NewStore(e embedder.Embedder, opts ...vectorstore.Option) vectorstore.Store {
	options := vectorstore.NewOptions(opts...)

	if len(options.Location) == 0 ||
		len(options.Collection) == 0 ||
		options.VectorSize == 0 {
		panic("missing location, collection, or vector size for qdrant store")
	}

	if e == nil {
		panic("embedder is required for qdrant store")
	}

	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	return &qdrantStore{
		options:  options,
		embedder: e,
		client:   client,
	}
}
