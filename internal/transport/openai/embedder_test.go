package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
	"github.com/kailas-cloud/talentdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

// openaiEmbeddingResponse mirrors the OpenAI-compatible API embedding response.
type openaiEmbeddingResponse struct {
	Object string               `json:"object"`
	Data   []openaiEmbeddingRow `json:"data"`
	Model  string               `json:"model"`
	Usage  struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

type openaiEmbeddingRow struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) (*Embedder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	emb := NewEmbedder(&Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
	return emb, server
}

func TestEmbedBatch_OrderPreserving(t *testing.T) {
	emb, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		// Respond out of order; the client must restore input order.
		resp := openaiEmbeddingResponse{
			Object: "list",
			Model:  "test-model",
			Data: []openaiEmbeddingRow{
				{Object: "embedding", Embedding: []float32{0.2}, Index: 1},
				{Object: "embedding", Embedding: []float32{0.1}, Index: 0},
			},
		}
		resp.Usage.PromptTokens = 4
		resp.Usage.TotalTokens = 4

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	vectors, err := emb.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.2 {
		t.Errorf("vectors not in input order: %v", vectors)
	}
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	emb, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call expected for empty input")
	})

	vectors, err := emb.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Errorf("expected nil, got %v", vectors)
	}
}

func TestEmbedBatch_APIErrorWrapsSentinel(t *testing.T) {
	emb, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "upstream overloaded"}`))
	})

	_, err := emb.EmbedBatch(context.Background(), []string{"text"})
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	emb, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		resp := openaiEmbeddingResponse{
			Object: "list",
			Data: []openaiEmbeddingRow{
				{Object: "embedding", Embedding: []float32{0.1}, Index: 0},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, err := emb.EmbedBatch(context.Background(), []string{"one", "two"})
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable on count mismatch, got %v", err)
	}
}
