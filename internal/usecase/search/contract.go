package search

import (
	"context"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Retriever fetches candidates from the store, embedding the query when
// one is given.
type Retriever interface {
	Retrieve(ctx context.Context, query string, filters domain.FilterSet, limit int) ([]domain.CandidateRecord, error)
}

// Reranker reorders candidates by cross-encoder relevance to the query.
type Reranker interface {
	Rerank(ctx context.Context, query string, records []domain.CandidateRecord) ([]domain.CandidateRecord, error)
}

// ResultCache is the cache-aside store for finished result sets.
// Get and Set are best-effort: a store failure degrades to an uncached
// search, never an error. Invalidate and Stats are maintenance operations
// and do surface errors.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]domain.CandidateRecord, bool)
	Set(ctx context.Context, key string, records []domain.CandidateRecord) bool
	Invalidate(ctx context.Context, pattern string) (int64, error)
	Stats(ctx context.Context) (domain.CacheStats, error)
}

// Request is one search call. A zero TopK means "use the default".
type Request struct {
	Query   string
	Filters domain.FilterSet
	TopK    int
}

// Options bounds result sizes and over-fetching.
type Options struct {
	// DefaultTopK applies when a request leaves TopK unset.
	DefaultTopK int
	// MaxTopK caps the requested result size.
	MaxTopK int
	// OverFetchFactor multiplies TopK for the retrieval limit of semantic
	// searches so the reranker sees a wider pool than is returned.
	OverFetchFactor int
}
