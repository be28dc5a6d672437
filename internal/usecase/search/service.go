// Package search orchestrates the retrieve, rerank, and cache pipeline.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
	"github.com/kailas-cloud/talentdex/internal/repository/searchcache"
)

// Service runs candidate searches: cache lookup first, then retrieval with
// over-fetch, cross-encoder reranking for semantic queries, and a
// best-effort cache write of the finished result.
type Service struct {
	retriever Retriever
	reranker  Reranker
	cache     ResultCache
	opts      Options
	logger    *zap.Logger
}

// New creates the search orchestrator.
func New(retriever Retriever, reranker Reranker, cache ResultCache, opts Options, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		reranker:  reranker,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

// Search executes one search request.
//
// Pure filter searches (no query text) skip embedding, over-fetch, and
// reranking: results come back in recency order. Semantic searches
// retrieve OverFetchFactor times the requested size, rerank the pool, and
// return the top slice.
//
// Every backend failure degrades rather than erroring out: a rerank
// failure falls back to similarity order, and embedding or store failure
// serves an empty uncached result. The worst a caller ever sees is
// zero results with cached=false.
func (s *Service) Search(ctx context.Context, req Request) (domain.SearchResult, error) {
	topK := s.clampTopK(req.TopK)

	key := searchcache.Fingerprint(req.Query, req.Filters)
	if records, ok := s.cache.Get(ctx, key); ok {
		s.logger.Debug("search served from cache",
			zap.String("key", key), zap.Int("count", len(records)))
		return domain.SearchResult{Results: records, Total: len(records), Cached: true}, nil
	}

	semantic := req.Query != ""

	fetchLimit := topK
	if semantic {
		fetchLimit = topK * s.opts.OverFetchFactor
	}

	records, err := s.retriever.Retrieve(ctx, req.Query, req.Filters, fetchLimit)
	if err != nil {
		// Failed searches are never cached.
		s.logger.Error("retrieval failed, serving empty result", zap.Error(err))
		return domain.SearchResult{Results: []domain.CandidateRecord{}}, nil
	}

	if semantic && len(records) > 0 {
		ranked, err := s.reranker.Rerank(ctx, req.Query, records)
		if err != nil {
			// Similarity order is already usable; degrade instead of failing.
			s.logger.Warn("rerank failed, serving similarity order", zap.Error(err))
		} else {
			records = ranked
		}
	}

	if len(records) > topK {
		records = records[:topK]
	}

	if !s.cache.Set(ctx, key, records) {
		s.logger.Debug("search result not cached", zap.String("key", key))
	}

	return domain.SearchResult{Results: records, Total: len(records), Cached: false}, nil
}

// InvalidateCache removes cached search entries matching pattern.
func (s *Service) InvalidateCache(ctx context.Context, pattern string) (int64, error) {
	deleted, err := s.cache.Invalidate(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("invalidate cache: %v: %w", err, domain.ErrCacheUnavailable)
	}
	return deleted, nil
}

// CacheStats reports cache-layer counters.
func (s *Service) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("cache stats: %v: %w", err, domain.ErrCacheUnavailable)
	}
	return stats, nil
}

// clampTopK applies the default and the upper bound.
func (s *Service) clampTopK(topK int) int {
	if topK <= 0 {
		return s.opts.DefaultTopK
	}
	if topK > s.opts.MaxTopK {
		return s.opts.MaxTopK
	}
	return topK
}
