package domain

import "errors"

var (
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrStoreUnavailable signals a candidate store failure.
	ErrStoreUnavailable = errors.New("candidate store unavailable")
	// ErrCacheUnavailable signals a cache store failure.
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrRerankUnavailable signals a rerank model failure.
	ErrRerankUnavailable = errors.New("rerank model unavailable")
	// ErrInvalidFilter signals a malformed caller-supplied filter.
	ErrInvalidFilter = errors.New("invalid filter")
)
