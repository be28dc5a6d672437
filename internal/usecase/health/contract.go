package health

import "context"

// DBPinger checks candidate store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// RerankChecker checks cross-encoder service availability.
type RerankChecker interface {
	HealthCheck(ctx context.Context) error
}
