// Package candidate retrieves candidate profiles from Postgres using
// hybrid filter + vector similarity queries.
package candidate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Querier is the slice of pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Embedder turns query text into vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Repo runs candidate retrieval queries.
type Repo struct {
	db       Querier
	embedder Embedder
	logger   *zap.Logger
}

// New creates a candidate repository.
func New(db Querier, embedder Embedder, logger *zap.Logger) *Repo {
	return &Repo{db: db, embedder: embedder, logger: logger}
}

// Retrieve fetches up to limit candidates matching the filters, ordered by
// similarity to the query when one is given and by recency otherwise.
//
// Embedding failures surface unwrapped (they carry their own sentinel);
// store failures wrap domain.ErrStoreUnavailable.
func (r *Repo) Retrieve(ctx context.Context, query string, filters domain.FilterSet, limit int) ([]domain.CandidateRecord, error) {
	var vector []float32
	if query != "" {
		vectors, err := r.embedder.EmbedBatch(ctx, []string{query})
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("embed query: got %d vectors: %w",
				len(vectors), domain.ErrEmbeddingUnavailable)
		}
		vector = vectors[0]
	}

	q := BuildQuery(vector, filters, limit)

	rows, err := r.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %v: %w", err, domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	records := make([]domain.CandidateRecord, 0, limit)
	for rows.Next() {
		var d rowDTO
		err := rows.Scan(
			&d.ID,
			&d.FullName,
			&d.Email,
			&d.Phone,
			&d.Title,
			&d.YearsExperience,
			&d.Location,
			&d.SpokenLanguages,
			&d.Skills,
			&d.Tools,
			&d.Projects,
			&d.WorkHistory,
			&d.Education,
			&d.Certifications,
			&d.Summary,
			&d.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan candidate row: %v: %w", err, domain.ErrStoreUnavailable)
		}
		records = append(records, d.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate rows: %v: %w", err, domain.ErrStoreUnavailable)
	}

	r.logger.Debug("candidates retrieved",
		zap.Int("count", len(records)),
		zap.Bool("vector_search", vector != nil))

	return records, nil
}
