// Package rerank reorders retrieved candidates with a cross-encoder.
package rerank

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// maxTextLen caps the document text sent to the cross-encoder. Long
// profiles past this point add latency without changing the score much.
const maxTextLen = 2000

// minSegmentLen drops label-only segments ("Skills: Go") that carry too
// little signal to be worth scoring.
const minSegmentLen = 15

// Scorer scores (query, text) pairs, one score per text, input order.
type Scorer interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Service builds candidate documents and reorders them by model relevance.
type Service struct {
	scorer Scorer
	logger *zap.Logger
}

// New creates the rerank service.
func New(scorer Scorer, logger *zap.Logger) *Service {
	return &Service{scorer: scorer, logger: logger}
}

// Rerank scores every candidate against the query, attaches the scores and
// returns the candidates sorted by score descending. The sort is stable:
// candidates with equal scores keep their retrieval order. The input slice
// is not modified.
//
// Scorer failures surface to the caller, which falls back to the
// pre-rerank order.
func (s *Service) Rerank(ctx context.Context, query string, records []domain.CandidateRecord) ([]domain.CandidateRecord, error) {
	if len(records) == 0 {
		return records, nil
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = buildCandidateText(rec)
	}

	scores, err := s.scorer.Score(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	if len(scores) != len(records) {
		return nil, fmt.Errorf("got %d scores for %d candidates: %w",
			len(scores), len(records), domain.ErrRerankUnavailable)
	}

	ranked := make([]domain.CandidateRecord, len(records))
	copy(ranked, records)
	for i := range ranked {
		score := scores[i]
		ranked[i].RerankScore = &score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].RerankScore > *ranked[j].RerankScore
	})

	s.logger.Debug("candidates reranked", zap.Int("count", len(ranked)))
	return ranked, nil
}

// buildCandidateText renders a profile as one document for the
// cross-encoder: labeled segments in a fixed order, each dropped when too
// short to carry signal, joined with ". ".
func buildCandidateText(rec domain.CandidateRecord) string {
	experience := ""
	if rec.YearsExperience != nil {
		experience = fmt.Sprintf("%d years", *rec.YearsExperience)
	}

	segments := []struct {
		label string
		value string
	}{
		{"Title", rec.Title},
		{"Experience", experience},
		{"Location", rec.Location},
		{"Languages", strings.Join(rec.Languages, ", ")},
		{"Education", rec.Education},
		{"Certifications", rec.Certifications},
		{"Skills", rec.Skills.FormatList()},
		{"Tools", rec.Tools.FormatList()},
		{"Work history", formatEntries(rec.WorkHistory, "position", "company", "description")},
		{"Projects", formatEntries(rec.Projects, "name", "description")},
		{"Summary", rec.Summary},
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.value == "" {
			continue
		}
		text := seg.label + ": " + seg.value
		if len(text) <= minSegmentLen {
			continue
		}
		parts = append(parts, text)
	}

	doc := strings.Join(parts, ". ")
	if len(doc) > maxTextLen {
		doc = doc[:maxTextLen]
	}
	return doc
}

// formatEntries renders a structured field by its named sub-fields and
// falls back to a flat rendering for legacy list-shaped data.
func formatEntries(f domain.FlexField, fields ...string) string {
	if text := f.FormatRecords(fields...); text != "" {
		return text
	}
	return f.FormatList()
}
