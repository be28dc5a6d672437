package rerank

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

type fakeScorer struct {
	scores []float64
	err    error
	calls  int
	query  string
	texts  []string
}

func (f *fakeScorer) Score(_ context.Context, query string, texts []string) ([]float64, error) {
	f.calls++
	f.query = query
	f.texts = texts
	return f.scores, f.err
}

func newTestService(s *fakeScorer) *Service {
	return New(s, zap.NewNop())
}

func named(id string) domain.CandidateRecord {
	return domain.CandidateRecord{ID: id, FullName: "Candidate " + id, Title: "Senior Backend Engineer"}
}

func TestRerank_SortsByScoreDescending(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.2, 0.9, 0.5}}
	svc := newTestService(scorer)

	in := []domain.CandidateRecord{named("a"), named("b"), named("c")}
	out, err := svc.Rerank(context.Background(), "go developer", in)
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	gotOrder := []string{out[0].ID, out[1].ID, out[2].ID}
	wantOrder := []string{"b", "c", "a"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}
	if out[0].RerankScore == nil || *out[0].RerankScore != 0.9 {
		t.Errorf("scores not attached: %+v", out[0])
	}
	if scorer.query != "go developer" {
		t.Errorf("query = %q", scorer.query)
	}
	// Input order is preserved in the caller's slice.
	if in[0].ID != "a" || in[0].RerankScore != nil {
		t.Errorf("input slice was modified: %+v", in[0])
	}
}

func TestRerank_StableOnEqualScores(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.5, 0.5, 0.5}}
	svc := newTestService(scorer)

	out, err := svc.Rerank(context.Background(), "q",
		[]domain.CandidateRecord{named("a"), named("b"), named("c")})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Errorf("equal scores must keep retrieval order: %s %s %s",
			out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestRerank_EmptyInputSkipsModel(t *testing.T) {
	scorer := &fakeScorer{}
	svc := newTestService(scorer)

	out, err := svc.Rerank(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d", len(out))
	}
	if scorer.calls != 0 {
		t.Error("model must not be called for empty input")
	}
}

func TestRerank_ScorerErrorSurfaces(t *testing.T) {
	scorer := &fakeScorer{err: domain.ErrRerankUnavailable}
	svc := newTestService(scorer)

	_, err := svc.Rerank(context.Background(), "q", []domain.CandidateRecord{named("a")})
	if !errors.Is(err, domain.ErrRerankUnavailable) {
		t.Fatalf("expected ErrRerankUnavailable, got %v", err)
	}
}

func TestRerank_CountMismatch(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.5}}
	svc := newTestService(scorer)

	_, err := svc.Rerank(context.Background(), "q",
		[]domain.CandidateRecord{named("a"), named("b")})
	if !errors.Is(err, domain.ErrRerankUnavailable) {
		t.Fatalf("expected ErrRerankUnavailable, got %v", err)
	}
}

func TestBuildCandidateText_SegmentsInOrder(t *testing.T) {
	years := 7
	rec := domain.CandidateRecord{
		Title:           "Senior Backend Engineer",
		YearsExperience: &years,
		Location:        "Berlin, Germany",
		Languages:       []string{"English", "German"},
		Education:       "MSc Computer Science, TU Munich",
		Skills:          domain.NewFlatField([]string{"Go", "PostgreSQL", "Redis"}),
		WorkHistory: domain.NewStructuredField([]domain.FlexRecord{
			{"position": "Staff Engineer", "company": "Acme GmbH", "description": "Led the search platform team"},
		}),
		Projects: domain.NewStructuredField([]domain.FlexRecord{
			{"name": "vector search", "description": "pgvector-backed retrieval service"},
		}),
		Summary: "Backend engineer focused on search infrastructure.",
	}

	doc := buildCandidateText(rec)

	wantInOrder := []string{
		"Title: Senior Backend Engineer",
		"Experience: 7 years",
		"Location: Berlin, Germany",
		"Languages: English, German",
		"Education: MSc Computer Science, TU Munich",
		"Skills: Go, PostgreSQL, Redis",
		"Work history: Staff Engineer - Acme GmbH - Led the search platform team",
		"Projects: vector search - pgvector-backed retrieval service",
		"Summary: Backend engineer focused on search infrastructure.",
	}
	last := -1
	for _, want := range wantInOrder {
		idx := strings.Index(doc, want)
		if idx < 0 {
			t.Fatalf("segment %q missing from:\n%s", want, doc)
		}
		if idx < last {
			t.Errorf("segment %q out of order", want)
		}
		last = idx
	}
}

func TestBuildCandidateText_DropsShortSegments(t *testing.T) {
	rec := domain.CandidateRecord{
		Title:    "Dev", // "Title: Dev" is too short to score
		Location: "Berlin, Germany",
	}
	doc := buildCandidateText(rec)
	if strings.Contains(doc, "Title:") {
		t.Errorf("short segment should be dropped: %q", doc)
	}
	if !strings.Contains(doc, "Location: Berlin, Germany") {
		t.Errorf("location segment missing: %q", doc)
	}
}

func TestBuildCandidateText_LegacyFlatWorkHistory(t *testing.T) {
	rec := domain.CandidateRecord{
		WorkHistory: domain.NewFlatField([]string{"Acme GmbH", "Initech"}),
	}
	doc := buildCandidateText(rec)
	if !strings.Contains(doc, "Work history: Acme GmbH, Initech") {
		t.Errorf("flat work history should fall back to list rendering: %q", doc)
	}
}

func TestBuildCandidateText_Truncation(t *testing.T) {
	rec := domain.CandidateRecord{Summary: strings.Repeat("a", 3000)}
	if got := len(buildCandidateText(rec)); got > maxTextLen {
		t.Errorf("document length = %d, want <= %d", got, maxTextLen)
	}
}
