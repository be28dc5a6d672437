package candidate

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

func TestBuildQuery_FiltersAndVector(t *testing.T) {
	q := BuildQuery([]float32{0.1, 0.2}, domain.FilterSet{
		Location:      "Berlin",
		MinExperience: domain.MinExp(5),
	}, 20)

	if !strings.Contains(q.SQL, "location = $1") {
		t.Errorf("location predicate missing or misnumbered:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "years_experience >= $2") {
		t.Errorf("experience predicate missing or misnumbered:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "1 - (embedding <=> $3::vector) AS similarity") {
		t.Errorf("similarity column missing:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "ORDER BY embedding <=> $3::vector") {
		t.Errorf("vector ordering missing:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LIMIT $4") {
		t.Errorf("limit must be the final argument:\n%s", q.SQL)
	}

	want := []any{"Berlin", 5, "[0.1,0.2]", 20}
	if len(q.Args) != len(want) {
		t.Fatalf("args = %v, want %v", q.Args, want)
	}
	for i := range want {
		if q.Args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, q.Args[i], want[i])
		}
	}
}

func TestBuildQuery_NoFiltersNoVector(t *testing.T) {
	q := BuildQuery(nil, domain.FilterSet{}, 5)

	if strings.Contains(q.SQL, "WHERE") {
		t.Errorf("unexpected WHERE clause:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "0::float8 AS similarity") {
		t.Errorf("constant similarity column missing:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "ORDER BY created_at DESC") {
		t.Errorf("recency ordering missing:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LIMIT $1") {
		t.Errorf("limit should be the only argument:\n%s", q.SQL)
	}
	if len(q.Args) != 1 || q.Args[0] != 5 {
		t.Errorf("args = %v, want [5]", q.Args)
	}
}

func TestBuildQuery_ZeroExperienceIsARealFilter(t *testing.T) {
	q := BuildQuery(nil, domain.FilterSet{MinExperience: domain.MinExp(0)}, 10)

	if !strings.Contains(q.SQL, "years_experience >= $1") {
		t.Errorf("explicit zero must still generate a predicate:\n%s", q.SQL)
	}
	if q.Args[0] != 0 {
		t.Errorf("args[0] = %v, want 0", q.Args[0])
	}
}

func TestBuildQuery_VectorOnly(t *testing.T) {
	q := BuildQuery([]float32{0.5}, domain.FilterSet{}, 10)

	if strings.Contains(q.SQL, "WHERE") {
		t.Errorf("unexpected WHERE clause:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "$1::vector") {
		t.Errorf("vector should be the first argument:\n%s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LIMIT $2") {
		t.Errorf("limit numbering wrong:\n%s", q.SQL)
	}
}

func TestVectorLiteral(t *testing.T) {
	got := VectorLiteral([]float32{0.25, -1, 3})
	if got != "[0.25,-1,3]" {
		t.Errorf("VectorLiteral = %q", got)
	}
	if VectorLiteral(nil) != "[]" {
		t.Errorf("empty vector should render as []")
	}
}
