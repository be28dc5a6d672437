package candidate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Query is a built hybrid candidate query: parameterized SQL plus its
// positional arguments.
type Query struct {
	SQL  string
	Args []any
}

// selectColumns lists every CandidateRecord column plus the computed
// similarity column appended by BuildQuery.
const selectColumns = `id::text,
	full_name,
	email,
	phone,
	professional_title,
	years_experience,
	location,
	spoken_languages,
	skills,
	tools,
	projects,
	work_history,
	education,
	certifications,
	summary_generated`

// BuildQuery assembles the hybrid filter+vector query against the
// candidates table.
//
// Filter predicates append in a fixed order (location before
// min_experience) so positional argument indices are reproducible. When a
// query vector is present it becomes the next positional argument, the
// similarity column is 1 - (embedding <=> vector) and ordering switches to
// vector distance ascending; without a vector the similarity column is a
// constant 0 and rows order by most recently created. LIMIT is always the
// final argument.
func BuildQuery(vector []float32, filters domain.FilterSet, limit int) Query {
	var (
		where []string
		args  []any
	)

	if filters.Location != "" {
		args = append(args, filters.Location)
		where = append(where, fmt.Sprintf("location = $%d", len(args)))
	}
	if filters.MinExperience != nil {
		args = append(args, *filters.MinExperience)
		where = append(where, fmt.Sprintf("years_experience >= $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	similarityCol := "0::float8 AS similarity"
	orderSQL := "ORDER BY created_at DESC"

	if vector != nil {
		args = append(args, VectorLiteral(vector))
		idx := len(args)
		similarityCol = fmt.Sprintf("1 - (embedding <=> $%d::vector) AS similarity", idx)
		orderSQL = fmt.Sprintf("ORDER BY embedding <=> $%d::vector", idx)
	}

	args = append(args, limit)

	sql := fmt.Sprintf(`SELECT
	%s,
	%s
FROM candidates
%s
%s
LIMIT $%d`, selectColumns, similarityCol, whereSQL, orderSQL, len(args))

	return Query{SQL: sql, Args: args}
}

// VectorLiteral renders a pgvector text literal: [f1,f2,...].
func VectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
