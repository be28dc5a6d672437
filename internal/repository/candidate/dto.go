package candidate

import (
	"encoding/json"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// rowDTO mirrors one candidates row as scanned from the store. Nullable
// columns scan into pointers; the semi-structured JSONB columns scan into
// raw bytes and decode defensively.
type rowDTO struct {
	ID              string
	FullName        string
	Email           *string
	Phone           *string
	Title           *string
	YearsExperience *int
	Location        *string
	SpokenLanguages []byte
	Skills          []byte
	Tools           []byte
	Projects        []byte
	WorkHistory     []byte
	Education       *string
	Certifications  *string
	Summary         *string
	Similarity      float64
}

func (d rowDTO) toDomain() domain.CandidateRecord {
	return domain.CandidateRecord{
		ID:              d.ID,
		FullName:        d.FullName,
		Email:           deref(d.Email),
		Phone:           deref(d.Phone),
		Title:           deref(d.Title),
		YearsExperience: d.YearsExperience,
		Location:        deref(d.Location),
		Languages:       decodeLanguages(d.SpokenLanguages),
		Skills:          domain.DecodeFlex(d.Skills),
		Tools:           domain.DecodeFlex(d.Tools),
		Projects:        domain.DecodeFlex(d.Projects),
		WorkHistory:     domain.DecodeFlex(d.WorkHistory),
		Education:       deref(d.Education),
		Certifications:  deref(d.Certifications),
		Summary:         deref(d.Summary),
		Similarity:      d.Similarity,
	}
}

// decodeLanguages tolerates malformed payloads the same way FlexField does:
// anything that is not a JSON string array becomes an empty list.
func decodeLanguages(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var langs []string
	if err := json.Unmarshal(data, &langs); err != nil {
		return nil
	}
	return langs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
