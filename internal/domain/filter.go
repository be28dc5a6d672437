package domain

// FilterSet holds the exact-match and range filters for candidate search.
//
// MinExperience is a pointer on purpose: nil means "no filter", while an
// explicit zero is a real filter (years_experience >= 0). The distinction
// matters for both the generated predicate and the cache fingerprint.
type FilterSet struct {
	Location      string
	MinExperience *int
}

// IsEmpty reports whether no filter is set.
func (f FilterSet) IsEmpty() bool {
	return f.Location == "" && f.MinExperience == nil
}

// Canonical returns the set filters as a map for fingerprint serialization.
// Absent filters are omitted, never encoded as explicit nulls.
func (f FilterSet) Canonical() map[string]any {
	m := make(map[string]any, 2)
	if f.Location != "" {
		m["location"] = f.Location
	}
	if f.MinExperience != nil {
		m["min_experience"] = *f.MinExperience
	}
	return m
}

// MinExp is a convenience constructor for the MinExperience pointer.
func MinExp(years int) *int { return &years }
