package domain

// CandidateRecord is one candidate profile as served by the search pipeline.
// Built by the retriever from store rows; the reranker attaches RerankScore.
// Immutable after creation except for the score fields.
type CandidateRecord struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Title           string    `json:"professional_title,omitempty"`
	YearsExperience *int      `json:"years_experience,omitempty"`
	Location        string    `json:"location,omitempty"`
	Languages       []string  `json:"languages,omitempty"`
	Skills          FlexField `json:"skills"`
	Tools           FlexField `json:"tools"`
	Projects        FlexField `json:"projects"`
	WorkHistory     FlexField `json:"work_history"`
	Education       string    `json:"education,omitempty"`
	Certifications  string    `json:"certifications,omitempty"`
	Summary         string    `json:"summary,omitempty"`

	// Similarity is 1 - cosine distance to the query vector, or 0 when the
	// search had no query. In [-1, 1] for normalized embeddings.
	Similarity float64 `json:"score"`
	// RerankScore is the cross-encoder relevance score. Nil until reranked.
	RerankScore *float64 `json:"rerank_score,omitempty"`
}

// SearchResult is the ordered result set served to the API layer.
type SearchResult struct {
	Results []CandidateRecord `json:"results"`
	Total   int               `json:"total"`
	Cached  bool              `json:"cached"`
}

// CacheStats aggregates cache-layer counters.
type CacheStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	KeyCount int64   `json:"key_count"`
	HitRate  float64 `json:"hit_rate"`
}
