package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SearchResponse struct {
	Documents []ScoredDocument `json:"documents"`
}

// ScoredDocument is the search endpoint's display shape.
type ScoredDocument struct {
	Content         string   `json:"content"`
	Metadata        Metadata `json:"metadata"`
	SimilarityScore float64  `json:"similarity_score"`
	Relevance       string   `json:"relevance"`
}

type EmbeddingDiagnostics struct {
	Model     string  `json:"model"`
	Dimension int     `json:"dimension"`
	Norm      float64 `json:"norm"`
}
