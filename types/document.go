package types

// DocumentChunk is the unit of indexed text stored in the vector database.
type DocumentChunk struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Metadata  Metadata `json:"metadata"`
	CreatedAt int64    `json:"created_at"`
}

// Metadata carries the recognized chunk fields plus an open string map for
// everything else (filename, fileSize, fileType, description, uploadedAt,
// processedAt, ...).
type Metadata struct {
	Source     string            `json:"source"`
	Chunk      int               `json:"chunk"`
	ChunkCount int               `json:"chunkCount"`
	Custom     map[string]string `json:"custom,omitempty"`
}

// RetrievedDocument is a chunk plus the per-query similarity score the store
// assigned to it. It only lives for the duration of one retrieval call.
type RetrievedDocument struct {
	DocumentChunk
	SimilarityScore float64 `json:"similarity_score"`
}

// ConfidenceMetrics summarizes the similarity distribution of one retrieval.
type ConfidenceMetrics struct {
	AvgSimilarity     float64 `json:"avg_similarity"`
	MaxSimilarity     float64 `json:"max_similarity"`
	MinSimilarity     float64 `json:"min_similarity"`
	ScoreVariance     float64 `json:"score_variance"`
	DocumentCount     int     `json:"document_count"`
	OverallConfidence float64 `json:"overall_confidence"`
}

// ParsedResponse holds the structured fields extracted from the model output.
type ParsedResponse struct {
	Answer     string `json:"answer"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// QueryLogEntry is an append-only record of one answered question.
type QueryLogEntry struct {
	ID        string `bson:"_id" json:"id"`
	Question  string `bson:"question" json:"question"`
	Answer    string `bson:"answer" json:"answer"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

// SourceMatch is the per-document display entry returned with an answer.
type SourceMatch struct {
	Source          string  `json:"source"`
	Chunk           int     `json:"chunk"`
	Snippet         string  `json:"snippet"`
	SimilarityScore float64 `json:"similarity_score"`
	Relevance       string  `json:"relevance"`
}

// IngestResult reports how many chunks one ingestion produced and wrote.
type IngestResult struct {
	InsertedCount int `json:"inserted_count"`
	ChunkCount    int `json:"chunk_count"`
}

// GenerateOptions are the per-request language model overrides.
type GenerateOptions struct {
	Model       string
	Temperature float32
}
