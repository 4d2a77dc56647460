package service

import (
	"github.com/tieubaoca/docqa-be/types"
)

// excellentSimilarity is the score treated as "excellent" relevance when
// normalizing the average into the confidence formula.
const excellentSimilarity = 0.8

// ScoreConfidence derives aggregate statistics and a single [0,1] confidence
// value from a retrieved set. Only positive similarity scores count; an empty
// or all-non-positive set yields all-zero metrics. Pure and deterministic.
func ScoreConfidence(docs []types.RetrievedDocument) types.ConfidenceMetrics {
	var scores []float64
	for _, doc := range docs {
		if doc.SimilarityScore > 0 {
			scores = append(scores, doc.SimilarityScore)
		}
	}
	if len(scores) == 0 {
		return types.ConfidenceMetrics{}
	}

	sum := 0.0
	max := scores[0]
	min := scores[0]
	for _, s := range scores {
		sum += s
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}
	avg := sum / float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		d := s - avg
		variance += d * d
	}
	variance /= float64(len(scores))

	// weighted blend: relevance, consistency, corroboration (saturates at 3 docs)
	relevance := avg / excellentSimilarity
	if relevance > 1 {
		relevance = 1
	}
	consistency := 1 - variance*10
	if consistency < 0 {
		consistency = 0
	}
	corroboration := float64(len(scores)) / 3
	if corroboration > 1 {
		corroboration = 1
	}
	overall := 0.5*relevance + 0.3*consistency + 0.2*corroboration
	if overall > 1 {
		overall = 1
	}

	return types.ConfidenceMetrics{
		AvgSimilarity:     avg,
		MaxSimilarity:     max,
		MinSimilarity:     min,
		ScoreVariance:     variance,
		DocumentCount:     len(scores),
		OverallConfidence: overall,
	}
}

// RelevanceTier maps a similarity score to its display tier.
func RelevanceTier(score float64) string {
	switch {
	case score > 0.7:
		return "High"
	case score > 0.5:
		return "Medium"
	default:
		return "Low"
	}
}
