package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/types"
)

const (
	defaultK     = 4
	snippetLimit = 200
)

const answerPromptTemplate = `Answer the question using only the context below.

Context:
%s

Question: %s

Respond in exactly this format:
ANSWER: <your answer>
CONFIDENCE: <a number from 0 to 10>
REASONING: <why you answered this way>`

// AnswerService sequences the full question answering pipeline:
// retrieve -> score -> generate -> parse -> log.
type AnswerService struct {
	retriever        *Retriever
	ai               AIService
	queryLog         repository.QueryLogRepo
	labels           ParserLabels
	contextCharLimit int
}

func NewAnswerService(retriever *Retriever, ai AIService, queryLog repository.QueryLogRepo, contextCharLimit int) *AnswerService {
	if contextCharLimit <= 0 {
		contextCharLimit = 1000
	}
	return &AnswerService{
		retriever:        retriever,
		ai:               ai,
		queryLog:         queryLog,
		labels:           DefaultParserLabels(),
		contextCharLimit: contextCharLimit,
	}
}

func (s *AnswerService) Ask(ctx context.Context, req types.AskRequest) (*types.AskResponse, error) {
	return s.AskWithProgress(ctx, req, nil)
}

// AskWithProgress runs the pipeline, reporting each phase through notify when
// it is non-nil. A generation failure is fatal; a query log failure is
// reported but never masks a computed answer.
func (s *AnswerService) AskWithProgress(ctx context.Context, req types.AskRequest, notify func(phase string)) (*types.AskResponse, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	// out-of-range k and temperature are rejected by Validate above
	k := req.K
	if k == 0 {
		k = defaultK
	}

	report := func(phase string) {
		if notify != nil {
			notify(phase)
		}
	}

	report(types.PhaseRetrieving)
	docs, err := s.retriever.Retrieve(ctx, req.Question, k, req.Filter)
	if err != nil {
		return nil, err
	}

	report(types.PhaseScoring)
	metrics := ScoreConfidence(docs)

	report(types.PhaseGenerating)
	prompt := fmt.Sprintf(answerPromptTemplate, s.formatContext(docs), req.Question)
	raw, err := s.ai.Generate(ctx, prompt, types.GenerateOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGeneration, err)
	}

	report(types.PhaseParsing)
	parsed := ParseResponse(raw, s.labels)

	// log best-effort, the answer is never rolled back over a logging failure
	report(types.PhaseLogging)
	if err := s.queryLog.AppendQueryLog(ctx, &types.QueryLogEntry{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Answer:    parsed.Answer,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		log.Printf("Failed to append query log: %v", err)
	}

	report(types.PhaseDone)
	return &types.AskResponse{
		Answer:     parsed.Answer,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
		Metrics:    metrics,
		Sources:    sourceMatches(docs),
	}, nil
}

// formatContext renders the retrieved documents into the bounded context
// block embedded in the prompt.
func (s *AnswerService) formatContext(docs []types.RetrievedDocument) string {
	if len(docs) == 0 {
		return "No relevant documents were found."
	}
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Document %d (source: %s):\n%s", i+1, doc.Metadata.Source, truncate(doc.Content, s.contextCharLimit))
	}
	return b.String()
}

func sourceMatches(docs []types.RetrievedDocument) []types.SourceMatch {
	matches := make([]types.SourceMatch, 0, len(docs))
	for _, doc := range docs {
		matches = append(matches, types.SourceMatch{
			Source:          doc.Metadata.Source,
			Chunk:           doc.Metadata.Chunk,
			Snippet:         truncate(doc.Content, snippetLimit),
			SimilarityScore: doc.SimilarityScore,
			Relevance:       RelevanceTier(doc.SimilarityScore),
		})
	}
	return matches
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
