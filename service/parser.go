package service

import (
	"strconv"
	"strings"

	"github.com/tieubaoca/docqa-be/types"
)

// ParserLabels are the line prefixes the model is instructed to emit.
// Matching is case-sensitive.
type ParserLabels struct {
	Answer     string
	Confidence string
	Reasoning  string
}

func DefaultParserLabels() ParserLabels {
	return ParserLabels{
		Answer:     "ANSWER:",
		Confidence: "CONFIDENCE:",
		Reasoning:  "REASONING:",
	}
}

const (
	neutralConfidence   = 5
	maxParsedConfidence = 10
	fallbackReasoning   = "The model did not provide structured reasoning."
)

// ParseResponse extracts answer, confidence and reasoning from the model's
// semi-structured output. A label switches the current section; following
// unlabeled non-empty lines are appended to it. If no label appears at all
// the whole trimmed text becomes the answer with a neutral confidence, the
// model's output is never dropped.
func ParseResponse(raw string, labels ParserLabels) types.ParsedResponse {
	var answer, confidence, reasoning []string
	var current *[]string
	found := false

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, labels.Answer):
			found = true
			current = &answer
			appendSection(current, strings.TrimPrefix(trimmed, labels.Answer))
		case strings.HasPrefix(trimmed, labels.Confidence):
			found = true
			current = &confidence
			appendSection(current, strings.TrimPrefix(trimmed, labels.Confidence))
		case strings.HasPrefix(trimmed, labels.Reasoning):
			found = true
			current = &reasoning
			appendSection(current, strings.TrimPrefix(trimmed, labels.Reasoning))
		default:
			if current != nil && trimmed != "" {
				appendSection(current, trimmed)
			}
		}
	}

	if !found {
		return types.ParsedResponse{
			Answer:     strings.TrimSpace(raw),
			Confidence: neutralConfidence,
			Reasoning:  fallbackReasoning,
		}
	}

	return types.ParsedResponse{
		Answer:     strings.Join(answer, " "),
		Confidence: parseConfidence(strings.Join(confidence, " ")),
		Reasoning:  strings.Join(reasoning, " "),
	}
}

func appendSection(section *[]string, text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		*section = append(*section, text)
	}
}

func parseConfidence(text string) int {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		// tolerate trailing words, e.g. "7 out of 10"
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return 0
		}
		n, err = strconv.Atoi(fields[0])
		if err != nil {
			return 0
		}
	}
	if n < 0 {
		return 0
	}
	if n > maxParsedConfidence {
		return maxParsedConfidence
	}
	return n
}
