package service

import (
	"strings"
)

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

// Chunker splits raw text into overlapping windows of at most chunkSize
// characters, preferring paragraph, then line, then word boundaries.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	// overlap >= chunkSize would never advance past the window
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (c *Chunker) ChunkSize() int    { return c.chunkSize }
func (c *Chunker) ChunkOverlap() int { return c.chunkOverlap }

// SplitText returns the chunks in document order. Adjacent chunks share
// chunkOverlap trailing/leading characters unless a chunk ended at an early
// natural boundary, in which case the next one starts right after it. Chunks
// are counted in runes so multi-byte text never splits mid-character.
func (c *Chunker) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	total := len(runes)
	if total <= c.chunkSize {
		return []string{text}
	}

	var chunks []string
	pos := 0
	for pos < total {
		end := pos + c.chunkSize
		if end >= total {
			chunks = append(chunks, string(runes[pos:]))
			break
		}
		end = splitBoundary(runes, pos, end)
		chunks = append(chunks, string(runes[pos:end]))

		next := end - c.chunkOverlap
		if next <= pos {
			// the chunk was shorter than the overlap, move on without one
			next = end
		}
		pos = next
	}
	return chunks
}

// splitBoundary picks the latest natural break in (pos, limit], preferring a
// paragraph break, then a line break, then a space. When the window holds a
// single unbroken token it falls back to a plain character split at limit.
func splitBoundary(runes []rune, pos, limit int) int {
	for i := limit; i > pos+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	for i := limit; i > pos; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := limit; i > pos; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return limit
}
