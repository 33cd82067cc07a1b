package chunker

import (
	"strings"

	"ragpipe/internal/domain"
)

// DefaultDelimiter separates chunks when no other delimiter is configured.
const DefaultDelimiter = "."

// DelimiterChunker splits text on a literal delimiter and drops blank segments.
// Retained segments keep their surrounding whitespace.
type DelimiterChunker struct {
	delimiter string
}

func NewDelimiterChunker(delimiter string) *DelimiterChunker {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &DelimiterChunker{delimiter: delimiter}
}

// Delimiter returns the separator used by this chunker.
func (c *DelimiterChunker) Delimiter() string { return c.delimiter }

func (c *DelimiterChunker) Chunk(document string) []domain.Chunk {
	chunks := []domain.Chunk{}
	if document == "" {
		return chunks
	}
	for _, segment := range strings.Split(document, c.delimiter) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{Text: segment, Index: len(chunks)})
	}
	return chunks
}
