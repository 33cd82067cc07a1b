package index

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"ragpipe/internal/domain"
)

// Builder turns a document into index entries by chunking and embedding it.
type Builder struct {
	chunker  domain.Chunker
	embedder domain.Embedder
}

func NewBuilder(chunker domain.Chunker, embedder domain.Embedder) *Builder {
	return &Builder{chunker: chunker, embedder: embedder}
}

// Build chunks document and embeds every chunk with the given dimensionality.
// Entry IDs are the chunk positions, starting at zero.
func (b *Builder) Build(ctx context.Context, document string, dimensions int) ([]domain.Chunk, []domain.IndexEntry) {
	chunks := b.chunker.Chunk(document)
	entries := make([]domain.IndexEntry, len(chunks))
	for i, ch := range chunks {
		entries[i] = domain.IndexEntry{
			ID:     i,
			Text:   ch.Text,
			Vector: b.embedder.Embed(ch.Text, dimensions),
		}
	}
	logutil.GetLogger(ctx).Debug("index built",
		zap.String("embedder", b.embedder.Name()),
		zap.Int("chunks", len(chunks)),
		zap.Int("dimensions", dimensions),
	)
	return chunks, entries
}
