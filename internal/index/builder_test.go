package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ragpipe/internal/chunker"
	"ragpipe/internal/embedding"
)

const doc = "Cats are mammals. Dogs are mammals. Cars are vehicles."

func newBuilder() *Builder {
	return NewBuilder(chunker.NewDelimiterChunker("."), embedding.NewHashEmbedder())
}

func TestBuild_EntriesFollowChunks(t *testing.T) {
	chunks, entries := newBuilder().Build(context.Background(), doc, 4)
	require.Len(t, chunks, 3)
	require.Len(t, entries, 3)
	emb := embedding.NewHashEmbedder()
	for i, e := range entries {
		require.Equal(t, i, e.ID)
		require.Equal(t, chunks[i].Text, e.Text)
		require.Equal(t, emb.Embed(chunks[i].Text, 4), e.Vector)
	}
	require.Equal(t, " Dogs are mammals", entries[1].Text)
}

func TestBuild_Idempotent(t *testing.T) {
	b := newBuilder()
	_, first := b.Build(context.Background(), doc, 5)
	_, second := b.Build(context.Background(), doc, 5)
	require.Equal(t, first, second)
}

func TestBuild_DimensionsChangeVectorLength(t *testing.T) {
	b := newBuilder()
	_, four := b.Build(context.Background(), doc, 4)
	_, six := b.Build(context.Background(), doc, 6)
	for i := range four {
		require.Len(t, four[i].Vector, 4)
		require.Len(t, six[i].Vector, 6)
	}
}

func TestBuild_EmptyDocument(t *testing.T) {
	chunks, entries := newBuilder().Build(context.Background(), " . . ", 4)
	require.Empty(t, chunks)
	require.Empty(t, entries)
}
