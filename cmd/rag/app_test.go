package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ragpipe/internal/config"
	"ragpipe/internal/embedding"
)

func TestAssemble_UnknownComponents(t *testing.T) {
	cfg := config.Default()
	cfg.Embedder.Type = "openai"
	_, err := assemble(cfg, nil)
	require.Error(t, err)

	cfg = config.Default()
	cfg.Synthesizer.Type = "llm"
	_, err = assemble(cfg, nil)
	require.Error(t, err)
}

func TestNewSession_FromFileAndStdin(t *testing.T) {
	cfg := config.Default()
	cfg.Index.Dimensions = 6
	cfg.Retrieval.AnswerDelayMS = 0

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cats are mammals. Dogs are mammals. Cars are vehicles."), 0o644))

	sess, err := newSession(context.Background(), cfg, path, nil, nil)
	require.NoError(t, err)
	defer sess.Close()
	require.Len(t, sess.Index(), 3)
	require.Equal(t, embedding.NewHashEmbedder().Embed("Cats are mammals", 6), sess.Index()[0].Vector)

	sess2, err := newSession(context.Background(), cfg, "-", strings.NewReader("a.b"), nil)
	require.NoError(t, err)
	defer sess2.Close()
	require.Len(t, sess2.Chunks(), 2)

	_, err = newSession(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.txt"), nil, nil)
	require.Error(t, err)
}
