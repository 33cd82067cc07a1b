package main

import (
	"context"
	"fmt"
	"io"

	"ragpipe/internal/chunker"
	"ragpipe/internal/config"
	"ragpipe/internal/domain"
	"ragpipe/internal/embedding"
	"ragpipe/internal/service"
	"ragpipe/internal/synth"
	"ragpipe/internal/vectorstore/memory"
)

// assemble wires the pipeline components selected by cfg into a session.
func assemble(cfg *config.AppConfig, onAnswer func(domain.Answer)) (*service.Session, error) {
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "hash", "":
		emb = embedding.NewHashEmbedder()
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
	emb, err := embedding.WrapLRU(emb, cfg.Embedder.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("embedding cache: %w", err)
	}

	var sum domain.Synthesizer
	switch cfg.Synthesizer.Type {
	case "template", "":
		sum = synth.NewTemplateSynthesizer(cfg.Synthesizer.Template)
	default:
		return nil, fmt.Errorf("unknown synthesizer: %s", cfg.Synthesizer.Type)
	}

	return service.NewSession(
		chunker.NewDelimiterChunker(cfg.Chunker.Delimiter),
		emb,
		memory.NewStorage(),
		sum,
		service.Options{
			Dimensions:  cfg.Index.Dimensions,
			TopK:        cfg.Retrieval.TopK,
			AnswerDelay: cfg.AnswerDelay(),
			OnAnswer:    onAnswer,
		},
	), nil
}

func newSession(ctx context.Context, cfg *config.AppConfig, path string, stdin io.Reader, onAnswer func(domain.Answer)) (*service.Session, error) {
	doc, err := readDocument(path, stdin)
	if err != nil {
		return nil, err
	}
	sess, err := assemble(cfg, onAnswer)
	if err != nil {
		return nil, err
	}
	sess.SetDocument(ctx, doc)
	return sess, nil
}
