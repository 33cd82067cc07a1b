package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"ragpipe/internal/domain"
)

type cacheKey struct {
	dimensions int
	text       string
}

// CachedEmbedder memoizes vectors of the wrapped embedder in an LRU cache.
type CachedEmbedder struct {
	next  domain.Embedder
	cache *lru.Cache[cacheKey, domain.Vector]
}

// WrapLRU returns e wrapped with an LRU cache of the given size.
// A non-positive size returns e unchanged.
func WrapLRU(e domain.Embedder, size int) (domain.Embedder, error) {
	if e == nil || size <= 0 {
		return e, nil
	}
	cache, err := lru.New[cacheKey, domain.Vector](size)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{next: e, cache: cache}, nil
}

// Name returns the identifier of the wrapped embedder.
func (c *CachedEmbedder) Name() string { return c.next.Name() }

// Embed returns a copy of the cached vector, computing it on a miss.
func (c *CachedEmbedder) Embed(text string, dimensions int) domain.Vector {
	key := cacheKey{dimensions: dimensions, text: text}
	if cached, ok := c.cache.Get(key); ok {
		logutil.GetLogger(context.Background()).Debug("embedding cache hit", zap.Int("dimensions", dimensions))
		return cloneVector(cached)
	}
	vec := c.next.Embed(text, dimensions)
	c.cache.Add(key, cloneVector(vec))
	return vec
}

// Len reports the number of cached vectors.
func (c *CachedEmbedder) Len() int { return c.cache.Len() }

func cloneVector(v domain.Vector) domain.Vector {
	out := make(domain.Vector, len(v))
	copy(out, v)
	return out
}
