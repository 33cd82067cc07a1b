package embedding

import (
	"math"
	"unicode/utf16"

	"ragpipe/internal/domain"
)

// HashEmbedder maps text to a deterministic vector derived from a 32-bit string hash.
// It is a placeholder, not a learned representation.
type HashEmbedder struct{}

// NewHashEmbedder creates a stateless hash embedder.
func NewHashEmbedder() *HashEmbedder { return &HashEmbedder{} }

// Name returns the identifier of this embedder implementation.
func (e *HashEmbedder) Name() string { return "hash" }

// Embed returns a vector of length dimensions where element i is (sin(h*i)+1)/2.
// Element 0 is always 0.5. Non-positive dimensions yield an empty vector.
func (e *HashEmbedder) Embed(text string, dimensions int) domain.Vector {
	if dimensions <= 0 {
		return domain.Vector{}
	}
	h := float64(Hash32(text))
	vec := make(domain.Vector, dimensions)
	for i := range vec {
		vec[i] = (math.Sin(h*float64(i)) + 1) / 2
	}
	return vec
}

// Hash32 folds h = (h<<5) - h + c over the UTF-16 code units of text,
// wrapping in int32 at every step.
func Hash32(text string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(text)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}
