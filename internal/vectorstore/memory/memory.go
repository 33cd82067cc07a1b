package memory

import (
	"math"
	"sort"
	"sync"

	"ragpipe/internal/domain"
	"ragpipe/internal/similarity"
)

// DefaultTopK is used when Search is called with a non-positive topK.
const DefaultTopK = 3

// Storage is an in-memory index searched by brute-force cosine similarity.
type Storage struct {
	mu      sync.RWMutex
	entries []domain.IndexEntry
}

func NewStorage() *Storage { return &Storage{} }

// Replace swaps the whole index for entries. Prior entries are discarded.
func (s *Storage) Replace(entries []domain.IndexEntry) {
	owned := cloneEntries(entries)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = owned
}

// Entries returns a copy of the current index in id order.
func (s *Storage) Entries() []domain.IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Storage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *Storage) Search(vector domain.Vector, topK int) []domain.RetrievalResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Rank(vector, s.entries, topK)
}

// Rank scores every entry against vector and returns the topK best, most similar first.
// Ties keep index order. NaN scores rank after every number.
func Rank(vector domain.Vector, entries []domain.IndexEntry, topK int) []domain.RetrievalResult {
	if topK <= 0 {
		topK = DefaultTopK
	}
	results := make([]domain.RetrievalResult, len(entries))
	for i, e := range entries {
		results[i] = domain.RetrievalResult{
			IndexEntry: cloneEntry(e),
			Similarity: similarity.Cosine(vector, e.Vector),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return scoreBefore(results[i].Similarity, results[j].Similarity)
	})
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

func scoreBefore(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

func cloneEntry(e domain.IndexEntry) domain.IndexEntry {
	v := make(domain.Vector, len(e.Vector))
	copy(v, e.Vector)
	e.Vector = v
	return e
}

func cloneEntries(entries []domain.IndexEntry) []domain.IndexEntry {
	out := make([]domain.IndexEntry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}
