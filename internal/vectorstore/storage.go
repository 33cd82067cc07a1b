package vectorstore

import "ragpipe/internal/domain"

// Storage holds the current index and supports similarity search over it.
type Storage interface {
	domain.Searcher
	Replace(entries []domain.IndexEntry)
	Entries() []domain.IndexEntry
	Len() int
	Clear()
}
