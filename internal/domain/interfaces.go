package domain

// Vector is a fixed-length embedding produced by an Embedder.
type Vector []float64

// Chunk is a non-blank piece of the document, in order of appearance.
type Chunk struct {
	Text  string
	Index int
}

// IndexEntry is a single chunk together with its embedding.
// ID is the chunk position in the current chunk sequence and is reassigned on every rebuild.
type IndexEntry struct {
	ID     int
	Text   string
	Vector Vector
}

// RetrievalResult is an index entry scored against a query.
type RetrievalResult struct {
	IndexEntry
	Similarity float64
}

// QueryResult is what a query returns synchronously, before the answer is ready.
type QueryResult struct {
	Seq         uint64
	Query       string
	QueryVector Vector
	Results     []RetrievalResult
}

// Answer is a synthesized response committed for the query with the given sequence number.
type Answer struct {
	Seq   uint64
	Query string
	Text  string
}

// Chunker splits a document into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document string) []Chunk
}

// Embedder converts free text into a vector with the requested number of dimensions.
type Embedder interface {
	Name() string
	Embed(text string, dimensions int) Vector
}

// Searcher ranks stored entries against a query vector.
type Searcher interface {
	Search(vector Vector, topK int) []RetrievalResult
}

// Synthesizer produces an answer string from a query and its retrieved context.
type Synthesizer interface {
	Synthesize(query string, results []RetrievalResult) string
}

// Valid embedding dimensionality range.
const (
	MinDimensions = 2
	MaxDimensions = 8
)

// ClampDimensions bounds n to [MinDimensions, MaxDimensions].
func ClampDimensions(n int) int {
	if n < MinDimensions {
		return MinDimensions
	}
	if n > MaxDimensions {
		return MaxDimensions
	}
	return n
}
