package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"ragpipe/internal/domain"
	"ragpipe/internal/index"
	"ragpipe/internal/vectorstore"
)

var (
	// ErrSuperseded is returned by PendingAnswer.Wait when a newer query or a rebuild replaced it.
	ErrSuperseded = errors.New("answer superseded")
	// ErrClosed is returned by PendingAnswer.Wait when the session was closed first.
	ErrClosed = errors.New("session closed")
)

const (
	DefaultDimensions = 4
	DefaultTopK       = 3
)

// Options tunes a Session. Zero Dimensions and TopK select the defaults;
// AnswerDelay is used as given.
type Options struct {
	Dimensions  int
	TopK        int
	AnswerDelay time.Duration
	// OnAnswer is called, outside the session lock, for every committed answer.
	OnAnswer func(domain.Answer)
}

// Session owns the document, the dimensionality, the index built from them and
// the state of the latest query. Every mutation rebuilds the index in full.
type Session struct {
	builder  *index.Builder
	embedder domain.Embedder
	store    vectorstore.Storage
	synth    domain.Synthesizer
	topK     int
	delay    time.Duration
	onAnswer func(domain.Answer)

	mu         sync.Mutex
	document   string
	dimensions int
	chunks     []domain.Chunk
	seq        uint64
	pending    *PendingAnswer
	last       *domain.QueryResult
	answer     *domain.Answer
	closed     bool
}

func NewSession(chunker domain.Chunker, embedder domain.Embedder, store vectorstore.Storage, synth domain.Synthesizer, opts Options) *Session {
	if opts.Dimensions == 0 {
		opts.Dimensions = DefaultDimensions
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.AnswerDelay < 0 {
		opts.AnswerDelay = 0
	}
	s := &Session{
		builder:    index.NewBuilder(chunker, embedder),
		embedder:   embedder,
		store:      store,
		synth:      synth,
		topK:       opts.TopK,
		delay:      opts.AnswerDelay,
		onAnswer:   opts.OnAnswer,
		dimensions: domain.ClampDimensions(opts.Dimensions),
		chunks:     []domain.Chunk{},
	}
	store.Clear()
	return s
}

// SetDocument replaces the document and rebuilds the index.
func (s *Session) SetDocument(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = text
	s.rebuildLocked(ctx)
}

// SetDimensions clamps n to the valid range, stores it and rebuilds the index.
// It returns the dimensionality actually applied.
func (s *Session) SetDimensions(ctx context.Context, n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimensions = domain.ClampDimensions(n)
	s.rebuildLocked(ctx)
	return s.dimensions
}

func (s *Session) rebuildLocked(ctx context.Context) {
	chunks, entries := s.builder.Build(ctx, s.document, s.dimensions)
	s.chunks = chunks
	s.store.Replace(entries)
	s.supersedeLocked(ErrSuperseded)
	s.last = nil
	s.answer = nil
	logutil.GetLogger(ctx).Info("index rebuilt",
		zap.Int("entries", len(entries)),
		zap.Int("dimensions", s.dimensions),
	)
}

// Query embeds text, ranks the index against it and returns the matches at once.
// The synthesized answer is delivered through the returned PendingAnswer after the
// configured delay. A newer query, a rebuild or Close supersedes it.
func (s *Session) Query(ctx context.Context, text string) (domain.QueryResult, *PendingAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	vec := s.embedder.Embed(text, s.dimensions)
	res := domain.QueryResult{
		Seq:         s.seq,
		Query:       text,
		QueryVector: vec,
		Results:     s.store.Search(vec, s.topK),
	}
	last := cloneResult(res)
	s.last = &last

	logger := logutil.GetLogger(ctx).With(zap.Uint64("seq", res.Seq))
	logger.Debug("query ranked", zap.Int("results", len(res.Results)))

	p := newPendingAnswer(res.Seq)
	if s.closed {
		p.resolve("", ErrClosed)
		return res, p
	}
	s.supersedeLocked(ErrSuperseded)
	s.pending = p
	captured := cloneResult(res)
	p.timer = time.AfterFunc(s.delay, func() {
		s.commit(ctx, p, captured)
	})
	return res, p
}

func (s *Session) commit(ctx context.Context, p *PendingAnswer, res domain.QueryResult) {
	logger := logutil.GetLogger(ctx).With(zap.Uint64("seq", p.seq))
	s.mu.Lock()
	if s.pending != p || s.seq != p.seq {
		s.mu.Unlock()
		logger.Debug("stale answer discarded")
		return
	}
	ans := domain.Answer{
		Seq:   p.seq,
		Query: res.Query,
		Text:  s.synth.Synthesize(res.Query, res.Results),
	}
	s.answer = &ans
	s.pending = nil
	p.resolve(ans.Text, nil)
	cb := s.onAnswer
	s.mu.Unlock()

	logger.Info("answer committed", zap.Int("context_chunks", len(res.Results)))
	if cb != nil {
		cb(ans)
	}
}

func (s *Session) supersedeLocked(err error) {
	if s.pending == nil {
		return
	}
	s.pending.timer.Stop()
	s.pending.resolve("", err)
	s.pending = nil
}

// Close cancels any pending answer. Queries issued afterwards still rank but never answer.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.supersedeLocked(ErrClosed)
	return nil
}

// Document returns the current document text.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// Dimensions returns the current embedding dimensionality.
func (s *Session) Dimensions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensions
}

// Chunks returns a copy of the current chunk sequence.
func (s *Session) Chunks() []domain.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Index returns a copy of the current index entries.
func (s *Session) Index() []domain.IndexEntry {
	return s.store.Entries()
}

// Vectors returns copies of the index vectors in chunk order.
func (s *Session) Vectors() []domain.Vector {
	entries := s.store.Entries()
	out := make([]domain.Vector, len(entries))
	for i, e := range entries {
		out[i] = e.Vector
	}
	return out
}

// LastResult returns the most recent query result since the last rebuild.
func (s *Session) LastResult() (domain.QueryResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.QueryResult{}, false
	}
	return cloneResult(*s.last), true
}

// Answer returns the most recently committed answer since the last rebuild.
func (s *Session) Answer() (domain.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answer == nil {
		return domain.Answer{}, false
	}
	return *s.answer, true
}

func cloneResult(r domain.QueryResult) domain.QueryResult {
	out := r
	out.QueryVector = append(domain.Vector(nil), r.QueryVector...)
	out.Results = make([]domain.RetrievalResult, len(r.Results))
	for i, res := range r.Results {
		res.Vector = append(domain.Vector(nil), res.Vector...)
		out.Results[i] = res
	}
	return out
}
