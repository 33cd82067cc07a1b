package service

import (
	"context"
	"time"
)

// PendingAnswer resolves once the answer for a query is committed or superseded.
type PendingAnswer struct {
	seq   uint64
	done  chan struct{}
	text  string
	err   error
	timer *time.Timer
}

func newPendingAnswer(seq uint64) *PendingAnswer {
	return &PendingAnswer{seq: seq, done: make(chan struct{})}
}

// Seq is the sequence number of the query this answer belongs to.
func (p *PendingAnswer) Seq() uint64 { return p.seq }

// Done is closed when the answer is resolved.
func (p *PendingAnswer) Done() <-chan struct{} { return p.done }

// Wait blocks until the answer resolves or ctx ends.
func (p *PendingAnswer) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.text, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// resolve must be called at most once, with the session lock held.
func (p *PendingAnswer) resolve(text string, err error) {
	p.text = text
	p.err = err
	close(p.done)
}
