package relay

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/wagiedev/claude-session-sdk-go/internal/message"
)

// Relay routes inbound messages to the current consumer or to a buffer.
//
// A Relay outlives individual connections: Run is called once per connection,
// while the buffer and the current consumer persist across runs.
type Relay struct {
	log *slog.Logger

	// mu is the routing lock: it guards current and buffer together, so a
	// message is either fully handed to one sink or fully buffered.
	mu      sync.Mutex
	current *sink
	buffer  []message.Message
	// failure is a fatal stream error no consumer has been handed yet
	failure error

	// active is the id of the run that owns delivery; zero when none does
	active uint64
	runs   uint64
}

// New creates a relay with an empty buffer and no consumer.
func New(log *slog.Logger) *Relay {
	return &Relay{
		log: log.With("component", "relay"),
	}
}

// Pass is one run of a Relay over a single transport stream.
type Pass struct {
	relay *Relay
	id    uint64
}

// Start makes a new pass the owner of delivery and returns it; drain it with
// Pass.Run. Any pass still draining an older stream stops at its next item
// and leaves the relay's consumer and buffer alone. A fatal error held from
// an earlier pass is dropped.
func (r *Relay) Start() *Pass {
	return &Pass{relay: r, id: r.begin()}
}

// Run starts a pass and drains stream with it.
func (r *Relay) Run(ctx context.Context, stream iter.Seq2[message.Message, error]) error {
	return r.Start().Run(ctx, stream)
}

// Run drains stream until it ends, yields an error, or ctx is done.
//
// Each message is delivered to the current consumer, or buffered if there is
// none or it refuses the message. An error item is forwarded to the current
// consumer and returned; it ends the pass, unless ctx is already done, in
// which case it is treated as the end of the stream. When Run returns, the current
// consumer is sealed and detached so that it sees end-of-stream once it has
// read what it already holds.
func (p *Pass) Run(ctx context.Context, stream iter.Seq2[message.Message, error]) error {
	r, id := p.relay, p.id

	r.log.Debug("Relay started", "run", id)
	defer r.log.Debug("Relay stopped", "run", id)
	defer r.release(id)

	delivered := 0

	for msg, err := range stream {
		if err != nil {
			if ctx.Err() != nil {
				r.log.Debug("Stream error after shutdown", "error", err)

				return nil
			}

			if !r.fail(id, err) {
				r.log.Debug("Stream error from superseded run", "run", id, "error", err)

				return nil
			}

			r.log.Error("Error receiving message", "error", err)

			return err
		}

		if !r.deliver(id, msg) {
			r.log.Debug("Run superseded, dropping message", "run", id, "type", msg.MessageType())

			return nil
		}

		delivered++

		if ctx.Err() != nil {
			r.log.Debug("Relay context done", "delivered", delivered)

			return nil
		}
	}

	r.log.Debug("Message stream ended", "delivered", delivered)

	return nil
}

// begin makes a new run the owner of delivery and drops a held error from
// an earlier run.
func (r *Relay) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs++
	r.active = r.runs

	if r.failure != nil {
		r.log.Debug("Dropping unseen error from previous run", "error", r.failure)
		r.failure = nil
	}

	return r.active
}

// deliver routes msg to the current sink, falling back to the buffer.
// It reports false, delivering nothing, when run no longer owns delivery.
func (r *Relay) deliver(run uint64, msg message.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != run {
		return false
	}

	if r.current != nil && r.current.push(item{msg: msg}) {
		return true
	}

	r.buffer = append(r.buffer, msg)
	r.log.Debug("Buffered message", "type", msg.MessageType(), "buffered", len(r.buffer))

	return true
}

// fail forwards a fatal stream error to the current sink, or holds it for the
// next consumer. It reports false when run no longer owns delivery.
func (r *Relay) fail(run uint64, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != run {
		return false
	}

	if r.current != nil && r.current.push(item{err: err}) {
		return true
	}

	r.failure = err

	return true
}

// release seals and uninstalls the current sink at the end of run, unless a
// newer run has taken over.
func (r *Relay) release(run uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != run {
		return
	}

	r.active = 0

	if r.current != nil {
		r.current.seal()
		r.current = nil
	}
}

// Receive returns an iterator over buffered and then live messages.
//
// The consumer attaches when iteration starts and supersedes any previously
// attached consumer, whose iteration ends after it drains what it already
// holds. Iteration ends when the current run ends, when superseded, or when
// ctx is done (ctx.Err() is yielded). A fatal stream error is yielded as the
// last item. Items not yet yielded when the consumer stops are re-buffered.
func (r *Relay) Receive(ctx context.Context) iter.Seq2[message.Message, error] {
	return func(yield func(message.Message, error) bool) {
		s := r.attach()
		defer r.detach(s)

		for {
			it, ok := s.next(ctx)
			if !ok {
				return
			}

			if !yield(it.msg, it.err) || it.err != nil {
				return
			}
		}
	}
}

// attach hands the buffer to a new sink and installs it as current.
// Both phases happen under the routing lock, so no live message can slip
// between the buffered ones and the installation.
func (r *Relay) attach() *sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSink()

	// Phase 1: drain the buffer, in order, into the new sink. A held error
	// follows the buffered messages and ends the consumer's iteration.
	items := make([]item, 0, len(r.buffer)+1)
	for _, msg := range r.buffer {
		items = append(items, item{msg: msg})
	}

	if r.failure != nil {
		items = append(items, item{err: r.failure})
		r.failure = nil

		s.seal()
	}

	if len(items) > 0 {
		s.preload(items)
		r.log.Debug("Drained buffer into consumer", "count", len(r.buffer))
		r.buffer = nil
	}

	// Phase 2: install for live delivery
	if r.current != nil {
		r.current.seal()
	}

	r.current = s

	return s
}

// detach uninstalls s if it is still current and re-buffers its unread
// messages ahead of anything buffered since.
func (r *Relay) detach(s *sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rest := s.detach()

	if r.current == s {
		r.current = nil
	}

	unread := make([]message.Message, 0, len(rest))

	for _, it := range rest {
		if it.err == nil {
			unread = append(unread, it.msg)
		}
	}

	if len(unread) == 0 {
		return
	}

	r.buffer = slices.Concat(unread, r.buffer)
	r.log.Debug("Re-buffered unread messages", "count", len(unread), "buffered", len(r.buffer))
}

// Buffered returns the number of messages waiting for a consumer.
func (r *Relay) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.buffer)
}
