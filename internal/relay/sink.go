package relay

import (
	"context"
	"sync"

	"github.com/wagiedev/claude-session-sdk-go/internal/message"
)

// item is one entry of a consumer's queue: a message or a fatal stream error.
type item struct {
	msg message.Message
	err error
}

// sink is the per-consumer queue a Relay delivers into.
//
// The queue is unbounded so that delivery never blocks the relay. A sink is
// sealed when it will receive nothing more (superseded, or the stream ended)
// and detached when its consumer has stopped reading.
type sink struct {
	mu       sync.Mutex
	queue    []item
	sealed   bool
	detached bool

	// notify has capacity 1 and wakes a waiting consumer
	notify chan struct{}
}

func newSink() *sink {
	return &sink{notify: make(chan struct{}, 1)}
}

// push appends it to the queue and reports whether the sink accepted it.
// A sealed or detached sink refuses every item.
func (s *sink) push(it item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed || s.detached {
		return false
	}

	s.queue = append(s.queue, it)
	s.wake()

	return true
}

// preload puts items at the head of an empty, not yet installed sink.
func (s *sink) preload(items []item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(items, s.queue...)
	s.wake()
}

// seal marks the end of input; the consumer drains the queue and stops.
func (s *sink) seal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sealed = true
	s.wake()
}

// detach marks the consumer as gone and returns what it never read.
func (s *sink) detach() []item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detached = true
	rest := s.queue
	s.queue = nil

	return rest
}

// next blocks until an item is available, the sink is sealed and drained, or ctx is done.
// The boolean is false when no item will follow.
func (s *sink) next(ctx context.Context) (item, bool) {
	for {
		s.mu.Lock()

		if len(s.queue) > 0 {
			it := s.queue[0]
			s.queue[0] = item{}
			s.queue = s.queue[1:]
			s.mu.Unlock()

			return it, true
		}

		if s.sealed {
			s.mu.Unlock()

			return item{}, false
		}

		s.mu.Unlock()

		select {
		case <-s.notify:
		case <-ctx.Done():
			return item{err: ctx.Err()}, true
		}
	}
}

// wake signals a waiting consumer without blocking.
// Caller must hold s.mu.
func (s *sink) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}
