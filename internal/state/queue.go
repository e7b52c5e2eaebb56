package state

import "context"

// DefaultQueueSize is the action buffer used by the main loop.
const DefaultQueueSize = 64

// Queue is the multi-producer, single-consumer channel of actions feeding the
// main loop. Producers never close it.
type Queue struct {
	ch chan Action
}

// NewQueue returns a queue buffering size actions; negative sizes mean unbuffered.
func NewQueue(size int) *Queue {
	if size < 0 {
		size = 0
	}
	return &Queue{ch: make(chan Action, size)}
}

// Dispatch enqueues a, blocking until there is room or ctx is done.
// It reports whether the action was queued.
func (q *Queue) Dispatch(ctx context.Context, a Action) bool {
	if a == nil {
		return false
	}
	select {
	case q.ch <- a:
		return true
	case <-ctx.Done():
		return false
	}
}

// C exposes the receive side for the consumer.
func (q *Queue) C() <-chan Action {
	return q.ch
}
