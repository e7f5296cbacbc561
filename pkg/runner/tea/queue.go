package teaui

import (
	"context"
	"sync"

	"tableflip.dev/roster/pkg/roster"
)

// changeQueue hands roster changes to the UI in the order they were made.
// push never blocks, so it is safe to call from the UI's own Update.
type changeQueue struct {
	mu      sync.Mutex
	pending []roster.Change
	wake    chan struct{}
}

func newChangeQueue() *changeQueue {
	return &changeQueue{wake: make(chan struct{}, 1)}
}

func (q *changeQueue) push(c roster.Change) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *changeQueue) take() []roster.Change {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// run delivers queued changes one at a time until ctx is done.
func (q *changeQueue) run(ctx context.Context, send func(roster.Change)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}
		for _, c := range q.take() {
			send(c)
		}
	}
}
