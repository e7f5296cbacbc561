package teaui

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tableflip.dev/roster/pkg/roster"
)

func TestChangeQueueKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 50
	q := newChangeQueue()
	got := make(chan string, n)
	go q.run(ctx, func(c roster.Change) {
		// a slow receiver lets pushes pile up behind it
		time.Sleep(time.Millisecond)
		got <- c.Message
	})

	for i := 0; i < n; i++ {
		q.push(roster.Change{Message: strconv.Itoa(i)})
	}

	for i := 0; i < n; i++ {
		select {
		case m := <-got:
			if want := strconv.Itoa(i); m != want {
				t.Fatalf("change %d: got %q, want %q", i, m, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for change %d", i)
		}
	}
}

func TestChangeQueuePushDoesNotBlock(t *testing.T) {
	q := newChangeQueue()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			q.push(roster.Change{})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("push blocked without a reader")
	}
	if got := len(q.take()); got != 100 {
		t.Fatalf("queued %d changes, want 100", got)
	}
}
