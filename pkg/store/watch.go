package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventAccountsChanged means accounts.json was rewritten by someone else.
	EventAccountsChanged EventType = iota
	// EventSettingsChanged means settings.json was rewritten by someone else.
	EventSettingsChanged
)

func (t EventType) String() string {
	switch t {
	case EventAccountsChanged:
		return "accounts"
	case EventSettingsChanged:
		return "settings"
	default:
		return "unknown"
	}
}

// Event is emitted by Persistence.Watch when a document changes on disk.
type Event struct {
	Type EventType
}

const throttleDelay = 100 * time.Millisecond

// Watch streams change events for documents written by other processes (or
// by hand) until ctx is cancelled. Writes made through this Persistence are
// not reported.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer watcher.Close()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer reloads everything anyway, so a dropped
				// duplicate costs nothing.
			}
		}

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventAccountsChanged}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				var key string
				var typ EventType
				switch filepath.Base(evt.Name) {
				case AccountsKey:
					key, typ = AccountsKey, EventAccountsChanged
				case SettingsKey:
					key, typ = SettingsKey, EventSettingsChanged
				default:
					continue
				}
				if p.ownWrite(key, 2*throttleDelay) {
					continue
				}
				throttle.Enqueue(Event{Type: typ}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so a burst of writes
// produces one reload per document.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
