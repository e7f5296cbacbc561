package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsExternalChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&FileConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(base, AccountsKey), []byte("[]"), 0o600); err != nil {
		t.Fatalf("write accounts: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if evt.Type == EventAccountsChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for accounts change event")
		}
	}
}
