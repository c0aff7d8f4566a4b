package signalplot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher(t *testing.T) {
	t.Run("write to the watched file fires the callback", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recording.csv")
		if err := os.WriteFile(path, []byte("Time,Fz\n0,1\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		changed := make(chan struct{}, 1)
		watcher, err := NewFileWatcher(path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer watcher.Close()
		watcher.debounce = 50 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		watcher.Start(ctx)

		if err := os.WriteFile(path, []byte("Time,Fz\n0,1\n1,2\n"), 0o644); err != nil {
			t.Fatalf("failed to rewrite fixture: %v", err)
		}

		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatal("callback never fired")
		}
	})

	t.Run("writes to sibling files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "recording.csv")
		if err := os.WriteFile(path, []byte("Time,Fz\n0,1\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		changed := make(chan struct{}, 1)
		watcher, err := NewFileWatcher(path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer watcher.Close()
		watcher.debounce = 50 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		watcher.Start(ctx)

		if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("failed to write sibling: %v", err)
		}

		select {
		case <-changed:
			t.Fatal("callback fired for a sibling file")
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("cancellation stops the watch goroutine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recording.csv")
		if err := os.WriteFile(path, []byte("Time,Fz\n0,1\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		watcher, err := NewFileWatcher(path, func() {})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		watcher.Start(ctx)
		cancel()

		done := make(chan struct{})
		go func() {
			watcher.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("watch goroutine did not stop")
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "recording.csv"), func() {})
		if err == nil {
			t.Fatal("expected an error for a missing directory")
		}
	})
}
