package signalplot

import (
	"errors"
	"testing"
)

func TestReloadBroadcaster(t *testing.T) {
	t.Run("registered channels receive events", func(t *testing.T) {
		b := NewReloadBroadcaster()
		c := make(chan ReloadEvent, 1)
		b.RegisterChannel(c)

		b.Broadcast("input file changed", nil)

		event := <-c
		if event.Seq != 1 {
			t.Fatalf("expected seq 1, got %d", event.Seq)
		}
		if event.Reason != "input file changed" {
			t.Fatalf("unexpected reason %q", event.Reason)
		}
		if event.Error != "" {
			t.Fatalf("unexpected error %q", event.Error)
		}
	})

	t.Run("failure reason carries the error", func(t *testing.T) {
		b := NewReloadBroadcaster()
		c := make(chan ReloadEvent, 1)
		b.RegisterChannel(c)

		b.Broadcast("rebuild failed", errors.New("boom"))

		event := <-c
		if event.Error != "boom" {
			t.Fatalf("expected error boom, got %q", event.Error)
		}
	})

	t.Run("deregistered channels stop receiving", func(t *testing.T) {
		b := NewReloadBroadcaster()
		c := make(chan ReloadEvent, 1)
		b.RegisterChannel(c)
		b.DeregisterChannel(c)

		b.Broadcast("input file changed", nil)

		select {
		case event := <-c:
			t.Fatalf("expected no event, got %+v", event)
		default:
		}
	})

	t.Run("a full channel never blocks the broadcast", func(t *testing.T) {
		b := NewReloadBroadcaster()
		c := make(chan ReloadEvent, 1)
		b.RegisterChannel(c)

		// Fills the buffer, then gets dropped.
		b.Broadcast("first", nil)
		b.Broadcast("second", nil)

		event := <-c
		if event.Reason != "first" {
			t.Fatalf("expected first event to be kept, got %q", event.Reason)
		}
		select {
		case event := <-c:
			t.Fatalf("expected second event to be dropped, got %+v", event)
		default:
		}
	})

	t.Run("sequence numbers increase across broadcasts", func(t *testing.T) {
		b := NewReloadBroadcaster()
		c := make(chan ReloadEvent, 3)
		b.RegisterChannel(c)

		b.Broadcast("a", nil)
		b.Broadcast("b", nil)
		b.Broadcast("c", nil)

		for want := int64(1); want <= 3; want++ {
			event := <-c
			if event.Seq != want {
				t.Fatalf("expected seq %d, got %d", want, event.Seq)
			}
		}
	})
}
