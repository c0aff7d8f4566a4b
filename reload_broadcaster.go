package signalplot

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ReloadEvent tells a connected viewer that the figure it is showing has
// been rebuilt (or that the rebuild failed) and it should refresh.
type ReloadEvent struct {
	Seq    int64  `json:"seq"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

// ReloadBroadcaster fans reload events out to the open websocket
// connections. Channels should be buffered so a slow client cannot block
// the pipeline; a full channel simply misses the event (reloads are
// idempotent, the next one refreshes the client anyway).
type ReloadBroadcaster struct {
	mutex    sync.Mutex
	seq      int64
	channels []chan<- ReloadEvent

	logger logrus.FieldLogger
}

func NewReloadBroadcaster() *ReloadBroadcaster {
	return &ReloadBroadcaster{
		channels: make([]chan<- ReloadEvent, 0),
		logger:   logrus.WithField("tag", "ReloadBroadcaster"),
	}
}

// RegisterChannel adds a channel to receive subsequent reload events.
// Called by the HTTP server when a new websocket connection is initiated.
func (b *ReloadBroadcaster) RegisterChannel(c chan<- ReloadEvent) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.channels = append(b.channels, c)
	b.logger.WithField("channels", len(b.channels)).Debug("registered channel")
}

// DeregisterChannel removes a previously registered channel. The channel
// must not be closed until this returns, otherwise Broadcast may panic.
func (b *ReloadBroadcaster) DeregisterChannel(c chan<- ReloadEvent) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.channels = Filter(b.channels, func(channel chan<- ReloadEvent) bool {
		return channel != c
	})
	b.logger.WithField("channels", len(b.channels)).Debug("deregistered channel")
}

// Broadcast sends a reload event to every registered channel.
func (b *ReloadBroadcaster) Broadcast(reason string, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.seq++
	event := ReloadEvent{Seq: b.seq, Reason: reason}
	if err != nil {
		event.Error = err.Error()
	}

	for _, c := range b.channels {
		select {
		case c <- event:
		default:
			b.logger.Warn("client channel full, dropping reload event")
		}
	}

	b.logger.WithFields(logrus.Fields{
		"seq":      event.Seq,
		"reason":   reason,
		"channels": len(b.channels),
	}).Debug("broadcast reload")
}
