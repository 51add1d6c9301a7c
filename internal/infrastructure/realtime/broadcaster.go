package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Broadcaster delivers events to registered connections. Delivery is
// best-effort: failures are logged and never returned to the caller.
type Broadcaster struct {
	registry *Registry
	logger   *zap.Logger
	now      func() time.Time

	// fanout keeps the snapshot and enqueue of one broadcast together, so two
	// broadcasts reach a shared member in call order
	fanout sync.Mutex
}

// NewBroadcaster creates a broadcaster over registry
func NewBroadcaster(registry *Registry, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// SendTo delivers event to one connection and reports whether it was queued
func (b *Broadcaster) SendTo(id string, event entities.Event) bool {
	frame, ok := b.encode(event)
	if !ok {
		return false
	}

	b.fanout.Lock()
	defer b.fanout.Unlock()

	conn, found := b.registry.Get(id)
	if !found {
		b.logger.Warn("realtime.send.failed",
			zap.String("connection_id", id),
			zap.String("event_type", string(event.Type)),
			zap.Error(entities.ErrUnknownConnection),
		)
		return false
	}
	return b.deliver(conn, event.Type, frame)
}

// BroadcastRoom delivers event to every member of room at call time and returns
// the number of connections it was queued for
func (b *Broadcaster) BroadcastRoom(room string, event entities.Event) int {
	frame, ok := b.encode(event)
	if !ok {
		return 0
	}

	b.fanout.Lock()
	defer b.fanout.Unlock()

	delivered := 0
	for _, conn := range b.registry.Members(room) {
		if b.deliver(conn, event.Type, frame) {
			delivered++
		}
	}
	return delivered
}

// BroadcastAll delivers event to every registered connection
func (b *Broadcaster) BroadcastAll(event entities.Event) int {
	frame, ok := b.encode(event)
	if !ok {
		return 0
	}

	b.fanout.Lock()
	defer b.fanout.Unlock()

	delivered := 0
	for _, conn := range b.registry.Connections() {
		if b.deliver(conn, event.Type, frame) {
			delivered++
		}
	}
	return delivered
}

// Heartbeat sends one heartbeat event to every connection
func (b *Broadcaster) Heartbeat() int {
	return b.BroadcastAll(entities.NewEvent(entities.Heartbeat{}, b.now()))
}

// RunHeartbeat sends a heartbeat every interval until ctx is cancelled
func (b *Broadcaster) RunHeartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("realtime.heartbeat.stopped")
			return
		case <-ticker.C:
			n := b.Heartbeat()
			b.logger.Debug("realtime.heartbeat.sent", zap.Int("connections", n))
		}
	}
}

func (b *Broadcaster) deliver(conn *Connection, eventType entities.EventType, frame []byte) bool {
	if err := conn.enqueue(frame); err != nil {
		b.logger.Warn("realtime.send.failed",
			zap.String("connection_id", conn.ID()),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (b *Broadcaster) encode(event entities.Event) ([]byte, bool) {
	frame, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("realtime.event.encode_failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return nil, false
	}
	return frame, true
}
