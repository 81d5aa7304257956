package sink

import (
	"barber-lab/domain/event"
	"context"
	"log/slog"
	"sync"
)

// Subscription is the sink behind one live feed.
// Consume is called by the fanout and hands the event over to the owner of the channel.
// Consume and Close are serialised: once Close returns no event is enqueued anymore.
type Subscription struct {
	mu     sync.Mutex
	log    *slog.Logger
	closed bool
	events chan event.DomainEvent
}

func NewSubscription(log *slog.Logger, bufferSize int) *Subscription {
	return &Subscription{log: log, events: make(chan event.DomainEvent, bufferSize)}
}

// Consume never blocks the fanout: a full buffer drops the event.
func (s *Subscription) Consume(ctx context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Warn("Subscriber buffer full, dropping event", "buffer", cap(s.events))
		return nil
	}
}

func (s *Subscription) Events() <-chan event.DomainEvent {
	return s.events
}

// Close is idempotent.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
