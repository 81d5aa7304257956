package workers

import (
	"barber-lab/contract"
	"barber-lab/domain/event"
	"context"
	"log/slog"
	"time"
)

// EventFanout delivers stored domain events to the live subscriptions of their topics.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. Events are handled one at a time so every
// subscriber observes them in publication order.
type EventFanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	events      chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	events chan event.DomainEvent, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, registry: registry, events: events, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout One sink for each subscriber of each topic
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, topic := range evt.Topics() {
		for _, sink := range w.registry.GetSinks(topic) {
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "topic", topic, "error", err)
			}
			cancel()
		}
	}
}
