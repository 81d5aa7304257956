// Package runtime handles event propagation and live subscriptions.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"barber-lab/contract"
	"barber-lab/domain/event"
	"barber-lab/runtime/workers"
	"barber-lab/sink"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Orchestrator struct {
	log              *slog.Logger
	supervisor       contract.ISupervisor
	registry         contract.IRegistry
	events           chan event.DomainEvent
	sinkTimeout      time.Duration
	subscriberBuffer int
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry contract.IRegistry,
	bufferSize, subscriberBuffer int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:              log,
		supervisor:       supervisor,
		registry:         registry,
		events:           make(chan event.DomainEvent, bufferSize),
		sinkTimeout:      sinkTimeout,
		subscriberBuffer: subscriberBuffer,
	}
}

// Publish hands a stored event to the fanout. It never blocks the writer:
// when the queue is full the event is dropped and only live views miss it.
func (o *Orchestrator) Publish(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.log.Warn("Event queue full, dropping event", "topics", evt.Topics())
	}
}

// QueueUsage reports how many published events wait for the fanout.
func (o *Orchestrator) QueueUsage() (length, capacity int) {
	return len(o.events), cap(o.events)
}

// Subscribe registers exactly one sink on the topic.
// The returned subscription must be closed by its owner.
func (o *Orchestrator) Subscribe(topic event.Topic) contract.Subscription {
	s := &subscription{
		id:       uuid.NewString(),
		topic:    topic,
		registry: o.registry,
		sink:     sink.NewSubscription(o.log, o.subscriberBuffer),
	}
	o.registry.Subscribe(topic, s.id, s.sink)
	o.log.Debug("Subscription opened", "topic", topic, "id", s.id)
	return s
}

// Start registers the fanout worker and runs the supervisor until ctx is done or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.supervisor.Add(workers.NewEventFanout(o.log, o.registry, o.events, o.sinkTimeout))
	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

// Stop cancels the supervised context so every worker returns.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

type subscription struct {
	once     sync.Once
	id       string
	topic    event.Topic
	registry contract.IRegistry
	sink     *sink.Subscription
}

func (s *subscription) Events() <-chan event.DomainEvent {
	return s.sink.Events()
}

// Close removes the sink from the registry first so the fanout stops selecting it,
// then closes the sink so an in-flight Consume cannot deliver afterwards.
func (s *subscription) Close() {
	s.once.Do(func() {
		s.registry.Unsubscribe(s.topic, s.id)
		s.sink.Close()
	})
}
