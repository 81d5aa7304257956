//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"barber-lab/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	GetSinks(topic event.Topic) []EventSink
	Subscribe(topic event.Topic, subscriberID string, sink EventSink)
	Unsubscribe(topic event.Topic, subscriberID string)
}

// Subscription is a live feed on one topic.
// Close is synchronous: once it returns, Events is closed and nothing else is delivered.
type Subscription interface {
	Events() <-chan event.DomainEvent
	Close()
}

// IBroker routes stored domain events to live subscriptions.
type IBroker interface {
	Publish(evt event.DomainEvent)
	Subscribe(topic event.Topic) Subscription
}
