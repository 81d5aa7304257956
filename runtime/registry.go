package runtime

import (
	"barber-lab/contract"
	"barber-lab/domain/event"
	"sync"
)

type Registry struct {
	mu          sync.RWMutex
	subscribers map[event.Topic]map[string]contract.EventSink // map topic -> subscriber -> Sink
}

func NewRegistry() *Registry {
	return &Registry{
		subscribers: make(map[event.Topic]map[string]contract.EventSink),
	}
}

// GetSinks retrieves all active sinks listening to a topic.
// Returns nil if nobody listens.
func (r *Registry) GetSinks(topic event.Topic) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.subscribers[topic]
	if !ok {
		return nil
	}
	activeSinks := make([]contract.EventSink, 0, len(members))
	for _, sink := range members {
		activeSinks = append(activeSinks, sink)
	}
	return activeSinks
}

// Subscribe registers a sink on a topic.
// The same subscriber may listen to several topics; each (topic, subscriber) pair holds one sink.
func (r *Registry) Subscribe(topic event.Topic, subscriberID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscribers[topic]; !ok {
		r.subscribers[topic] = make(map[string]contract.EventSink)
	}
	r.subscribers[topic][subscriberID] = sink
}

// Unsubscribe removes a subscriber from a topic.
// Empty topics are dropped so the map doesn't grow forever.
func (r *Registry) Unsubscribe(topic event.Topic, subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.subscribers[topic]; ok {
		delete(members, subscriberID)
		if len(members) == 0 {
			delete(r.subscribers, topic)
		}
	}
}

// Topics returns how many topics currently have at least one subscriber.
func (r *Registry) Topics() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
