package services

import (
	"barber-lab/contract"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Channel is the live, ordered feed of a conversation between two parties.
// It holds exactly one subscription, released by Close.
type Channel struct {
	mu        sync.Mutex
	key       domain.ConversationKey
	history   []domain.Message
	messages  []domain.Message
	seen      map[uuid.UUID]struct{}
	updates   chan domain.Message
	sub       contract.Subscription
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newChannel(key domain.ConversationKey, history []domain.Message, sub contract.Subscription, bufferSize int) *Channel {
	c := &Channel{
		key:     key,
		history: history,
		seen:    make(map[uuid.UUID]struct{}, len(history)),
		updates: make(chan domain.Message, bufferSize),
		sub:     sub,
		done:    make(chan struct{}),
	}
	for _, m := range history {
		c.seen[m.ID] = struct{}{}
	}
	c.messages = append([]domain.Message(nil), history...)
	c.wg.Add(1)
	go c.relay()
	return c
}

func newClosedChannel() *Channel {
	c := &Channel{
		seen:    map[uuid.UUID]struct{}{},
		updates: make(chan domain.Message),
		done:    make(chan struct{}),
	}
	close(c.updates)
	return c
}

func (c *Channel) Key() domain.ConversationKey { return c.key }

// History returns the messages loaded when the channel was opened, oldest first.
func (c *Channel) History() []domain.Message {
	return append([]domain.Message(nil), c.history...)
}

// Messages returns the full feed so far: history plus every live message, oldest first.
func (c *Channel) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.messages...)
}

// Updates yields the messages received after the channel was opened.
// It is a notification stream: a reader lagging more than the buffer misses
// notifications, Messages stays complete.
func (c *Channel) Updates() <-chan domain.Message {
	return c.updates
}

// Close releases the subscription and waits for the relay to stop.
// Once it returns, Updates is closed and drained.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		if c.sub != nil {
			c.sub.Close()
		}
		close(c.done)
		c.wg.Wait()
		for range c.updates {
		}
	})
}

func (c *Channel) relay() {
	defer c.wg.Done()
	defer close(c.updates)
	events := c.sub.Events()
	for {
		select {
		case <-c.done:
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			sent, ok := evt.(event.MessageSent)
			if !ok || !c.accept(sent.Message) {
				continue
			}
			select {
			case c.updates <- sent.Message:
			default:
			}
		}
	}
}

// accept inserts the message at its timestamp position.
// Equal timestamps keep arrival order.
func (c *Channel) accept(m domain.Message) bool {
	if m.Key() != c.key {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[m.ID]; ok {
		return false
	}
	c.seen[m.ID] = struct{}{}
	i := sort.Search(len(c.messages), func(i int) bool {
		return c.messages[i].CreatedAt.After(m.CreatedAt)
	})
	c.messages = append(c.messages, domain.Message{})
	copy(c.messages[i+1:], c.messages[i:])
	c.messages[i] = m
	return true
}
