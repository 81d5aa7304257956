package runtime

import (
	"barber-lab/domain"
	"barber-lab/domain/event"
	"barber-lab/runtime/workers"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func startOrchestrator(t *testing.T) (*Orchestrator, *Registry) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	orchestrator := NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond),
		registry, 100, 10, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = orchestrator.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		orchestrator.Stop()
		cancel()
		<-done
	})
	return orchestrator, registry
}

func TestOrchestrator_Publish_Reaches_Subscriber(t *testing.T) {
	req := require.New(t)
	orchestrator, _ := startOrchestrator(t)
	msg := domain.Message{SenderID: "alice", ReceiverID: "bob", Content: "Hello"}

	sub := orchestrator.Subscribe(event.ConversationTopic(msg.Key()))
	defer sub.Close()

	orchestrator.Publish(event.MessageSent{Message: msg})

	select {
	case evt := <-sub.Events():
		req.Equal(event.MessageSent{Message: msg}, evt)
	case <-time.After(time.Second):
		req.Fail("event not delivered")
	}
}

func TestOrchestrator_Closed_Subscription_Receives_Nothing(t *testing.T) {
	req := require.New(t)
	orchestrator, registry := startOrchestrator(t)
	msg := domain.Message{SenderID: "alice", ReceiverID: "bob", Content: "late"}

	// Given a subscription opened and immediately closed
	sub := orchestrator.Subscribe(event.ConversationTopic(msg.Key()))
	sub.Close()
	sub.Close()

	// Then it is deregistered
	req.Zero(registry.Topics())

	// And a matching event published afterwards is never delivered
	orchestrator.Publish(event.MessageSent{Message: msg})
	time.Sleep(50 * time.Millisecond)
	_, ok := <-sub.Events()
	req.False(ok)
}
