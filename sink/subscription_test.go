package sink

import (
	"barber-lab/domain"
	"barber-lab/domain/event"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestSubscription_Delivers_Until_Closed(t *testing.T) {
	req := require.New(t)
	sub := NewSubscription(logs.GetLoggerFromLevel(slog.LevelDebug), 2)
	evt := event.MessageSent{Message: domain.Message{Content: "hello"}}

	req.NoError(sub.Consume(context.Background(), evt))
	req.Equal(evt, <-sub.Events())

	// When the subscription is closed
	sub.Close()
	sub.Close()

	// Then nothing is delivered anymore and the channel is closed
	req.NoError(sub.Consume(context.Background(), evt))
	_, ok := <-sub.Events()
	req.False(ok)
}

func TestSubscription_Full_Buffer_Drops_Event(t *testing.T) {
	req := require.New(t)
	sub := NewSubscription(logs.GetLoggerFromLevel(slog.LevelDebug), 1)
	first := event.MessageSent{Message: domain.Message{Content: "first"}}
	second := event.MessageSent{Message: domain.Message{Content: "second"}}

	req.NoError(sub.Consume(context.Background(), first))
	req.NoError(sub.Consume(context.Background(), second))

	req.Equal(first, <-sub.Events())
	req.Empty(sub.Events())
}
