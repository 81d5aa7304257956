package services

import (
	"barber-lab/contract"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"barber-lab/errors"
	"barber-lab/repositories"
	"barber-lab/runtime"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// RetryPolicy bounds the initial load of a live view.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

type IMessagingService interface {
	Send(ctx context.Context, from, to domain.Identity, content string) (domain.Message, error)
	OpenChannel(ctx context.Context, a, b domain.Identity) (*Channel, error)
}

type MessagingService struct {
	log        *slog.Logger
	repository repositories.IMessageRepository
	broker     contract.IBroker
	clock      *domain.MonotonicClock
	retry      RetryPolicy
	bufferSize int
}

func NewMessagingService(log *slog.Logger, repository repositories.IMessageRepository,
	broker contract.IBroker, clock *domain.MonotonicClock, retry RetryPolicy, bufferSize int) *MessagingService {
	return &MessagingService{
		log:        log,
		repository: repository,
		broker:     broker,
		clock:      clock,
		retry:      retry,
		bufferSize: bufferSize,
	}
}

// Send stores one message and notifies the live views of both parties.
// Content is trimmed; whitespace only content is refused with ErrEmptyContent before touching the store.
// Compose.Submit turns that case into a silent no-op for interactive callers.
func (s *MessagingService) Send(ctx context.Context, from, to domain.Identity, content string) (domain.Message, error) {
	if !from.Valid() || !to.Valid() {
		return domain.Message{}, errors.ErrInvalidIdentity
	}
	trimmed, ok := domain.NormalizeContent(content)
	if !ok {
		return domain.Message{}, errors.ErrEmptyContent
	}
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}

	message := domain.Message{
		ID:         uuid.New(),
		SenderID:   from,
		ReceiverID: to,
		Content:    trimmed,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repository.StoreMessage(repositories.ToDiskMessage(message)); err != nil {
		s.log.Error("Failed to store message", "from", from, "to", to, "error", err)
		return domain.Message{}, fmt.Errorf("store message: %w", err)
	}
	s.broker.Publish(event.MessageSent{Message: message})
	return message, nil
}

// OpenChannel subscribes to the conversation before loading its history,
// so nothing written in between is missed. Duplicates are removed by the Channel.
// An unresolved party yields an empty, already closed channel.
func (s *MessagingService) OpenChannel(ctx context.Context, a, b domain.Identity) (*Channel, error) {
	if !a.Valid() || !b.Valid() {
		return newClosedChannel(), nil
	}
	key := domain.NewConversationKey(a, b)
	sub := s.broker.Subscribe(event.ConversationTopic(key))

	var history []repositories.DiskMessage
	err := runtime.Retry(ctx, s.retry.Attempts, s.retry.Backoff, func() error {
		var err error
		history, err = s.repository.GetConversation(key)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			sub.Close()
			return nil, ctx.Err()
		}
		s.log.Error("Failed to load conversation, starting empty", "low", key.Low, "high", key.High, "error", err)
		history = nil
	}

	return newChannel(key, repositories.FromDiskMessages(history), sub, s.bufferSize), nil
}
