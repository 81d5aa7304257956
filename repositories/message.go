//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"barber-lab/codec"
	"barber-lab/domain"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	GetConversation(key domain.ConversationKey) ([]DiskMessage, error)
	GetInbox(receiver domain.Identity) ([]DiskMessage, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

type DiskMessage struct {
	ID       uuid.UUID `cbor:"id"`
	Sender   string    `cbor:"sender"`
	Receiver string    `cbor:"receiver"`
	Content  string    `cbor:"content"`
	At       time.Time `cbor:"at"`
}

// StoreMessage persists a message under two keys in a single transaction:
//   - "msg:conv:{low}\x00{high}\x00{timestamp_padded}\x00{uuid}" feeds the conversation between both parties.
//   - "msg:inbox:{receiver}\x00{timestamp_padded}\x00{uuid}" feeds the receiver's directory.
//
// Either both keys are written or none.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	bytes, err := codec.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := domain.NewConversationKey(domain.Identity(message.Sender), domain.Identity(message.Receiver))
	return m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(orderedKey(conversationPrefix(key), message.At, message.ID), bytes); err != nil {
			return err
		}
		return txn.Set(orderedKey(inboxPrefix(domain.Identity(message.Receiver)), message.At, message.ID), bytes)
	})
}

// GetConversation returns the messages exchanged by both parties, oldest first.
// When limitMessages is set, only the most recent ones are kept.
func (m MessageRepository) GetConversation(key domain.ConversationKey) ([]DiskMessage, error) {
	var values [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		values, err = scanPrefix(txn, conversationPrefix(key), true, m.limitMessages)
		return err
	})
	if err != nil {
		return nil, err
	}
	if m.limitMessages != nil && len(values) == *m.limitMessages {
		m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
	}
	messages, err := decodeMessages(values)
	if err != nil {
		return nil, err
	}
	// The scan walked backwards from the newest message.
	slices.Reverse(messages)
	return messages, nil
}

// GetInbox returns every message addressed to receiver, oldest first.
func (m MessageRepository) GetInbox(receiver domain.Identity) ([]DiskMessage, error) {
	var values [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		values, err = scanPrefix(txn, inboxPrefix(receiver), false, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decodeMessages(values)
}

func decodeMessages(values [][]byte) ([]DiskMessage, error) {
	messages := make([]DiskMessage, 0, len(values))
	for _, v := range values {
		var message DiskMessage
		if err := codec.Unmarshal(v, &message); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func FromDiskMessage(message DiskMessage) domain.Message {
	return domain.Message{
		ID:         message.ID,
		SenderID:   domain.Identity(message.Sender),
		ReceiverID: domain.Identity(message.Receiver),
		Content:    message.Content,
		CreatedAt:  message.At.UTC(),
	}
}

func ToDiskMessage(message domain.Message) DiskMessage {
	return DiskMessage{
		ID:       message.ID,
		Sender:   string(message.SenderID),
		Receiver: string(message.ReceiverID),
		Content:  message.Content,
		At:       message.CreatedAt.UTC(),
	}
}

func FromDiskMessages(messages []DiskMessage) []domain.Message {
	return lo.Map(messages, func(item DiskMessage, _ int) domain.Message {
		return FromDiskMessage(item)
	})
}
