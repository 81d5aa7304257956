package repositories

import (
	"barber-lab/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Store_Conversation_In_Both_Directions(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), nil)
	at := time.Now().UTC()

	// Given Alice and Bob exchange messages, and Clara writes to Alice
	diskMessages := []DiskMessage{
		{uuid.New(), "alice", "bob", "hello", at},
		{uuid.New(), "bob", "alice", "hi", at.Add(time.Minute)},
		{uuid.New(), "clara", "alice", "are you open?", at.Add(2 * time.Minute)},
		{uuid.New(), "alice", "bob", "see you at 5", at.Add(3 * time.Minute)},
	}
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}

	// When the conversation is read from either side
	fromAlice, err := repository.GetConversation(domain.NewConversationKey("alice", "bob"))
	req.NoError(err)
	fromBob, err := repository.GetConversation(domain.NewConversationKey("bob", "alice"))
	req.NoError(err)

	// Then both sides see the same three messages, oldest first
	req.Equal([]DiskMessage{diskMessages[0], diskMessages[1], diskMessages[3]}, fromAlice)
	req.Equal(fromAlice, fromBob)
}

func Test_Conversation_Limit_Keeps_Most_Recent(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	limit := 2
	repository := NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), &limit)
	at := time.Now().UTC()
	diskMessages := []DiskMessage{
		{uuid.New(), "alice", "bob", "one", at},
		{uuid.New(), "bob", "alice", "two", at.Add(time.Second)},
		{uuid.New(), "alice", "bob", "three", at.Add(2 * time.Second)},
	}
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}

	fetched, err := repository.GetConversation(domain.NewConversationKey("alice", "bob"))
	req.NoError(err)
	req.Len(fetched, limit)
	req.Equal("two", fetched[0].Content)
	req.Equal("three", fetched[1].Content)
}

func Test_Inbox_Only_Contains_Received_Messages(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), nil)
	at := time.Now().UTC()
	diskMessages := []DiskMessage{
		{uuid.New(), "alice", "shop", "first", at},
		{uuid.New(), "shop", "alice", "reply", at.Add(time.Second)},
		{uuid.New(), "bob", "shop", "second", at.Add(2 * time.Second)},
		// Identity sharing a prefix with "shop" must not leak into its inbox
		{uuid.New(), "bob", "shop2", "other", at.Add(3 * time.Second)},
	}
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}

	inbox, err := repository.GetInbox("shop")
	req.NoError(err)
	req.Equal([]DiskMessage{diskMessages[0], diskMessages[2]}, inbox)

	empty, err := repository.GetInbox("nobody")
	req.NoError(err)
	req.Empty(empty)
}

func Test_Same_Nanosecond_Messages_Are_Both_Kept(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), nil)
	at := time.Now().UTC()

	req.NoError(repository.StoreMessage(DiskMessage{uuid.New(), "alice", "bob", "a", at}))
	req.NoError(repository.StoreMessage(DiskMessage{uuid.New(), "bob", "alice", "b", at}))

	fetched, err := repository.GetConversation(domain.NewConversationKey("alice", "bob"))
	req.NoError(err)
	req.Len(fetched, 2)
}
