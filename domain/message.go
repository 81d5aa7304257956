// Package domain contains core concepts of the booking system.
// This file defines Message events and related rules.
// Messages are immutable once stored.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable direct message between two parties.
type Message struct {
	ID         uuid.UUID // unique identifier
	SenderID   Identity
	ReceiverID Identity
	Content    string
	CreatedAt  time.Time
}

// NormalizeContent trims the content and reports whether anything is left.
func NormalizeContent(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	return trimmed, trimmed != ""
}

// Counterparty returns the other side of the message from the viewer point of view.
func (m Message) Counterparty(viewer Identity) Identity {
	if m.SenderID == viewer {
		return m.ReceiverID
	}
	return m.SenderID
}

// Key returns the conversation the message belongs to.
func (m Message) Key() ConversationKey {
	return NewConversationKey(m.SenderID, m.ReceiverID)
}
