package domain

import "fmt"

// ConversationKey identifies the unordered pair of participants of a conversation.
// Low is always lexicographically lower or equal to High.
type ConversationKey struct {
	Low  Identity
	High Identity
}

func NewConversationKey(a, b Identity) ConversationKey {
	if b < a {
		a, b = b, a
	}
	return ConversationKey{Low: a, High: b}
}

// Contains reports whether id is one of the two participants.
func (k ConversationKey) Contains(id Identity) bool {
	return k.Low == id || k.High == id
}

func (k ConversationKey) String() string {
	return fmt.Sprintf("%s\x00%s", k.Low, k.High)
}
