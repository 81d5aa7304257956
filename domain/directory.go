package domain

import "time"

// DirectoryEntry is one counterparty of a viewer's inbox.
// Resolved is false when no profile could be found and DisplayName is the raw identity.
type DirectoryEntry struct {
	CounterpartyID Identity
	DisplayName    string
	Resolved       bool
	LastMessageAt  time.Time
}
