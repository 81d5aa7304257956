// Package view holds the client side state of the storefront screens:
// the compose box of a conversation and the booking form of a shop.
package view

import (
	"barber-lab/domain"
	"context"
	"log/slog"
	"sync"
)

// Sender is the part of the messaging service the compose box needs.
type Sender interface {
	Send(ctx context.Context, from, to domain.Identity, content string) (domain.Message, error)
}

// Compose is the draft of one viewer towards one counterparty.
type Compose struct {
	mu     sync.Mutex
	log    *slog.Logger
	sender Sender
	from   domain.Identity
	to     domain.Identity
	draft  string
}

func NewCompose(log *slog.Logger, sender Sender, from, to domain.Identity) *Compose {
	return &Compose{log: log, sender: sender, from: from, to: to}
}

func (c *Compose) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Compose) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit sends the draft. A blank draft is ignored and kept as is.
// The draft is cleared only once the message is stored.
func (c *Compose) Submit(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := domain.NormalizeContent(c.draft); !ok {
		return false, nil
	}
	if _, err := c.sender.Send(ctx, c.from, c.to, c.draft); err != nil {
		c.log.Error("Message not sent, draft kept", "from", c.from, "to", c.to, "error", err)
		return false, err
	}
	c.draft = ""
	return true, nil
}
