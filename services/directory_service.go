package services

import (
	"barber-lab/contract"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"barber-lab/repositories"
	"barber-lab/runtime"
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/lo"
)

type IDirectoryService interface {
	ListCounterparties(ctx context.Context, viewer domain.Identity) ([]domain.DirectoryEntry, error)
	OpenDirectory(ctx context.Context, viewer domain.Identity) (*Directory, error)
}

// DirectoryService derives the counterparties of a viewer from the messages addressed to it.
type DirectoryService struct {
	log        *slog.Logger
	messages   repositories.IMessageRepository
	profiles   repositories.IProfileRepository
	broker     contract.IBroker
	retry      RetryPolicy
	bufferSize int
}

func NewDirectoryService(log *slog.Logger, messages repositories.IMessageRepository,
	profiles repositories.IProfileRepository, broker contract.IBroker, retry RetryPolicy, bufferSize int) *DirectoryService {
	return &DirectoryService{
		log:        log,
		messages:   messages,
		profiles:   profiles,
		broker:     broker,
		retry:      retry,
		bufferSize: bufferSize,
	}
}

// ListCounterparties returns one entry per distinct sender, most recent first.
// Store failures are logged and give an empty directory, never an error.
func (s *DirectoryService) ListCounterparties(_ context.Context, viewer domain.Identity) ([]domain.DirectoryEntry, error) {
	if !viewer.Valid() {
		return []domain.DirectoryEntry{}, nil
	}
	inbox, err := s.messages.GetInbox(viewer)
	if err != nil {
		s.log.Error("Failed to scan inbox", "viewer", viewer, "error", err)
		return []domain.DirectoryEntry{}, nil
	}
	return s.entries(viewer, inbox), nil
}

// OpenDirectory subscribes to the viewer's inbox, then scans it with a bounded retry.
// If every attempt fails the directory starts empty but stays live.
func (s *DirectoryService) OpenDirectory(ctx context.Context, viewer domain.Identity) (*Directory, error) {
	if !viewer.Valid() {
		return newClosedDirectory(), nil
	}
	sub := s.broker.Subscribe(event.InboxTopic(viewer))

	var inbox []repositories.DiskMessage
	err := runtime.Retry(ctx, s.retry.Attempts, s.retry.Backoff, func() error {
		var err error
		inbox, err = s.messages.GetInbox(viewer)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			sub.Close()
			return nil, ctx.Err()
		}
		s.log.Error("Failed to scan inbox, starting empty", "viewer", viewer, "error", err)
		inbox = nil
	}

	return newDirectory(viewer, s.entries(viewer, inbox), sub, s.resolveOne, s.bufferSize), nil
}

// entries groups the inbox by sender and resolves every name in one batch.
func (s *DirectoryService) entries(viewer domain.Identity, inbox []repositories.DiskMessage) []domain.DirectoryEntry {
	last := make(map[domain.Identity]time.Time)
	for _, m := range inbox {
		sender := domain.Identity(m.Sender)
		if sender == viewer {
			continue
		}
		if m.At.After(last[sender]) {
			last[sender] = m.At.UTC()
		}
	}
	ids := lo.Keys(last)
	sort.Slice(ids, func(i, j int) bool {
		if !last[ids[i]].Equal(last[ids[j]]) {
			return last[ids[i]].After(last[ids[j]])
		}
		return ids[i] < ids[j]
	})

	profiles := s.lookup(ids)
	return lo.Map(ids, func(id domain.Identity, _ int) domain.DirectoryEntry {
		return s.toEntry(id, profiles, last[id])
	})
}

func (s *DirectoryService) resolveOne(id domain.Identity, at time.Time) domain.DirectoryEntry {
	return s.toEntry(id, s.lookup([]domain.Identity{id}), at)
}

func (s *DirectoryService) lookup(ids []domain.Identity) map[domain.Identity]domain.Profile {
	if len(ids) == 0 {
		return nil
	}
	profiles, err := s.profiles.GetProfiles(ids)
	if err != nil {
		s.log.Warn("Profile lookup failed, falling back to identities", "count", len(ids), "error", err)
		return nil
	}
	return profiles
}

// toEntry keeps counterparties without profile, named after their identity.
func (s *DirectoryService) toEntry(id domain.Identity, profiles map[domain.Identity]domain.Profile,
	at time.Time) domain.DirectoryEntry {
	profile, ok := profiles[id]
	if !ok {
		s.log.Warn("No profile for counterparty", "id", id)
		return domain.DirectoryEntry{CounterpartyID: id, DisplayName: string(id), LastMessageAt: at}
	}
	return domain.DirectoryEntry{
		CounterpartyID: id,
		DisplayName:    profile.DisplayName(),
		Resolved:       true,
		LastMessageAt:  at,
	}
}
