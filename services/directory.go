package services

import (
	"barber-lab/contract"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"sync"
	"time"
)

type resolveFunc func(id domain.Identity, at time.Time) domain.DirectoryEntry

// Directory is the live list of counterparties of one viewer, most recent first.
// It holds exactly one subscription, released by Close.
type Directory struct {
	mu        sync.Mutex
	viewer    domain.Identity
	initial   []domain.DirectoryEntry
	entries   []domain.DirectoryEntry
	resolve   resolveFunc
	updates   chan domain.DirectoryEntry
	sub       contract.Subscription
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newDirectory(viewer domain.Identity, entries []domain.DirectoryEntry, sub contract.Subscription,
	resolve resolveFunc, bufferSize int) *Directory {
	d := &Directory{
		viewer:  viewer,
		initial: entries,
		entries: append([]domain.DirectoryEntry(nil), entries...),
		resolve: resolve,
		updates: make(chan domain.DirectoryEntry, bufferSize),
		sub:     sub,
		done:    make(chan struct{}),
	}
	d.wg.Add(1)
	go d.relay()
	return d
}

func newClosedDirectory() *Directory {
	d := &Directory{
		updates: make(chan domain.DirectoryEntry),
		done:    make(chan struct{}),
	}
	close(d.updates)
	return d
}

// Initial returns the entries found when the directory was opened.
func (d *Directory) Initial() []domain.DirectoryEntry {
	return append([]domain.DirectoryEntry(nil), d.initial...)
}

// Entries returns the current snapshot, most recent counterparty first.
func (d *Directory) Entries() []domain.DirectoryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DirectoryEntry(nil), d.entries...)
}

// Updates yields one entry per new counterparty.
func (d *Directory) Updates() <-chan domain.DirectoryEntry {
	return d.updates
}

// Close releases the subscription and waits for the relay to stop.
func (d *Directory) Close() {
	d.closeOnce.Do(func() {
		if d.sub != nil {
			d.sub.Close()
		}
		close(d.done)
		d.wg.Wait()
		for range d.updates {
		}
	})
}

func (d *Directory) relay() {
	defer d.wg.Done()
	defer close(d.updates)
	events := d.sub.Events()
	for {
		select {
		case <-d.done:
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			sent, ok := evt.(event.MessageSent)
			if !ok || sent.Message.ReceiverID != d.viewer || sent.Message.SenderID == d.viewer {
				continue
			}
			if d.touch(sent.Message.SenderID, sent.Message.CreatedAt) {
				continue
			}
			entry := d.resolve(sent.Message.SenderID, sent.Message.CreatedAt)
			d.mu.Lock()
			d.entries = append([]domain.DirectoryEntry{entry}, d.entries...)
			d.mu.Unlock()
			select {
			case d.updates <- entry:
			default:
			}
		}
	}
}

// touch moves a known counterparty to the front when at is newer than its last message.
// Messages already seen by the initial scan leave the order untouched.
// It reports false for strangers.
func (d *Directory) touch(id domain.Identity, at time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, entry := range d.entries {
		if entry.CounterpartyID != id {
			continue
		}
		if !at.After(entry.LastMessageAt) {
			return true
		}
		entry.LastMessageAt = at
		copy(d.entries[1:i+1], d.entries[:i])
		d.entries[0] = entry
		return true
	}
	return false
}
