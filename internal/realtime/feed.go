// Package realtime is the in-process change feed. Services publish row-level
// changes after each successful mutation; subscribers receive only the
// changes for their event, so one browser tab maps to one subscription.
package realtime

import (
	"sync"
	"time"

	"donation-tracker-backend/pkg/logger"

	"github.com/google/uuid"
)

type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Table names carried on the wire, matching the persisted table names.
const (
	TableDonations = "donations"
	TableEnvelopes = "envelopes"
	TableIncome    = "incomes"
	TableExpenses  = "expenses"
	TableEvents    = "events"
)

// Change is one row-level notification.
type Change struct {
	Table   string      `json:"table"`
	Op      Operation   `json:"op"`
	EventID uuid.UUID   `json:"event_id"`
	Row     interface{} `json:"row"`
	At      time.Time   `json:"at"`
}

// Subscriber receives changes for a single event on C until Close is called.
type Subscriber struct {
	C       <-chan Change
	ch      chan Change
	eventID uuid.UUID
	feed    *Feed
	once    sync.Once
}

// Close unsubscribes and closes the channel. Safe to call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.feed.unsubscribe(s)
		close(s.ch)
	})
}

// Feed fan-outs changes to event-scoped subscribers. Publishing never
// blocks: a subscriber with a full buffer misses the change, which the
// consumer side repairs with its next full refetch.
type Feed struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*Subscriber]struct{}
	buffer int
}

func NewFeed() *Feed {
	return &Feed{
		subs:   make(map[uuid.UUID]map[*Subscriber]struct{}),
		buffer: 64,
	}
}

func (f *Feed) Subscribe(eventID uuid.UUID) *Subscriber {
	ch := make(chan Change, f.buffer)
	sub := &Subscriber{
		C:       ch,
		ch:      ch,
		eventID: eventID,
		feed:    f,
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[eventID] == nil {
		f.subs[eventID] = make(map[*Subscriber]struct{})
	}
	f.subs[eventID][sub] = struct{}{}

	return sub
}

func (f *Feed) unsubscribe(sub *Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if set, ok := f.subs[sub.eventID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(f.subs, sub.eventID)
		}
	}
}

// Publish delivers the change to every subscriber of its event.
func (f *Feed) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for sub := range f.subs[change.EventID] {
		select {
		case sub.ch <- change:
		default:
			logger.WithField("table", change.Table).
				Warn("change feed subscriber is slow, dropping notification")
		}
	}
}

// SubscriberCount reports how many subscribers an event currently has.
func (f *Feed) SubscriberCount(eventID uuid.UUID) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[eventID])
}
