package client

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const maxRecentDonations = 20

// Defaults matching the live tally page's tuning.
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultFlashFor     = 1500 * time.Millisecond
	DefaultHighlightFor = 3 * time.Second
)

// DataSource is the read surface LiveFeed reconciles against. Client
// implements it; tests substitute a fake.
type DataSource interface {
	RecentDonations(ctx context.Context, eventID string, limit int) ([]Donation, error)
	Envelopes(ctx context.Context, eventID string) ([]Envelope, error)
	Income(ctx context.Context, eventID string) ([]Income, error)
	EventSummary(ctx context.Context, eventID string) (*EventSummary, error)
}

// LiveFeed keeps a consumer-side cache of one event's tally in sync with the
// change stream. Donation inserts are applied optimistically; every other
// change triggers one full refetch after a quiet period, so bursts of
// notifications collapse into a single round trip.
type LiveFeed struct {
	src     DataSource
	eventID string

	// Tunable so tests can run bursty sequences quickly.
	Debounce     time.Duration
	FlashFor     time.Duration
	HighlightFor time.Duration

	Log logrus.FieldLogger

	mu            sync.Mutex
	loaded        bool
	pending       []Change
	donations     []Donation
	envelopes     []Envelope
	income        []Income
	summary       *EventSummary
	activities    []ActivityItem
	newActivityID string
	summaryFlash  bool

	debounceTimer  *time.Timer
	flashTimer     *time.Timer
	highlightTimer *time.Timer
	closed         bool
}

// Snapshot is a point-in-time copy of the feed's state.
type Snapshot struct {
	Loaded        bool
	Donations     []Donation
	Envelopes     []Envelope
	Income        []Income
	Summary       *EventSummary
	Activities    []ActivityItem
	NewActivityID string
	SummaryFlash  bool
}

func NewLiveFeed(src DataSource, eventID string) *LiveFeed {
	return &LiveFeed{
		src:          src,
		eventID:      eventID,
		Debounce:     DefaultDebounce,
		FlashFor:     DefaultFlashFor,
		HighlightFor: DefaultHighlightFor,
		Log:          logrus.StandardLogger(),
	}
}

// Start loads the initial state: recent donations, envelopes, income and the
// summary, fetched concurrently. The feed becomes loaded only when all four
// succeed; on failure it stays unloaded and the error is returned.
func (f *LiveFeed) Start(ctx context.Context) error {
	donations, envelopes, income, summary, err := f.fetchAll(ctx)
	if err != nil {
		f.Log.WithField("event_id", f.eventID).Error("initial feed load failed: ", err)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.donations = donations
	f.envelopes = envelopes
	f.income = income
	f.summary = summary
	f.activities = BuildActivityList(donations, envelopes, income)
	f.loaded = true

	// Changes that arrived while the initial fetch was in flight.
	queued := f.pending
	f.pending = nil
	for _, change := range queued {
		f.applyChangeLocked(change)
	}
	return nil
}

func (f *LiveFeed) fetchAll(ctx context.Context) ([]Donation, []Envelope, []Income, *EventSummary, error) {
	var (
		donations []Donation
		envelopes []Envelope
		income    []Income
		summary   *EventSummary
		errs      [4]error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		donations, errs[0] = f.src.RecentDonations(ctx, f.eventID, maxRecentDonations)
	}()
	go func() {
		defer wg.Done()
		envelopes, errs[1] = f.src.Envelopes(ctx, f.eventID)
	}()
	go func() {
		defer wg.Done()
		income, errs[2] = f.src.Income(ctx, f.eventID)
	}()
	go func() {
		defer wg.Done()
		summary, errs[3] = f.src.EventSummary(ctx, f.eventID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return donations, envelopes, income, summary, nil
}

// Apply feeds one change into the cache. Donation inserts update the cache in
// place; anything else schedules a debounced refetch. Changes arriving before
// Start finishes are queued and replayed once the initial load is in.
func (f *LiveFeed) Apply(change Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if !f.loaded {
		f.pending = append(f.pending, change)
		return
	}

	f.applyChangeLocked(change)
}

func (f *LiveFeed) applyChangeLocked(change Change) {
	if change.Table == "donations" && change.Op == "insert" {
		var d Donation
		if err := json.Unmarshal(change.Row, &d); err == nil && d.ID != "" {
			f.applyDonationLocked(d)
			return
		}
		// unparseable row, fall through to the refetch path
	}

	f.scheduleRefetchLocked()
}

func (f *LiveFeed) applyDonationLocked(d Donation) {
	// A replayed insert may already be in the initial fetch.
	for _, existing := range f.donations {
		if existing.ID == d.ID {
			return
		}
	}

	f.donations = prependDonation(f.donations, d, maxRecentDonations)

	item := donationActivity(d)
	f.activities = append([]ActivityItem{item}, f.activities...)
	if len(f.activities) > maxActivities {
		f.activities = f.activities[:maxActivities]
	}

	if f.summary != nil {
		f.summary.TotalDonated += d.Amount
		f.summary.TotalDonors++
		// the optimistic percent counts donations only; the next refetch
		// replaces it with the server's full net figure
		f.summary.PercentReached = percentOf(f.summary.TotalDonated, f.summary.TargetAmount)
	}

	f.highlightLocked(item.ID)
	f.flashSummaryLocked()
}

func prependDonation(list []Donation, d Donation, limit int) []Donation {
	out := make([]Donation, 0, len(list)+1)
	out = append(out, d)
	out = append(out, list...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func percentOf(amount, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(amount/target*10000) / 100
}

func (f *LiveFeed) scheduleRefetchLocked() {
	if f.debounceTimer != nil {
		f.debounceTimer.Stop()
	}
	f.debounceTimer = time.AfterFunc(f.Debounce, f.refetch)
}

func (f *LiveFeed) refetch() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	donations, envelopes, income, summary, err := f.fetchAll(ctx)
	if err != nil {
		f.Log.WithField("event_id", f.eventID).Error("feed refetch failed: ", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.donations = donations
	f.envelopes = envelopes
	f.income = income
	f.summary = summary
	f.activities = BuildActivityList(donations, envelopes, income)
	f.flashSummaryLocked()
}

func (f *LiveFeed) flashSummaryLocked() {
	f.summaryFlash = true
	if f.flashTimer != nil {
		f.flashTimer.Stop()
	}
	f.flashTimer = time.AfterFunc(f.FlashFor, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.closed {
			f.summaryFlash = false
		}
	})
}

func (f *LiveFeed) highlightLocked(id string) {
	f.newActivityID = id
	if f.highlightTimer != nil {
		f.highlightTimer.Stop()
	}
	f.highlightTimer = time.AfterFunc(f.HighlightFor, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.closed && f.newActivityID == id {
			f.newActivityID = ""
		}
	})
}

// Snapshot returns a copy of the current state.
func (f *LiveFeed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Loaded:        f.loaded,
		Donations:     append([]Donation(nil), f.donations...),
		Envelopes:     append([]Envelope(nil), f.envelopes...),
		Income:        append([]Income(nil), f.income...),
		Activities:    append([]ActivityItem(nil), f.activities...),
		NewActivityID: f.newActivityID,
		SummaryFlash:  f.summaryFlash,
	}
	if f.summary != nil {
		s := *f.summary
		snap.Summary = &s
	}
	return snap
}

// Close cancels pending refetches and flash timers. The change subscription
// itself belongs to the caller.
func (f *LiveFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for _, t := range []*time.Timer{f.debounceTimer, f.flashTimer, f.highlightTimer} {
		if t != nil {
			t.Stop()
		}
	}
}
