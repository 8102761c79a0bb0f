package client

import (
	"fmt"
	"sort"
	"time"
)

// Activity types as shown on the live tally page.
const (
	ActivityDonation = "donation"
	ActivityEnvelope = "envelope"
	ActivityIncome   = "income"
)

const maxActivities = 30

// ActivityItem is one row of the live activity list. The ID is stable per
// source row so rebuilds after a refetch never duplicate an entry.
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

func donationTypeLabel(t string) string {
	switch t {
	case "cash":
		return "เงินสด"
	case "transfer":
		return "โอนเงิน"
	default:
		return "อื่นๆ"
	}
}

func donationActivity(d Donation) ActivityItem {
	name := d.DonorName
	if d.IsAnonymous || name == "" {
		name = "ผู้ไม่ประสงค์ออกนาม"
	}
	return ActivityItem{
		ID:        ActivityDonation + ":" + d.ID,
		Type:      ActivityDonation,
		Name:      name,
		Amount:    d.Amount,
		Detail:    donationTypeLabel(d.DonationType),
		Timestamp: d.CreatedAt,
	}
}

func envelopeActivity(e Envelope) ActivityItem {
	name := e.DonorName
	if name == "" {
		name = fmt.Sprintf("ซอง %s", e.EnvelopeNo)
	}
	// Rows served by older backends may carry created_at only.
	ts := e.UpdatedAt
	if ts.IsZero() {
		ts = e.CreatedAt
	}
	return ActivityItem{
		ID:        ActivityEnvelope + ":" + e.ID,
		Type:      ActivityEnvelope,
		Name:      name,
		Amount:    e.Amount,
		Detail:    fmt.Sprintf("ซอง %s · สาย %s", e.EnvelopeNo, e.RouteName),
		Timestamp: ts,
	}
}

func incomeActivity(in Income) ActivityItem {
	return ActivityItem{
		ID:        ActivityIncome + ":" + in.ID,
		Type:      ActivityIncome,
		Name:      in.Category,
		Amount:    in.Amount,
		Detail:    in.Description,
		Timestamp: in.CreatedAt,
	}
}

// BuildActivityList merges donations, received envelopes with money in them,
// and income into one list, newest first, capped at 30 entries. Expenses do
// not appear here; they only move the summary numbers.
func BuildActivityList(donations []Donation, envelopes []Envelope, income []Income) []ActivityItem {
	items := make([]ActivityItem, 0, len(donations)+len(envelopes)+len(income))
	for _, d := range donations {
		items = append(items, donationActivity(d))
	}
	for _, e := range envelopes {
		if e.Status == "received" && e.Amount > 0 {
			items = append(items, envelopeActivity(e))
		}
	}
	for _, in := range income {
		items = append(items, incomeActivity(in))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > maxActivities {
		items = items[:maxActivities]
	}
	return items
}
