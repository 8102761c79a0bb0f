package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minutesAgo int) time.Time {
	return time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute)
}

func TestBuildActivityListMergesAndSorts(t *testing.T) {
	donations := []Donation{
		{ID: "d1", DonorName: "สมชาย", Amount: 500, DonationType: "cash", CreatedAt: at(5)},
		{ID: "d2", IsAnonymous: true, DonorName: "ใครบางคน", Amount: 100, DonationType: "transfer", CreatedAt: at(1)},
	}
	envelopes := []Envelope{
		{ID: "e1", EnvelopeNo: "A001", RouteName: "สายเหนือ", Status: "received", Amount: 200, UpdatedAt: at(3)},
		{ID: "e2", EnvelopeNo: "A002", Status: "received", Amount: 0, UpdatedAt: at(2)},  // no money, excluded
		{ID: "e3", EnvelopeNo: "A003", Status: "pending", Amount: 300, UpdatedAt: at(2)}, // not received, excluded
	}
	income := []Income{
		{ID: "i1", Category: "ขายของที่ระลึก", Description: "เสื้อ", Amount: 1500, CreatedAt: at(4)},
	}

	items := BuildActivityList(donations, envelopes, income)
	require.Len(t, items, 4)

	// newest first
	assert.Equal(t, "donation:d2", items[0].ID)
	assert.Equal(t, "envelope:e1", items[1].ID)
	assert.Equal(t, "income:i1", items[2].ID)
	assert.Equal(t, "donation:d1", items[3].ID)

	// anonymous donors are masked
	assert.Equal(t, "ผู้ไม่ประสงค์ออกนาม", items[0].Name)
	assert.Equal(t, "โอนเงิน", items[0].Detail)

	assert.Equal(t, "ซอง A001", items[1].Name)
	assert.Contains(t, items[1].Detail, "สายเหนือ")

	assert.Equal(t, "ขายของที่ระลึก", items[2].Name)
	assert.Equal(t, "เงินสด", items[3].Detail)
}

func TestEnvelopeActivityFallsBackToCreatedAt(t *testing.T) {
	envelopes := []Envelope{
		{ID: "e1", EnvelopeNo: "A001", Status: "received", Amount: 200, CreatedAt: at(1)},
		{ID: "e2", EnvelopeNo: "A002", Status: "received", Amount: 100, CreatedAt: at(10), UpdatedAt: at(3)},
	}

	items := BuildActivityList(nil, envelopes, nil)
	require.Len(t, items, 2)

	// e1 has no updated_at, so created_at orders it first
	assert.Equal(t, "envelope:e1", items[0].ID)
	assert.Equal(t, at(1), items[0].Timestamp)
	assert.Equal(t, at(3), items[1].Timestamp)
}

func TestBuildActivityListCap(t *testing.T) {
	donations := make([]Donation, 0, 40)
	for i := 0; i < 40; i++ {
		donations = append(donations, Donation{
			ID:        fmt.Sprintf("d%d", i),
			DonorName: "x",
			Amount:    1,
			CreatedAt: at(i),
		})
	}

	items := BuildActivityList(donations, nil, nil)
	assert.Len(t, items, 30)
	// the oldest rows are the ones trimmed
	assert.Equal(t, "donation:d0", items[0].ID)
	assert.Equal(t, "donation:d29", items[29].ID)
}

func TestBuildActivityListIdempotent(t *testing.T) {
	donations := []Donation{{ID: "d1", DonorName: "x", Amount: 1, CreatedAt: at(1)}}
	envelopes := []Envelope{{ID: "e1", Status: "received", Amount: 9, EnvelopeNo: "A1", UpdatedAt: at(2)}}

	first := BuildActivityList(donations, envelopes, nil)
	second := BuildActivityList(donations, envelopes, nil)
	assert.Equal(t, first, second)
}
