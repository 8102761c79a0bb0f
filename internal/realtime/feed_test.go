package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyMatchingEvent(t *testing.T) {
	feed := NewFeed()
	eventA := uuid.New()
	eventB := uuid.New()

	subA := feed.Subscribe(eventA)
	defer subA.Close()
	subB := feed.Subscribe(eventB)
	defer subB.Close()

	feed.Publish(Change{Table: TableDonations, Op: OpInsert, EventID: eventA})

	change := <-subA.C
	assert.Equal(t, TableDonations, change.Table)
	assert.Equal(t, eventA, change.EventID)
	assert.False(t, change.At.IsZero())

	select {
	case c := <-subB.C:
		t.Fatalf("subscriber of another event received %+v", c)
	default:
	}
}

func TestPublishFansOut(t *testing.T) {
	feed := NewFeed()
	eventID := uuid.New()

	sub1 := feed.Subscribe(eventID)
	defer sub1.Close()
	sub2 := feed.Subscribe(eventID)
	defer sub2.Close()

	require.Equal(t, 2, feed.SubscriberCount(eventID))

	feed.Publish(Change{Table: TableIncome, Op: OpDelete, EventID: eventID})

	assert.Equal(t, TableIncome, (<-sub1.C).Table)
	assert.Equal(t, TableIncome, (<-sub2.C).Table)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	feed := NewFeed()
	eventID := uuid.New()

	sub := feed.Subscribe(eventID)
	defer sub.Close()

	// overflow the buffer; Publish must never block
	for i := 0; i < 200; i++ {
		feed.Publish(Change{Table: TableExpenses, Op: OpInsert, EventID: eventID})
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
		default:
			assert.Equal(t, 64, received)
			return
		}
	}
}

func TestCloseUnsubscribes(t *testing.T) {
	feed := NewFeed()
	eventID := uuid.New()

	sub := feed.Subscribe(eventID)
	require.Equal(t, 1, feed.SubscriberCount(eventID))

	sub.Close()
	sub.Close() // idempotent

	assert.Equal(t, 0, feed.SubscriberCount(eventID))

	// channel is closed, drained reads report it
	_, ok := <-sub.C
	assert.False(t, ok)

	// publishing after close must not panic
	feed.Publish(Change{Table: TableEnvelopes, Op: OpUpdate, EventID: eventID})
}
