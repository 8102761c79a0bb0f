package services

import (
	"bytes"
	"testing"

	"donation-tracker-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture(t *testing.T) (*EventService, *fakeEventRepo) {
	t.Helper()

	repo := testRepo()
	eventRepo := newFakeEventRepo()
	repo.EventRepo = eventRepo
	return NewEventService(repo, testFeed(), testConfig()), eventRepo
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventFixture(t)

	_, err := svc.CreateEvent(CreateEventRequest{})
	assert.EqualError(t, err, "event name is required")

	_, err = svc.CreateEvent(CreateEventRequest{Name: "x", TargetAmount: -1})
	assert.EqualError(t, err, "target amount cannot be negative")
}

func TestCreateEventDefaultsActive(t *testing.T) {
	svc, eventRepo := newEventFixture(t)

	event, err := svc.CreateEvent(CreateEventRequest{Name: "ผ้าป่า", TargetAmount: 100000})
	require.NoError(t, err)

	assert.True(t, event.IsActive)
	assert.Contains(t, eventRepo.events, event.ID.String())
}

func TestUpdateEventPartial(t *testing.T) {
	svc, eventRepo := newEventFixture(t)
	existing := &models.Event{ID: uuid.New(), Name: "เดิม", TargetAmount: 1000, IsActive: true}
	eventRepo.events[existing.ID.String()] = existing

	target := 2000.0
	updated, err := svc.UpdateEvent(existing.ID.String(), UpdateEventRequest{TargetAmount: &target})
	require.NoError(t, err)

	assert.Equal(t, "เดิม", updated.Name)
	assert.Equal(t, 2000.0, updated.TargetAmount)
	require.Len(t, eventRepo.updated, 1)
}

func TestGetSummaryDerivesPercent(t *testing.T) {
	svc, eventRepo := newEventFixture(t)

	eventID := uuid.New()
	eventRepo.summaries[eventID.String()] = &models.EventSummary{
		EventID:             eventID,
		TargetAmount:        100000,
		TotalDonated:        20000,
		TotalEnvelopeAmount: 10000,
		TotalIncome:         5000,
		TotalExpenses:       2000,
	}

	summary, err := svc.GetSummary(eventID.String())
	require.NoError(t, err)

	// net = 20000 + 10000 + 5000 - 2000 = 33000
	assert.Equal(t, 33.0, summary.PercentReached)
}

func TestGetSummaryZeroTarget(t *testing.T) {
	svc, eventRepo := newEventFixture(t)

	eventID := uuid.New()
	eventRepo.summaries[eventID.String()] = &models.EventSummary{
		EventID:      eventID,
		TotalDonated: 5000,
	}

	summary, err := svc.GetSummary(eventID.String())
	require.NoError(t, err)
	assert.Zero(t, summary.PercentReached)
}

func TestGetStats(t *testing.T) {
	repo := testRepo()
	event := &models.Event{ID: uuid.New(), Name: "x"}
	repo.EventRepo = newFakeEventRepo(event)
	donRepo := newFakeDonationRepo()
	donRepo.statsCount = 7
	donRepo.statsTotal = 4200
	repo.DonationRepo = donRepo
	svc := NewEventService(repo, testFeed(), testConfig())

	stats, err := svc.GetStats(event.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TodayDonations)
	assert.Equal(t, 4200.0, stats.TodayAmount)
}

func TestDonationQRProducesPNG(t *testing.T) {
	svc, eventRepo := newEventFixture(t)
	event := &models.Event{ID: uuid.New(), Name: "x"}
	eventRepo.events[event.ID.String()] = event

	png, err := svc.DonationQR(event.ID.String(), 256)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
