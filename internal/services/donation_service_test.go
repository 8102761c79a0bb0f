package services

import (
	"testing"

	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonationFixture(t *testing.T) (*DonationService, *fakeDonationRepo, *realtime.Feed, *models.Event) {
	t.Helper()

	event := &models.Event{ID: uuid.New(), Name: "ผ้าป่า", TargetAmount: 50000}
	repo := testRepo()
	repo.EventRepo = newFakeEventRepo(event)
	donRepo := newFakeDonationRepo()
	repo.DonationRepo = donRepo
	feed := testFeed()

	return NewDonationService(repo, feed, testConfig()), donRepo, feed, event
}

func TestCreateDonationDefaultsToCash(t *testing.T) {
	svc, donRepo, _, event := newDonationFixture(t)

	donation, err := svc.CreateDonation(CreateDonationRequest{
		EventID:   event.ID,
		DonorName: "สมชาย",
		Amount:    999,
	})
	require.NoError(t, err)

	assert.Equal(t, models.DonationTypeCash, donation.DonationType)
	assert.Len(t, donRepo.created, 1)
}

func TestCreateDonationValidation(t *testing.T) {
	svc, _, _, event := newDonationFixture(t)

	_, err := svc.CreateDonation(CreateDonationRequest{EventID: event.ID, Amount: 100})
	assert.EqualError(t, err, "donor name is required")

	_, err = svc.CreateDonation(CreateDonationRequest{EventID: event.ID, DonorName: "x", Amount: 0})
	assert.EqualError(t, err, "amount must be greater than zero")

	_, err = svc.CreateDonation(CreateDonationRequest{
		EventID: event.ID, DonorName: "x", Amount: 1, DonationType: "cheque",
	})
	assert.Error(t, err)

	_, err = svc.CreateDonation(CreateDonationRequest{
		EventID: uuid.New(), DonorName: "x", Amount: 1,
	})
	assert.EqualError(t, err, "event not found")
}

func TestCreateDonationPublishesInsert(t *testing.T) {
	svc, _, feed, event := newDonationFixture(t)

	sub := feed.Subscribe(event.ID)
	defer sub.Close()

	donation, err := svc.CreateDonation(CreateDonationRequest{
		EventID:   event.ID,
		DonorName: "สมหญิง",
		Amount:    2500,
	})
	require.NoError(t, err)

	change := <-sub.C
	assert.Equal(t, realtime.TableDonations, change.Table)
	assert.Equal(t, realtime.OpInsert, change.Op)
	assert.Equal(t, event.ID, change.EventID)

	row, ok := change.Row.(*models.Donation)
	require.True(t, ok)
	assert.Equal(t, donation.ID, row.ID)
}

func TestDeleteDonationPublishesDelete(t *testing.T) {
	svc, donRepo, feed, event := newDonationFixture(t)

	donation := &models.Donation{ID: uuid.New(), EventID: event.ID, DonorName: "a", Amount: 10}
	require.NoError(t, donRepo.CreateDonation(donation))

	sub := feed.Subscribe(event.ID)
	defer sub.Close()

	require.NoError(t, svc.DeleteDonation(donation.ID.String()))

	change := <-sub.C
	assert.Equal(t, realtime.OpDelete, change.Op)
	assert.Equal(t, []string{donation.ID.String()}, donRepo.deleted)
}

func TestDeleteDonationMissing(t *testing.T) {
	svc, _, _, _ := newDonationFixture(t)

	assert.Error(t, svc.DeleteDonation(uuid.New().String()))
}
