package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestEventRepo_GetEventByID(t *testing.T) {
	t.Run("finds existing event", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewEventRepository(db)

		eventID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "target_amount", "is_active"}).
			AddRow(eventID, "ผ้าป่าสามัคคี 2568", 500000.0, true)

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(eventID.String(), 1).
			WillReturnRows(rows)

		event, err := repo.GetEventByID(eventID.String())

		require.NoError(t, err)
		assert.Equal(t, eventID, event.ID)
		assert.Equal(t, "ผ้าป่าสามัคคี 2568", event.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for missing event", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewEventRepository(db)

		eventID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(eventID.String(), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		event, err := repo.GetEventByID(eventID.String())

		assert.Error(t, err)
		assert.Nil(t, event)
		assert.Contains(t, err.Error(), "event not found")
	})

	t.Run("rejects empty id", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewEventRepository(db)

		_, err := repo.GetEventByID("")
		assert.Error(t, err)
	})
}

func TestEventRepo_GetEventSummary(t *testing.T) {
	t.Run("scans aggregate row", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewEventRepository(db)

		eventID := uuid.New()
		rows := sqlmock.NewRows([]string{
			"event_id", "event_name", "target_amount", "is_active",
			"total_donated", "total_donors", "total_income", "total_expenses",
			"total_envelopes", "envelopes_received", "total_envelope_amount",
		}).AddRow(eventID, "ผ้าป่า", 100000.0, true, 25000.0, 12, 3000.0, 1500.0, 50, 20, 8000.0)

		mock.ExpectQuery(`SELECT(.|\n)*FROM events e(.|\n)*WHERE e\.id = \$1`).
			WithArgs(eventID.String()).
			WillReturnRows(rows)

		summary, err := repo.GetEventSummary(eventID.String())

		require.NoError(t, err)
		assert.Equal(t, eventID, summary.EventID)
		assert.Equal(t, 25000.0, summary.TotalDonated)
		assert.Equal(t, int64(12), summary.TotalDonors)
		assert.Equal(t, int64(20), summary.EnvelopesReceived)
		assert.Equal(t, 8000.0, summary.TotalEnvelopeAmount)
		assert.Equal(t, 34500.0, summary.Net())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result means missing event", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewEventRepository(db)

		eventID := uuid.New()
		mock.ExpectQuery(`SELECT(.|\n)*FROM events e(.|\n)*WHERE e\.id = \$1`).
			WithArgs(eventID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}))

		summary, err := repo.GetEventSummary(eventID.String())

		assert.Error(t, err)
		assert.Nil(t, summary)
		assert.Contains(t, err.Error(), "event not found")
	})
}

func TestDonationRepo_DeleteDonation(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewDonationRepository(db)

		id := uuid.New().String()
		mock.ExpectExec(`DELETE FROM "donations" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteDonation(id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is an error", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewDonationRepository(db)

		id := uuid.New().String()
		mock.ExpectExec(`DELETE FROM "donations" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteDonation(id)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestDonationRepo_ListRecentDonations(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewDonationRepository(db)

	eventID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "event_id", "donor_name", "amount"}).
		AddRow(uuid.New(), eventID, "สมชาย", 500.0).
		AddRow(uuid.New(), eventID, "สมหญิง", 300.0)

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE event_id = \$1 ORDER BY created_at DESC LIMIT .*`).
		WithArgs(eventID.String(), 20).
		WillReturnRows(rows)

	donations, err := repo.ListRecentDonations(eventID.String(), 20)

	require.NoError(t, err)
	assert.Len(t, donations, 2)
	assert.Equal(t, "สมชาย", donations[0].DonorName)
}
