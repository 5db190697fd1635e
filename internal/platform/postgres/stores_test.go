package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

var donationRowColumns = []string{
	"id", "donor_id", "category", "item_name", "quantity", "expiration_date", "status",
	"latitude", "longitude", "pickup_times", "created_at", "updated_at",
}

func TestDonationStore(t *testing.T) {
	t.Parallel()

	t.Run("create encodes pickup times", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		donor := &domain.Donor{ID: uuid.New(), Name: "Bakery", Latitude: ptr(37.5), Longitude: ptr(127.0)}
		slot := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		donation, err := domain.NewDonation(donor, "bread", "Sourdough", 4, "2026-03-02", []time.Time{slot})
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO donations")).
			WithArgs(donation.ID, donor.ID, "bread", "Sourdough", 4, "2026-03-02", "PENDING",
				37.5, 127.0, []byte(`["2026-03-01T00:00:00Z"]`), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresDonationStore(db, discardLogger())
		require.NoError(t, s.Create(context.Background(), donation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get decodes nullable coordinates", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta("FROM donations WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(donationRowColumns).AddRow(
				id.String(), uuid.NewString(), "", "Rice", 2, "", "PENDING",
				nil, 126.9, []byte(`[]`), now, now))

		s := NewPostgresDonationStore(db, discardLogger())
		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got.Latitude)
		require.NotNil(t, got.Longitude)
		assert.InDelta(t, 126.9, *got.Longitude, 1e-9)
		_, ok := got.Location()
		assert.False(t, ok)
		assert.Empty(t, got.PickupTimes)
	})

	t.Run("get missing donation", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("FROM donations").WillReturnRows(sqlmock.NewRows(donationRowColumns))

		_, err = NewPostgresDonationStore(db, discardLogger()).GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrDonationNotFound)
	})

	t.Run("update status of missing donation", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE donations SET status = $1")).
			WithArgs("MATCHED", sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewPostgresDonationStore(db, discardLogger()).
			UpdateStatus(context.Background(), id, domain.DonationStatusMatched)
		assert.ErrorIs(t, err, store.ErrDonationNotFound)
	})
}

var recipientRowColumns = []string{
	"id", "name", "phone_number", "address", "post_number", "email", "notes", "latitude", "longitude", "created_at",
}

func TestRecipientStore_GetByIDs(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates ids into placeholders", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		a, b := uuid.New(), uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN ($1, $2)")).
			WithArgs(a, b).
			WillReturnRows(sqlmock.NewRows(recipientRowColumns).
				AddRow(b.String(), "Shelter", "010", "Main St", "04524", "", "", 37.5, 127.0, now))

		got, err := NewPostgresRecipientStore(db, discardLogger()).
			GetByIDs(context.Background(), []uuid.UUID{a, b, a, uuid.Nil})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Shelter", got[b].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		got, err := NewPostgresRecipientStore(db, discardLogger()).GetByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConfirmedMatchStore_Create(t *testing.T) {
	t.Parallel()

	task := domain.NewProcessingTask(uuid.New(), uuid.New(), uuid.New())
	recipient := uuid.New()
	task.Complete([]domain.Recommendation{{RecipientID: recipient}})

	t.Run("inserts confirmation", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		m := domain.NewConfirmedMatch(task, recipient)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO confirmed_matches")).
			WithArgs(m.ID, task.ID, task.DonationID, task.VolunteerID, recipient, "CONFIRMED",
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgresConfirmedMatchStore(db, discardLogger()).Create(context.Background(), m))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second confirmation of a task", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO confirmed_matches").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "confirmed_matches_task_id_key"})

		err = NewPostgresConfirmedMatchStore(db, discardLogger()).
			Create(context.Background(), domain.NewConfirmedMatch(task, recipient))
		assert.ErrorIs(t, err, store.ErrTaskAlreadyConfirmed)
	})
}
