package repository_test

import (
	"context"
	"database/sql/driver"
	"rental/config"
	"rental/infras/otel/mocks"
	"rental/infras/postgres"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/model"
	"rental/internal/domains/reservation/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryColumns = []string{
	"id", "property_id", "kind", "status", "start_date", "end_date", "version",
	"guest_id", "guest_name", "guest_email", "guest_phone",
	"created_at", "modified_at", "created_by", "modified_by",
}

func newPostgresStore(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")

	cfg := &config.Config{}
	cfg.DB.Postgres.TxTimeoutSeconds = 5

	return repository.NewPostgres(&postgres.Connection{Read: db, Write: db}, cfg, mocks.NewOtel()), mock
}

func entryRow(entry model.Entry) []driver.Value {
	ptr := func(v *string) driver.Value {
		if v == nil {
			return nil
		}

		return *v
	}

	return []driver.Value{
		entry.ID, entry.PropertyID, string(entry.Kind), string(entry.Status), entry.StartDate, entry.EndDate, entry.Version,
		ptr(entry.GuestID), ptr(entry.GuestName), ptr(entry.GuestEmail), ptr(entry.GuestPhone),
		entry.CreatedAt, entry.ModifiedAt, entry.CreatedBy, entry.ModifiedBy,
	}
}

func expectLock(mock sqlmock.Sqlmock, propertyID string) {
	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(propertyID).WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestPostgres_CreateIfNoConflict(t *testing.T) {
	store, mock := newPostgresStore(t)
	entry := newBooking(t, "p1", "g1", 1, 5)

	expectLock(mock, "p1")
	mock.ExpectQuery("FROM reservation_entries WHERE property_id = \\$1 AND status = 'ACTIVE'").
		WithArgs("p1", entry.StartDate, entry.EndDate, sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows(entryColumns))
	mock.ExpectExec("INSERT INTO reservation_entries").
		WithArgs(entry.ID, "p1", entry.Kind, entry.Status, entry.StartDate, entry.EndDate, int64(0),
			entry.GuestID, entry.GuestName, entry.GuestEmail, entry.GuestPhone,
			entry.CreatedAt, entry.ModifiedAt, entry.CreatedBy, entry.ModifiedBy).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := store.CreateIfNoConflict(context.Background(), entry, policy.BookingRule())

	require.NoError(t, err)
	assert.Equal(t, entry.ID, created.ID)
	assert.Equal(t, int64(0), created.Version)
}

func TestPostgres_CreateIfNoConflict_Conflict(t *testing.T) {
	store, mock := newPostgresStore(t)
	existing := newBooking(t, "p1", "g2", 4, 8)
	entry := newBooking(t, "p1", "g1", 1, 5)

	expectLock(mock, "p1")
	mock.ExpectQuery("FROM reservation_entries WHERE property_id").
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(existing)...))
	mock.ExpectRollback()

	_, err := store.CreateIfNoConflict(context.Background(), entry, policy.BookingRule())

	require.ErrorIs(t, err, repository.ErrConflict)

	conflicts := repository.ConflictsOf(err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing.ID, conflicts[0].EntryID)
	assert.Equal(t, stay(t, 4, 5), conflicts[0].Overlap)
}

func TestPostgres_CreateIfNoConflict_DisabledRuleSkipsQuery(t *testing.T) {
	store, mock := newPostgresStore(t)
	entry := model.NewBlock("p1", stay(t, 1, 5), "owner", time.Now())

	expectLock(mock, "p1")
	mock.ExpectExec("INSERT INTO reservation_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.CreateIfNoConflict(context.Background(), entry, conflict.None())

	require.NoError(t, err)
}

func TestPostgres_CreateIfNoConflict_MissingProperty(t *testing.T) {
	store, mock := newPostgresStore(t)
	entry := newBooking(t, "p1", "g1", 1, 5)

	expectLock(mock, "p1")
	mock.ExpectQuery("FROM reservation_entries WHERE property_id").WillReturnRows(sqlmock.NewRows(entryColumns))
	mock.ExpectExec("INSERT INTO reservation_entries").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	_, err := store.CreateIfNoConflict(context.Background(), entry, policy.BookingRule())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgres_CreateIfNoConflict_LockFailure(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := store.CreateIfNoConflict(context.Background(), newBooking(t, "p1", "g1", 1, 5), policy.BookingRule())

	require.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, repository.ErrConflict)
}

func TestPostgres_UpdateWithVersion(t *testing.T) {
	store, mock := newPostgresStore(t)
	current := newBooking(t, "p1", "g1", 1, 5)

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WithArgs(current.ID).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("p1"))
	expectLock(mock, "p1")
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(current.ID).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(current)...))
	mock.ExpectQuery("FROM reservation_entries WHERE property_id").
		WithArgs("p1", stay(t, 3, 7).Start, stay(t, 3, 7).End, sqlmock.AnyArg(), current.ID).
		WillReturnRows(sqlmock.NewRows(entryColumns))
	mock.ExpectExec("UPDATE reservation_entries SET").
		WithArgs(current.ID, sqlmock.AnyArg(), stay(t, 3, 7).Start, stay(t, 3, 7).End,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := store.UpdateWithVersion(context.Background(), current.ID, 0, func(entry *model.Entry) (conflict.Rule, error) {
		entry.SetInterval(stay(t, 3, 7))

		return policy.BookingRule(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)
	assert.Equal(t, stay(t, 3, 7), updated.Interval())
}

func TestPostgres_UpdateWithVersion_StaleVersion(t *testing.T) {
	store, mock := newPostgresStore(t)
	current := newBooking(t, "p1", "g1", 1, 5)
	current.Version = 3

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("p1"))
	expectLock(mock, "p1")
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(current)...))
	mock.ExpectRollback()

	_, err := store.UpdateWithVersion(context.Background(), current.ID, 2, cancel)

	assert.ErrorIs(t, err, repository.ErrStaleVersion)
}

func TestPostgres_UpdateWithVersion_CompareAndSwapMiss(t *testing.T) {
	store, mock := newPostgresStore(t)
	current := newBooking(t, "p1", "g1", 1, 5)

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("p1"))
	expectLock(mock, "p1")
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(current)...))
	mock.ExpectExec("UPDATE reservation_entries SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := store.UpdateWithVersion(context.Background(), current.ID, 0, cancel)

	assert.ErrorIs(t, err, repository.ErrStaleVersion)
}

func TestPostgres_UpdateWithVersion_Conflict(t *testing.T) {
	store, mock := newPostgresStore(t)
	current := newBooking(t, "p1", "g1", 1, 5)
	current.Status = model.StatusCanceled
	other := newBooking(t, "p1", "g2", 5, 6)

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("p1"))
	expectLock(mock, "p1")
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(current)...))
	mock.ExpectQuery("FROM reservation_entries WHERE property_id").
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(other)...))
	mock.ExpectRollback()

	_, err := store.UpdateWithVersion(context.Background(), current.ID, 0, reactivate)

	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestPostgres_UpdateWithVersion_NotFound(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}))

	_, err := store.UpdateWithVersion(context.Background(), "missing", 0, cancel)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgres_FindByID(t *testing.T) {
	store, mock := newPostgresStore(t)
	entry := newBooking(t, "p1", "g1", 1, 5)

	mock.ExpectQuery("FROM reservation_entries WHERE id = \\$1").
		WithArgs(entry.ID).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(entry)...))
	mock.ExpectQuery("FROM reservation_entries WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	found, err := store.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)
	assert.Equal(t, model.KindBooking, found.Kind)
	assert.Equal(t, "g1", model.Value(found.GuestID))
	assert.Nil(t, found.GuestPhone)

	_, err = store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgres_FindActiveBlocksByProperty(t *testing.T) {
	store, mock := newPostgresStore(t)
	block := model.NewBlock("p1", stay(t, 10, 12), "owner", time.Now())

	mock.ExpectQuery("kind = 'BLOCK' AND status = 'ACTIVE' ORDER BY start_date").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(entryRow(block)...))

	blocks, err := store.FindActiveBlocksByProperty(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, block.ID, blocks[0].ID)
	assert.Nil(t, blocks[0].GuestID)
}

func TestPostgres_FindByPropertyAndGuestAndInterval(t *testing.T) {
	store, mock := newPostgresStore(t)
	interval := stay(t, 1, 5)

	mock.ExpectQuery("guest_id = \\$2 AND start_date = \\$3 AND end_date = \\$4").
		WithArgs("p1", "g1", interval.Start, interval.End).
		WillReturnRows(sqlmock.NewRows(entryColumns))

	_, err := store.FindByPropertyAndGuestAndInterval(context.Background(), "p1", "g1", interval)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgres_Delete(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("p1"))
	expectLock(mock, "p1")
	mock.ExpectExec("DELETE FROM reservation_entries").WithArgs("e1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT property_id FROM reservation_entries").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}))

	require.NoError(t, store.Delete(context.Background(), "e1"))
	assert.ErrorIs(t, store.Delete(context.Background(), "missing"), repository.ErrNotFound)
}
