package repository_test

import (
	"context"
	"net/http"
	"rental/infras/otel/mocks"
	"rental/infras/postgres"
	"rental/internal/domains/property/repository"
	"rental/shared/failure"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Property, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func TestFindByID(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT properties.id, properties.owner_id, properties.name FROM properties").
		ExpectQuery().
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).AddRow("p1", "u1", "Sea view"))

	property, err := repo.FindByID(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "u1", property.OwnerID)
	assert.True(t, property.IsOwnedBy("u1"))
	assert.False(t, property.IsOwnedBy("u2"))
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("FROM properties").
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

	_, err := repo.FindByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestFindByID_QueryError(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("FROM properties").
		ExpectQuery().
		WillReturnError(assert.AnError)

	_, err := repo.FindByID(context.Background(), "p1")

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
