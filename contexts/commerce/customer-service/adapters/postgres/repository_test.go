package postgresadapter

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderflow/contexts/commerce/customer-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewRepository(gormDB, nil), mock
}

func TestRepositoryCreateInsertsCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "customers"`)).
		WithArgs("c1", "Jane Doe", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), entities.Customer{
		CustomerID: "c1",
		FullName:   "Jane Doe",
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "customers"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"})

	err := repo.Create(context.Background(), entities.Customer{CustomerID: "c1", CreatedAt: time.Now()})
	require.ErrorIs(t, err, domainerrors.ErrCustomerAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "customers" WHERE customer_id = $1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customers" WHERE customer_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "full_name", "created_at"}))

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetRoundTripsRow(t *testing.T) {
	repo, mock := newMockRepository(t)
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customers" WHERE customer_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "full_name", "created_at"}).
			AddRow("c1", "Jane Doe", createdAt))

	customer, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, entities.Customer{CustomerID: "c1", FullName: "Jane Doe", CreatedAt: createdAt}, customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}
