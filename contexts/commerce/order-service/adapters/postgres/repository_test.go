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

	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
)

var orderColumns = []string{"order_id", "customer_id", "customer_full_name", "total_amount", "created_at"}

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

func TestRepositoryCreateStoresCustomerSnapshot(t *testing.T) {
	repo, mock := newMockRepository(t)
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WithArgs("o1", "c1", "Jane Doe", 100.0, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), entities.Order{
		OrderID:          "o1",
		CustomerID:       "c1",
		CustomerFullName: "Jane Doe",
		TotalAmount:      100,
		CreatedAt:        createdAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_pkey"})

	err := repo.Create(context.Background(), entities.Order{OrderID: "o1", CreatedAt: time.Now()})
	require.ErrorIs(t, err, domainerrors.ErrOrderAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE order_id = $1`)).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListOrdersByCreation(t *testing.T) {
	repo, mock := newMockRepository(t)
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" ORDER BY created_at ASC`)).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("o1", "c1", "Jane Doe", 100.0, first).
			AddRow("o2", "c1", "Jane Doe", 12.5, second))

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, entities.Order{
		OrderID:          "o1",
		CustomerID:       "c1",
		CustomerFullName: "Jane Doe",
		TotalAmount:      100,
		CreatedAt:        first,
	}, orders[0])
	assert.Equal(t, "o2", orders[1].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
