package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"orderflow/contexts/commerce/customer-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Models lists the gorm models owned by this repository for migrations.
func Models() []any {
	return []any{&customerModel{}}
}

func (r *Repository) Exists(ctx context.Context, customerID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&customerModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, customer entities.Customer) error {
	row := customerModelFromEntity(customer)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCustomerAlreadyExists
		}
		r.logger.Error("customer insert failed",
			"event", "postgres_customer_insert_failed",
			"module", "commerce/customer-service",
			"layer", "adapter",
			"customer_id", customer.CustomerID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, customerID string) (entities.Customer, error) {
	var row customerModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Customer{}, domainerrors.ErrCustomerNotFound
		}
		return entities.Customer{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Customer, error) {
	var rows []customerModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type customerModel struct {
	CustomerID string    `gorm:"column:customer_id;primaryKey"`
	FullName   string    `gorm:"column:full_name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (customerModel) TableName() string {
	return "customers"
}

func customerModelFromEntity(customer entities.Customer) customerModel {
	return customerModel{
		CustomerID: customer.CustomerID,
		FullName:   customer.FullName,
		CreatedAt:  customer.CreatedAt.UTC(),
	}
}

func (m customerModel) toEntity() entities.Customer {
	return entities.Customer{
		CustomerID: m.CustomerID,
		FullName:   m.FullName,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
