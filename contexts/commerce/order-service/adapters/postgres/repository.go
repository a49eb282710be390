package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func Models() []any {
	return []any{&orderModel{}}
}

func (r *Repository) Exists(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("order_id = ?", orderID).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, order entities.Order) error {
	row := orderModel{
		OrderID:          order.OrderID,
		CustomerID:       order.CustomerID,
		CustomerFullName: order.CustomerFullName,
		TotalAmount:      order.TotalAmount,
		CreatedAt:        order.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrOrderAlreadyExists
		}
		r.logger.Error("order insert failed",
			"event", "postgres_order_insert_failed",
			"module", "commerce/order-service",
			"layer", "adapter",
			"order_id", order.OrderID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, orderID string) (entities.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, domainerrors.ErrOrderNotFound
		}
		return entities.Order{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Order, error) {
	var rows []orderModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type orderModel struct {
	OrderID          string    `gorm:"column:order_id;primaryKey"`
	CustomerID       string    `gorm:"column:customer_id;index"`
	CustomerFullName string    `gorm:"column:customer_full_name"`
	TotalAmount      float64   `gorm:"column:total_amount;type:numeric(18,2)"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (orderModel) TableName() string {
	return "orders"
}

func (m orderModel) toEntity() entities.Order {
	return entities.Order{
		OrderID:          m.OrderID,
		CustomerID:       m.CustomerID,
		CustomerFullName: m.CustomerFullName,
		TotalAmount:      m.TotalAmount,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
