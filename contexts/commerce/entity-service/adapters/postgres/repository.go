package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"orderflow/contexts/commerce/entity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
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
	return []any{&entityModel{}}
}

func (r *Repository) Exists(ctx context.Context, entityID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entityModel{}).Where("entity_id = ?", entityID).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, entity entities.Entity) error {
	row := entityModel{
		EntityID:   entity.EntityID,
		Name:       entity.Name,
		Attributes: entity.Attributes,
		CreatedAt:  entity.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEntityAlreadyExists
		}
		r.logger.Error("entity insert failed",
			"event", "postgres_entity_insert_failed",
			"module", "commerce/entity-service",
			"layer", "adapter",
			"entity_id", entity.EntityID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, entityID string) (entities.Entity, error) {
	var row entityModel
	err := r.db.WithContext(ctx).Where("entity_id = ?", entityID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Entity{}, domainerrors.ErrEntityNotFound
	}
	if err != nil {
		return entities.Entity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Entity, error) {
	var rows []entityModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Entity, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type entityModel struct {
	EntityID   string            `gorm:"column:entity_id;primaryKey"`
	Name       string            `gorm:"column:name"`
	Attributes map[string]string `gorm:"column:attributes;type:jsonb;serializer:json"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
}

func (entityModel) TableName() string {
	return "entities"
}

func (m entityModel) toEntity() entities.Entity {
	attrs := m.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return entities.Entity{
		EntityID:   m.EntityID,
		Name:       m.Name,
		Attributes: attrs,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
