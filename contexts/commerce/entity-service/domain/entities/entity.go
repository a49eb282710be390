package entities

import (
	"maps"
	"strings"
	"time"

	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
)

type Entity struct {
	EntityID   string
	Name       string
	Attributes map[string]string
	CreatedAt  time.Time
}

// NewEntity copies attributes so later caller mutations do not leak into the
// stored record.
func NewEntity(entityID string, name string, attributes map[string]string, createdAt time.Time) (Entity, error) {
	if strings.TrimSpace(entityID) == "" {
		return Entity{}, domainerrors.ErrEntityIDMissing
	}
	attrs := make(map[string]string, len(attributes))
	maps.Copy(attrs, attributes)
	return Entity{
		EntityID:   entityID,
		Name:       name,
		Attributes: attrs,
		CreatedAt:  createdAt.UTC(),
	}, nil
}
