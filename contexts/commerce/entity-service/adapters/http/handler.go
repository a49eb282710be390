package httpadapter

import (
	"context"

	"orderflow/contexts/commerce/entity-service/application/commands"
	"orderflow/contexts/commerce/entity-service/application/queries"
	"orderflow/contexts/commerce/entity-service/domain/entities"
	httptransport "orderflow/contexts/commerce/entity-service/transport/http"
)

type Handler struct {
	CreateEntity commands.CreateEntityUseCase
	GetEntity    queries.GetEntityUseCase
	ListEntities queries.ListEntitiesUseCase
}

// CreateEntityHandler godoc
// @Summary Create a generic entity
// @Tags entity-service
// @Accept json
// @Produce json
// @Param request body httptransport.CreateEntityRequest true "Entity payload"
// @Success 201 {object} httptransport.EntityResponse
// @Failure 400 {object} httptransport.EntityResponse
// @Failure 409 {object} httptransport.EntityResponse
// @Router /v1/entities [post]
func (h Handler) CreateEntityHandler(ctx context.Context, req *httptransport.CreateEntityRequest) (httptransport.EntityResponse, error) {
	cmd := commands.CreateEntityCommand{}
	if req != nil {
		cmd.Entity = &commands.EntityInput{
			EntityID:   req.EntityID,
			Name:       req.Name,
			Attributes: req.Attributes,
		}
	}
	entity, err := h.CreateEntity.Execute(ctx, cmd)
	if err != nil {
		return httptransport.EntityResponse{}, err
	}
	return httptransport.EntityResponse{Entity: mapEntity(entity)}, nil
}

// GetEntityHandler godoc
// @Summary Get a generic entity
// @Tags entity-service
// @Produce json
// @Param entity_id path string true "Entity id"
// @Success 200 {object} httptransport.EntityResponse
// @Router /v1/entities/{entity_id} [get]
func (h Handler) GetEntityHandler(ctx context.Context, entityID string) (httptransport.EntityResponse, error) {
	entity, err := h.GetEntity.Execute(ctx, entityID)
	if err != nil {
		return httptransport.EntityResponse{}, err
	}
	return httptransport.EntityResponse{Entity: mapEntity(entity)}, nil
}

// ListEntitiesHandler godoc
// @Summary List generic entities
// @Tags entity-service
// @Produce json
// @Success 200 {object} httptransport.ListEntitiesResponse
// @Router /v1/entities [get]
func (h Handler) ListEntitiesHandler(ctx context.Context) (httptransport.ListEntitiesResponse, error) {
	items, err := h.ListEntities.Execute(ctx)
	if err != nil {
		return httptransport.ListEntitiesResponse{}, err
	}
	out := make([]httptransport.EntityDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapEntity(item))
	}
	return httptransport.ListEntitiesResponse{Items: out}, nil
}

func mapEntity(entity entities.Entity) httptransport.EntityDTO {
	return httptransport.EntityDTO{
		EntityID:   entity.EntityID,
		Name:       entity.Name,
		Attributes: entity.Attributes,
		CreatedAt:  entity.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
