package entityservice

import (
	"log/slog"

	httpadapter "orderflow/contexts/commerce/entity-service/adapters/http"
	"orderflow/contexts/commerce/entity-service/adapters/memory"
	"orderflow/contexts/commerce/entity-service/application/commands"
	"orderflow/contexts/commerce/entity-service/application/queries"
	"orderflow/contexts/commerce/entity-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Entities    ports.EntityRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateEntity: commands.CreateEntityUseCase{
				Entities:    deps.Entities,
				Publisher:   deps.Publisher,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Topic:       deps.Topic,
				Logger:      deps.Logger,
			},
			GetEntity:    queries.GetEntityUseCase{Entities: deps.Entities},
			ListEntities: queries.ListEntitiesUseCase{Entities: deps.Entities},
		},
	}
}

func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Entities:    store,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
