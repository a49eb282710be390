package orderservice

import (
	"log/slog"

	httpadapter "orderflow/contexts/commerce/order-service/adapters/http"
	"orderflow/contexts/commerce/order-service/adapters/memory"
	"orderflow/contexts/commerce/order-service/application/commands"
	"orderflow/contexts/commerce/order-service/application/queries"
	"orderflow/contexts/commerce/order-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Orders      ports.OrderRepository
	Customers   ports.CustomerDirectory
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateOrder: commands.CreateOrderUseCase{
				Orders:      deps.Orders,
				Customers:   deps.Customers,
				Publisher:   deps.Publisher,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Topic:       deps.Topic,
				Logger:      deps.Logger,
			},
			GetOrder: queries.GetOrderUseCase{
				Orders: deps.Orders,
				Logger: deps.Logger,
			},
			ListOrders: queries.ListOrdersUseCase{
				Orders: deps.Orders,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires order use cases against the memory store and the
// given customer directory.
func NewInMemoryModule(customers ports.CustomerDirectory, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Orders:      store,
		Customers:   customers,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
