package customerservice

import (
	"log/slog"

	grpcadapter "orderflow/contexts/commerce/customer-service/adapters/grpc"
	httpadapter "orderflow/contexts/commerce/customer-service/adapters/http"
	"orderflow/contexts/commerce/customer-service/adapters/memory"
	"orderflow/contexts/commerce/customer-service/application/commands"
	"orderflow/contexts/commerce/customer-service/application/queries"
	"orderflow/contexts/commerce/customer-service/domain/entities"
	"orderflow/contexts/commerce/customer-service/ports"
)

// Module is the composition surface for the customer service.
// Runtime wiring consumes Handler and GRPC; Lookup backs the in-process
// customer directory used by orders; Store is exposed for tests.
type Module struct {
	Handler httpadapter.Handler
	GRPC    grpcadapter.Server
	Lookup  queries.GetCustomerUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Customers   ports.CustomerRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCustomer := commands.CreateCustomerUseCase{
		Customers:   deps.Customers,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Topic:       deps.Topic,
		Logger:      deps.Logger,
	}
	getCustomer := queries.GetCustomerUseCase{
		Customers: deps.Customers,
		Logger:    deps.Logger,
	}
	listCustomers := queries.ListCustomersUseCase{
		Customers: deps.Customers,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCustomer: createCustomer,
			GetCustomer:    getCustomer,
			ListCustomers:  listCustomers,
			Logger:         deps.Logger,
		},
		GRPC: grpcadapter.Server{
			Lookup: getCustomer,
			Logger: deps.Logger,
		},
		Lookup: getCustomer,
	}
}

// NewInMemoryModule wires the customer use cases against the memory store.
func NewInMemoryModule(seed []entities.Customer, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed, logger)
	module := NewModule(Dependencies{
		Customers:   store,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
