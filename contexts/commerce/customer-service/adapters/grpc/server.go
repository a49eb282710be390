package grpcadapter

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	customersv1 "orderflow/contracts/customers/v1"
	application "orderflow/contexts/commerce/customer-service/application"
	"orderflow/contexts/commerce/customer-service/application/queries"
	"orderflow/internal/shared/faults"
)

// Server exposes customer lookups to dependent services.
type Server struct {
	Lookup queries.GetCustomerUseCase
	Logger *slog.Logger
}

var _ customersv1.CustomersServer = Server{}

func (s Server) Register(registrar grpc.ServiceRegistrar) {
	customersv1.RegisterCustomersServer(registrar, s)
}

func (s Server) GetCustomer(ctx context.Context, customerID *wrapperspb.StringValue) (*structpb.Struct, error) {
	customer, err := s.Lookup.Execute(ctx, queries.GetCustomerQuery{CustomerID: customerID.GetValue()})
	if err != nil {
		if !faults.Is(err, faults.KindNotFound) {
			application.ResolveLogger(s.Logger).Error("grpc customer lookup failed",
				"event", "grpc_get_customer_failed",
				"module", "commerce/customer-service",
				"layer", "transport",
				"customer_id", customerID.GetValue(),
				"error", err.Error(),
			)
		}
		return nil, faults.ToGRPC(err)
	}
	return structpb.NewStruct(map[string]any{
		customersv1.FieldCustomerID: customer.CustomerID,
		customersv1.FieldFullName:   customer.FullName,
	})
}
