// Package v1 describes the customers gRPC surface used by dependent
// services. Messages are protobuf well-known types so no code generation is
// needed on either side.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName       = "orderflow.customers.v1.Customers"
	GetCustomerMethod = "/" + ServiceName + "/GetCustomer"

	FieldCustomerID = "customer_id"
	FieldFullName   = "full_name"
)

// CustomersServer answers customer lookups. GetCustomer takes the customer id
// and returns a struct with FieldCustomerID and FieldFullName, or a NotFound
// status.
type CustomersServer interface {
	GetCustomer(ctx context.Context, customerID *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterCustomersServer(registrar grpc.ServiceRegistrar, srv CustomersServer) {
	registrar.RegisterService(&customersServiceDesc, srv)
}

var customersServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CustomersServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCustomer",
			Handler:    getCustomerHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orderflow/customers/v1",
}

func getCustomerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CustomersServer).GetCustomer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetCustomerMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CustomersServer).GetCustomer(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// CustomersClient calls CustomersServer over a client connection.
type CustomersClient struct {
	cc grpc.ClientConnInterface
}

func NewCustomersClient(cc grpc.ClientConnInterface) *CustomersClient {
	return &CustomersClient{cc: cc}
}

func (c *CustomersClient) GetCustomer(ctx context.Context, customerID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetCustomerMethod, wrapperspb.String(customerID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
