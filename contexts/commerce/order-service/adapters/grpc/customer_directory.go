package grpcadapter

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	customersv1 "orderflow/contracts/customers/v1"
	application "orderflow/contexts/commerce/order-service/application"
	"orderflow/contexts/commerce/order-service/ports"
	"orderflow/internal/shared/faults"
)

const DefaultDependencyTimeout = 5 * time.Second

// CustomerDirectory resolves customers through the customers gRPC service.
type CustomerDirectory struct {
	client  *customersv1.CustomersClient
	timeout time.Duration
	logger  *slog.Logger
}

func NewCustomerDirectory(conn grpc.ClientConnInterface, timeout time.Duration, logger *slog.Logger) *CustomerDirectory {
	if timeout <= 0 {
		timeout = DefaultDependencyTimeout
	}
	return &CustomerDirectory{
		client:  customersv1.NewCustomersClient(conn),
		timeout: timeout,
		logger:  application.ResolveLogger(logger),
	}
}

// GetCustomer applies the directory timeout only when ctx carries no deadline
// of its own.
func (d *CustomerDirectory) GetCustomer(ctx context.Context, customerID string) (ports.CustomerSnapshot, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	reply, err := d.client.GetCustomer(ctx, customerID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ports.CustomerSnapshot{}, ports.ErrCustomerNotFound
		}
		d.logger.Error("customer dependency call failed",
			"event", "grpc_get_customer_failed",
			"module", "commerce/order-service",
			"layer", "adapter",
			"customer_id", customerID,
			"code", status.Code(err).String(),
			"error", err.Error(),
		)
		return ports.CustomerSnapshot{}, faults.FromGRPC(err)
	}

	fields := reply.GetFields()
	snapshot := ports.CustomerSnapshot{
		CustomerID: fields[customersv1.FieldCustomerID].GetStringValue(),
		FullName:   fields[customersv1.FieldFullName].GetStringValue(),
	}
	if snapshot.CustomerID == "" {
		snapshot.CustomerID = customerID
	}
	return snapshot, nil
}
