package httpadapter

import (
	"context"
	"log/slog"

	application "orderflow/contexts/commerce/customer-service/application"
	"orderflow/contexts/commerce/customer-service/application/commands"
	"orderflow/contexts/commerce/customer-service/application/queries"
	"orderflow/contexts/commerce/customer-service/domain/entities"
	httptransport "orderflow/contexts/commerce/customer-service/transport/http"
)

type Handler struct {
	CreateCustomer commands.CreateCustomerUseCase
	GetCustomer    queries.GetCustomerUseCase
	ListCustomers  queries.ListCustomersUseCase
	Logger         *slog.Logger
}

// CreateCustomerHandler godoc
// @Summary Create a customer
// @Description Creates a customer. A blank customer_id is replaced by a generated UUID.
// @Tags customer-service
// @Accept json
// @Produce json
// @Param request body httptransport.CreateCustomerRequest true "Customer payload"
// @Success 201 {object} httptransport.CreateCustomerResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/customers [post]
func (h Handler) CreateCustomerHandler(
	ctx context.Context,
	req *httptransport.CreateCustomerRequest,
) (httptransport.CreateCustomerResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create customer request received",
		"event", "http_create_customer_received",
		"module", "commerce/customer-service",
		"layer", "transport",
	)

	cmd := commands.CreateCustomerCommand{}
	if req != nil {
		cmd.Customer = &commands.CustomerInput{
			CustomerID: req.CustomerID,
			FullName:   req.FullName,
		}
	}
	customer, err := h.CreateCustomer.Execute(ctx, cmd)
	if err != nil {
		logger.Warn("create customer request failed",
			"event", "http_create_customer_failed",
			"module", "commerce/customer-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.CreateCustomerResponse{}, err
	}
	return httptransport.CreateCustomerResponse{Customer: mapCustomer(customer)}, nil
}

// GetCustomerHandler godoc
// @Summary Get a customer
// @Tags customer-service
// @Produce json
// @Param customer_id path string true "Customer id"
// @Success 200 {object} httptransport.GetCustomerResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/customers/{customer_id} [get]
func (h Handler) GetCustomerHandler(ctx context.Context, customerID string) (httptransport.GetCustomerResponse, error) {
	customer, err := h.GetCustomer.Execute(ctx, queries.GetCustomerQuery{CustomerID: customerID})
	if err != nil {
		return httptransport.GetCustomerResponse{}, err
	}
	return httptransport.GetCustomerResponse{Customer: mapCustomer(customer)}, nil
}

// ListCustomersHandler godoc
// @Summary List customers
// @Tags customer-service
// @Produce json
// @Success 200 {object} httptransport.ListCustomersResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/customers [get]
func (h Handler) ListCustomersHandler(ctx context.Context) (httptransport.ListCustomersResponse, error) {
	customers, err := h.ListCustomers.Execute(ctx)
	if err != nil {
		return httptransport.ListCustomersResponse{}, err
	}
	items := make([]httptransport.CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		items = append(items, mapCustomer(customer))
	}
	return httptransport.ListCustomersResponse{Items: items}, nil
}

func mapCustomer(customer entities.Customer) httptransport.CustomerDTO {
	return httptransport.CustomerDTO{
		CustomerID: customer.CustomerID,
		FullName:   customer.FullName,
		CreatedAt:  customer.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
