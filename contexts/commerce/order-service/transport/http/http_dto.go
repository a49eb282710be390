package httptransport

// CreateOrderRequest keeps TotalAmount as a pointer so an absent amount is
// distinguishable from zero.
type CreateOrderRequest struct {
	OrderID     string   `json:"order_id,omitempty"`
	CustomerID  string   `json:"customer_id"`
	TotalAmount *float64 `json:"total_amount"`
}

type OrderDTO struct {
	OrderID          string  `json:"order_id"`
	CustomerID       string  `json:"customer_id"`
	CustomerFullName string  `json:"customer_full_name"`
	TotalAmount      float64 `json:"total_amount"`
	CreatedAt        string  `json:"created_at"`
}

type CreateOrderResponse struct {
	Order OrderDTO `json:"order"`
}

type GetOrderResponse struct {
	Order OrderDTO `json:"order"`
}

type ListOrdersResponse struct {
	Items []OrderDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
