package httptransport

type CreateCustomerRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	FullName   string `json:"full_name"`
}

type CustomerDTO struct {
	CustomerID string `json:"customer_id"`
	FullName   string `json:"full_name"`
	CreatedAt  string `json:"created_at"`
}

type CreateCustomerResponse struct {
	Customer CustomerDTO `json:"customer"`
}

type GetCustomerResponse struct {
	Customer CustomerDTO `json:"customer"`
}

type ListCustomersResponse struct {
	Items []CustomerDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
