package httpserver

import (
	"net/http"

	customerhttp "orderflow/contexts/commerce/customer-service/transport/http"
	entityhttp "orderflow/contexts/commerce/entity-service/transport/http"
	orderhttp "orderflow/contexts/commerce/order-service/transport/http"
)

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOptionalBody[customerhttp.CreateCustomerRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.modules.Customers.Handler.CreateCustomerHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Customers.Handler.GetCustomerHandler(r.Context(), r.PathValue("customer_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Customers.Handler.ListCustomersHandler(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOptionalBody[orderhttp.CreateOrderRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.modules.Orders.Handler.CreateOrderHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Orders.Handler.GetOrderHandler(r.Context(), r.PathValue("order_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Orders.Handler.ListOrdersHandler(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOptionalBody[entityhttp.CreateEntityRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.modules.Entities.Handler.CreateEntityHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Entities.Handler.GetEntityHandler(r.Context(), r.PathValue("entity_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Entities.Handler.ListEntitiesHandler(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Activity.Handler.ListActivityHandler(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
