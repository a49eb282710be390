package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activityservice "orderflow/contexts/commerce/activity-service"
	customerservice "orderflow/contexts/commerce/customer-service"
	entityservice "orderflow/contexts/commerce/entity-service"
	orderservice "orderflow/contexts/commerce/order-service"
	ordermemory "orderflow/contexts/commerce/order-service/adapters/memory"
	"orderflow/internal/shared/events"
)

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, string, events.Event) error { return nil }

func newTestServer() *Server {
	customers := customerservice.NewInMemoryModule(nil, discardPublisher{}, nil)
	orders := orderservice.NewInMemoryModule(ordermemory.StaticCustomers{"c1": "Jane Doe"}, discardPublisher{}, nil)
	entities := entityservice.NewInMemoryModule(discardPublisher{}, nil)
	activity := activityservice.NewInMemoryModule(nil, nil)
	return New(Modules{
		Customers: &customers,
		Orders:    &orders,
		Entities:  &entities,
		Activity:  &activity,
	}, "orderflow-test", nil, "")
}

func doRequest(t *testing.T, server *Server, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreateAndGetCustomer(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/v1/customers", `{"customer_id":"c9","full_name":"Ada Lovelace"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(t, server, http.MethodGet, "/v1/customers/c9", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got struct {
		Customer struct {
			CustomerID string `json:"customer_id"`
			FullName   string `json:"full_name"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "c9", got.Customer.CustomerID)
	assert.Equal(t, "Ada Lovelace", got.Customer.FullName)

	rr = doRequest(t, server, http.MethodPost, "/v1/customers", `{"customer_id":"c9","full_name":"Someone Else"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, errorResponse{Code: "already_exists", Message: "the given id already exists"}, decodeError(t, rr))
}

func TestCreateOrderErrorMapping(t *testing.T) {
	server := newTestServer()

	cases := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{name: "empty body", body: "", status: http.StatusBadRequest, code: "invalid_argument", message: "'order' is missing"},
		{name: "null body", body: "null", status: http.StatusBadRequest, code: "invalid_argument", message: "'order' is missing"},
		{name: "no amount", body: `{"customer_id":"c1"}`, status: http.StatusBadRequest, code: "invalid_argument", message: "total_amount is missing"},
		{name: "unknown customer", body: `{"customer_id":"ghost","total_amount":3}`, status: http.StatusPreconditionFailed, code: "failed_precondition", message: "order.customer_id does not exist"},
		{name: "bad json", body: `{"customer_id":`, status: http.StatusBadRequest, code: "invalid_json", message: "request body must be valid JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, server, http.MethodPost, "/v1/orders", tc.body)
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			assert.Equal(t, errorResponse{Code: tc.code, Message: tc.message}, decodeError(t, rr))
		})
	}

	rr := doRequest(t, server, http.MethodGet, "/v1/orders", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}

func TestCreateOrderCopiesCustomerName(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/v1/orders", `{"customer_id":"c1","total_amount":100}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		Order struct {
			OrderID          string  `json:"order_id"`
			CustomerFullName string  `json:"customer_full_name"`
			TotalAmount      float64 `json:"total_amount"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Order.OrderID)
	assert.Equal(t, "Jane Doe", created.Order.CustomerFullName)
	assert.Equal(t, 100.0, created.Order.TotalAmount)

	rr = doRequest(t, server, http.MethodGet, "/v1/orders/"+created.Order.OrderID, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, http.MethodGet, "/v1/orders/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodGet, "/healthz/startup", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	server.MarkStarted()
	rr = doRequest(t, server, http.MethodGet, "/healthz/startup", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, http.MethodGet, "/healthz/liveness", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, http.MethodGet, "/", "")
	assert.JSONEq(t, `{"service":"orderflow-test","status":"ok"}`, rr.Body.String())
}

func TestUnmountedModulesAreNotRouted(t *testing.T) {
	activity := activityservice.NewInMemoryModule(nil, nil)
	server := New(Modules{Activity: &activity}, "worker", nil, "")

	rr := doRequest(t, server, http.MethodPost, "/v1/customers", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, server, http.MethodGet, "/v1/activity", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}
