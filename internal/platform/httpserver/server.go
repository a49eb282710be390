package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	activityservice "orderflow/contexts/commerce/activity-service"
	customerservice "orderflow/contexts/commerce/customer-service"
	entityservice "orderflow/contexts/commerce/entity-service"
	orderservice "orderflow/contexts/commerce/order-service"
	_ "orderflow/internal/platform/httpserver/docs"
	"orderflow/internal/shared/faults"
)

// Modules selects the service surfaces mounted on the mux. Nil modules are
// not routed, which lets the worker process serve health and activity only.
type Modules struct {
	Customers *customerservice.Module
	Orders    *orderservice.Module
	Entities  *entityservice.Module
	Activity  *activityservice.Module
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	service string
	modules Modules
	started atomic.Bool
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(modules Modules, serviceName string, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		service: serviceName,
		modules: modules,
	}
	s.registerRoutes()
	return s
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// MarkStarted flips /healthz/startup to ready.
func (s *Server) MarkStarted() {
	s.started.Store(true)
}

// Serve listens until ctx ends and then drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen http %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, listener)
}

func (s *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", listener.Addr().String(),
	)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown failed",
				"event", "http_server_shutdown_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	<-shutdownDone
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /healthz/startup", s.handleStartup)
	s.mux.HandleFunc("GET /healthz/liveness", s.handleLiveness)

	if s.modules.Customers != nil {
		s.mux.HandleFunc("POST /v1/customers", s.handleCreateCustomer)
		s.mux.HandleFunc("GET /v1/customers", s.handleListCustomers)
		s.mux.HandleFunc("GET /v1/customers/{customer_id}", s.handleGetCustomer)
	}
	if s.modules.Orders != nil {
		s.mux.HandleFunc("POST /v1/orders", s.handleCreateOrder)
		s.mux.HandleFunc("GET /v1/orders", s.handleListOrders)
		s.mux.HandleFunc("GET /v1/orders/{order_id}", s.handleGetOrder)
	}
	if s.modules.Entities != nil {
		s.mux.HandleFunc("POST /v1/entities", s.handleCreateEntity)
		s.mux.HandleFunc("GET /v1/entities", s.handleListEntities)
		s.mux.HandleFunc("GET /v1/entities/{entity_id}", s.handleGetEntity)
	}
	if s.modules.Activity != nil {
		s.mux.HandleFunc("GET /v1/activity", s.handleListActivity)
	}
}

// decodeOptionalBody decodes r's JSON body into a new T. An empty body or a
// literal null yields nil so use cases can report the missing resource.
func decodeOptionalBody[T any](r *http.Request) (*T, error) {
	var target *T
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return target, nil
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := faults.KindOf(err)
	status := faults.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"event", "http_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", string(kind),
			"error", err.Error(),
		)
	}
	writeError(w, status, string(kind), faults.Message(err))
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
