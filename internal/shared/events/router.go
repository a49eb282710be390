package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"orderflow/internal/shared/faults"
)

var (
	ErrUnhandledEvent       = faults.New(faults.KindUnhandledEvent, "no subscription matched event")
	ErrInvalidSubscription  = faults.New(faults.KindInvalidArgument, "subscription requires a topic and a handler")
	ErrFallbackAlreadyBound = faults.New(faults.KindAlreadyExists, "fallback handler already registered for topic")
)

// Subscription binds a handler to envelopes on Topic that satisfy Filter.
// Higher Priority values are evaluated first.
type Subscription struct {
	Topic    string
	Filter   string
	Priority int
	Name     string
	Handler  Handler
}

type Outcome string

const (
	OutcomeHandled   Outcome = "handled"
	OutcomeFallback  Outcome = "fallback"
	OutcomeUnhandled Outcome = "unhandled"
	OutcomeFailed    Outcome = "failed"
)

// Delivery reports what Dispatch did with one envelope.
type Delivery struct {
	EventID   string
	EventType string
	Topic     string
	Route     string
	Outcome   Outcome
	Err       error
}

type route struct {
	name     string
	priority int
	seq      int
	filter   Filter
	handler  Handler
}

// Router selects at most one handler per delivery: the highest-priority
// matching subscription, earliest registration first on ties, else the
// topic fallback. Handler errors stop at the router; redelivery is left to
// the bus.
type Router struct {
	mu        sync.RWMutex
	compiler  *FilterCompiler
	routes    map[string][]route
	fallbacks map[string]route
	seq       int
	logger    *slog.Logger
}

func NewRouter(logger *slog.Logger) (*Router, error) {
	compiler, err := NewFilterCompiler()
	if err != nil {
		return nil, err
	}
	return &Router{
		compiler:  compiler,
		routes:    make(map[string][]route),
		fallbacks: make(map[string]route),
		logger:    resolveLogger(logger),
	}, nil
}

func (r *Router) Subscribe(sub Subscription) error {
	topic := strings.TrimSpace(sub.Topic)
	if topic == "" || sub.Handler == nil {
		return ErrInvalidSubscription
	}
	filter, err := r.compiler.Compile(sub.Filter)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	name := sub.Name
	if name == "" {
		name = topic + "#" + strconv.Itoa(r.seq)
	}
	routes := append(r.routes[topic], route{
		name:     name,
		priority: sub.Priority,
		seq:      r.seq,
		filter:   filter,
		handler:  sub.Handler,
	})
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].priority == routes[j].priority {
			return routes[i].seq < routes[j].seq
		}
		return routes[i].priority > routes[j].priority
	})
	r.routes[topic] = routes

	r.logger.Info("subscription registered",
		"event", "router_subscription_registered",
		"module", "internal/shared/events",
		"layer", "shared",
		"topic", topic,
		"route", name,
		"filter", filter.String(),
		"priority", sub.Priority,
	)
	return nil
}

// SubscribeFallback registers the catch-all handler for topic.
func (r *Router) SubscribeFallback(topic string, name string, handler Handler) error {
	topic = strings.TrimSpace(topic)
	if topic == "" || handler == nil {
		return ErrInvalidSubscription
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.fallbacks[topic]; exists {
		return fmt.Errorf("%w: %s", ErrFallbackAlreadyBound, topic)
	}
	r.seq++
	if name == "" {
		name = topic + "#fallback"
	}
	r.fallbacks[topic] = route{name: name, seq: r.seq, handler: handler}
	return nil
}

// Topics lists every topic with at least one subscription or fallback.
func (r *Router) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.routes)+len(r.fallbacks))
	for topic := range r.routes {
		seen[topic] = struct{}{}
	}
	for topic := range r.fallbacks {
		seen[topic] = struct{}{}
	}
	topics := make([]string, 0, len(seen))
	for topic := range seen {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Dispatch routes one envelope. The returned error is nil only when a
// subscription or the fallback handled the envelope.
func (r *Router) Dispatch(ctx context.Context, env Envelope) (Delivery, error) {
	delivery := Delivery{
		EventID:   env.EventID,
		EventType: env.EventType,
		Topic:     env.Topic,
	}

	r.mu.RLock()
	candidates := append([]route(nil), r.routes[env.Topic]...)
	fallback, hasFallback := r.fallbacks[env.Topic]
	r.mu.RUnlock()

	for _, candidate := range candidates {
		if candidate.filter.Matches(env) {
			return r.invoke(ctx, candidate, env, delivery, OutcomeHandled)
		}
	}
	if hasFallback {
		return r.invoke(ctx, fallback, env, delivery, OutcomeFallback)
	}

	err := fmt.Errorf("%w: topic=%s type=%s", ErrUnhandledEvent, env.Topic, env.EventType)
	delivery.Outcome = OutcomeUnhandled
	delivery.Err = err
	r.logger.Warn("event matched no subscription",
		"event", "router_event_unhandled",
		"module", "internal/shared/events",
		"layer", "shared",
		"topic", env.Topic,
		"event_id", env.EventID,
		"event_type", env.EventType,
	)
	return delivery, err
}

func (r *Router) invoke(ctx context.Context, rt route, env Envelope, delivery Delivery, outcome Outcome) (Delivery, error) {
	delivery.Route = rt.name
	err := callHandler(ctx, rt.handler, env)
	if err != nil {
		delivery.Outcome = OutcomeFailed
		delivery.Err = err
		r.logger.Error("event handler failed",
			"event", "router_handler_failed",
			"module", "internal/shared/events",
			"layer", "shared",
			"topic", env.Topic,
			"route", rt.name,
			"event_id", env.EventID,
			"event_type", env.EventType,
			"error", err.Error(),
		)
		return delivery, err
	}

	delivery.Outcome = outcome
	r.logger.Debug("event dispatched",
		"event", "router_event_dispatched",
		"module", "internal/shared/events",
		"layer", "shared",
		"topic", env.Topic,
		"route", rt.name,
		"outcome", string(outcome),
		"event_id", env.EventID,
		"event_type", env.EventType,
	)
	return delivery, nil
}

func callHandler(ctx context.Context, handler Handler, env Envelope) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("handler panicked: %v", recovered)
		}
	}()
	return handler(ctx, env)
}

// Start subscribes every routed topic on subscriber with Dispatch as handler.
func (r *Router) Start(ctx context.Context, subscriber Subscriber, consumerGroup string) error {
	if subscriber == nil {
		return errors.New("router start requires a subscriber")
	}
	for _, topic := range r.Topics() {
		if err := subscriber.Subscribe(ctx, topic, consumerGroup, func(ctx context.Context, env Envelope) error {
			if env.Topic == "" {
				env.Topic = topic
			}
			_, err := r.Dispatch(ctx, env)
			return err
		}); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}
