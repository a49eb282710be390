package workers

import (
	"fmt"

	"orderflow/contexts/commerce/activity-service/ports"
	"orderflow/internal/shared/events"
)

const (
	CustomerCreatedTopic = "customer-created"
	OrderCreatedTopic    = "orders"
	EntityCreatedTopic   = "entities"
)

// SubscriptionSpec names a recorder handler instead of holding a func so it
// can be loaded from configuration.
type SubscriptionSpec struct {
	Topic    string
	Filter   string
	Priority int
	Handler  string
	Fallback bool
}

func DefaultSubscriptions() []SubscriptionSpec {
	return []SubscriptionSpec{
		{Topic: CustomerCreatedTopic, Filter: `event.type == "CustomerCreated"`, Priority: 1, Handler: HandlerCustomerCreated},
		{Topic: CustomerCreatedTopic, Handler: HandlerUnrecognized, Fallback: true},
		{Topic: OrderCreatedTopic, Filter: `event.type == "OrderCreated"`, Priority: 1, Handler: HandlerOrderCreated},
		{Topic: OrderCreatedTopic, Handler: HandlerUnrecognized, Fallback: true},
		{Topic: EntityCreatedTopic, Filter: `event.type == "EntityCreated"`, Priority: 1, Handler: HandlerEntityCreated},
		{Topic: EntityCreatedTopic, Handler: HandlerUnrecognized, Fallback: true},
	}
}

// Register binds specs to router. It stops at the first spec that names an
// unknown handler or carries a filter the router rejects.
func Register(router ports.EventRouter, recorder EventRecorder, specs []SubscriptionSpec) error {
	for i, spec := range specs {
		handler, err := recorder.Handler(spec.Handler)
		if err != nil {
			return fmt.Errorf("subscription %d: %w", i, err)
		}
		name := spec.Handler + "@" + spec.Topic
		if spec.Fallback {
			err = router.SubscribeFallback(spec.Topic, name, handler)
		} else {
			err = router.Subscribe(events.Subscription{
				Topic:    spec.Topic,
				Filter:   spec.Filter,
				Priority: spec.Priority,
				Name:     name,
				Handler:  handler,
			})
		}
		if err != nil {
			return fmt.Errorf("subscription %d (%s): %w", i, name, err)
		}
	}
	return nil
}
