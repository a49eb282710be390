package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activityservice "orderflow/contexts/commerce/activity-service"
	"orderflow/contexts/commerce/activity-service/adapters/memory"
	"orderflow/contexts/commerce/activity-service/application/workers"
	"orderflow/contexts/commerce/activity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/activity-service/domain/errors"
	"orderflow/internal/shared/events"
	"orderflow/internal/shared/faults"
)

func newRoutedModule(t *testing.T) (activityservice.Module, *events.Router) {
	t.Helper()
	router, err := events.NewRouter(nil)
	require.NoError(t, err)
	module := activityservice.NewInMemoryModule(nil, nil)
	require.NoError(t, module.Register(router, nil))
	return module, router
}

func orderEnvelope(eventID string, eventType string, data string) events.Envelope {
	return events.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		Topic:         workers.OrderCreatedTopic,
		SourceService: "order-service",
		OccurredAt:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		Data:          []byte(data),
	}
}

func TestRecorderRecordsRoutedOrderCreated(t *testing.T) {
	module, router := newRoutedModule(t)

	delivery, err := router.Dispatch(context.Background(), orderEnvelope("evt-1", "OrderCreated", `{"order_id":"o-1","customer_id":"c1"}`))
	require.NoError(t, err)
	assert.Equal(t, events.OutcomeHandled, delivery.Outcome)
	assert.Equal(t, "order-created@orders", delivery.Route)

	entries, err := module.Store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "o-1", entries[0].SubjectID)
	assert.Equal(t, "order-service", entries[0].Source)
	assert.True(t, entries[0].Recognized)
}

func TestRecorderIgnoresRedelivery(t *testing.T) {
	module, router := newRoutedModule(t)
	envelope := orderEnvelope("evt-1", "OrderCreated", `{"order_id":"o-1"}`)

	for range 3 {
		_, err := router.Dispatch(context.Background(), envelope)
		require.NoError(t, err)
	}

	entries, err := module.Store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecorderRejectsReplayWithDifferentPayload(t *testing.T) {
	_, router := newRoutedModule(t)

	_, err := router.Dispatch(context.Background(), orderEnvelope("evt-1", "OrderCreated", `{"order_id":"o-1"}`))
	require.NoError(t, err)

	delivery, err := router.Dispatch(context.Background(), orderEnvelope("evt-1", "OrderCreated", `{"order_id":"o-2"}`))
	require.ErrorIs(t, err, domainerrors.ErrEventPayloadConflict)
	assert.Equal(t, events.OutcomeFailed, delivery.Outcome)
}

func TestRecorderFallbackRecordsUnrecognizedEvent(t *testing.T) {
	module, router := newRoutedModule(t)

	delivery, err := router.Dispatch(context.Background(), orderEnvelope("evt-9", "OrderShipped", `{"order_id":"o-1"}`))
	require.NoError(t, err)
	assert.Equal(t, events.OutcomeFallback, delivery.Outcome)

	entries, err := module.Store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Recognized)
	assert.Equal(t, workers.HandlerUnrecognized, entries[0].Route)
	assert.Empty(t, entries[0].SubjectID)
}

func TestRecorderMalformedPayloadFails(t *testing.T) {
	module, router := newRoutedModule(t)

	_, err := router.Dispatch(context.Background(), orderEnvelope("evt-2", "OrderCreated", `{"customer_id":"c1"}`))
	require.ErrorIs(t, err, domainerrors.ErrMalformedPayload)

	entries, err := module.Store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegisterRejectsUnknownHandlerAndBadFilter(t *testing.T) {
	router, err := events.NewRouter(nil)
	require.NoError(t, err)
	module := activityservice.NewInMemoryModule(nil, nil)

	err = module.Register(router, []workers.SubscriptionSpec{{Topic: "orders", Handler: "ship-it"}})
	require.ErrorIs(t, err, domainerrors.ErrUnknownHandler)

	err = module.Register(router, []workers.SubscriptionSpec{{
		Topic:   "orders",
		Filter:  `event.type ==`,
		Handler: workers.HandlerOrderCreated,
	}})
	require.ErrorIs(t, err, events.ErrInvalidFilter)
	assert.Empty(t, router.Topics())
	assert.Equal(t, faults.KindInvalidArgument, faults.KindOf(domainerrors.ErrUnknownHandler))
}

// flakyActivities fails the first Append and delegates afterwards.
type flakyActivities struct {
	*memory.Store
	failed bool
}

func (f *flakyActivities) Append(ctx context.Context, entry entities.ActivityEntry) error {
	if !f.failed {
		f.failed = true
		return errors.New("activity store unavailable")
	}
	return f.Store.Append(ctx, entry)
}

func TestRecorderRecordsRedeliveryAfterFailedAppend(t *testing.T) {
	store := memory.NewStore()
	activities := &flakyActivities{Store: store}
	recorder := workers.EventRecorder{
		Activities: activities,
		Dedup:      store,
		Clock:      store,
	}
	handler, err := recorder.Handler(workers.HandlerOrderCreated)
	require.NoError(t, err)
	envelope := orderEnvelope("evt-retry", "OrderCreated", `{"order_id":"o-9"}`)

	require.Error(t, handler(context.Background(), envelope))
	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, handler(context.Background(), envelope))
	require.NoError(t, handler(context.Background(), envelope))
	entries, err = store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "o-9", entries[0].SubjectID)
}
