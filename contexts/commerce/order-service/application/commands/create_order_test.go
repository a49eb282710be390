package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/contexts/commerce/order-service/adapters/memory"
	"orderflow/contexts/commerce/order-service/application/commands"
	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
	"orderflow/contexts/commerce/order-service/ports"
	"orderflow/internal/shared/events"
	"orderflow/internal/shared/faults"
)

type captureBus struct {
	mu        sync.Mutex
	topics    []string
	envelopes []events.Envelope
}

func (b *captureBus) Publish(_ context.Context, topic string, envelope events.Envelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	b.envelopes = append(b.envelopes, envelope)
	return nil
}

type countingDirectory struct {
	next  ports.CustomerDirectory
	calls int
}

func (d *countingDirectory) GetCustomer(ctx context.Context, customerID string) (ports.CustomerSnapshot, error) {
	d.calls++
	return d.next.GetCustomer(ctx, customerID)
}

type failingDirectory struct {
	err error
}

func (d failingDirectory) GetCustomer(context.Context, string) (ports.CustomerSnapshot, error) {
	return ports.CustomerSnapshot{}, d.err
}

// cancellingDirectory resolves the customer but cancels the caller's context
// before returning, as if the client went away mid-request.
type cancellingDirectory struct {
	cancel context.CancelFunc
}

func (d cancellingDirectory) GetCustomer(_ context.Context, customerID string) (ports.CustomerSnapshot, error) {
	d.cancel()
	return ports.CustomerSnapshot{CustomerID: customerID, FullName: "Late Caller"}, nil
}

// racingStore reports every id as free and then loses the insert to a
// concurrent writer, as the unique key does under contention.
type racingStore struct {
	*memory.Store
}

func (racingStore) Exists(context.Context, string) (bool, error) { return false, nil }

func (racingStore) Create(context.Context, entities.Order) error {
	return domainerrors.ErrOrderAlreadyExists
}

func amount(v float64) *float64 {
	return &v
}

func newUseCase(directory ports.CustomerDirectory, bus events.Bus) (commands.CreateOrderUseCase, *memory.Store) {
	store := memory.NewStore(nil)
	return commands.CreateOrderUseCase{
		Orders:      store,
		Customers:   directory,
		Publisher:   events.Publisher{Bus: bus, Source: "order-service"},
		Clock:       store,
		IDGenerator: store,
	}, store
}

func TestCreateOrderEnrichesAndPublishesOnce(t *testing.T) {
	bus := &captureBus{}
	useCase, store := newUseCase(memory.StaticCustomers{"c1": "Jane Doe"}, bus)

	order, err := useCase.Execute(context.Background(), commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "", CustomerID: "c1", TotalAmount: amount(100)},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "c1", order.CustomerID)
	assert.Equal(t, "Jane Doe", order.CustomerFullName)
	assert.Equal(t, 100.0, order.TotalAmount)

	stored, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)

	require.Len(t, bus.envelopes, 1)
	assert.Equal(t, "orders", bus.topics[0])
	envelope := bus.envelopes[0]
	assert.Equal(t, "OrderCreated", envelope.EventType)
	assert.Equal(t, order.OrderID, envelope.PartitionKey)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, order.OrderID, payload["order_id"])
}

func TestCreateOrderUnknownCustomerPersistsNothing(t *testing.T) {
	bus := &captureBus{}
	useCase, store := newUseCase(memory.StaticCustomers{"c1": "Jane Doe"}, bus)

	_, err := useCase.Execute(context.Background(), commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "o-1", CustomerID: "ghost", TotalAmount: amount(5)},
	})
	require.ErrorIs(t, err, domainerrors.ErrCustomerReferenceMissing)
	assert.Equal(t, faults.KindFailedPrecondition, faults.KindOf(err))
	assert.Equal(t, "order.customer_id does not exist", faults.Message(err))

	exists, err := store.Exists(context.Background(), "o-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, bus.envelopes)
}

func TestCreateOrderValidatesBeforeSideEffects(t *testing.T) {
	cases := []struct {
		name string
		cmd  commands.CreateOrderCommand
		want error
	}{
		{name: "missing body", cmd: commands.CreateOrderCommand{}, want: domainerrors.ErrOrderMissing},
		{
			name: "blank customer",
			cmd:  commands.CreateOrderCommand{Order: &commands.OrderInput{CustomerID: "  ", TotalAmount: amount(1)}},
			want: domainerrors.ErrCustomerIDMissing,
		},
		{
			name: "missing amount",
			cmd:  commands.CreateOrderCommand{Order: &commands.OrderInput{CustomerID: "c1"}},
			want: domainerrors.ErrTotalAmountMissing,
		},
		{
			name: "blank customer reported before missing amount",
			cmd:  commands.CreateOrderCommand{Order: &commands.OrderInput{}},
			want: domainerrors.ErrCustomerIDMissing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bus := &captureBus{}
			directory := &countingDirectory{next: memory.StaticCustomers{"c1": "Jane Doe"}}
			useCase, store := newUseCase(directory, bus)

			_, err := useCase.Execute(context.Background(), tc.cmd)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, faults.KindInvalidArgument, faults.KindOf(err))
			assert.Zero(t, directory.calls)
			assert.Empty(t, bus.envelopes)

			items, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestCreateOrderDuplicateID(t *testing.T) {
	bus := &captureBus{}
	useCase, _ := newUseCase(memory.StaticCustomers{"c1": "Jane Doe"}, bus)
	cmd := commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "o-1", CustomerID: "c1", TotalAmount: amount(10)},
	}

	_, err := useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Order.TotalAmount = amount(99)
	_, err = useCase.Execute(context.Background(), cmd)
	require.ErrorIs(t, err, domainerrors.ErrOrderAlreadyExists)
	assert.Equal(t, "the given id already exists", faults.Message(err))
	assert.Len(t, bus.envelopes, 1)
}

func TestCreateOrderLosingStoreRaceConflicts(t *testing.T) {
	bus := &captureBus{}
	store := memory.NewStore(nil)
	useCase := commands.CreateOrderUseCase{
		Orders:      racingStore{Store: store},
		Customers:   memory.StaticCustomers{"c1": "Jane Doe"},
		Publisher:   events.Publisher{Bus: bus, Source: "order-service"},
		Clock:       store,
		IDGenerator: store,
	}

	_, err := useCase.Execute(context.Background(), commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "o-race", CustomerID: "c1", TotalAmount: amount(5)},
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderAlreadyExists)
	assert.Equal(t, faults.KindAlreadyExists, faults.KindOf(err))
	assert.Empty(t, bus.envelopes)
}

func TestCreateOrderPropagatesTransportFailure(t *testing.T) {
	bus := &captureBus{}
	transportErr := faults.Wrap(faults.KindTransport, "remote call failed", errors.New("connection refused"))
	useCase, store := newUseCase(failingDirectory{err: transportErr}, bus)

	_, err := useCase.Execute(context.Background(), commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "o-1", CustomerID: "c1", TotalAmount: amount(10)},
	})
	require.ErrorIs(t, err, transportErr)
	assert.Equal(t, faults.KindTransport, faults.KindOf(err))

	exists, err := store.Exists(context.Background(), "o-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, bus.envelopes)
}

func TestCreateOrderAbortsWhenCancelledAfterLookup(t *testing.T) {
	bus := &captureBus{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	useCase, store := newUseCase(cancellingDirectory{cancel: cancel}, bus)

	_, err := useCase.Execute(ctx, commands.CreateOrderCommand{
		Order: &commands.OrderInput{OrderID: "o-late", CustomerID: "c1", TotalAmount: amount(10)},
	})
	require.ErrorIs(t, err, context.Canceled)

	exists, err := store.Exists(context.Background(), "o-late")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, bus.envelopes)
}
