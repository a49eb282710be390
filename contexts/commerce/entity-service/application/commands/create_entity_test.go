package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/contexts/commerce/entity-service/adapters/memory"
	"orderflow/contexts/commerce/entity-service/application/commands"
	"orderflow/contexts/commerce/entity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
	"orderflow/contexts/commerce/entity-service/ports"
	"orderflow/internal/shared/events"
	"orderflow/internal/shared/faults"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

// racingStore reports every id as free and then loses the insert to a
// concurrent writer, as the unique key does under contention.
type racingStore struct {
	*memory.Store
}

func (racingStore) Exists(context.Context, string) (bool, error) { return false, nil }

func (racingStore) Create(context.Context, entities.Entity) error {
	return domainerrors.ErrEntityAlreadyExists
}

func newUseCase(repo ports.EntityRepository, publisher ports.EventPublisher) commands.CreateEntityUseCase {
	store := memory.NewStore()
	return commands.CreateEntityUseCase{
		Entities:    repo,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestCreateEntityStoresNameAsGiven(t *testing.T) {
	store := memory.NewStore()
	useCase := newUseCase(store, &recordingPublisher{})

	created, err := useCase.Execute(context.Background(), commands.CreateEntityCommand{
		Entity: &commands.EntityInput{EntityID: "e-1", Name: " padded widget  ", Attributes: map[string]string{"k": " v "}},
	})
	require.NoError(t, err)
	assert.Equal(t, " padded widget  ", created.Name)

	stored, err := store.Get(context.Background(), "e-1")
	require.NoError(t, err)
	assert.Equal(t, created, stored)
	assert.Equal(t, " v ", stored.Attributes["k"])
}

func TestCreateEntityLosingStoreRaceConflicts(t *testing.T) {
	publisher := &recordingPublisher{}
	useCase := newUseCase(racingStore{Store: memory.NewStore()}, publisher)

	_, err := useCase.Execute(context.Background(), commands.CreateEntityCommand{
		Entity: &commands.EntityInput{EntityID: "e-race", Name: "late"},
	})
	require.ErrorIs(t, err, domainerrors.ErrEntityAlreadyExists)
	assert.Equal(t, faults.KindAlreadyExists, faults.KindOf(err))
	assert.Empty(t, publisher.events)
}

func TestCreateEntityCancelledContextPersistsNothing(t *testing.T) {
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	useCase := newUseCase(store, publisher)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := useCase.Execute(ctx, commands.CreateEntityCommand{
		Entity: &commands.EntityInput{EntityID: "e-cancel"},
	})
	require.ErrorIs(t, err, context.Canceled)

	exists, err := store.Exists(context.Background(), "e-cancel")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, publisher.events)
}
