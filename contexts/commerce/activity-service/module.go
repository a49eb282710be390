package activityservice

import (
	"log/slog"
	"time"

	httpadapter "orderflow/contexts/commerce/activity-service/adapters/http"
	"orderflow/contexts/commerce/activity-service/adapters/memory"
	"orderflow/contexts/commerce/activity-service/application/queries"
	"orderflow/contexts/commerce/activity-service/application/workers"
	"orderflow/contexts/commerce/activity-service/ports"
)

// Module exposes the activity listing and the recorder whose handlers are
// bound to the event router by Register.
type Module struct {
	Handler  httpadapter.Handler
	Recorder workers.EventRecorder
	Store    *memory.Store
}

type Dependencies struct {
	Activities ports.ActivityRepository
	Dedup      ports.EventDedupStore
	Clock      ports.Clock
	DedupTTL   time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListActivity: queries.ListActivityUseCase{Activities: deps.Activities},
		},
		Recorder: workers.EventRecorder{
			Activities: deps.Activities,
			Dedup:      deps.Dedup,
			Clock:      deps.Clock,
			DedupTTL:   deps.DedupTTL,
			Logger:     deps.Logger,
		},
	}
}

// Register binds specs to router; an empty specs slice means the defaults.
func (m Module) Register(router ports.EventRouter, specs []workers.SubscriptionSpec) error {
	if len(specs) == 0 {
		specs = workers.DefaultSubscriptions()
	}
	return workers.Register(router, m.Recorder, specs)
}

// NewInMemoryModule keeps entries in memory. A nil dedup uses the memory
// store's reservations.
func NewInMemoryModule(dedup ports.EventDedupStore, logger *slog.Logger) Module {
	store := memory.NewStore()
	if dedup == nil {
		dedup = store
	}
	module := NewModule(Dependencies{
		Activities: store,
		Dedup:      dedup,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
