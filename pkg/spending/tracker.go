package spending

import (
	"context"
	"sync"

	"github.com/centavo/centavo/internal/event_bus"
)

// Tracker remembers which budgets need their spent amount recomputed.
// Mutations to budgets, the manual ledger, or the exclusion set mark budgets
// dirty via events; the aggregator recomputes only dirty budgets and clears
// the marks it actually processed.
type Tracker struct {
	mu    sync.Mutex
	dirty map[int]struct{}
	all   bool
}

func NewTracker(eventBus *event_bus.EventBus) *Tracker {
	// Everything is dirty at startup: stored spent amounts may predate this
	// process.
	t := &Tracker{dirty: map[int]struct{}{}, all: true}

	event_bus.SubscribeTyped(eventBus, event_bus.BudgetCreatedEvent,
		func(ctx context.Context, data event_bus.BudgetCreated) error {
			t.MarkBudget(data.BudgetID)
			return nil
		})
	event_bus.SubscribeTyped(eventBus, event_bus.BudgetDeletedEvent,
		func(ctx context.Context, data event_bus.BudgetDeleted) error {
			t.forget(data.BudgetID)
			return nil
		})
	event_bus.SubscribeTyped(eventBus, event_bus.LedgerChangedEvent,
		func(ctx context.Context, data event_bus.LedgerChanged) error {
			// A manual transaction can fall into any window.
			t.MarkAll()
			return nil
		})
	event_bus.SubscribeTyped(eventBus, event_bus.ExclusionChangedEvent,
		func(ctx context.Context, data event_bus.ExclusionChanged) error {
			t.MarkAll()
			return nil
		})

	return t
}

func (t *Tracker) MarkBudget(budgetId int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty[budgetId] = struct{}{}
}

func (t *Tracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = true
}

func (t *Tracker) forget(budgetId int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.dirty, budgetId)
}

// HasWork reports whether any budget is marked dirty.
func (t *Tracker) HasWork() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.all || len(t.dirty) > 0
}

// dirtySnapshot is the set of marks captured at the start of a recompute run.
// Marks arriving while the run is in flight survive the subsequent clear.
type dirtySnapshot struct {
	ids map[int]struct{}
	all bool
}

func (s dirtySnapshot) includes(budgetId int) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[budgetId]
	return ok
}

func (t *Tracker) snapshot() dirtySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make(map[int]struct{}, len(t.dirty))
	for id := range t.dirty {
		ids[id] = struct{}{}
	}
	return dirtySnapshot{ids: ids, all: t.all}
}

func (t *Tracker) clear(s dirtySnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.all {
		t.all = false
	}
	for id := range s.ids {
		delete(t.dirty, id)
	}
}
