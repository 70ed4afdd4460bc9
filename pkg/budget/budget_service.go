package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/centavo/centavo/internal/event_bus"
	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/period"
	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Get(ctx context.Context, id int) (Budget, error)
	// Create validates the request, resolves the current window for the
	// period kind, and rejects duplicates for the same (name, window) pair.
	Create(ctx context.Context, name string, targetAmount float64, kind period.Kind) (Budget, error)
	Delete(ctx context.Context, id int) (bool, error)
	// EnsureCurrentPeriods provisions zero-target skeleton budgets for the
	// current daily, weekly, and monthly windows. It is idempotent: windows
	// that already have a budget are left alone.
	EnsureCurrentPeriods(ctx context.Context) error
}

type BudgetServiceImpl struct {
	repo     BudgetRepo
	clock    utils.Clock
	location *time.Location
	eventBus *event_bus.EventBus
}

func NewBudgetService(repo BudgetRepo, clock utils.Clock, location *time.Location, eventBus *event_bus.EventBus) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, clock: clock, location: location, eventBus: eventBus}
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	return s.repo.GetAll(ctx)
}

func (s *BudgetServiceImpl) Get(ctx context.Context, id int) (Budget, error) {
	return s.repo.Get(ctx, id)
}

func (s *BudgetServiceImpl) Create(ctx context.Context, name string, targetAmount float64, kind period.Kind) (Budget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Budget{}, ErrEmptyName
	}
	if targetAmount <= 0 {
		return Budget{}, ErrInvalidTargetAmount
	}

	window, err := period.Resolve(kind, s.clock.Now().In(s.location))
	if err != nil {
		return Budget{}, err
	}

	if _, err := s.repo.FindByNameAndWindow(ctx, name, window); err == nil {
		return Budget{}, fmt.Errorf("%w: %q [%s, %s]", ErrDuplicateBudget, name, window.Start, window.End)
	} else if !errors.Is(err, ErrBudgetNotFound) {
		return Budget{}, err
	}

	budget := Budget{
		Name:         name,
		TargetAmount: utils.RoundAmount(targetAmount),
		Period:       kind,
		WindowStart:  window.Start,
		WindowEnd:    window.End,
	}
	id, err := s.repo.Store(ctx, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.ID = id

	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetCreatedEvent, event_bus.BudgetCreated{BudgetID: id}))

	return budget, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%d)", id)
		return false, nil
	}

	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetDeletedEvent, event_bus.BudgetDeleted{BudgetID: id}))

	return true, nil
}

func (s *BudgetServiceImpl) EnsureCurrentPeriods(ctx context.Context) error {
	now := s.clock.Now().In(s.location)
	for _, kind := range period.Kinds {
		window, err := period.Resolve(kind, now)
		if err != nil {
			return err
		}

		_, err = s.repo.FindByNameAndWindow(ctx, string(kind), window)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrBudgetNotFound) {
			return err
		}

		skeleton := Budget{
			Name:        string(kind),
			Period:      kind,
			WindowStart: window.Start,
			WindowEnd:   window.End,
		}
		id, err := s.repo.Store(ctx, skeleton)
		if err != nil {
			return fmt.Errorf("could not provision %s budget: %w", kind, err)
		}
		log.Debugf("provisioned %s budget %d for window [%s, %s]", kind, id, window.Start, window.End)

		s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetCreatedEvent, event_bus.BudgetCreated{BudgetID: id}))
	}
	return nil
}
