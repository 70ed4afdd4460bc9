package exclusion

import (
	"context"

	"github.com/centavo/centavo/internal/event_bus"
)

// Service maintains the set of remote transactions excluded from spend
// totals. Neither Exclude nor Include recomputes anything: they publish an
// event and the spending tracker marks affected budgets dirty.
type Service interface {
	// Exclude marks a remote transaction as excluded. Idempotent.
	Exclude(ctx context.Context, transactionId string) error
	// Include removes the exclusion mark. Idempotent.
	Include(ctx context.Context, transactionId string) error
	All(ctx context.Context) (map[string]struct{}, error)
}

type ServiceImpl struct {
	repo     ExclusionRepo
	eventBus *event_bus.EventBus
}

func NewService(repo ExclusionRepo, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Exclude(ctx context.Context, transactionId string) error {
	if err := s.repo.Add(ctx, transactionId); err != nil {
		return err
	}
	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExclusionChangedEvent,
		event_bus.ExclusionChanged{TransactionID: transactionId, Excluded: true}))
	return nil
}

func (s *ServiceImpl) Include(ctx context.Context, transactionId string) error {
	if err := s.repo.Remove(ctx, transactionId); err != nil {
		return err
	}
	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExclusionChangedEvent,
		event_bus.ExclusionChanged{TransactionID: transactionId, Excluded: false}))
	return nil
}

func (s *ServiceImpl) All(ctx context.Context) (map[string]struct{}, error) {
	return s.repo.All(ctx)
}
