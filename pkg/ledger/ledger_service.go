package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/centavo/centavo/internal/event_bus"
	"github.com/centavo/centavo/internal/utils"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Service interface {
	// Add records a manual transaction. The timestamp combines an optional
	// date (today when omitted) and an optional time-of-day (midnight when
	// omitted), interpreted in the configured location. The amount is
	// rounded to two decimals.
	Add(ctx context.Context, amount float64, date string, timeOfDay string, description string) (ManualTransaction, error)
	// Delete removes a transaction. Deleting an unknown id returns
	// ErrTransactionNotFound.
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]ManualTransaction, error)
}

type ServiceImpl struct {
	repo     LedgerRepo
	clock    utils.Clock
	location *time.Location
	eventBus *event_bus.EventBus
}

func NewService(repo LedgerRepo, clock utils.Clock, location *time.Location, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, location: location, eventBus: eventBus}
}

func (s *ServiceImpl) Add(ctx context.Context, amount float64, date string, timeOfDay string, description string) (ManualTransaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ManualTransaction{}, ErrEmptyDescription
	}

	occurredAt, err := s.resolveTimestamp(date, timeOfDay)
	if err != nil {
		return ManualTransaction{}, err
	}

	transaction := ManualTransaction{
		Amount:      utils.RoundAmount(amount),
		OccurredAt:  occurredAt,
		Description: description,
	}
	id, err := s.repo.Store(ctx, transaction)
	if err != nil {
		return ManualTransaction{}, err
	}
	transaction.ID = id

	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.LedgerChangedEvent, event_bus.LedgerChanged{TransactionID: id}))

	return transaction, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}

	s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.LedgerChangedEvent, event_bus.LedgerChanged{TransactionID: id}))

	return nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]ManualTransaction, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) resolveTimestamp(date string, timeOfDay string) (time.Time, error) {
	day := s.clock.Now().In(s.location)
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, s.location)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, date)
		}
		day = parsed
	}

	hour, minute := 0, 0
	if timeOfDay != "" {
		parsed, err := time.ParseInLocation(timeLayout, timeOfDay, s.location)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, timeOfDay)
		}
		hour, minute = parsed.Hour(), parsed.Minute()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.location), nil
}
