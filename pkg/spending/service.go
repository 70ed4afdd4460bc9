package spending

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/exclusion"
	"github.com/centavo/centavo/pkg/ledger"
	"github.com/centavo/centavo/pkg/period"
	"github.com/centavo/centavo/pkg/wise"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Service recomputes derived spent amounts from the remote feed and the
// manual ledger. Recomputation is idempotent for unchanged inputs and never
// writes partial sums: a failed feed fetch leaves every stored spent amount
// untouched.
type Service interface {
	// RecomputeDirty recomputes spent for all budgets currently marked
	// dirty. A no-op when nothing is dirty.
	RecomputeDirty(ctx context.Context) error
	// RecomputeAll marks every budget dirty and recomputes.
	RecomputeAll(ctx context.Context) error
}

type ServiceImpl struct {
	feed          wise.Client
	budgetRepo    budget.BudgetRepo
	exclusionRepo exclusion.ExclusionRepo
	ledgerRepo    ledger.LedgerRepo
	tracker       *Tracker
	currency      string
	location      *time.Location
	group         singleflight.Group
}

func NewService(
	feed wise.Client,
	budgetRepo budget.BudgetRepo,
	exclusionRepo exclusion.ExclusionRepo,
	ledgerRepo ledger.LedgerRepo,
	tracker *Tracker,
	currency string,
	location *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		feed:          feed,
		budgetRepo:    budgetRepo,
		exclusionRepo: exclusionRepo,
		ledgerRepo:    ledgerRepo,
		tracker:       tracker,
		currency:      currency,
		location:      location,
	}
}

// inputs is one consistent read of everything a recompute run needs. The
// feed, the exclusion set, and the ledger are read once and reused across
// every dirty budget window.
type inputs struct {
	records  []record
	excluded map[string]struct{}
	manual   []ledger.ManualTransaction
	skipped  int
}

func (s *ServiceImpl) RecomputeDirty(ctx context.Context) error {
	if !s.tracker.HasWork() {
		return nil
	}
	marks := s.tracker.snapshot()

	budgets, err := s.budgetRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	dirty := make([]budget.Budget, 0, len(budgets))
	for _, b := range budgets {
		if marks.includes(b.ID) {
			dirty = append(dirty, b)
		}
	}
	if len(dirty) == 0 {
		s.tracker.clear(marks)
		return nil
	}

	// The feed fetch comes first: if it fails, nothing is written and the
	// dirty marks stay for the next attempt.
	in, err := s.loadInputs(ctx)
	if err != nil {
		return err
	}

	for _, b := range dirty {
		if err := s.recomputeOne(ctx, b, in); err != nil {
			return err
		}
	}

	s.tracker.clear(marks)
	return nil
}

func (s *ServiceImpl) RecomputeAll(ctx context.Context) error {
	s.tracker.MarkAll()
	return s.RecomputeDirty(ctx)
}

func (s *ServiceImpl) loadInputs(ctx context.Context) (inputs, error) {
	feed, err := s.feed.FetchTransactions(ctx)
	if err != nil {
		return inputs{}, fmt.Errorf("could not fetch remote transactions: %w", err)
	}

	excluded, err := s.exclusionRepo.All(ctx)
	if err != nil {
		return inputs{}, err
	}

	manual, err := s.ledgerRepo.GetAll(ctx)
	if err != nil {
		return inputs{}, err
	}

	in := inputs{excluded: excluded, manual: manual}
	for _, tx := range feed {
		rec, err := parseRecord(tx, s.location)
		if err != nil {
			// Tolerated per-record failure: drop the record, keep going.
			in.skipped++
			log.Debugf("dropping remote transaction: %v", err)
			continue
		}
		in.records = append(in.records, rec)
	}
	if in.skipped > 0 {
		log.Warnf("dropped %d malformed remote transactions during recompute", in.skipped)
	}

	return in, nil
}

// recomputeOne computes and persists one budget's spent amount. Overlapping
// recomputations of the same budget are collapsed by a singleflight keyed on
// the budget id, so a slower run cannot overwrite a fresher result.
func (s *ServiceImpl) recomputeOne(ctx context.Context, b budget.Budget, in inputs) error {
	_, err, _ := s.group.Do(strconv.Itoa(b.ID), func() (any, error) {
		spent := s.spentInWindow(in, b.Window())
		updated, err := s.budgetRepo.UpdateSpent(ctx, b.ID, spent)
		if err != nil {
			return nil, err
		}
		if !updated {
			// Budget deleted while recomputing. Nothing to store.
			log.Debugf("budget %d disappeared during recompute", b.ID)
			return nil, nil
		}
		log.Debugf("budget %d (%s): spent %.2f", b.ID, b.Name, spent)
		return spent, nil
	})
	return err
}

// spentInWindow sums in-window, non-excluded remote amounts in the default
// currency plus in-window manual amounts. Window bounds are inclusive;
// windows of different budgets may overlap, so one transaction can count
// toward several budgets.
func (s *ServiceImpl) spentInWindow(in inputs, window period.Window) float64 {
	var total float64
	for _, rec := range in.records {
		if _, excluded := in.excluded[rec.id]; excluded {
			continue
		}
		if rec.currency != s.currency {
			continue
		}
		if !window.Contains(rec.occurredAt) {
			continue
		}
		total += rec.amount
	}

	// Manual transactions are implicitly in the default currency and have
	// no exclusion mechanism: in-window entries always count.
	for _, transaction := range in.manual {
		if !window.Contains(transaction.OccurredAt) {
			continue
		}
		total += transaction.Amount
	}

	return utils.RoundAmount(total)
}
