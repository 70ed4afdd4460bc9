package budget

import (
	"context"

	"github.com/centavo/centavo/pkg/period"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, budget Budget) (int, error) {
	s.nextId++
	budget.ID = s.nextId
	s.data[budget.ID] = budget
	return budget.ID, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for id := 1; id <= s.nextId; id++ {
		if budget, ok := s.data[id]; ok {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, budgetId int) (Budget, error) {
	budget, ok := s.data[budgetId]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) FindByNameAndWindow(ctx context.Context, name string, window period.Window) (Budget, error) {
	for _, budget := range s.data {
		if budget.Name == name && budget.WindowStart.Equal(window.Start) && budget.WindowEnd.Equal(window.End) {
			return budget, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (s *StubBudgetRepo) Delete(ctx context.Context, budgetId int) (bool, error) {
	if _, ok := s.data[budgetId]; !ok {
		return false, nil
	}
	delete(s.data, budgetId)
	return true, nil
}

func (s *StubBudgetRepo) UpdateSpent(ctx context.Context, budgetId int, spent float64) (bool, error) {
	budget, ok := s.data[budgetId]
	if !ok {
		return false, nil
	}
	budget.Spent = spent
	s.data[budgetId] = budget
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[int]Budget{}
	s.nextId = 0
}
