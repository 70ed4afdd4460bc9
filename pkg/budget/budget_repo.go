package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centavo/centavo/pkg/period"
	log "github.com/sirupsen/logrus"
)

// Instants are stored as RFC 3339 strings so that the same repository code
// works against both sqlite and postgres.
const timeFormat = time.RFC3339Nano

type BudgetRepo interface {
	// Store stores a new Budget and returns its assigned id.
	Store(ctx context.Context, budget Budget) (int, error)
	GetAll(ctx context.Context) ([]Budget, error)
	Get(ctx context.Context, budgetId int) (Budget, error)
	// FindByNameAndWindow returns ErrBudgetNotFound when no budget matches.
	FindByNameAndWindow(ctx context.Context, name string, window period.Window) (Budget, error)
	Delete(ctx context.Context, budgetId int) (bool, error)
	// UpdateSpent persists the derived spent amount for a budget.
	UpdateSpent(ctx context.Context, budgetId int, spent float64) (bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (bi *BudgetRepoImpl) Store(ctx context.Context, budget Budget) (int, error) {
	query := `INSERT INTO budget (
                    name,
                    target_amount,
                    period_kind,
                    window_start,
                    window_end,
                    spent
				) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := bi.db.QueryRowContext(ctx, query,
		budget.Name,
		budget.TargetAmount,
		string(budget.Period),
		budget.WindowStart.Format(timeFormat),
		budget.WindowEnd.Format(timeFormat),
		budget.Spent,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

func (bi *BudgetRepoImpl) GetAll(ctx context.Context) ([]Budget, error) {
	query := `SELECT id, name, target_amount, period_kind, window_start, window_end, spent
				FROM budget ORDER BY id`
	rows, err := bi.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (bi *BudgetRepoImpl) Get(ctx context.Context, budgetId int) (Budget, error) {
	query := `SELECT id, name, target_amount, period_kind, window_start, window_end, spent
				FROM budget WHERE id = $1`
	row := bi.db.QueryRowContext(ctx, query, budgetId)
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	}
	if err != nil {
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (bi *BudgetRepoImpl) FindByNameAndWindow(ctx context.Context, name string, window period.Window) (Budget, error) {
	query := `SELECT id, name, target_amount, period_kind, window_start, window_end, spent
				FROM budget WHERE name = $1 AND window_start = $2 AND window_end = $3`
	row := bi.db.QueryRowContext(ctx, query, name, window.Start.Format(timeFormat), window.End.Format(timeFormat))
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	}
	if err != nil {
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (bi *BudgetRepoImpl) Delete(ctx context.Context, budgetId int) (bool, error) {
	query := "DELETE FROM budget WHERE id = $1"
	result, err := bi.db.ExecContext(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (bi *BudgetRepoImpl) UpdateSpent(ctx context.Context, budgetId int, spent float64) (bool, error) {
	query := "UPDATE budget SET spent = $1 WHERE id = $2"
	result, err := bi.db.ExecContext(ctx, query, spent, budgetId)
	if err != nil {
		err := fmt.Errorf("could not update spent amount: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (Budget, error) {
	var budget Budget
	var periodKind, windowStart, windowEnd string
	if err := row.Scan(
		&budget.ID,
		&budget.Name,
		&budget.TargetAmount,
		&periodKind,
		&windowStart,
		&windowEnd,
		&budget.Spent,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Budget{}, err
		}
		return Budget{}, fmt.Errorf("could not scan budget: %w", err)
	}
	budget.Period = period.Kind(periodKind)

	start, err := time.Parse(timeFormat, windowStart)
	if err != nil {
		return Budget{}, fmt.Errorf("could not parse window start: %w", err)
	}
	end, err := time.Parse(timeFormat, windowEnd)
	if err != nil {
		return Budget{}, fmt.Errorf("could not parse window end: %w", err)
	}
	budget.WindowStart = start
	budget.WindowEnd = end

	return budget, nil
}
