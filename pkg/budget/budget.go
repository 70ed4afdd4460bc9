package budget

import (
	"errors"
	"time"

	"github.com/centavo/centavo/pkg/period"
)

var (
	ErrDuplicateBudget     = errors.New("a budget with this name already exists for the window")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")
	ErrEmptyName           = errors.New("budget name must not be empty")
)

// Budget is a named target spend amount bound to one period window.
// Spent is derived: only the spending aggregator writes it.
type Budget struct {
	ID           int
	Name         string
	TargetAmount float64
	Period       period.Kind
	WindowStart  time.Time
	WindowEnd    time.Time
	Spent        float64
}

// Window returns the budget's period window.
func (b Budget) Window() period.Window {
	return period.Window{Start: b.WindowStart, End: b.WindowEnd}
}
