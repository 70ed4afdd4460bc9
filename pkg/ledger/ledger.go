package ledger

import (
	"errors"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("manual transaction not found")
	ErrEmptyDescription    = errors.New("description must not be empty")
	ErrInvalidTimestamp    = errors.New("unparseable date or time")
)

// ManualTransaction is a locally authored spend record. It is always in the
// configured default currency and cannot be excluded from totals.
type ManualTransaction struct {
	ID          int
	Amount      float64
	OccurredAt  time.Time
	Description string
}
