package period

import (
	"errors"
	"fmt"
	"time"
)

// Kind determines how a budget window is sized and anchored.
type Kind string

const (
	Daily   Kind = "daily"
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
)

var ErrInvalidPeriod = errors.New("invalid period kind")

// Kinds lists all supported period kinds.
var Kinds = []Kind{Daily, Weekly, Monthly}

// endMargin keeps window ends at 23:59:59.999999 so that consecutive windows
// of the same kind tile exactly: next.Start == prev.End + endMargin.
const endMargin = time.Microsecond

// Window is a closed interval of time covering one instance of a period.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, both bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ParseKind validates a period kind coming from the outside.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Daily, Weekly, Monthly:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// Resolve computes the window of the given kind containing now. The window is
// anchored in now's location, so the caller decides the timezone by supplying
// now already converted.
func Resolve(kind Kind, now time.Time) (Window, error) {
	loc := now.Location()
	year, month, day := now.Date()

	switch kind {
	case Daily:
		start := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 1).Add(-endMargin)}, nil
	case Weekly:
		// Monday is the first day of the week; today counts if it is Monday.
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		start := time.Date(year, month, day-daysSinceMonday, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 7).Add(-endMargin)}, nil
	case Monthly:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-endMargin)}, nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, kind)
	}
}
