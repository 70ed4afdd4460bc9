package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	mexicoCity, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	tests := []struct {
		name      string
		kind      Kind
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "daily window covers the current calendar day",
			kind:      Daily,
			now:       time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 6, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "weekly window anchored on a Wednesday starts the preceding Monday",
			kind:      Weekly,
			now:       time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),   // Monday
			wantEnd:   time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "weekly window anchored on a Monday starts the same day",
			kind:      Weekly,
			now:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "weekly window anchored on a Sunday reaches back six days",
			kind:      Weekly,
			now:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "monthly window anchored on Jan 31 ends the same day",
			kind:      Monthly,
			now:       time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 31, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "monthly window handles leap February",
			kind:      Monthly,
			now:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "daily window respects the now location",
			kind:      Daily,
			now:       time.Date(2024, 3, 6, 23, 30, 0, 0, mexicoCity),
			wantStart: time.Date(2024, 3, 6, 0, 0, 0, 0, mexicoCity),
			wantEnd:   time.Date(2024, 3, 6, 23, 59, 59, 999999000, mexicoCity),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := Resolve(tt.kind, tt.now)

			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(window.Start), "start: want %v, got %v", tt.wantStart, window.Start)
			assert.True(t, tt.wantEnd.Equal(window.End), "end: want %v, got %v", tt.wantEnd, window.End)
		})
	}
}

func TestResolve_InvalidKind(t *testing.T) {
	_, err := Resolve(Kind("fortnightly"), time.Now())

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestResolve_ConsecutiveWindowsTile(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
			current, err := Resolve(kind, now)
			require.NoError(t, err)

			next, err := Resolve(kind, current.End.Add(time.Microsecond))
			require.NoError(t, err)

			// No gap and no overlap between consecutive windows.
			assert.True(t, next.Start.Equal(current.End.Add(time.Microsecond)))
			assert.True(t, current.Contains(current.End))
			assert.False(t, current.Contains(next.Start))
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		parsed, err := ParseKind(string(kind))
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseKind("yearly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestWindow_Contains(t *testing.T) {
	window := Window{
		Start: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC),
	}

	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.True(t, window.Contains(time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(window.Start.Add(-time.Microsecond)))
	assert.False(t, window.Contains(window.End.Add(time.Microsecond)))
}
