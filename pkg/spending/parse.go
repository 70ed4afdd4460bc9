package spending

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/wise"
)

// ErrMalformedRecord marks per-record parse failures. These are tolerated:
// the aggregator drops the record, counts it, and moves on.
var ErrMalformedRecord = errors.New("malformed transaction record")

// record is a remote transaction after parsing: amount split from currency,
// timestamp resolved in the configured location.
type record struct {
	id         string
	amount     float64
	currency   string
	occurredAt time.Time
	title      string
}

// Raw feed timestamps come with or without fractional seconds and with an
// optional trailing Z; naive values are interpreted in the configured
// location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseRecord(tx wise.Transaction, location *time.Location) (record, error) {
	amount, currency, err := parseAmount(tx.Amount)
	if err != nil {
		return record{}, err
	}

	occurredAt, err := parseTimestamp(tx.CreatedOn, location)
	if err != nil {
		return record{}, err
	}

	return record{
		id:         tx.ID,
		amount:     amount,
		currency:   currency,
		occurredAt: occurredAt,
		title:      tx.Title,
	}, nil
}

// parseAmount splits a combined "<number> <currency-code>" field, strips
// thousands separators, and rounds to two decimals.
func parseAmount(raw string) (float64, string, error) {
	parts := strings.Fields(raw)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("%w: amount %q", ErrMalformedRecord, raw)
	}

	number := strings.ReplaceAll(parts[0], ",", "")
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: amount %q", ErrMalformedRecord, raw)
	}

	return utils.RoundAmount(value), parts[1], nil
}

func parseTimestamp(raw string, location *time.Location) (time.Time, error) {
	naive := strings.TrimSuffix(raw, "Z")
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, naive, location); err == nil {
			return t, nil
		}
	}
	// Fall back to an explicit offset, converted into the configured location.
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(location), nil
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrMalformedRecord, raw)
}
