package helper

import (
	"fmt"
	"strings"
	"time"
)

// PeriodKind is the calendar granularity of a statistics window.
type PeriodKind int

const (
	PeriodYear PeriodKind = iota + 1
	PeriodMonth
	PeriodDay
)

// Window is a half-open interval [Start, End) computed from a period string.
type Window struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// ParsePeriod accepts exactly "YYYY", "YYYY-MM" or "YYYY-MM-DD".
// Anything else is rejected with ErrInvalidPeriod before any query runs.
func ParsePeriod(s string) (Window, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")

	var layout string
	var kind PeriodKind
	switch len(parts) {
	case 1:
		layout, kind = "2006", PeriodYear
	case 2:
		layout, kind = "2006-01", PeriodMonth
	case 3:
		layout, kind = "2006-01-02", PeriodDay
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	start, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	var end time.Time
	switch kind {
	case PeriodYear:
		end = start.AddDate(1, 0, 0)
	case PeriodMonth:
		end = start.AddDate(0, 1, 0)
	default:
		end = start.AddDate(0, 0, 1)
	}

	return Window{Kind: kind, Start: start, End: end}, nil
}

// YearMonth returns the zero-padded ("YYYY", "MM") pair of a month window,
// matching the string columns on the payment ledger.
func (w Window) YearMonth() (string, string) {
	return w.Start.Format("2006"), w.Start.Format("01")
}
