package helper

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriodYear(t *testing.T) {
	w, err := ParsePeriod("2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Kind != PeriodYear {
		t.Errorf("kind: got %v, want PeriodYear", w.Kind)
	}
	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantEnd) {
		t.Errorf("window: got [%v, %v), want [%v, %v)", w.Start, w.End, wantStart, wantEnd)
	}
}

func TestParsePeriodMonth(t *testing.T) {
	w, err := ParsePeriod("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Kind != PeriodMonth {
		t.Errorf("kind: got %v, want PeriodMonth", w.Kind)
	}
	// Leap February: the window still ends on March 1.
	wantEnd := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !w.End.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v", w.End, wantEnd)
	}

	year, month := w.YearMonth()
	if year != "2024" || month != "02" {
		t.Errorf("YearMonth: got (%q, %q), want (\"2024\", \"02\")", year, month)
	}
}

func TestParsePeriodDay(t *testing.T) {
	w, err := ParsePeriod("2024-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Kind != PeriodDay {
		t.Errorf("kind: got %v, want PeriodDay", w.Kind)
	}
	wantEnd := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !w.End.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v (day windows roll over year ends)", w.End, wantEnd)
	}
}

func TestParsePeriodRejectsMalformedInput(t *testing.T) {
	bad := []string{
		"",
		"24",          // two-digit year
		"2024-2",      // month must be zero-padded
		"2024-13",     // no such month
		"2024-02-30",  // no such day
		"02-2024",     // wrong field order
		"2024/02",     // wrong separator
		"2024-02-01-05",
		"yesterday",
	}
	for _, s := range bad {
		if _, err := ParsePeriod(s); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q): got %v, want ErrInvalidPeriod", s, err)
		}
	}
}

func TestParsePeriodTrimsWhitespace(t *testing.T) {
	w, err := ParsePeriod("  2024-05  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Kind != PeriodMonth {
		t.Errorf("kind: got %v, want PeriodMonth", w.Kind)
	}
}
