package ledger

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestDayCode(t *testing.T) {
	tests := []struct {
		day  time.Time
		want string
	}{
		{date(2026, time.August, 24), "L"}, // Monday
		{date(2026, time.August, 25), "M"}, // Tuesday
		{date(2026, time.August, 26), "W"}, // Wednesday
		{date(2026, time.August, 27), "J"}, // Thursday
		{date(2026, time.August, 28), "V"}, // Friday
		{date(2026, time.August, 29), "S"}, // Saturday
		{date(2026, time.August, 30), "D"}, // Sunday
	}
	for _, tt := range tests {
		if got := DayCode(tt.day); got != tt.want {
			t.Errorf("DayCode(%s) = %q, want %q", tt.day.Weekday(), got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	monday := date(2026, time.August, 24)

	if got := FormatNumber(monday, 1); got != "L001" {
		t.Errorf("FormatNumber(monday, 1) = %q, want L001", got)
	}
	if got := FormatNumber(monday, 42); got != "L042" {
		t.Errorf("FormatNumber(monday, 42) = %q, want L042", got)
	}
	// The counter does not wrap; a busy day just widens the number.
	if got := FormatNumber(monday, 1000); got != "L1000" {
		t.Errorf("FormatNumber(monday, 1000) = %q, want L1000", got)
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey(date(2026, time.August, 24)); got != "2026-08-24" {
		t.Errorf("DayKey = %q, want 2026-08-24", got)
	}
}
