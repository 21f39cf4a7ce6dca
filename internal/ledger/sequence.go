package ledger

import (
	"fmt"
	"time"
)

// DayCode returns the ticket letter for a weekday. Wednesday uses W instead
// of the Spanish initial to avoid colliding with Tuesday's M.
func DayCode(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return "L"
	case time.Tuesday:
		return "M"
	case time.Wednesday:
		return "W"
	case time.Thursday:
		return "J"
	case time.Friday:
		return "V"
	case time.Saturday:
		return "S"
	case time.Sunday:
		return "D"
	}
	return "X"
}

// DayKey is the calendar-day key the daily counter is scoped to.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatNumber renders an order number: day letter plus zero-padded counter,
// e.g. FormatNumber(monday, 1) == "L001".
func FormatNumber(t time.Time, counter int) string {
	return fmt.Sprintf("%s%03d", DayCode(t), counter)
}
