package metrics

import (
	"time"

	"github.com/weightlens/weightlens/internal/utils"
)

// ParseDay parses a YYYY-MM-DD date key into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(utils.DayFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Midnight(t), nil
}

// FormatDay renders t as its YYYY-MM-DD date key.
func FormatDay(t time.Time) string {
	return t.Format(utils.DayFormat)
}

// Midnight normalizes t to midnight UTC so dates compare as pure days.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b. Both are
// expected to be midnight-normalized; the result is negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// WeekStart returns the Monday of the week containing t, at midnight.
// AddDate handles month and year boundaries safely.
func WeekStart(t time.Time) time.Time {
	t = Midnight(t)
	weekday := int(t.Weekday()) // 0 = Sunday
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
