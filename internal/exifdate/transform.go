package exifdate

import (
	"errors"
	"fmt"
	"time"
)

// Year bounds accepted for a substitution.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ErrDayOutOfRange reports a calendar overflow: the source day does not
// exist in the target year/month (e.g. Feb 29 in a non-leap year).
var ErrDayOutOfRange = errors.New("day does not exist in target month")

// Substitution is a target year plus an optional target month. The day and
// time-of-day of the source timestamp are always carried over unchanged.
type Substitution struct {
	Year  int
	Month int // 0 keeps the source month
}

// NewSubstitution validates the target year and month. Month 0 means "keep
// the source month".
func NewSubstitution(year, month int) (Substitution, error) {
	if year < MinYear || year > MaxYear {
		return Substitution{}, fmt.Errorf("year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	if month != 0 && (month < 1 || month > 12) {
		return Substitution{}, fmt.Errorf("month %d out of range [1, 12]", month)
	}
	return Substitution{Year: year, Month: month}, nil
}

// Apply computes a new timestamp with the year (and month, if set) replaced
// and day, hour, minute, second copied unchanged from t. Rather than letting
// the calendar normalize an impossible date, it fails with ErrDayOutOfRange.
func (s Substitution) Apply(t time.Time) (time.Time, error) {
	month := t.Month()
	if s.Month != 0 {
		month = time.Month(s.Month)
	}

	out := time.Date(s.Year, month, t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if out.Day() != t.Day() || out.Month() != month {
		return time.Time{}, fmt.Errorf("day %d in %04d-%02d: %w", t.Day(), s.Year, month, ErrDayOutOfRange)
	}
	return out, nil
}
