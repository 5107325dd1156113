package engine

import (
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date (the engine never needs finer resolution)
// =============================================================================

// Date is a calendar day. The zero value is "no date".
// All constructors normalize to midnight UTC so Date values are comparable
// and usable as map keys.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// FromTime truncates an arbitrary timestamp to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.Time.After(other.Time) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Time.Before(other.Time) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return FromTime(d.Time.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return FromTime(d.Time.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return FromTime(d.Time.AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the number of whole days from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// DaysInMonth returns the length of a calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}

func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

// MirrorToYear maps a date onto the same month/day in another year.
// Feb 29 is clamped to Feb 28 when the target year is not a leap year.
func (d Date) MirrorToYear(year int) Date {
	day := d.Day()
	if d.Month() == time.February && day == 29 && DaysInMonth(year, time.February) == 28 {
		day = 28
	}
	return NewDate(year, d.Month(), day)
}
