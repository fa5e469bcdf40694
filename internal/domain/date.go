package domain

import (
	"errors"
	"time"
)

// DateLayout is the canonical wire format for calendar dates: YYYY-MM-DD,
// no time-of-day, no zone.
const DateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// CalendarDate is a timezone-less (year, month, day) value. Equality and
// ordering are defined on the date triple only, never on wall-clock instants.
type CalendarDate struct {
	t time.Time // always midnight UTC
}

// NewDate builds a CalendarDate from its components.
func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar day t falls on in its own location, dropping the
// time-of-day. No timezone conversion happens: the day the caller sees is the
// day stored.
func DateOf(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current calendar date in the local clock's location.
func Today() CalendarDate {
	return DateOf(time.Now())
}

// ParseDate parses a canonical YYYY-MM-DD string. Out-of-range components
// ("2024-13-01", "2024-02-30") are rejected, not normalized.
func ParseDate(s string) (CalendarDate, error) {
	if len(s) != len(DateLayout) {
		return CalendarDate{}, ErrInvalidDateFormat
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, ErrInvalidDateFormat
	}
	return DateOf(t), nil
}

func (d CalendarDate) Year() int         { return d.t.Year() }
func (d CalendarDate) Month() time.Month { return d.t.Month() }
func (d CalendarDate) Day() int          { return d.t.Day() }
func (d CalendarDate) IsZero() bool      { return d.t.IsZero() }

// String formats the date in the canonical wire format. Round-trips exactly
// with ParseDate.
func (d CalendarDate) String() string {
	return d.t.Format(DateLayout)
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.t.Equal(other.t)
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.t.Before(other.t)
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.t.After(other.t)
}

// IsToday reports whether d is the current calendar date, independent of
// time-of-day.
func (d CalendarDate) IsToday() bool {
	return d.Equal(Today())
}

// AddDays returns the date n days after d (before, for negative n). Month and
// year boundaries roll over.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return CalendarDate{t: d.t.AddDate(0, 0, n)}
}

func (d CalendarDate) AddWeeks(n int) CalendarDate {
	return d.AddDays(7 * n)
}

// DayOfWeek returns the weekday index with Monday = 0 through Sunday = 6.
// Weeks start Monday regardless of locale; this is a fixed business rule,
// not a platform setting.
func (d CalendarDate) DayOfWeek() int {
	return (int(d.t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing d.
func (d CalendarDate) WeekStart() CalendarDate {
	return d.AddDays(-d.DayOfWeek())
}

// WeekEnd returns the Sunday of the week containing d.
func (d CalendarDate) WeekEnd() CalendarDate {
	return d.WeekStart().AddDays(6)
}

func (d CalendarDate) FirstOfMonth() CalendarDate {
	return NewDate(d.Year(), d.Month(), 1)
}

func (d CalendarDate) LastOfMonth() CalendarDate {
	return CalendarDate{t: d.FirstOfMonth().t.AddDate(0, 1, -1)}
}

// MarshalJSON emits the canonical wire format.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the canonical wire format.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidDateFormat
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PreviousMonth returns the (year, month) preceding the given one, rolling
// January back into December of the previous year.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the (year, month) following the given one, rolling
// December into January of the next year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
