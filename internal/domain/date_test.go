package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"2024-01-01",
		"2024-02-29", // leap day
		"1999-12-31",
		"2024-07-15",
	} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{
		"2024-13-01", // month out of range
		"2024-02-30", // day out of range
		"2023-02-29", // not a leap year
		"2024-1-03",  // missing zero padding
		"03-01-2024", // wrong field order
		"2024/01/03",
		"2024-01-03T00:00:00Z",
		"",
		"garbage",
	} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, s)
	}
}

func TestWeekStartEnd(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	wed, err := ParseDate("2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", wed.WeekStart().String())
	assert.Equal(t, "2024-01-07", wed.WeekEnd().String())

	// Monday and Sunday bracket themselves.
	mon := NewDate(2024, time.January, 1)
	assert.Equal(t, "2024-01-01", mon.WeekStart().String())
	sun := NewDate(2024, time.January, 7)
	assert.Equal(t, "2024-01-01", sun.WeekStart().String())
	assert.Equal(t, "2024-01-07", sun.WeekEnd().String())
}

func TestWeekBracketing(t *testing.T) {
	// weekStart(d) <= d <= weekEnd(d), span always 6 days.
	d := NewDate(2023, time.November, 1)
	for i := 0; i < 120; i++ {
		start, end := d.WeekStart(), d.WeekEnd()
		assert.False(t, d.Before(start), d.String())
		assert.False(t, d.After(end), d.String())
		assert.Equal(t, start.AddDays(6), end, d.String())
		assert.Equal(t, 0, start.DayOfWeek(), d.String())
		assert.Equal(t, 6, end.DayOfWeek(), d.String())
		d = d.AddDays(1)
	}
}

func TestAddDays_MonthAndYearRollover(t *testing.T) {
	assert.Equal(t, "2024-01-01", NewDate(2023, time.December, 31).AddDays(1).String())
	assert.Equal(t, "2023-12-31", NewDate(2024, time.January, 1).AddDays(-1).String())
	assert.Equal(t, "2024-03-01", NewDate(2024, time.February, 29).AddDays(1).String())
	assert.Equal(t, "2024-01-15", NewDate(2024, time.January, 1).AddWeeks(2).String())
}

func TestDayOfWeek_MondayFirst(t *testing.T) {
	// 2024-01-01 is a Monday.
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, NewDate(2024, time.January, 1+i).DayOfWeek())
	}
}

func TestMonthNeighbors(t *testing.T) {
	year, month := PreviousMonth(2024, time.January)
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.December, month)

	year, month = NextMonth(2023, time.December)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.January, month)

	year, month = NextMonth(2024, time.June)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.July, month)
}

func TestFirstAndLastOfMonth(t *testing.T) {
	d := NewDate(2024, time.February, 15)
	assert.Equal(t, "2024-02-01", d.FirstOfMonth().String())
	assert.Equal(t, "2024-02-29", d.LastOfMonth().String())

	d = NewDate(2023, time.February, 1)
	assert.Equal(t, "2023-02-28", d.LastOfMonth().String())
}

func TestDateOf_DropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+12", 12*3600)
	// 23:30 on the 5th in UTC+12; the calendar day the caller sees is the 5th.
	instant := time.Date(2024, time.March, 5, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-05", DateOf(instant).String())
}

func TestIsToday(t *testing.T) {
	assert.True(t, Today().IsToday())
	assert.False(t, Today().AddDays(1).IsToday())
	assert.False(t, Today().AddDays(-1).IsToday())
}

func TestCalendarDate_JSON(t *testing.T) {
	d := NewDate(2024, time.January, 3)
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-03"`, string(data))

	var parsed CalendarDate
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.True(t, parsed.Equal(d))

	assert.ErrorIs(t, parsed.UnmarshalJSON([]byte(`"2024-13-01"`)), ErrInvalidDateFormat)
	assert.ErrorIs(t, parsed.UnmarshalJSON([]byte(`42`)), ErrInvalidDateFormat)
}
