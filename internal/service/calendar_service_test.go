package service

import (
	"context"
	"testing"
	"time"

	"fitcal/fitness-calendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCalendarService(today domain.CalendarDate) *calendarService {
	svc := NewCalendarService(nil).(*calendarService)
	svc.today = func() domain.CalendarDate { return today }
	return svc
}

func TestBuildWeek(t *testing.T) {
	today := domain.NewDate(2024, time.January, 3) // Wednesday
	svc := newTestCalendarService(today)

	workouts := map[string]domain.Workout{
		"2024-01-02": {Title: "Upper A", ExerciseCount: 4},
		"2024-01-07": {Title: "Rest", ExerciseCount: 0},
	}

	week := svc.BuildWeek(today, workouts)

	assert.Equal(t, 0, week.WeekIndex)
	assert.Equal(t, "2024-01-01", week.StartDate.String())
	assert.Equal(t, "2024-01-07", week.EndDate.String())

	for i, day := range week.Days {
		assert.Equal(t, i, day.DayOfWeek)
		assert.True(t, day.IsCurrentPeriod)
		assert.Equal(t, week.StartDate.AddDays(i), day.Date)
	}

	assert.True(t, week.Days[2].IsToday)
	assert.False(t, week.Days[1].IsToday)

	require.NotNil(t, week.Days[1].Workout)
	assert.Equal(t, "Upper A", week.Days[1].Workout.Title)
	require.NotNil(t, week.Days[6].Workout)
	assert.Equal(t, domain.StatusRest, domain.ResolveStatus(week.Days[6]))
	assert.Nil(t, week.Days[0].Workout)
}

func TestBuildMonth_February2024(t *testing.T) {
	svc := newTestCalendarService(domain.NewDate(2024, time.June, 1))

	month := svc.BuildMonth(2024, time.February, nil)

	assert.Equal(t, 2024, month.Year)
	assert.Equal(t, time.February, month.Month)
	// Feb 2024 spans 5 Monday-first weeks: Jan 29 .. Mar 3.
	require.Len(t, month.Weeks, 5)
	assert.Equal(t, "2024-01-29", month.Weeks[0].StartDate.String())
	assert.Equal(t, "2024-03-03", month.Weeks[4].EndDate.String())

	// First week starts with January spill days.
	assert.False(t, month.Weeks[0].Days[0].IsCurrentPeriod)
	assert.Equal(t, time.January, month.Weeks[0].Days[0].Date.Month())

	// Leap year: 29 days belong to the requested month.
	currentDays := 0
	for _, week := range month.Weeks {
		for _, day := range week.Days {
			if day.IsCurrentPeriod {
				currentDays++
			}
		}
	}
	assert.Equal(t, 29, currentDays)
}

func TestBuildMonth_GridShape(t *testing.T) {
	svc := newTestCalendarService(domain.NewDate(2024, time.June, 1))

	cases := []struct {
		year  int
		month time.Month
		weeks int
	}{
		{2021, time.February, 4}, // 28 days starting on a Monday
		{2024, time.June, 5},
		{2026, time.August, 6}, // starts Saturday, ends Monday
	}

	for _, tc := range cases {
		month := svc.BuildMonth(tc.year, tc.month, nil)
		assert.Len(t, month.Weeks, tc.weeks, "%d-%d", tc.year, tc.month)

		// Dates are strictly increasing with no gaps across the whole grid,
		// and every week is a complete Monday-to-Sunday row.
		expected := month.Weeks[0].StartDate
		for i, week := range month.Weeks {
			assert.Equal(t, i, week.WeekIndex)
			assert.Equal(t, 0, week.StartDate.DayOfWeek())
			assert.Equal(t, week.StartDate.AddDays(6), week.EndDate)
			for _, day := range week.Days {
				assert.Equal(t, expected, day.Date)
				expected = expected.AddDays(1)
			}
		}
	}
}

func TestVisibleRange(t *testing.T) {
	svc := newTestCalendarService(domain.NewDate(2024, time.June, 1))

	weekState := domain.NewNavigationState(domain.NewDate(2024, time.January, 17), domain.ViewWeek)
	weekRange := svc.VisibleRange(weekState)
	assert.Equal(t, "2024-01-15", weekRange.Start.String())
	assert.Equal(t, "2024-01-21", weekRange.End.String())
	assert.NotEmpty(t, weekRange.Tag)
	assert.True(t, weekRange.Matches(weekState))

	monthState := weekState.SetViewMode(domain.ViewMonth)
	monthRange := svc.VisibleRange(monthState)
	assert.Equal(t, "2024-01-01", monthRange.Start.String())
	assert.Equal(t, "2024-02-04", monthRange.End.String())

	// A response tagged for the old state no longer matches after navigating.
	assert.False(t, weekRange.Matches(monthState))
	assert.False(t, monthRange.Matches(monthState.GoToNext()))

	// Tags are unique per request.
	assert.NotEqual(t, weekRange.Tag, svc.VisibleRange(weekState).Tag)
}

func TestGetWeek_FetchesInclusiveRange(t *testing.T) {
	repo := newFakeWorkoutRepo()
	userID := primitive.NewObjectID()
	seedWorkout(t, repo, userID, "2024-01-01", "Upper A")
	seedWorkout(t, repo, userID, "2024-01-07", "Lower A")
	seedWorkout(t, repo, userID, "2024-01-08", "Outside")

	svc := NewCalendarService(repo).(*calendarService)
	svc.today = func() domain.CalendarDate { return domain.NewDate(2024, time.January, 3) }

	week, err := svc.GetWeek(context.Background(), userID, domain.NewDate(2024, time.January, 3))
	require.NoError(t, err)

	require.NotNil(t, week.Days[0].Workout)
	assert.Equal(t, "Upper A", week.Days[0].Workout.Title)
	require.NotNil(t, week.Days[6].Workout)
	assert.Equal(t, "Lower A", week.Days[6].Workout.Title)
	for _, day := range week.Days[1:6] {
		assert.Nil(t, day.Workout)
	}
}

func TestGetMonth_IncludesSpillDays(t *testing.T) {
	repo := newFakeWorkoutRepo()
	userID := primitive.NewObjectID()
	// January spill day visible on the February grid.
	seedWorkout(t, repo, userID, "2024-01-29", "Spill")

	svc := NewCalendarService(repo).(*calendarService)
	svc.today = func() domain.CalendarDate { return domain.NewDate(2024, time.June, 1) }

	month, err := svc.GetMonth(context.Background(), userID, 2024, time.February)
	require.NoError(t, err)

	require.NotNil(t, month.Weeks[0].Days[0].Workout)
	assert.Equal(t, "Spill", month.Weeks[0].Days[0].Workout.Title)
	assert.False(t, month.Weeks[0].Days[0].IsCurrentPeriod)
}
