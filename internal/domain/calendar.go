package domain

import "time"

// WorkoutStatus is the display status of a calendar cell.
type WorkoutStatus string

const (
	StatusNone      WorkoutStatus = "none"      // no workout on this date
	StatusScheduled WorkoutStatus = "scheduled" // workout exists, not done yet
	StatusCompleted WorkoutStatus = "completed"
	StatusRest      WorkoutStatus = "rest" // a workout record with zero exercises is a designated rest day
)

// ResolveStatus derives the display status for a calendar day. The check
// order is the tie-break: completion outranks the rest-day check, so a
// completed workout with zero exercises resolves to StatusCompleted.
func ResolveStatus(day CalendarDay) WorkoutStatus {
	switch {
	case day.Workout == nil:
		return StatusNone
	case day.Workout.IsCompleted:
		return StatusCompleted
	case day.Workout.ExerciseCount == 0:
		return StatusRest
	default:
		return StatusScheduled
	}
}

// CalendarDay is one cell of a week or month grid. Built fresh on every grid
// build, never mutated in place.
type CalendarDay struct {
	Date            CalendarDate
	DayOfWeek       int // 0 = Monday .. 6 = Sunday
	IsToday         bool
	IsCurrentPeriod bool
	Workout         *Workout
}

// CalendarWeek is a complete Monday-to-Sunday row. Days always holds exactly
// 7 entries and Days[0] is the Monday.
type CalendarWeek struct {
	WeekIndex int
	Days      [7]CalendarDay
	StartDate CalendarDate
	EndDate   CalendarDate
}

// CalendarMonth is the full grid for one month: 4 to 6 complete weeks, with
// leading and trailing days spilling into the adjacent months. IsCurrentPeriod
// on each day marks membership in the requested month.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Weeks []CalendarWeek
}
