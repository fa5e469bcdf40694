package service

import (
	"context"
	"fmt"
	"time"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RangeRequest identifies one calendar range fetch. The Tag plus the
// originating navigation state let the display layer discard a response that
// arrives after the user has already navigated away (last-navigation-wins):
// a response whose request no longer Matches the current state is stale.
type RangeRequest struct {
	Tag   string                 `json:"tag"`
	State domain.NavigationState `json:"-"`
	Start domain.CalendarDate    `json:"start"`
	End   domain.CalendarDate    `json:"end"`
}

// Matches reports whether the request was issued for the given navigation
// state.
func (r RangeRequest) Matches(state domain.NavigationState) bool {
	return r.State.Equal(state)
}

// --- Service Interface ---

type CalendarService interface {
	// BuildWeek produces the 7 days bracketing anchor (Monday..Sunday),
	// attaching workouts by date. Pure: no I/O, fresh values every call.
	BuildWeek(anchor domain.CalendarDate, workouts map[string]domain.Workout) domain.CalendarWeek
	// BuildMonth produces the complete grid for a month: every week has 7
	// days even where it spills into the adjacent month. Pure.
	BuildMonth(year int, month time.Month, workouts map[string]domain.Workout) domain.CalendarMonth

	// VisibleRange computes the inclusive fetch range for a navigation state
	// and tags it for stale-response discarding.
	VisibleRange(state domain.NavigationState) RangeRequest

	GetWeek(ctx context.Context, userID primitive.ObjectID, anchor domain.CalendarDate) (*domain.CalendarWeek, error)
	GetMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) (*domain.CalendarMonth, error)
}

// --- Service Implementation ---

type calendarService struct {
	workoutRepo repository.WorkoutRepository
	today       func() domain.CalendarDate
}

// NewCalendarService creates a new instance of calendarService.
func NewCalendarService(workoutRepo repository.WorkoutRepository) CalendarService {
	return &calendarService{
		workoutRepo: workoutRepo,
		today:       domain.Today,
	}
}

func (s *calendarService) buildDay(date, today domain.CalendarDate, isCurrentPeriod bool, workouts map[string]domain.Workout) domain.CalendarDay {
	day := domain.CalendarDay{
		Date:            date,
		DayOfWeek:       date.DayOfWeek(),
		IsToday:         date.Equal(today),
		IsCurrentPeriod: isCurrentPeriod,
	}
	if w, ok := workouts[date.String()]; ok {
		workout := w
		day.Workout = &workout
	}
	return day
}

// BuildWeek produces the week containing anchor. Every day is marked as part
// of the current period, since a week view has no out-of-period padding.
func (s *calendarService) BuildWeek(anchor domain.CalendarDate, workouts map[string]domain.Workout) domain.CalendarWeek {
	start := anchor.WeekStart()
	today := s.today()

	week := domain.CalendarWeek{
		WeekIndex: 0,
		StartDate: start,
		EndDate:   start.AddDays(6),
	}
	for i := 0; i < 7; i++ {
		week.Days[i] = s.buildDay(start.AddDays(i), today, true, workouts)
	}
	return week
}

// BuildMonth walks day-by-day from the Monday bracketing the 1st to the
// Sunday bracketing the last day, grouping into complete 7-day weeks. The
// result always holds 4, 5, or 6 weeks, never a partial one.
func (s *calendarService) BuildMonth(year int, month time.Month, workouts map[string]domain.Workout) domain.CalendarMonth {
	firstOfMonth := domain.NewDate(year, month, 1)
	calendarStart := firstOfMonth.WeekStart()
	calendarEnd := firstOfMonth.LastOfMonth().WeekEnd()
	today := s.today()

	monthGrid := domain.CalendarMonth{Year: year, Month: month}

	weekIndex := 0
	for weekStart := calendarStart; !weekStart.After(calendarEnd); weekStart = weekStart.AddWeeks(1) {
		week := domain.CalendarWeek{
			WeekIndex: weekIndex,
			StartDate: weekStart,
			EndDate:   weekStart.AddDays(6),
		}
		for i := 0; i < 7; i++ {
			date := weekStart.AddDays(i)
			inMonth := date.Month() == month && date.Year() == year
			week.Days[i] = s.buildDay(date, today, inMonth, workouts)
		}
		monthGrid.Weeks = append(monthGrid.Weeks, week)
		weekIndex++
	}
	return monthGrid
}

// VisibleRange computes the inclusive date range a navigation state displays
// and tags the request so a late response can be matched against the state
// that asked for it.
func (s *calendarService) VisibleRange(state domain.NavigationState) RangeRequest {
	req := RangeRequest{
		Tag:   uuid.NewString(),
		State: state,
	}
	switch state.ViewMode {
	case domain.ViewMonth:
		first := state.ReferenceDate.FirstOfMonth()
		req.Start = first.WeekStart()
		req.End = first.LastOfMonth().WeekEnd()
	default:
		req.Start = state.ReferenceDate.WeekStart()
		req.End = req.Start.AddDays(6)
	}
	return req
}

// GetWeek fetches the week's workouts and builds the grid. The grid is built
// strictly after the fetch resolves, so it never mixes data from two fetches.
func (s *calendarService) GetWeek(ctx context.Context, userID primitive.ObjectID, anchor domain.CalendarDate) (*domain.CalendarWeek, error) {
	start := anchor.WeekStart()
	workouts, err := s.workoutRepo.GetByUserAndDateRange(ctx, userID, start, start.AddDays(6))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	week := s.BuildWeek(anchor, workouts)
	return &week, nil
}

// GetMonth fetches the full visible range (including adjacent-month spill
// days) and builds the grid.
func (s *calendarService) GetMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) (*domain.CalendarMonth, error) {
	firstOfMonth := domain.NewDate(year, month, 1)
	start := firstOfMonth.WeekStart()
	end := firstOfMonth.LastOfMonth().WeekEnd()

	workouts, err := s.workoutRepo.GetByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	monthGrid := s.BuildMonth(year, month, workouts)
	return &monthGrid, nil
}
