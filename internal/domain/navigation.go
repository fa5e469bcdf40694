package domain

// ViewMode selects between the week and month calendar views.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// NavigationState is the position of one calendar view: a reference date plus
// the active view mode. It is a plain value owned by the caller (one per
// display session), not shared module state; every transition returns a new
// normalized state and never partially applies.
//
// Normalization invariant: in week mode ReferenceDate is always that week's
// Monday, in month mode always day 1 of the month. It is re-established on
// every transition, not just at construction.
type NavigationState struct {
	ReferenceDate CalendarDate
	ViewMode      ViewMode
}

// NewNavigationState builds a normalized state anchored at ref.
func NewNavigationState(ref CalendarDate, mode ViewMode) NavigationState {
	return NavigationState{ReferenceDate: ref, ViewMode: mode}.normalize()
}

func (s NavigationState) normalize() NavigationState {
	switch s.ViewMode {
	case ViewMonth:
		s.ReferenceDate = s.ReferenceDate.FirstOfMonth()
	default:
		s.ViewMode = ViewWeek
		s.ReferenceDate = s.ReferenceDate.WeekStart()
	}
	return s
}

// GoToday re-anchors the view on the given current date. The caller supplies
// today so transitions stay pure and testable.
func (s NavigationState) GoToday(today CalendarDate) NavigationState {
	s.ReferenceDate = today
	return s.normalize()
}

// GoToPrevious shifts back by exactly one week in week mode, or to the first
// day of the previous month in month mode (handles year rollover).
func (s NavigationState) GoToPrevious() NavigationState {
	switch s.ViewMode {
	case ViewMonth:
		year, month := PreviousMonth(s.ReferenceDate.Year(), s.ReferenceDate.Month())
		s.ReferenceDate = NewDate(year, month, 1)
	default:
		s.ReferenceDate = s.ReferenceDate.AddWeeks(-1)
	}
	return s.normalize()
}

// GoToNext shifts forward by exactly one week in week mode, or to the first
// day of the next month in month mode (handles year rollover).
func (s NavigationState) GoToNext() NavigationState {
	switch s.ViewMode {
	case ViewMonth:
		year, month := NextMonth(s.ReferenceDate.Year(), s.ReferenceDate.Month())
		s.ReferenceDate = NewDate(year, month, 1)
	default:
		s.ReferenceDate = s.ReferenceDate.AddWeeks(1)
	}
	return s.normalize()
}

// GoToDate jumps to an arbitrary date, then re-normalizes under the current
// view mode.
func (s NavigationState) GoToDate(d CalendarDate) NavigationState {
	s.ReferenceDate = d
	return s.normalize()
}

// SetViewMode switches views and immediately re-normalizes the reference date
// under the new mode's rule: switching to week snaps to that week's Monday,
// switching to month snaps to day 1.
func (s NavigationState) SetViewMode(mode ViewMode) NavigationState {
	s.ViewMode = mode
	return s.normalize()
}

// Equal compares two navigation states by date triple and mode.
func (s NavigationState) Equal(other NavigationState) bool {
	return s.ViewMode == other.ViewMode && s.ReferenceDate.Equal(other.ReferenceDate)
}
