package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewNavigationState_Normalizes(t *testing.T) {
	// 2024-01-17 is a Wednesday.
	midMonth := NewDate(2024, time.January, 17)

	weekState := NewNavigationState(midMonth, ViewWeek)
	assert.Equal(t, "2024-01-15", weekState.ReferenceDate.String())

	monthState := NewNavigationState(midMonth, ViewMonth)
	assert.Equal(t, "2024-01-01", monthState.ReferenceDate.String())
}

func TestSetViewMode_Renormalizes(t *testing.T) {
	state := NewNavigationState(NewDate(2024, time.January, 17), ViewWeek)
	assert.Equal(t, "2024-01-15", state.ReferenceDate.String())

	state = state.SetViewMode(ViewMonth)
	assert.Equal(t, ViewMonth, state.ViewMode)
	assert.Equal(t, "2024-01-01", state.ReferenceDate.String())

	state = state.SetViewMode(ViewWeek)
	// January 1st 2024 is already a Monday.
	assert.Equal(t, "2024-01-01", state.ReferenceDate.String())
}

func TestWeekNavigation(t *testing.T) {
	state := NewNavigationState(NewDate(2024, time.January, 17), ViewWeek)

	next := state.GoToNext()
	assert.Equal(t, "2024-01-22", next.ReferenceDate.String())

	prev := state.GoToPrevious()
	assert.Equal(t, "2024-01-08", prev.ReferenceDate.String())

	// The source state is a value; transitions never mutate it.
	assert.Equal(t, "2024-01-15", state.ReferenceDate.String())
}

func TestMonthNavigation_YearRollover(t *testing.T) {
	state := NewNavigationState(NewDate(2024, time.January, 17), ViewMonth)

	prev := state.GoToPrevious()
	assert.Equal(t, "2023-12-01", prev.ReferenceDate.String())

	next := prev.GoToNext()
	assert.Equal(t, "2024-01-01", next.ReferenceDate.String())

	dec := NewNavigationState(NewDate(2023, time.December, 5), ViewMonth)
	assert.Equal(t, "2024-01-01", dec.GoToNext().ReferenceDate.String())
}

func TestGoToday_And_GoToDate(t *testing.T) {
	state := NewNavigationState(NewDate(2024, time.March, 10), ViewWeek)

	today := NewDate(2024, time.June, 19) // a Wednesday
	state = state.GoToday(today)
	assert.Equal(t, "2024-06-17", state.ReferenceDate.String())

	state = state.SetViewMode(ViewMonth).GoToday(today)
	assert.Equal(t, "2024-06-01", state.ReferenceDate.String())

	state = state.GoToDate(NewDate(2025, time.February, 14))
	assert.Equal(t, "2025-02-01", state.ReferenceDate.String())
}

func TestNavigationState_Equal(t *testing.T) {
	a := NewNavigationState(NewDate(2024, time.January, 17), ViewWeek)
	b := NewNavigationState(NewDate(2024, time.January, 15), ViewWeek)
	assert.True(t, a.Equal(b)) // both normalize to the same Monday

	assert.False(t, a.Equal(a.SetViewMode(ViewMonth)))
	assert.False(t, a.Equal(a.GoToNext()))
}
