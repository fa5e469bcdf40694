package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidFrequency = errors.New("frequency must be between 1 and 7")
	ErrNoSlots          = errors.New("at least one slot name is required")
)

// sessionDays is the fixed day-selection table: for each weekly frequency,
// the horizon day indices (0 = first horizon day) that receive a session.
// This is a business rule, deliberately not derived from locale or any
// platform "first day of week" setting.
var sessionDays = map[int][]int{
	1: {1},
	2: {1, 4},
	3: {1, 3, 5},
	4: {1, 2, 4, 5},
	5: {1, 2, 3, 4, 5},
	6: {1, 2, 3, 4, 5, 6},
	7: {0, 1, 2, 3, 4, 5, 6},
}

// ScheduleAssignment is one planned session: a template slot pinned to a
// concrete calendar date.
type ScheduleAssignment struct {
	Date     domain.CalendarDate `json:"date"`
	SlotName string              `json:"slotName"`
}

// PlanSlot is one named position of a weekly template, e.g. "Upper A".
type PlanSlot struct {
	Name          string `json:"name"`
	ExerciseCount int    `json:"exerciseCount"`
}

// --- Service Interface ---

type PlannerService interface {
	// Assign deterministically distributes frequency sessions over the 7-day
	// horizon starting at horizonStart. Slots are consumed in round-robin
	// order, wrapping when fewer slots than sessions were given. Pure: the
	// same inputs always yield the same dates.
	Assign(frequency int, slots []string, horizonStart domain.CalendarDate) ([]ScheduleAssignment, error)

	// HorizonStart applies the cutoff policy: before the configured
	// early-morning hour the horizon starts today, otherwise tomorrow.
	HorizonStart(now time.Time) domain.CalendarDate

	// CreatePlan assigns the weekly template over the upcoming horizon and
	// persists each session as a workout record.
	CreatePlan(ctx context.Context, userID primitive.ObjectID, frequency int, slots []PlanSlot) ([]domain.Workout, error)
}

// --- Service Implementation ---

type plannerService struct {
	workoutRepo repository.WorkoutRepository
	cutoffHour  int
	location    *time.Location
	now         func() time.Time
}

// NewPlannerService creates a new instance of plannerService. cutoffHour and
// location come from configuration; the cutoff is policy, not semantics.
func NewPlannerService(workoutRepo repository.WorkoutRepository, cutoffHour int, location *time.Location) PlannerService {
	if location == nil {
		location = time.UTC
	}
	return &plannerService{
		workoutRepo: workoutRepo,
		cutoffHour:  cutoffHour,
		location:    location,
		now:         time.Now,
	}
}

// Assign walks the 7 horizon days in order; each day whose index appears in
// the selection table receives the next slot, wrapping round-robin.
func (s *plannerService) Assign(frequency int, slots []string, horizonStart domain.CalendarDate) ([]ScheduleAssignment, error) {
	days, ok := sessionDays[frequency]
	if !ok {
		return nil, ErrInvalidFrequency
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	assignments := make([]ScheduleAssignment, 0, len(days))
	for i, dayIndex := range days {
		assignments = append(assignments, ScheduleAssignment{
			Date:     horizonStart.AddDays(dayIndex),
			SlotName: slots[i%len(slots)],
		})
	}
	return assignments, nil
}

// HorizonStart returns the first day of the planning horizon: today when the
// clock (in the configured location) is still before the early-morning
// cutoff, otherwise tomorrow.
func (s *plannerService) HorizonStart(now time.Time) domain.CalendarDate {
	local := now.In(s.location)
	today := domain.DateOf(local)
	if local.Hour() < s.cutoffHour {
		return today
	}
	return today.AddDays(1)
}

// CreatePlan persists one workout record per assignment. An occupied date
// surfaces as ErrDateConflict naming the date rather than being skipped
// silently, so the caller can resolve the collision.
func (s *plannerService) CreatePlan(ctx context.Context, userID primitive.ObjectID, frequency int, slots []PlanSlot) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a plan")
	}

	slotNames := make([]string, 0, len(slots))
	exerciseCounts := make(map[string]int, len(slots))
	for _, slot := range slots {
		if slot.Name == "" {
			return nil, ErrNoSlots
		}
		slotNames = append(slotNames, slot.Name)
		exerciseCounts[slot.Name] = slot.ExerciseCount
	}

	horizonStart := s.HorizonStart(s.now())
	assignments, err := s.Assign(frequency, slotNames, horizonStart)
	if err != nil {
		return nil, err
	}

	// Pre-check the whole horizon before the first write, so a conflict on a
	// later day cannot leave the earlier sessions behind as partial state.
	existing, err := s.workoutRepo.GetByUserAndDateRange(ctx, userID, horizonStart, horizonStart.AddDays(6))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	for _, assignment := range assignments {
		if _, taken := existing[assignment.Date.String()]; taken {
			return nil, fmt.Errorf("%w: %s", ErrDateConflict, assignment.Date)
		}
	}

	created := make([]domain.Workout, 0, len(assignments))
	for _, assignment := range assignments {
		workout := &domain.Workout{
			UserID:        userID,
			Date:          assignment.Date.String(),
			Title:         assignment.SlotName,
			SlotName:      assignment.SlotName,
			ExerciseCount: exerciseCounts[assignment.SlotName],
		}
		id, err := s.workoutRepo.Create(ctx, workout)
		if err != nil {
			// A concurrent writer can still take a date between the check
			// and this write; roll back the sessions created so far instead
			// of leaving a half-persisted week.
			s.rollback(ctx, userID, created)
			if errors.Is(err, repository.ErrDateTaken) {
				return nil, fmt.Errorf("%w: %s", ErrDateConflict, assignment.Date)
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
		}
		workout.ID = id
		created = append(created, *workout)
	}
	return created, nil
}

// rollback best-effort deletes the sessions a failed plan creation already
// persisted. Deletion errors are ignored; the unique index still protects
// any record left behind.
func (s *plannerService) rollback(ctx context.Context, userID primitive.ObjectID, created []domain.Workout) {
	for _, workout := range created {
		_ = s.workoutRepo.Delete(ctx, workout.ID, userID)
	}
}
