package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrDateConflict    = errors.New("a workout already exists on this date")
	ErrUpstreamFailure = errors.New("persistence request failed")
)

// --- Service Interface ---

// ScheduleService owns the one-workout-per-date invariant for every mutating
// operation. Its occupancy checks are an optimization that produces better
// error messages; the unique index in the repository is the enforcement point
// that decides races between concurrent writers.
type ScheduleService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, date domain.CalendarDate, title string) (*domain.Workout, error)
	RescheduleWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, toDate domain.CalendarDate, reason string) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
	MarkCompleted(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

// --- Service Implementation ---

type scheduleService struct {
	workoutRepo repository.WorkoutRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(workoutRepo repository.WorkoutRepository) ScheduleService {
	return &scheduleService{
		workoutRepo: workoutRepo,
	}
}

// occupied reports whether the user already has a workout on date, excluding
// the given workout ID (so a record never conflicts with itself).
func (s *scheduleService) occupied(ctx context.Context, userID primitive.ObjectID, date domain.CalendarDate, exclude primitive.ObjectID) (bool, error) {
	existing, err := s.workoutRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return existing.ID != exclude, nil
}

// CreateWorkout creates a workout on a free date. The check before the write
// gives the user an actionable DateConflict; the write itself can still lose
// a race, which the repository reports as ErrDateTaken.
func (s *scheduleService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, date domain.CalendarDate, title string) (*domain.Workout, error) {
	if userID == primitive.NilObjectID || title == "" {
		return nil, errors.New("user ID and title are required")
	}

	taken, err := s.occupied(ctx, userID, date, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrDateConflict, date)
	}

	workout := &domain.Workout{
		UserID: userID,
		Date:   date.String(),
		Title:  title,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		if errors.Is(err, repository.ErrDateTaken) {
			return nil, fmt.Errorf("%w: %s", ErrDateConflict, date)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	workout.ID = id
	// Fetch again to get repository-populated timestamps.
	created, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return created, nil
}

// RescheduleWorkout moves a workout to toDate, attaching a human-readable
// audit note. Moving onto the workout's own date is a no-op. A conflict
// leaves the original workout's date unchanged.
func (s *scheduleService) RescheduleWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, toDate domain.CalendarDate, reason string) (*domain.Workout, error) {
	workout, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if workout.Date == toDate.String() {
		return workout, nil
	}

	taken, err := s.occupied(ctx, userID, toDate, workoutID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrDateConflict, toDate)
	}

	note := fmt.Sprintf("Moved from %s", workout.Date)
	if reason != "" {
		note += ": " + reason
	}
	notes := strings.TrimSpace(workout.Notes + "\n" + note)

	if err := s.workoutRepo.UpdateDate(ctx, workoutID, toDate, notes); err != nil {
		switch {
		case errors.Is(err, repository.ErrDateTaken):
			// Lost the race to a concurrent write on toDate.
			return nil, fmt.Errorf("%w: %s", ErrDateConflict, toDate)
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrWorkoutNotFound
		default:
			return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
		}
	}

	workout.Date = toDate.String()
	workout.Notes = notes
	return workout, nil
}

// DeleteWorkout removes the record. A stale or double delete surfaces as
// ErrWorkoutNotFound rather than succeeding silently.
func (s *scheduleService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || workoutID == primitive.NilObjectID {
		return errors.New("user ID and workout ID are required")
	}

	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return nil
}

// MarkCompleted sets isCompleted. No date or invariant impact; idempotent on
// an already-completed workout.
func (s *scheduleService) MarkCompleted(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if err := s.workoutRepo.SetCompleted(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	workout.IsCompleted = true
	return workout, nil
}

// GetWorkout retrieves a single workout, scoped to its owner.
func (s *scheduleService) GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	return s.getOwned(ctx, userID, workoutID)
}

// getOwned fetches a workout and verifies ownership. A workout belonging to
// another user is reported as not found rather than leaking its existence.
func (s *scheduleService) getOwned(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	if userID == primitive.NilObjectID || workoutID == primitive.NilObjectID {
		return nil, errors.New("user ID and workout ID are required")
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}
