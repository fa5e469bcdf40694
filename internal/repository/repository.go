package repository

import (
	"context"

	"fitcal/fitness-calendar/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDateTaken    = RepositoryError("date already taken")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository is the persistence contract for workout records. It is
// the ultimate enforcement point for the one-workout-per-user-per-date
// invariant: Create and UpdateDate must reject a write onto an occupied date
// with ErrDateTaken atomically, closing the race window left open by the
// service layer's optimistic check.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date domain.CalendarDate) (*domain.Workout, error)
	// GetByUserAndDateRange returns the user's workouts between start and end
	// (inclusive bounds), keyed by their YYYY-MM-DD date string.
	GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end domain.CalendarDate) (map[string]domain.Workout, error)
	// UpdateDate moves a workout to a new date and replaces its audit notes.
	UpdateDate(ctx context.Context, id primitive.ObjectID, toDate domain.CalendarDate, notes string) error
	SetCompleted(ctx context.Context, id primitive.ObjectID) error
	// Delete removes the workout only if it belongs to userID.
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}
