package service

import (
	"context"
	"sync"
	"testing"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeWorkoutRepo is an in-memory repository.WorkoutRepository enforcing the
// same unique {userId, date} constraint as the mongo index, so conflict paths
// behave like the real storage layer.
type fakeWorkoutRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*domain.Workout

	// failCreateOn makes Create lose on one date as if a concurrent writer
	// took it between an occupancy check and the write.
	failCreateOn string
	// getByIDErr makes GetByID fail, simulating an unreachable store.
	getByIDErr error
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{byID: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) findByUserAndDate(userID primitive.ObjectID, date string) *domain.Workout {
	for _, w := range r.byID {
		if w.UserID == userID && w.Date == date {
			return w
		}
	}
	return nil
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByUserAndDate(workout.UserID, workout.Date) != nil {
		return primitive.NilObjectID, repository.ErrDateTaken
	}
	if r.failCreateOn == workout.Date {
		return primitive.NilObjectID, repository.ErrDateTaken
	}
	workout.ID = primitive.NewObjectID()
	copied := *workout
	r.byID[workout.ID] = &copied
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getByIDErr != nil {
		return nil, r.getByIDErr
	}
	w, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date domain.CalendarDate) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.findByUserAndDate(userID, date.String())
	if w == nil {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetByUserAndDateRange(_ context.Context, userID primitive.ObjectID, start, end domain.CalendarDate) (map[string]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDate := make(map[string]domain.Workout)
	for _, w := range r.byID {
		if w.UserID == userID && w.Date >= start.String() && w.Date <= end.String() {
			byDate[w.Date] = *w
		}
	}
	return byDate, nil
}

func (r *fakeWorkoutRepo) UpdateDate(_ context.Context, id primitive.ObjectID, toDate domain.CalendarDate, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if existing := r.findByUserAndDate(w.UserID, toDate.String()); existing != nil && existing.ID != id {
		return repository.ErrDateTaken
	}
	w.Date = toDate.String()
	w.Notes = notes
	return nil
}

func (r *fakeWorkoutRepo) SetCompleted(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.IsCompleted = true
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func seedWorkout(t *testing.T, repo *fakeWorkoutRepo, userID primitive.ObjectID, date, title string) *domain.Workout {
	t.Helper()
	workout := &domain.Workout{UserID: userID, Date: date, Title: title, ExerciseCount: 3}
	_, err := repo.Create(context.Background(), workout)
	require.NoError(t, err)
	return workout
}
