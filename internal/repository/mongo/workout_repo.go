// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout. A duplicate {userId, date} pair is rejected
// by the unique index and surfaces as repository.ErrDateTaken.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Date == "" || workout.Title == "" {
		return primitive.NilObjectID, errors.New("workout requires userId, date, and title")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDateTaken
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByUserAndDate retrieves the workout occupying a specific date for a user,
// or repository.ErrNotFound if the date is free.
func (r *mongoWorkoutRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date domain.CalendarDate) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"userId": userID, "date": date.String()}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByUserAndDateRange retrieves all workouts for a user between start and
// end inclusive, keyed by date string. The YYYY-MM-DD format sorts
// lexicographically, so plain string comparison gives correct date bounds.
func (r *mongoWorkoutRepository) GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end domain.CalendarDate) (map[string]domain.Workout, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start.String(), "$lte": end.String()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	byDate := make(map[string]domain.Workout, len(workouts))
	for _, w := range workouts {
		byDate[w.Date] = w
	}
	return byDate, nil
}

// UpdateDate moves a workout to a new date. The unique {userId, date} index
// rejects a move onto an occupied date, which surfaces as ErrDateTaken.
func (r *mongoWorkoutRepository) UpdateDate(ctx context.Context, id primitive.ObjectID, toDate domain.CalendarDate, notes string) error {
	if id == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	filter := bson.M{"_id": id}
	updateDoc := bson.M{
		"$set": bson.M{
			"date":      toDate.String(),
			"notes":     notes,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDateTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetCompleted marks a workout as done. Idempotent on an already-completed
// workout.
func (r *mongoWorkoutRepository) SetCompleted(ctx context.Context, id primitive.ObjectID) error {
	if id == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	filter := bson.M{"_id": id}
	updateDoc := bson.M{
		"$set": bson.M{
			"isCompleted": true,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a workout. The filter ensures the workout exists AND belongs
// to the specified user.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("workout ID and user ID are required for deletion")
	}

	filter := bson.M{
		"_id":    id,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Workout not found OR not owned by this user.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup. The
// unique {userId, date} index is the atomic enforcement point for the
// one-workout-per-date invariant, so index creation failure is returned to
// the caller instead of being swallowed.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One workout per user per calendar date. Two concurrent writes
			// for the same date race here and exactly one wins.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Range scans for the calendar grid fetch.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}, {Key: "isCompleted", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
