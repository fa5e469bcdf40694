package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a single scheduled training session for a user on one calendar
// date. At most one workout exists per user per date; the storage layer
// enforces this with a unique {userId, date} index.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Date            string             `bson:"date" json:"date"` // YYYY-MM-DD, lexicographically ordered
	Title           string             `bson:"title" json:"title"`
	IsCompleted     bool               `bson:"isCompleted" json:"isCompleted"`
	ExerciseCount   int                `bson:"exerciseCount" json:"exerciseCount"` // 0 marks a designated rest day
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CompletionRate  *int               `bson:"completionRate,omitempty" json:"completionRate,omitempty"` // 0..100
	SlotName        string             `bson:"slotName,omitempty" json:"slotName,omitempty"`             // template slot this session came from, e.g. "Upper A"
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`                   // audit trail, e.g. reschedule history
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
