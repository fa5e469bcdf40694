package api

import (
	"errors"
	"net/http"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the schedule service dependency.
type WorkoutHandler struct {
	scheduleService service.ScheduleService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(scheduleService service.ScheduleService) *WorkoutHandler {
	return &WorkoutHandler{scheduleService: scheduleService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateWorkoutRequest defines the expected JSON for scheduling a workout.
type CreateWorkoutRequest struct {
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Title string `json:"title" binding:"required"`
}

// RescheduleWorkoutRequest defines the expected JSON for moving a workout.
type RescheduleWorkoutRequest struct {
	ToDate string `json:"toDate" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason" binding:"omitempty"`
}

// --- Handler Methods ---

// CreateWorkout schedules a workout on a free date for the authenticated user.
// POST /api/v1/workouts
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	workout, err := h.scheduleService.CreateWorkout(c.Request.Context(), userID, date, req.Title)
	if err != nil {
		if errors.Is(err, service.ErrDateConflict) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkout returns a single workout for the detail view.
// GET /api/v1/workouts/:id
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	workout, err := h.scheduleService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// RescheduleWorkout moves a workout to another date, recording an audit note.
// POST /api/v1/workouts/:id/reschedule
func (h *WorkoutHandler) RescheduleWorkout(c *gin.Context) {
	var req RescheduleWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	toDate, err := domain.ParseDate(req.ToDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid toDate, expected YYYY-MM-DD.")
		return
	}

	workout, err := h.scheduleService.RescheduleWorkout(c.Request.Context(), userID, workoutID, toDate, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateConflict):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to reschedule workout.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// MarkCompleted marks a workout as done.
// POST /api/v1/workouts/:id/complete
func (h *WorkoutHandler) MarkCompleted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	workout, err := h.scheduleService.MarkCompleted(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to complete workout.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout removes a workout.
// DELETE /api/v1/workouts/:id
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// workoutIDParam parses the :id path parameter, aborting on a malformed ID.
func workoutIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return primitive.NilObjectID, false
	}
	return workoutID, true
}
