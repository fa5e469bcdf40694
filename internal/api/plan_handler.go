package api

import (
	"errors"
	"net/http"

	"fitcal/fitness-calendar/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the planner service dependency.
type PlanHandler struct {
	plannerService service.PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plannerService service.PlannerService) *PlanHandler {
	return &PlanHandler{plannerService: plannerService}
}

// --- DTOs for API (Data Transfer Objects) ---

// PlanSlotRequest is one named template slot of the weekly split.
type PlanSlotRequest struct {
	Name          string `json:"name" binding:"required"`
	ExerciseCount int    `json:"exerciseCount" binding:"omitempty,min=0"`
}

// CreatePlanRequest defines the expected JSON for creating a weekly plan.
type CreatePlanRequest struct {
	Frequency int               `json:"frequency" binding:"required"`
	Slots     []PlanSlotRequest `json:"slots" binding:"required,min=1,dive"`
}

// CreatePlanResponse returns the workouts the planner scheduled.
type CreatePlanResponse struct {
	Workouts []WorkoutResponse `json:"workouts"`
}

// --- Handler Methods ---

// CreatePlan distributes the weekly template over the upcoming horizon and
// persists one workout per session.
// POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slots := make([]service.PlanSlot, len(req.Slots))
	for i, slot := range req.Slots {
		slots[i] = service.PlanSlot{Name: slot.Name, ExerciseCount: slot.ExerciseCount}
	}

	workouts, err := h.plannerService.CreatePlan(c.Request.Context(), userID, req.Frequency, slots)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFrequency), errors.Is(err, service.ErrNoSlots):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDateConflict):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}

	resp := CreatePlanResponse{Workouts: make([]WorkoutResponse, len(workouts))}
	for i := range workouts {
		resp.Workouts[i] = MapWorkoutToResponse(&workouts[i])
	}

	c.JSON(http.StatusCreated, resp)
}
