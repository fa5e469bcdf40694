package api

import (
	"net/http"
	"strconv"
	"time"

	"fitcal/fitness-calendar/internal/domain"
	"fitcal/fitness-calendar/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarHandler holds the calendar service dependency.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// --- DTOs for API (Data Transfer Objects) ---

// WorkoutResponse is the DTO for returning workout details.
type WorkoutResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Title           string    `json:"title"`
	IsCompleted     bool      `json:"isCompleted"`
	ExerciseCount   int       `json:"exerciseCount"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	CompletionRate  *int      `json:"completionRate,omitempty"`
	SlotName        string    `json:"slotName,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:              w.ID.Hex(),
		UserID:          w.UserID.Hex(),
		Date:            w.Date,
		Title:           w.Title,
		IsCompleted:     w.IsCompleted,
		ExerciseCount:   w.ExerciseCount,
		DurationMinutes: w.DurationMinutes,
		CompletionRate:  w.CompletionRate,
		SlotName:        w.SlotName,
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// CalendarDayResponse is one grid cell, with its resolved display status.
type CalendarDayResponse struct {
	Date            string           `json:"date"`
	DayOfWeek       int              `json:"dayOfWeek"` // 0 = Monday .. 6 = Sunday
	IsToday         bool             `json:"isToday"`
	IsCurrentPeriod bool             `json:"isCurrentPeriod"`
	Status          string           `json:"status"`
	Workout         *WorkoutResponse `json:"workout,omitempty"`
}

type CalendarWeekResponse struct {
	WeekIndex int                   `json:"weekIndex"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Days      []CalendarDayResponse `json:"days"`
}

type CalendarMonthResponse struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"` // 0-based on the wire, January = 0
	Weeks []CalendarWeekResponse `json:"weeks"`
}

// VisibleRangeResponse carries the fetch range plus the tag the display layer
// uses to discard responses that arrive after another navigation happened.
type VisibleRangeResponse struct {
	Tag           string `json:"tag"`
	Start         string `json:"start"`
	End           string `json:"end"`
	ReferenceDate string `json:"referenceDate"`
	ViewMode      string `json:"viewMode"`
}

func mapDayToResponse(day domain.CalendarDay) CalendarDayResponse {
	resp := CalendarDayResponse{
		Date:            day.Date.String(),
		DayOfWeek:       day.DayOfWeek,
		IsToday:         day.IsToday,
		IsCurrentPeriod: day.IsCurrentPeriod,
		Status:          string(domain.ResolveStatus(day)),
	}
	if day.Workout != nil {
		workout := MapWorkoutToResponse(day.Workout)
		resp.Workout = &workout
	}
	return resp
}

func mapWeekToResponse(week domain.CalendarWeek) CalendarWeekResponse {
	resp := CalendarWeekResponse{
		WeekIndex: week.WeekIndex,
		StartDate: week.StartDate.String(),
		EndDate:   week.EndDate.String(),
		Days:      make([]CalendarDayResponse, len(week.Days)),
	}
	for i, day := range week.Days {
		resp.Days[i] = mapDayToResponse(day)
	}
	return resp
}

func mapMonthToResponse(month domain.CalendarMonth) CalendarMonthResponse {
	resp := CalendarMonthResponse{
		Year:  month.Year,
		Month: int(month.Month) - 1,
		Weeks: make([]CalendarWeekResponse, len(month.Weeks)),
	}
	for i, week := range month.Weeks {
		resp.Weeks[i] = mapWeekToResponse(week)
	}
	return resp
}

// --- Handler Methods ---

// GetWeek returns the week grid bracketing the anchor date.
// GET /api/v1/calendar/week?anchor=2024-01-03
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	anchor := domain.Today()
	if anchorStr := c.Query("anchor"); anchorStr != "" {
		parsed, err := domain.ParseDate(anchorStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid anchor date, expected YYYY-MM-DD.")
			return
		}
		anchor = parsed
	}

	week, err := h.calendarService.GetWeek(c.Request.Context(), userID, anchor)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to fetch workouts for week.")
		return
	}

	c.JSON(http.StatusOK, mapWeekToResponse(*week))
}

// GetMonth returns the full month grid, including adjacent-month spill days.
// GET /api/v1/calendar/month?year=2024&month=1 (month is 0-based)
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid or missing year.")
		return
	}
	monthIndex, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthIndex < 0 || monthIndex > 11 {
		abortWithError(c, http.StatusBadRequest, "Invalid or missing month, expected 0-11.")
		return
	}

	month, err := h.calendarService.GetMonth(c.Request.Context(), userID, year, time.Month(monthIndex+1))
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to fetch workouts for month.")
		return
	}

	c.JSON(http.StatusOK, mapMonthToResponse(*month))
}

// GetVisibleRange computes the tagged fetch range for a navigation position,
// so the display layer can match responses against its current state.
// GET /api/v1/calendar/range?date=2024-01-17&view=month
func (h *CalendarHandler) GetVisibleRange(c *gin.Context) {
	date := domain.Today()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := domain.ParseDate(dateStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	mode := domain.ViewWeek
	switch c.Query("view") {
	case "", string(domain.ViewWeek):
	case string(domain.ViewMonth):
		mode = domain.ViewMonth
	default:
		abortWithError(c, http.StatusBadRequest, "Invalid view, expected week or month.")
		return
	}

	state := domain.NewNavigationState(date, mode)
	rangeReq := h.calendarService.VisibleRange(state)

	c.JSON(http.StatusOK, VisibleRangeResponse{
		Tag:           rangeReq.Tag,
		Start:         rangeReq.Start.String(),
		End:           rangeReq.End.String(),
		ReferenceDate: state.ReferenceDate.String(),
		ViewMode:      string(state.ViewMode),
	})
}

// currentUserID extracts and validates the authenticated user's ObjectID,
// aborting the request when it is missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}
