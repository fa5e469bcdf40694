package api

import (
	"net/http"

	"fitcal/fitness-calendar/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	calendarService service.CalendarService,
	plannerService service.PlannerService,
	scheduleService service.ScheduleService,
) {
	calendarHandler := NewCalendarHandler(calendarService)
	workoutHandler := NewWorkoutHandler(scheduleService)
	planHandler := NewPlanHandler(plannerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		// --- Calendar Grids ---
		calendarGroup := protected.Group("/calendar")
		{
			// GET /api/v1/calendar/week?anchor=YYYY-MM-DD
			calendarGroup.GET("/week", calendarHandler.GetWeek)
			// GET /api/v1/calendar/month?year=YYYY&month=0-11
			calendarGroup.GET("/month", calendarHandler.GetMonth)
			// GET /api/v1/calendar/range?date=YYYY-MM-DD&view=week|month
			calendarGroup.GET("/range", calendarHandler.GetVisibleRange)
		}

		// --- Workout Mutations ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.POST("/:id/reschedule", workoutHandler.RescheduleWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.MarkCompleted)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		// --- Weekly Plan Creation ---
		// POST /api/v1/plans
		protected.POST("/plans", planHandler.CreatePlan)
	}
}
