package api

import (
	"net/http"

	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	workoutService service.WorkoutService,
	cat *catalog.Catalog,
) {
	workoutHandler := NewWorkoutHandler(workoutService, cat)
	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		workoutGroup := protected.Group("/workout")
		{
			workoutGroup.GET("", workoutHandler.GetWorkout)
			workoutGroup.GET("/categories", workoutHandler.GetCategories)
			workoutGroup.GET("/history", workoutHandler.GetHistory)

			workoutGroup.POST("/focus", workoutHandler.SelectFocus)
			workoutGroup.POST("/focus/confirm", workoutHandler.ConfirmFocusChange)
			workoutGroup.POST("/focus/cancel", workoutHandler.CancelFocusChange)

			workoutGroup.POST("/drills/toggle", workoutHandler.ToggleDrill)
			workoutGroup.POST("/complete", workoutHandler.MarkDayComplete)
			workoutGroup.POST("/reset", workoutHandler.ResetPlan)
		}
	}
}
