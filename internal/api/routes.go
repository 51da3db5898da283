package api

import (
	"net/http"

	"gymtrack/gym-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Version is the value reported by the status endpoint.
const Version = "1.0.0"

// SetupRoutes mounts the REST API onto the router.
func SetupRoutes(
	router *gin.Engine,
	workoutService service.WorkoutService,
	userService service.UserService,
) {
	workoutHandler := NewWorkoutHandler(workoutService)
	userHandler := NewUserHandler(userService)

	router.Use(RequestID(), AccessLog(), gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Gym Tracker API is running",
			"version": Version,
			"status":  "ok",
		})
	})

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		workouts := api.Group("/workouts")
		{
			workouts.GET("/:userId", workoutHandler.ListByUser)
			// Serves GET /api/workouts/detail/:id. The static segment can't
			// live next to the :userId wildcard in gin's tree, so the
			// handler checks the literal itself.
			workouts.GET("/:userId/:id", workoutHandler.GetDetail)
			workouts.POST("", workoutHandler.Create)
			workouts.PUT("/:id", workoutHandler.Update)
			workouts.DELETE("/:id", workoutHandler.Delete)
		}
	}
}
