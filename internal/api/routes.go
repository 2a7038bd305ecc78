package api

import (
	"net/http"
	"workouttracker/app/internal/auth"
	"workouttracker/app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	sessions auth.SessionProvider,
	authHandler *AuthHandler,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
) {
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)

	requireSession := SessionMiddleware(sessions)
	guard := methodGuard{}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.GET("/signin", authHandler.SignIn)
			authGroup.GET("/callback", authHandler.Callback)
			authGroup.GET("/session", authHandler.Session)
			authGroup.POST("/signout", authHandler.SignOut)
		}

		// --- Exercise Routes ---
		// The catalog is public.
		apiV1.GET("/exercises", exerciseHandler.ListExercises)
		guard.register(apiV1, "/exercises", http.MethodGet)

		// --- Workout Routes ---
		// 405 is answered before the session check.
		apiV1.GET("/workouts", requireSession, workoutHandler.ListWorkouts)
		apiV1.POST("/workouts", requireSession, workoutHandler.CreateWorkout)
		guard.register(apiV1, "/workouts", http.MethodGet, http.MethodPost)
	}

	router.NoRoute(guard.noRoute)
}
