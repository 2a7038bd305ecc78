package api

import (
	"errors"
	"log"
	"net/http"
	"time"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the caller's workout plans.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

// CreateWorkoutRequest is the body of POST /workouts. The owner is never
// part of the payload.
type CreateWorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	ScheduledAt string                   `json:"scheduledAt" binding:"required"`
	Exercises   []WorkoutExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type WorkoutExerciseRequest struct {
	ID       string  `json:"id" binding:"required"`
	Sets     int     `json:"sets" binding:"required,min=1"`
	Reps     int     `json:"reps" binding:"required,min=1"`
	Weight   float64 `json:"weight" binding:"min=0"`
	Comments string  `json:"comments"`
}

type WorkoutExerciseResponse struct {
	ExerciseID string            `json:"exerciseId"`
	Position   int               `json:"position"`
	Sets       int               `json:"sets"`
	Reps       int               `json:"reps"`
	Weight     float64           `json:"weight"`
	Comments   string            `json:"comments"`
	Exercise   *ExerciseResponse `json:"exercise"`
}

type WorkoutPlanResponse struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	ScheduledAt      time.Time                 `json:"scheduledAt"`
	UserID           string                    `json:"userId"`
	CreatedAt        time.Time                 `json:"createdAt"`
	WorkoutExercises []WorkoutExerciseResponse `json:"workoutExercises"`
}

// MapWorkoutToResponse converts a resolved plan to its wire form.
func MapWorkoutToResponse(w *service.WorkoutDetails) WorkoutPlanResponse {
	resp := WorkoutPlanResponse{
		ID:               w.ID.Hex(),
		Name:             w.Name,
		ScheduledAt:      w.ScheduledAt,
		UserID:           w.OwnerID.Hex(),
		CreatedAt:        w.CreatedAt,
		WorkoutExercises: make([]WorkoutExerciseResponse, len(w.Entries)),
	}
	for i, e := range w.Entries {
		entry := WorkoutExerciseResponse{
			ExerciseID: e.ExerciseID,
			Position:   e.Position,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Comments:   e.Comments,
		}
		if e.Exercise != nil {
			ex := MapExerciseToResponse(e.Exercise)
			entry.Exercise = &ex
		}
		resp.WorkoutExercises[i] = entry
	}
	return resp
}

// MapWorkoutsToResponse converts a slice of plans; an empty input yields an empty array.
func MapWorkoutsToResponse(workouts []service.WorkoutDetails) []WorkoutPlanResponse {
	responses := make([]WorkoutPlanResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout plan
// @Description Creates a plan with all of its exercise entries for the signed-in user.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutPlanResponse "Workout created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	scheduledAt, err := domain.ParseDateTime(req.ScheduledAt, time.UTC)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: scheduledAt must be a valid date-time")
		return
	}

	input := service.CreateWorkoutInput{
		Name:        req.Name,
		ScheduledAt: scheduledAt,
		Entries:     make([]service.EntryInput, len(req.Exercises)),
	}
	for i, e := range req.Exercises {
		input.Entries[i] = service.EntryInput{
			ExerciseID: e.ID,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Comments:   e.Comments,
		}
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownExercise):
			// Unknown catalog ids surface as a creation failure.
			log.Printf("ERROR: creating workout for %s: %v", ownerID.Hex(), err)
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: creating workout for %s: %v", ownerID.Hex(), err)
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// ListWorkouts godoc
// @Summary List the signed-in user's workout plans
// @Description Returns the caller's plans, latest scheduled first.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutPlanResponse "List of workouts"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("ERROR: listing workouts for %s: %v", ownerID.Hex(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}
