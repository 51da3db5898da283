package api

import (
	"errors"
	"net/http"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// SetPayload mirrors domain.Set on the wire.
type SetPayload struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"` // absent means bodyweight, i.e. 0
}

// ExercisePayload mirrors domain.Exercise on the wire.
type ExercisePayload struct {
	Name string       `json:"name"`
	Sets []SetPayload `json:"sets"`
}

// CreateWorkoutRequest is the POST /workouts body.
type CreateWorkoutRequest struct {
	UserID    string            `json:"userId" binding:"required"`
	Title     string            `json:"title"`
	Date      string            `json:"date" binding:"required"`
	Exercises []ExercisePayload `json:"exercises"`
}

// UpdateWorkoutRequest is the PUT /workouts/:id body. Pointer fields
// distinguish "omitted" from "set to the zero value": an explicit empty
// title clears the title, an absent one leaves it alone.
type UpdateWorkoutRequest struct {
	Title     *string            `json:"title"`
	Date      *string            `json:"date"`
	Exercises *[]ExercisePayload `json:"exercises"`
}

// WorkoutResponse is the wire form of a workout, with the derived metrics
// included so clients don't recompute them.
type WorkoutResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Title     string            `json:"title,omitempty"`
	Date      time.Time         `json:"date"`
	Exercises []ExercisePayload `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
	Volume    float64           `json:"volume"`
	TotalSets int               `json:"totalSets"`
}

func mapExercises(payload []ExercisePayload) []domain.Exercise {
	exercises := make([]domain.Exercise, len(payload))
	for i, e := range payload {
		sets := make([]domain.Set, len(e.Sets))
		for j, s := range e.Sets {
			sets[j] = domain.Set{Reps: s.Reps, Weight: s.Weight}
		}
		exercises[i] = domain.Exercise{Name: e.Name, Sets: sets}
	}
	return exercises
}

// MapWorkoutToResponse converts a domain.Workout to its DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := make([]ExercisePayload, len(w.Exercises))
	for i, e := range w.Exercises {
		sets := make([]SetPayload, len(e.Sets))
		for j, s := range e.Sets {
			sets[j] = SetPayload{Reps: s.Reps, Weight: s.Weight}
		}
		exercises[i] = ExercisePayload{Name: e.Name, Sets: sets}
	}
	return WorkoutResponse{
		ID:        w.ID.Hex(),
		UserID:    w.UserID.Hex(),
		Title:     w.Title,
		Date:      w.Date,
		Exercises: exercises,
		CreatedAt: w.CreatedAt,
		Volume:    w.Volume(),
		TotalSets: w.TotalSets(),
	}
}

// MapWorkoutsToResponse converts a slice of workouts to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// parseDate accepts the bare date the web client sends as well as RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// --- Handlers ---

// ListByUser handles GET /api/workouts/:userId.
func (h *WorkoutHandler) ListByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	workouts, err := h.workoutService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetDetail handles GET /api/workouts/detail/:id.
//
// Gin's routing tree cannot hold the static "detail" segment next to the
// :userId wildcard, so the route is registered as :userId/:id and the
// literal is checked here.
func (h *WorkoutHandler) GetDetail(c *gin.Context) {
	if c.Param("userId") != "detail" {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	workout, err := h.workoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			respondError(c, http.StatusNotFound, "Workout not found")
		} else {
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// Create handles POST /api/workouts.
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD or RFC 3339")
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, service.WorkoutInput{
		Title:     req.Title,
		Date:      date,
		Exercises: mapExercises(req.Exercises),
	})
	if err != nil {
		if isValidationErr(err) {
			respondError(c, http.StatusBadRequest, err.Error())
		} else {
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// Update handles PUT /api/workouts/:id.
func (h *WorkoutHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := service.WorkoutPatch{Title: req.Title}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD or RFC 3339")
			return
		}
		patch.Date = &date
	}
	if req.Exercises != nil {
		exercises := mapExercises(*req.Exercises)
		patch.Exercises = &exercises
	}

	workout, err := h.workoutService.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			respondError(c, http.StatusNotFound, "Workout not found")
		case isValidationErr(err):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// Delete handles DELETE /api/workouts/:id. Returns the deleted record
// alongside a confirmation message.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	workout, err := h.workoutService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			respondError(c, http.StatusNotFound, "Workout not found")
		} else {
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Workout deleted successfully",
		"workout": MapWorkoutToResponse(workout),
	})
}

func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrValidationFailed) ||
		errors.Is(err, service.ErrDateRequired) ||
		errors.Is(err, service.ErrNoValidExercises) ||
		errors.Is(err, service.ErrInvalidSet)
}
