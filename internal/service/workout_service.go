package service

import (
	"context"
	"errors"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrValidationFailed = errors.New("workout validation failed")
	ErrDateRequired     = errors.New("workout date is required")
	ErrNoValidExercises = errors.New("at least one valid exercise is required")
	ErrInvalidSet       = errors.New("set reps must be positive and weight non-negative")
)

// WorkoutInput is the payload for creating a workout. The acting principal
// (userID) is passed separately on every call, never implied.
type WorkoutInput struct {
	Title     string
	Date      time.Time
	Exercises []domain.Exercise
}

// WorkoutPatch is a partial update. Nil fields are left untouched.
type WorkoutPatch struct {
	Title     *string
	Date      *time.Time
	Exercises *[]domain.Exercise
}

// WorkoutService provides CRUD over workouts with validation enforced at
// this boundary in addition to any client-side filtering.
type WorkoutService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, id primitive.ObjectID, patch WorkoutPatch) (*domain.Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new workout service over the given repository.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// checkSets rejects out-of-range set values that survived filtering.
// ValidExercises drops zero-rep sets, so after filtering only a negative
// weight can still trip this.
func checkSets(exercises []domain.Exercise) error {
	for _, e := range exercises {
		for _, s := range e.Sets {
			if s.Reps < 1 || s.Weight < 0 {
				return ErrInvalidSet
			}
		}
	}
	return nil
}

// Create filters the submitted exercises, rejects an empty result, and
// persists the workout. The store assigns id and createdAt.
func (s *workoutService) Create(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a workout")
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	exercises := domain.ValidExercises(input.Exercises)
	if len(exercises) == 0 {
		return nil, ErrNoValidExercises
	}
	if err := checkSets(exercises); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:    userID,
		Title:     input.Title,
		Date:      input.Date,
		Exercises: exercises,
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, id)
}

// GetByID retrieves a single workout.
func (s *workoutService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// ListByUser returns the user's workouts, date descending. An unknown user
// yields an empty slice, not an error.
func (s *workoutService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// Update applies a partial update. Exercises, when present, go through the
// same filter-and-reject-empty validation as on create. ID and createdAt are
// never altered.
func (s *workoutService) Update(ctx context.Context, id primitive.ObjectID, patch WorkoutPatch) (*domain.Workout, error) {
	update := repository.WorkoutUpdate{
		Title: patch.Title,
		Date:  patch.Date,
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if patch.Exercises != nil {
		exercises := domain.ValidExercises(*patch.Exercises)
		if len(exercises) == 0 {
			return nil, ErrNoValidExercises
		}
		if err := checkSets(exercises); err != nil {
			return nil, err
		}
		update.Exercises = &exercises
	}

	workout, err := s.workoutRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Delete removes the workout and returns the removed record.
func (s *workoutService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
