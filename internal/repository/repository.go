package repository

import (
	"context"
	"time"

	"gymtrack/gym-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicateEmail = RepositoryError("email already in use")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutUpdate is a partial update of a workout. A nil field means the
// field was absent from the payload and must be left untouched. Presence is
// checked on the pointer, never on the zero value, so an empty title can be
// distinguished from an omitted one. ID and CreatedAt are not updatable.
type WorkoutUpdate struct {
	Title     *string
	Date      *time.Time
	Exercises *[]domain.Exercise
}

// WorkoutRepository defines the interface for workout persistence.
// Implementations exist for MongoDB and for an in-memory store used by the
// offline/mock mode and by tests.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByUserID returns the user's workouts ordered by date descending.
	// Ties keep store order; an unknown user yields an empty slice.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, id primitive.ObjectID, update WorkoutUpdate) (*domain.Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// DeleteByUserID removes all workouts owned by the user and reports how
	// many were removed. Used by the user-delete cascade.
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
