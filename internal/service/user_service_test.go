package service_test

import (
	"context"
	"testing"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/repository/memory"
	"gymtrack/gym-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserServices() (service.UserService, service.WorkoutService) {
	store := memory.NewStore()
	return service.NewUserService(store.Users(), store.Workouts()),
		service.NewWorkoutService(store.Workouts())
}

func TestUserCreate_AndFetch(t *testing.T) {
	users, _ := newUserServices()

	created, err := users.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := users.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)
	assert.Equal(t, "alice@example.com", fetched.Email)
}

func TestUserCreate_RejectsBadInput(t *testing.T) {
	users, _ := newUserServices()

	_, err := users.Create(context.Background(), "", "alice@example.com")
	assert.ErrorIs(t, err, service.ErrUserInputInvalid)

	_, err = users.Create(context.Background(), "Alice", "not-an-email")
	assert.ErrorIs(t, err, service.ErrUserInputInvalid)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	users, _ := newUserServices()

	_, err := users.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = users.Create(context.Background(), "Also Alice", "alice@example.com")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestUserUpdate_NameOnly(t *testing.T) {
	users, _ := newUserServices()
	created, err := users.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	name := "Alice B"
	updated, err := users.Update(context.Background(), created.ID, service.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUserDelete_CascadesToWorkouts(t *testing.T) {
	users, workouts := newUserServices()
	created, err := users.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	w, err := workouts.Create(context.Background(), created.ID, service.WorkoutInput{
		Date: time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC),
		Exercises: []domain.Exercise{
			{Name: "Squats", Sets: []domain.Set{{Reps: 5, Weight: 100}}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), created.ID))

	_, err = users.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	_, err = workouts.GetByID(context.Background(), w.ID)
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)
}

func TestUserDelete_NotFound(t *testing.T) {
	users, _ := newUserServices()
	err := users.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestEnsureDemoUser_Idempotent(t *testing.T) {
	users, _ := newUserServices()

	first, err := users.EnsureDemoUser(context.Background())
	require.NoError(t, err)
	second, err := users.EnsureDemoUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "demo@example.com", first.Email)

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
