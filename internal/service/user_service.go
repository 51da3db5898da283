package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrUserInputInvalid = errors.New("user name and a valid email are required")
)

// UserPatch is a partial update of a user. Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// UserService provides CRUD over users. Deleting a user cascades to the
// user's workouts: every read path starts from a user, so orphaned workouts
// would only leak storage.
type UserService interface {
	Create(ctx context.Context, name, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// EnsureDemoUser returns the demo user, creating it if absent. Gives a
	// fresh install a principal to act as; callers still pass its id
	// explicitly on every workout call.
	EnsureDemoUser(ctx context.Context) (*domain.User, error)
}

const (
	demoUserName  = "Demo User"
	demoUserEmail = "demo@example.com"
)

type userService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
}

// NewUserService creates a new user service. The workout repository is
// needed for the delete cascade.
func NewUserService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) UserService {
	return &userService{userRepo: userRepo, workoutRepo: workoutRepo}
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// Create registers a new user with a unique email.
func (s *userService) Create(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || !validEmail(email) {
		return nil, ErrUserInputInvalid
	}

	user := &domain.User{Name: name, Email: email}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetByID retrieves a single user.
func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List retrieves all users.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Update applies a partial update to name and/or email.
func (s *userService) Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrUserInputInvalid
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if !validEmail(email) {
			return nil, ErrUserInputInvalid
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user and all of their workouts. Workouts go first so a
// failure in between leaves a user with zero workouts, never orphans.
func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.workoutRepo.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// EnsureDemoUser fetches or creates the demo account.
func (s *userService) EnsureDemoUser(ctx context.Context) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, demoUserEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, demoUserName, demoUserEmail)
}
