// Package memory provides map-backed implementations of the repository
// interfaces. It backs the offline/mock mode of the API and the service
// tests. The store is an explicitly constructed instance with
// process-lifetime scope, injected into its consumers like any other
// repository implementation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds users and workouts in memory. Safe for concurrent use.
// Listing order for tied dates is insertion order, matching the stable
// store order the Mongo implementation exhibits.
type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]domain.User
	workouts map[primitive.ObjectID]domain.Workout
	seq      map[primitive.ObjectID]int // insertion sequence for stable ordering
	nextSeq  int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[primitive.ObjectID]domain.User),
		workouts: make(map[primitive.ObjectID]domain.Workout),
		seq:      make(map[primitive.ObjectID]int),
	}
}

// Workouts returns the store's workout repository view.
func (s *Store) Workouts() repository.WorkoutRepository { return (*workoutStore)(s) }

// Users returns the store's user repository view.
func (s *Store) Users() repository.UserRepository { return (*userStore)(s) }

func copyWorkout(w domain.Workout) domain.Workout {
	out := w
	out.Exercises = copyExercises(w.Exercises)
	return out
}

func copyExercises(exercises []domain.Exercise) []domain.Exercise {
	if exercises == nil {
		return nil
	}
	out := make([]domain.Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e
		out[i].Sets = append([]domain.Set(nil), e.Sets...)
	}
	return out
}

// --- workouts ---

type workoutStore Store

func (s *workoutStore) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()
	s.workouts[workout.ID] = copyWorkout(*workout)
	s.seq[workout.ID] = s.nextSeq
	s.nextSeq++
	return workout.ID, nil
}

func (s *workoutStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w = copyWorkout(w)
	return &w, nil
}

func (s *workoutStore) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Workout{}
	for _, w := range s.workouts {
		if w.UserID == userID {
			result = append(result, copyWorkout(w))
		}
	}
	// Date descending; ties keep insertion order.
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return s.seq[result[i].ID] < s.seq[result[j].ID]
	})
	return result, nil
}

func (s *workoutStore) Update(_ context.Context, id primitive.ObjectID, update repository.WorkoutUpdate) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Title != nil {
		w.Title = *update.Title
	}
	if update.Date != nil {
		w.Date = *update.Date
	}
	if update.Exercises != nil {
		w.Exercises = copyExercises(*update.Exercises)
	}
	s.workouts[id] = w

	w = copyWorkout(w)
	return &w, nil
}

func (s *workoutStore) Delete(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.workouts, id)
	delete(s.seq, id)
	return &w, nil
}

func (s *workoutStore) DeleteByUserID(_ context.Context, userID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, w := range s.workouts {
		if w.UserID == userID {
			delete(s.workouts, id)
			delete(s.seq, id)
			n++
		}
	}
	return n, nil
}

// --- users ---

type userStore Store

func (s *userStore) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	s.seq[user.ID] = s.nextSeq
	s.nextSeq++
	return user.ID, nil
}

func (s *userStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GetAll(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.User{}
	for _, u := range s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		return s.seq[result[i].ID] < s.seq[result[j].ID]
	})
	return result, nil
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	existing.Name = user.Name
	existing.Email = user.Email
	s.users[user.ID] = existing
	*user = existing
	return nil
}

func (s *userStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	delete(s.seq, id)
	return nil
}
