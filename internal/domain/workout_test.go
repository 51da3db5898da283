package domain_test

import (
	"testing"

	"gymtrack/gym-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseVolume(t *testing.T) {
	e := domain.Exercise{
		Name: "Bench Press",
		Sets: []domain.Set{
			{Reps: 10, Weight: 80},
			{Reps: 8, Weight: 85},
			{Reps: 5, Weight: 0}, // bodyweight set contributes nothing
		},
	}
	assert.Equal(t, float64(10*80+8*85), e.Volume())
}

func TestExerciseVolume_NoSets(t *testing.T) {
	assert.Zero(t, domain.Exercise{Name: "Plank"}.Volume())
}

func TestWorkoutVolume_OrderIndependent(t *testing.T) {
	a := domain.Exercise{Name: "Squats", Sets: []domain.Set{{Reps: 5, Weight: 100}, {Reps: 3, Weight: 120}}}
	b := domain.Exercise{Name: "Deadlift", Sets: []domain.Set{{Reps: 5, Weight: 140}}}

	forward := domain.Workout{Exercises: []domain.Exercise{a, b}}
	backward := domain.Workout{Exercises: []domain.Exercise{b, a}}
	assert.Equal(t, forward.Volume(), backward.Volume())

	// Reordering sets within an exercise doesn't change it either.
	flipped := a
	flipped.Sets = []domain.Set{a.Sets[1], a.Sets[0]}
	assert.Equal(t, a.Volume(), flipped.Volume())
}

func TestWorkoutVolume_Empty(t *testing.T) {
	assert.Zero(t, domain.Workout{}.Volume())
	assert.Zero(t, domain.Workout{}.TotalSets())
}

func TestWorkoutTotalSets(t *testing.T) {
	w := domain.Workout{Exercises: []domain.Exercise{
		{Name: "Squats", Sets: []domain.Set{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 100}}},
		{Name: "Lunges", Sets: []domain.Set{{Reps: 12, Weight: 20}}},
	}}
	assert.Equal(t, 3, w.TotalSets())
}

func TestExerciseValid(t *testing.T) {
	tests := []struct {
		name     string
		exercise domain.Exercise
		want     bool
	}{
		{"named with positive reps", domain.Exercise{Name: "Squats", Sets: []domain.Set{{Reps: 5}}}, true},
		{"whitespace name", domain.Exercise{Name: "   ", Sets: []domain.Set{{Reps: 5}}}, false},
		{"empty name", domain.Exercise{Sets: []domain.Set{{Reps: 5}}}, false},
		{"only zero-rep sets", domain.Exercise{Name: "Squats", Sets: []domain.Set{{}, {}}}, false},
		{"no sets", domain.Exercise{Name: "Squats"}, false},
		{"one positive among zeros", domain.Exercise{Name: "Squats", Sets: []domain.Set{{}, {Reps: 1}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exercise.Valid())
		})
	}
}

func TestValidExercises_DropsInvalid(t *testing.T) {
	in := []domain.Exercise{
		{Name: "Bench Press", Sets: []domain.Set{{Reps: 10, Weight: 80}}},
		{Name: "", Sets: []domain.Set{{Reps: 10, Weight: 80}}}, // fresh empty row
		{Name: "Curls", Sets: []domain.Set{{}}},                // no positive reps
	}
	out := domain.ValidExercises(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Bench Press", out[0].Name)
}

func TestValidExercises_NormalizesKeptExercises(t *testing.T) {
	in := []domain.Exercise{
		{Name: "  Squats ", Sets: []domain.Set{{Reps: 5, Weight: 100}, {Reps: 0, Weight: 60}}},
	}
	out := domain.ValidExercises(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Squats", out[0].Name)
	// Zero-rep sets are dropped from kept exercises so every persisted set
	// satisfies reps >= 1.
	require.Len(t, out[0].Sets, 1)
	assert.Equal(t, domain.Set{Reps: 5, Weight: 100}, out[0].Sets[0])
}

func TestValidExercises_Idempotent(t *testing.T) {
	valid := []domain.Exercise{
		{Name: "Squats", Sets: []domain.Set{{Reps: 5, Weight: 100}}},
		{Name: "Deadlift", Sets: []domain.Set{{Reps: 5, Weight: 140}, {Reps: 3, Weight: 150}}},
	}
	once := domain.ValidExercises(valid)
	twice := domain.ValidExercises(once)
	assert.Equal(t, valid, once)
	assert.Equal(t, once, twice)
}

func TestValidExercises_Empty(t *testing.T) {
	assert.Empty(t, domain.ValidExercises(nil))
	assert.Empty(t, domain.ValidExercises([]domain.Exercise{{Name: "", Sets: []domain.Set{{}}}}))
}
