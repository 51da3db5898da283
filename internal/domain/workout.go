package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set is one repetition block of an exercise: how many reps at what weight.
type Set struct {
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"` // kilograms, 0 for bodyweight
}

// Exercise is a named movement with an ordered list of sets. It is embedded
// in its workout document and has no identity of its own.
type Exercise struct {
	Name string `bson:"name" json:"name"`
	Sets []Set  `bson:"sets" json:"sets"`
}

// Workout represents a single dated training session owned by a user.
// Exercises (and their sets) are embedded, never referenced; updates replace
// them wholesale.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Valid reports whether the exercise counts towards a persistable workout:
// a non-empty name (after trimming) and at least one set with positive reps.
func (e Exercise) Valid() bool {
	if strings.TrimSpace(e.Name) == "" {
		return false
	}
	for _, s := range e.Sets {
		if s.Reps > 0 {
			return true
		}
	}
	return false
}

// Volume is the sum of reps*weight over the exercise's sets.
func (e Exercise) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += float64(s.Reps) * s.Weight
	}
	return total
}

// Volume is the total volume across all exercises of the workout.
// Returns 0 for a workout with no exercises.
func (w Workout) Volume() float64 {
	var total float64
	for _, e := range w.Exercises {
		total += e.Volume()
	}
	return total
}

// TotalSets is the number of sets across all exercises of the workout.
func (w Workout) TotalSets() int {
	var n int
	for _, e := range w.Exercises {
		n += len(e.Sets)
	}
	return n
}

// ValidExercises returns the subset of exercises that satisfy Valid, with
// names trimmed and zero-rep sets dropped. Invalid exercises are silently
// discarded rather than reported individually; rejecting an empty result is
// the caller's job.
func ValidExercises(exercises []Exercise) []Exercise {
	result := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if !e.Valid() {
			continue
		}
		sets := make([]Set, 0, len(e.Sets))
		for _, s := range e.Sets {
			if s.Reps > 0 {
				sets = append(sets, s)
			}
		}
		result = append(result, Exercise{
			Name: strings.TrimSpace(e.Name),
			Sets: sets,
		})
	}
	return result
}
