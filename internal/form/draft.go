// Package form holds the editable workout draft and its state machine,
// independent of any UI toolkit. The TUI drives it; tests exercise it
// directly.
package form

import (
	"strconv"
	"strings"
	"time"

	"gymtrack/gym-tracker/internal/domain"
)

// DateLayout is the bare date format the draft edits.
const DateLayout = "2006-01-02"

// Draft is the client-held, not-yet-persisted editable copy of a workout.
// It may transiently hold invalid exercises (a freshly added row has an
// empty name and a zero set); those are filtered out at submit time, not on
// every keystroke.
type Draft struct {
	Title     string
	Date      string // DateLayout
	Exercises []domain.Exercise
}

// NewDraft returns the fresh draft: one exercise with one zero-valued set,
// date defaulted to today, empty title.
func NewDraft(now time.Time) Draft {
	return Draft{
		Date:      now.Format(DateLayout),
		Exercises: []domain.Exercise{newExercise()},
	}
}

func newExercise() domain.Exercise {
	return domain.Exercise{Sets: []domain.Set{{}}}
}

// CoerceReps parses a reps text input. Parse failures coerce to 0 rather
// than surfacing an error: a half-typed number just leaves the set invalid
// until corrected.
func CoerceReps(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// CoerceWeight parses a weight text input with the same leniency as
// CoerceReps.
func CoerceWeight(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// Valid reports whether the draft can be submitted: at least one exercise
// passes the validity predicate.
func (d Draft) Valid() bool {
	for _, e := range d.Exercises {
		if e.Valid() {
			return true
		}
	}
	return false
}

// ValidExercises is the filtered, normalized payload for submission.
func (d Draft) ValidExercises() []domain.Exercise {
	return domain.ValidExercises(d.Exercises)
}

// clone deep-copies the draft so snapshots stay stable while editing
// continues.
func (d Draft) clone() Draft {
	out := d
	out.Exercises = make([]domain.Exercise, len(d.Exercises))
	for i, e := range d.Exercises {
		out.Exercises[i] = e
		out.Exercises[i].Sets = append([]domain.Set(nil), e.Sets...)
	}
	return out
}
