package form

import (
	"errors"
	"time"

	"gymtrack/gym-tracker/internal/domain"
)

// Phase is the lifecycle state of the form.
type Phase int

const (
	// PhaseEmptyDraft is a fresh, untouched draft.
	PhaseEmptyDraft Phase = iota
	// PhaseEditing means the draft has been touched (or loaded) and is
	// being edited.
	PhaseEditing
	// PhaseSubmitting means a save is in flight; further submits are
	// refused until it resolves.
	PhaseSubmitting
	// PhaseSubmitted means the save succeeded; the caller should navigate
	// away.
	PhaseSubmitted
	// PhaseLoadFailed means fetching the workout to edit failed; no
	// partially populated draft is kept.
	PhaseLoadFailed
)

var (
	// ErrSubmitPending is returned when Submit is called while a previous
	// submission is still in flight.
	ErrSubmitPending = errors.New("a submission is already in flight")
	// ErrNoValidExercises is returned when the draft fails the validity
	// predicate; no network call may be made in that case.
	ErrNoValidExercises = errors.New("at least one valid exercise is required")
)

// Submission is the validated payload handed to the transport layer,
// stamped with the generation token that must accompany the resolution.
type Submission struct {
	Token     uint64
	Title     string
	Date      string
	Exercises []domain.Exercise
}

// Machine is the workout form state machine. It is plain single-threaded
// state: the owning event loop (the TUI program) serializes access, and
// async completions are re-delivered to it carrying their generation token
// so stale responses can be dropped.
type Machine struct {
	phase           Phase
	draft           Draft
	submitAttempted bool
	lastError       string
	generation      uint64
}

// NewMachine initializes a machine holding a fresh draft.
func NewMachine(now time.Time) *Machine {
	return &Machine{phase: PhaseEmptyDraft, draft: NewDraft(now)}
}

// Phase returns the current lifecycle state.
func (m *Machine) Phase() Phase { return m.phase }

// Draft returns a deep copy of the current draft.
func (m *Machine) Draft() Draft { return m.draft.clone() }

// SubmitAttempted reports whether a submit has been tried, so the UI knows
// to surface the aggregate validation message.
func (m *Machine) SubmitAttempted() bool { return m.submitAttempted }

// LastError returns the message of the most recent load or save failure.
func (m *Machine) LastError() string { return m.lastError }

func (m *Machine) editing() {
	if m.phase == PhaseEmptyDraft {
		m.phase = PhaseEditing
	}
}

// Reset replaces everything with a fresh draft.
func (m *Machine) Reset(now time.Time) {
	*m = Machine{phase: PhaseEmptyDraft, draft: NewDraft(now), generation: m.generation}
}

// --- loading (edit mode) ---

// BeginLoad marks the start of a fetch and returns its generation token.
func (m *Machine) BeginLoad() uint64 {
	m.generation++
	return m.generation
}

// ResolveLoad completes a fetch. A token that is not the latest generation
// is a stale response and is dropped. On failure the machine transitions to
// PhaseLoadFailed and keeps no partially populated draft.
func (m *Machine) ResolveLoad(token uint64, title string, date time.Time, exercises []domain.Exercise, err error) bool {
	if token != m.generation {
		return false
	}
	if err != nil {
		m.phase = PhaseLoadFailed
		m.lastError = err.Error()
		return true
	}
	m.draft = Draft{
		Title:     title,
		Date:      date.Format(DateLayout),
		Exercises: exercises,
	}.clone()
	if len(m.draft.Exercises) == 0 {
		m.draft.Exercises = []domain.Exercise{newExercise()}
	}
	m.phase = PhaseEditing
	m.lastError = ""
	return true
}

// --- field edits ---

// SetTitle replaces the draft title.
func (m *Machine) SetTitle(title string) {
	m.draft.Title = title
	m.editing()
}

// SetDate replaces the draft date (raw text, validated at submit).
func (m *Machine) SetDate(date string) {
	m.draft.Date = date
	m.editing()
}

// AddExercise appends a fresh exercise row.
func (m *Machine) AddExercise() {
	m.draft.Exercises = append(m.draft.Exercises, newExercise())
	m.editing()
}

// RemoveExercise removes the exercise at i. Removing the last remaining
// exercise is a no-op: the form always keeps at least one row to edit.
func (m *Machine) RemoveExercise(i int) {
	if len(m.draft.Exercises) <= 1 || i < 0 || i >= len(m.draft.Exercises) {
		return
	}
	exercises := make([]domain.Exercise, 0, len(m.draft.Exercises)-1)
	exercises = append(exercises, m.draft.Exercises[:i]...)
	exercises = append(exercises, m.draft.Exercises[i+1:]...)
	m.draft.Exercises = exercises
	m.editing()
}

// SetExerciseName replaces the name of exercise i, leaving siblings alone.
func (m *Machine) SetExerciseName(i int, name string) {
	if i < 0 || i >= len(m.draft.Exercises) {
		return
	}
	m.draft.Exercises[i].Name = name
	m.editing()
}

// AddSet appends a zero-valued set to exercise i.
func (m *Machine) AddSet(i int) {
	if i < 0 || i >= len(m.draft.Exercises) {
		return
	}
	e := &m.draft.Exercises[i]
	e.Sets = append(append([]domain.Set(nil), e.Sets...), domain.Set{})
	m.editing()
}

// RemoveSet removes set j from exercise i, with the same floor-of-one rule
// as exercises.
func (m *Machine) RemoveSet(i, j int) {
	if i < 0 || i >= len(m.draft.Exercises) {
		return
	}
	e := &m.draft.Exercises[i]
	if len(e.Sets) <= 1 || j < 0 || j >= len(e.Sets) {
		return
	}
	sets := make([]domain.Set, 0, len(e.Sets)-1)
	sets = append(sets, e.Sets[:j]...)
	sets = append(sets, e.Sets[j+1:]...)
	e.Sets = sets
	m.editing()
}

// SetReps updates set j of exercise i from raw text input.
func (m *Machine) SetReps(i, j int, raw string) {
	if s := m.set(i, j); s != nil {
		s.Reps = CoerceReps(raw)
		m.editing()
	}
}

// SetWeight updates set j of exercise i from raw text input.
func (m *Machine) SetWeight(i, j int, raw string) {
	if s := m.set(i, j); s != nil {
		s.Weight = CoerceWeight(raw)
		m.editing()
	}
}

func (m *Machine) set(i, j int) *domain.Set {
	if i < 0 || i >= len(m.draft.Exercises) {
		return nil
	}
	e := &m.draft.Exercises[i]
	if j < 0 || j >= len(e.Sets) {
		return nil
	}
	return &e.Sets[j]
}

// --- submission ---

// Submit runs the validity predicate and, if it passes, transitions to
// PhaseSubmitting and returns the filtered payload. If the draft is
// invalid the machine stays in editing, records the submit attempt, and
// returns ErrNoValidExercises: the caller must not make a network call.
// While a submission is pending further submits return ErrSubmitPending.
func (m *Machine) Submit() (Submission, error) {
	if m.phase == PhaseSubmitting {
		return Submission{}, ErrSubmitPending
	}
	m.submitAttempted = true
	if !m.draft.Valid() {
		m.editing()
		return Submission{}, ErrNoValidExercises
	}

	m.generation++
	m.phase = PhaseSubmitting
	m.lastError = ""
	return Submission{
		Token:     m.generation,
		Title:     m.draft.Title,
		Date:      m.draft.Date,
		Exercises: m.draft.ValidExercises(),
	}, nil
}

// ResolveSubmit completes a save. Stale tokens are dropped. On success the
// machine transitions to PhaseSubmitted; on failure it returns to editing
// with the error recorded and the draft intact.
func (m *Machine) ResolveSubmit(token uint64, err error) bool {
	if token != m.generation || m.phase != PhaseSubmitting {
		return false
	}
	if err != nil {
		m.phase = PhaseEditing
		m.lastError = err.Error()
		return true
	}
	m.phase = PhaseSubmitted
	m.lastError = ""
	return true
}
