package form_test

import (
	"errors"
	"testing"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 11, 10, 9, 30, 0, 0, time.UTC)

func validMachine(t *testing.T) *form.Machine {
	t.Helper()
	m := form.NewMachine(now)
	m.SetExerciseName(0, "Squats")
	m.SetReps(0, 0, "5")
	m.SetWeight(0, 0, "100")
	return m
}

func TestNewMachine_FreshDraft(t *testing.T) {
	m := form.NewMachine(now)
	assert.Equal(t, form.PhaseEmptyDraft, m.Phase())

	d := m.Draft()
	assert.Empty(t, d.Title)
	assert.Equal(t, "2024-11-10", d.Date)
	require.Len(t, d.Exercises, 1)
	require.Len(t, d.Exercises[0].Sets, 1)
	assert.Equal(t, domain.Set{}, d.Exercises[0].Sets[0])
}

func TestCoercion_Lenient(t *testing.T) {
	assert.Equal(t, 12, form.CoerceReps(" 12 "))
	assert.Equal(t, 0, form.CoerceReps("abc"))
	assert.Equal(t, 0, form.CoerceReps(""))
	assert.Equal(t, 0, form.CoerceReps("7.5")) // reps are integers

	assert.Equal(t, 62.5, form.CoerceWeight("62.5"))
	assert.Equal(t, 0.0, form.CoerceWeight("heavy"))
	assert.Equal(t, 0.0, form.CoerceWeight(""))
}

func TestRemoveExercise_FloorOfOne(t *testing.T) {
	m := form.NewMachine(now)
	m.RemoveExercise(0)
	assert.Len(t, m.Draft().Exercises, 1)

	m.AddExercise()
	assert.Len(t, m.Draft().Exercises, 2)
	m.RemoveExercise(1)
	assert.Len(t, m.Draft().Exercises, 1)
}

func TestRemoveSet_FloorOfOne(t *testing.T) {
	m := form.NewMachine(now)
	m.RemoveSet(0, 0)
	assert.Len(t, m.Draft().Exercises[0].Sets, 1)

	m.AddSet(0)
	m.RemoveSet(0, 0)
	assert.Len(t, m.Draft().Exercises[0].Sets, 1)
}

func TestFieldEdits_DoNotTouchSiblings(t *testing.T) {
	m := form.NewMachine(now)
	m.SetExerciseName(0, "Squats")
	m.AddExercise()
	m.SetExerciseName(1, "Deadlift")
	m.AddSet(0)

	m.SetReps(0, 1, "8")
	m.SetWeight(0, 1, "90")

	d := m.Draft()
	assert.Equal(t, domain.Set{}, d.Exercises[0].Sets[0])
	assert.Equal(t, domain.Set{Reps: 8, Weight: 90}, d.Exercises[0].Sets[1])
	assert.Equal(t, "Deadlift", d.Exercises[1].Name)
	assert.Len(t, d.Exercises[1].Sets, 1)
}

func TestDraftSnapshot_Isolated(t *testing.T) {
	m := validMachine(t)
	snapshot := m.Draft()
	m.SetExerciseName(0, "Changed")
	assert.Equal(t, "Squats", snapshot.Exercises[0].Name)
}

func TestSubmit_InvalidDraft(t *testing.T) {
	m := form.NewMachine(now)
	_, err := m.Submit()
	require.ErrorIs(t, err, form.ErrNoValidExercises)
	assert.True(t, m.SubmitAttempted())
	assert.Equal(t, form.PhaseEditing, m.Phase())
}

func TestSubmit_FiltersPayload(t *testing.T) {
	m := validMachine(t)
	m.AddExercise() // stays empty, must be filtered out

	sub, err := m.Submit()
	require.NoError(t, err)
	assert.Equal(t, form.PhaseSubmitting, m.Phase())
	require.Len(t, sub.Exercises, 1)
	assert.Equal(t, "Squats", sub.Exercises[0].Name)
	assert.Equal(t, "2024-11-10", sub.Date)

	// The dropped row is still in the draft, only the payload is filtered.
	assert.Len(t, m.Draft().Exercises, 2)
}

func TestSubmit_DoubleSubmitGuard(t *testing.T) {
	m := validMachine(t)
	_, err := m.Submit()
	require.NoError(t, err)

	_, err = m.Submit()
	assert.ErrorIs(t, err, form.ErrSubmitPending)
}

func TestResolveSubmit_Success(t *testing.T) {
	m := validMachine(t)
	sub, err := m.Submit()
	require.NoError(t, err)

	assert.True(t, m.ResolveSubmit(sub.Token, nil))
	assert.Equal(t, form.PhaseSubmitted, m.Phase())
}

func TestResolveSubmit_FailureKeepsDraft(t *testing.T) {
	m := validMachine(t)
	sub, err := m.Submit()
	require.NoError(t, err)

	assert.True(t, m.ResolveSubmit(sub.Token, errors.New("connection refused")))
	assert.Equal(t, form.PhaseEditing, m.Phase())
	assert.Equal(t, "connection refused", m.LastError())
	assert.Equal(t, "Squats", m.Draft().Exercises[0].Name)
}

func TestResolveSubmit_StaleTokenDropped(t *testing.T) {
	m := validMachine(t)
	sub, err := m.Submit()
	require.NoError(t, err)

	// A response from a request that is no longer current must be ignored.
	assert.False(t, m.ResolveSubmit(sub.Token-1, nil))
	assert.Equal(t, form.PhaseSubmitting, m.Phase())
}

func TestResolveLoad_Success(t *testing.T) {
	m := form.NewMachine(now)
	token := m.BeginLoad()

	exercises := []domain.Exercise{{Name: "Bench Press", Sets: []domain.Set{{Reps: 10, Weight: 80}}}}
	date := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, m.ResolveLoad(token, "Push Day", date, exercises, nil))

	d := m.Draft()
	assert.Equal(t, form.PhaseEditing, m.Phase())
	assert.Equal(t, "Push Day", d.Title)
	assert.Equal(t, "2024-11-01", d.Date)
	require.Len(t, d.Exercises, 1)
	assert.Equal(t, "Bench Press", d.Exercises[0].Name)
}

func TestResolveLoad_Failure(t *testing.T) {
	m := form.NewMachine(now)
	token := m.BeginLoad()

	require.True(t, m.ResolveLoad(token, "", time.Time{}, nil, errors.New("404")))
	assert.Equal(t, form.PhaseLoadFailed, m.Phase())
	assert.Equal(t, "404", m.LastError())
}

func TestResolveLoad_StaleDropped(t *testing.T) {
	m := form.NewMachine(now)
	stale := m.BeginLoad()
	current := m.BeginLoad()

	assert.False(t, m.ResolveLoad(stale, "old", now, nil, nil))
	assert.Equal(t, form.PhaseEmptyDraft, m.Phase())

	require.True(t, m.ResolveLoad(current, "new", now, nil, nil))
	assert.Equal(t, "new", m.Draft().Title)
}
