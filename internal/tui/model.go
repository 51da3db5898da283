// Package tui is the interactive workout form: a bubbletea program that
// drives the form state machine in internal/form and talks to the server
// through internal/apiclient.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gymtrack/gym-tracker/internal/api"
	"gymtrack/gym-tracker/internal/apiclient"
	"gymtrack/gym-tracker/internal/form"
)

// Mode selects between creating a new workout and editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Field kinds, in form order.
const (
	fieldTitle = iota
	fieldDate
	fieldExerciseName
	fieldReps
	fieldWeight
)

// fieldRef addresses one editable field of the draft.
type fieldRef struct {
	kind     int
	exercise int
	set      int
}

// Model is the bubbletea model for the workout form.
type Model struct {
	client  *apiclient.Client
	machine *form.Machine
	mode    Mode

	userID    string
	workoutID string // edit mode only

	fields []fieldRef
	focus  int
	input  textinput.Model

	width    int
	quitting bool
	loading  bool
}

// loadResultMsg delivers the fetched workout in edit mode. The token lets
// the machine drop responses that arrive after a newer request started.
type loadResultMsg struct {
	token   uint64
	workout *api.WorkoutResponse
	err     error
}

// saveResultMsg delivers the outcome of a create/update call.
type saveResultMsg struct {
	token uint64
	err   error
}

// New creates a form model. workoutID is ignored in create mode.
func New(client *apiclient.Client, mode Mode, userID, workoutID string) Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Focus()

	m := Model{
		client:    client,
		machine:   form.NewMachine(time.Now()),
		mode:      mode,
		userID:    userID,
		workoutID: workoutID,
		input:     input,
		loading:   mode == ModeEdit,
	}
	m.rebuildFields()
	m.syncInput()
	return m
}

// Init starts the fetch in edit mode.
func (m Model) Init() tea.Cmd {
	if m.mode != ModeEdit {
		return textinput.Blink
	}
	token := m.machine.BeginLoad()
	return tea.Batch(textinput.Blink, m.loadCmd(token))
}

func (m Model) loadCmd(token uint64) tea.Cmd {
	client, id := m.client, m.workoutID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()
		workout, err := client.GetWorkout(ctx, id)
		return loadResultMsg{token: token, workout: workout, err: err}
	}
}

func (m Model) saveCmd(sub form.Submission) tea.Cmd {
	client := m.client
	mode, userID, workoutID := m.mode, m.userID, m.workoutID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()

		exercises := make([]api.ExercisePayload, len(sub.Exercises))
		for i, e := range sub.Exercises {
			sets := make([]api.SetPayload, len(e.Sets))
			for j, s := range e.Sets {
				sets[j] = api.SetPayload{Reps: s.Reps, Weight: s.Weight}
			}
			exercises[i] = api.ExercisePayload{Name: e.Name, Sets: sets}
		}

		var err error
		if mode == ModeEdit {
			_, err = client.UpdateWorkout(ctx, workoutID, api.UpdateWorkoutRequest{
				Title:     &sub.Title,
				Date:      &sub.Date,
				Exercises: &exercises,
			})
		} else {
			_, err = client.CreateWorkout(ctx, api.CreateWorkoutRequest{
				UserID:    userID,
				Title:     sub.Title,
				Date:      sub.Date,
				Exercises: exercises,
			})
		}
		return saveResultMsg{token: sub.Token, err: err}
	}
}

// rebuildFields recomputes the flat field list from the draft shape.
func (m *Model) rebuildFields() {
	draft := m.machine.Draft()
	fields := []fieldRef{{kind: fieldTitle}, {kind: fieldDate}}
	for i, e := range draft.Exercises {
		fields = append(fields, fieldRef{kind: fieldExerciseName, exercise: i})
		for j := range e.Sets {
			fields = append(fields,
				fieldRef{kind: fieldReps, exercise: i, set: j},
				fieldRef{kind: fieldWeight, exercise: i, set: j},
			)
		}
	}
	m.fields = fields
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
}

// syncInput loads the focused field's current value into the text input.
func (m *Model) syncInput() {
	m.input.SetValue(m.fieldValue(m.fields[m.focus]))
	m.input.CursorEnd()
}

func (m *Model) fieldValue(f fieldRef) string {
	draft := m.machine.Draft()
	switch f.kind {
	case fieldTitle:
		return draft.Title
	case fieldDate:
		return draft.Date
	case fieldExerciseName:
		return draft.Exercises[f.exercise].Name
	case fieldReps:
		return formatInt(draft.Exercises[f.exercise].Sets[f.set].Reps)
	case fieldWeight:
		return formatFloat(draft.Exercises[f.exercise].Sets[f.set].Weight)
	}
	return ""
}

// applyInput commits the text input's value into the machine.
func (m *Model) applyInput() {
	f := m.fields[m.focus]
	value := m.input.Value()
	switch f.kind {
	case fieldTitle:
		m.machine.SetTitle(value)
	case fieldDate:
		m.machine.SetDate(value)
	case fieldExerciseName:
		m.machine.SetExerciseName(f.exercise, value)
	case fieldReps:
		m.machine.SetReps(f.exercise, f.set, value)
	case fieldWeight:
		m.machine.SetWeight(f.exercise, f.set, value)
	}
}
