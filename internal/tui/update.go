package tui

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/form"
)

// Update is the bubbletea event loop step.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadResultMsg:
		var exercises []domain.Exercise
		var title string
		var date time.Time
		if msg.err == nil {
			title = msg.workout.Title
			date = msg.workout.Date
			for _, e := range msg.workout.Exercises {
				sets := make([]domain.Set, len(e.Sets))
				for j, s := range e.Sets {
					sets[j] = domain.Set{Reps: s.Reps, Weight: s.Weight}
				}
				exercises = append(exercises, domain.Exercise{Name: e.Name, Sets: sets})
			}
		}
		if m.machine.ResolveLoad(msg.token, title, date, exercises, msg.err) {
			m.loading = false
			m.rebuildFields()
			m.focus = 0
			m.syncInput()
		}
		return m, nil

	case saveResultMsg:
		if m.machine.ResolveSubmit(msg.token, msg.err) && m.machine.Phase() == form.PhaseSubmitted {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.machine.Phase() == form.PhaseLoadFailed {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	submitting := m.machine.Phase() == form.PhaseSubmitting

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter", "tab", "down":
		if submitting {
			return m, nil
		}
		m.applyInput()
		m.focus = (m.focus + 1) % len(m.fields)
		m.syncInput()
		return m, nil

	case "shift+tab", "up":
		if submitting {
			return m, nil
		}
		m.applyInput()
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		m.syncInput()
		return m, nil

	case "ctrl+a": // add exercise
		if submitting {
			return m, nil
		}
		m.applyInput()
		m.machine.AddExercise()
		m.rebuildFields()
		m.syncInput()
		return m, nil

	case "ctrl+d": // remove focused exercise (no-op on the last one)
		if submitting {
			return m, nil
		}
		if f := m.fields[m.focus]; f.kind != fieldTitle && f.kind != fieldDate {
			m.machine.RemoveExercise(f.exercise)
			m.rebuildFields()
			m.focus = 0
			m.syncInput()
		}
		return m, nil

	case "ctrl+n": // add set to focused exercise
		if submitting {
			return m, nil
		}
		if f := m.fields[m.focus]; f.kind != fieldTitle && f.kind != fieldDate {
			m.applyInput()
			m.machine.AddSet(f.exercise)
			m.rebuildFields()
			m.syncInput()
		}
		return m, nil

	case "ctrl+x": // remove focused set (no-op on the last one)
		if submitting {
			return m, nil
		}
		if f := m.fields[m.focus]; f.kind == fieldReps || f.kind == fieldWeight {
			m.machine.RemoveSet(f.exercise, f.set)
			m.rebuildFields()
			m.syncInput()
		}
		return m, nil

	case "ctrl+s": // submit
		m.applyInput()
		sub, err := m.machine.Submit()
		if err != nil {
			// Invalid draft or a save already pending: stay in the form,
			// View surfaces the message. No network call is made.
			return m, nil
		}
		return m, m.saveCmd(sub)
	}

	if submitting {
		// The form stays visible but read-only while the save is in flight.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput()
	return m, cmd
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
