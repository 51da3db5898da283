package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/form"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return titleStyle.Render("Loading workout...") + "\n" + dimStyle.Render("q to cancel") + "\n"
	}
	if m.machine.Phase() == form.PhaseLoadFailed {
		return errorStyle.Render("Failed to load workout: "+m.machine.LastError()) + "\n" +
			dimStyle.Render("q to close, then re-run to retry") + "\n"
	}

	draft := m.machine.Draft()
	var b strings.Builder

	header := "New Workout"
	if m.mode == ModeEdit {
		header = "Edit Workout"
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	b.WriteString(m.renderField(fieldRef{kind: fieldTitle}, "Title", draft.Title) + "\n")
	b.WriteString(m.renderField(fieldRef{kind: fieldDate}, "Date", draft.Date) + "\n\n")

	for i, e := range draft.Exercises {
		b.WriteString(m.renderExercise(i, e) + "\n")
	}

	// Live aggregate of what would be persisted, rounded for display only.
	valid := domain.Workout{Exercises: draft.ValidExercises()}
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"volume %.0f kg across %d sets", math.Round(valid.Volume()), valid.TotalSets())) + "\n")

	if m.machine.SubmitAttempted() && !draft.Valid() {
		b.WriteString(errorStyle.Render(
			"Please add at least one valid exercise with sets to save the workout") + "\n")
	}
	if msg := m.machine.LastError(); msg != "" {
		b.WriteString(errorStyle.Render("Save failed: "+msg) + "\n")
	}
	if m.machine.Phase() == form.PhaseSubmitting {
		b.WriteString(focusedStyle.Render("Saving...") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(
		"tab/shift+tab move · ctrl+a add exercise · ctrl+d remove exercise · "+
			"ctrl+n add set · ctrl+x remove set · ctrl+s save · esc quit") + "\n")
	return b.String()
}

func (m Model) renderExercise(i int, e domain.Exercise) string {
	var b strings.Builder
	b.WriteString(m.renderField(fieldRef{kind: fieldExerciseName, exercise: i},
		fmt.Sprintf("Exercise %d", i+1), e.Name) + "\n")
	for j, s := range e.Sets {
		reps := m.renderField(fieldRef{kind: fieldReps, exercise: i, set: j},
			"reps", formatInt(s.Reps))
		weight := m.renderField(fieldRef{kind: fieldWeight, exercise: i, set: j},
			"kg", formatFloat(s.Weight))
		b.WriteString(fmt.Sprintf("  set %d  %s  %s\n", j+1, reps, weight))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  volume %.0f kg", math.Round(e.Volume()))))
	return cardStyle.Render(b.String())
}

func (m Model) renderField(f fieldRef, label, value string) string {
	if m.isFocused(f) {
		return labelStyle.Render(label+": ") + m.input.View()
	}
	if value == "" {
		value = dimStyle.Render("—")
	}
	return labelStyle.Render(label+": ") + value
}

func (m Model) isFocused(f fieldRef) bool {
	cur := m.fields[m.focus]
	return cur.kind == f.kind && cur.exercise == f.exercise && cur.set == f.set
}
