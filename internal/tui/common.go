package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jdevries/fysio/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewWorkout viewState = iota
	viewRoutines
	viewHistory
	viewProgress
	viewSettings
)

var viewNames = []string{"Workout", "Routines", "History", "Progress", "Settings"}

// --- Messages ---

type signedInMsg struct {
	user *store.User
}

type signedOutMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type workoutLoggedMsg struct {
	record store.WorkoutRecord
	result store.SaveResult
}

type historyDataMsg struct {
	records []store.WorkoutRecord
}

type progressDataMsg struct {
	history []store.WorkoutRecord
}

type routinesDataMsg struct {
	routines []store.Routine
}

type routineSelectedMsg struct {
	routine *store.Routine
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(secs int) string {
	m := secs / 60
	s := secs % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func statusCmd(format string, args ...any) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...)}
	}
}

func errorCmd(format string, args ...any) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...), isError: true}
	}
}
