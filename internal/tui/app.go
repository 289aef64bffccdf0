package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdevries/fysio/internal/export"
	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	user  *store.User

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	auth     authModel
	workout  workoutModel
	routines routinesModel
	history  historyModel
	progress progressModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		activeView: viewWorkout,
		auth:       newAuthModel(s),
		workout:    newWorkoutModel(s),
		routines:   newRoutinesModel(s),
		history:    newHistoryModel(s),
		progress:   newProgressModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}

	// Restore a persisted session, if any.
	if user := s.CurrentUser(); user != nil {
		a.setUser(user)
	}
	return a
}

func (a *App) setUser(u *store.User) {
	a.user = u
	a.workout.setUser(u)
	a.routines.setUser(u)
	a.history.setUser(u)
	a.progress.setUser(u)
	a.settings.setUser(u)
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if a.user == nil {
		cmds = append(cmds, a.auth.Init())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.auth.setSize(a.width, contentHeight)
		a.workout.setSize(a.width, contentHeight)
		a.routines.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.progress.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case signedInMsg:
		a.setUser(msg.user)
		a.activeView = viewWorkout
		a.status = "Welcome back, " + msg.user.Name
		a.statusErr = false
		return a, nil

	case signedOutMsg:
		a.setUser(nil)
		a.auth = newAuthModel(a.store)
		a.auth.setSize(a.width, a.height-4)
		a.status = "Signed out"
		a.statusErr = false
		return a, a.auth.Init()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case workoutLoggedMsg:
		a.statusErr = !msg.result.Success
		if msg.result.Success {
			a.status = fmt.Sprintf("Workout logged — %d%% completion (%s)",
				msg.record.CompletionPercentage, msg.result.Storage)
		} else {
			a.status = fmt.Sprintf("Workout logged for this session only (%d%%) — storage unavailable",
				msg.record.CompletionPercentage)
		}
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		return a, cmd

	case routineSelectedMsg:
		// Routine switches come from the routines view but belong to the
		// workout session.
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		// Auth gate: everything but quit goes to the sign-in form.
		if a.user == nil {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.auth, cmd = a.auth.update(msg)
			return a, cmd
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewWorkout
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewRoutines
			return a, a.routines.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewProgress
			return a, a.progress.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewWorkout:
		a.workout, cmd = a.workout.update(msg)
	case viewRoutines:
		a.routines, cmd = a.routines.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewProgress:
		a.progress, cmd = a.progress.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkout:
		return a.workout.formActive
	case viewRoutines:
		return a.routines.formActive
	case viewHistory:
		return a.history.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewRoutines:
		return a.routines.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewProgress:
		return a.progress.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.user == nil {
		return a.auth.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewWorkout:
		content = a.workout.view()
	case viewRoutines:
		content = a.routines.view()
	case viewHistory:
		content = a.history.view()
	case viewProgress:
		content = a.progress.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fysio")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Session indicator in footer
	sessionInfo := ""
	if done := len(a.workout.completed); done > 0 {
		sessionInfo = successStyle.Render(fmt.Sprintf(" ● %d done today", done))
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	formats := []string{"CSV", "JSON", "Progress report (txt)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 2 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	s := a.store
	user := a.user
	weekStart := s.WeekStart()
	return func() tea.Msg {
		history := s.LoadHistory(user.ID)

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("fysio-export-%s.csv", dateStr))
			if err := export.ToCSV(history, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		case 1:
			path = filepath.Join(home, fmt.Sprintf("fysio-export-%s.json", dateStr))
			if err := export.ToJSON(history, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		default:
			path = filepath.Join(home, fmt.Sprintf("fysio-progress-%s.txt", dateStr))
			report := export.ProgressReport(user, history, stats.Today(), weekStart)
			if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
				return statusMsg{text: fmt.Sprintf("Report error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
