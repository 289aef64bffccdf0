package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdevries/fysio/internal/store"
)

type settingsModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ws := ""
	return settingsModel{
		store:     s,
		weekStart: &ws,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) setUser(u *store.User) {
	s.user = u
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Delete):
			s.store.SignOut()
			return s, func() tea.Msg { return signedOutMsg{} }
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.weekStart = s.store.GetSetting(store.WeekStartKey, "sunday")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).Value(s.weekStart),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		result := s.store.SetSetting(store.WeekStartKey, *s.weekStart)
		if !result.Success {
			return s, errorCmd("Setting kept for this session only — storage unavailable")
		}
		return s, statusCmd("Settings saved")
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(s.form.View())
	}

	title := titleStyle.Render("Settings")

	var rows []string
	rows = append(rows, title, "")

	if s.user != nil {
		rows = append(rows, subtitleStyle.Render("Account"))
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Name", highlightStyle.Render(s.user.Name)))
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Email", highlightStyle.Render(s.user.Email)))
		if s.user.PTName != "" {
			pt := s.user.PTName
			if s.user.PTEmail != "" {
				pt += "  <" + s.user.PTEmail + ">"
			}
			rows = append(rows, fmt.Sprintf("  %-16s %s", "Therapist", highlightStyle.Render(pt)))
		}
		rows = append(rows, "")
	}

	rows = append(rows, subtitleStyle.Render("Preferences"))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Week starts on",
		highlightStyle.Render(s.store.GetSetting(store.WeekStartKey, "sunday"))))

	rows = append(rows, "", mutedStyle.Render("  enter: edit settings  d: sign out"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n")))
}
