package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

// historyModel browses logged workouts. Note edits rewrite the whole
// persisted collection: load everything, swap the edited record in, write
// it back.
type historyModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	records      []store.WorkoutRecord // newest first
	cursor       int
	detail       bool
	detailCursor int

	formActive bool
	form       *huh.Form
	formKind   string // "general", "exnote"

	noteText    *string
	editingDate string
	editingExID string
}

func newHistoryModel(s *store.Store) historyModel {
	note := ""
	return historyModel{store: s, noteText: &note}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h *historyModel) setUser(u *store.User) {
	h.user = u
	h.records = nil
	h.cursor = 0
	h.detail = false
}

func (h historyModel) refresh() tea.Cmd {
	if h.user == nil {
		return nil
	}
	userID := h.user.ID
	s := h.store
	return func() tea.Msg {
		records := s.LoadHistory(userID)
		// Newest first for browsing.
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
		return historyDataMsg{records: records}
	}
}

func (h historyModel) selected() *store.WorkoutRecord {
	if h.cursor < len(h.records) {
		return &h.records[h.cursor]
	}
	return nil
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		h.records = msg.records
		if h.cursor >= len(h.records) {
			h.cursor = max(0, len(h.records)-1)
		}
		return h, nil

	case tea.KeyMsg:
		if h.detail {
			return h.updateDetail(msg)
		}
		return h.updateList(msg)
	}
	return h, nil
}

func (h historyModel) updateList(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, keys.Down):
		if h.cursor < len(h.records)-1 {
			h.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if h.selected() != nil {
			h.detail = true
			h.detailCursor = 0
		}
	}
	return h, nil
}

func (h historyModel) updateDetail(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	record := h.selected()
	if record == nil {
		h.detail = false
		return h, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		h.detail = false
	case key.Matches(msg, keys.Up):
		if h.detailCursor > 0 {
			h.detailCursor--
		}
	case key.Matches(msg, keys.Down):
		if h.detailCursor < len(record.Exercises)-1 {
			h.detailCursor++
		}
	case key.Matches(msg, keys.Edit):
		return h.showGeneralNoteForm(record)
	case key.Matches(msg, keys.New):
		if h.detailCursor < len(record.Exercises) {
			return h.showExerciseNoteForm(record, record.Exercises[h.detailCursor])
		}
	}
	return h, nil
}

// --- Forms ---

func (h historyModel) showGeneralNoteForm(record *store.WorkoutRecord) (historyModel, tea.Cmd) {
	*h.noteText = record.Notes
	h.formKind = "general"
	h.editingDate = record.Date

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Workout notes for " + record.Date).
				Value(h.noteText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) showExerciseNoteForm(record *store.WorkoutRecord, ex store.ExerciseRef) (historyModel, tea.Cmd) {
	*h.noteText = ""
	h.formKind = "exnote"
	h.editingDate = record.Date
	h.editingExID = ex.ID

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Add note: " + ex.Name).
				Value(h.noteText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		switch h.formKind {
		case "general":
			return h.saveGeneralNote()
		case "exnote":
			return h.saveExerciseNote()
		}
	}

	return h, cmd
}

// mutateRecord finds this user's record by date in the full collection,
// applies fn, and overwrites the persisted collection.
func (h historyModel) mutateRecord(date string, fn func(*store.WorkoutRecord)) store.SaveResult {
	all := h.store.AllHistory()
	for i := range all {
		if all[i].UserID == h.user.ID && all[i].Date == date {
			fn(&all[i])
			break
		}
	}
	return h.store.OverwriteHistory(all)
}

func (h historyModel) saveGeneralNote() (historyModel, tea.Cmd) {
	text := strings.TrimSpace(*h.noteText)
	result := h.mutateRecord(h.editingDate, func(r *store.WorkoutRecord) {
		r.Notes = text
	})
	cmds := []tea.Cmd{h.refresh()}
	if result.Success {
		cmds = append(cmds, statusCmd("Notes updated"))
	} else {
		cmds = append(cmds, errorCmd("Notes updated for this session only — storage unavailable"))
	}
	return h, tea.Batch(cmds...)
}

func (h historyModel) saveExerciseNote() (historyModel, tea.Cmd) {
	text := strings.TrimSpace(*h.noteText)
	if text == "" {
		return h, nil
	}
	exID := h.editingExID
	result := h.mutateRecord(h.editingDate, func(r *store.WorkoutRecord) {
		if r.ExerciseNotes == nil {
			r.ExerciseNotes = map[string][]store.NoteEntry{}
		}
		r.ExerciseNotes[exID] = append(r.ExerciseNotes[exID], store.NoteEntry{
			Text: text,
			Date: stats.Today().String(),
		})
	})
	cmds := []tea.Cmd{h.refresh()}
	if result.Success {
		cmds = append(cmds, statusCmd("Note added"))
	} else {
		cmds = append(cmds, errorCmd("Note added for this session only — storage unavailable"))
	}
	return h, tea.Batch(cmds...)
}

// --- View ---

func (h historyModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		return panelStyle.Width(w).Render(h.form.View())
	}

	if h.detail {
		return h.renderDetail(w)
	}
	return h.renderList(w)
}

func (h historyModel) renderList(w int) string {
	title := titleStyle.Render("Workout History")

	if len(h.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No workouts logged yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-26s %10s %8s", "Date", "Routine", "Done", "Rate"))
	rows = append(rows, header)

	for i, r := range h.records {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		routineName := "Basic program"
		if r.Routine != nil {
			routineName = r.Routine.Name
		}
		noteTag := " "
		if r.Notes != "" || len(r.ExerciseNotes) > 0 {
			noteTag = "✎"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-26s %6d/%-3d %6d%% %s",
			cursor, r.Date, routineName, len(r.CompletedExercises), r.TotalExercises, r.CompletionPercentage, noteTag)))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: details"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h historyModel) renderDetail(w int) string {
	r := h.selected()
	if r == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Nothing selected"))
	}

	routineName := "Basic program"
	if r.Routine != nil {
		routineName = r.Routine.Name
	}
	title := titleStyle.Render(r.Date) + "  " + highlightStyle.Render(routineName) +
		"  " + mutedStyle.Render(fmt.Sprintf("%d%% complete", r.CompletionPercentage))

	var rows []string
	rows = append(rows, title, "")

	if r.Notes != "" {
		rows = append(rows, subtitleStyle.Render("Notes: ")+r.Notes, "")
	}

	done := make(map[string]bool, len(r.CompletedExercises))
	for _, id := range r.CompletedExercises {
		done[id] = true
	}

	for i, ex := range r.Exercises {
		check := "☐"
		style := normalItemStyle
		if done[ex.ID] {
			check = "☑"
		}
		cursor := "  "
		if i == h.detailCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, check, ex.Name)))
		for _, note := range r.ExerciseNotes[ex.ID] {
			rows = append(rows, subtitleStyle.Render(fmt.Sprintf("       %s  %s", note.Date, note.Text)))
		}
	}

	rows = append(rows, "", mutedStyle.Render("  e: edit notes  n: add exercise note  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
