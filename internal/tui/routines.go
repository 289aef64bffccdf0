package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jdevries/fysio/internal/routine"
	"github.com/jdevries/fysio/internal/store"
)

// routinesModel lists saved routines and hosts the builder. Saving is
// all-or-nothing: an empty name or an empty exercise list blocks the write.
type routinesModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	routines  []store.Routine
	cursor    int
	currentID string

	building         bool
	builderName      string
	builderExercises []store.Exercise
	builderCursor    int

	formActive bool
	form       *huh.Form
	formKind   string // "name", "exercise", "catalog", "delete"

	// Form field pointers (survive value copies)
	name          *string
	exName        *string
	exCategory    *string
	exSets        *string
	exAmount      *string
	exType        *string
	catalogPicks  *[]string
	confirmDelete *bool
}

func newRoutinesModel(s *store.Store) routinesModel {
	name, exName, exCat, exSets, exAmount, exType := "", "", "", "", "", ""
	var picks []string
	confirm := false
	return routinesModel{
		store:         s,
		name:          &name,
		exName:        &exName,
		exCategory:    &exCat,
		exSets:        &exSets,
		exAmount:      &exAmount,
		exType:        &exType,
		catalogPicks:  &picks,
		confirmDelete: &confirm,
	}
}

func (r *routinesModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *routinesModel) setUser(u *store.User) {
	r.user = u
	r.routines = nil
	r.cursor = 0
	r.building = false
	r.currentID = ""
	if u != nil {
		routines := r.store.LoadRoutines(u.ID)
		if len(routines) > 0 {
			r.currentID = routines[len(routines)-1].ID
		}
	}
}

func (r routinesModel) refresh() tea.Cmd {
	if r.user == nil {
		return nil
	}
	userID := r.user.ID
	s := r.store
	return func() tea.Msg {
		return routinesDataMsg{routines: s.LoadRoutines(userID)}
	}
}

func (r routinesModel) update(msg tea.Msg) (routinesModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routinesDataMsg:
		r.routines = msg.routines
		if r.cursor >= len(r.routines) {
			r.cursor = max(0, len(r.routines)-1)
		}
		return r, nil

	case tea.KeyMsg:
		if r.building {
			return r.updateBuilder(msg)
		}
		return r.updateList(msg)
	}
	return r, nil
}

func (r routinesModel) updateList(msg tea.KeyMsg) (routinesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Matches(msg, keys.Down):
		if r.cursor < len(r.routines)-1 {
			r.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if r.cursor < len(r.routines) {
			selected := r.routines[r.cursor]
			r.currentID = selected.ID
			return r, tea.Batch(
				func() tea.Msg { return routineSelectedMsg{routine: &selected} },
				statusCmd("Switched to %q", selected.Name),
			)
		}
	case key.Matches(msg, keys.New):
		r.building = true
		r.builderName = ""
		r.builderExercises = nil
		r.builderCursor = 0
		return r.showNameForm()
	case key.Matches(msg, keys.Delete):
		if r.cursor < len(r.routines) {
			return r.showDeleteForm()
		}
	}
	return r, nil
}

func (r routinesModel) updateBuilder(msg tea.KeyMsg) (routinesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		r.building = false
		return r, nil
	case key.Matches(msg, keys.Up):
		if r.builderCursor > 0 {
			r.builderCursor--
		}
	case key.Matches(msg, keys.Down):
		if r.builderCursor < len(r.builderExercises)-1 {
			r.builderCursor++
		}
	case key.Matches(msg, keys.New):
		return r.showExerciseForm()
	case key.Matches(msg, keys.Enter):
		return r.showCatalogForm()
	case key.Matches(msg, keys.Edit):
		return r.showNameForm()
	case key.Matches(msg, keys.Delete):
		if r.builderCursor < len(r.builderExercises) {
			r.builderExercises = append(
				r.builderExercises[:r.builderCursor],
				r.builderExercises[r.builderCursor+1:]...,
			)
			if r.builderCursor >= len(r.builderExercises) {
				r.builderCursor = max(0, len(r.builderExercises)-1)
			}
		}
	case key.Matches(msg, keys.Complete):
		return r.saveRoutine()
	}
	return r, nil
}

// saveRoutine validates and persists the built routine. Validation errors
// keep the builder open and write nothing.
func (r routinesModel) saveRoutine() (routinesModel, tea.Cmd) {
	if strings.TrimSpace(r.builderName) == "" || len(r.builderExercises) == 0 {
		return r, errorCmd("Please enter a routine name and add at least one exercise")
	}

	saved := store.Routine{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(r.builderName),
		Exercises: r.builderExercises,
		CreatedAt: time.Now(),
		UserID:    r.user.ID,
	}

	result := r.store.SaveRoutine(saved)
	r.building = false
	r.currentID = saved.ID

	cmds := []tea.Cmd{
		r.refresh(),
		func() tea.Msg { return routineSelectedMsg{routine: &saved} },
	}
	if result.Success {
		cmds = append(cmds, statusCmd("Routine %q saved (%s)", saved.Name, result.Storage))
	} else {
		// Still usable this session; only durability was lost.
		cmds = append(cmds, errorCmd("Routine %q kept for this session only — storage unavailable", saved.Name))
	}
	return r, tea.Batch(cmds...)
}

// --- Forms ---

func (r routinesModel) showNameForm() (routinesModel, tea.Cmd) {
	*r.name = r.builderName
	r.formKind = "name"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Routine Name").Value(r.name).Validate(validateRequired),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) showExerciseForm() (routinesModel, tea.Cmd) {
	*r.exName = ""
	*r.exCategory = "General"
	*r.exSets = "1"
	*r.exAmount = "10"
	*r.exType = string(store.ExerciseReps)
	r.formKind = "exercise"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise Name").Value(r.exName).Validate(validateRequired),
			huh.NewInput().Title("Category").Value(r.exCategory),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Repetitions", string(store.ExerciseReps)),
					huh.NewOption("Timed hold", string(store.ExerciseTime)),
				).Value(r.exType),
			huh.NewInput().Title("Sets").Value(r.exSets).Validate(validateCount),
			huh.NewInput().Title("Reps / seconds").Value(r.exAmount).Validate(validateCount),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) showCatalogForm() (routinesModel, tea.Cmd) {
	*r.catalogPicks = nil
	r.formKind = "catalog"

	var opts []huh.Option[string]
	for _, ex := range routine.BasicRoutine() {
		label := fmt.Sprintf("%-26s %s", ex.Name, routine.Describe(ex))
		opts = append(opts, huh.NewOption(label, ex.ID))
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Add from the basic program").
				Options(opts...).
				Value(r.catalogPicks),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) showDeleteForm() (routinesModel, tea.Cmd) {
	*r.confirmDelete = false
	r.formKind = "delete"

	target := r.routines[r.cursor]
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete routine %q? This cannot be undone.", target.Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(r.confirmDelete),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) updateForm(msg tea.Msg) (routinesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		switch r.formKind {
		case "name":
			r.builderName = strings.TrimSpace(*r.name)
			return r, nil
		case "exercise":
			return r.addBuilderExercise()
		case "catalog":
			return r.addCatalogExercises()
		case "delete":
			if *r.confirmDelete {
				return r.deleteSelected()
			}
			return r, nil
		}
	}

	return r, cmd
}

func (r routinesModel) addBuilderExercise() (routinesModel, tea.Cmd) {
	name := strings.TrimSpace(*r.exName)
	sets, err1 := strconv.Atoi(*r.exSets)
	amount, err2 := strconv.Atoi(*r.exAmount)
	if name == "" || err1 != nil || err2 != nil {
		return r, errorCmd("Exercise needs a name and numeric sets/reps")
	}

	ex := store.Exercise{
		ID:       routine.DeriveID(name),
		Name:     name,
		Category: strings.TrimSpace(*r.exCategory),
		Sets:     sets,
		Type:     store.ExerciseType(*r.exType),
	}
	if ex.Type == store.ExerciseTime {
		ex.Duration = amount
	} else {
		ex.Reps = amount
	}

	r.builderExercises = append(r.builderExercises, ex)
	r.builderCursor = len(r.builderExercises) - 1
	return r, nil
}

// addCatalogExercises appends the picked starter exercises, skipping ids the
// builder already has.
func (r routinesModel) addCatalogExercises() (routinesModel, tea.Cmd) {
	have := make(map[string]bool, len(r.builderExercises))
	for _, ex := range r.builderExercises {
		have[ex.ID] = true
	}
	picked := make(map[string]bool, len(*r.catalogPicks))
	for _, id := range *r.catalogPicks {
		picked[id] = true
	}

	added := 0
	for _, ex := range routine.BasicRoutine() {
		if !picked[ex.ID] || have[ex.ID] {
			continue
		}
		r.builderExercises = append(r.builderExercises, ex)
		have[ex.ID] = true
		added++
	}
	if added == 0 {
		return r, nil
	}
	r.builderCursor = len(r.builderExercises) - 1
	return r, statusCmd("Added %d exercise%s from the basic program", added, plural(added))
}

func (r routinesModel) deleteSelected() (routinesModel, tea.Cmd) {
	target := r.routines[r.cursor]
	result := r.store.DeleteRoutine(r.user.ID, target.ID)

	cmds := []tea.Cmd{r.refresh()}
	if target.ID == r.currentID {
		r.currentID = ""
		cmds = append(cmds, func() tea.Msg { return routineSelectedMsg{routine: nil} })
	}
	if result.Success {
		cmds = append(cmds, statusCmd("Routine %q deleted", target.Name))
	} else {
		cmds = append(cmds, errorCmd("Routine %q removed this session, but the change couldn't be saved", target.Name))
	}
	return r, tea.Batch(cmds...)
}

// --- View ---

func (r routinesModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		return panelStyle.Width(w).Render(r.form.View())
	}

	if r.building {
		return r.renderBuilder(w)
	}
	return r.renderList(w)
}

func (r routinesModel) renderList(w int) string {
	title := titleStyle.Render("My Routines")

	if len(r.routines) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No saved routines — the basic program is active."),
			mutedStyle.Render("Press n to build one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, rt := range r.routines {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		current := ""
		if rt.ID == r.currentID {
			current = successStyle.Render("  ● active")
		}
		line := style.Render(fmt.Sprintf("%s%-28s %2d exercises", cursor, rt.Name, len(rt.Exercises)))
		rows = append(rows, line+current)
	}

	rows = append(rows, "", mutedStyle.Render("  enter: use routine  n: new  d: delete  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (r routinesModel) renderBuilder(w int) string {
	name := r.builderName
	if name == "" {
		name = subtitleStyle.Render("(unnamed — press e to name it)")
	}
	title := titleStyle.Render("New Routine: ") + highlightStyle.Render(name)

	var rows []string
	rows = append(rows, title, "")

	if len(r.builderExercises) == 0 {
		rows = append(rows, mutedStyle.Render("No exercises yet. Press n to add one."))
	}
	for i, ex := range r.builderExercises {
		cursor := "  "
		style := normalItemStyle
		if i == r.builderCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, ex.Name))+
			subtitleStyle.Render("  "+routine.Describe(ex)))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: add from catalog  n: add custom  e: rename  d: remove  c: save  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
