package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jdevries/fysio/internal/routine"
	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

// workoutModel is today's session: the effective exercise checklist,
// per-exercise notes, the session-scoped edit overlay, and the completion
// dialog that turns the session into a WorkoutRecord.
type workoutModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	currentRoutine *store.Routine
	overlay        routine.Overlay
	completed      []string
	exerciseNotes  map[string][]store.NoteEntry
	cursor         int
	editMode       bool
	timer          holdTimer

	formActive bool
	form       *huh.Form
	formKind   string // "note", "add", "adjust", "complete"

	// Form field pointers (survive value copies)
	noteText     *string
	exName       *string
	exCategory   *string
	exSets       *string
	exAmount     *string
	exType       *string
	completeNote *string
	confirmDone  *bool

	adjustingID string
}

func newWorkoutModel(s *store.Store) workoutModel {
	note, name, cat, sets, amount, typ, cnote := "", "", "", "", "", "", ""
	confirm := true
	return workoutModel{
		store:         s,
		overlay:       routine.Overlay{},
		exerciseNotes: map[string][]store.NoteEntry{},
		noteText:      &note,
		exName:        &name,
		exCategory:    &cat,
		exSets:        &sets,
		exAmount:      &amount,
		exType:        &typ,
		completeNote:  &cnote,
		confirmDone:   &confirm,
	}
}

func (w *workoutModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

// setUser is called after sign-in: pick up the most recent saved routine
// and resume any in-progress session for today.
func (w *workoutModel) setUser(u *store.User) {
	w.user = u
	w.overlay = routine.Overlay{}
	w.completed = nil
	w.exerciseNotes = map[string][]store.NoteEntry{}
	w.cursor = 0
	w.editMode = false
	w.currentRoutine = nil

	if u == nil {
		return
	}

	routines := w.store.LoadRoutines(u.ID)
	if len(routines) > 0 {
		r := routines[len(routines)-1]
		w.currentRoutine = &r
	}

	if session := w.store.LoadSession(u.ID, stats.Today().String()); session != nil {
		w.completed = session.CompletedExercises
		if session.ExerciseNotes != nil {
			w.exerciseNotes = session.ExerciseNotes
		}
	}
}

// setRoutine switches the active routine and resets the session selection.
func (w *workoutModel) setRoutine(r *store.Routine) {
	w.currentRoutine = r
	w.completed = nil
	w.overlay = routine.Overlay{}
	w.cursor = 0
	w.editMode = false
	w.saveSession()
}

// exercises is the effective list for this session: the saved routine (or
// the basic program) with the temporary overlay applied.
func (w *workoutModel) exercises() []store.Exercise {
	base := routine.BasicRoutine()
	if w.currentRoutine != nil {
		base = w.currentRoutine.Exercises
	}
	return routine.EffectiveExercises(base, w.overlay)
}

func (w *workoutModel) isDone(id string) bool {
	for _, c := range w.completed {
		if c == id {
			return true
		}
	}
	return false
}

func (w *workoutModel) toggle(id string) {
	if w.isDone(id) {
		kept := w.completed[:0]
		for _, c := range w.completed {
			if c != id {
				kept = append(kept, c)
			}
		}
		w.completed = kept
	} else {
		w.completed = append(w.completed, id)
	}
	w.saveSession()
}

func (w *workoutModel) saveSession() {
	if w.user == nil {
		return
	}
	w.store.SaveSession(w.user.ID, stats.Today().String(), store.SessionState{
		CompletedExercises: w.completed,
		ExerciseNotes:      w.exerciseNotes,
	})
}

func (w workoutModel) update(msg tea.Msg) (workoutModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		if w.timer.tick() {
			return w, statusCmd("Hold complete: %s", w.timer.label)
		}
		return w, nil

	case workoutLoggedMsg:
		w.completed = nil
		w.exerciseNotes = map[string][]store.NoteEntry{}
		w.overlay = routine.Overlay{}
		w.editMode = false
		w.cursor = 0
		return w, nil

	case routineSelectedMsg:
		w.setRoutine(msg.routine)
		return w, nil

	case tea.KeyMsg:
		return w.updateKeys(msg)
	}
	return w, nil
}

func (w workoutModel) updateKeys(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	exercises := w.exercises()

	switch {
	case key.Matches(msg, keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, keys.Down):
		if w.cursor < len(exercises)-1 {
			w.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if w.cursor < len(exercises) {
			w.toggle(exercises[w.cursor].ID)
		}
	case key.Matches(msg, keys.Timer):
		if w.cursor < len(exercises) {
			ex := exercises[w.cursor]
			if ex.Type == store.ExerciseTime {
				w.timer.start(ex.ID, ex.Name, ex.Duration)
			}
		}
	case key.Matches(msg, keys.New):
		if w.editMode {
			return w.showAddForm()
		}
		if w.cursor < len(exercises) {
			return w.showNoteForm(exercises[w.cursor])
		}
	case key.Matches(msg, keys.Edit):
		w.editMode = !w.editMode
		if !w.editMode && len(w.overlay) > 0 {
			return w, statusCmd("Session edits kept — press r to discard them")
		}
	case key.Matches(msg, keys.Enter):
		if w.editMode && w.cursor < len(exercises) {
			return w.showAdjustForm(exercises[w.cursor])
		}
	case key.Matches(msg, keys.Delete):
		if w.editMode && w.cursor < len(exercises) {
			w.removeExercise(exercises[w.cursor].ID)
			if w.cursor >= len(w.exercises()) {
				w.cursor = max(0, len(w.exercises())-1)
			}
		}
	case key.Matches(msg, keys.Reset):
		w.overlay = routine.Overlay{}
		w.editMode = false
		return w, statusCmd("Temporary edits discarded")
	case key.Matches(msg, keys.Complete):
		if len(exercises) == 0 {
			return w, errorCmd("Nothing to log — the routine has no exercises")
		}
		return w.showCompleteForm()
	}
	return w, nil
}

// removeExercise tombstones a routine exercise for this session, or drops a
// synthetic one entirely.
func (w *workoutModel) removeExercise(id string) {
	mod := w.overlay[id]
	if mod.Added {
		delete(w.overlay, id)
		return
	}
	mod.Removed = true
	w.overlay[id] = mod
}

// --- Forms ---

func (w workoutModel) showNoteForm(ex store.Exercise) (workoutModel, tea.Cmd) {
	*w.noteText = ""
	w.formKind = "note"
	w.adjustingID = ex.ID

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(ex.Name).
				Placeholder(routine.NotePlaceholder(ex)).
				Value(w.noteText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showAdjustForm(ex store.Exercise) (workoutModel, tea.Cmd) {
	*w.exSets = strconv.Itoa(ex.Sets)
	if ex.Type == store.ExerciseReps {
		*w.exAmount = strconv.Itoa(ex.Reps)
	} else {
		*w.exAmount = strconv.Itoa(ex.Duration)
	}
	w.formKind = "adjust"
	w.adjustingID = ex.ID

	amountTitle := "Reps"
	if ex.Type == store.ExerciseTime {
		amountTitle = "Hold (seconds)"
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Sets").Value(w.exSets).Validate(validateCount),
			huh.NewInput().Title(amountTitle).Value(w.exAmount).Validate(validateCount),
		).Title(ex.Name),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showAddForm() (workoutModel, tea.Cmd) {
	*w.exName = ""
	*w.exCategory = "General"
	*w.exSets = "1"
	*w.exAmount = "10"
	*w.exType = string(store.ExerciseReps)
	w.formKind = "add"

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise Name").Value(w.exName).Validate(validateRequired),
			huh.NewInput().Title("Category").Value(w.exCategory),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Repetitions", string(store.ExerciseReps)),
					huh.NewOption("Timed hold", string(store.ExerciseTime)),
				).Value(w.exType),
			huh.NewInput().Title("Sets").Value(w.exSets).Validate(validateCount),
			huh.NewInput().Title("Reps / seconds").Value(w.exAmount).Validate(validateCount),
		).Title("Add Exercise (this session)"),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showCompleteForm() (workoutModel, tea.Cmd) {
	*w.completeNote = ""
	*w.confirmDone = true
	w.formKind = "complete"

	done := len(w.completed)
	total := len(w.exercises())

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How did today's session go?").
				Placeholder("Overall notes for this workout (optional)").
				Value(w.completeNote),
			huh.NewConfirm().
				Title(fmt.Sprintf("Log workout with %d of %d exercises done?", done, total)).
				Affirmative("Log it").
				Negative("Not yet").
				Value(w.confirmDone),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) updateForm(msg tea.Msg) (workoutModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		switch w.formKind {
		case "note":
			return w.saveNote()
		case "adjust":
			return w.applyAdjust()
		case "add":
			return w.applyAdd()
		case "complete":
			if *w.confirmDone {
				return w, w.completeWorkout()
			}
			return w, nil
		}
	}

	return w, cmd
}

func (w workoutModel) saveNote() (workoutModel, tea.Cmd) {
	text := strings.TrimSpace(*w.noteText)
	if text == "" {
		return w, nil
	}
	w.exerciseNotes[w.adjustingID] = append(w.exerciseNotes[w.adjustingID], store.NoteEntry{
		Text: text,
		Date: stats.Today().String(),
	})
	w.saveSession()
	return w, statusCmd("Note added")
}

func (w workoutModel) applyAdjust() (workoutModel, tea.Cmd) {
	sets, err1 := strconv.Atoi(*w.exSets)
	amount, err2 := strconv.Atoi(*w.exAmount)
	if err1 != nil || err2 != nil {
		return w, errorCmd("Sets and reps must be numbers")
	}

	var exType store.ExerciseType
	for _, ex := range w.exercises() {
		if ex.ID == w.adjustingID {
			exType = ex.Type
		}
	}

	mod := w.overlay[w.adjustingID]
	mod.Sets = &sets
	if exType == store.ExerciseTime {
		mod.Duration = &amount
	} else {
		mod.Reps = &amount
	}
	w.overlay[w.adjustingID] = mod
	return w, statusCmd("Adjusted for this session")
}

func (w workoutModel) applyAdd() (workoutModel, tea.Cmd) {
	name := strings.TrimSpace(*w.exName)
	sets, err1 := strconv.Atoi(*w.exSets)
	amount, err2 := strconv.Atoi(*w.exAmount)
	if name == "" || err1 != nil || err2 != nil {
		return w, errorCmd("Exercise needs a name and numeric sets/reps")
	}

	// Timestamp suffix keeps session additions from colliding with saved
	// exercises of the same name.
	id := fmt.Sprintf("%s-%d", routine.DeriveID(name), time.Now().UnixMilli())
	ex := store.Exercise{
		ID:       id,
		Name:     name,
		Category: strings.TrimSpace(*w.exCategory),
		Sets:     sets,
		Type:     store.ExerciseType(*w.exType),
	}
	if ex.Type == store.ExerciseTime {
		ex.Duration = amount
	} else {
		ex.Reps = amount
	}

	w.overlay[id] = routine.Modification{Added: true, Exercise: ex}
	return w, statusCmd("Added %q for this session", name)
}

// completeWorkout builds the record from the current session and appends it
// to the history. Storage failure still counts the workout for this
// session; only durability is lost.
func (w workoutModel) completeWorkout() tea.Cmd {
	exercises := w.exercises()
	notes := strings.TrimSpace(*w.completeNote)
	user := w.user

	completed := make([]string, len(w.completed))
	copy(completed, w.completed)

	exerciseNotes := make(map[string][]store.NoteEntry, len(w.exerciseNotes))
	for id, entries := range w.exerciseNotes {
		exerciseNotes[id] = entries
	}

	refs := make([]store.ExerciseRef, 0, len(exercises))
	for _, ex := range exercises {
		category := ex.Category
		if category == "" {
			category = "General"
		}
		refs = append(refs, store.ExerciseRef{ID: ex.ID, Name: ex.Name, Category: category})
	}

	var snapshot *store.RoutineSnapshot
	if w.currentRoutine != nil {
		snapshot = &store.RoutineSnapshot{Name: w.currentRoutine.Name, Exercises: refs}
	}

	pct := 0
	if len(exercises) > 0 {
		pct = int(math.Round(float64(len(completed)) / float64(len(exercises)) * 100))
	}

	s := w.store
	return func() tea.Msg {
		today := stats.Today()
		record := store.WorkoutRecord{
			ID:                   uuid.NewString(),
			Date:                 today.String(),
			CompletedExercises:   completed,
			TotalExercises:       len(exercises),
			CompletionPercentage: pct,
			Notes:                notes,
			ExerciseNotes:        exerciseNotes,
			Exercises:            refs,
			Routine:              snapshot,
			UserID:               user.ID,
			CompletedAt:          time.Now(),
		}

		result := s.AppendRecord(record)
		s.ClearSession(user.ID, today.String())
		return workoutLoggedMsg{record: record, result: result}
	}
}

// --- View ---

func (w workoutModel) view() string {
	if w.width < 20 {
		return "Terminal too small"
	}
	contentWidth := w.width - 4

	if w.formActive && w.form != nil {
		return panelStyle.Width(contentWidth).Render(w.form.View())
	}

	header := w.renderHeader()
	list := w.renderExerciseList()

	sections := []string{header, "", list}
	if w.timer.active() {
		sections = append(sections, "", w.renderTimer())
	}
	sections = append(sections, "", w.renderHint())

	style := panelStyle
	if w.editMode {
		style = activePanelStyle
	}
	return style.Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (w workoutModel) renderHeader() string {
	name := "Basic Strengthening & Stretching"
	if w.currentRoutine != nil {
		name = w.currentRoutine.Name
	}

	exercises := w.exercises()
	done := 0
	for _, ex := range exercises {
		if w.isDone(ex.ID) {
			done++
		}
	}
	pct := 0
	if len(exercises) > 0 {
		pct = int(math.Round(float64(done) / float64(len(exercises)) * 100))
	}

	title := titleStyle.Render(name)
	progress := highlightStyle.Render(fmt.Sprintf("%d/%d done (%d%%)", done, len(exercises), pct))
	date := mutedStyle.Render(stats.Today().String())

	line := fmt.Sprintf("%s  %s  %s", title, progress, date)
	if w.editMode {
		line += "  " + warningStyle.Render("EDIT MODE")
	}
	return line
}

func (w workoutModel) renderExerciseList() string {
	exercises := w.exercises()
	if len(exercises) == 0 {
		return mutedStyle.Render("This routine has no exercises. Press 2 to build one.")
	}

	var rows []string
	for i, ex := range exercises {
		check := "☐"
		style := normalItemStyle
		if w.isDone(ex.ID) {
			check = "☑"
			style = doneItemStyle
		}
		cursor := "  "
		if i == w.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		marker := ""
		if _, modified := w.overlay[ex.ID]; modified {
			marker = accentStyle.Render(" *")
		}
		noteCount := len(w.exerciseNotes[ex.ID])
		noteTag := ""
		if noteCount > 0 {
			noteTag = mutedStyle.Render(fmt.Sprintf("  [%d note%s]", noteCount, plural(noteCount)))
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, check, ex.Name))+marker+noteTag)
		if i == w.cursor {
			detail := fmt.Sprintf("     %s · %s", ex.Category, routine.Describe(ex))
			rows = append(rows, subtitleStyle.Render(detail))
		}
	}
	return strings.Join(rows, "\n")
}

func (w workoutModel) renderTimer() string {
	display := timerRunningStyle.Render(formatClock(w.timer.remaining))
	return fmt.Sprintf("  %s  %s", display, mutedStyle.Render("holding: "+w.timer.label))
}

func (w workoutModel) renderHint() string {
	if w.editMode {
		return mutedStyle.Render("  enter: adjust  n: add exercise  d: remove  r: discard edits  e: done editing")
	}
	return mutedStyle.Render("  space: toggle  n: note  t: hold timer  e: edit session  c: complete workout")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a number of 1 or more")
	}
	return nil
}
