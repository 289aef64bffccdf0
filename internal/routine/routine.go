// Package routine normalizes exercise lists: stable identifier derivation
// and the session-scoped modification overlay applied at render time.
package routine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jdevries/fysio/internal/store"
)

// DeriveID turns an exercise name into its stable identifier: lowercase,
// with every run of non-alphanumeric characters collapsed to a single
// hyphen. Deterministic, so completion state written against a name keeps
// matching the exercise.
func DeriveID(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}

// Modification is a session-only overlay entry keyed by exercise id.
// Override fields are pointers so "unset" and "zero" stay distinct. Added
// marks a synthetic exercise not in the saved routine (Exercise then holds
// the full definition); Removed is a tombstone hiding a routine exercise
// for the session.
type Modification struct {
	Sets     *int
	Reps     *int
	Duration *int
	Name     *string
	Category *string
	Added    bool
	Removed  bool
	Exercise store.Exercise
}

// Overlay is the full set of temporary modifications for a session. Never
// persisted.
type Overlay map[string]Modification

// Apply shallow-merges a modification over a base exercise.
func (m Modification) Apply(ex store.Exercise) store.Exercise {
	if m.Name != nil {
		ex.Name = *m.Name
	}
	if m.Category != nil {
		ex.Category = *m.Category
	}
	if m.Sets != nil {
		ex.Sets = *m.Sets
	}
	if m.Reps != nil {
		ex.Reps = *m.Reps
	}
	if m.Duration != nil {
		ex.Duration = *m.Duration
	}
	return ex
}

// EffectiveExercises layers the overlay over the base list: merge
// overrides, drop tombstoned entries, then append added exercises. Base
// order is preserved for surviving entries; added entries go to the end,
// ordered by id since a map overlay carries no insertion order.
func EffectiveExercises(base []store.Exercise, overlay Overlay) []store.Exercise {
	result := make([]store.Exercise, 0, len(base))
	for _, ex := range base {
		if ex.ID == "" {
			ex.ID = DeriveID(ex.Name)
		}
		mod, ok := overlay[ex.ID]
		if !ok {
			result = append(result, ex)
			continue
		}
		if mod.Removed {
			continue
		}
		result = append(result, mod.Apply(ex))
	}

	for _, ex := range addedExercises(base, overlay) {
		result = append(result, ex)
	}
	return result
}

// addedExercises collects overlay entries flagged Added, skipping ids that
// shadow a base exercise, in a stable order.
func addedExercises(base []store.Exercise, overlay Overlay) []store.Exercise {
	baseIDs := make(map[string]bool, len(base))
	for _, ex := range base {
		id := ex.ID
		if id == "" {
			id = DeriveID(ex.Name)
		}
		baseIDs[id] = true
	}

	var added []store.Exercise
	for id, mod := range overlay {
		if !mod.Added || mod.Removed || baseIDs[id] {
			continue
		}
		ex := mod.Exercise
		if ex.ID == "" {
			ex.ID = id
		}
		added = append(added, ex)
	}
	sort.Slice(added, func(i, j int) bool { return added[i].ID < added[j].ID })
	return added
}

// Describe formats the prescription line under an exercise name.
func Describe(ex store.Exercise) string {
	plural := ""
	if ex.Sets > 1 {
		plural = "s"
	}
	if ex.Type == store.ExerciseReps {
		return fmt.Sprintf("%d set%s of %d repetitions", ex.Sets, plural, ex.Reps)
	}
	minutes := ex.Duration / 60
	seconds := ex.Duration % 60
	if minutes > 0 {
		return fmt.Sprintf("%d set%s of %d:%02d", ex.Sets, plural, minutes, seconds)
	}
	return fmt.Sprintf("%d set%s of %d seconds", ex.Sets, plural, seconds)
}

// NotePlaceholder suggests what to write in an exercise note.
func NotePlaceholder(ex store.Exercise) string {
	name := strings.ToLower(ex.Name)
	switch {
	case strings.Contains(name, "neck"):
		return "Any tension or stiffness in your neck?"
	case strings.Contains(name, "shoulder"):
		return "How did your shoulders feel? Any tightness?"
	case strings.Contains(name, "stretch"):
		return "How did this stretch feel? Any areas of tightness?"
	case strings.Contains(name, "squat"), strings.Contains(name, "leg"):
		return "How did your legs feel during this exercise?"
	case strings.Contains(name, "balance"):
		return "How was your balance? Any difficulty maintaining stability?"
	default:
		return "How did this exercise feel? Any discomfort or notes?"
	}
}

// BasicRoutine is the starter strengthening and stretching program shown to
// users with no saved routine.
func BasicRoutine() []store.Exercise {
	return []store.Exercise{
		{ID: "neck-rolls", Name: "Neck Rolls", Category: "Neck & Cervical", Sets: 1, Reps: 5, Type: store.ExerciseReps},
		{ID: "shoulder-shrugs", Name: "Shoulder Shrugs", Category: "Upper Body", Sets: 2, Reps: 10, Type: store.ExerciseReps},
		{ID: "arm-circles", Name: "Arm Circles", Category: "Upper Body", Sets: 1, Reps: 10, Type: store.ExerciseReps},
		{ID: "wall-push-ups", Name: "Wall Push-ups", Category: "Upper Body", Sets: 2, Reps: 8, Type: store.ExerciseReps},
		{ID: "chest-stretch", Name: "Doorway Chest Stretch", Category: "Flexibility", Sets: 2, Duration: 30, Type: store.ExerciseTime},
		{ID: "cat-cow", Name: "Cat-Cow Stretch", Category: "Back & Spine", Sets: 1, Reps: 8, Type: store.ExerciseReps},
		{ID: "knee-to-chest", Name: "Knee-to-Chest Stretch", Category: "Lower Body", Sets: 2, Duration: 30, Type: store.ExerciseTime},
		{ID: "calf-raises", Name: "Calf Raises", Category: "Lower Body", Sets: 2, Reps: 12, Type: store.ExerciseReps},
		{ID: "mini-squats", Name: "Mini Squats", Category: "Lower Body", Sets: 2, Reps: 10, Type: store.ExerciseReps},
		{ID: "hamstring-stretch", Name: "Seated Hamstring Stretch", Category: "Flexibility", Sets: 2, Duration: 30, Type: store.ExerciseTime},
		{ID: "ankle-circles", Name: "Ankle Circles", Category: "Lower Body", Sets: 1, Reps: 10, Type: store.ExerciseReps},
		{ID: "balance-stands", Name: "Single-Leg Balance", Category: "Balance", Sets: 2, Duration: 15, Type: store.ExerciseTime},
	}
}
