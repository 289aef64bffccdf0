package routine

import (
	"testing"

	"github.com/jdevries/fysio/internal/store"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// ============================================================
// Identifier derivation
// ============================================================

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Calf Raises", "calf-raises"},
		{"Wall Push-ups", "wall-push-ups"},
		{"Knee-to-Chest Stretch", "knee-to-chest-stretch"},
		{"  Heel   Slides  ", "heel-slides"},
		{"Cat/Cow (Stretch)", "cat-cow-stretch"},
		{"90/90 Hip Switch", "90-90-hip-switch"},
		{"***", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeriveID(tt.name); got != tt.want {
			t.Fatalf("DeriveID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeriveIDIdempotent(t *testing.T) {
	for _, ex := range BasicRoutine() {
		id := DeriveID(ex.Name)
		if DeriveID(id) != id {
			t.Fatalf("DeriveID not idempotent for %q: %q -> %q", ex.Name, id, DeriveID(id))
		}
	}
}

func TestBasicRoutineIDsUnique(t *testing.T) {
	base := BasicRoutine()
	if len(base) != 12 {
		t.Fatalf("expected 12 starter exercises, got %d", len(base))
	}
	seen := make(map[string]bool)
	for _, ex := range base {
		if ex.ID == "" {
			t.Fatalf("%q has no id", ex.Name)
		}
		if seen[ex.ID] {
			t.Fatalf("duplicate id %q", ex.ID)
		}
		seen[ex.ID] = true
	}
}

// ============================================================
// Overlay
// ============================================================

func TestEffectiveExercisesEmptyOverlay(t *testing.T) {
	base := BasicRoutine()
	got := EffectiveExercises(base, Overlay{})
	if len(got) != len(base) {
		t.Fatalf("length changed: %d -> %d", len(base), len(got))
	}
	for i := range base {
		if got[i] != base[i] {
			t.Fatalf("entry %d changed: %+v", i, got[i])
		}
	}
}

func TestEffectiveExercisesOverride(t *testing.T) {
	base := []store.Exercise{
		{ID: "calf-raises", Name: "Calf Raises", Category: "Lower Body", Sets: 2, Reps: 12, Type: store.ExerciseReps},
	}
	overlay := Overlay{
		"calf-raises": {Sets: intPtr(3), Reps: intPtr(8)},
	}

	got := EffectiveExercises(base, overlay)
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
	if got[0].Sets != 3 || got[0].Reps != 8 {
		t.Fatalf("override not applied: %+v", got[0])
	}
	// Untouched fields survive the merge.
	if got[0].Name != "Calf Raises" || got[0].Category != "Lower Body" {
		t.Fatalf("merge clobbered base fields: %+v", got[0])
	}
	// Base stays unmodified.
	if base[0].Sets != 2 {
		t.Fatal("base mutated")
	}
}

func TestEffectiveExercisesRemoveAndAdd(t *testing.T) {
	base := []store.Exercise{
		{ID: "neck-rolls", Name: "Neck Rolls", Sets: 1, Reps: 5, Type: store.ExerciseReps},
		{ID: "calf-raises", Name: "Calf Raises", Sets: 2, Reps: 12, Type: store.ExerciseReps},
	}
	overlay := Overlay{
		"neck-rolls": {Removed: true},
		"heel-slides": {Added: true, Exercise: store.Exercise{
			ID: "heel-slides", Name: "Heel Slides", Sets: 2, Reps: 10, Type: store.ExerciseReps,
		}},
		"ankle-pumps": {Added: true, Exercise: store.Exercise{
			ID: "ankle-pumps", Name: "Ankle Pumps", Sets: 1, Reps: 15, Type: store.ExerciseReps,
		}},
	}

	got := EffectiveExercises(base, overlay)
	if len(got) != 3 {
		t.Fatalf("expected 3 exercises, got %d: %+v", len(got), got)
	}
	// Surviving base entry keeps its position; added entries follow, by id.
	if got[0].ID != "calf-raises" || got[1].ID != "ankle-pumps" || got[2].ID != "heel-slides" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestEffectiveExercisesDerivesMissingIDs(t *testing.T) {
	base := []store.Exercise{{Name: "Calf Raises", Sets: 2, Reps: 12, Type: store.ExerciseReps}}
	overlay := Overlay{"calf-raises": {Sets: intPtr(5)}}

	got := EffectiveExercises(base, overlay)
	if got[0].ID != "calf-raises" || got[0].Sets != 5 {
		t.Fatalf("derived id not matched against overlay: %+v", got[0])
	}
}

func TestAddedCannotShadowBase(t *testing.T) {
	base := []store.Exercise{{ID: "calf-raises", Name: "Calf Raises", Sets: 2, Reps: 12, Type: store.ExerciseReps}}
	overlay := Overlay{
		"calf-raises": {Added: true, Exercise: store.Exercise{ID: "calf-raises", Name: "Impostor"}},
	}

	got := EffectiveExercises(base, overlay)
	if len(got) != 1 || got[0].Name != "Calf Raises" {
		t.Fatalf("added entry shadowed a base exercise: %+v", got)
	}
}

func TestModificationApply(t *testing.T) {
	ex := store.Exercise{ID: "x", Name: "Old", Category: "General", Sets: 2, Reps: 10}
	mod := Modification{Name: strPtr("New"), Sets: intPtr(0)}

	got := mod.Apply(ex)
	if got.Name != "New" {
		t.Fatalf("name override lost: %+v", got)
	}
	// A set pointer to zero is an explicit zero, not "unset".
	if got.Sets != 0 {
		t.Fatalf("explicit zero not applied: %+v", got)
	}
	if got.Reps != 10 || got.Category != "General" {
		t.Fatalf("nil overrides should leave fields alone: %+v", got)
	}
}

// ============================================================
// Display helpers
// ============================================================

func TestDescribe(t *testing.T) {
	tests := []struct {
		ex   store.Exercise
		want string
	}{
		{store.Exercise{Sets: 2, Reps: 12, Type: store.ExerciseReps}, "2 sets of 12 repetitions"},
		{store.Exercise{Sets: 1, Reps: 5, Type: store.ExerciseReps}, "1 set of 5 repetitions"},
		{store.Exercise{Sets: 2, Duration: 30, Type: store.ExerciseTime}, "2 sets of 30 seconds"},
		{store.Exercise{Sets: 1, Duration: 90, Type: store.ExerciseTime}, "1 set of 1:30"},
		{store.Exercise{Sets: 3, Duration: 120, Type: store.ExerciseTime}, "3 sets of 2:00"},
	}
	for _, tt := range tests {
		if got := Describe(tt.ex); got != tt.want {
			t.Fatalf("Describe(%+v) = %q, want %q", tt.ex, got, tt.want)
		}
	}
}

func TestNotePlaceholder(t *testing.T) {
	if got := NotePlaceholder(store.Exercise{Name: "Neck Rolls"}); got != "Any tension or stiffness in your neck?" {
		t.Fatalf("neck placeholder: %q", got)
	}
	if got := NotePlaceholder(store.Exercise{Name: "Balance Stands"}); got != "How was your balance? Any difficulty maintaining stability?" {
		t.Fatalf("balance placeholder: %q", got)
	}
	if got := NotePlaceholder(store.Exercise{Name: "Rowing"}); got != "How did this exercise feel? Any discomfort or notes?" {
		t.Fatalf("default placeholder: %q", got)
	}
}
