package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend, *MemoryBackend) {
	t.Helper()
	primary := NewMemoryBackend("primary")
	fallback := NewMemoryBackend("fallback")
	s := New(primary, fallback)
	t.Cleanup(func() { s.Close() })
	return s, primary, fallback
}

func testRecord(userID, date string) WorkoutRecord {
	return WorkoutRecord{
		ID:                   "rec-" + userID + "-" + date,
		Date:                 date,
		CompletedExercises:   []string{"calf-raises"},
		TotalExercises:       12,
		CompletionPercentage: 8,
		UserID:               userID,
		CompletedAt:          time.Now(),
	}
}

// ============================================================
// Backends
// ============================================================

func TestSQLiteBackendRoundTrip(t *testing.T) {
	b, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if _, ok, _ := b.Get("missing"); ok {
		t.Fatal("expected missing key")
	}
	if err := b.Set("k", []byte(`[1,2]`)); err != nil {
		t.Fatal(err)
	}
	data, ok, err := b.Get("k")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if string(data) != `[1,2]` {
		t.Fatalf("unexpected data %q", data)
	}

	// Overwrite replaces wholesale.
	if err := b.Set("k", []byte(`[3]`)); err != nil {
		t.Fatal(err)
	}
	data, _, _ = b.Get("k")
	if string(data) != `[3]` {
		t.Fatalf("expected overwrite, got %q", data)
	}

	if err := b.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get("k"); ok {
		t.Fatal("expected key gone after delete")
	}
}

func TestSQLiteBackendReopen(t *testing.T) {
	path := t.TempDir() + "/sub/fysio.db"
	b, err := NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Set("k", []byte(`"v"`)); err != nil {
		t.Fatal(err)
	}
	b.Close()

	// Reopen — should not re-migrate and should keep data.
	b2, err := NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()
	data, ok, _ := b2.Get("k")
	if !ok || string(data) != `"v"` {
		t.Fatalf("expected persisted value, got ok=%v %q", ok, data)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	b := NewFile(t.TempDir() + "/session")

	if _, ok, _ := b.Get("missing"); ok {
		t.Fatal("expected missing key")
	}
	if err := b.Set("fysio_routines", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	data, ok, err := b.Get("fysio_routines")
	if err != nil || !ok || string(data) != `[]` {
		t.Fatalf("get after set: ok=%v err=%v data=%q", ok, err, data)
	}
	if err := b.Delete("fysio_routines"); err != nil {
		t.Fatal(err)
	}
	if err := b.Delete("fysio_routines"); err != nil {
		t.Fatal("deleting absent key should not error:", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Save with fallback
// ============================================================

func TestSaveWithFallbackPrimary(t *testing.T) {
	s, _, _ := newTestStore(t)
	res := s.SaveWithFallback("k", []string{"a"})
	if !res.Success || res.Storage != "primary" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSaveWithFallbackDegrades(t *testing.T) {
	s, primary, _ := newTestStore(t)
	primary.Fail(true)

	res := s.SaveWithFallback("k", []string{"a"})
	if !res.Success || res.Storage != "fallback" {
		t.Fatalf("expected fallback write, got %+v", res)
	}

	// Reads find the fallback copy.
	var v []string
	if !s.load("k", &v) || len(v) != 1 {
		t.Fatalf("expected fallback read, got %v", v)
	}
}

func TestSaveWithFallbackBothFail(t *testing.T) {
	s, primary, fallback := newTestStore(t)
	primary.Fail(true)
	fallback.Fail(true)

	res := s.SaveWithFallback("k", []string{"a"})
	if res.Success {
		t.Fatal("expected failure when both backends are down")
	}
	if res.Storage != "none" {
		t.Fatalf("expected storage none, got %q", res.Storage)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	s, primary, _ := newTestStore(t)
	primary.Set(historyKey, []byte(`{not json`))

	if history := s.LoadHistory("u1"); len(history) != 0 {
		t.Fatalf("malformed payload should read as empty, got %d records", len(history))
	}
}

// ============================================================
// Workout history
// ============================================================

func TestAppendAndLoadHistory(t *testing.T) {
	s, _, _ := newTestStore(t)

	rec := testRecord("u1", "2024-01-01")
	if res := s.AppendRecord(rec); !res.Success {
		t.Fatalf("append failed: %+v", res)
	}

	history := s.LoadHistory("u1")
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	got := history[0]
	if got.ID != rec.ID || got.Date != rec.Date || got.TotalExercises != 12 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.CompletedExercises) != 1 || got.CompletedExercises[0] != "calf-raises" {
		t.Fatalf("completed exercises lost: %+v", got.CompletedExercises)
	}
}

func TestAppendPreservesOtherUsers(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.AppendRecord(testRecord("u1", "2024-01-01"))
	s.AppendRecord(testRecord("u2", "2024-01-01"))
	s.AppendRecord(testRecord("u1", "2024-01-02"))

	if got := len(s.LoadHistory("u1")); got != 2 {
		t.Fatalf("expected 2 records for u1, got %d", got)
	}
	if got := len(s.LoadHistory("u2")); got != 1 {
		t.Fatalf("expected 1 record for u2, got %d", got)
	}
	if got := len(s.LoadHistory("nobody")); got != 0 {
		t.Fatalf("expected no records for unknown user, got %d", got)
	}
}

func TestOverwriteHistory(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.AppendRecord(testRecord("u1", "2024-01-01"))
	s.AppendRecord(testRecord("u2", "2024-01-01"))

	all := s.AllHistory()
	for i := range all {
		if all[i].UserID == "u1" && all[i].Date == "2024-01-01" {
			all[i].Notes = "felt strong"
		}
	}
	if res := s.OverwriteHistory(all); !res.Success {
		t.Fatalf("overwrite failed: %+v", res)
	}

	history := s.LoadHistory("u1")
	if len(history) != 1 || history[0].Notes != "felt strong" {
		t.Fatalf("edit not persisted: %+v", history)
	}
	// Other users untouched.
	if got := len(s.LoadHistory("u2")); got != 1 {
		t.Fatalf("u2 records lost, got %d", got)
	}
}

func TestLoadHistoryDropsMalformedEntries(t *testing.T) {
	s, primary, _ := newTestStore(t)
	primary.Set(historyKey, []byte(`[
		{"id":"ok","date":"2024-01-01","userId":"u1"},
		{"id":"","date":"2024-01-02","userId":"u1"},
		{"id":"no-owner","date":"2024-01-03","userId":""}
	]`))

	history := s.LoadHistory("u1")
	if len(history) != 1 || history[0].ID != "ok" {
		t.Fatalf("expected only the valid record, got %+v", history)
	}
}

func TestAppendSurvivesPrimaryFailure(t *testing.T) {
	s, primary, _ := newTestStore(t)
	s.AppendRecord(testRecord("u1", "2024-01-01"))
	primary.Fail(true)

	res := s.AppendRecord(testRecord("u1", "2024-01-02"))
	if !res.Success || res.Storage != "fallback" {
		t.Fatalf("expected fallback append, got %+v", res)
	}
}

// ============================================================
// Routines
// ============================================================

func testRoutine(userID, id, name string) Routine {
	return Routine{
		ID:     id,
		Name:   name,
		UserID: userID,
		Exercises: []Exercise{
			{ID: "calf-raises", Name: "Calf Raises", Category: "Lower Body", Sets: 2, Reps: 12, Type: ExerciseReps},
		},
		CreatedAt: time.Now(),
	}
}

func TestSaveAndLoadRoutines(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SaveRoutine(testRoutine("u1", "r1", "Morning"))
	s.SaveRoutine(testRoutine("u2", "r2", "Evening"))

	routines := s.LoadRoutines("u1")
	if len(routines) != 1 || routines[0].Name != "Morning" {
		t.Fatalf("unexpected routines: %+v", routines)
	}
	if len(routines[0].Exercises) != 1 || routines[0].Exercises[0].Type != ExerciseReps {
		t.Fatalf("exercises lost: %+v", routines[0].Exercises)
	}
}

func TestDeleteRoutine(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SaveRoutine(testRoutine("u1", "r1", "Morning"))
	s.SaveRoutine(testRoutine("u1", "r2", "Evening"))
	s.SaveRoutine(testRoutine("u2", "r1", "Other"))

	if res := s.DeleteRoutine("u1", "r1"); !res.Success {
		t.Fatalf("delete failed: %+v", res)
	}

	routines := s.LoadRoutines("u1")
	if len(routines) != 1 || routines[0].ID != "r2" {
		t.Fatalf("unexpected routines after delete: %+v", routines)
	}
	// Same id under a different owner survives.
	if got := len(s.LoadRoutines("u2")); got != 1 {
		t.Fatalf("u2 routine lost, got %d", got)
	}
}

// ============================================================
// Session scratch state
// ============================================================

func TestSessionSaveLoadClear(t *testing.T) {
	s, _, _ := newTestStore(t)

	if got := s.LoadSession("u1", "2024-01-01"); got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}

	state := SessionState{
		CompletedExercises: []string{"neck-rolls", "calf-raises"},
		ExerciseNotes: map[string][]NoteEntry{
			"neck-rolls": {{Text: "stiff", Date: "2024-01-01"}},
		},
	}
	if res := s.SaveSession("u1", "2024-01-01", state); !res.Success {
		t.Fatalf("save failed: %+v", res)
	}

	got := s.LoadSession("u1", "2024-01-01")
	if got == nil {
		t.Fatal("expected session")
	}
	if len(got.CompletedExercises) != 2 || got.CompletedExercises[0] != "neck-rolls" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.LastSaved.IsZero() {
		t.Fatal("LastSaved should be stamped on save")
	}
	// Scoped per user and per day.
	if s.LoadSession("u2", "2024-01-01") != nil || s.LoadSession("u1", "2024-01-02") != nil {
		t.Fatal("session leaked across user or day")
	}

	s.ClearSession("u1", "2024-01-01")
	if s.LoadSession("u1", "2024-01-01") != nil {
		t.Fatal("expected session cleared")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettings(t *testing.T) {
	s, _, _ := newTestStore(t)

	if got := s.GetSetting(WeekStartKey, "sunday"); got != "sunday" {
		t.Fatalf("expected default, got %q", got)
	}
	if s.WeekStart() != time.Sunday {
		t.Fatal("default week start should be Sunday")
	}

	if res := s.SetSetting(WeekStartKey, "monday"); !res.Success {
		t.Fatalf("set failed: %+v", res)
	}
	if s.WeekStart() != time.Monday {
		t.Fatal("week start not updated")
	}
}

// ============================================================
// Users
// ============================================================

func TestSignUpAndSignIn(t *testing.T) {
	s, _, _ := newTestStore(t)

	user, err := s.SignUp("Pat@Example.com", "secret1", "Pat", "Dr. Smith", "smith@clinic.com")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.Email != "pat@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password stored in the clear")
	}

	// Session persisted by sign-up.
	if current := s.CurrentUser(); current == nil || current.ID != user.ID {
		t.Fatal("expected current user after sign-up")
	}

	signedIn, err := s.SignIn("pat@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if signedIn.ID != user.ID {
		t.Fatal("sign-in returned a different user")
	}

	if _, err := s.SignIn("pat@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.SignIn("nobody@example.com", "secret1"); err != ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.SignUp("not-an-email", "secret1", "Pat", "", ""); err == nil {
		t.Fatal("expected invalid email error")
	}
	if _, err := s.SignUp("pat@example.com", "short", "Pat", "", ""); err == nil {
		t.Fatal("expected short password error")
	}

	if _, err := s.SignUp("pat@example.com", "secret1", "Pat", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SignUp("pat@example.com", "secret2", "Other Pat", "", ""); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignOut(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.SignUp("pat@example.com", "secret1", "Pat", "", ""); err != nil {
		t.Fatal(err)
	}
	s.SignOut()
	if s.CurrentUser() != nil {
		t.Fatal("expected no current user after sign-out")
	}
}
