package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

func sampleHistory() []store.WorkoutRecord {
	return []store.WorkoutRecord{
		{
			ID:                   "w1",
			Date:                 "2024-01-01",
			CompletedExercises:   []string{"neck-rolls", "calf-raises"},
			TotalExercises:       12,
			CompletionPercentage: 17,
			Notes:                "easy day",
			Routine:              &store.RoutineSnapshot{Name: "Morning"},
			UserID:               "u1",
			CompletedAt:          time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:                   "w2",
			Date:                 "2024-01-02",
			CompletedExercises:   []string{"neck-rolls"},
			TotalExercises:       12,
			CompletionPercentage: 8,
			UserID:               "u1",
			CompletedAt:          time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(sampleHistory(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][4] != "Completion %" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Morning" {
		t.Fatalf("routine name missing: %v", rows[1])
	}
	if rows[1][2] != "neck-rolls; calf-raises" {
		t.Fatalf("completed list joined wrong: %q", rows[1][2])
	}
	// A record without a routine snapshot gets an empty column, not a crash.
	if rows[2][1] != "" {
		t.Fatalf("expected empty routine column: %v", rows[2])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(sampleHistory(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Workouts   []struct {
			ID         string   `json:"id"`
			Routine    string   `json:"routine"`
			Completed  []string `json:"completed_exercises"`
			Completion int      `json:"completion_percentage"`
		} `json:"workouts"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Workouts) != 2 {
		t.Fatalf("unexpected counts: %d / %d", out.Count, len(out.Workouts))
	}
	if out.ExportedAt == "" {
		t.Fatal("missing exported_at stamp")
	}
	if out.Workouts[0].ID != "w1" || out.Workouts[0].Routine != "Morning" || out.Workouts[0].Completion != 17 {
		t.Fatalf("unexpected first workout: %+v", out.Workouts[0])
	}
}

func TestProgressReport(t *testing.T) {
	user := &store.User{
		Name:    "Pat",
		PTName:  "Dr. Smith",
		PTEmail: "smith@clinic.com",
	}
	today := stats.NewDay(2024, time.January, 2)

	report := ProgressReport(user, sampleHistory(), today, time.Sunday)

	for _, want := range []string{
		"Progress Update from Pat",
		"Generated 2024-01-02",
		"Current workout streak: 2 sessions strong!",
		"Total workouts logged: 2",
		"2024-01-01  2/12 exercises (17%)",
		"easy day",
		"For: Dr. Smith <smith@clinic.com>",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}

	// Most recent session listed first.
	if strings.Index(report, "2024-01-02  1/12") > strings.Index(report, "2024-01-01  2/12") {
		t.Fatalf("sessions not newest-first:\n%s", report)
	}
}

func TestProgressReportNoStreakNoPT(t *testing.T) {
	user := &store.User{Name: "Pat"}
	// Today has no record, so the streak is zero.
	today := stats.NewDay(2024, time.January, 10)

	report := ProgressReport(user, sampleHistory(), today, time.Sunday)

	if !strings.Contains(report, "Starting fresh with today's session!") {
		t.Fatalf("missing fresh-start line:\n%s", report)
	}
	if strings.Contains(report, "For:") {
		t.Fatalf("report should omit therapist line without a PT:\n%s", report)
	}
}
