package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jdevries/fysio/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Workouts   []jsonRecord `json:"workouts"`
}

type jsonRecord struct {
	ID                 string   `json:"id"`
	Date               string   `json:"date"`
	Routine            string   `json:"routine,omitempty"`
	CompletedExercises []string `json:"completed_exercises"`
	TotalExercises     int      `json:"total_exercises"`
	Completion         int      `json:"completion_percentage"`
	Notes              string   `json:"notes,omitempty"`
	CompletedAt        string   `json:"completed_at"`
}

func ToJSON(records []store.WorkoutRecord, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		routineName := ""
		if r.Routine != nil {
			routineName = r.Routine.Name
		}
		export.Workouts = append(export.Workouts, jsonRecord{
			ID:                 r.ID,
			Date:               r.Date,
			Routine:            routineName,
			CompletedExercises: r.CompletedExercises,
			TotalExercises:     r.TotalExercises,
			Completion:         r.CompletionPercentage,
			Notes:              r.Notes,
			CompletedAt:        r.CompletedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
