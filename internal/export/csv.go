package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jdevries/fysio/internal/store"
)

func ToCSV(records []store.WorkoutRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Routine", "Completed", "Total", "Completion %", "Notes", "Logged At"}); err != nil {
		return err
	}

	for _, r := range records {
		routineName := ""
		if r.Routine != nil {
			routineName = r.Routine.Name
		}
		row := []string{
			r.Date,
			routineName,
			strings.Join(r.CompletedExercises, "; "),
			fmt.Sprintf("%d", r.TotalExercises),
			fmt.Sprintf("%d", r.CompletionPercentage),
			r.Notes,
			r.CompletedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
