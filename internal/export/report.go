package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

// ProgressReport renders the plain-text summary a patient shares with their
// physical therapist: streak, adherence grades, and the most recent
// sessions.
func ProgressReport(user *store.User, history []store.WorkoutRecord, today stats.Day, weekStart time.Weekday) string {
	streak := stats.CurrentStreak(history, today)
	weekly := stats.WeeklyAdherence(history, today, weekStart)
	overall := stats.OverallAdherence(history, today)
	weeklyGrade := stats.LetterGrade(weekly)
	overallGrade := stats.LetterGrade(overall)

	var b strings.Builder
	fmt.Fprintf(&b, "Progress Update from %s\n", user.Name)
	fmt.Fprintf(&b, "Generated %s\n\n", today.String())

	if streak > 0 {
		plural := ""
		if streak > 1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "Current workout streak: %d session%s strong!\n", streak, plural)
	} else {
		b.WriteString("Starting fresh with today's session!\n")
	}

	fmt.Fprintf(&b, "This Week: %s (%d%% adherence)\n", weeklyGrade.Label, weekly)
	fmt.Fprintf(&b, "Overall:   %s (%d%% adherence)\n", overallGrade.Label, overall)
	fmt.Fprintf(&b, "Total workouts logged: %d\n", len(history))

	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	if len(recent) > 0 {
		b.WriteString("\nRecent sessions:\n")
		for i := len(recent) - 1; i >= 0; i-- {
			r := recent[i]
			fmt.Fprintf(&b, "  %s  %d/%d exercises (%d%%)\n",
				r.Date, len(r.CompletedExercises), r.TotalExercises, r.CompletionPercentage)
			if r.Notes != "" {
				fmt.Fprintf(&b, "          %s\n", r.Notes)
			}
		}
	}

	if user.PTName != "" {
		fmt.Fprintf(&b, "\nFor: %s", user.PTName)
		if user.PTEmail != "" {
			fmt.Fprintf(&b, " <%s>", user.PTEmail)
		}
		b.WriteString("\n")
	}

	return b.String()
}
