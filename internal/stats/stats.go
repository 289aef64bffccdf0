// Package stats derives presentation statistics from a user's workout
// history. Every function is pure over (history, today): same inputs, same
// result, no hidden state.
package stats

import (
	"math"
	"time"

	"github.com/jdevries/fysio/internal/store"
)

// Grade is a letter-grade label with its display color.
type Grade struct {
	Label string
	Color string
}

// CurrentStreak counts consecutive calendar days with at least one logged
// workout, walking backward from today. A day without a record stops the
// walk, including today itself, so an unlogged today always reads as a
// zero streak regardless of yesterday's chain.
func CurrentStreak(history []store.WorkoutRecord, today Day) int {
	if len(history) == 0 {
		return 0
	}

	logged := make(map[string]bool, len(history))
	for _, r := range history {
		logged[r.Date] = true
	}

	streak := 0
	for day := today; logged[day.String()]; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// WeeklyAdherence is binary: 100 when any distinct day in the current week
// (weekStart through today, inclusive) has a workout, else 0.
func WeeklyAdherence(history []store.WorkoutRecord, today Day, weekStart time.Weekday) int {
	if len(history) == 0 {
		return 0
	}

	start := StartOfWeek(today, weekStart)
	for _, r := range history {
		d, err := ParseDay(r.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !today.Before(d) {
			return 100
		}
	}
	return 0
}

// StartOfWeek is the most recent day whose weekday equals weekStart,
// counting today itself.
func StartOfWeek(today Day, weekStart time.Weekday) Day {
	back := int(today.Weekday()-weekStart+7) % 7
	return today.AddDays(-back)
}

// OverallAdherence is the share of days since the first record that have a
// logged workout, capped at 100.
func OverallAdherence(history []store.WorkoutRecord, today Day) int {
	if len(history) == 0 {
		return 0
	}

	var first Day
	for _, r := range history {
		d, err := ParseDay(r.Date)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	if first.IsZero() {
		return 0
	}

	days := today.DaysSince(first)
	if days < 1 {
		days = 1
	}

	pct := int(math.Round(float64(len(history)) / float64(days) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// LetterGrade bands a percentage into a label. Monotonic: a higher
// percentage never maps to a lower band.
func LetterGrade(percentage int) Grade {
	switch {
	case percentage >= 90:
		return Grade{Label: "Champion", Color: "#22543d"}
	case percentage >= 80:
		return Grade{Label: "Strong", Color: "#2f855a"}
	case percentage >= 70:
		return Grade{Label: "Steady", Color: "#38a169"}
	case percentage >= 60:
		return Grade{Label: "Focused", Color: "#48bb78"}
	case percentage >= 40:
		return Grade{Label: "Growing", Color: "#ed8936"}
	case percentage >= 20:
		return Grade{Label: "Rising", Color: "#dd6b20"}
	default:
		return Grade{Label: "Starting", Color: "#667eea"}
	}
}

// StreakMessage is the encouragement line shown next to the streak count.
func StreakMessage(streak int) string {
	switch {
	case streak == 0:
		return "Let's get a streak started!"
	case streak == 1:
		return "Great start! Keep it up!"
	case streak <= 3:
		return "Building momentum!"
	case streak <= 7:
		return "You're on fire!"
	case streak <= 14:
		return "Incredible dedication!"
	default:
		return "Unstoppable!"
	}
}
