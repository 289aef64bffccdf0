package store

import "time"

type ExerciseType string

const (
	ExerciseReps ExerciseType = "reps"
	ExerciseTime ExerciseType = "time"
)

// Exercise is one entry of a routine. Reps is set for "reps" exercises,
// Duration (seconds) for "time" exercises.
type Exercise struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Sets     int          `json:"sets"`
	Reps     int          `json:"reps,omitempty"`
	Duration int          `json:"duration,omitempty"`
	Type     ExerciseType `json:"type"`
}

// ExerciseRef is the slim snapshot kept on a workout record so the history
// detail view does not depend on the routine still existing.
type ExerciseRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NoteEntry is one dated free-text note attached to an exercise.
type NoteEntry struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

type RoutineSnapshot struct {
	Name      string        `json:"name"`
	Exercises []ExerciseRef `json:"exercises"`
}

// WorkoutRecord is written once when a workout is completed. Date is the
// local calendar day the workout was logged for; CompletedAt is the full
// timestamp of the write.
type WorkoutRecord struct {
	ID                   string                 `json:"id"`
	Date                 string                 `json:"date"`
	CompletedExercises   []string               `json:"completedExercises"`
	TotalExercises       int                    `json:"totalExercises"`
	CompletionPercentage int                    `json:"completionPercentage"`
	Notes                string                 `json:"notes,omitempty"`
	ExerciseNotes        map[string][]NoteEntry `json:"exerciseNotes,omitempty"`
	Exercises            []ExerciseRef          `json:"exercises,omitempty"`
	Routine              *RoutineSnapshot       `json:"routine,omitempty"`
	UserID               string                 `json:"userId"`
	CompletedAt          time.Time              `json:"completedAt"`
}

type Routine struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	UserID    string     `json:"userId"`
}

// SessionState is the per-user-per-day scratch state of an in-progress,
// not-yet-logged workout, so closing the app mid-session loses nothing.
type SessionState struct {
	CompletedExercises []string               `json:"completedExercises"`
	ExerciseNotes      map[string][]NoteEntry `json:"exerciseNotes,omitempty"`
	LastSaved          time.Time              `json:"lastSaved"`
}

// User is a local account. The rest of the app treats it purely as an
// opaque ID source plus display fields.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PTName       string    `json:"pt_name"`
	PTEmail      string    `json:"pt_email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"createdAt"`
}
