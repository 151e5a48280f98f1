package models

import "time"

// User is a registered account. Password hashes never leave the storage layer.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Exercise is an entry in the exercise library. Default exercises
// (IsCustom false) are visible to everyone; custom exercises belong to the
// creating user.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment,omitempty"`
	IsCustom    bool   `json:"is_custom"`
	UserID      *int64 `json:"user_id,omitempty"`
}

// Mesocycle is a reusable training block template. It contains workout
// templates which in turn contain template exercises.
type Mesocycle struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Weeks       int               `json:"weeks"`
	DaysPerWeek int               `json:"days_per_week"`
	IsStock     bool              `json:"is_stock"`
	CreatedAt   time.Time         `json:"created_at"`
	Workouts    []WorkoutTemplate `json:"workout_templates,omitempty"`
}

// WorkoutTemplate is one workout within a mesocycle ("Push Day 1").
type WorkoutTemplate struct {
	ID          int64              `json:"id"`
	MesocycleID int64              `json:"mesocycle_id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	OrderIndex  int                `json:"order_index"`
	Exercises   []TemplateExercise `json:"exercises,omitempty"`
}

// TemplateExercise is an exercise slot in a workout template, carrying the
// planned set count, rep range, and RIR progression. Read-only input to the
// progression engine once an instance is running.
type TemplateExercise struct {
	ID                int64  `json:"id"`
	WorkoutTemplateID int64  `json:"workout_template_id"`
	ExerciseID        int64  `json:"exercise_id"`
	OrderIndex        int    `json:"order_index"`
	TargetSets        int    `json:"target_sets"`
	TargetRepsMin     int    `json:"target_reps_min"`
	TargetRepsMax     int    `json:"target_reps_max"`
	StartingRIR       int    `json:"starting_rir"`
	EndingRIR         int    `json:"ending_rir"`
	Notes             string `json:"notes,omitempty"`
	MuscleGroup       string `json:"muscle_group,omitempty"`
}

// Mesocycle instance statuses.
const (
	InstanceActive    = "active"
	InstanceCompleted = "completed"
	InstanceAbandoned = "abandoned"
)

// MesocycleInstance is one run-through of a mesocycle template with its own
// week/day progress. At most one active instance per user.
type MesocycleInstance struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	TemplateID int64      `json:"mesocycle_template_id"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
