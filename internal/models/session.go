package models

import "time"

// Workout session statuses.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionSkipped    = "skipped"
)

// WorkoutSession is one performed (or in-progress) workout, created once per
// (instance, week, day). Its template linkage is fixed at creation; the
// template reference goes nil if the template is later deleted.
type WorkoutSession struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	InstanceID      int64      `json:"mesocycle_instance_id"`
	TemplateID      *int64     `json:"workout_template_id,omitempty"`
	WorkoutDate     time.Time  `json:"workout_date"`
	WeekNumber      int        `json:"week_number"`
	DayNumber       int        `json:"day_number"`
	Status          string     `json:"status"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// WorkoutSet is a single set within a session. Weight/Reps/RIR are the
// athlete's logged performance (zero until logged); the Target fields are
// engine-prescribed goals and stay nil where the engine has nothing to
// prescribe. SetNumber is 1-based per exercise; OrderIndex groups all sets
// of one exercise contiguously for display.
type WorkoutSet struct {
	ID           int64    `json:"id"`
	SessionID    int64    `json:"workout_session_id"`
	ExerciseID   int64    `json:"exercise_id"`
	SetNumber    int      `json:"set_number"`
	OrderIndex   int      `json:"order_index"`
	Weight       float64  `json:"weight"`
	Reps         int      `json:"reps"`
	RIR          *int     `json:"rir,omitempty"`
	TargetWeight *float64 `json:"target_weight,omitempty"`
	TargetReps   *int     `json:"target_reps,omitempty"`
	TargetRIR    *int     `json:"target_rir,omitempty"`
	Skipped      bool     `json:"skipped"`
	Notes        string   `json:"notes,omitempty"`
}
