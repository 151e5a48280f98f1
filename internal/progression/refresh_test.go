package progression

import (
	"testing"

	"github.com/claude/overload/internal/models"
)

// TestRefreshTargets verifies that newly logged prior-week sets update the
// current session's targets, matched by exercise and set number.
func TestRefreshTargets(t *testing.T) {
	p := NewPlanner()

	sets := []models.WorkoutSet{
		{ID: 1, ExerciseID: 1, SetNumber: 1, TargetReps: intp(12)},
		{ID: 2, ExerciseID: 1, SetNumber: 2, TargetReps: intp(12)},
		{ID: 3, ExerciseID: 2, SetNumber: 1, TargetReps: intp(15)},
	}
	prev := []models.WorkoutSet{
		{ExerciseID: 1, SetNumber: 1, Weight: 100, Reps: 10},
		{ExerciseID: 1, SetNumber: 2}, // still unlogged
		// exercise 2 absent from the previous session
	}

	updated, changed := p.RefreshTargets(sets, prev)
	if !changed {
		t.Fatal("changed = false, want true")
	}
	if len(updated) != 1 || updated[0].ID != 1 {
		t.Fatalf("updated = %v, want just set 1", updated)
	}
	if sets[0].TargetWeight == nil || *sets[0].TargetWeight != 102.5 {
		t.Errorf("set 1 target weight = %v, want 102.5", sets[0].TargetWeight)
	}
	if sets[0].TargetReps == nil || *sets[0].TargetReps != 10 {
		t.Errorf("set 1 target reps = %v, want 10", sets[0].TargetReps)
	}
	if sets[1].TargetWeight != nil {
		t.Errorf("set 2 target weight = %v, want untouched nil", *sets[1].TargetWeight)
	}
	if *sets[2].TargetReps != 15 {
		t.Errorf("set 3 target reps = %d, want untouched 15", *sets[2].TargetReps)
	}
}

// TestRefreshTargetsIdempotent verifies the change-detection guard: a second
// refresh with the same prior data reports no change and touches nothing.
func TestRefreshTargetsIdempotent(t *testing.T) {
	p := NewPlanner()

	sets := []models.WorkoutSet{
		{ID: 1, ExerciseID: 1, SetNumber: 1, TargetReps: intp(12)},
	}
	prev := []models.WorkoutSet{
		{ExerciseID: 1, SetNumber: 1, Weight: 80, Reps: 9},
	}

	if _, changed := p.RefreshTargets(sets, prev); !changed {
		t.Fatal("first refresh: changed = false, want true")
	}

	tw, tr := *sets[0].TargetWeight, *sets[0].TargetReps
	updated, changed := p.RefreshTargets(sets, prev)
	if changed {
		t.Errorf("second refresh: changed = true, want false (updated %v)", updated)
	}
	if *sets[0].TargetWeight != tw || *sets[0].TargetReps != tr {
		t.Error("second refresh mutated targets")
	}
}

// TestRefreshTargetsNoPriorData verifies that an entirely unlogged previous
// session produces no updates.
func TestRefreshTargetsNoPriorData(t *testing.T) {
	p := NewPlanner()

	sets := []models.WorkoutSet{
		{ID: 1, ExerciseID: 1, SetNumber: 1, TargetReps: intp(12)},
	}
	prev := []models.WorkoutSet{
		{ExerciseID: 1, SetNumber: 1},
	}

	if updated, changed := p.RefreshTargets(sets, prev); changed || len(updated) != 0 {
		t.Errorf("refresh with unlogged prior = (%v, %v), want no change", updated, changed)
	}
}
