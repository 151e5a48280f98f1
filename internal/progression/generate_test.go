package progression

import (
	"testing"

	"github.com/claude/overload/internal/models"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

// prevSet builds a set as it would exist in a prior session.
func prevSet(exerciseID int64, setNum, orderIndex int, weight float64, reps int, targetReps, targetRIR *int) models.WorkoutSet {
	return models.WorkoutSet{
		ExerciseID: exerciseID,
		SetNumber:  setNum,
		OrderIndex: orderIndex,
		Weight:     weight,
		Reps:       reps,
		TargetReps: targetReps,
		TargetRIR:  targetRIR,
	}
}

func groupsOf(sets []models.WorkoutSet) map[int64][]models.WorkoutSet {
	out := make(map[int64][]models.WorkoutSet)
	for _, s := range sets {
		out[s.ExerciseID] = append(out[s.ExerciseID], s)
	}
	return out
}

// TestGenerateFromTemplate verifies the fresh-from-template strategy: set
// count from the formula, rep targets at the template ceiling, RIR at the
// template's starting value, no weight targets, bucketed order indexes.
func TestGenerateFromTemplate(t *testing.T) {
	p := NewPlanner()

	sets := p.GenerateSessionSets(GenerateInput{
		Session:    models.WorkoutSession{ID: 7, WeekNumber: 1},
		TotalWeeks: 6,
		Template: []models.TemplateExercise{
			{ExerciseID: 1, OrderIndex: 0, TargetRepsMax: 12, StartingRIR: 3, MuscleGroup: "Chest"},
			{ExerciseID: 2, OrderIndex: 1, TargetRepsMax: 15, StartingRIR: 2, MuscleGroup: "Shoulders"},
		},
	})

	byEx := groupsOf(sets)
	if len(byEx[1]) != 2 { // SetsForWeek(Chest, 1, 6)
		t.Fatalf("chest sets = %d, want 2", len(byEx[1]))
	}
	if len(byEx[2]) != 3 { // SetsForWeek(Shoulders, 1, 6)
		t.Fatalf("shoulder sets = %d, want 3", len(byEx[2]))
	}

	for i, s := range byEx[1] {
		if s.SessionID != 7 {
			t.Errorf("set session = %d, want 7", s.SessionID)
		}
		if s.TargetWeight != nil {
			t.Errorf("chest set %d target weight = %v, want nil", i+1, *s.TargetWeight)
		}
		if s.TargetReps == nil || *s.TargetReps != 12 {
			t.Errorf("chest set %d target reps = %v, want 12", i+1, s.TargetReps)
		}
		if s.TargetRIR == nil || *s.TargetRIR != 3 {
			t.Errorf("chest set %d target rir = %v, want 3", i+1, s.TargetRIR)
		}
		if want := 0*100 + i + 1; s.OrderIndex != want {
			t.Errorf("chest set %d order index = %d, want %d", i+1, s.OrderIndex, want)
		}
	}
	if byEx[2][0].OrderIndex != 101 {
		t.Errorf("shoulder set 1 order index = %d, want 101", byEx[2][0].OrderIndex)
	}
}

// TestGenerateCarryForward verifies week-over-week projection: the formula's
// new count, +2.5-unit weight progression on matched sets, achieved reps
// repeated, and fallback targets for the unmatched trailing set.
func TestGenerateCarryForward(t *testing.T) {
	p := NewPlanner()

	prev := []models.WorkoutSet{
		prevSet(1, 1, 1, 100, 10, intp(12), intp(3)),
		prevSet(1, 2, 2, 0, 0, intp(12), intp(3)), // created but never logged
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{ID: 9, WeekNumber: 2},
		TotalWeeks:   6,
		MuscleGroups: map[int64]string{1: "Chest"},
		PrevSets:     prev,
		PrevWeek:     1,
	})

	if len(sets) != 3 { // SetsForWeek(Chest, 2, 6) + offset 0
		t.Fatalf("set count = %d, want 3", len(sets))
	}

	s1 := sets[0]
	if s1.TargetWeight == nil || *s1.TargetWeight != 102.5 {
		t.Errorf("set 1 target weight = %v, want 102.5", s1.TargetWeight)
	}
	if s1.TargetReps == nil || *s1.TargetReps != 10 {
		t.Errorf("set 1 target reps = %v, want 10 (achieved)", s1.TargetReps)
	}
	if s1.OrderIndex != 1 {
		t.Errorf("set 1 order index = %d, want 1 (inherited)", s1.OrderIndex)
	}
	if s1.Weight != 0 || s1.Reps != 0 {
		t.Errorf("set 1 starts logged: weight=%v reps=%d, want zeros", s1.Weight, s1.Reps)
	}

	// Set 2 matched an unlogged set: no weight projection, fallback reps.
	s2 := sets[1]
	if s2.TargetWeight != nil {
		t.Errorf("set 2 target weight = %v, want nil", *s2.TargetWeight)
	}
	if s2.TargetReps == nil || *s2.TargetReps != 12 {
		t.Errorf("set 2 target reps = %v, want 12 (fallback)", s2.TargetReps)
	}

	// Set 3 has no match: targets default from the previous last set.
	s3 := sets[2]
	if s3.TargetWeight != nil {
		t.Errorf("set 3 target weight = %v, want nil", *s3.TargetWeight)
	}
	if s3.TargetReps == nil || *s3.TargetReps != 12 {
		t.Errorf("set 3 target reps = %v, want 12 (fallback)", s3.TargetReps)
	}
	if s3.TargetRIR == nil || *s3.TargetRIR != 3 {
		t.Errorf("set 3 target rir = %v, want 3 (fallback)", s3.TargetRIR)
	}
	if s3.OrderIndex != 2 {
		t.Errorf("set 3 order index = %d, want 2 (fallback's)", s3.OrderIndex)
	}
}

// TestGenerateCarryForwardOffset verifies that a user-added extra set in the
// previous week persists: the new count is formula(new week) + offset.
func TestGenerateCarryForwardOffset(t *testing.T) {
	p := NewPlanner()

	// Week 1 of 6 expected 2 chest sets, athlete did 3 (offset +1).
	prev := []models.WorkoutSet{
		prevSet(1, 1, 1, 80, 8, intp(10), intp(3)),
		prevSet(1, 2, 2, 80, 8, intp(10), intp(3)),
		prevSet(1, 3, 2, 80, 7, intp(10), intp(3)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 2},
		TotalWeeks:   6,
		MuscleGroups: map[int64]string{1: "Chest"},
		PrevSets:     prev,
		PrevWeek:     1,
	})

	if len(sets) != 4 { // SetsForWeek(Chest, 2, 6) == 3, +1 offset
		t.Fatalf("set count = %d, want 4", len(sets))
	}
}

// TestGenerateCarryForwardRemovedSets verifies the minimum-1 clamp when the
// athlete removed enough sets to drive the projected count to zero.
func TestGenerateCarryForwardRemovedSets(t *testing.T) {
	p := NewPlanner()

	// Week 4 of 0 (open-ended) expects 5 big-group sets; athlete kept 1.
	prev := []models.WorkoutSet{
		prevSet(1, 1, 1, 60, 12, intp(12), intp(2)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 5},
		MuscleGroups: map[int64]string{1: "Back"},
		PrevSets:     prev,
		PrevWeek:     4,
	})

	// formula(5) = 6, offset = 1-5 = -4 → 2
	if len(sets) != 2 {
		t.Fatalf("set count = %d, want 2", len(sets))
	}
}

// TestGenerateCarryForwardDeload verifies the deload override: the final
// week gets exactly one set per exercise no matter the offset.
func TestGenerateCarryForwardDeload(t *testing.T) {
	p := NewPlanner()

	prev := []models.WorkoutSet{
		prevSet(1, 1, 1, 100, 10, intp(10), intp(1)),
		prevSet(1, 2, 2, 100, 9, intp(10), intp(1)),
		prevSet(1, 3, 3, 100, 8, intp(10), intp(1)),
		prevSet(2, 1, 101, 40, 15, intp(15), intp(1)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 6},
		TotalWeeks:   6,
		MuscleGroups: map[int64]string{1: "Chest", 2: "Calves"},
		PrevSets:     prev,
		PrevWeek:     5,
	})

	byEx := groupsOf(sets)
	if len(byEx[1]) != 1 || len(byEx[2]) != 1 {
		t.Fatalf("deload counts = %d/%d, want 1/1", len(byEx[1]), len(byEx[2]))
	}
	if byEx[1][0].TargetWeight == nil || *byEx[1][0].TargetWeight != 102.5 {
		t.Errorf("deload target weight = %v, want 102.5", byEx[1][0].TargetWeight)
	}
}

// TestGenerateFromSource verifies cross-block continuation: the source
// session's logged numbers become targets directly, with no projection, and
// unlogged source sets degrade to fallback targets.
func TestGenerateFromSource(t *testing.T) {
	p := NewPlanner()

	source := []models.WorkoutSet{
		prevSet(1, 1, 1, 100, 10, intp(12), intp(0)),
		prevSet(1, 2, 2, 0, 0, intp(12), intp(0)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 1},
		TotalWeeks:   6,
		MuscleGroups: map[int64]string{1: "Chest"},
		SourceSets:   source,
	})

	if len(sets) != 2 { // SetsForWeek(Chest, 1, 6), no offset tracking
		t.Fatalf("set count = %d, want 2", len(sets))
	}
	if sets[0].TargetWeight == nil || *sets[0].TargetWeight != 100 {
		t.Errorf("set 1 target weight = %v, want 100 (no projection)", sets[0].TargetWeight)
	}
	if sets[0].TargetReps == nil || *sets[0].TargetReps != 10 {
		t.Errorf("set 1 target reps = %v, want 10", sets[0].TargetReps)
	}
	if sets[1].TargetWeight != nil {
		t.Errorf("set 2 target weight = %v, want nil (unlogged source)", *sets[1].TargetWeight)
	}
	if sets[1].TargetReps == nil || *sets[1].TargetReps != 12 {
		t.Errorf("set 2 target reps = %v, want 12 (fallback)", sets[1].TargetReps)
	}
}

// TestGenerateStrategyPriority verifies strategy selection: carry-forward
// wins whenever week > 1 and a previous session exists, a source reference
// for week > 1 is ignored, and everything else falls back to the template.
func TestGenerateStrategyPriority(t *testing.T) {
	p := NewPlanner()

	prev := []models.WorkoutSet{prevSet(1, 1, 1, 100, 10, intp(12), intp(3))}
	source := []models.WorkoutSet{prevSet(2, 1, 1, 60, 8, intp(10), intp(2))}
	tmpl := []models.TemplateExercise{
		{ExerciseID: 3, OrderIndex: 0, TargetRepsMax: 10, StartingRIR: 3, MuscleGroup: "Chest"},
	}

	// Week 2 with both prev and source: carry-forward.
	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 2},
		TotalWeeks:   6,
		Template:     tmpl,
		MuscleGroups: map[int64]string{1: "Chest"},
		PrevSets:     prev,
		PrevWeek:     1,
		SourceSets:   source,
	})
	if len(sets) == 0 || sets[0].ExerciseID != 1 {
		t.Errorf("week 2 with prev: generated from %v, want exercise 1 (carry-forward)", sets)
	}

	// Week 2 with only a source reference: the source is ignored, template wins.
	sets = p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 2},
		TotalWeeks:   6,
		Template:     tmpl,
		MuscleGroups: map[int64]string{2: "Chest"},
		SourceSets:   source,
	})
	if len(sets) == 0 || sets[0].ExerciseID != 3 {
		t.Errorf("week 2 without prev: generated from %v, want exercise 3 (template)", sets)
	}
}

// TestGenerateUnknownMuscleGroup verifies that a dangling exercise reference
// degrades to the default classification instead of failing generation.
func TestGenerateUnknownMuscleGroup(t *testing.T) {
	p := NewPlanner()

	prev := []models.WorkoutSet{
		prevSet(99, 1, 1, 50, 10, intp(10), intp(3)),
		prevSet(99, 2, 2, 50, 10, intp(10), intp(3)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 2},
		TotalWeeks:   6,
		MuscleGroups: map[int64]string{}, // exercise 99 unresolvable
		PrevSets:     prev,
		PrevWeek:     1,
	})

	// Default class grows like big: formula(2) = 3, offset 0.
	if len(sets) != 3 {
		t.Fatalf("set count = %d, want 3", len(sets))
	}
}

// TestGenerateExerciseOrderPreserved verifies that carry-forward emits
// exercises in the previous session's display order, not map order.
func TestGenerateExerciseOrderPreserved(t *testing.T) {
	p := NewPlanner()

	prev := []models.WorkoutSet{
		prevSet(5, 1, 201, 40, 12, intp(12), intp(3)),
		prevSet(2, 1, 1, 100, 8, intp(8), intp(3)),
		prevSet(9, 1, 101, 60, 10, intp(10), intp(3)),
	}

	sets := p.GenerateSessionSets(GenerateInput{
		Session:      models.WorkoutSession{WeekNumber: 2},
		TotalWeeks:   0,
		MuscleGroups: map[int64]string{2: "Back", 9: "Biceps", 5: "Core"},
		PrevSets:     prev,
		PrevWeek:     1,
	})

	var order []int64
	seen := make(map[int64]bool)
	for _, s := range sets {
		if !seen[s.ExerciseID] {
			seen[s.ExerciseID] = true
			order = append(order, s.ExerciseID)
		}
	}
	want := []int64{2, 9, 5}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("exercise order = %v, want %v", order, want)
	}
}
