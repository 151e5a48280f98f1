package progression

import "github.com/claude/overload/internal/models"

// RefreshTargets recomputes an in-progress session's targets from the
// previous week's sets, which may still have been changing when this
// session was generated. Sets are updated in place; the returned slice
// holds copies of only the sets that actually changed, so the caller can
// skip the write entirely when changed is false. Calling again with the
// same inputs is a no-op.
//
// The caller is responsible for only invoking this for in_progress sessions
// with a week number above 1 and an existing previous session.
func (p *Planner) RefreshTargets(sets []models.WorkoutSet, prevSets []models.WorkoutSet) (updated []models.WorkoutSet, changed bool) {
	type key struct {
		exercise int64
		setNum   int
	}
	prev := make(map[key]models.WorkoutSet, len(prevSets))
	for _, s := range prevSets {
		prev[key{s.ExerciseID, s.SetNumber}] = s
	}

	for i := range sets {
		match, ok := prev[key{sets[i].ExerciseID, sets[i].SetNumber}]
		if !ok {
			continue
		}

		dirty := false
		if match.Reps > 0 {
			if sets[i].TargetReps == nil || *sets[i].TargetReps != match.Reps {
				r := match.Reps
				sets[i].TargetReps = &r
				dirty = true
			}
		}
		if match.Weight > 0 {
			w := ProjectWeight(match.Weight)
			if sets[i].TargetWeight == nil || *sets[i].TargetWeight != *w {
				sets[i].TargetWeight = w
				dirty = true
			}
		}
		if dirty {
			updated = append(updated, sets[i])
			changed = true
		}
	}
	return updated, changed
}
