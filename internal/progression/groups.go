package progression

import (
	"sort"

	"github.com/claude/overload/internal/models"
)

// exerciseGroup holds one exercise's sets in set-number order.
type exerciseGroup struct {
	ExerciseID int64
	Sets       []models.WorkoutSet
}

// groupByExercise sorts sets by (order_index, set_number) and buckets them
// per exercise, preserving the order of first appearance. This is the
// canonical exercise ordering for a session.
func groupByExercise(sets []models.WorkoutSet) []exerciseGroup {
	sorted := make([]models.WorkoutSet, len(sets))
	copy(sorted, sets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		return sorted[i].SetNumber < sorted[j].SetNumber
	})

	var groups []exerciseGroup
	index := make(map[int64]int)
	for _, s := range sorted {
		i, ok := index[s.ExerciseID]
		if !ok {
			i = len(groups)
			index[s.ExerciseID] = i
			groups = append(groups, exerciseGroup{ExerciseID: s.ExerciseID})
		}
		groups[i].Sets = append(groups[i].Sets, s)
	}
	return groups
}

// bySetNumber returns the set with the given set number, or nil.
func (g exerciseGroup) bySetNumber(n int) *models.WorkoutSet {
	for i := range g.Sets {
		if g.Sets[i].SetNumber == n {
			return &g.Sets[i]
		}
	}
	return nil
}

// last returns the group's last set in set-number order. Groups built by
// groupByExercise are never empty.
func (g exerciseGroup) last() *models.WorkoutSet {
	return &g.Sets[len(g.Sets)-1]
}

// lookupMuscleGroup resolves an exercise's muscle group, degrading to
// MuscleGroupOther when the exercise reference is missing. Target generation
// must never fail on a dangling exercise reference.
func lookupMuscleGroup(groups map[int64]string, exerciseID int64) string {
	if g, ok := groups[exerciseID]; ok && g != "" {
		return g
	}
	return MuscleGroupOther
}
