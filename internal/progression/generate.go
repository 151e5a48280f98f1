package progression

import "github.com/claude/overload/internal/models"

// orderStride is the order_index gap between exercises in a freshly
// generated session, leaving room for sets inserted later.
const orderStride = 100

// Planner is the progression engine's entry point. It owns the muscle-group
// classification table and is safe for concurrent use.
type Planner struct {
	classifier Classifier
}

// NewPlanner returns a Planner with the standard classification table.
func NewPlanner() *Planner {
	return &Planner{classifier: NewClassifier()}
}

// Classifier exposes the planner's classification table for callers that
// need SetsForWeek directly.
func (p *Planner) Classifier() Classifier {
	return p.classifier
}

// GenerateInput carries everything the generator needs; the caller prefetches
// all of it so generation itself touches no storage.
type GenerateInput struct {
	Session    models.WorkoutSession
	TotalWeeks int

	// Template is the session's workout template in order, nil if the
	// template has been deleted.
	Template []models.TemplateExercise

	// MuscleGroups maps exercise IDs to muscle-group labels. Missing entries
	// degrade to the default classification rather than failing generation.
	MuscleGroups map[int64]string

	// PrevSets are the sets of the most recent same-instance session with a
	// smaller week number and the same day number; PrevWeek is that
	// session's week number. Nil/zero when no such session exists.
	PrevSets []models.WorkoutSet
	PrevWeek int

	// SourceSets are the sets of an explicitly referenced session from an
	// earlier block, used to continue its exercise line-up into week 1 of a
	// new block. Ignored when the new session's week number is above 1.
	SourceSets []models.WorkoutSet
}

// GenerateSessionSets computes the full set list for a newly created
// session. Strategy priority: carry forward from the previous week when one
// exists, else continue from a source block for week 1, else build fresh
// from the template. Returned sets have no IDs; the caller inserts them in
// one transaction.
func (p *Planner) GenerateSessionSets(in GenerateInput) []models.WorkoutSet {
	switch {
	case in.Session.WeekNumber >= 2 && len(in.PrevSets) > 0:
		return p.carryForward(in)
	case in.Session.WeekNumber == 1 && len(in.SourceSets) > 0:
		return p.continueFromSource(in)
	default:
		return p.fromTemplate(in)
	}
}

// carryForward projects this week's targets from the previous week's logged
// performance, preserving any set-count adjustments the athlete made.
func (p *Planner) carryForward(in GenerateInput) []models.WorkoutSet {
	var out []models.WorkoutSet
	for _, g := range groupByExercise(in.PrevSets) {
		mg := lookupMuscleGroup(in.MuscleGroups, g.ExerciseID)

		// The offset between what the formula prescribed last week and what
		// the athlete actually had carries the athlete's add/remove-set
		// adjustments into this week.
		expected := p.classifier.SetsForWeek(mg, in.PrevWeek, in.TotalWeeks)
		offset := len(g.Sets) - expected

		var numSets int
		if in.TotalWeeks > 0 && in.Session.WeekNumber == in.TotalWeeks {
			numSets = 1
		} else {
			numSets = p.classifier.SetsForWeek(mg, in.Session.WeekNumber, in.TotalWeeks) + offset
			if numSets < 1 {
				numSets = 1
			}
		}

		fallback := g.last()
		for n := 1; n <= numSets; n++ {
			matched := g.bySetNumber(n)

			set := models.WorkoutSet{
				SessionID:  in.Session.ID,
				ExerciseID: g.ExerciseID,
				SetNumber:  n,
				OrderIndex: fallback.OrderIndex,
				TargetRIR:  cloneInt(fallback.TargetRIR),
			}
			prevReps := 0
			if matched != nil {
				set.OrderIndex = matched.OrderIndex
				set.TargetWeight = ProjectWeight(matched.Weight)
				prevReps = matched.Reps
			}
			set.TargetReps = ProjectReps(prevReps, fallback.TargetReps)
			out = append(out, set)
		}
	}
	return out
}

// continueFromSource carries a previous block's last line-up into week 1 of
// a new block, reusing its logged numbers directly as targets instead of
// projecting (the new block restarts progression from where the old one
// ended).
func (p *Planner) continueFromSource(in GenerateInput) []models.WorkoutSet {
	var out []models.WorkoutSet
	for _, g := range groupByExercise(in.SourceSets) {
		mg := lookupMuscleGroup(in.MuscleGroups, g.ExerciseID)
		numSets := p.classifier.SetsForWeek(mg, 1, in.TotalWeeks)

		fallback := g.last()
		for n := 1; n <= numSets; n++ {
			matched := g.bySetNumber(n)

			set := models.WorkoutSet{
				SessionID:  in.Session.ID,
				ExerciseID: g.ExerciseID,
				SetNumber:  n,
				OrderIndex: fallback.OrderIndex,
				TargetReps: cloneInt(fallback.TargetReps),
				TargetRIR:  cloneInt(fallback.TargetRIR),
			}
			if matched != nil {
				set.OrderIndex = matched.OrderIndex
				if matched.Weight > 0 {
					w := matched.Weight
					set.TargetWeight = &w
				}
				if matched.Reps > 0 {
					r := matched.Reps
					set.TargetReps = &r
				}
			}
			out = append(out, set)
		}
	}
	return out
}

// fromTemplate builds a session straight from its workout template: no
// weight targets yet, rep targets at the template's rep-range ceiling, RIR
// at the template's starting value.
func (p *Planner) fromTemplate(in GenerateInput) []models.WorkoutSet {
	var out []models.WorkoutSet
	for _, te := range in.Template {
		mg := te.MuscleGroup
		if mg == "" {
			mg = lookupMuscleGroup(in.MuscleGroups, te.ExerciseID)
		}
		numSets := p.classifier.SetsForWeek(mg, in.Session.WeekNumber, in.TotalWeeks)

		for n := 1; n <= numSets; n++ {
			reps := te.TargetRepsMax
			rir := te.StartingRIR
			out = append(out, models.WorkoutSet{
				SessionID:  in.Session.ID,
				ExerciseID: te.ExerciseID,
				SetNumber:  n,
				OrderIndex: te.OrderIndex*orderStride + n,
				TargetReps: &reps,
				TargetRIR:  &rir,
			})
		}
	}
	return out
}
