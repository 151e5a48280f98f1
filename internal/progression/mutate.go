package progression

import "github.com/claude/overload/internal/models"

// addedExerciseRIR is the target RIR for exercises added mid-block, which
// have no template lineage to take a starting RIR from.
const addedExerciseRIR = 3

// Mutation describes the row changes a mutation operation produced. The
// storage layer applies all three lists in a single transaction so a session
// never ends up with a partial set list.
type Mutation struct {
	Insert []models.WorkoutSet
	Update []models.WorkoutSet
	Delete []int64
}

// Empty reports whether the mutation changes nothing.
func (m Mutation) Empty() bool {
	return len(m.Insert) == 0 && len(m.Update) == 0 && len(m.Delete) == 0
}

func guardMutable(session models.WorkoutSession) error {
	if session.Status == models.SessionCompleted {
		return ErrSessionCompleted
	}
	return nil
}

func setsForExercise(sets []models.WorkoutSet, exerciseID int64) []models.WorkoutSet {
	var out []models.WorkoutSet
	for _, s := range sets {
		if s.ExerciseID == exerciseID {
			out = append(out, s)
		}
	}
	return out
}

// SwapExercise reassigns every set of oldExerciseID to newExerciseID and
// resets the logged performance: the athlete restarts that slot's history
// under the new exercise identity. Rep and RIR targets are kept so the
// effort expectation survives the swap; the weight target does not, since
// it was projected from a different lift.
func (p *Planner) SwapExercise(session models.WorkoutSession, sets []models.WorkoutSet, oldExerciseID, newExerciseID int64) (Mutation, error) {
	if err := guardMutable(session); err != nil {
		return Mutation{}, err
	}

	affected := setsForExercise(sets, oldExerciseID)
	if len(affected) == 0 {
		return Mutation{}, ErrExerciseNotInSession
	}

	var m Mutation
	for _, s := range affected {
		s.ExerciseID = newExerciseID
		s.Weight = 0
		s.Reps = 0
		s.TargetWeight = nil
		s.Skipped = false
		m.Update = append(m.Update, s)
	}
	return m, nil
}

// RemoveExercise deletes all of an exercise's sets from the session.
func (p *Planner) RemoveExercise(session models.WorkoutSession, sets []models.WorkoutSet, exerciseID int64) (Mutation, error) {
	if err := guardMutable(session); err != nil {
		return Mutation{}, err
	}

	affected := setsForExercise(sets, exerciseID)
	if len(affected) == 0 {
		return Mutation{}, ErrExerciseNotInSession
	}

	var m Mutation
	for _, s := range affected {
		m.Delete = append(m.Delete, s.ID)
	}
	return m, nil
}

// AddExercise appends a new exercise to the session with the formula's set
// count for the current week. The new sets land after everything already in
// the session and carry no weight or rep targets.
func (p *Planner) AddExercise(session models.WorkoutSession, sets []models.WorkoutSet, exerciseID int64, muscleGroup string, totalWeeks int) (Mutation, error) {
	if err := guardMutable(session); err != nil {
		return Mutation{}, err
	}
	if len(setsForExercise(sets, exerciseID)) > 0 {
		return Mutation{}, ErrExerciseInSession
	}

	if muscleGroup == "" {
		muscleGroup = MuscleGroupOther
	}
	numSets := p.classifier.SetsForWeek(muscleGroup, session.WeekNumber, totalWeeks)

	maxOrder := 0
	for _, s := range sets {
		if s.OrderIndex > maxOrder {
			maxOrder = s.OrderIndex
		}
	}

	var m Mutation
	for n := 1; n <= numSets; n++ {
		rir := addedExerciseRIR
		m.Insert = append(m.Insert, models.WorkoutSet{
			SessionID:  session.ID,
			ExerciseID: exerciseID,
			SetNumber:  n,
			OrderIndex: maxOrder + orderStride,
			TargetRIR:  &rir,
		})
	}
	return m, nil
}

// AddSet appends one set to an exercise, inheriting position and rep/RIR
// targets from the exercise's current last set.
func (p *Planner) AddSet(session models.WorkoutSession, sets []models.WorkoutSet, exerciseID int64) (Mutation, error) {
	if err := guardMutable(session); err != nil {
		return Mutation{}, err
	}

	existing := setsForExercise(sets, exerciseID)
	if len(existing) == 0 {
		return Mutation{}, ErrExerciseNotInSession
	}

	last := existing[0]
	for _, s := range existing[1:] {
		if s.SetNumber > last.SetNumber {
			last = s
		}
	}

	return Mutation{Insert: []models.WorkoutSet{{
		SessionID:  session.ID,
		ExerciseID: exerciseID,
		SetNumber:  last.SetNumber + 1,
		OrderIndex: last.OrderIndex,
		TargetReps: cloneInt(last.TargetReps),
		TargetRIR:  cloneInt(last.TargetRIR),
	}}}, nil
}

// RemoveSet deletes the exercise's highest-numbered set. An exercise that is
// part of the session always keeps at least one set; removing the exercise
// entirely is RemoveExercise's job.
func (p *Planner) RemoveSet(session models.WorkoutSession, sets []models.WorkoutSet, exerciseID int64) (Mutation, error) {
	if err := guardMutable(session); err != nil {
		return Mutation{}, err
	}

	existing := setsForExercise(sets, exerciseID)
	if len(existing) == 0 {
		return Mutation{}, ErrExerciseNotInSession
	}
	if len(existing) == 1 {
		return Mutation{}, ErrLastSet
	}

	last := existing[0]
	for _, s := range existing[1:] {
		if s.SetNumber > last.SetNumber {
			last = s
		}
	}
	return Mutation{Delete: []int64{last.ID}}, nil
}
