package progression

import "math"

// Every exercise starts its first week at startingSets + one growth step.
const startingSets = 1

// SetsForWeek returns the prescribed number of sets for a muscle group in a
// given week of a block. The final week of a block (week == totalWeeks) is a
// deload and always prescribes exactly 1 set. A totalWeeks <= 0 means an
// open-ended block: growth applies but no deload ever triggers.
func (c Classifier) SetsForWeek(muscleGroup string, week, totalWeeks int) int {
	if totalWeeks > 0 && week == totalWeeks {
		return 1
	}
	n := int(math.Ceil(float64(week)*c.growthRate(muscleGroup) + startingSets))
	if n < 1 {
		n = 1
	}
	return n
}
