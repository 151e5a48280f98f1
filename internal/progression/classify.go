// Package progression computes per-session set counts and weight/rep/RIR
// targets for progressive overload, and owns the rules for mutating a
// session's exercise list without corrupting that bookkeeping. Everything in
// this package is pure: callers supply template, history, and muscle-group
// data, and apply the returned rows/mutations to storage themselves.
package progression

// GrowthClass buckets muscle groups by how fast their weekly set count grows.
type GrowthClass int

const (
	// GrowthBig covers large muscle groups (weekly growth rate 1.0).
	GrowthBig GrowthClass = iota
	// GrowthSmall covers small muscle groups (weekly growth rate 1.5).
	GrowthSmall
	// GrowthDefault is used for unknown muscle groups and behaves like GrowthBig.
	GrowthDefault
)

// MuscleGroupOther is the label substituted when an exercise's muscle group
// cannot be resolved. It classifies as GrowthDefault.
const MuscleGroupOther = "Other"

// Classifier maps muscle-group labels to growth classes. The classification
// table is fixed at construction; a Classifier is safe for concurrent use.
type Classifier struct {
	class map[string]GrowthClass
}

// NewClassifier returns a Classifier with the standard classification table.
func NewClassifier() Classifier {
	c := Classifier{class: make(map[string]GrowthClass)}
	for _, g := range []string{"Chest", "Back", "Quadriceps", "Hamstrings", "Glutes"} {
		c.class[g] = GrowthBig
	}
	for _, g := range []string{"Shoulders", "Biceps", "Triceps", "Calves", "Core"} {
		c.class[g] = GrowthSmall
	}
	return c
}

// Classify returns the growth class for a muscle-group label. Unknown labels
// classify as GrowthDefault; there is no error case.
func (c Classifier) Classify(muscleGroup string) GrowthClass {
	if cls, ok := c.class[muscleGroup]; ok {
		return cls
	}
	return GrowthDefault
}

// growthRate returns the weekly set-count increment for a muscle group.
func (c Classifier) growthRate(muscleGroup string) float64 {
	if c.Classify(muscleGroup) == GrowthSmall {
		return 1.5
	}
	return 1.0
}
