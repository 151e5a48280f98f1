package progression

import "math"

// ProjectWeight proposes the next target weight from a previously logged
// weight: +2.5% or +2.5 absolute units, whichever is larger, rounded to one
// decimal. A set that was never actually performed (weight <= 0) yields no
// projection.
func ProjectWeight(prevWeight float64) *float64 {
	if prevWeight <= 0 {
		return nil
	}
	inc := prevWeight * 0.025
	if inc < 2.5 {
		inc = 2.5
	}
	w := math.Round((prevWeight+inc)*10) / 10
	return &w
}

// ProjectReps proposes the next target reps: repeat what was actually
// achieved, or fall back to the previous target when nothing was logged.
func ProjectReps(prevReps int, fallback *int) *int {
	if prevReps > 0 {
		r := prevReps
		return &r
	}
	return cloneInt(fallback)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
