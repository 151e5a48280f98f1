package seed

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// StockMesocycle is the YAML shape of a shipped training-block template.
// Exercises are referenced by library name and resolved to IDs at seed time.
type StockMesocycle struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Weeks       int            `yaml:"weeks"`
	DaysPerWeek int            `yaml:"days_per_week"`
	Workouts    []StockWorkout `yaml:"workouts"`
}

type StockWorkout struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Exercises   []StockExercise `yaml:"exercises"`
}

type StockExercise struct {
	Exercise      string `yaml:"exercise"`
	TargetSets    int    `yaml:"target_sets"`
	TargetRepsMin int    `yaml:"target_reps_min"`
	TargetRepsMax int    `yaml:"target_reps_max"`
	StartingRIR   int    `yaml:"starting_rir"`
	EndingRIR     int    `yaml:"ending_rir"`
	Notes         string `yaml:"notes"`
}

// ParseStockMesocycleYAML reads and validates one stock template definition.
func ParseStockMesocycleYAML(r io.Reader) (*StockMesocycle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var m StockMesocycle
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("mesocycle name is required")
	}
	if m.Weeks < 0 {
		return nil, fmt.Errorf("mesocycle %q: weeks must not be negative", m.Name)
	}
	if len(m.Workouts) == 0 {
		return nil, fmt.Errorf("mesocycle %q: at least one workout is required", m.Name)
	}
	if m.DaysPerWeek == 0 {
		m.DaysPerWeek = len(m.Workouts)
	}
	for wi, w := range m.Workouts {
		if w.Name == "" {
			return nil, fmt.Errorf("mesocycle %q: workout %d has no name", m.Name, wi+1)
		}
		for _, e := range w.Exercises {
			if e.Exercise == "" {
				return nil, fmt.Errorf("workout %q: exercise with no name", w.Name)
			}
			if e.TargetRepsMax < e.TargetRepsMin {
				return nil, fmt.Errorf("workout %q, exercise %q: target_reps_max below target_reps_min", w.Name, e.Exercise)
			}
		}
	}
	return &m, nil
}
