package seed

import (
	"strings"
	"testing"
)

// TestParseExerciseCSV verifies a well-formed library file parses with all
// columns mapped.
func TestParseExerciseCSV(t *testing.T) {
	input := `name,muscle_group,equipment,description
Barbell Bench Press,Chest,Barbell,Flat bench press
Lateral Raise,Shoulders,Dumbbell,
Leg Press,Quadriceps,Machine,45-degree sled
`
	exercises, err := ParseExerciseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exercises) != 3 {
		t.Fatalf("len = %d, want 3", len(exercises))
	}

	first := exercises[0]
	if first.Name != "Barbell Bench Press" {
		t.Errorf("name = %q", first.Name)
	}
	if first.MuscleGroup != "Chest" {
		t.Errorf("muscle_group = %q", first.MuscleGroup)
	}
	if first.Equipment != "Barbell" {
		t.Errorf("equipment = %q", first.Equipment)
	}
	if first.Description != "Flat bench press" {
		t.Errorf("description = %q", first.Description)
	}

	if exercises[1].Equipment != "Dumbbell" || exercises[1].Description != "" {
		t.Errorf("row 2 = %+v", exercises[1])
	}
}

// TestParseExerciseCSVColumnOrder verifies columns are matched by header
// name, not position.
func TestParseExerciseCSVColumnOrder(t *testing.T) {
	input := `muscle_group,name
Back,Pull-Up
`
	exercises, err := ParseExerciseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exercises[0].Name != "Pull-Up" || exercises[0].MuscleGroup != "Back" {
		t.Errorf("row = %+v", exercises[0])
	}
}

// TestParseExerciseCSVMissingColumns verifies required header columns are
// enforced.
func TestParseExerciseCSVMissingColumns(t *testing.T) {
	if _, err := ParseExerciseCSV(strings.NewReader("muscle_group\nChest\n")); err == nil {
		t.Error("expected error for missing name column")
	}
	if _, err := ParseExerciseCSV(strings.NewReader("name\nBench\n")); err == nil {
		t.Error("expected error for missing muscle_group column")
	}
}

// TestParseExerciseCSVEmptyFields verifies blank names and muscle groups are
// rejected with the offending line number.
func TestParseExerciseCSVEmptyFields(t *testing.T) {
	input := `name,muscle_group
Bench Press,Chest
,Back
`
	_, err := ParseExerciseCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not name line 3", err)
	}
}
