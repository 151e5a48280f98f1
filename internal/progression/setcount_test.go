package progression

import "testing"

// TestClassify verifies the fixed muscle-group classification table and the
// default for unknown labels.
func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		group string
		want  GrowthClass
	}{
		{"Chest", GrowthBig},
		{"Back", GrowthBig},
		{"Quadriceps", GrowthBig},
		{"Hamstrings", GrowthBig},
		{"Glutes", GrowthBig},
		{"Shoulders", GrowthSmall},
		{"Biceps", GrowthSmall},
		{"Triceps", GrowthSmall},
		{"Calves", GrowthSmall},
		{"Core", GrowthSmall},
		{"Forearms", GrowthDefault},
		{"Other", GrowthDefault},
		{"", GrowthDefault},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.group); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.group, got, tt.want)
		}
	}
}

// TestSetsForWeek verifies the growth formula for big and small muscle
// groups, including the ceiling rounding on the 1.5 rate.
func TestSetsForWeek(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		group      string
		week       int
		totalWeeks int
		want       int
	}{
		{"Chest", 1, 6, 2},      // ceil(1*1.0 + 1)
		{"Chest", 2, 6, 3},
		{"Chest", 3, 0, 4},      // ceil(3*1.0 + 1)
		{"Chest", 5, 6, 6},
		{"Shoulders", 1, 6, 3},  // ceil(1*1.5 + 1)
		{"Shoulders", 2, 6, 4},  // ceil(4.0)
		{"Shoulders", 3, 0, 6},  // ceil(5.5)
		{"Forearms", 3, 0, 4},   // default behaves like big
	}
	for _, tt := range tests {
		if got := c.SetsForWeek(tt.group, tt.week, tt.totalWeeks); got != tt.want {
			t.Errorf("SetsForWeek(%q, %d, %d) = %d, want %d",
				tt.group, tt.week, tt.totalWeeks, got, tt.want)
		}
	}
}

// TestSetsForWeekDeload verifies that the final week of any bounded block
// prescribes exactly one set regardless of muscle group, and that the rule
// only fires on strict equality.
func TestSetsForWeekDeload(t *testing.T) {
	c := NewClassifier()

	for _, group := range []string{"Chest", "Shoulders", "Other"} {
		for _, totalWeeks := range []int{2, 4, 6, 8} {
			if got := c.SetsForWeek(group, totalWeeks, totalWeeks); got != 1 {
				t.Errorf("SetsForWeek(%q, %d, %d) = %d, want 1 (deload)",
					group, totalWeeks, totalWeeks, got)
			}
		}
	}

	// Week past totalWeeks is not a deload.
	if got := c.SetsForWeek("Chest", 7, 6); got != 8 {
		t.Errorf("SetsForWeek(Chest, 7, 6) = %d, want 8", got)
	}
}

// TestSetsForWeekOpenEnded verifies that totalWeeks <= 0 disables the deload
// rule: big groups grow as ceil(week + 1) indefinitely.
func TestSetsForWeekOpenEnded(t *testing.T) {
	c := NewClassifier()

	for week := 1; week <= 10; week++ {
		want := week + 1
		if got := c.SetsForWeek("Back", week, 0); got != want {
			t.Errorf("SetsForWeek(Back, %d, 0) = %d, want %d", week, got, want)
		}
	}
}
