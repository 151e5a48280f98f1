package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/claude/overload/internal/models"
)

// ParseExerciseCSV reads an exercise library file. The first row is a header
// naming at least "name" and "muscle_group"; "equipment" and "description"
// columns are optional. Column order does not matter.
func ParseExerciseCSV(r io.Reader) ([]models.Exercise, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, ok := col["name"]
	if !ok {
		return nil, fmt.Errorf("header is missing the name column")
	}
	groupIdx, ok := col["muscle_group"]
	if !ok {
		return nil, fmt.Errorf("header is missing the muscle_group column")
	}

	field := func(record []string, idx int, ok bool) string {
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	equipIdx, hasEquip := col["equipment"]
	descIdx, hasDesc := col["description"]

	var out []models.Exercise
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := field(record, nameIdx, true)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty exercise name", line)
		}
		group := field(record, groupIdx, true)
		if group == "" {
			return nil, fmt.Errorf("line %d: empty muscle group for %q", line, name)
		}

		out = append(out, models.Exercise{
			Name:        name,
			MuscleGroup: group,
			Equipment:   field(record, equipIdx, hasEquip),
			Description: field(record, descIdx, hasDesc),
		})
	}
	return out, nil
}
