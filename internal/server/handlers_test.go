package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/overload/internal/models"
	"github.com/claude/overload/internal/progression"
	"github.com/jackc/pgx/v5"
)

func testServer() *Server {
	return &Server{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return body["error"]
}

// TestWriteErrorMapping verifies domain errors map to the right HTTP status
// codes, including wrapped errors.
func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped no rows", errors.New("querying session: " + pgx.ErrNoRows.Error()), http.StatusInternalServerError},
		{"session completed", progression.ErrSessionCompleted, http.StatusConflict},
		{"exercise already present", progression.ErrExerciseInSession, http.StatusConflict},
		{"exercise missing", progression.ErrExerciseNotInSession, http.StatusNotFound},
		{"last set", progression.ErrLastSet, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if decodeError(t, rec) == "" {
				t.Error("error body is empty")
			}
		})
	}
}

// TestWriteErrorWrappedSentinel verifies fmt.Errorf-wrapped sentinels still
// map through errors.Is.
func TestWriteErrorWrappedSentinel(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("adding exercise"), progression.ErrSessionCompleted)
	s.writeError(rec, wrapped)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestWorkoutTemplateForDay verifies day numbers index the block's ordered
// template list, with out-of-range days yielding no template.
func TestWorkoutTemplateForDay(t *testing.T) {
	m := &models.Mesocycle{Workouts: []models.WorkoutTemplate{
		{ID: 11, OrderIndex: 1},
		{ID: 12, OrderIndex: 2},
	}}

	if got := workoutTemplateForDay(m, 1); got == nil || *got != 11 {
		t.Errorf("day 1 template = %v, want 11", got)
	}
	if got := workoutTemplateForDay(m, 2); got == nil || *got != 12 {
		t.Errorf("day 2 template = %v, want 12", got)
	}
	if got := workoutTemplateForDay(m, 3); got != nil {
		t.Errorf("day 3 template = %v, want nil", got)
	}
	if got := workoutTemplateForDay(m, 0); got != nil {
		t.Errorf("day 0 template = %v, want nil", got)
	}
}

// TestExerciseIDs verifies deduplication across the template and set lists.
func TestExerciseIDs(t *testing.T) {
	template := []models.TemplateExercise{{ExerciseID: 1}, {ExerciseID: 2}}
	prev := []models.WorkoutSet{{ExerciseID: 2}, {ExerciseID: 3}, {ExerciseID: 3}}
	source := []models.WorkoutSet{{ExerciseID: 4}}

	ids := exerciseIDs(template, prev, source)
	if len(ids) != 4 {
		t.Fatalf("len(ids) = %d, want 4: %v", len(ids), ids)
	}
	want := map[int64]bool{1: true, 2: true, 3: true, 4: true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected id %d", id)
		}
	}
}

// TestHandleHealth verifies the liveness endpoint.
func TestHandleHealth(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}
