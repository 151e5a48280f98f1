package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/overload/internal/models"
	"github.com/claude/overload/internal/storage"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ExerciseFilter{
		MuscleGroup: q.Get("muscle_group"),
		Equipment:   q.Get("equipment"),
		Search:      q.Get("search"),
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	exercises, err := s.db.ListExercises(r.Context(), currentUser(r), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if e.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	uid := currentUser(r)
	e.UserID = &uid

	created, err := s.db.CreateExercise(r.Context(), e)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}
	existing, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !s.ownsCustomExercise(existing, currentUser(r)) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "only your own custom exercises can be edited"})
		return
	}

	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	e.ID = id
	if err := s.db.UpdateExercise(r.Context(), e); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}
	existing, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !s.ownsCustomExercise(existing, currentUser(r)) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "only your own custom exercises can be deleted"})
		return
	}
	if err := s.db.DeleteExercise(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListMuscleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.db.ListMuscleGroups(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) ownsCustomExercise(e *models.Exercise, userID int64) bool {
	return e.IsCustom && e.UserID != nil && *e.UserID == userID
}
