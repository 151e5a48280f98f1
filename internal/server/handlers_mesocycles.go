package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/overload/internal/models"
)

func (s *Server) handleListMesocycles(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListMesocycles(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetMesocycle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid mesocycle id"})
		return
	}
	m, err := s.db.GetMesocycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if m.UserID != currentUser(r) && !m.IsStock {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleCreateMesocycle(w http.ResponseWriter, r *http.Request) {
	var m models.Mesocycle
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if m.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if m.Weeks < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weeks must not be negative"})
		return
	}
	m.UserID = currentUser(r)
	m.IsStock = false

	created, err := s.db.CreateMesocycle(r.Context(), m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateMesocycle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid mesocycle id"})
		return
	}
	existing, err := s.db.GetMesocycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if existing.UserID != currentUser(r) || existing.IsStock {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "only your own templates can be edited"})
		return
	}

	var m models.Mesocycle
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	m.ID = id
	if err := s.db.UpdateMesocycle(r.Context(), m); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteMesocycle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid mesocycle id"})
		return
	}
	existing, err := s.db.GetMesocycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if existing.UserID != currentUser(r) || existing.IsStock {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "only your own templates can be deleted"})
		return
	}
	if err := s.db.DeleteMesocycle(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
