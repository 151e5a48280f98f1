package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/overload/internal/models"
	"github.com/jackc/pgx/v5"
)

type createInstanceRequest struct {
	TemplateID int64      `json:"mesocycle_template_id"`
	StartDate  *time.Time `json:"start_date"`
}

func (s *Server) handleListInstances(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListInstances(r.Context(), currentUser(r), r.URL.Query().Get("status"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid instance id"})
		return
	}
	inst, err := s.instanceForUser(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if inst == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) handleGetActiveInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := s.db.GetActiveInstance(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	var req createInstanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	uid := currentUser(r)

	template, err := s.db.GetMesocycle(r.Context(), req.TemplateID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if template.UserID != uid && !template.IsStock {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}

	// One active block at a time.
	if _, err := s.db.GetActiveInstance(r.Context(), uid); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "an active mesocycle instance already exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	inst, err := s.db.CreateInstance(r.Context(), uid, req.TemplateID, start)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

type updateInstanceRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateInstanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid instance id"})
		return
	}
	inst, err := s.instanceForUser(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if inst == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	var req updateInstanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	switch req.Status {
	case models.InstanceActive, models.InstanceCompleted, models.InstanceAbandoned:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	if err := s.db.UpdateInstanceStatus(r.Context(), id, req.Status); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteInstance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid instance id"})
		return
	}
	inst, err := s.instanceForUser(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if inst == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err := s.db.DeleteInstance(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// instanceForUser loads an instance and hides other users' instances behind
// a nil result.
func (s *Server) instanceForUser(r *http.Request, id int64) (*models.MesocycleInstance, error) {
	inst, err := s.db.GetInstance(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if inst.UserID != currentUser(r) {
		return nil, nil
	}
	return inst, nil
}
