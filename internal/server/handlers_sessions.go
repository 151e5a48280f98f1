package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/overload/internal/models"
	"github.com/claude/overload/internal/progression"
	"github.com/claude/overload/internal/storage"
	"github.com/jackc/pgx/v5"
)

type createSessionRequest struct {
	InstanceID  int64      `json:"mesocycle_instance_id"`
	TemplateID  *int64     `json:"workout_template_id"`
	WeekNumber  int        `json:"week_number"`
	DayNumber   int        `json:"day_number"`
	WorkoutDate *time.Time `json:"workout_date"`

	// Optional reference to a session in an earlier block whose exercise
	// line-up should continue into week 1 of this block. Ignored for week
	// numbers above 1.
	SourceInstanceID *int64 `json:"source_instance_id"`
	SourceWeekNumber *int   `json:"source_week_number"`
}

type sessionResponse struct {
	Session *models.WorkoutSession `json:"session"`
	Sets    []models.WorkoutSet    `json:"sets"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WeekNumber < 1 || req.DayNumber < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week_number and day_number must be positive"})
		return
	}
	uid := currentUser(r)

	inst, err := s.instanceForUser(r, req.InstanceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if inst == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "instance not found"})
		return
	}

	meso, err := s.db.GetMesocycle(r.Context(), inst.TemplateID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	templateID := req.TemplateID
	if templateID == nil {
		templateID = workoutTemplateForDay(meso, req.DayNumber)
	}

	var template []models.TemplateExercise
	if templateID != nil {
		template, err = s.db.GetTemplateExercises(r.Context(), *templateID)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	var prevSets []models.WorkoutSet
	prevWeek := 0
	prev, err := s.db.FindPreviousSession(r.Context(), inst.ID, req.WeekNumber, req.DayNumber)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if prev != nil {
		prevWeek = prev.WeekNumber
		prevSets, err = s.db.GetSessionSets(r.Context(), prev.ID)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	var sourceSets []models.WorkoutSet
	if req.WeekNumber == 1 && req.SourceInstanceID != nil && req.SourceWeekNumber != nil {
		sourceSets, err = s.loadSourceSets(r, uid, *req.SourceInstanceID, *req.SourceWeekNumber, req.DayNumber)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	groups, err := s.db.MuscleGroupsByExercise(r.Context(), exerciseIDs(template, prevSets, sourceSets))
	if err != nil {
		s.writeError(w, err)
		return
	}

	workoutDate := time.Now()
	if req.WorkoutDate != nil {
		workoutDate = *req.WorkoutDate
	}
	session := models.WorkoutSession{
		UserID:      uid,
		InstanceID:  inst.ID,
		TemplateID:  templateID,
		WorkoutDate: workoutDate,
		WeekNumber:  req.WeekNumber,
		DayNumber:   req.DayNumber,
		Status:      models.SessionInProgress,
	}

	sets := s.planner.GenerateSessionSets(progression.GenerateInput{
		Session:      session,
		TotalWeeks:   meso.Weeks,
		Template:     template,
		MuscleGroups: groups,
		PrevSets:     prevSets,
		PrevWeek:     prevWeek,
		SourceSets:   sourceSets,
	})

	if err := s.db.CreateSessionWithSets(r.Context(), &session, sets); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("session created",
		"session_id", session.ID, "week", session.WeekNumber, "day", session.DayNumber, "sets", len(sets))
	writeJSON(w, http.StatusCreated, sessionResponse{Session: &session, Sets: sets})
}

// loadSourceSets resolves a cross-block source reference to its sets,
// verifying the referenced instance belongs to the same user.
func (s *Server) loadSourceSets(r *http.Request, uid, sourceInstanceID int64, sourceWeek, day int) ([]models.WorkoutSet, error) {
	src, err := s.db.GetInstance(r.Context(), sourceInstanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if src.UserID != uid {
		return nil, nil
	}
	session, err := s.db.FindSessionByWeekDay(r.Context(), sourceInstanceID, sourceWeek, day)
	if err != nil || session == nil {
		return nil, err
	}
	return s.db.GetSessionSets(r.Context(), session.ID)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.SessionFilter{Status: q.Get("status")}
	filter.InstanceID, _ = strconv.ParseInt(q.Get("instance_id"), 10, 64)
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	list, err := s.db.ListSessions(r.Context(), currentUser(r), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	// Reading an in-progress session refreshes its targets against the
	// previous week's latest numbers; re-reads with unchanged inputs write
	// nothing.
	if session.Status == models.SessionInProgress && session.WeekNumber > 1 {
		prev, err := s.db.FindPreviousSession(r.Context(), session.InstanceID, session.WeekNumber, session.DayNumber)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if prev != nil {
			prevSets, err := s.db.GetSessionSets(r.Context(), prev.ID)
			if err != nil {
				s.writeError(w, err)
				return
			}
			if updated, changed := s.planner.RefreshTargets(sets, prevSets); changed {
				if err := s.db.UpdateSetTargets(r.Context(), updated); err != nil {
					s.writeError(w, err)
					return
				}
				s.log.Info("session targets refreshed", "session_id", session.ID, "updated", len(updated))
			}
		}
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Sets: sets})
}

type updateSessionRequest struct {
	Status          *string `json:"status"`
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.loadSessionOnly(w, r)
	if !ok {
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.SessionInProgress, models.SessionCompleted, models.SessionSkipped:
			session.Status = *req.Status
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = req.DurationMinutes
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if err := s.db.UpdateSession(r.Context(), *session); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.loadSessionOnly(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteSession(r.Context(), session.ID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type logSetRequest struct {
	Weight  *float64 `json:"weight"`
	Reps    *int     `json:"reps"`
	RIR     *int     `json:"rir"`
	Skipped *bool    `json:"skipped"`
	Notes   *string  `json:"notes"`
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.loadSessionOnly(w, r)
	if !ok {
		return
	}
	if session.Status == models.SessionCompleted {
		s.writeError(w, progression.ErrSessionCompleted)
		return
	}
	setID, err := idParam(r, "setID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set id"})
		return
	}

	set, err := s.db.GetSet(r.Context(), setID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if set.SessionID != session.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not in session"})
		return
	}

	var req logSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Weight != nil {
		set.Weight = *req.Weight
	}
	if req.Reps != nil {
		set.Reps = *req.Reps
	}
	if req.RIR != nil {
		set.RIR = req.RIR
	}
	if req.Skipped != nil {
		set.Skipped = *req.Skipped
	}
	if req.Notes != nil {
		set.Notes = *req.Notes
	}

	if err := s.db.UpdateSetLog(r.Context(), *set); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

type addExerciseRequest struct {
	ExerciseID int64 `json:"exercise_id"`
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	groups, err := s.db.MuscleGroupsByExercise(r.Context(), []int64{req.ExerciseID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	totalWeeks, err := s.totalWeeksFor(r, session.InstanceID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m, err := s.planner.AddExercise(*session, sets, req.ExerciseID, groups[req.ExerciseID], totalWeeks)
	s.applyMutation(w, r, session.ID, m, err)
}

type swapExerciseRequest struct {
	OldExerciseID int64 `json:"old_exercise_id"`
	NewExerciseID int64 `json:"new_exercise_id"`
}

func (s *Server) handleSwapExercise(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req swapExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	m, err := s.planner.SwapExercise(*session, sets, req.OldExerciseID, req.NewExerciseID)
	s.applyMutation(w, r, session.ID, m, err)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	exerciseID, err := idParam(r, "exerciseID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}

	m, err := s.planner.RemoveExercise(*session, sets, exerciseID)
	s.applyMutation(w, r, session.ID, m, err)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	exerciseID, err := idParam(r, "exerciseID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}

	m, err := s.planner.AddSet(*session, sets, exerciseID)
	s.applyMutation(w, r, session.ID, m, err)
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	session, sets, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	exerciseID, err := idParam(r, "exerciseID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise id"})
		return
	}

	m, err := s.planner.RemoveSet(*session, sets, exerciseID)
	s.applyMutation(w, r, session.ID, m, err)
}

// applyMutation persists a mutation and responds with the session's
// resulting set list.
func (s *Server) applyMutation(w http.ResponseWriter, r *http.Request, sessionID int64, m progression.Mutation, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.db.ApplyMutation(r.Context(), m); err != nil {
		s.writeError(w, err)
		return
	}
	sets, err := s.db.GetSessionSets(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sets": sets})
}

// loadSession loads the route's session plus its sets, writing the error
// response itself when anything fails.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*models.WorkoutSession, []models.WorkoutSet, bool) {
	session, _, ok := s.loadSessionOnly(w, r)
	if !ok {
		return nil, nil, false
	}
	sets, err := s.db.GetSessionSets(r.Context(), session.ID)
	if err != nil {
		s.writeError(w, err)
		return nil, nil, false
	}
	return session, sets, true
}

func (s *Server) loadSessionOnly(w http.ResponseWriter, r *http.Request) (*models.WorkoutSession, []models.WorkoutSet, bool) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return nil, nil, false
	}
	session, err := s.db.GetSession(r.Context(), id, currentUser(r))
	if err != nil {
		s.writeError(w, err)
		return nil, nil, false
	}
	return session, nil, true
}

func (s *Server) totalWeeksFor(r *http.Request, instanceID int64) (int, error) {
	inst, err := s.db.GetInstance(r.Context(), instanceID)
	if err != nil {
		return 0, err
	}
	meso, err := s.db.GetMesocycle(r.Context(), inst.TemplateID)
	if err != nil {
		return 0, err
	}
	return meso.Weeks, nil
}

// workoutTemplateForDay picks the day's workout template from the block's
// ordered template list; day numbers are 1-based.
func workoutTemplateForDay(m *models.Mesocycle, day int) *int64 {
	if day < 1 || day > len(m.Workouts) {
		return nil
	}
	id := m.Workouts[day-1].ID
	return &id
}

func exerciseIDs(template []models.TemplateExercise, setLists ...[]models.WorkoutSet) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, te := range template {
		if !seen[te.ExerciseID] {
			seen[te.ExerciseID] = true
			ids = append(ids, te.ExerciseID)
		}
	}
	for _, sets := range setLists {
		for _, s := range sets {
			if !seen[s.ExerciseID] {
				seen[s.ExerciseID] = true
				ids = append(ids, s.ExerciseID)
			}
		}
	}
	return ids
}
