// ABOUTME: HTTP handlers for the read-only coach API.
// ABOUTME: Every handler loads history fresh and runs the pure core functions over it.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
	"github.com/harperreed/coach/internal/session"
)

const defaultSessionLimit = 20

type recommendationResponse struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	progression.Result
}

type progressResponse struct {
	ExerciseID string                   `json:"exercise_id"`
	Points     []analytics.ExerciseStat `json:"points"`
}

type sessionSummary struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	RoutineID models.RoutineID `json:"routine_id"`
	TimeOfDay models.TimeOfDay `json:"time_of_day"`
	Volume    float64          `json:"volume"`
	Feedback  bool             `json:"has_feedback"`
}

func (s *Server) loadHistory(w http.ResponseWriter) ([]models.WorkoutSession, bool) {
	history, err := s.history.Load()
	if err != nil {
		s.log.Error("load history", "err", err)
		s.metrics.CounterHistoryErrors.Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return nil, false
	}
	s.metrics.GaugeSessions.Set(float64(len(history)))
	return history, true
}

func (s *Server) handleRoutines(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Routines)
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")
	ex, ok := s.catalog.Exercise(exerciseID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise"})
		return
	}
	history, ok := s.loadHistory(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Result:       progression.Recommend(ex.ID, history),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	history, ok := s.loadHistory(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.BuildDashboard(history, s.catalog.Exercises(), s.now()))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")
	if _, ok := s.catalog.Exercise(exerciseID); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise"})
		return
	}
	history, ok := s.loadHistory(w)
	if !ok {
		return
	}
	points := analytics.ExerciseProgress(exerciseID, history)
	if points == nil {
		points = []analytics.ExerciseStat{}
	}
	writeJSON(w, http.StatusOK, progressResponse{ExerciseID: exerciseID, Points: points})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	history, ok := s.loadHistory(w)
	if !ok {
		return
	}
	recent := session.Recent(history, limit)
	out := make([]sessionSummary, 0, len(recent))
	for _, ws := range recent {
		out = append(out, sessionSummary{
			ID:        ws.ID,
			Date:      ws.Date.Format(time.RFC3339),
			RoutineID: ws.RoutineID,
			TimeOfDay: ws.TimeOfDay,
			Volume:    analytics.SessionVolume(ws),
			Feedback:  ws.Feedback != nil,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	history, ok := s.loadHistory(w)
	if !ok {
		return
	}
	ws, err := session.Find(history, chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
