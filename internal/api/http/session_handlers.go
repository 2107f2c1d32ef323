// Package http exposes the analytics engine to the UI layer.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/skillpath/analytics/internal/session"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sessionError maps engine errors onto HTTP statuses. Unknown errors
// are internal: they indicate a violated invariant, not caller fault.
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.WithError(err).Error("session operation failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func StartSessionHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID   string `json:"user_id"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.UserID == "" || req.Language == "" {
			http.Error(w, "user_id and language required", http.StatusBadRequest)
			return
		}
		id, err := engine.StartSession(req.UserID, req.Language)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, map[string]string{"session_id": id})
	}
}

func ProcessResponseHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var in session.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if in.SkillArea == "" {
			http.Error(w, "skill_area required", http.StatusBadRequest)
			return
		}
		analytics, err := engine.ProcessResponse(r.Context(), id, in)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, analytics)
	}
}

func FinalizeSessionHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		res, err := engine.FinalizeSession(r.Context(), id)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, res)
	}
}

func GetAnalyticsHandler(engine *session.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		snap, err := engine.Snapshot(id)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, snap)
	}
}
