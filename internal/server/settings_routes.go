package server

import (
	"encoding/json"
	"net/http"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/pkg/habit"
)

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	settings, err := s.store.GetSettings(userID)
	if err != nil {
		logger.Error("Failed to get settings", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// putSettings replaces the settings wholesale: callers send the complete
// object, last write wins.
func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	var settings habit.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := habit.ValidateSettings(settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.PutSettings(userID, settings); err != nil {
		logger.Error("Failed to store settings", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Settings replaced", "user_id", userID,
		"personality", settings.MotivatorPersonality, "language", settings.Language)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
