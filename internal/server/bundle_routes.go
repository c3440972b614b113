package server

import (
	"io"
	"net/http"

	"github.com/dpramesti/habitd/internal/bundle"
	"github.com/dpramesti/habitd/internal/logger"
)

func (s *Server) exportBundle(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	b, err := bundle.Export(s.store, userID)
	if err != nil {
		logger.Error("Failed to export bundle", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	logger.Info("Bundle exported", "user_id", userID,
		"habits", b.Meta.Counts.Habits, "logs", b.Meta.Counts.Logs)
	writeJSON(w, http.StatusOK, b)
}

// importBundle validates the whole document before touching the store, so a
// bad bundle never leaves partial state behind.
func (s *Server) importBundle(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	b, err := bundle.Parse(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := bundle.Import(s.store, userID, b); err != nil {
		logger.Error("Failed to import bundle", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Bundle imported", "user_id", userID,
		"habits", len(b.Habits), "logs", len(b.Logs))

	s.refreshHabitCountMetric(userID)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
