package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listHabitLogs(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	habitID := chi.URLParam(r, "id")

	logs, err := s.store.ListLogsForHabit(userID, habitID)
	if err != nil {
		logger.Error("Failed to list logs", "user_id", userID, "habit_id", habitID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// trackHabit records today's outcome for a habit. Re-tracking the same day
// replaces the earlier log; the habit's streak cache is refreshed after
// every write.
func (s *Server) trackHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	habitID := chi.URLParam(r, "id")

	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	_, found, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		logger.Error("Failed to get habit", "user_id", userID, "habit_id", habitID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	now := time.Now()
	l := habit.NewLog(habitID, req.Completed, now)
	if err := s.store.PutLog(userID, l); err != nil {
		logger.Error("Failed to store log", "user_id", userID, "habit_id", habitID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Habit tracked", "user_id", userID, "habit_id", habitID,
		"date", l.Date, "completed", l.Completed)
	tracksTotal.WithLabelValues(userID).Inc()

	if err := s.refreshStreak(userID, habitID, now); err != nil {
		logger.Error("Failed to refresh streak", "user_id", userID, "habit_id", habitID, "error", err)
		writeError(w, http.StatusInternalServerError, "error computing streaks")
		return
	}

	writeJSON(w, http.StatusCreated, l)
}

// refreshStreak recomputes the habit's streak from its logs and persists it,
// keeping the denormalized counter consistent with the deriver.
func (s *Server) refreshStreak(userID, habitID string, now time.Time) error {
	streak, err := s.deriver.CurrentStreak(userID, habitID)
	if err != nil {
		return err
	}
	upd := habit.HabitUpdate{Streak: &streak}
	if streak > 0 {
		upd.LastCompletedDate = &now
	}
	return s.store.UpdateHabit(userID, habitID, upd)
}
