package server

import (
	"net/http"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getHabitStats(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	habitID := chi.URLParam(r, "id")

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

	st, err := s.deriver.HabitStats(userID, habitID)
	if err != nil {
		logger.Error("Failed to compute habit stats", "user_id", userID, "habit_id", habitID, "error", err)
		writeError(w, http.StatusInternalServerError, "error computing streaks")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Error("Failed to list habits", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	summary, err := s.deriver.Aggregate(userID, habits)
	if err != nil {
		logger.Error("Failed to compute stat summary", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "error computing stats")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	dateStr := chi.URLParam(r, "date")

	date, err := habit.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.deriver.DailySummary(userID, date)
	if err != nil {
		logger.Error("Failed to compute daily summary", "user_id", userID, "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "error computing history")
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Date: dateStr, Habits: summary})
}
