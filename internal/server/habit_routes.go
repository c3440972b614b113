package server

import (
	"encoding/json"
	"net/http"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Error("Failed to list habits", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)

	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := habit.ValidateCreate(req.Name, req.Type); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h := habit.NewHabit(req.Name, req.Type)
	if err := s.store.CreateHabit(userID, h); err != nil {
		logger.Error("Failed to create habit", "user_id", userID, "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Habit created", "user_id", userID, "habit_id", h.ID, "name", h.Name, "type", h.Type)

	s.refreshHabitCountMetric(userID)
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	id := chi.URLParam(r, "id")

	h, found, err := s.store.GetHabit(userID, id)
	if err != nil {
		logger.Error("Failed to get habit", "user_id", userID, "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	id := chi.URLParam(r, "id")

	var upd habit.HabitUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := habit.ValidateUpdate(upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateHabit(userID, id, upd); err != nil {
		logger.Error("Failed to update habit", "user_id", userID, "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Habit updated", "user_id", userID, "habit_id", id)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteHabit(userID, id); err != nil {
		logger.Error("Failed to delete habit", "user_id", userID, "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	logger.Info("Habit deleted", "user_id", userID, "habit_id", id)

	s.refreshHabitCountMetric(userID)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) refreshHabitCountMetric(userID string) {
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Warn("Failed to refresh habit count metric", "user_id", userID, "error", err)
		return
	}
	activeHabits.WithLabelValues(userID).Set(float64(len(habits)))
}
