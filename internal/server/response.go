package server

import (
	"github.com/dpramesti/habitd/pkg/habit"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type CreateHabitRequest struct {
	Name string          `json:"name"`
	Type habit.HabitType `json:"type"`
}

type TrackRequest struct {
	Completed bool `json:"completed"`
}

type HistoryResponse struct {
	Date   string           `json:"date"`
	Habits map[string]*bool `json:"habits"`
}

type APIKeyCreateResponse struct {
	Key string `json:"key"`
}

type APIKeyListResponse struct {
	Hashes []string `json:"hashes"`
}
