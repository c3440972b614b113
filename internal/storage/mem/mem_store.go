// Package mem provides an in-process Store backed by maps, used for the
// in-memory deployment mode and for tests.
package mem

import (
	"sync"

	"github.com/dpramesti/habitd/internal/storage"
	"github.com/dpramesti/habitd/pkg/habit"
)

type userState struct {
	habits   []habit.Habit
	logs     []habit.HabitLog
	settings *habit.UserSettings
}

type Store struct {
	mu      sync.RWMutex
	users   map[string]*userState
	apiKeys map[string]string // key hash -> user id
}

func New() *Store {
	return &Store{
		users:   map[string]*userState{},
		apiKeys: map[string]string{},
	}
}

func (s *Store) user(userID string) *userState {
	u, ok := s.users[userID]
	if !ok {
		u = &userState{}
		s.users[userID] = u
	}
	return u
}

func (s *Store) ListHabits(userID string) ([]habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return []habit.Habit{}, nil
	}
	return append([]habit.Habit{}, u.habits...), nil
}

func (s *Store) GetHabit(userID, id string) (habit.Habit, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return habit.Habit{}, false, nil
	}
	for _, h := range u.habits {
		if h.ID == id {
			return h, true, nil
		}
	}
	return habit.Habit{}, false, nil
}

func (s *Store) CreateHabit(userID string, h habit.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.habits = append(u.habits, h)
	return nil
}

func (s *Store) UpdateHabit(userID, id string, upd habit.HabitUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	for i := range u.habits {
		if u.habits[i].ID != id {
			continue
		}
		applyUpdate(&u.habits[i], upd)
		return nil
	}
	return nil
}

func applyUpdate(h *habit.Habit, upd habit.HabitUpdate) {
	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Type != nil {
		h.Type = *upd.Type
	}
	if upd.Streak != nil {
		h.Streak = *upd.Streak
	}
	if upd.LastCompletedDate != nil {
		h.LastCompletedDate = upd.LastCompletedDate
	}
}

func (s *Store) DeleteHabit(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	habits := u.habits[:0]
	for _, h := range u.habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}
	u.habits = habits

	logs := u.logs[:0]
	for _, l := range u.logs {
		if l.HabitID != id {
			logs = append(logs, l)
		}
	}
	u.logs = logs
	return nil
}

func (s *Store) ListLogs(userID string) ([]habit.HabitLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return []habit.HabitLog{}, nil
	}
	return append([]habit.HabitLog{}, u.logs...), nil
}

func (s *Store) ListLogsForHabit(userID, habitID string) ([]habit.HabitLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return []habit.HabitLog{}, nil
	}
	out := []habit.HabitLog{}
	for _, l := range u.logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) PutLog(userID string, l habit.HabitLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	logs := u.logs[:0]
	for _, existing := range u.logs {
		if existing.HabitID == l.HabitID && existing.Date == l.Date {
			continue
		}
		logs = append(logs, existing)
	}
	u.logs = append(logs, l)
	return nil
}

func (s *Store) GetSettings(userID string) (habit.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || u.settings == nil {
		return habit.DefaultSettings(), nil
	}
	return *u.settings, nil
}

func (s *Store) PutSettings(userID string, settings habit.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.settings = &settings
	return nil
}

func (s *Store) Snapshot(userID string) (storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := storage.Snapshot{
		Habits:   []habit.Habit{},
		Logs:     []habit.HabitLog{},
		Settings: habit.DefaultSettings(),
	}
	u, ok := s.users[userID]
	if !ok {
		return snap, nil
	}
	snap.Habits = append(snap.Habits, u.habits...)
	snap.Logs = append(snap.Logs, u.logs...)
	if u.settings != nil {
		snap.Settings = *u.settings
	}
	return snap, nil
}

func (s *Store) Restore(userID string, snap storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := snap.Settings
	s.users[userID] = &userState{
		habits:   append([]habit.Habit{}, snap.Habits...),
		logs:     append([]habit.HabitLog{}, snap.Logs...),
		settings: &settings,
	}
	return nil
}

func (s *Store) PutAPIKey(keyHash, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKeys[keyHash] = userID
	return nil
}

func (s *Store) GetAPIKey(keyHash string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.apiKeys[keyHash]
	return userID, ok, nil
}

func (s *Store) ListAPIKeyHashes(userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for hash, uid := range s.apiKeys {
		if uid == userID {
			out = append(out, hash)
		}
	}
	return out, nil
}

func (s *Store) DeleteAPIKey(keyHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.apiKeys, keyHash)
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
