package storage

import "github.com/dpramesti/habitd/pkg/habit"

// Snapshot is the complete persisted state for one user, used for
// export/import round-trips.
type Snapshot struct {
	Habits   []habit.Habit      `json:"habits"`
	Logs     []habit.HabitLog   `json:"logs"`
	Settings habit.UserSettings `json:"settings"`
}

// Store is the authoritative holder of habits, logs and settings. All state
// is scoped per user id; callers without auth use the anonymous user.
//
// Mutations referencing a missing id are silent no-ops, uniformly: a storage
// layer with forgiving semantics. Reads report absence via a found bool, not
// an error.
type Store interface {
	ListHabits(userID string) ([]habit.Habit, error)
	GetHabit(userID, id string) (habit.Habit, bool, error)
	CreateHabit(userID string, h habit.Habit) error
	// UpdateHabit merges the non-nil fields of upd into the habit, if it
	// exists. The id is never changed.
	UpdateHabit(userID, id string, upd habit.HabitUpdate) error
	// DeleteHabit removes the habit and every log referencing it.
	DeleteHabit(userID, id string) error

	ListLogs(userID string) ([]habit.HabitLog, error)
	ListLogsForHabit(userID, habitID string) ([]habit.HabitLog, error)
	// PutLog stores a log, replacing any existing log for the same
	// (habitID, date) pair. Replace happens atomically with the insert.
	PutLog(userID string, l habit.HabitLog) error

	// GetSettings returns the stored settings, or the defaults if the user
	// never saved any.
	GetSettings(userID string) (habit.UserSettings, error)
	PutSettings(userID string, s habit.UserSettings) error

	// Snapshot and Restore move whole-user state for export/import.
	// Restore replaces everything in a single atomic step.
	Snapshot(userID string) (Snapshot, error)
	Restore(userID string, snap Snapshot) error

	// API key auth. Keys are stored hashed; the hash maps back to a user id.
	PutAPIKey(keyHash, userID string) error
	GetAPIKey(keyHash string) (userID string, found bool, err error)
	ListAPIKeyHashes(userID string) ([]string, error)
	DeleteAPIKey(keyHash string) error

	Close() error
}
