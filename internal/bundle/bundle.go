// Package bundle implements the JSON export/import format: a single document
// holding every habit, log and the settings, enough to rebuild store state.
package bundle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dpramesti/habitd/internal/stats"
	"github.com/dpramesti/habitd/internal/storage"
	"github.com/dpramesti/habitd/pkg/habit"
)

const Version = "1"

type Meta struct {
	ExportedAt string `json:"exportedAt"`
	Counts     Counts `json:"counts"`
}

type Counts struct {
	Habits int `json:"habits"`
	Logs   int `json:"logs"`
}

type Bundle struct {
	Version  string             `json:"version"`
	Meta     Meta               `json:"meta"`
	Habits   []habit.Habit      `json:"habits"`
	Logs     []habit.HabitLog   `json:"logs"`
	Settings habit.UserSettings `json:"settings"`
}

// Export captures the user's full state as a bundle.
func Export(store storage.Store, userID string) (Bundle, error) {
	snap, err := store.Snapshot(userID)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Version: Version,
		Meta: Meta{
			ExportedAt: time.Now().Format(time.RFC3339),
			Counts:     Counts{Habits: len(snap.Habits), Logs: len(snap.Logs)},
		},
		Habits:   snap.Habits,
		Logs:     snap.Logs,
		Settings: snap.Settings,
	}, nil
}

// Parse decodes and validates a bundle. Nothing touches the store until the
// whole document checks out.
func Parse(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := Validate(b); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

func Validate(b Bundle) error {
	if b.Version != Version {
		return fmt.Errorf("version: must be %q", Version)
	}
	for i, h := range b.Habits {
		if h.ID == "" {
			return fmt.Errorf("habits[%d].id: must not be empty", i)
		}
		if h.Name == "" {
			return fmt.Errorf("habits[%d].name: must not be empty", i)
		}
		if !habit.ValidType(h.Type) {
			return fmt.Errorf("habits[%d].type: unknown type %q", i, h.Type)
		}
		if h.Streak < 0 {
			return fmt.Errorf("habits[%d].streak: must be >= 0", i)
		}
		if h.CreatedAt.IsZero() {
			return fmt.Errorf("habits[%d].createdAt: must be set", i)
		}
	}
	for i, l := range b.Logs {
		if l.ID == "" {
			return fmt.Errorf("logs[%d].id: must not be empty", i)
		}
		if l.HabitID == "" {
			return fmt.Errorf("logs[%d].habitId: must not be empty", i)
		}
		if _, err := habit.ParseDate(l.Date); err != nil {
			return fmt.Errorf("logs[%d].%v", i, err)
		}
		if l.Timestamp.IsZero() {
			return fmt.Errorf("logs[%d].timestamp: must be set", i)
		}
	}
	if err := habit.ValidateSettings(b.Settings); err != nil {
		return fmt.Errorf("settings.%v", err)
	}
	return nil
}

// Import replaces the user's store state with the bundle's contents and
// refreshes the streak caches from the imported logs.
func Import(store storage.Store, userID string, b Bundle) error {
	if err := Validate(b); err != nil {
		return err
	}
	snap := storage.Snapshot{
		Habits:   b.Habits,
		Logs:     b.Logs,
		Settings: b.Settings,
	}
	if err := store.Restore(userID, snap); err != nil {
		return err
	}

	deriver := stats.New(store)
	for _, h := range b.Habits {
		streak, err := deriver.CurrentStreak(userID, h.ID)
		if err != nil {
			return err
		}
		if streak == h.Streak {
			continue
		}
		if err := store.UpdateHabit(userID, h.ID, habit.HabitUpdate{Streak: &streak}); err != nil {
			return err
		}
	}
	return nil
}
