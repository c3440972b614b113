package remind

import (
	"context"
	"fmt"

	"github.com/dpramesti/habitd/internal/stats"
	"github.com/dpramesti/habitd/pkg/habit"
)

type mockQuerier struct {
	habits   []habit.Habit
	stats    map[string]stats.HabitStats
	settings habit.UserSettings

	statsErr error
}

func (m *mockQuerier) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	return m.habits, nil
}

func (m *mockQuerier) HabitStats(ctx context.Context, habitID string) (stats.HabitStats, error) {
	if m.statsErr != nil {
		return stats.HabitStats{}, m.statsErr
	}
	st, ok := m.stats[habitID]
	if !ok {
		return stats.HabitStats{}, fmt.Errorf("no stats for %s", habitID)
	}
	return st, nil
}

func (m *mockQuerier) Settings(ctx context.Context) (habit.UserSettings, error) {
	return m.settings, nil
}
