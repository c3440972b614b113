// Package remind finds habits whose streak is at risk today and sends a
// reminder e-mail before the day rolls over.
package remind

import (
	"context"
	"fmt"
	"strings"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/internal/stats"
	"github.com/dpramesti/habitd/pkg/habit"
)

// Querier is the slice of the API the reminder needs.
type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	HabitStats(ctx context.Context, habitID string) (stats.HabitStats, error)
	Settings(ctx context.Context) (habit.UserSettings, error)
}

type Notifier interface {
	SendReminder(habits []string, message string) error
}

// Due returns the names of habits with a live streak and no log yet today:
// the ones that will lose their streak if the day ends unlogged.
func Due(ctx context.Context, q Querier) ([]string, error) {
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var due []string
	for _, h := range habits {
		st, err := q.HabitStats(ctx, h.ID)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", h.Name, err)
		}
		if st.CurrentStreak > 0 && !st.CompletedToday {
			due = append(due, h.Name)
		}
	}
	return due, nil
}

// Run checks for due habits and notifies if there are any. The nudge line
// uses the account's configured motivator personality.
func Run(ctx context.Context, q Querier, n Notifier) error {
	due, err := Due(ctx, q)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		logger.Info("No habits due, skipping reminder")
		return nil
	}

	settings, err := q.Settings(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	message := nudgeLine(settings.MotivatorPersonality, len(due))

	logger.Info("Sending reminder", "habits", strings.Join(due, ","))
	if err := n.SendReminder(due, message); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}

func nudgeLine(p habit.Personality, count int) string {
	switch p {
	case habit.PersonalityHarsh:
		return fmt.Sprintf("%d streak(s) on the line and the day is almost gone. Move.", count)
	case habit.PersonalityAdaptive:
		return fmt.Sprintf("%d habit(s) still open today. A few minutes keeps the streak.", count)
	default:
		return fmt.Sprintf("%d habit(s) waiting for you today. You've got this!", count)
	}
}
