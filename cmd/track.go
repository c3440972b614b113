package cmd

import (
	"context"
	"fmt"

	"github.com/dpramesti/habitd/internal/apiclient"
	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/motivator"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/spf13/cobra"
)

var trackMissed bool

var trackCmd = &cobra.Command{
	Use:   "track HABIT",
	Short: "Record today's outcome for a habit",
	Long: `The "track" command logs today's outcome for a habit, by name or id.
Tracking the same habit again today replaces the earlier entry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return track(cmd, newClient(cfg), args[0], !trackMissed)
	},
}

func init() {
	trackCmd.Flags().BoolVar(&trackMissed, "missed", false, "record the habit as not done today")
	rootCmd.AddCommand(trackCmd)
}

func track(cmd *cobra.Command, client *apiclient.Client, ref string, completed bool) error {
	h, err := resolveHabit(cmd.Context(), client, ref)
	if err != nil {
		return err
	}

	before, err := client.HabitStats(cmd.Context(), h.ID)
	if err != nil {
		return err
	}
	if _, err := client.Track(cmd.Context(), h.ID, completed); err != nil {
		return err
	}
	after, err := client.HabitStats(cmd.Context(), h.ID)
	if err != nil {
		return err
	}

	settings, err := client.Settings(cmd.Context())
	if err != nil {
		return err
	}
	msg := motivator.Message(settings.MotivatorPersonality, motivator.State{
		Completed:       completed,
		HabitType:       h.Type,
		Streak:          after.CurrentStreak,
		PreviousStreak:  before.CurrentStreak,
		FirstCompletion: before.TotalCompletions == 0 && after.TotalCompletions > 0,
	})

	cmd.Printf("Tracked %q for today.\n%s\n", h.Name, msg)
	return nil
}

// resolveHabit accepts a habit id or an exact name.
func resolveHabit(ctx context.Context, client *apiclient.Client, ref string) (habit.Habit, error) {
	habits, err := client.ListHabits(ctx)
	if err != nil {
		return habit.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == ref || h.Name == ref {
			return h, nil
		}
	}
	return habit.Habit{}, fmt.Errorf("no habit named %q", ref)
}
