package cmd

import (
	"github.com/dpramesti/habitd/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the aggregate summary across all habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := newClient(cfg).Stats(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Habits:          %d (%d good, %d bad, %d active today)\n",
			s.TotalHabits, s.GoodHabits, s.BadHabits, s.HabitsActiveToday)
		cmd.Printf("Streaks:         %d combined, %d longest ever\n", s.TotalStreak, s.LongestStreak)
		cmd.Printf("Completed today: %d\n", s.TodayCompletion)
		cmd.Printf("Last 7 days:     %d completions\n", s.WeeklyCompletion)
		cmd.Printf("All time:        %d completions\n", s.TotalActions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
