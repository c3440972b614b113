package cmd

import (
	"github.com/dpramesti/habitd/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits and their current streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		habits, err := newClient(cfg).ListHabits(cmd.Context())
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			cmd.Println("No habits yet. Create one with \"habitd add\".")
			return nil
		}
		for _, h := range habits {
			cmd.Printf("%-36s  %-5s  streak %-3d  %s\n", h.ID, h.Type, h.Streak, h.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
