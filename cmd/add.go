package cmd

import (
	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/spf13/cobra"
)

var addType string

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a new habit",
	Long:  `The "add" command creates a habit to track, typed good (do daily) or bad (avoid daily).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		h, err := newClient(cfg).CreateHabit(cmd.Context(), args[0], habit.HabitType(addType))
		if err != nil {
			return err
		}
		cmd.Printf("Created %s habit %q (%s)\n", h.Type, h.Name, h.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", string(habit.TypeGood), `habit type: "good" or "bad"`)
	rootCmd.AddCommand(addCmd)
}
