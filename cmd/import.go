package cmd

import (
	"fmt"
	"os"

	"github.com/dpramesti/habitd/internal/bundle"
	"github.com/dpramesti/habitd/internal/config"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all habits, logs and settings from a JSON bundle",
	Long: `The "import" command restores state from a bundle produced by "export".
The bundle is validated up front; an invalid file changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		b, err := bundle.Parse(data)
		if err != nil {
			return fmt.Errorf("invalid bundle %s: %w", args[0], err)
		}
		if err := newClient(cfg).Import(cmd.Context(), b); err != nil {
			return err
		}
		cmd.Printf("Imported %d habits and %d logs\n", len(b.Habits), len(b.Logs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
