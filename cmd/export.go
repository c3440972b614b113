package cmd

import (
	"encoding/json"
	"os"

	"github.com/dpramesti/habitd/internal/config"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all habits, logs and settings as a JSON bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		b, err := newClient(cfg).Export(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if exportOutput == "" {
			cmd.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return err
		}
		cmd.Printf("Exported %d habits and %d logs to %s\n",
			b.Meta.Counts.Habits, b.Meta.Counts.Logs, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the bundle to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
