package cmd

import (
	"os"

	"github.com/dpramesti/habitd/internal/apiclient"
	"github.com/dpramesti/habitd/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habitd",
	Short: "Track daily habits, streaks and stats",
	Long: `
	habitd tracks daily completions of good and bad habits, computes streaks
	and summaries, and nags you (in the personality of your choosing) to keep
	your streaks alive. It runs as an HTTP server and ships a small client CLI.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds an API client from the loaded config. The HABITD_API_KEY
// env var carries the bearer key when the server runs with auth enabled.
func newClient(cfg *config.Config) *apiclient.Client {
	c := apiclient.New(cfg.APIBaseURL)
	c.APIKey = os.Getenv("HABITD_API_KEY")
	return c
}
