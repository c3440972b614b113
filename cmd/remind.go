package cmd

import (
	"fmt"
	"os"

	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/remind"
	"github.com/spf13/cobra"
)

var (
	notifyEmail  string
	resendAPIKey string
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "E-mail a reminder for streaks that would break today",
	Long: `The "remind" command checks which habits still have an open streak today
and sends one reminder e-mail listing them. Run it from cron in the evening.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if resendAPIKey = os.Getenv("HABITD_RESEND_API_KEY"); resendAPIKey == "" {
			return fmt.Errorf("HABITD_RESEND_API_KEY environment variable is not set")
		}
		if notifyEmail = os.Getenv("HABITD_NOTIFY_EMAIL"); notifyEmail == "" {
			return fmt.Errorf("HABITD_NOTIFY_EMAIL environment variable is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		n := &remind.ResendNotifier{
			APIKey: resendAPIKey,
			Email:  notifyEmail,
		}
		return remind.Run(cmd.Context(), newClient(cfg), n)
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
