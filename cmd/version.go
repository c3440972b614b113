package cmd

import (
	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `The "version" command displays the client version, and the server's if reachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Client Version: %s\n", versioninfo.Version)

		cfg, err := config.Load()
		if err != nil {
			cmd.Println("Error loading config:", err)
			return
		}
		info, err := newClient(cfg).Version(cmd.Context())
		if err != nil {
			cmd.Println("Error fetching server version:", err)
			return
		}
		cmd.Printf("Server Version: %s\n", info.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
