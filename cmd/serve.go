package cmd

import (
	"fmt"
	"net/http"

	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/internal/server"
	"github.com/dpramesti/habitd/internal/storage"
	boltstore "github.com/dpramesti/habitd/internal/storage/bolt"
	"github.com/dpramesti/habitd/internal/storage/mem"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the habitd HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	var store storage.Store
	if cfg.InMemory {
		logger.Warn("Using in-memory store, data will not survive a restart")
		store = mem.New()
	} else {
		boltStore, err := boltstore.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open db %s: %w", cfg.DBPath, err)
		}
		store = boltStore
	}
	defer store.Close()

	srv, err := server.New(store, cfg)
	if err != nil {
		return fmt.Errorf("configure server: %w", err)
	}

	logger.Info("Starting server", "addr", cfg.ListenAddr, "auth_enabled", cfg.AuthEnabled)
	return http.ListenAndServe(cfg.ListenAddr, srv.Router())
}
