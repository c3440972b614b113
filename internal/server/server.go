package server

import (
	"encoding/json"
	"net/http"

	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/logger"
	"github.com/dpramesti/habitd/internal/stats"
	"github.com/dpramesti/habitd/internal/storage"
	"github.com/dpramesti/habitd/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	store   storage.Store
	cfg     *config.Config
	deriver *stats.Deriver
	auth    *authProvider // nil unless cfg.AuthEnabled
}

func New(store storage.Store, cfg *config.Config) (*Server, error) {
	s := &Server{
		store:   store,
		cfg:     cfg,
		deriver: stats.New(store),
	}
	if cfg.AuthEnabled {
		auth, err := configureOIDC(cfg)
		if err != nil {
			return nil, err
		}
		s.auth = auth
	}
	return s, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	if s.cfg.AuthEnabled {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", s.login)
			r.Get("/callback", s.callback)
			r.Post("/logout", s.logout)
		})
	}

	r.Route("/api", func(r chi.Router) {
		if s.cfg.AuthEnabled {
			r.Use(s.authMiddleware)
		}

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.listHabits)
			r.Post("/", s.createHabit)
			r.Get("/{id}", s.getHabit)
			r.Patch("/{id}", s.updateHabit)
			r.Delete("/{id}", s.deleteHabit)
			r.Get("/{id}/logs", s.listHabitLogs)
			r.Post("/{id}/track", s.trackHabit)
			r.Get("/{id}/stats", s.getHabitStats)
		})

		r.Get("/stats", s.getStats)
		r.Get("/history/{date}", s.getHistory)

		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.putSettings)

		r.Get("/export", s.exportBundle)
		r.Post("/import", s.importBundle)

		r.Route("/keys", func(r chi.Router) {
			r.Get("/", s.listAPIKeys)
			r.Post("/", s.createAPIKey)
			r.Delete("/{hash}", s.deleteAPIKey)
		})
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	writeJSON(w, http.StatusOK, info)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to serialize response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
