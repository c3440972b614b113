package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type OIDC struct {
	IssuerURL    string   `yaml:"issuer_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DBPath      string `yaml:"db_path"`
	InMemory    bool   `yaml:"in_memory"`
	APIBaseURL  string `yaml:"api_base_url"`
	AuthEnabled bool   `yaml:"auth_enabled"`
	OIDC        OIDC   `yaml:"oidc"`
}

const defaultPath = "config.yaml"

func defaults() Config {
	return Config{
		ListenAddr: ":8080",
		DBPath:     "habitd.db",
		APIBaseURL: "http://localhost:8080",
	}
}

// Load reads the YAML config named by HABITD_CONFIG (default config.yaml).
// A missing default file just yields the built-in defaults; a missing
// explicitly-configured file is an error. Env vars override file values.
func Load() (*Config, error) {
	path := os.Getenv("HABITD_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			applyEnv(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.ListenAddr = getenv("HABITD_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DBPath = getenv("HABITD_DB_PATH", cfg.DBPath)
	cfg.APIBaseURL = getenv("HABITD_API_BASE", cfg.APIBaseURL)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
