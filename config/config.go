// Package config loads the service settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig selects the session store. An empty Addr means in-memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL         time.Duration `yaml:"ttl"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type GameConfig struct {
	DefaultDifficulty string `yaml:"default_difficulty"`
	CatalogPath       string `yaml:"catalog_path"` // empty uses the embedded catalog
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8000"},
		Session: SessionConfig{
			TTL:         24 * time.Hour,
			LockTimeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			Secret:   "sortgame-secret",
			TokenTTL: 24 * time.Hour,
		},
		Log:  LogConfig{Level: "info"},
		Game: GameConfig{DefaultDifficulty: "NORMAL"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("SORTGAME_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SORTGAME_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("SORTGAME_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
