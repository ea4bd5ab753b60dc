// Package config loads the rolodex configuration file and the token
// secret from the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "rolodex.toml"

// SecretEnv names the environment variable holding the token signing
// secret. The secret never lives in the config file.
const SecretEnv = "ROLODEX_SECRET"

// ErrNoSecret is returned when token signing is needed but no secret is
// configured in the environment.
var ErrNoSecret = errors.New("no token secret configured (set " + SecretEnv + ")")

// Config holds the rolodex configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig defines settings for the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig defines settings for persistence and contact cards.
type StoreConfig struct {
	Database string `toml:"database"`
	CardsDir string `toml:"cards_dir,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8642"},
		Store:  StoreConfig{Database: "rolodex.db"},
	}
}

// Load reads configuration from the given directory. Returns the default
// config if the file doesn't exist.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8642"
	}
	if cfg.Store.Database == "" {
		cfg.Store.Database = "rolodex.db"
	}

	return &cfg, nil
}

// Save writes the configuration to the given directory.
func (c *Config) Save(dir string) error {
	path := filepath.Join(dir, ConfigFile)

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Secret returns the token signing secret from the environment.
func Secret() (string, error) {
	s := os.Getenv(SecretEnv)
	if s == "" {
		return "", ErrNoSecret
	}
	return s, nil
}
