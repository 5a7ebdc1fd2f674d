package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SSH     SSHConfig     `toml:"ssh"`
	Web     WebConfig     `toml:"web"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type SSHConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	HostKeyPath string `toml:"host_key_path"`
}

type WebConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type GameConfig struct {
	SpritesDir string `toml:"sprites_dir"` // optional PNG overrides for the built-in art
	ScoresPath string `toml:"scores_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SSH: SSHConfig{
			Enabled:     true,
			Addr:        ":2222",
			HostKeyPath: "invaders_host_key",
		},
		Web: WebConfig{
			Enabled: true,
			Addr:    ":8080",
		},
		Game: GameConfig{
			ScoresPath: "scores.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
