// Package config loads the engine's TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full engine configuration tree.
type Config struct {
	Game    GameConfig    `toml:"game"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
	Random  RandomConfig  `toml:"random"`
}

// GameConfig locates the content the engine runs.
type GameConfig struct {
	WorldFile   string `toml:"world_file"`
	SavesDir    string `toml:"saves_dir"`
	ScriptsDir  string `toml:"scripts_dir"`  // empty disables the Lua hooks
	DevCommands bool   `toml:"dev_commands"` // enables the dot-prefixed debug commands
}

// DisplayConfig shapes terminal output.
type DisplayConfig struct {
	Width int    `toml:"width"`
	Mode  string `toml:"mode"` // brief, verbose, clear-verbose
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
	File   string `toml:"file"`   // empty logs to stderr
}

// RandomConfig pins the world seed; zero seeds from the clock.
type RandomConfig struct {
	Seed int64 `toml:"seed"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Game: GameConfig{
			WorldFile: "world.yaml",
			SavesDir:  "saves",
		},
		Display: DisplayConfig{Width: 80, Mode: "brief"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the config file, applying defaults for anything unset. A
// missing file is not an error; the defaults run fine.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Display.Width <= 0 {
		cfg.Display.Width = 80
	}
	return cfg, nil
}
