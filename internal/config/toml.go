// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play   PlayConfig        `toml:"play"`
	Engine EngineConfig      `toml:"engine"`
	Words  map[string]string `toml:"words"`
	Bosses []BossConfig      `toml:"boss"`
	Log    LogConfig         `toml:"log"`
}

// PlayConfig maps interactive play settings.
type PlayConfig struct {
	Mode *string `toml:"mode"`
}

// EngineConfig maps scoring and pacing settings.
type EngineConfig struct {
	WordQueueSize   *int     `toml:"word-queue-size"`
	BasePoints      *int     `toml:"base-points"`
	FeverThreshold  *int     `toml:"fever-threshold"`
	FeverMultiplier *float64 `toml:"fever-multiplier"`
	MaxMultiplier   *int     `toml:"max-multiplier"`
	WPMWindowMs     *int     `toml:"wpm-window-ms"`
}

// BossConfig maps one [[boss]] entry.
type BossConfig struct {
	Level            int      `toml:"level"`
	Name             string   `toml:"name"`
	Banner           string   `toml:"banner"`
	MaxHP            int      `toml:"max-hp"`
	Phrases          []string `toml:"phrases"`
	AttackIntervalMs int      `toml:"attack-interval-ms"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// AttackInterval returns the attack cadence as a duration.
func (b BossConfig) AttackInterval() time.Duration {
	return time.Duration(b.AttackIntervalMs) * time.Millisecond
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
