package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/typearena/internal/config"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/logging"
	"github.com/verte-zerg/typearena/internal/wordlist"
)

// engineOptions maps the [engine] section; unset values keep engine defaults.
func engineOptions(cfg config.EngineConfig) game.Options {
	var opts game.Options
	if cfg.WordQueueSize != nil {
		opts.WordQueueSize = *cfg.WordQueueSize
	}
	if cfg.BasePoints != nil {
		opts.BasePointsPerChar = *cfg.BasePoints
	}
	if cfg.FeverThreshold != nil {
		opts.ComboFeverThreshold = *cfg.FeverThreshold
	}
	if cfg.FeverMultiplier != nil {
		opts.FeverMultiplier = *cfg.FeverMultiplier
	}
	if cfg.MaxMultiplier != nil {
		opts.MaxComboMultiplier = *cfg.MaxMultiplier
	}
	if cfg.WPMWindowMs != nil {
		opts.WPMWindow = time.Duration(*cfg.WPMWindowMs) * time.Millisecond
	}
	return opts
}

// engineConfigurer returns a hook that installs the word banks and bosses
// named in cfg into an engine.
func engineConfigurer(cfg config.FileConfig) func(*game.Engine) error {
	return func(e *game.Engine) error {
		if err := applyWordBanks(e, cfg.Words); err != nil {
			return err
		}
		for _, b := range cfg.Bosses {
			if err := e.AddCustomBoss(b.Level, bossFromConfig(b)); err != nil {
				return fmt.Errorf("failed to add boss %q: %w", b.Name, err)
			}
		}
		return nil
	}
}

func applyWordBanks(e *game.Engine, banks map[string]string) error {
	names := make([]string, 0, len(banks))
	for name := range banks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tier, ok := game.ParseTier(strings.ToLower(name))
		if !ok {
			return fmt.Errorf("unknown word tier %q", name)
		}
		path := resolveWordListPath(banks[name])
		words, err := wordlist.LoadWords(path)
		if err != nil {
			return fmt.Errorf("failed to load %s words: %w", tier, err)
		}
		if err := e.SetWordBank(tier, wordlist.Apply(words, wordlist.FilterForTier(string(tier)))); err != nil {
			return fmt.Errorf("failed to set %s words from %s: %w", tier, path, err)
		}
	}
	return nil
}

// resolveWordListPath reads bare file names from the word list directory.
func resolveWordListPath(path string) string {
	if path == "" || filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return filepath.Join(config.DefaultWordListDir(), path)
}

func bossFromConfig(b config.BossConfig) game.Boss {
	return game.Boss{
		Name:           b.Name,
		Banner:         b.Banner,
		MaxHP:          b.MaxHP,
		Phrases:        b.Phrases,
		AttackInterval: b.AttackInterval(),
	}
}

func defaultConfigTemplate() string {
	def := game.DefaultOptions()
	return fmt.Sprintf(`# typearena configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# mode = %q                # SURVIVAL, TIME_ATTACK, PERFECT_RUN or BOSS_BATTLE

[engine]
# word-queue-size = %d       # Words shown ahead of the current one
# base-points = %d          # Points per correct character before bonuses
# fever-threshold = %d      # Combo that starts fever mode
# fever-multiplier = %.1f   # Score factor while in fever mode
# max-multiplier = %d       # Cap of the combo multiplier
# wpm-window-ms = %d      # Window of the live WPM sample

[log]
# level = %q            # trace, debug, info, warn, error
# file = ""                # Defaults to $XDG_STATE_HOME/typearena/typearena.log

[words]
# Word list files, one word per line. Bare names are read from %s.
# easy = "easy.txt"
# programming = "/path/to/identifiers.txt"

# [[boss]]
# level = 6
# name = "MEMORY LEAK"
# banner = "(x_x)"
# max-hp = 500
# phrases = ["free what you malloc", "the heap keeps growing"]
# attack-interval-ms = 1500
`,
		defaultMode,
		def.WordQueueSize,
		def.BasePointsPerChar,
		def.ComboFeverThreshold,
		def.FeverMultiplier,
		def.MaxComboMultiplier,
		def.WPMWindow.Milliseconds(),
		logging.DefaultLevel,
		config.DefaultWordListDir(),
	)
}
