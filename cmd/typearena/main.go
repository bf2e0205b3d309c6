// Package main provides the CLI entrypoint for typearena.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/config"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/generator"
	"github.com/verte-zerg/typearena/internal/logging"
	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/sim"
	"github.com/verte-zerg/typearena/internal/stats"
	"github.com/verte-zerg/typearena/internal/store"
	"github.com/verte-zerg/typearena/internal/tui"
)

const (
	defaultMode        = game.ModeSurvival
	defaultSimWPM      = 60.0
	defaultSimAccuracy = 0.95
	defaultSimRuns     = 5
	defaultSimSeed     = 1
	defaultWeakTop     = 8
	defaultTopRuns     = 10
	defaultTermWidth   = 80
)

var (
	configPath string
	logLevel   string
	logFile    string

	playMode string
	playSeed int64

	simMode        string
	simWPM         float64
	simAccuracy    float64
	simRuns        int
	simSeed        int64
	simMaxDuration time.Duration
	simWeakTop     int
)

func main() {
	// A missing .env is fine; it only supplies LOG_LEVEL and friends.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typearena",
		Short:         "Arcade typing game for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/typearena/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default: $LOG_LEVEL, then [log].level, then info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file used while the game owns the terminal")
	addPlayFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newBossesCmd())
	rootCmd.AddCommand(newSimCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playMode, "mode", "", "start this mode right away instead of showing the picker")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "word generator seed (0: random)")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Play.Mode)
	applyLogConfig(cmd, fileCfg)

	cfg := model.PlayConfig{
		Mode: strings.ToUpper(strings.TrimSpace(playMode)),
		Seed: playSeed,
	}
	if cfg.Mode != "" {
		if _, ok := game.LookupMode(cfg.Mode); !ok {
			return fmt.Errorf("unknown mode %q (run: typearena modes)", cfg.Mode)
		}
	}

	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log, err := logging.New(f, resolveLogLevel(logLevel, fileCfg.Log.Level))
	if err != nil {
		return err
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m, err := tui.NewModel(tui.Config{
		Mode:      cfg.Mode,
		Engine:    engineOptions(fileCfg.Engine),
		Seed:      cfg.Seed,
		Store:     st,
		Log:       log,
		Configure: engineConfigurer(fileCfg),
		TopRuns:   defaultTopRuns,
		WeakTop:   defaultWeakTop,
	})
	if err != nil {
		return fmt.Errorf("failed to set up game: %w", err)
	}
	log.Info().Str("mode", cfg.Mode).Msg("starting arena")
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List game modes",
		Args:  cobra.NoArgs,
		RunE:  runModesCmd,
	}
}

func runModesCmd(cmd *cobra.Command, _ []string) error {
	return writeModes(cmd.OutOrStdout())
}

func writeModes(w io.Writer) error {
	for _, mode := range game.Modes() {
		var traits []string
		if mode.HasTimer {
			traits = append(traits, fmt.Sprintf("%ds timer", int(mode.Duration.Seconds())))
		}
		if mode.HasLives {
			traits = append(traits, fmt.Sprintf("%d lives", mode.InitialLives))
		}
		if mode.IsBossBattle {
			traits = append(traits, "bosses")
		}
		if mode.DifficultyProgression {
			traits = append(traits, "ramping difficulty")
		}
		if _, err := fmt.Fprintf(w, "%-12s %s [%s]\n", mode.Name, mode.Description, strings.Join(traits, ", ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newBossesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bosses",
		Short: "List bosses, including ones from the config file",
		Args:  cobra.NoArgs,
		RunE:  runBossesCmd,
	}
}

func runBossesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	eng := game.NewEngine(engineOptions(fileCfg.Engine), clock.NewManual(time.Now()), generator.New(), zerolog.Nop())
	for _, b := range fileCfg.Bosses {
		if err := eng.AddCustomBoss(b.Level, bossFromConfig(b)); err != nil {
			return fmt.Errorf("failed to add boss %q: %w", b.Name, err)
		}
	}
	return writeBosses(cmd.OutOrStdout(), eng, bossLevels(fileCfg.Bosses), terminalWidth())
}

func bossLevels(custom []config.BossConfig) []int {
	seen := map[int]struct{}{}
	levels := make([]int, 0, game.MaxBossLevel+len(custom))
	add := func(level int) {
		if _, ok := seen[level]; ok {
			return
		}
		seen[level] = struct{}{}
		levels = append(levels, level)
	}
	for level := 1; level <= game.MaxBossLevel; level++ {
		add(level)
	}
	for _, b := range custom {
		add(b.Level)
	}
	sort.Ints(levels)
	return levels
}

func writeBosses(w io.Writer, eng *game.Engine, levels []int, width int) error {
	for _, level := range levels {
		b, ok := eng.Boss(level)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d. %s  hp %d  attacks every %s  %d phrases\n",
			level, b.Name, b.MaxHP, b.AttackInterval, len(b.Phrases)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if banner := strings.Trim(b.Banner, "\n"); banner != "" && bannerWidth(banner) <= width {
			if _, err := fmt.Fprintln(w, banner); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func bannerWidth(banner string) int {
	widest := 0
	for _, line := range strings.Split(banner, "\n") {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play headless bot games and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimCmd,
	}
	cmd.Flags().StringVar(&simMode, "mode", defaultMode, "game mode")
	cmd.Flags().Float64Var(&simWPM, "wpm", defaultSimWPM, "bot typing speed")
	cmd.Flags().Float64Var(&simAccuracy, "accuracy", defaultSimAccuracy, "probability of a correct keystroke (0-1)")
	cmd.Flags().IntVar(&simRuns, "runs", defaultSimRuns, "number of games")
	cmd.Flags().Int64Var(&simSeed, "seed", defaultSimSeed, "seed of the first game")
	cmd.Flags().DurationVar(&simMaxDuration, "max-duration", sim.DefaultMaxDuration, "game time after which a run is stopped")
	cmd.Flags().IntVar(&simWeakTop, "weak-top", defaultWeakTop, "number of weak characters to show")
	return cmd
}

func runSimCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyLogConfig(cmd, fileCfg)
	log, err := logging.New(os.Stderr, resolveLogLevel(logLevel, fileCfg.Log.Level))
	if err != nil {
		return err
	}

	cfg := model.SimConfig{
		Mode:        strings.ToUpper(strings.TrimSpace(simMode)),
		WPM:         simWPM,
		Accuracy:    simAccuracy,
		Runs:        simRuns,
		Seed:        simSeed,
		MaxDuration: simMaxDuration,
		WeakTop:     simWeakTop,
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	s, err := sim.New(cfg, engineOptions(fileCfg.Engine), st, log)
	if err != nil {
		return fmt.Errorf("invalid sim settings: %w", err)
	}
	s.Configure(engineConfigurer(fileCfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := s.Run(ctx); err != nil {
		return fmt.Errorf("failed to simulate: %w", err)
	}

	report, err := stats.BuildReport(ctx, st, model.RunFilter{Mode: cfg.Mode}, cfg.WeakTop)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadFileConfig() (config.FileConfig, error) {
	cfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func applyLogConfig(cmd *cobra.Command, cfg config.FileConfig) {
	applyStringConfig(cmd, "log-file", &logFile, cfg.Log.File)
}

// resolveLogLevel picks --log-level, then LOG_LEVEL, then [log].level.
func resolveLogLevel(flag string, fileLevel *string) string {
	if flag != "" {
		return flag
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		return v
	}
	if fileLevel != nil && *fileLevel != "" {
		return *fileLevel
	}
	return logging.DefaultLevel
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
