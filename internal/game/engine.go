// Package game implements the typing arena engine: modes, scoring, word
// progression and boss encounters. Rendering is left to event subscribers.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/event"
	"github.com/verte-zerg/typearena/internal/generator"
	"github.com/verte-zerg/typearena/internal/stats"
)

var (
	// ErrUnknownMode is returned by StartGame for an unrecognized mode name.
	ErrUnknownMode = errors.New("unknown game mode")
	// ErrEmptyWordBank is returned by SetWordBank when no usable word is given.
	ErrEmptyWordBank = errors.New("word bank has no words")
	// ErrInvalidBoss is returned by AddCustomBoss for an unusable boss.
	ErrInvalidBoss = errors.New("invalid boss")
)

type timerName int

const (
	timerCountdown timerName = iota
	timerWPM
	timerDifficulty
	timerBossAttack
	timerBossTransition
)

// Engine owns the game state. It is not safe for concurrent use: public
// methods and clock callbacks must run on a single goroutine.
type Engine struct {
	*event.Emitter

	opts   Options
	clock  clock.Clock
	gen    *generator.Generator
	log    zerolog.Logger
	banks  map[Tier][]string
	bosses map[int]Boss

	state  State
	mode   GameMode
	timers map[timerName]clock.Timer

	// pendingBossLevel is the next tier waiting on the boss transition timer.
	pendingBossLevel int
}

// NewEngine builds an engine with the default word banks and bosses.
func NewEngine(opts Options, c clock.Clock, gen *generator.Generator, log zerolog.Logger) *Engine {
	e := &Engine{
		Emitter: event.NewEmitter(log),
		opts:    opts.withDefaults(),
		clock:   c,
		gen:     gen,
		log:     log,
		banks:   cloneBanks(DefaultWordBanks()),
		bosses:  cloneBosses(DefaultBosses()),
		timers:  map[timerName]clock.Timer{},
	}
	e.state = newState(Stats{})
	return e
}

// Options returns the effective tuning.
func (e *Engine) Options() Options {
	return e.opts
}

// Reset stops all timers and discards the current run, keeping Stats.
func (e *Engine) Reset() {
	e.stopAllTimers()
	e.state = newState(e.state.Stats)
	e.mode = GameMode{}
	e.pendingBossLevel = 0
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	return e.state.clone()
}

// StartGame begins a new run in the named mode.
func (e *Engine) StartGame(mode string) error {
	cfg, ok := LookupMode(mode)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	e.Reset()
	e.mode = cfg
	s := &e.state
	s.GameMode = mode
	s.IsRunning = true
	s.StartTime = e.clock.Now()

	if cfg.HasLives {
		s.Lives = cfg.InitialLives
		s.MaxLives = cfg.InitialLives
	}
	if cfg.HasTimer {
		s.TimeRemaining = cfg.Duration
	}
	e.armModeTimers()

	if cfg.IsBossBattle {
		e.initBossBattle(1)
	} else {
		e.fillWordQueue()
		e.nextWord()
	}

	e.log.Debug().Str("mode", mode).Msg("game started")
	e.Emit(EventGameStart, GameStartEvent{Mode: mode, Config: cfg})
	e.emitState()
	return nil
}

// PauseGame freezes a running game and all of its timers.
func (e *Engine) PauseGame() {
	s := &e.state
	if !s.IsRunning || s.IsPaused {
		return
	}
	s.IsPaused = true
	e.stopAllTimers()

	e.log.Debug().Msg("game paused")
	e.Emit(EventGamePause, nil)
	e.emitState()
}

// ResumeGame restarts the timers a paused game needs.
func (e *Engine) ResumeGame() {
	s := &e.state
	if !s.IsRunning || !s.IsPaused {
		return
	}
	s.IsPaused = false

	e.armModeTimers()
	if s.CurrentBoss != nil {
		e.startBossAttackTimer()
	}
	if e.pendingBossLevel > 0 {
		e.scheduleBossTransition()
	}

	e.log.Debug().Msg("game resumed")
	e.Emit(EventGameResume, nil)
	e.emitState()
}

// EndGame finishes the run with reason and folds it into Stats.
func (e *Engine) EndGame(reason string) {
	s := &e.state
	if !s.IsRunning {
		return
	}
	s.IsRunning = false
	s.IsPaused = false
	s.ElapsedTime = e.clock.Now().Sub(s.StartTime)

	e.stopAllTimers()
	e.pendingBossLevel = 0

	final := e.finalStats()

	s.Stats.TotalGames++
	s.Stats.TotalScore += s.Score
	s.Stats.TotalWords += s.WordsCompleted
	s.Stats.TotalChars += s.TotalCharsTyped
	s.Stats.BestCombo = max(s.Stats.BestCombo, s.MaxCombo)
	s.Stats.BestWPM = max(s.Stats.BestWPM, s.PeakWPM)

	e.log.Debug().Str("reason", reason).Int("score", s.Score).Msg("game over")
	e.Emit(EventGameOver, GameOverEvent{Reason: reason, Stats: final})
	e.emitState()
}

// CurrentWord returns the active word, or "" when none is active.
func (e *Engine) CurrentWord() string {
	return e.state.CurrentWord
}

// CurrentProgress splits the active word at the cursor.
func (e *Engine) CurrentProgress() Progress {
	runes := []rune(e.state.CurrentWord)
	idx := min(e.state.CurrentWordIndex, len(runes))
	return Progress{
		Word:       e.state.CurrentWord,
		TypedIndex: e.state.CurrentWordIndex,
		Typed:      string(runes[:idx]),
		Remaining:  string(runes[idx:]),
	}
}

// Accuracy returns the percentage of correct keystrokes rounded to one
// decimal, or 100 before anything was typed.
func (e *Engine) Accuracy() float64 {
	if e.state.TotalCharsTyped == 0 {
		return 100
	}
	return stats.AccuracyPct(e.state.CorrectChars, e.state.TotalCharsTyped)
}

// Stats returns the cross-game statistics.
func (e *Engine) Stats() Stats {
	return e.state.Stats
}

// SetWordBank replaces the words of tier. Empty strings are dropped.
func (e *Engine) SetWordBank(tier Tier, words []string) error {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyWordBank, tier)
	}
	e.banks[tier] = kept
	return nil
}

// AddCustomBoss installs or replaces the boss for level.
func (e *Engine) AddCustomBoss(level int, b Boss) error {
	switch {
	case level <= 0:
		return fmt.Errorf("%w: level must be > 0", ErrInvalidBoss)
	case b.MaxHP <= 0:
		return fmt.Errorf("%w: max HP must be > 0", ErrInvalidBoss)
	case b.AttackInterval <= 0:
		return fmt.Errorf("%w: attack interval must be > 0", ErrInvalidBoss)
	}
	phrases := make([]string, 0, len(b.Phrases))
	for _, p := range b.Phrases {
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	if len(phrases) == 0 {
		return fmt.Errorf("%w: no attack phrases", ErrInvalidBoss)
	}
	b.Phrases = phrases
	e.bosses[level] = b
	return nil
}

// Boss returns the boss configured for level.
func (e *Engine) Boss(level int) (Boss, bool) {
	b, ok := e.bosses[level]
	if !ok {
		return Boss{}, false
	}
	return b.clone(), true
}

func (e *Engine) emitState() {
	e.Emit(EventStateChange, e.State())
}

func (e *Engine) finalStats() FinalStats {
	s := &e.state
	accuracy := 0.0
	if s.TotalCharsTyped > 0 {
		accuracy = stats.AccuracyPct(s.CorrectChars, s.TotalCharsTyped)
	}
	return FinalStats{
		Score:           s.Score,
		WordsCompleted:  s.WordsCompleted,
		MaxCombo:        s.MaxCombo,
		Accuracy:        accuracy,
		PeakWPM:         s.PeakWPM,
		AverageWPM:      stats.AverageWPM(s.CorrectChars, s.ElapsedTime),
		TotalCharsTyped: s.TotalCharsTyped,
		CorrectChars:    s.CorrectChars,
		IncorrectChars:  s.IncorrectChars,
		Level:           s.Level,
		ElapsedTime:     s.ElapsedTime,
		BossesDefeated:  s.BossesDefeated,
	}
}

// --- timers ---

func (e *Engine) armModeTimers() {
	if e.mode.HasTimer {
		e.startTimer(timerCountdown, clock.Every(e.clock, countdownTick, e.tickCountdown))
	}
	e.startTimer(timerWPM, clock.Every(e.clock, wpmSampleInterval, e.updateWPM))
	if e.mode.DifficultyProgression {
		e.startTimer(timerDifficulty, clock.Every(e.clock, difficultyInterval, e.rampDifficulty))
	}
}

func (e *Engine) startTimer(name timerName, t clock.Timer) {
	e.stopTimer(name)
	e.timers[name] = t
}

func (e *Engine) stopTimer(name timerName) {
	if t, ok := e.timers[name]; ok {
		t.Stop()
		delete(e.timers, name)
	}
}

func (e *Engine) stopAllTimers() {
	for name, t := range e.timers {
		t.Stop()
		delete(e.timers, name)
	}
}

func (e *Engine) activeTimers() int {
	return len(e.timers)
}

func (e *Engine) tickCountdown() {
	s := &e.state
	if !s.IsRunning || s.TimeRemaining <= 0 {
		return
	}
	s.TimeRemaining = max(s.TimeRemaining-countdownTick, 0)
	e.Emit(EventTimerTick, TimerTickEvent{Remaining: s.TimeRemaining})
	if s.TimeRemaining <= 0 {
		e.EndGame(ReasonTimeUp)
	}
}

func (e *Engine) rampDifficulty() {
	if !e.state.IsRunning || e.state.IsPaused {
		return
	}
	e.increaseDifficulty()
}
