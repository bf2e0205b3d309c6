package game

import "time"

// Event names emitted by the Engine.
const (
	EventGameStart          = "gameStart"
	EventGamePause          = "gamePause"
	EventGameResume         = "gameResume"
	EventGameOver           = "gameOver"
	EventNewWord            = "newWord"
	EventWordComplete       = "wordComplete"
	EventCorrectKeystroke   = "correctKeystroke"
	EventIncorrectKeystroke = "incorrectKeystroke"
	EventScoreChange        = "scoreChange"
	EventComboChange        = "comboChange"
	EventFeverModeStart     = "feverModeStart"
	EventFeverModeEnd       = "feverModeEnd"
	EventMultiplierChange   = "multiplierChange"
	EventLevelUp            = "levelUp"
	EventLifeLost           = "lifeLost"
	EventDifficultyChange   = "difficultyChange"
	EventSpeedChange        = "speedChange"
	EventWPMUpdate          = "wpmUpdate"
	EventTimerTick          = "timerTick"
	EventBossAppear         = "bossAppear"
	EventBossAttack         = "bossAttack"
	EventBossDamage         = "bossDamage"
	EventBossDefeated       = "bossDefeated"
	EventStateChange        = "stateChange"
)

// Reasons passed to EndGame by the engine itself. Callers may use any string.
const (
	ReasonNoLives         = "no_lives"
	ReasonTimeUp          = "time_up"
	ReasonBossDefeatedYou = "boss_defeated_you"
	ReasonVictory         = "victory"
)

// Payloads. EventGamePause and EventGameResume carry nil and EventStateChange
// carries a State snapshot.

type GameStartEvent struct {
	Mode   string
	Config GameMode
}

type GameOverEvent struct {
	Reason string
	Stats  FinalStats
}

type NewWordEvent struct {
	Word         string
	Queue        []string
	IsBossAttack bool
}

type WordCompleteEvent struct {
	Word           string
	Bonus          int
	WordsCompleted int
}

type CorrectKeystrokeEvent struct {
	Char          rune
	Combo         int
	Points        int
	WordCompleted bool
	Position      int
}

type IncorrectKeystrokeEvent struct {
	Char           rune
	Expected       rune
	PreviousCombo  int
	LivesRemaining int
}

type ScoreChangeEvent struct {
	Score  int
	Points int
}

type ComboChangeEvent struct {
	Combo      int
	Multiplier int
	Broken     bool
}

type FeverModeStartEvent struct {
	Combo int
}

type FeverModeEndEvent struct {
	PreviousCombo int
}

type MultiplierChangeEvent struct {
	Multiplier int
}

type LevelUpEvent struct {
	Level int
}

type LifeLostEvent struct {
	LivesRemaining int
}

type DifficultyChangeEvent struct {
	Difficulty Tier
}

type SpeedChangeEvent struct {
	Speed float64
}

type WPMUpdateEvent struct {
	WPM  int
	Peak int
}

type TimerTickEvent struct {
	Remaining time.Duration
}

// BossInfo is the public view of a boss in EventBossAppear.
type BossInfo struct {
	Name   string
	Banner string
	HP     int
	Level  int
}

type BossAppearEvent struct {
	Boss BossInfo
}

type BossAttackEvent struct {
	Damage         int
	LivesRemaining int
	BossName       string
}

type BossDamageEvent struct {
	Damage      int
	RemainingHP int
	MaxHP       int
}

type BossDefeatedEvent struct {
	Boss  string
	Bonus int
	Level int
}
