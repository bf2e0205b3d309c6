package game

import "time"

// Stats accumulates results across games. It survives Reset and StartGame.
type Stats struct {
	TotalGames     int
	TotalScore     int
	TotalWords     int
	TotalChars     int
	BestCombo      int
	BestWPM        int
	BossesDefeated int
}

// State is the complete engine state. Values returned by Engine.State are
// snapshots; mutating them has no effect on the engine.
type State struct {
	IsRunning bool
	IsPaused  bool
	GameMode  string

	Score       int
	Combo       int
	MaxCombo    int
	Multiplier  int
	IsFeverMode bool

	Level           int
	WordsCompleted  int
	TotalCharsTyped int
	CorrectChars    int
	IncorrectChars  int

	Lives    int
	MaxLives int

	TimeRemaining time.Duration
	StartTime     time.Time
	ElapsedTime   time.Duration

	// CurrentWord is empty when no word is active.
	CurrentWord      string
	CurrentWordIndex int
	WordQueue        []string

	// KeystrokeTimestamps holds correct keystrokes inside the WPM window.
	KeystrokeTimestamps []time.Time
	WPM                 int
	PeakWPM             int

	CurrentDifficulty Tier
	WordSpeed         float64

	// Boss fields are set only while an encounter is active.
	CurrentBoss *Boss
	BossHP      int
	BossMaxHP   int
	BossLevel   int

	// BossesDefeated counts defeats in the current run only.
	BossesDefeated int

	Stats Stats
}

// FinalStats summarizes a finished run.
type FinalStats struct {
	Score           int
	WordsCompleted  int
	MaxCombo        int
	Accuracy        float64
	PeakWPM         int
	AverageWPM      int
	TotalCharsTyped int
	CorrectChars    int
	IncorrectChars  int
	Level           int
	ElapsedTime     time.Duration
	BossesDefeated  int
}

// Progress describes how far the current word has been typed.
type Progress struct {
	Word       string
	TypedIndex int
	Typed      string
	Remaining  string
}

func newState(stats Stats) State {
	return State{
		Multiplier:        1,
		Level:             1,
		WordQueue:         []string{},
		CurrentDifficulty: TierEasy,
		WordSpeed:         1.0,
		Stats:             stats,
	}
}

func (s State) clone() State {
	out := s
	out.WordQueue = append([]string{}, s.WordQueue...)
	out.KeystrokeTimestamps = append([]time.Time(nil), s.KeystrokeTimestamps...)
	if s.CurrentBoss != nil {
		b := s.CurrentBoss.clone()
		out.CurrentBoss = &b
	}
	return out
}
