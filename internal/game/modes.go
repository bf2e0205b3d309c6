package game

import "time"

// Game mode names accepted by StartGame.
const (
	ModeSurvival   = "SURVIVAL"
	ModeTimeAttack = "TIME_ATTACK"
	ModePerfectRun = "PERFECT_RUN"
	ModeBossBattle = "BOSS_BATTLE"
)

// GameMode describes the rules of a game mode.
type GameMode struct {
	Name                  string
	Label                 string
	Description           string
	HasTimer              bool
	Duration              time.Duration
	HasLives              bool
	InitialLives          int
	SpeedIncrease         bool
	DifficultyProgression bool
	IsBossBattle          bool
}

var modes = []GameMode{
	{
		Name:                  ModeSurvival,
		Label:                 "SURVIVAL",
		Description:           "Endless mode - words get harder, speed increases",
		HasLives:              true,
		InitialLives:          3,
		SpeedIncrease:         true,
		DifficultyProgression: true,
	},
	{
		Name:        ModeTimeAttack,
		Label:       "TIME ATTACK",
		Description: "60 seconds - maximize your score!",
		HasTimer:    true,
		Duration:    60 * time.Second,
	},
	{
		Name:                  ModePerfectRun,
		Label:                 "PERFECT RUN",
		Description:           "One mistake = Game Over. How far can you go?",
		HasLives:              true,
		InitialLives:          1,
		SpeedIncrease:         true,
		DifficultyProgression: true,
	},
	{
		Name:         ModeBossBattle,
		Label:        "BOSS BATTLE",
		Description:  "Defeat ASCII art bosses by typing their attacks!",
		HasLives:     true,
		InitialLives: 5,
		IsBossBattle: true,
	},
}

// Modes returns all game modes in display order.
func Modes() []GameMode {
	out := make([]GameMode, len(modes))
	copy(out, modes)
	return out
}

// LookupMode finds a mode by name.
func LookupMode(name string) (GameMode, bool) {
	for _, m := range modes {
		if m.Name == name {
			return m, true
		}
	}
	return GameMode{}, false
}
