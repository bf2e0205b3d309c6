package game

import "time"

const (
	countdownTick       = 100 * time.Millisecond
	wpmSampleInterval   = 500 * time.Millisecond
	difficultyInterval  = 30 * time.Second
	bossTransitionDelay = 2 * time.Second

	maxWordSpeed        = 3.0
	difficultySpeedStep = 0.1
	levelSpeedStep      = 0.05

	wordsPerLevel       = 10
	levelsPerDifficulty = 5
	programmingLevelGap = 3
	gibberishLevel      = 15
	gibberishPerPool    = 3
	comboPerMultiplier  = 5
	wordBonusPerChar    = 5
	bossDamagePerChar   = 2
	bossBonusFactor     = 10
	speedBonusWPM       = 60
	specialCharBonus    = 1.5
	uppercaseBonus      = 1.2
	charsPerWord        = 5
)

// Options tunes scoring and pacing. Zero fields take the defaults.
type Options struct {
	WordQueueSize       int
	BasePointsPerChar   int
	ComboFeverThreshold int
	FeverMultiplier     float64
	MaxComboMultiplier  int
	WPMWindow           time.Duration
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		WordQueueSize:       5,
		BasePointsPerChar:   10,
		ComboFeverThreshold: 50,
		FeverMultiplier:     2,
		MaxComboMultiplier:  10,
		WPMWindow:           5 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.WordQueueSize <= 0 {
		o.WordQueueSize = def.WordQueueSize
	}
	if o.BasePointsPerChar <= 0 {
		o.BasePointsPerChar = def.BasePointsPerChar
	}
	if o.ComboFeverThreshold <= 0 {
		o.ComboFeverThreshold = def.ComboFeverThreshold
	}
	if o.FeverMultiplier <= 0 {
		o.FeverMultiplier = def.FeverMultiplier
	}
	if o.MaxComboMultiplier <= 0 {
		o.MaxComboMultiplier = def.MaxComboMultiplier
	}
	if o.WPMWindow <= 0 {
		o.WPMWindow = def.WPMWindow
	}
	return o
}
