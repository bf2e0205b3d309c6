package game

import (
	"math"
	"unicode"
)

// ReasonGameNotActive is reported for keystrokes outside an active word.
const ReasonGameNotActive = "game_not_active"

// KeystrokeResult reports how a keystroke was handled.
type KeystrokeResult struct {
	Accepted bool
	Reason   string
	Correct  bool

	// Set for correct keystrokes.
	Points        int
	WordCompleted bool
	Combo         int

	// Set for incorrect keystrokes.
	Expected      rune
	GameOver      bool
	PreviousCombo int
}

// ProcessKeystroke feeds one typed character into the game.
func (e *Engine) ProcessKeystroke(ch rune) KeystrokeResult {
	s := &e.state
	if !s.IsRunning || s.IsPaused || s.CurrentWord == "" {
		return KeystrokeResult{Reason: ReasonGameNotActive}
	}
	word := []rune(s.CurrentWord)
	if s.CurrentWordIndex >= len(word) {
		return KeystrokeResult{Reason: ReasonGameNotActive}
	}
	expected := word[s.CurrentWordIndex]

	s.TotalCharsTyped++
	if ch == expected {
		s.KeystrokeTimestamps = append(s.KeystrokeTimestamps, e.clock.Now())
		return e.handleCorrectKeystroke(ch, len(word))
	}
	return e.handleIncorrectKeystroke(ch, expected)
}

func (e *Engine) handleCorrectKeystroke(ch rune, wordLen int) KeystrokeResult {
	s := &e.state
	s.CorrectChars++
	s.CurrentWordIndex++

	s.Combo++
	s.MaxCombo = max(s.MaxCombo, s.Combo)
	e.updateMultiplier()

	wasFever := s.IsFeverMode
	s.IsFeverMode = s.Combo >= e.opts.ComboFeverThreshold
	if s.IsFeverMode && !wasFever {
		e.Emit(EventFeverModeStart, FeverModeStartEvent{Combo: s.Combo})
	}

	points := e.calculatePoints(ch)
	s.Score += points

	position := s.CurrentWordIndex - 1
	wordCompleted := s.CurrentWordIndex >= wordLen
	if wordCompleted {
		e.handleWordComplete()
	}

	e.Emit(EventCorrectKeystroke, CorrectKeystrokeEvent{
		Char:          ch,
		Combo:         s.Combo,
		Points:        points,
		WordCompleted: wordCompleted,
		Position:      position,
	})
	e.Emit(EventScoreChange, ScoreChangeEvent{Score: s.Score, Points: points})
	e.Emit(EventComboChange, ComboChangeEvent{Combo: s.Combo, Multiplier: s.Multiplier})
	e.emitState()

	return KeystrokeResult{
		Accepted:      true,
		Correct:       true,
		Points:        points,
		WordCompleted: wordCompleted,
		Combo:         s.Combo,
	}
}

func (e *Engine) handleIncorrectKeystroke(ch, expected rune) KeystrokeResult {
	s := &e.state
	s.IncorrectChars++

	previousCombo := s.Combo
	s.Combo = 0
	s.Multiplier = 1

	if s.IsFeverMode {
		s.IsFeverMode = false
		e.Emit(EventFeverModeEnd, FeverModeEndEvent{PreviousCombo: previousCombo})
	}

	gameOver := false
	if e.mode.HasLives {
		s.Lives--
		e.Emit(EventLifeLost, LifeLostEvent{LivesRemaining: s.Lives})
		if s.Lives <= 0 {
			gameOver = true
			e.EndGame(ReasonNoLives)
		}
	}

	e.Emit(EventIncorrectKeystroke, IncorrectKeystrokeEvent{
		Char:           ch,
		Expected:       expected,
		PreviousCombo:  previousCombo,
		LivesRemaining: s.Lives,
	})
	e.Emit(EventComboChange, ComboChangeEvent{Combo: 0, Multiplier: 1, Broken: true})
	e.emitState()

	return KeystrokeResult{
		Accepted:      true,
		Correct:       false,
		Expected:      expected,
		GameOver:      gameOver,
		PreviousCombo: previousCombo,
	}
}

// calculatePoints applies, in order: combo multiplier, fever, WPM speed
// bonus, special character bonus and uppercase bonus, then floors.
func (e *Engine) calculatePoints(ch rune) int {
	s := &e.state
	points := float64(e.opts.BasePointsPerChar) * float64(s.Multiplier)
	if s.IsFeverMode {
		points *= e.opts.FeverMultiplier
	}
	if s.WPM > speedBonusWPM {
		points *= 1 + float64(s.WPM-speedBonusWPM)/100
	}
	if isSpecialChar(ch) {
		points *= specialCharBonus
	}
	if ch >= 'A' && ch <= 'Z' {
		points *= uppercaseBonus
	}
	return int(math.Floor(points))
}

func isSpecialChar(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return false
	case unicode.IsSpace(ch):
		return false
	}
	return true
}

func (e *Engine) updateMultiplier() {
	s := &e.state
	next := min(1+s.Combo/comboPerMultiplier, e.opts.MaxComboMultiplier)
	if next != s.Multiplier {
		s.Multiplier = next
		e.Emit(EventMultiplierChange, MultiplierChangeEvent{Multiplier: next})
	}
}

func (e *Engine) updateWPM() {
	s := &e.state
	windowStart := e.clock.Now().Add(-e.opts.WPMWindow)
	recent := s.KeystrokeTimestamps[:0]
	for _, ts := range s.KeystrokeTimestamps {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}
	s.KeystrokeTimestamps = recent

	windowMinutes := e.opts.WPMWindow.Minutes()
	s.WPM = int(math.Floor(float64(len(recent)) / windowMinutes / charsPerWord))
	s.PeakWPM = max(s.PeakWPM, s.WPM)

	e.Emit(EventWPMUpdate, WPMUpdateEvent{WPM: s.WPM, Peak: s.PeakWPM})
}
