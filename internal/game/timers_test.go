package game

import (
	"testing"
	"time"
)

func TestPauseResumeRearmsTimers(t *testing.T) {
	cases := []struct {
		mode   string
		timers int
	}{
		{ModeSurvival, 2},   // wpm, difficulty
		{ModeTimeAttack, 2}, // countdown, wpm
		{ModePerfectRun, 2}, // wpm, difficulty
		{ModeBossBattle, 2}, // wpm, boss attack
	}
	for _, tc := range cases {
		e, clk := newTestEngine(t)
		pauses := countEvents(e, EventGamePause)
		resumes := countEvents(e, EventGameResume)
		mustStart(t, e, tc.mode)
		if e.activeTimers() != tc.timers || clk.Pending() != tc.timers {
			t.Fatalf("%s: expected %d timers after start, got %d/%d", tc.mode, tc.timers, e.activeTimers(), clk.Pending())
		}

		e.PauseGame()
		e.PauseGame()
		if e.activeTimers() != 0 || clk.Pending() != 0 {
			t.Fatalf("%s: expected no timers while paused, got %d/%d", tc.mode, e.activeTimers(), clk.Pending())
		}
		if res := e.ProcessKeystroke('a'); res.Accepted || res.Reason != ReasonGameNotActive {
			t.Fatalf("%s: expected keystroke rejected while paused, got %+v", tc.mode, res)
		}

		e.ResumeGame()
		e.ResumeGame()
		if e.activeTimers() != tc.timers || clk.Pending() != tc.timers {
			t.Fatalf("%s: expected %d timers after resume, got %d/%d", tc.mode, tc.timers, e.activeTimers(), clk.Pending())
		}
		if *pauses != 1 || *resumes != 1 {
			t.Fatalf("%s: expected one pause and one resume event, got %d/%d", tc.mode, *pauses, *resumes)
		}

		e.EndGame("quit")
		if e.activeTimers() != 0 || clk.Pending() != 0 {
			t.Fatalf("%s: expected timers cancelled at end, got %d/%d", tc.mode, e.activeTimers(), clk.Pending())
		}
	}
}

func TestPauseIgnoredWhenStopped(t *testing.T) {
	e, _ := newTestEngine(t)
	pauses := countEvents(e, EventGamePause)
	e.PauseGame()
	e.ResumeGame()
	if *pauses != 0 || e.State().IsPaused {
		t.Fatalf("pause must be ignored before start")
	}
}

func TestPausedCountdownDoesNotMove(t *testing.T) {
	e, clk := newTestEngine(t)
	mustStart(t, e, ModeTimeAttack)
	clk.Advance(time.Second)
	e.PauseGame()
	clk.Advance(10 * time.Second)
	if got := e.State().TimeRemaining; got != 59*time.Second {
		t.Fatalf("expected 59s remaining, got %v", got)
	}
}

func TestCountdownEndsWithTimeUp(t *testing.T) {
	e, clk := newTestEngine(t)
	var reason string
	e.On(EventGameOver, func(p any) { reason = p.(GameOverEvent).Reason })
	ticks := countEvents(e, EventTimerTick)
	mustStart(t, e, ModeTimeAttack)

	clk.Advance(59 * time.Second)
	if !e.State().IsRunning {
		t.Fatalf("game ended early")
	}
	clk.Advance(time.Second)
	st := e.State()
	if reason != ReasonTimeUp || st.IsRunning || st.TimeRemaining != 0 {
		t.Fatalf("expected time_up, got %q running=%v remaining=%v", reason, st.IsRunning, st.TimeRemaining)
	}
	if *ticks != 600 {
		t.Fatalf("expected 600 ticks, got %d", *ticks)
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", clk.Pending())
	}
}

func TestWPMSampler(t *testing.T) {
	e, clk := newTestEngine(t)
	if err := e.SetWordBank(TierEasy, []string{"abcdefghij"}); err != nil {
		t.Fatalf("set bank: %v", err)
	}
	var last WPMUpdateEvent
	e.On(EventWPMUpdate, func(p any) { last = p.(WPMUpdateEvent) })
	mustStart(t, e, ModeTimeAttack)

	typeCorrect(t, e, 10)
	clk.Advance(500 * time.Millisecond)
	// 10 chars in a 5s window: 10 / (5/60) / 5 = 24.
	if last.WPM != 24 || last.Peak != 24 {
		t.Fatalf("expected 24 wpm, got %+v", last)
	}
	clk.Advance(5 * time.Second)
	if last.WPM != 0 || last.Peak != 24 {
		t.Fatalf("expected window to drain while keeping peak, got %+v", last)
	}
}

func TestDifficultyRamp(t *testing.T) {
	e, clk := newTestEngine(t)
	var tiers []Tier
	e.On(EventDifficultyChange, func(p any) { tiers = append(tiers, p.(DifficultyChangeEvent).Difficulty) })
	mustStart(t, e, ModeSurvival)

	clk.Advance(150 * time.Second)
	st := e.State()
	if len(tiers) != 3 || st.CurrentDifficulty != TierInsane {
		t.Fatalf("expected escalation to insane, got %v", tiers)
	}
	if st.WordSpeed < 1.49 || st.WordSpeed > 1.51 {
		t.Fatalf("expected speed bumped on every ramp, got %v", st.WordSpeed)
	}

	e2, clk2 := newTestEngine(t)
	mustStart(t, e2, ModeTimeAttack)
	clk2.Advance(59 * time.Second)
	if e2.State().CurrentDifficulty != TierEasy {
		t.Fatalf("time attack must not ramp difficulty")
	}
}

func TestWordSpeedCapped(t *testing.T) {
	e, _ := newTestEngine(t)
	mustStart(t, e, ModeSurvival)
	for i := 0; i < 40; i++ {
		e.increaseDifficulty()
	}
	if st := e.State(); st.WordSpeed != maxWordSpeed || st.CurrentDifficulty != TierInsane {
		t.Fatalf("expected capped speed and saturated tier, got %v %s", st.WordSpeed, st.CurrentDifficulty)
	}
}

func TestWordPools(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SetWordBank(TierEasy, []string{"x"}); err != nil {
		t.Fatalf("set bank: %v", err)
	}
	if err := e.SetWordBank(TierProgramming, []string{"func"}); err != nil {
		t.Fatalf("set bank: %v", err)
	}
	mustStart(t, e, ModeTimeAttack)

	e.state.Level = 3
	if w := e.generateWord(); w != "func" {
		t.Fatalf("expected programming word at level 3, got %q", w)
	}
	e.state.Level = 4
	if w := e.generateWord(); w != "x" {
		t.Fatalf("expected easy word at level 4, got %q", w)
	}

	e.state.Level = 16
	gibberish := map[string]bool{}
	for i := 0; i < 100; i++ {
		w := e.generateWord()
		if w == "x" {
			continue
		}
		if n := len(w); n < 8 || n > 19 {
			t.Fatalf("unexpected gibberish %q", w)
		}
		gibberish[w] = true
	}
	if len(gibberish) < 10 {
		t.Fatalf("expected fresh gibberish on every call, got %d distinct words", len(gibberish))
	}
}

func TestLevelUpEveryTenWords(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SetWordBank(TierEasy, []string{"x"}); err != nil {
		t.Fatalf("set bank: %v", err)
	}
	if err := e.SetWordBank(TierProgramming, []string{"p"}); err != nil {
		t.Fatalf("set bank: %v", err)
	}
	var levels []int
	e.On(EventLevelUp, func(p any) { levels = append(levels, p.(LevelUpEvent).Level) })
	mustStart(t, e, ModeTimeAttack)

	typeCorrect(t, e, 20)
	if len(levels) != 2 || levels[1] != 3 {
		t.Fatalf("unexpected level ups %v", levels)
	}
	queue := e.State().WordQueue
	if queue[len(queue)-1] != "p" {
		t.Fatalf("expected queue refilled from the programming pool, got %v", queue)
	}
}
