package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/store"
)

func newTestModel(t *testing.T, mode string) (*Model, *clock.Manual, *store.Store) {
	t.Helper()
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	clk := clock.NewManual(time.Unix(0, 0).UTC())
	m, err := NewModel(Config{
		Mode:  mode,
		Seed:  5,
		Store: st,
		Log:   zerolog.Nop(),
		Clock: clk,
		Configure: func(e *game.Engine) error {
			return e.SetWordBank(game.TierEasy, []string{"go"})
		},
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, clk, st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTypesIntoEngine(t *testing.T) {
	m, _, _ := newTestModel(t, game.ModeTimeAttack)
	if m.phase != phasePlaying {
		t.Fatalf("expected to start playing")
	}
	m.Update(runes("go"))
	if got := m.engine.State().WordsCompleted; got != 1 {
		t.Fatalf("expected one word completed, got %d", got)
	}
	m.Update(runes("x"))
	if !m.missed {
		t.Fatalf("expected mistype to be flagged")
	}
	m.Update(runes("g"))
	if m.missed {
		t.Fatalf("expected flag cleared by a correct keystroke")
	}
	if out := m.View(); !strings.Contains(out, "Score") {
		t.Fatalf("expected hud in view")
	}
}

func TestModelPauseAndEnd(t *testing.T) {
	m, clk, st := newTestModel(t, game.ModeTimeAttack)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.engine.State().IsPaused {
		t.Fatalf("expected pause on esc")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Fatalf("expected pause overlay")
	}
	clk.Advance(10 * time.Second)
	if got := m.engine.State().TimeRemaining; got != 60*time.Second {
		t.Fatalf("timer moved while paused: %v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine.State().IsPaused {
		t.Fatalf("expected resume on second esc")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(runes("q"))

	if m.phase != phaseOver || m.reason != quitReason {
		t.Fatalf("expected game over after quitting the run, got phase %d reason %q", m.phase, m.reason)
	}
	if m.results == nil {
		t.Fatalf("expected results screen")
	}
	runs, err := st.ListRuns(context.Background(), model.RunFilter{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Reason != quitReason {
		t.Fatalf("expected the run stored, got %+v", runs)
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Fatalf("expected game over view")
	}
}

func TestModelTimeUpAndRestart(t *testing.T) {
	m, clk, _ := newTestModel(t, game.ModeTimeAttack)
	clk.Advance(60 * time.Second)
	if m.phase != phaseOver || m.reason != game.ReasonTimeUp {
		t.Fatalf("expected time_up, got %q", m.reason)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phasePlaying || !m.engine.State().IsRunning {
		t.Fatalf("expected enter to restart the mode")
	}
	if m.engine.Stats().TotalGames != 1 {
		t.Fatalf("expected stats kept across restarts")
	}
}

func TestModelPickerFlow(t *testing.T) {
	m, _, _ := newTestModel(t, "")
	if m.phase != phasePicker {
		t.Fatalf("expected picker without a preselected mode")
	}
	if !strings.Contains(m.View(), "BOSS BATTLE") {
		t.Fatalf("expected modes listed")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	st := m.engine.State()
	if st.GameMode != game.ModeBossBattle || st.CurrentBoss == nil {
		t.Fatalf("expected boss battle started, got %q", st.GameMode)
	}
	if !strings.Contains(m.View(), st.CurrentBoss.Name) {
		t.Fatalf("expected boss panel in view")
	}

	m.engine.EndGame("quit")
	m.Update(runes("m"))
	if m.phase != phasePicker {
		t.Fatalf("expected m to return to the picker")
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel(t, game.ModeSurvival)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.engine.State().IsRunning {
		t.Fatalf("expected the run ended on quit")
	}
	m.quit()
}

func TestModelRoutesDispatchedTimers(t *testing.T) {
	m, err := NewModel(Config{Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	cmd := m.Init()
	ran := false
	m.dispatch(func() { ran = true })
	msg := cmd()
	if _, ok := msg.(timerMsg); !ok {
		t.Fatalf("expected timerMsg, got %T", msg)
	}
	_, next := m.Update(msg)
	if !ran || next == nil {
		t.Fatalf("expected callback run and the next wait scheduled")
	}
	m.quit()
	if next() != nil {
		t.Fatalf("expected nil message after quit")
	}
}

func TestMessagesExpire(t *testing.T) {
	m, clk, _ := newTestModel(t, game.ModeSurvival)
	m.Update(runes("x"))
	if msgs := m.activeMessages(); len(msgs) != 1 || !strings.Contains(msgs[0].text, "2 left") {
		t.Fatalf("expected a life lost message, got %+v", msgs)
	}
	clk.Advance(messageTTL)
	if msgs := m.activeMessages(); len(msgs) != 0 {
		t.Fatalf("expected messages to expire, got %+v", msgs)
	}
}
