// Package tui provides the Bubble Tea arena interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/generator"
	"github.com/verte-zerg/typearena/internal/recorder"
	"github.com/verte-zerg/typearena/internal/statsui"
	"github.com/verte-zerg/typearena/internal/store"
)

type phase int

const (
	phasePicker phase = iota
	phasePlaying
	phaseOver
)

const (
	timerQueueSize = 64
	defaultTopRuns = 10
	defaultWeakTop = 8
	quitReason     = "quit"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	hudStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	feverStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020")).Bold(true)
	livesStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	bossStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#B37FEB"))
	alertStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#69C0FF"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

// Config configures the arena UI.
type Config struct {
	// Mode starts a game right away; empty shows the mode picker.
	Mode      string
	Engine    game.Options
	Seed      int64
	Store     *store.Store
	Log       zerolog.Logger
	Configure func(*game.Engine) error
	// Clock defaults to the wall clock, delivered through the program loop.
	Clock   clock.Clock
	TopRuns int
	WeakTop int
}

// timerMsg carries a fired engine timer into Update.
type timerMsg struct {
	fire func()
}

// Model implements the Bubble Tea arena UI. It hosts a single engine and
// runs every engine call and timer callback inside Update.
type Model struct {
	cfg    Config
	engine *game.Engine
	clock  clock.Clock
	store  *store.Store
	log    zerolog.Logger
	rec    *recorder.Recorder

	timers   chan func()
	done     chan struct{}
	quitOnce sync.Once

	phase  phase
	modes  []game.GameMode
	cursor int
	mode   game.GameMode
	missed bool
	reason string

	messages []message
	results  *statsui.Model

	width  int
	height int
}

// NewModel constructs the arena UI.
func NewModel(cfg Config) (*Model, error) {
	if cfg.TopRuns <= 0 {
		cfg.TopRuns = defaultTopRuns
	}
	if cfg.WeakTop <= 0 {
		cfg.WeakTop = defaultWeakTop
	}
	m := &Model{
		cfg:    cfg,
		store:  cfg.Store,
		log:    cfg.Log,
		timers: make(chan func(), timerQueueSize),
		done:   make(chan struct{}),
		modes:  game.Modes(),
	}
	m.clock = cfg.Clock
	if m.clock == nil {
		m.clock = clock.NewDispatch(m.dispatch)
	}

	gen := generator.NewSeeded(cfg.Seed)
	if cfg.Seed == 0 {
		gen = generator.New()
	}
	m.engine = game.NewEngine(cfg.Engine, m.clock, gen, cfg.Log)
	if cfg.Configure != nil {
		if err := cfg.Configure(m.engine); err != nil {
			return nil, err
		}
	}
	m.rec = recorder.Attach(m.engine, m.clock, m.handleFinished)
	m.engine.On(game.EventGameOver, m.handleGameOver)
	m.engine.On(game.EventCorrectKeystroke, func(any) { m.missed = false })
	m.engine.On(game.EventIncorrectKeystroke, func(any) { m.missed = true })
	m.engine.On(game.EventNewWord, func(any) { m.missed = false })
	m.subscribeMessages()

	if cfg.Mode != "" {
		if err := m.start(cfg.Mode); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Engine exposes the hosted engine.
func (m *Model) Engine() *game.Engine {
	return m.engine
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForTimer()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.results != nil {
			m.results.SetSize(m.width, m.resultsHeight())
		}
		return m, nil
	case timerMsg:
		msg.fire()
		return m, m.waitForTimer()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		switch m.phase {
		case phasePicker:
			return m.updatePicker(msg)
		case phasePlaying:
			return m.updatePlaying(msg)
		case phaseOver:
			return m.updateOver(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.phase {
	case phasePlaying:
		content = m.viewPlaying()
	case phaseOver:
		content = m.viewOver()
	default:
		content = m.viewPicker()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.modes)) % len(m.modes)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.modes)
	case "enter":
		if err := m.start(m.modes[m.cursor].Name); err != nil {
			m.log.Error().Err(err).Msg("failed to start game")
		}
	case "q", "esc":
		return m, m.quit()
	}
	return m, nil
}

func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.engine.State()
	if st.IsPaused {
		switch msg.String() {
		case "esc":
			m.engine.ResumeGame()
		case "q":
			m.engine.EndGame(quitReason)
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.engine.PauseGame()
	case tea.KeySpace:
		m.engine.ProcessKeystroke(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.engine.ProcessKeystroke(r)
		}
	}
	return m, nil
}

func (m *Model) updateOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.start(m.mode.Name); err != nil {
			m.log.Error().Err(err).Msg("failed to restart game")
		}
		return m, nil
	case "m":
		m.phase = phasePicker
		m.results = nil
		return m, nil
	case "q":
		return m, m.quit()
	}
	if m.results != nil {
		_, cmd := m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) start(mode string) error {
	cfg, ok := game.LookupMode(mode)
	if !ok {
		return fmt.Errorf("%w: %q", game.ErrUnknownMode, mode)
	}
	m.mode = cfg
	for i, candidate := range m.modes {
		if candidate.Name == mode {
			m.cursor = i
		}
	}
	m.messages = nil
	m.results = nil
	m.missed = false
	m.reason = ""
	m.phase = phasePlaying
	return m.engine.StartGame(mode)
}

func (m *Model) handleGameOver(payload any) {
	if ev, ok := payload.(game.GameOverEvent); ok {
		m.reason = ev.Reason
	}
	m.phase = phaseOver
}

func (m *Model) handleFinished(res recorder.Result) {
	ctx := context.Background()
	if m.store != nil {
		if err := m.store.InsertRun(ctx, res.Run, res.Chars); err != nil {
			m.log.Error().Err(err).Str("run", res.Run.ID).Msg("failed to save run")
		}
	}
	m.results = statsui.Load(ctx, m.store, res, m.cfg.TopRuns, m.cfg.WeakTop)
	if m.width > 0 {
		m.results.SetSize(m.width, m.resultsHeight())
	}
}

// dispatch runs on timer goroutines and hands fired callbacks to Update.
func (m *Model) dispatch(f func()) {
	select {
	case m.timers <- f:
	case <-m.done:
	}
}

func (m *Model) waitForTimer() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.timers:
			return timerMsg{fire: f}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) quit() tea.Cmd {
	if m.engine.State().IsRunning {
		m.engine.EndGame(quitReason)
	}
	m.quitOnce.Do(func() {
		m.rec.Detach()
		close(m.done)
	})
	return tea.Quit
}

func (m *Model) resultsHeight() int {
	return max(1, m.height-4)
}

func (m *Model) viewPicker() string {
	lines := []string{titleStyle.Render("TYPE ARENA"), ""}
	for i, mode := range m.modes {
		prefix := "  "
		label := pendingStyle.Render(mode.Label)
		if i == m.cursor {
			prefix = "> "
			label = selectedStyle.Render(mode.Label)
		}
		lines = append(lines, prefix+label, "    "+footerStyle.Render(mode.Description))
	}
	lines = append(lines, "", footerStyle.Render("up/down: choose  enter: play  q: quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlaying() string {
	st := m.engine.State()
	parts := []string{renderHUD(st, m.mode)}
	if trend := renderWPMTrend(m.rec.Samples()); trend != "" {
		parts = append(parts, trend)
	}
	if panel := renderBossPanel(st); panel != "" {
		parts = append(parts, "", panel)
	}

	parts = append(parts, "", m.renderWords(st))
	if msgs := m.activeMessages(); len(msgs) > 0 {
		rendered := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			rendered = append(rendered, msg.style.Render(msg.text))
		}
		parts = append(parts, "", strings.Join(rendered, "\n"))
	}
	parts = append(parts, "", footerStyle.Render("esc: pause  ctrl+c: quit"))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if st.IsPaused {
		overlay := modalStyle.Render(titleStyle.Render("PAUSED") + "\n\n" + footerStyle.Render("esc: resume  q: end run"))
		return lipgloss.JoinVertical(lipgloss.Center, content, "", overlay)
	}
	return content
}

func (m *Model) renderWords(st game.State) string {
	if st.CurrentWord == "" {
		if st.IsRunning && st.CurrentBoss == nil {
			return bossStyle.Render("the next boss approaches...")
		}
		return ""
	}
	queue := st.WordQueue
	runes := buildStyledRunes([]rune(st.CurrentWord), st.CurrentWordIndex, m.missed, queue)
	width := int(float64(m.width) * 0.70)
	if m.width == 0 {
		width = 0
	} else if width < 1 {
		width = 1
	}
	return wrapStyledRunes(runes, width)
}

func (m *Model) viewOver() string {
	header := titleStyle.Render("GAME OVER") + "  " + footerStyle.Render(m.reason)
	body := ""
	if m.results != nil {
		body = m.results.View()
	}
	help := footerStyle.Render("enter: play again  m: modes  left/right: tabs  q: quit")
	return strings.Join([]string{header, "", body, help}, "\n")
}
