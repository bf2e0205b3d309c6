// Package statsui provides the Bubble Tea results screen shown after a run.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/recorder"
	"github.com/verte-zerg/typearena/internal/stats"
	"github.com/verte-zerg/typearena/internal/store"
)

const (
	tabRun = iota
	tabScoreboard
	tabWeakKeys
)

const sparkWindow = 3

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	sparkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the results screen for one finished run.
type Model struct {
	result recorder.Result
	top    []model.RunRecord
	weak   []model.CharAggregate
	errMsg string

	tabs       []string
	activeTab  int
	runView    viewport.Model
	scoreTable table.Model
	weakTable  table.Model

	width  int
	height int
}

// Load builds a results screen for res, reading the scoreboard and weak keys
// for its mode from st. Store failures are shown on screen.
func Load(ctx context.Context, st *store.Store, res recorder.Result, topN, weakTop int) *Model {
	var top []model.RunRecord
	var weak []model.CharAggregate
	var errMsg string
	if st != nil {
		var err error
		top, err = st.TopRuns(ctx, res.Run.Mode, topN)
		if err != nil {
			errMsg = fmt.Sprintf("failed to load scoreboard: %v", err)
		}
		aggs, err := st.GetWeakChars(ctx, topN, res.Run.Mode)
		if err != nil {
			errMsg = fmt.Sprintf("failed to load weak keys: %v", err)
		}
		weak = stats.WeakestChars(aggs, weakTop)
	}
	m := New(res, top, weak)
	m.errMsg = errMsg
	return m
}

// New builds a results screen from already loaded data.
func New(res recorder.Result, top []model.RunRecord, weak []model.CharAggregate) *Model {
	m := &Model{
		result:  res,
		top:     top,
		weak:    weak,
		tabs:    []string{"This Run", "Scoreboard", "Weak Keys"},
		runView: viewport.New(0, 0),
	}
	m.scoreTable = newTable(buildScoreTableData(top, res.Run.ID))
	m.weakTable = newTable(buildWeakTableData(weak))
	for i, r := range top {
		if r.ID == res.Run.ID {
			m.scoreTable.SetCursor(i)
		}
	}
	m.renderRun()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Quitting is left to the parent model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case tabScoreboard:
			m.scoreTable, cmd = m.scoreTable.Update(msg)
		case tabWeakKeys:
			m.weakTable, cmd = m.weakTable.Update(msg)
		default:
			m.runView, cmd = m.runView.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	tabs := m.renderTabs()
	bodyHeight := m.height - lipgloss.Height(tabs) - 1
	if m.errMsg != "" {
		bodyHeight--
	}
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	parts := []string{padLines(tabs, m.width), body}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(truncateLine(m.errMsg, m.width)))
	}
	return strings.Join(parts, "\n")
}

// SetSize lays the screen out for a width x height area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	bodyHeight := maxInt(1, height-lipgloss.Height(m.renderTabs())-1)
	m.runView.Width = width
	m.runView.Height = bodyHeight
	m.scoreTable.SetWidth(width)
	m.scoreTable.SetHeight(maxInt(1, bodyHeight-1))
	m.weakTable.SetWidth(width)
	m.weakTable.SetHeight(maxInt(1, bodyHeight-1))
	m.renderRun()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.scoreTable.Blur()
	m.weakTable.Blur()
	switch m.activeTab {
	case tabScoreboard:
		m.scoreTable.Focus()
	case tabWeakKeys:
		m.weakTable.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabScoreboard:
		if len(m.top) == 0 {
			return "No runs recorded."
		}
		return tableMutedStyle.Render(m.scoreTable.View())
	case tabWeakKeys:
		if len(m.weak) == 0 {
			return "No character stats yet."
		}
		return tableMutedStyle.Render(m.weakTable.View())
	default:
		return m.runView.View()
	}
}

func (m *Model) renderRun() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.runView.SetContent(renderRunSummary(m.result, width))
}

func renderRunSummary(res recorder.Result, width int) string {
	run := res.Run
	cards := []string{
		metricCard("Score", fmt.Sprintf("%d", run.Score)),
		metricCard("Words", fmt.Sprintf("%d", run.WordsCompleted)),
		metricCard("Max Combo", fmt.Sprintf("%d", run.MaxCombo)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", run.Accuracy)),
		metricCard("Peak WPM", fmt.Sprintf("%d", run.PeakWPM)),
		metricCard("Avg WPM", fmt.Sprintf("%d", run.AverageWPM)),
		metricCard("Level", fmt.Sprintf("%d", run.Level)),
		metricCard("Bosses", fmt.Sprintf("%d", run.BossesDefeated)),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	title := headerStyle.Render(fmt.Sprintf("%s · %s · %.1fs", run.Mode, run.Reason, float64(run.DurationMs)/1000))
	lines := []string{title, grid}
	if len(res.WPMSamples) > 0 {
		samples := stats.MovingAverage(res.WPMSamples, sparkWindow)
		if len(samples) > width-6 && width > 6 {
			samples = samples[len(samples)-(width-6):]
		}
		lines = append(lines, "", "WPM  "+sparkStyle.Render(stats.Sparkline(samples)))
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newTable(cols []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(tableStyles())
	return t
}

func buildScoreTableData(runs []model.RunRecord, currentID string) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "", Width: 1},
		{Title: "#", Width: 3},
		{Title: "Score", Width: 8},
		{Title: "Reason", Width: 18},
		{Title: "Words", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Acc", Width: 7},
		{Title: "Peak", Width: 5},
		{Title: "Lvl", Width: 4},
		{Title: "Bosses", Width: 6},
	}
	rows := make([]table.Row, 0, len(runs))
	for i, r := range runs {
		marker := ""
		if r.ID == currentID {
			marker = ">"
		}
		rows = append(rows, table.Row{
			marker,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Reason,
			fmt.Sprintf("%d", r.WordsCompleted),
			fmt.Sprintf("%d", r.MaxCombo),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			fmt.Sprintf("%d", r.PeakWPM),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.BossesDefeated),
		})
	}
	return columns, rows
}

func buildWeakTableData(aggs []model.CharAggregate) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Char", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg Latency (ms)", Width: 17},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
	}
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total) * 100
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		charLabel := agg.Char
		if charLabel == " " {
			charLabel = "<space>"
		}
		rows = append(rows, table.Row{
			charLabel,
			fmt.Sprintf("%.2f%%", acc),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return columns, rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
