package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/stats"
)

const (
	hpBarWidth = 24
	trendWidth = 40
)

// renderHUD returns the status line for a running game.
func renderHUD(st game.State, mode game.GameMode) string {
	segments := []string{
		fmt.Sprintf("Score %d", st.Score),
		fmt.Sprintf("Combo %d x%d", st.Combo, st.Multiplier),
	}
	if st.IsFeverMode {
		segments = append(segments, feverStyle.Render("FEVER"))
	}
	if mode.HasLives {
		segments = append(segments, livesStyle.Render(renderLives(st.Lives, st.MaxLives)))
	}
	if mode.HasTimer {
		segments = append(segments, fmt.Sprintf("Time %.1fs", st.TimeRemaining.Seconds()))
	}
	segments = append(segments,
		fmt.Sprintf("Lvl %d", st.Level),
		string(st.CurrentDifficulty),
		fmt.Sprintf("WPM %d (peak %d)", st.WPM, st.PeakWPM),
	)
	return hudStyle.Render(strings.Join(segments, "  "))
}

// renderWPMTrend draws the latest WPM samples of the run in progress.
func renderWPMTrend(samples []float64) string {
	if len(samples) < 2 {
		return ""
	}
	if len(samples) > trendWidth {
		samples = samples[len(samples)-trendWidth:]
	}
	return footerStyle.Render("WPM " + stats.Sparkline(samples))
}

func renderLives(lives, maxLives int) string {
	lives = max(lives, 0)
	return strings.Repeat("♥", lives) + strings.Repeat("♡", max(maxLives-lives, 0))
}

// hpBar draws hp out of maxHP as a bar of width cells.
func hpBar(hp, maxHP, width int) string {
	if maxHP <= 0 || width <= 0 {
		return ""
	}
	filled := int(math.Round(float64(max(hp, 0)) / float64(maxHP) * float64(width)))
	filled = min(filled, width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func renderBossPanel(st game.State) string {
	if st.CurrentBoss == nil {
		return ""
	}
	banner := strings.Trim(st.CurrentBoss.Banner, "\n")
	status := fmt.Sprintf("%s  %s %d/%d", st.CurrentBoss.Name, hpBar(st.BossHP, st.BossMaxHP, hpBarWidth), st.BossHP, st.BossMaxHP)
	parts := []string{}
	if banner != "" {
		parts = append(parts, bossStyle.Render(banner))
	}
	parts = append(parts, bossStyle.Render(status))
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}
