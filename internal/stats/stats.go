// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/typearena/internal/model"
)

const sparkChars = " .:-=+*#%@"

// AccuracyPct returns correct/total as a percentage rounded to one decimal.
func AccuracyPct(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// AverageWPM returns floored words per minute over elapsed, five characters per word.
func AverageWPM(correct int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor((float64(correct) / 5.0) / elapsed.Minutes()))
}

// SessionMetrics computes WPM, CPM, and accuracy for a run.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate figures and a per-run table.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var totalScore, totalAcc float64
	best := runs[0]
	for _, r := range runs {
		totalScore += float64(r.Score)
		totalAcc += r.Accuracy
		if r.Score > best.Score {
			best = r
		}
	}
	count := float64(len(runs))
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Avg Score: %.0f", totalScore/count),
		fmt.Sprintf("Best Score: %d (%s, %s)", best.Score, best.Mode, best.Reason),
		fmt.Sprintf("Avg Accuracy: %.1f%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	headers := []string{"#", "Mode", "Reason", "Score", "Words", "Combo", "Acc", "Peak", "Avg", "CPM", "Lvl", "Bosses"}
	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		_, cpm, _ := SessionMetrics(r.CorrectChars, r.IncorrectChars, r.DurationMs)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Mode,
			r.Reason,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.WordsCompleted),
			fmt.Sprintf("%d", r.MaxCombo),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			fmt.Sprintf("%d", r.PeakWPM),
			fmt.Sprintf("%d", r.AverageWPM),
			fmt.Sprintf("%.0f", cpm),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.BossesDefeated),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true, 11: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderWeakChars prints the given per-character aggregates, weakest first.
func RenderWeakChars(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weakest Keys"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.2f%%", charAccuracy(agg)*100),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
