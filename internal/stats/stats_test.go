package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestAccuracyPct(t *testing.T) {
	if got := AccuracyPct(0, 0); got != 0 {
		t.Fatalf("expected 0 for no input, got %v", got)
	}
	if got := AccuracyPct(2, 3); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
	if got := AccuracyPct(5, 5); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestAverageWPM(t *testing.T) {
	if got := AverageWPM(100, 0); got != 0 {
		t.Fatalf("expected 0 for zero elapsed, got %d", got)
	}
	if got := AverageWPM(300, time.Minute); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := AverageWPM(299, time.Minute); got != 59 {
		t.Fatalf("expected floor to 59, got %d", got)
	}
}

func TestSessionMetrics(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(250, 50, 60000)
	if wpm != 50 || cpm != 250 {
		t.Fatalf("unexpected wpm/cpm: %v %v", wpm, cpm)
	}
	if acc < 0.833 || acc > 0.834 {
		t.Fatalf("unexpected accuracy: %v", acc)
	}
	if wpm, _, _ := SessionMetrics(10, 0, 0); wpm != 0 {
		t.Fatalf("expected zero metrics for zero duration")
	}
}

func TestSparklineAndMovingAverage(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	flat := Sparkline([]float64{3, 3, 3})
	if flat != "+++" {
		t.Fatalf("unexpected flat sparkline %q", flat)
	}
	line := Sparkline([]float64{0, 10})
	if line != " @" {
		t.Fatalf("unexpected sparkline %q", line)
	}
	avg := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if avg[i] != want[i] {
			t.Fatalf("unexpected moving average %v", avg)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
