package statsui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/recorder"
	"github.com/verte-zerg/typearena/internal/store"
)

func sampleResult(id string, score int) recorder.Result {
	start := time.Unix(0, 0).UTC()
	return recorder.Result{
		Run: model.RunRecord{
			ID:         id,
			Mode:       "SURVIVAL",
			Reason:     "no_lives",
			StartedAt:  start,
			EndedAt:    start.Add(42 * time.Second),
			Score:      score,
			Accuracy:   97.5,
			PeakWPM:    88,
			DurationMs: 42000,
		},
		Chars: []model.CharStats{
			{Char: "q", Correct: 1, Incorrect: 3},
			{Char: "e", Correct: 9, Incorrect: 1},
		},
		WPMSamples: []float64{10, 40, 60, 80, 88},
	}
}

func TestBuildScoreTableMarksCurrentRun(t *testing.T) {
	runs := []model.RunRecord{{ID: "a", Score: 900}, {ID: "b", Score: 500}}
	cols, rows := buildScoreTableData(runs, "b")
	if len(cols) != 10 || len(rows) != 2 {
		t.Fatalf("unexpected table shape %d x %d", len(cols), len(rows))
	}
	if rows[0][0] != "" || rows[1][0] != ">" {
		t.Fatalf("expected marker on the current run, got %q %q", rows[0][0], rows[1][0])
	}
	if rows[0][2] != "900" {
		t.Fatalf("unexpected score cell %q", rows[0][2])
	}
}

func TestBuildWeakTableLabelsSpace(t *testing.T) {
	_, rows := buildWeakTableData([]model.CharAggregate{{Char: " ", Correct: 1, Incorrect: 1, LatencySumMs: 300, LatencyCount: 2}})
	if rows[0][0] != "<space>" || rows[0][1] != "50.00%" || rows[0][2] != "150.0" {
		t.Fatalf("unexpected row %v", rows[0])
	}
}

func TestRunSummaryContents(t *testing.T) {
	out := renderRunSummary(sampleResult("x", 1234), 100)
	for _, want := range []string{"SURVIVAL", "no_lives", "42.0s", "1234", "97.5%", "88", "WPM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestLoadFromStoreAndNavigate(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	for i, id := range []string{"r1", "r2"} {
		res := sampleResult(id, 100*(i+1))
		res.Run.EndedAt = res.Run.EndedAt.Add(time.Duration(i) * time.Minute)
		if err := st.InsertRun(ctx, res.Run, res.Chars); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	m := Load(ctx, st, sampleResult("r1", 100), 10, 5)
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if len(m.top) != 2 || m.top[0].ID != "r2" {
		t.Fatalf("unexpected scoreboard %+v", m.top)
	}
	if m.scoreTable.Cursor() != 1 {
		t.Fatalf("expected cursor on the current run, got %d", m.scoreTable.Cursor())
	}
	if len(m.weak) != 2 || m.weak[0].Char != "q" {
		t.Fatalf("unexpected weak keys %+v", m.weak)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabScoreboard || !strings.Contains(m.View(), "Score") {
		t.Fatalf("expected scoreboard tab")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabWeakKeys || !strings.Contains(m.View(), "Avg Latency") {
		t.Fatalf("expected weak keys tab")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabRun {
		t.Fatalf("expected tabs to wrap around")
	}
}
