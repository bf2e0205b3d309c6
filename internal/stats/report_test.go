package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		run := model.RunRecord{
			ID:             string(rune('a' + i)),
			Mode:           "TIME_ATTACK",
			Reason:         "time_up",
			StartedAt:      start,
			EndedAt:        end,
			Score:          1000 * (i + 1),
			Accuracy:       90,
			CorrectChars:   100,
			IncorrectChars: 10,
			DurationMs:     end.Sub(start).Milliseconds(),
		}
		chars := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "b", Correct: 4, Incorrect: 1},
			{Char: " ", Correct: 1, Incorrect: 3},
		}
		if err := st.InsertRun(ctx, run, chars); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.RunFilter{Mode: "TIME_ATTACK", Last: 2}, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 || report.Runs[0].ID != "b" || report.Runs[1].ID != "c" {
		t.Fatalf("unexpected runs: %+v", report.Runs)
	}
	if len(report.WeakChars) != 2 || report.WeakChars[0].Char != " " || report.WeakChars[1].Char != "b" {
		t.Fatalf("unexpected weak chars: %+v", report.WeakChars)
	}
	if report.WeakChars[0].Incorrect != 6 {
		t.Fatalf("expected weak chars over the listed runs only, got %+v", report.WeakChars[0])
	}

	var buf bytes.Buffer
	if err := report.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Runs: 2", "Best Score: 3000", "Weakest Keys", "<space>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
