package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/store"
)

// Report contains precomputed data for a run summary.
type Report struct {
	Runs      []model.RunRecord
	WeakChars []model.CharAggregate
}

// BuildReport loads runs and the weakest characters across them.
func BuildReport(ctx context.Context, st *store.Store, filter model.RunFilter, weakTop int) (Report, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list runs: %w", err)
	}
	aggs, err := st.GetWeakChars(ctx, len(runs), filter.Mode)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load char stats: %w", err)
	}
	return Report{
		Runs:      runs,
		WeakChars: WeakestChars(aggs, weakTop),
	}, nil
}

// Render writes the summary followed by the weakest keys.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Runs); err != nil {
		return err
	}
	return RenderWeakChars(w, r.WeakChars)
}
