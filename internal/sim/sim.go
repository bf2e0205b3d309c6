// Package sim plays games headlessly with a bot typist on a manual clock.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/generator"
	"github.com/verte-zerg/typearena/internal/model"
	"github.com/verte-zerg/typearena/internal/recorder"
	"github.com/verte-zerg/typearena/internal/store"
)

// ReasonTimeout ends a simulated run that reached its maximum duration.
const ReasonTimeout = "sim_timeout"

// DefaultMaxDuration caps a run when SimConfig.MaxDuration is unset.
const DefaultMaxDuration = 5 * time.Minute

const typoAlphabet = "abcdefghijklmnopqrstuvwxyz"

// Simulator runs bot games and stores their results.
type Simulator struct {
	cfg       model.SimConfig
	opts      game.Options
	store     *store.Store
	log       zerolog.Logger
	configure func(*game.Engine) error
}

// New validates cfg and returns a Simulator. st may be nil.
func New(cfg model.SimConfig, opts game.Options, st *store.Store, log zerolog.Logger) (*Simulator, error) {
	if _, ok := game.LookupMode(cfg.Mode); !ok {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownMode, cfg.Mode)
	}
	if cfg.WPM <= 0 {
		return nil, errors.New("wpm must be > 0")
	}
	if cfg.Accuracy < 0 || cfg.Accuracy > 1 {
		return nil, errors.New("accuracy must be between 0 and 1")
	}
	if cfg.Runs <= 0 {
		return nil, errors.New("runs must be > 0")
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}
	return &Simulator{cfg: cfg, opts: opts, store: st, log: log}, nil
}

// Configure registers a hook applied to every fresh engine, used to inject
// word banks and bosses.
func (s *Simulator) Configure(fn func(*game.Engine) error) {
	s.configure = fn
}

// Run plays cfg.Runs games in sequence.
func (s *Simulator) Run(ctx context.Context) ([]recorder.Result, error) {
	results := make([]recorder.Result, 0, s.cfg.Runs)
	for i := 0; i < s.cfg.Runs; i++ {
		res, err := s.runOnce(ctx, s.cfg.Seed+int64(i))
		if err != nil {
			return results, err
		}
		if s.store != nil {
			if err := s.store.InsertRun(ctx, res.Run, res.Chars); err != nil {
				return results, fmt.Errorf("failed to save run: %w", err)
			}
		}
		s.log.Info().
			Int("run", i+1).
			Str("reason", res.Run.Reason).
			Int("score", res.Run.Score).
			Int("peak_wpm", res.Run.PeakWPM).
			Msg("simulated run finished")
		results = append(results, res)
	}
	return results, nil
}

func (s *Simulator) runOnce(ctx context.Context, seed int64) (recorder.Result, error) {
	clk := clock.NewManual(time.Unix(0, 0).UTC())
	gen := generator.NewSeeded(seed)
	eng := game.NewEngine(s.opts, clk, gen, s.log)
	if s.configure != nil {
		if err := s.configure(eng); err != nil {
			return recorder.Result{}, err
		}
	}
	rec := recorder.Attach(eng, clk, nil)
	defer rec.Detach()

	if err := eng.StartGame(s.cfg.Mode); err != nil {
		return recorder.Result{}, err
	}
	interval := keystrokeInterval(s.cfg.WPM)
	deadline := clk.Now().Add(s.cfg.MaxDuration)
	for eng.State().IsRunning {
		if err := ctx.Err(); err != nil {
			eng.EndGame("canceled")
			return recorder.Result{}, err
		}
		if !clk.Now().Before(deadline) {
			eng.EndGame(ReasonTimeout)
			break
		}
		p := eng.CurrentProgress()
		if rem := []rune(p.Remaining); len(rem) > 0 {
			eng.ProcessKeystroke(s.nextKey(gen, rem[0]))
		}
		clk.Advance(interval)
	}

	res, ok := rec.Last()
	if !ok {
		return recorder.Result{}, errors.New("run finished without a result")
	}
	return res, nil
}

// nextKey types expected with the configured accuracy, otherwise a different letter.
func (s *Simulator) nextKey(gen *generator.Generator, expected rune) rune {
	if gen.Float64() < s.cfg.Accuracy {
		return expected
	}
	for {
		typo := rune(typoAlphabet[gen.Intn(len(typoAlphabet))])
		if typo != expected {
			return typo
		}
	}
}

func keystrokeInterval(wpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / (wpm * 5))
}
