// Package recorder turns engine events into run records and per-character stats.
package recorder

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typearena/internal/clock"
	"github.com/verte-zerg/typearena/internal/event"
	"github.com/verte-zerg/typearena/internal/game"
	"github.com/verte-zerg/typearena/internal/model"
)

// Source is the event surface a Recorder listens to. *game.Engine satisfies it.
type Source interface {
	On(name string, fn event.Listener) func()
}

// Result is a finished run.
type Result struct {
	Run        model.RunRecord
	Chars      []model.CharStats
	WPMSamples []float64
}

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Recorder follows one engine through any number of runs.
type Recorder struct {
	clock    clock.Clock
	unsubs   []func()
	onFinish func(Result)

	active        bool
	run           model.RunRecord
	typed         int
	pending       *game.GameOverEvent
	endedAt       time.Time
	prevCorrectAt time.Time
	charStats     map[rune]*charStat
	samples       []float64
	last          *Result
}

// Attach subscribes a new Recorder to src. onFinish, if set, receives every
// finished run.
func Attach(src Source, c clock.Clock, onFinish func(Result)) *Recorder {
	r := &Recorder{clock: c, onFinish: onFinish}
	r.unsubs = []func(){
		src.On(game.EventGameStart, r.handleStart),
		src.On(game.EventCorrectKeystroke, r.handleCorrect),
		src.On(game.EventIncorrectKeystroke, r.handleIncorrect),
		src.On(game.EventWPMUpdate, r.handleWPM),
		src.On(game.EventGameOver, r.handleGameOver),
	}
	return r
}

// Detach removes every subscription. It is safe to call twice.
func (r *Recorder) Detach() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}

// Last returns the most recently finished run.
func (r *Recorder) Last() (Result, bool) {
	if r.last == nil {
		return Result{}, false
	}
	return *r.last, true
}

// Samples returns the WPM samples of the run in progress.
func (r *Recorder) Samples() []float64 {
	return append([]float64(nil), r.samples...)
}

func (r *Recorder) handleStart(payload any) {
	ev, ok := payload.(game.GameStartEvent)
	if !ok {
		return
	}
	r.active = true
	r.run = model.RunRecord{
		ID:        uuid.NewString(),
		Mode:      ev.Mode,
		StartedAt: r.clock.Now(),
	}
	r.typed = 0
	r.pending = nil
	r.prevCorrectAt = time.Time{}
	r.charStats = map[rune]*charStat{}
	r.samples = nil
}

func (r *Recorder) handleCorrect(payload any) {
	ev, ok := payload.(game.CorrectKeystrokeEvent)
	if !ok || !r.active {
		return
	}
	r.typed++
	if ev.Char != ' ' {
		entry := r.charEntry(ev.Char)
		entry.correct++
		now := r.clock.Now()
		if !r.prevCorrectAt.IsZero() {
			entry.latencySumMs += now.Sub(r.prevCorrectAt).Milliseconds()
			entry.latencyCount++
		}
		r.prevCorrectAt = now
	}
	r.tryFinish()
}

func (r *Recorder) handleIncorrect(payload any) {
	ev, ok := payload.(game.IncorrectKeystrokeEvent)
	if !ok || !r.active {
		return
	}
	r.typed++
	if ev.Expected != ' ' {
		r.charEntry(ev.Expected).incorrect++
	}
	r.tryFinish()
}

func (r *Recorder) handleWPM(payload any) {
	ev, ok := payload.(game.WPMUpdateEvent)
	if !ok || !r.active {
		return
	}
	r.samples = append(r.samples, float64(ev.WPM))
}

// handleGameOver may fire from inside the keystroke that ended the run, before
// that keystroke's own event. The run stays open until every keystroke counted
// in the final stats has been seen.
func (r *Recorder) handleGameOver(payload any) {
	ev, ok := payload.(game.GameOverEvent)
	if !ok || !r.active || r.pending != nil {
		return
	}
	r.pending = &ev
	r.endedAt = r.clock.Now()
	r.tryFinish()
}

func (r *Recorder) tryFinish() {
	if r.pending == nil || r.typed < r.pending.Stats.TotalCharsTyped {
		return
	}
	ev := *r.pending
	r.pending = nil
	r.active = false

	fs := ev.Stats
	run := r.run
	run.Reason = ev.Reason
	run.EndedAt = r.endedAt
	run.Score = fs.Score
	run.WordsCompleted = fs.WordsCompleted
	run.MaxCombo = fs.MaxCombo
	run.Accuracy = fs.Accuracy
	run.PeakWPM = fs.PeakWPM
	run.AverageWPM = fs.AverageWPM
	run.Level = fs.Level
	run.CorrectChars = fs.CorrectChars
	run.IncorrectChars = fs.IncorrectChars
	run.BossesDefeated = fs.BossesDefeated
	run.DurationMs = fs.ElapsedTime.Milliseconds()

	chars := make([]model.CharStats, 0, len(r.charStats))
	for ch, entry := range r.charStats {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i].Char < chars[j].Char })

	res := Result{Run: run, Chars: chars, WPMSamples: append([]float64(nil), r.samples...)}
	r.last = &res
	if r.onFinish != nil {
		r.onFinish(res)
	}
}

func (r *Recorder) charEntry(ch rune) *charStat {
	entry, ok := r.charStats[ch]
	if !ok {
		entry = &charStat{}
		r.charStats[ch] = entry
	}
	return entry
}
