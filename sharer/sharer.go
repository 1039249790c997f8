// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sharer implements the Sharer runtime: one goroutine per
// strategy (or one goroutine driving every strategy, via the one-sharer
// option) that round-robins DoSharing calls on a timed schedule,
// desyncing workers with a per-id start jitter and waking early on the
// process-wide termination signal.
package sharer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/painless-sat/painlessgo/term"
)

// Strategy is the minimal shape the Sharer drives: any of package
// sharing's local strategies or package global's ring/all-gather/tree
// strategies satisfy it structurally, with no import dependency in
// either direction.
type Strategy interface {
	// DoSharing runs one round, reporting whether termination has been
	// observed so the Sharer should stop scheduling it.
	DoSharing() (done bool)
	// SleepInterval is this strategy's preferred inter-round sleep, in
	// milliseconds.
	SleepInterval() (millis int)
}

// DefaultInitJitter is the per-id desync delay multiplier: Sharer i
// sleeps i times this before its first round, staggering wake-ups.
const DefaultInitJitter = 10 * time.Millisecond

// Sharer runs a fixed set of strategies in round-robin on a timed
// schedule, one goroutine per Sharer (callers wanting the one-sharer
// option construct a single Sharer over every strategy; callers wanting
// one thread per strategy construct one Sharer per strategy).
type Sharer struct {
	ID         int
	Strategies []Strategy
	End        *term.Context
	InitJitter time.Duration
	Log        zerolog.Logger

	round int

	// RoundDurations records each round's wall-clock cost, indexed the
	// same as Strategies, for diagnostics.
	RoundDurations []time.Duration
}

// New constructs a Sharer with the given id and strategy set.
func New(id int, strategies []Strategy, end *term.Context, log zerolog.Logger) *Sharer {
	return &Sharer{
		ID:             id,
		Strategies:     strategies,
		End:            end,
		InitJitter:     DefaultInitJitter,
		Log:            log,
		RoundDurations: make([]time.Duration, len(strategies)),
	}
}

// Run executes the Sharer loop until any one strategy reports done or the
// process-wide ending flag is set, then performs one final DoSharing per
// strategy so each sees the end and drains cleanly.
func (s *Sharer) Run() {
	if len(s.Strategies) == 0 {
		return
	}
	if s.InitJitter > 0 && s.ID > 0 {
		time.Sleep(time.Duration(s.ID) * s.InitJitter)
	}

	for {
		if s.End.Ended() {
			break
		}
		idx := s.round % len(s.Strategies)
		strat := s.Strategies[idx]

		t0 := time.Now()
		done := strat.DoSharing()
		s.RoundDurations[idx] = time.Since(t0)

		if done || s.End.Ended() {
			break
		}
		s.End.Wait(time.Duration(strat.SleepInterval()) * time.Millisecond / time.Duration(len(s.Strategies)))
		s.round++
	}

	for i, strat := range s.Strategies {
		t0 := time.Now()
		strat.DoSharing()
		s.RoundDurations[i] = time.Since(t0)
	}
	s.Log.Info().Int("sharer_id", s.ID).Msg("sharer exiting")
}
