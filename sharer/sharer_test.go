// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/painless-sat/painlessgo/sharer"
	"github.com/painless-sat/painlessgo/term"
)

type countingStrategy struct {
	rounds atomic.Int32
	endAt  int32
	ctx    *term.Context
}

func (s *countingStrategy) DoSharing() bool {
	n := s.rounds.Add(1)
	if n >= s.endAt {
		s.ctx.SetEnding()
		return true
	}
	return false
}

func (s *countingStrategy) SleepInterval() int { return 5 }

func TestSharerStopsOnStrategyDone(t *testing.T) {
	ctx := term.New()
	strat := &countingStrategy{endAt: 3, ctx: ctx}
	sh := sharer.New(0, []sharer.Strategy{strat}, ctx, zerolog.Nop())
	sh.InitJitter = 0

	done := make(chan struct{})
	go func() {
		sh.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Sharer.Run did not return")
	}

	if got := strat.rounds.Load(); got < 3 {
		t.Fatalf("strategy ran %d rounds, want >= 3", got)
	}
}

type neverDoneStrategy struct{ calls atomic.Int32 }

func (s *neverDoneStrategy) DoSharing() bool { s.calls.Add(1); return false }
func (s *neverDoneStrategy) SleepInterval() int { return 5 }

func TestSharerStopsOnExternalEnding(t *testing.T) {
	ctx := term.New()
	strat := &neverDoneStrategy{}
	sh := sharer.New(0, []sharer.Strategy{strat}, ctx, zerolog.Nop())
	sh.InitJitter = 0

	done := make(chan struct{})
	go func() {
		sh.Run()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	ctx.SetEnding()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Sharer.Run did not return after SetEnding")
	}
	if strat.calls.Load() == 0 {
		t.Fatal("strategy was never called")
	}
}
