// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package term implements the process-wide termination barrier: a
// single atomic ending flag, the wake-up channel Sharer goroutines
// suspend on between rounds, and the winning rank/result pair the
// global termination sub-protocol ultimately broadcasts.
//
// Everything hangs off one Context value, created once via New and
// threaded explicitly into every Sharer and strategy — no package-level
// mutable state.
package term

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// Result mirrors solverapi.Result's wire values so term has no import
// dependency back onto the solver-plugin boundary; callers convert at
// their own layer.
type Result int32

const (
	Unknown Result = 0
	SAT     Result = 10
	UNSAT   Result = 20
	Timeout Result = 30
)

// Context is the process-wide termination handle: the ending flag every
// Sharer and global strategy polls, the broadcast channel SetEnding
// closes to wake sleeping Sharers early (a channel close instead of
// sync.Cond, so Wait can select against a timeout without leaking a
// goroutine per call), and the one-time-set winning result.
//
// A Context must be created with New; the zero value is not usable (its
// wake channel is nil).
type Context struct {
	ending  atomix.Bool
	wake    chan struct{}
	endOnce sync.Once

	mu        sync.Mutex
	once      sync.Once
	result    Result
	winner    int32
	model     []bool
	hasWinner bool
}

// New creates a fresh, not-yet-ended Context.
func New() *Context {
	return &Context{wake: make(chan struct{})}
}

// Ended reports whether the process-wide ending flag has been set.
func (c *Context) Ended() bool { return c.ending.Load() }

// Load is an alias for Ended, so *Context satisfies sharing.EndFlag (a
// single Load() bool method) without package sharing importing this
// package by name.
func (c *Context) Load() bool { return c.Ended() }

// SetEnding sets the ending flag and wakes every Sharer suspended in
// Wait. Calling it more than once, or from more than one goroutine
// concurrently, is safe and idempotent.
func (c *Context) SetEnding() {
	c.ending.Store(true)
	c.endOnce.Do(func() { close(c.wake) })
}

// Declare records the winning rank and result exactly once; subsequent
// calls are ignored. The first observation wins, no matter which solver
// or broadcast delivered it.
func (c *Context) Declare(result Result, winner int32, model []bool) {
	c.once.Do(func() {
		c.mu.Lock()
		c.result = result
		c.winner = winner
		c.model = model
		c.hasWinner = true
		c.mu.Unlock()
	})
	c.SetEnding()
}

// Outcome returns the declared result, winning rank, and whether a
// result has been declared yet.
func (c *Context) Outcome() (result Result, winner int32, declared bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.winner, c.hasWinner
}

// Model returns the winning solver's satisfying assignment, valid only
// when Outcome reports result == SAT.
func (c *Context) Model() []bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// Wait suspends the calling goroutine until either d has elapsed or
// SetEnding wakes it, whichever comes first. Spurious wake-ups are
// tolerated by the caller simply re-checking Ended().
func (c *Context) Wait(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.wake:
	case <-t.C:
	}
}
