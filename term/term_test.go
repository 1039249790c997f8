// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package term_test

import (
	"testing"
	"time"

	"github.com/painless-sat/painlessgo/term"
)

func TestSetEndingWakesWaiters(t *testing.T) {
	c := term.New()
	done := make(chan struct{})
	go func() {
		c.Wait(time.Hour)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	c.SetEnding()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after SetEnding")
	}
	if !c.Ended() {
		t.Fatal("Ended() = false after SetEnding")
	}
}

func TestWaitTimesOutWithoutEnding(t *testing.T) {
	c := term.New()
	start := time.Now()
	c.Wait(20 * time.Millisecond)
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("Wait returned before its timeout elapsed")
	}
	if c.Ended() {
		t.Fatal("Ended() = true without SetEnding")
	}
}

func TestDeclareIsOneTime(t *testing.T) {
	c := term.New()
	c.Declare(term.SAT, 3, []bool{true, false})
	c.Declare(term.UNSAT, 7, nil) // ignored: first declaration wins

	result, winner, declared := c.Outcome()
	if !declared {
		t.Fatal("Outcome reports not declared")
	}
	if result != term.SAT || winner != 3 {
		t.Fatalf("Outcome = (%v, %d), want (SAT, 3)", result, winner)
	}
	if len(c.Model()) != 2 || !c.Model()[0] {
		t.Fatalf("Model = %v, want [true false]", c.Model())
	}
}
