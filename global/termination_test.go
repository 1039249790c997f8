// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global_test

import (
	"sync"
	"testing"

	"github.com/painless-sat/painlessgo/global"
	"github.com/painless-sat/painlessgo/term"
)

// TestTerminationBroadcastsWinner checks that once one rank declares
// SAT, within a couple of rounds every rank's
// term.Context observes the same winner and result.
func TestTerminationBroadcastsWinner(t *testing.T) {
	const n = 4
	const winnerRank = 2
	net := global.NewLocalNetwork(n)

	contexts := make([]*term.Context, n)
	terminators := make([]*global.Terminator, n)
	for r := 0; r < n; r++ {
		contexts[r] = term.New()
		terminators[r] = global.NewTerminator(net.Transport(r), contexts[r], 0)
	}
	terminators[winnerRank].ReportLocal(term.SAT)

	var wg sync.WaitGroup
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for round := 0; round < 5; round++ {
				done, err := terminators[r].Round()
				if err != nil {
					t.Errorf("rank %d round %d: %v", r, round, err)
					return
				}
				if done {
					return
				}
			}
			t.Errorf("rank %d never observed termination", r)
		}(r)
	}
	wg.Wait()

	for r := 0; r < n; r++ {
		result, winner, declared := contexts[r].Outcome()
		if !declared {
			t.Fatalf("rank %d: outcome not declared", r)
		}
		if result != term.SAT || winner != winnerRank {
			t.Fatalf("rank %d: outcome = (%v, %d), want (SAT, %d)", r, result, winner, winnerRank)
		}
		if !contexts[r].Ended() {
			t.Fatalf("rank %d: Ended() = false", r)
		}
	}
}

func TestTerminationQuiescentRoundsStayUndeclared(t *testing.T) {
	const n = 3
	net := global.NewLocalNetwork(n)
	ctxs := make([]*term.Context, n)
	terms := make([]*global.Terminator, n)
	for r := 0; r < n; r++ {
		ctxs[r] = term.New()
		terms[r] = global.NewTerminator(net.Transport(r), ctxs[r], 0)
	}

	var wg sync.WaitGroup
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			done, err := terms[r].Round()
			if err != nil {
				t.Errorf("rank %d: %v", r, err)
			}
			if done {
				t.Errorf("rank %d: reported done with no declared result", r)
			}
		}(r)
	}
	wg.Wait()

	for r := 0; r < n; r++ {
		if ctxs[r].Ended() {
			t.Fatalf("rank %d ended without any declared result", r)
		}
	}
}
