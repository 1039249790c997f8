// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"code.hybscloud.com/atomix"

	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/solverapi"
)

// stubSolver is not a CDCL solver: it satisfies solverapi.Solver just
// well enough to drive the clause-exchange wiring end to end — a real
// binary links an actual solver plugin in its place.
type stubSolver struct {
	interrupted atomix.Bool
}

func newStubSolver() *stubSolver { return &stubSolver{} }

func (s *stubSolver) AddInitialClauses(_ []*clause.Record, _ int) error { return nil }

// Solve blocks until interrupted, then reports UNKNOWN — it never
// actually searches for a model.
func (s *stubSolver) Solve(_ []int32) (solverapi.Result, error) {
	for !s.interrupted.Load() {
		time.Sleep(20 * time.Millisecond)
	}
	s.interrupted.Store(false)
	return solverapi.UNKNOWN, nil
}

func (s *stubSolver) SetSolverInterrupt() { s.interrupted.Store(true) }
func (s *stubSolver) UnsetSolverInterrupt() { s.interrupted.Store(false) }

func (s *stubSolver) GetModel() []bool { return nil }
func (s *stubSolver) GetFinalAnalysis() []int32 { return nil }
func (s *stubSolver) ImportClause() (*clause.Record, bool) { return nil, false }
func (s *stubSolver) ExportClause() (*clause.Record, bool) { return nil, false }

var _ solverapi.Solver = (*stubSolver)(nil)
