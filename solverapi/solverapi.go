// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package solverapi models the external solver-plugin boundary. The
// CDCL/local-search solvers themselves live outside this module — this
// package defines only the contract the clause-exchange core needs:
// initial-clause loading, solve/interrupt, and the import/export
// callbacks a solver's inner loop uses to drain and fill its own
// lock-free queues.
package solverapi

import "github.com/painless-sat/painlessgo/clause"

// Result uses the SAT-competition result codes directly, since they are
// also the wire values carried by the termination broadcast.
type Result int32

const (
	UNKNOWN Result = 0
	SAT     Result = 10
	UNSAT   Result = 20
	TIMEOUT Result = 30
)

func (r Result) String() string {
	switch r {
	case SAT:
		return "SAT"
	case UNSAT:
		return "UNSAT"
	case TIMEOUT:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Solver is the contract a CDCL (or local-search) solver plugin exposes
// to the clause-exchange core. Implementations run their own worker
// thread (goroutine); Solve blocks until a result is available or the
// solver is interrupted.
type Solver interface {
	// AddInitialClauses loads the formula's original clauses before
	// solving starts.
	AddInitialClauses(clauses []*clause.Record, varCount int) error

	// Solve attempts to satisfy the formula, optionally restricted to
	// the given assumption cube (used as strengthening-reducer
	// assumptions, or portfolio cube splitting).
	Solve(cube []int32) (Result, error)

	// SetSolverInterrupt / UnsetSolverInterrupt toggle the solver's
	// interrupt flag, consulted by its inner loop on every conflict.
	SetSolverInterrupt()
	UnsetSolverInterrupt()

	// GetModel is valid only after a Solve call returning SAT.
	GetModel() []bool

	// GetFinalAnalysis returns the final conflict's literals; valid only
	// after a Solve call returning UNSAT. The strengthening strategy
	// uses this to obtain a shorter, reduced clause.
	GetFinalAnalysis() []int32

	// ImportClause is invoked by the solver's inner loop to drain its
	// pending-import queue between decisions, and reports whether a
	// clause was consumed. Unit clauses come through it as well; there
	// is no separate unit-import callback.
	ImportClause() (*clause.Record, bool)

	// ExportClause is invoked by the solver's inner loop to harvest one
	// newly learned clause, if any, respecting the current lbd limit.
	ExportClause() (*clause.Record, bool)
}
