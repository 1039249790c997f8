// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sharing implements the uniform producer/consumer abstraction
// over solvers and the global gateway, and the local sharing strategies
// that move clauses between them.
//
// Rather than a class hierarchy with visitor dispatch, each entity
// carries an explicit Kind tag and the strategies switch on it — the
// closed set of entity variants makes the tag the natural shape.
package sharing

import (
	"sync"

	"code.hybscloud.com/atomix"
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/solverapi"
)

// Kind tags an Entity's variant, letting a local strategy behave
// differently per producer without a class hierarchy.
type Kind int

const (
	// KindSolver is a plain CDCL portfolio solver.
	KindSolver Kind = iota
	// KindGateway is the global-database gateway acting as a local
	// sharing entity: no production-rate feedback is applied.
	KindGateway
	// KindReducer is a CDCL solver used only to attempt strengthening
	// of incoming clauses; it never participates in ordinary broadcast
	// selection.
	KindReducer
)

// Entity is the polymorphic handle every producer/consumer of clauses
// implements.
type Entity interface {
	// ID returns this entity's unique, non-negative identifier.
	ID() int32

	// Kind reports which variant behaviour a visiting strategy should apply.
	Kind() Kind

	// ImportClause places an incoming clause into the entity's pending
	// queue, to be drained by its own inner loop (for a CDCL solver) or
	// consumed directly (for the gateway).
	ImportClause(c *clause.Record)

	// ImportClauses is a convenience batch form of ImportClause.
	ImportClauses(cs []*clause.Record)

	// ExportClauses returns a snapshot-and-clear of what this entity
	// has produced since the last call.
	ExportClauses() []*clause.Record

	// SetLbdLimit requests that future exports be filtered to lbd<=n.
	SetLbdLimit(n uint32)

	// IncreaseClauseProduction and DecreaseClauseProduction are
	// adaptive-rate feedback hooks; entities that don't support rate
	// control (the gateway, the default entity) no-op them.
	IncreaseClauseProduction()
	DecreaseClauseProduction()
}

// SolverEntity adapts a solverapi.Solver into an Entity: the CDCL
// portfolio-solver variant. ImportClause/ExportClauses play the role of
// the solver's per-side pending queues, and production-rate feedback
// moves the lbd limit its export callback consults when harvesting.
type SolverEntity struct {
	id     int32
	solver solverapi.Solver

	lbdLimit atomix.Uint64

	pending *importQueue

	mu      sync.Mutex
	learned []*clause.Record
}

// NewSolverEntity wraps solver as a sharing entity with identifier id.
func NewSolverEntity(id int32, solver solverapi.Solver) *SolverEntity {
	e := &SolverEntity{id: id, solver: solver, pending: newImportQueue(minImportQueueCap)}
	e.lbdLimit.Store(^uint64(0))
	return e
}

func (e *SolverEntity) ID() int32 { return e.id }

func (e *SolverEntity) Kind() Kind { return KindSolver }

func (e *SolverEntity) ImportClause(c *clause.Record) {
	e.pending.push(c)
}

func (e *SolverEntity) ImportClauses(cs []*clause.Record) {
	for _, c := range cs {
		e.pending.push(c)
	}
}

// DrainImports is called by the solver's own inner loop to pull pending
// imports between decisions.
func (e *SolverEntity) DrainImports() []*clause.Record {
	return e.pending.drain()
}

// Learn records a clause this solver's inner loop just produced,
// filtered against the current lbd limit: the export-side half of the
// solver callback pair.
func (e *SolverEntity) Learn(c *clause.Record) {
	if uint64(c.Lbd()) > e.lbdLimit.Load() {
		return
	}
	e.mu.Lock()
	e.learned = append(e.learned, c)
	e.mu.Unlock()
}

func (e *SolverEntity) ExportClauses() []*clause.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.learned
	e.learned = nil
	return out
}

func (e *SolverEntity) SetLbdLimit(n uint32) { e.lbdLimit.Store(uint64(n)) }

func (e *SolverEntity) IncreaseClauseProduction() {
	for {
		cur := e.lbdLimit.Load()
		if cur == ^uint64(0) {
			return
		}
		if e.lbdLimit.CompareAndSwapAcqRel(cur, cur+1) {
			return
		}
	}
}

func (e *SolverEntity) DecreaseClauseProduction() {
	for {
		cur := e.lbdLimit.Load()
		if cur <= 1 {
			return
		}
		if e.lbdLimit.CompareAndSwapAcqRel(cur, cur-1) {
			return
		}
	}
}

// Solve delegates to the wrapped solver, so a Sharer/strategy can also
// reach the underlying SAT engine (used by the strengthening strategy's
// reducer variant, see strengthening.go).
func (e *SolverEntity) Solve(cube []int32) (solverapi.Result, error) {
	return e.solver.Solve(cube)
}

// FinalAnalysis exposes the wrapped solver's last UNSAT conflict, used
// by the strengthening strategy to build the replacement clause.
func (e *SolverEntity) FinalAnalysis() []int32 {
	return e.solver.GetFinalAnalysis()
}

// Model exposes the wrapped solver's satisfying assignment, valid only
// after a Solve call returning SAT — used to populate the termination
// context's winning model (see term.Context.Declare).
func (e *SolverEntity) Model() []bool {
	return e.solver.GetModel()
}

// Interrupt and Uninterrupt toggle the wrapped solver's interrupt flag,
// letting an external supervisor (cmd/painlessd's process loop) stop a
// blocked Solve call once termination has been decided elsewhere.
func (e *SolverEntity) Interrupt() { e.solver.SetSolverInterrupt() }
func (e *SolverEntity) Uninterrupt() { e.solver.UnsetSolverInterrupt() }
