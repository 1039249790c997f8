// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gateway implements the global gateway database: a pair of
// size-bucketed clause databases — toSend, holding
// locally produced clauses awaiting network emission, and received,
// holding clauses delivered from peers and awaiting injection into local
// consumers — plus a maxVar cap that silently drops outbound clauses
// mentioning a variable the rest of the portfolio never introduced.
//
// The gateway is itself a sharing.Entity on the local side (it sits in a
// local strategy's consumer/producer lists) and the sole port the global
// strategies (package global) use on the network side.
package gateway

import (
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/database"
	"github.com/painless-sat/painlessgo/sharing"
)

// Gateway bridges a local portfolio's sharing strategies and the
// inter-node global strategies.
type Gateway struct {
	id int32

	// MaxVar, if > 0, rejects any outbound clause containing a variable
	// greater than it — clauses naming variables introduced by local
	// preprocessing that peer processes never learned about.
	MaxVar int32

	toSend   *database.Database
	received *database.Database
}

// New constructs a Gateway with identifier id. maxSize and admissionCap
// size both the toSend and received databases identically; maxVar is
// the outbound variable cap (0 disables it).
func New(id int32, maxSize, admissionCap int, maxVar int32) *Gateway {
	return &Gateway{
		id:       id,
		MaxVar:   maxVar,
		toSend:   database.New(maxSize, admissionCap),
		received: database.New(maxSize, admissionCap),
	}
}

func (g *Gateway) ID() int32 { return g.id }

// Kind reports KindGateway, so local strategies visiting this entity
// skip the solver-only production-rate feedback.
func (g *Gateway) Kind() sharing.Kind { return sharing.KindGateway }

func maxVarOf(literals []int32) int32 {
	var max int32
	for _, lit := range literals {
		v := lit
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// ImportClause is the local-side entry point: a clause produced locally
// and destined for the network. It is admitted into toSend unless MaxVar
// is set and exceeded, in which case it is dropped silently.
func (g *Gateway) ImportClause(c *clause.Record) {
	if g.MaxVar > 0 && maxVarOf(c.Literals()) > g.MaxVar {
		return
	}
	g.toSend.AddClause(c)
}

// ImportClauses is the batch form of ImportClause.
func (g *Gateway) ImportClauses(cs []*clause.Record) {
	for _, c := range cs {
		g.ImportClause(c)
	}
}

// ExportClauses is the local-side read: it drains the received database
// with an unbounded budget, handing every clause delivered from peers
// since the last call to this portfolio's local consumers.
func (g *Gateway) ExportClauses() []*clause.Record {
	return g.received.GiveSelection(unboundedBudget)
}

// ExportClausesBudget is the budgeted form of ExportClauses, for
// callers that want to meter how much of the received backlog they
// inject per round.
func (g *Gateway) ExportClausesBudget(budget int) []*clause.Record {
	return g.received.GiveSelection(budget)
}

// SetLbdLimit is a no-op for the gateway: the network side has no
// production-rate notion of its own, only whatever lbd limit the
// originating solver already applied.
func (g *Gateway) SetLbdLimit(uint32) {}

// IncreaseClauseProduction and DecreaseClauseProduction no-op: the
// gateway never receives adaptive-rate feedback.
func (g *Gateway) IncreaseClauseProduction() {}
func (g *Gateway) DecreaseClauseProduction() {}

// GetClausesToSend is the network-side read: drains toSend up to budget
// literals, for a global strategy to serialize into an outbound batch.
func (g *Gateway) GetClausesToSend(budget int) []*clause.Record {
	return g.toSend.GiveSelection(budget)
}

// Requeue returns clauses a global strategy failed to fit into a batch
// back to toSend, to be retried next round.
func (g *Gateway) Requeue(cs []*clause.Record) {
	for _, c := range cs {
		g.toSend.AddClause(c)
	}
}

// AddReceivedClauses is the network-side write: fills received with
// clauses deserialized from peers, for local strategies to later export.
func (g *Gateway) AddReceivedClauses(cs []*clause.Record) {
	for _, c := range cs {
		g.received.AddClause(c)
	}
}

// unboundedBudget is large enough that ExportClauses never truncates a
// realistic received backlog; the database's own admission caps already
// bound memory use.
const unboundedBudget = 1 << 30

var _ sharing.Entity = (*Gateway)(nil)
