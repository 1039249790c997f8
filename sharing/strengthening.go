// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/solverapi"
)

// MinSizeToStrengthen is the clause-length threshold at or above which
// the strengthening strategy attempts to shrink an incoming clause via
// the reducer; shorter clauses are forwarded untouched.
const MinSizeToStrengthen = 8

// Strengthening is the reducer-backed local strategy: every producer's
// newly learned clauses are broadcast straight to the
// other consumers, except that a clause of size >= MinSizeToStrengthen
// is first offered to an auxiliary CDCL solver (the Reducer) as a
// negated-literal assumption query; when that comes back UNSAT with a
// strictly shorter final conflict, the strengthened clause replaces the
// original and (unlike an ordinary clause) is broadcast to every
// consumer, including the one that produced the original.
//
// Unlike the other local strategies this one keeps no bucket database
// and applies no production-rate feedback — it is a direct drain-and-
// forward pass with one extra step per long clause.
type Strengthening struct {
	base

	MinSizeToReduce int
	SleepMillis     int
	End             EndFlag

	Reducer *SolverEntity
}

// NewStrengthening constructs a StrengtheningSharing strategy. reducer
// is queried directly for strengthening and is not added to producers
// or consumers; as a SolverEntity its Kind is KindSolver, so listing it
// there too would make it an ordinary participant.
func NewStrengthening(producers, consumers []Entity, reducer *SolverEntity, end EndFlag) *Strengthening {
	s := &Strengthening{
		MinSizeToReduce: MinSizeToStrengthen,
		SleepMillis:     DefaultSleepMillis,
		End:             end,
		Reducer:         reducer,
	}
	s.producers = append(s.producers, producers...)
	s.consumers = append(s.consumers, consumers...)
	return s
}

// verifyIndependence re-queries the reducer with no assumptions; a SAT
// answer there would mean the reducer's prior UNSAT/conflict-analysis
// pair cannot be trusted as a function purely of the clause just
// queried. The reducer is one long-lived solver reused across unrelated
// clauses, so a stale internal conclusion has to be ruled out before a
// strengthened clause is accepted.
func (s *Strengthening) verifyIndependence() bool {
	result, err := s.Reducer.Solve(nil)
	if err != nil {
		return false
	}
	return result != solverapi.SAT
}

// tryStrengthen queries the reducer with c's negated literals as
// assumptions. It returns a strictly shorter replacement clause and true
// if the reducer answered UNSAT, the resulting final analysis is
// shorter than c, and verifyIndependence accepts it; otherwise it
// returns (nil, false) and the caller keeps the original clause.
func (s *Strengthening) tryStrengthen(c *clause.Record) (*clause.Record, bool) {
	if s.Reducer == nil {
		return nil, false
	}
	lits := c.Literals()
	assumptions := make([]int32, len(lits))
	for i, l := range lits {
		assumptions[i] = -l
	}

	result, err := s.Reducer.Solve(assumptions)
	if err != nil || result != solverapi.UNSAT {
		return nil, false
	}
	reduced := s.Reducer.FinalAnalysis()
	if len(reduced) == 0 || len(reduced) >= c.Size() {
		return nil, false
	}
	if !s.verifyIndependence() {
		return nil, false
	}
	return clause.Clone(reduced, c.Lbd(), c.Origin()), true
}

// DoSharing drains every producer and forwards each learned clause on,
// strengthening the long ones along the way.
func (s *Strengthening) DoSharing() bool {
	s.syncMembership()
	if ended(s.End) {
		return true
	}

	for _, p := range s.producers {
		if p.Kind() == KindReducer {
			continue
		}

		learned := p.ExportClauses()
		s.Stats.ReceivedClauses += len(learned)
		s.Stats.SharedClauses += len(learned)

		for _, c := range learned {
			if c.Size() >= s.MinSizeToReduce {
				if strengthened, ok := s.tryStrengthen(c); ok {
					for _, consumer := range s.consumers {
						consumer.ImportClause(strengthened)
					}
					continue
				}
			}
			broadcastTo(s.consumers, p.ID(), []*clause.Record{c})
		}
	}

	return ended(s.End)
}

func (s *Strengthening) SleepInterval() int { return s.SleepMillis }

func (s *Strengthening) PrintStats() Stats { return s.Stats }

var _ Strategy = (*Strengthening)(nil)
