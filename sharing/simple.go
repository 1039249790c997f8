// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/database"
)

// Simple is the pooled-database local strategy: every producer's kept
// clauses land in one shared bucket database (instead of HordeSat's
// per-producer databases), there is no per-solver production-rate
// feedback, and one selection is broadcast per round to every consumer
// that did not originate it — suitable for small portfolios where
// per-producer bookkeeping is overkill.
type Simple struct {
	base

	Filter           *bloom.Filter // nil disables duplicate detection
	LiteralsPerRound int
	SleepMillis      int
	End              EndFlag

	db *database.Database
}

// NewSimple constructs a SimpleSharing strategy over one shared
// database sized maxClauseSize/admissionCap.
func NewSimple(producers, consumers []Entity, filter *bloom.Filter, end EndFlag, maxClauseSize, admissionCap int) *Simple {
	s := &Simple{
		Filter:           filter,
		LiteralsPerRound: DefaultLiteralsPerRound,
		SleepMillis:      DefaultSleepMillis,
		End:              end,
		db:               database.New(maxClauseSize, admissionCap),
	}
	s.producers = append(s.producers, producers...)
	s.consumers = append(s.consumers, consumers...)
	return s
}

// DoSharing drains every producer into the one shared database, then
// broadcasts a single selection to every consumer that didn't originate
// each clause.
func (s *Simple) DoSharing() bool {
	s.syncMembership()
	if ended(s.End) {
		return true
	}

	for _, p := range s.producers {
		if p.Kind() == KindReducer {
			continue
		}
		unfiltered := p.ExportClauses()
		s.Stats.ReceivedClauses += len(unfiltered)
		kept := filterDuplicates(s.Filter, unfiltered, &s.Stats)
		for _, c := range kept {
			s.db.AddClause(c)
		}
	}

	selection := s.db.GiveSelection(s.LiteralsPerRound)
	s.Stats.SharedClauses += len(selection)

	for _, consumer := range s.consumers {
		out := selection[:0:0]
		for _, c := range selection {
			if int32(c.Origin()) == consumer.ID() {
				continue
			}
			out = append(out, c)
		}
		consumer.ImportClauses(out)
	}

	return ended(s.End)
}

func (s *Simple) SleepInterval() int { return s.SleepMillis }

func (s *Simple) PrintStats() Stats { return s.Stats }

var _ Strategy = (*Simple)(nil)
