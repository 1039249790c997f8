// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"sort"

	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/clause"
)

// HordeSatAlt is the single-pooled-round HordeSat variant: instead of
// one bucket database per producer, every producer's kept clauses are
// merged into one sorted pool for the round; unit clauses (size 1) are
// always broadcast first, then the tail fills up to
// shr-lit * numProducers literals. Production-rate increases are gated
// behind a warm-up of RoundBeforeIncrease rounds (decreases are not),
// and saved units are
// replayed into consumers that join later.
type HordeSatAlt struct {
	base

	Filter              *bloom.Filter
	LiteralsPerProducer int
	RoundBeforeIncrease int
	SleepMillis         int
	End                 EndFlag

	round      int
	initPhase  bool
	savedUnits map[int32]*clause.Record // lit -> unit clause, for replay
}

// NewHordeSatAlt constructs a HordeSatAlt strategy.
func NewHordeSatAlt(producers, consumers []Entity, filter *bloom.Filter, end EndFlag) *HordeSatAlt {
	h := &HordeSatAlt{
		Filter:              filter,
		LiteralsPerProducer: DefaultLiteralsPerRound,
		RoundBeforeIncrease: 1,
		SleepMillis:         DefaultSleepMillis,
		End:                 end,
		initPhase:           true,
		savedUnits:          make(map[int32]*clause.Record),
	}
	h.producers = append(h.producers, producers...)
	h.consumers = append(h.consumers, consumers...)
	return h
}

func (h *HordeSatAlt) literalBudget() int {
	n := len(h.producers)
	if n == 0 {
		n = 1
	}
	return h.LiteralsPerProducer * n
}

// DoSharing runs one pooled round.
func (h *HordeSatAlt) DoSharing() bool {
	h.round++
	if ended(h.End) {
		return true
	}

	newConsumers := h.syncMembership()
	for _, c := range newConsumers {
		for _, unit := range h.savedUnits {
			c.ImportClause(unit)
		}
	}

	budget := h.literalBudget()

	var pooled []*clause.Record
	usedSoFar := 0
	for _, p := range h.producers {
		if p.Kind() == KindReducer {
			continue
		}
		unfiltered := p.ExportClauses()
		h.Stats.ReceivedClauses += len(unfiltered)
		kept := filterDuplicates(h.Filter, unfiltered, &h.Stats)
		pooled = append(pooled, kept...)

		for _, c := range kept {
			usedSoFar += c.Size()
		}
		if p.Kind() == KindSolver {
			usedPercent := 100 * usedSoFar / budget
			if usedPercent < 75 && !h.initPhase {
				p.IncreaseClauseProduction()
			} else if usedPercent > 98 {
				p.DecreaseClauseProduction()
			}
		}
	}
	if h.round >= h.RoundBeforeIncrease {
		h.initPhase = false
	}

	sort.Slice(pooled, func(i, j int) bool {
		if pooled[i].Size() != pooled[j].Size() {
			return pooled[i].Size() < pooled[j].Size()
		}
		return pooled[i].Lbd() < pooled[j].Lbd()
	})

	i := 0
	for ; i < len(pooled) && pooled[i].Size() == 1; i++ {
		c := pooled[i]
		h.savedUnits[c.Literals()[0]] = c
		for _, consumer := range h.consumers {
			consumer.ImportClause(c)
		}
		h.Stats.SharedClauses++
	}

	sharedLiterals := 0
	for ; i < len(pooled); i++ {
		sharedLiterals += pooled[i].Size()
		if sharedLiterals > h.LiteralsPerProducer*len(h.producers) {
			break
		}
		for _, consumer := range h.consumers {
			consumer.ImportClause(pooled[i])
		}
		h.Stats.SharedClauses++
	}

	return ended(h.End)
}

func (h *HordeSatAlt) SleepInterval() int { return h.SleepMillis }

func (h *HordeSatAlt) PrintStats() Stats { return h.Stats }

var _ Strategy = (*HordeSatAlt)(nil)
