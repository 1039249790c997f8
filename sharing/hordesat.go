// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/database"
)

// DefaultLiteralsPerRound is HordeSat's per-producer literal budget
// (shr-lit).
const DefaultLiteralsPerRound = 1500

// EndFlag reports whether the process-wide termination flag has been
// set (*term.Context satisfies this structurally through its Load
// method). A nil EndFlag
// is treated as never-ending, useful for strategy unit tests that don't
// exercise termination.
type EndFlag interface {
	Load() bool
}

func ended(f EndFlag) bool { return f != nil && f.Load() }

// HordeSat is the HordeSat-style local sharing strategy: one bucket
// database per producer, adaptive per-producer production-rate feedback
// driven by 75%/98% fill-ratio thresholds, and optional Bloom-filter
// duplicate suppression.
type HordeSat struct {
	base

	Filter           *bloom.Filter // nil disables duplicate detection
	LiteralsPerRound int
	MaxClauseSize    int
	SleepMillis      int
	End              EndFlag

	perProducerDB map[int32]*database.Database
}

// NewHordeSat constructs a HordeSat strategy over the given initial
// producers and consumers.
func NewHordeSat(producers, consumers []Entity, filter *bloom.Filter, end EndFlag) *HordeSat {
	h := &HordeSat{
		Filter:           filter,
		LiteralsPerRound: DefaultLiteralsPerRound,
		MaxClauseSize:    database.DefaultMaxSize,
		SleepMillis:      DefaultSleepMillis,
		End:              end,
		perProducerDB:    make(map[int32]*database.Database),
	}
	h.producers = append(h.producers, producers...)
	h.consumers = append(h.consumers, consumers...)
	return h
}

func (h *HordeSat) dbFor(id int32) *database.Database {
	db, ok := h.perProducerDB[id]
	if !ok {
		db = database.New(h.MaxClauseSize, database.DefaultAdmissionCap)
		h.perProducerDB[id] = db
	}
	return db
}

// DoSharing runs one round: sync membership, then for every producer
// drain/filter/admit/select/broadcast.
func (h *HordeSat) DoSharing() bool {
	h.syncMembership()
	if ended(h.End) {
		return true
	}

	for _, p := range h.producers {
		if p.Kind() == KindReducer {
			continue
		}

		unfiltered := p.ExportClauses()
		h.Stats.ReceivedClauses += len(unfiltered)
		kept := filterDuplicates(h.Filter, unfiltered, &h.Stats)

		db := h.dbFor(p.ID())
		for _, c := range kept {
			db.AddClause(c)
		}

		selection := db.GiveSelection(h.LiteralsPerRound)
		used := 0
		for _, c := range selection {
			used += c.Size()
		}

		switch p.Kind() {
		case KindSolver:
			ratio := float64(used) / float64(h.LiteralsPerRound)
			if ratio < 0.75 {
				p.IncreaseClauseProduction()
			} else if ratio > 0.98 {
				p.DecreaseClauseProduction()
			}
		case KindGateway:
			// no feedback
		}

		h.Stats.SharedClauses += len(selection)
		broadcastTo(h.consumers, p.ID(), selection)
	}

	return ended(h.End)
}

func (h *HordeSat) SleepInterval() int { return h.SleepMillis }

func (h *HordeSat) PrintStats() Stats { return h.Stats }

var _ Strategy = (*HordeSat)(nil)
