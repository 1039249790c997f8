// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/clause"
)

// Strategy is what the Sharer runtime (package sharer) drives: one round
// per wake-up, reporting whether termination has been observed so the
// Sharer can stop scheduling it.
type Strategy interface {
	DoSharing() (done bool)
	SleepInterval() (millis int)
	PrintStats() Stats
}

// DefaultSaturationLimit is the Bloom filter's per-bit saturating-counter
// ceiling used by every local strategy.
const DefaultSaturationLimit = 12

// DefaultSleepMillis is the inter-round sharer sleep every strategy
// starts from; shr-sleep overrides it.
const DefaultSleepMillis = 500

// broadcastTo delivers clauses to every consumer whose id differs from
// originID: no self-feedback.
func broadcastTo(consumers []Entity, originID int32, clauses []*clause.Record) {
	if len(clauses) == 0 {
		return
	}
	for _, c := range consumers {
		if c.ID() == originID {
			continue
		}
		c.ImportClauses(clauses)
	}
}

// filterDuplicates runs each clause through filter: fresh clauses pass
// through unchanged; promotion events downgrade lbd in place (permitted
// while the strategy alone still holds the record) before being kept;
// plain repeats are dropped. Per-outcome stat counters are accumulated
// into stats.
func filterDuplicates(filter *bloom.Filter, clauses []*clause.Record, stats *Stats) []*clause.Record {
	if filter == nil {
		return clauses
	}
	kept := clauses[:0]
	for _, c := range clauses {
		count := filter.TestAndInsert(c.Checksum(), DefaultSaturationLimit)
		switch bloom.Classify(count, c.Lbd()) {
		case bloom.Share:
			kept = append(kept, c)
		case bloom.PromoteTier2:
			c.Downgrade(6)
			stats.PromotionTier2++
			kept = append(kept, c)
		case bloom.PromoteCore:
			c.Downgrade(2)
			stats.PromotionCore++
			kept = append(kept, c)
		default:
			stats.ReceivedDuplicas++
		}
	}
	return kept
}
