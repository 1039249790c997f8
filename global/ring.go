// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/gateway"
)

// dedupSaturation bounds the Bloom filter's saturating counter for the
// ring/all-gather/tree strategies' duplicate suppression; these strategies
// only ever ask "have I forwarded this before" (count == 1), so the cap
// only matters for bounding memory, not for the lbd-promotion tiers the
// local strategies use.
const dedupSaturation = 8

// defaultSleepMillis is the inter-round sharer sleep the global
// strategies start from; shr-sleep overrides it.
const defaultSleepMillis = 500

// Ring is the ring-topology global strategy: each rank forwards clauses
// to its neighbours left = (rank+1) mod N and right =
// (rank-1+N) mod N, propagating every clause around the ring in O(N)
// rounds. A Bloom filter suppresses re-forwarding a clause once it has
// made a full circuit. A fresh batch is only posted to a neighbour once
// the previous send to it completed.
type Ring struct {
	transport Transport
	gateway   *gateway.Gateway
	term      *Terminator
	log       zerolog.Logger

	Budget      int // gshr-lit
	SleepMillis int
	neighbours  []int
	sendReqs    []Request

	filter         *bloom.Filter
	pendingForward []*clause.Record
}

// NewRing constructs a Ring strategy. Budget defaults to
// DefaultGlobalBudget if <= 0.
func NewRing(transport Transport, gw *gateway.Gateway, tm *Terminator, budget int, log zerolog.Logger) *Ring {
	if budget <= 0 {
		budget = DefaultGlobalBudget
	}
	n := transport.Size()
	rank := transport.Rank()
	left := (rank + 1) % n
	right := (rank - 1 + n) % n
	neighbours := []int{left}
	if right != left {
		neighbours = append(neighbours, right)
	}
	r := &Ring{
		transport:   transport,
		gateway:     gw,
		term:        tm,
		log:         log,
		Budget:      budget,
		SleepMillis: defaultSleepMillis,
		neighbours:  neighbours,
		sendReqs:    make([]Request, len(neighbours)),
		filter:      bloom.New(bloom.DefaultNumBits),
	}
	// Bootstrap: a zero-length send to each neighbour so the first
	// round's TestSent check is meaningful.
	for i, nb := range neighbours {
		r.sendReqs[i] = transport.Send(nb, TagClauses, nil)
	}
	return r
}

// DefaultGlobalBudget is gshr-lit's default: 1500 literals per CPU. Since
// the core has no notion of "number of CPUs" of its own, callers wire
// the actual value in from config; this is the single-CPU fallback.
const DefaultGlobalBudget = 1500

func (r *Ring) DoSharing() bool {
	done, err := r.term.Round()
	if err != nil {
		r.log.Error().Err(err).Msg("ring: termination round failed")
	}
	if done {
		return true
	}

	fresh := r.gateway.GetClausesToSend(r.Budget)
	for _, c := range fresh {
		r.filter.TestAndInsert(c.Checksum(), dedupSaturation)
	}
	r.pendingForward = append(r.pendingForward, fresh...)

	buf, leftover := Serialize(r.pendingForward, r.Budget)
	sent := false
	for i, nb := range r.neighbours {
		if r.sendReqs[i] != nil && !r.sendReqs[i].TestSent() {
			continue
		}
		r.sendReqs[i] = r.transport.Send(nb, TagClauses, buf)
		sent = true
	}
	if sent {
		r.pendingForward = leftover
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, neighbour := range r.neighbours {
		neighbour := neighbour
		g.Go(func() error {
			for r.transport.Probe(neighbour, TagClauses) {
				buf, rerr := r.transport.Receive(neighbour, TagClauses)
				if rerr != nil {
					r.log.Error().Err(rerr).Int("neighbour", neighbour).Msg("ring: receive failed")
					return nil
				}
				var incoming []*clause.Record
				for _, c := range Deserialize(buf) {
					if r.filter.TestAndInsert(c.Checksum(), dedupSaturation) == 1 {
						incoming = append(incoming, c)
					}
				}
				if len(incoming) == 0 {
					continue
				}
				mu.Lock()
				r.pendingForward = append(r.pendingForward, incoming...)
				mu.Unlock()
				r.gateway.AddReceivedClauses(incoming)
			}
			return nil
		})
	}
	g.Wait()

	return false
}

func (r *Ring) SleepInterval() int { return r.SleepMillis }
