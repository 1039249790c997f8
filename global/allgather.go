// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global

import (
	"github.com/rs/zerolog"

	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/gateway"
)

// AllGather is the all-gather global strategy: ranks with something to
// share join a sub-communicator (color = hasClauses)
// and exchange fixed-capacity buffers in one collective; ranks with
// nothing to share sit the round out. A single Bloom filter does double
// duty — it keeps an already-shared clause out of a future outbound
// batch, and keeps an already-received one (including a rank's own
// batch reflected back by the collective) out of the received database.
type AllGather struct {
	transport Transport
	gateway   *gateway.Gateway
	term      *Terminator
	log       zerolog.Logger

	Budget      int
	SleepMillis int
	filter      *bloom.Filter
}

// NewAllGather constructs an AllGather strategy.
func NewAllGather(transport Transport, gw *gateway.Gateway, tm *Terminator, budget int, log zerolog.Logger) *AllGather {
	if budget <= 0 {
		budget = DefaultGlobalBudget
	}
	return &AllGather{
		transport:   transport,
		gateway:     gw,
		term:        tm,
		log:         log,
		Budget:      budget,
		SleepMillis: defaultSleepMillis,
		filter:      bloom.New(bloom.DefaultNumBits),
	}
}

func (a *AllGather) DoSharing() bool {
	done, err := a.term.Round()
	if err != nil {
		a.log.Error().Err(err).Msg("allgather: termination round failed")
	}
	if done {
		return true
	}

	fresh := a.gateway.GetClausesToSend(a.Budget)
	var toSend []*clause.Record
	for _, c := range fresh {
		if a.filter.TestAndInsert(c.Checksum(), dedupSaturation) == 1 {
			toSend = append(toSend, c)
		}
	}

	color := -1
	if len(toSend) > 0 {
		color = 1
	}

	buf, leftover := Serialize(toSend, a.Budget)
	a.gateway.Requeue(leftover)

	peerBufs, err := a.transport.AllGather(color, buf)
	if err != nil {
		a.log.Error().Err(err).Msg("allgather: collective failed")
		return false
	}
	if color < 0 {
		return false
	}

	for _, peerBuf := range peerBufs {
		for _, c := range Deserialize(peerBuf) {
			if a.filter.TestAndInsert(c.Checksum(), dedupSaturation) == 1 {
				a.gateway.AddReceivedClauses([]*clause.Record{c})
			}
		}
	}
	return false
}

func (a *AllGather) SleepInterval() int { return a.SleepMillis }
