// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package global implements the inter-node sharing strategies: ring,
// all-gather, and tree-aggregated ("Mallob") topologies over a pluggable
// transport, the fixed-capacity wire format shared by all three, and the
// termination sub-protocol every strategy relies on to synchronize a
// SAT/UNSAT result across ranks.
//
// The strategies never assume shared memory between ranks: everything
// crosses process boundaries through the Transport interface of
// transport.go, so the same code runs over MPI bindings, gRPC, raw
// sockets, or the in-process LocalNetwork used by tests and single-host
// deployments.
package global

import "github.com/painless-sat/painlessgo/clause"

// Serialize packs clauses into a flat int32 buffer of exactly capacity
// length:
//
//	clause := lit1 lit2 ... litk lbd 0
//	buffer := clause* 0*
//
// Clauses are packed in order until one would not fit in the remaining
// capacity (at least size+2 ints: the literals, the lbd, and the
// terminating zero); that clause and everything after it is returned as
// leftover, for the caller to requeue into its toSend database and retry
// next round.
func Serialize(clauses []*clause.Record, capacity int) (buf []int32, leftover []*clause.Record) {
	buf = make([]int32, capacity)
	pos := 0
	for i, c := range clauses {
		need := c.Size() + 2 // literals + lbd + terminating zero
		if pos+need > capacity {
			leftover = clauses[i:]
			break
		}
		for _, lit := range c.Literals() {
			buf[pos] = lit
			pos++
		}
		buf[pos] = int32(c.Lbd())
		pos++
		buf[pos] = 0
		pos++
	}
	// Remaining positions are already zero (Go zero-value): the tail
	// padding.
	return buf, leftover
}

// Deserialize splits buf on 0 and reconstructs clause records: the last
// integer before a separating 0 is the lbd, and
// everything before that is the literal set. origin marks every
// reconstructed clause as externally produced, since by definition a
// deserialized clause arrived over the network.
func Deserialize(buf []int32) []*clause.Record {
	var out []*clause.Record
	start := 0
	for i, v := range buf {
		if v != 0 {
			continue
		}
		if i == start {
			// Leading/consecutive zero: either trailing padding or an
			// empty run between two separators. Either way, nothing to
			// decode; advance past it.
			start = i + 1
			continue
		}
		fields := buf[start:i]
		lits := append([]int32(nil), fields[:len(fields)-1]...)
		lbd := uint32(fields[len(fields)-1])
		out = append(out, clause.New(lits, lbd, clause.External))
		start = i + 1
	}
	return out
}
