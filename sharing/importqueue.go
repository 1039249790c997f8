// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"github.com/painless-sat/painlessgo/clause"
)

// importQueue is a bounded, FAA-based multi-producer single-consumer
// queue of incoming clauses: many sharing strategies may call
// ImportClause concurrently on the same SolverEntity, but only that
// entity's own inner loop (DrainImports) ever consumes.
//
// The layout is SCQ-style, 2n physical slots for capacity n: producers
// claim a slot with a single FAA instead of a CAS retry loop, and a
// cycle counter per slot distinguishes "not yet written this lap" from
// "already consumed" without a separate occupancy bitmap. A bounded
// buffer here caps memory if a solver falls behind its strategies, and
// ImportClause never contends with DrainImports under a lock.
type importQueue struct {
	_        pad
	head     atomix.Uint64
	_        pad
	tail     atomix.Uint64
	_        pad
	buffer   []importSlot
	capacity uint64
	size     uint64
	mask     uint64
}

type importSlot struct {
	cycle atomix.Uint64
	data  *clause.Record
	_     padShort
}

type pad [64]byte
type padShort [64 - 8]byte

func roundToPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// newImportQueue creates a bounded import queue. capacity rounds up to
// the next power of two and is never smaller than minImportQueueCap.
func newImportQueue(capacity int) *importQueue {
	if capacity < minImportQueueCap {
		capacity = minImportQueueCap
	}
	n := roundToPow2(uint64(capacity))
	size := n * 2

	q := &importQueue{
		buffer:   make([]importSlot, size),
		capacity: n,
		size:     size,
		mask:     size - 1,
	}
	for i := uint64(0); i < size; i++ {
		q.buffer[i].cycle.StoreRelaxed(i / n)
	}
	return q
}

// minImportQueueCap bounds how small an import queue may be constructed,
// keeping a handful of strategy rounds' worth of clauses in flight even
// for a small -c portfolio.
const minImportQueueCap = 64

// push enqueues c, dropping it if the queue is full — a lagging solver
// must never block the strategy feeding it, it just misses the clauses
// it had no room for.
func (q *importQueue) push(c *clause.Record) {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		head := q.head.LoadRelaxed()
		if tail >= head+q.capacity {
			// Full: drop the clause rather than block the producer.
			return
		}

		myTail := q.tail.AddAcqRel(1) - 1
		slot := &q.buffer[myTail&q.mask]
		expectedCycle := myTail / q.capacity

		slotCycle := slot.cycle.LoadAcquire()
		if slotCycle == expectedCycle {
			slot.data = c
			slot.cycle.StoreRelease(expectedCycle + 1)
			return
		}
		if int64(slotCycle) < int64(expectedCycle) {
			return
		}
		sw.Once()
	}
}

// drain pops every currently available clause in FIFO order. Only the
// queue's single consumer may call this.
func (q *importQueue) drain() []*clause.Record {
	var out []*clause.Record
	for {
		head := q.head.LoadRelaxed()
		cycle := head / q.capacity
		slot := &q.buffer[head&q.mask]

		if slot.cycle.LoadAcquire() != cycle+1 {
			return out
		}

		out = append(out, slot.data)
		slot.data = nil
		nextEnqCycle := (head + q.size) / q.capacity
		slot.cycle.StoreRelease(nextEnqCycle)
		q.head.StoreRelaxed(head + 1)
	}
}
