// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global

import (
	"github.com/painless-sat/painlessgo/term"
)

// Terminator implements the termination sub-protocol: a single
// distinguished root rank collects each rank's result
// over a dedicated END tag, then broadcasts a 32-bit value whose low 16
// bits are the result code and whose high 16 bits are the winning rank.
// Every rank, root included, calls Round once per global-strategy round;
// any rank observing a non-zero broadcast declares the outcome on ctx
// and reports done so its Sharer exits.
type Terminator struct {
	transport Transport
	ctx       *term.Context
	root      int

	localResult term.Result
	sentToRoot  bool
}

// NewTerminator constructs a Terminator for this process's rank, talking
// over transport, declaring outcomes onto ctx.
func NewTerminator(transport Transport, ctx *term.Context, root int) *Terminator {
	return &Terminator{transport: transport, ctx: ctx, root: root}
}

// ReportLocal records that a solver on this rank has found result. It
// does not by itself end the process — only the root's broadcast does
// that — so Round must still be called to propagate it.
func (tm *Terminator) ReportLocal(result term.Result) {
	if tm.localResult == term.Unknown {
		tm.localResult = result
	}
}

func pack(result term.Result, winner int) int32 {
	return int32(uint32(result)&0xffff | (uint32(uint16(winner)) << 16))
}

func unpack(v int32) (result term.Result, winner int32) {
	u := uint32(v)
	return term.Result(u & 0xffff), int32(int16(u >> 16))
}

// Round runs one termination round: non-root ranks forward a pending
// local result to root once; root observes its own result or polls its
// non-root peers' END messages; every rank then participates in the
// broadcast and, on a non-zero value, declares the outcome and reports
// done.
func (tm *Terminator) Round() (done bool, err error) {
	rank := tm.transport.Rank()

	if rank != tm.root {
		if tm.localResult != term.Unknown && !tm.sentToRoot {
			tm.transport.Send(tm.root, TagEnd, []int32{pack(tm.localResult, rank)})
			tm.sentToRoot = true
		}
	}

	var value int32
	if rank == tm.root {
		if tm.localResult != term.Unknown {
			value = pack(tm.localResult, rank)
		} else {
			for r := 0; r < tm.transport.Size(); r++ {
				if r == tm.root || !tm.transport.Probe(r, TagEnd) {
					continue
				}
				buf, rerr := tm.transport.Receive(r, TagEnd)
				if rerr != nil {
					return false, rerr
				}
				if value == 0 && len(buf) > 0 {
					value = buf[0]
				}
			}
		}
	}

	broadcast, err := tm.transport.Broadcast(tm.root, []int32{value})
	if err != nil {
		return false, err
	}
	if len(broadcast) == 0 || broadcast[0] == 0 {
		return false, nil
	}

	result, winner := unpack(broadcast[0])
	tm.ctx.Declare(result, winner, nil)
	return true, nil
}
