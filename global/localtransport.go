// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global

import (
	"fmt"
	"sync"
)

// LocalNetwork is an in-process stand-in for an inter-node transport,
// backing one LocalTransport per simulated rank over Go channels and
// mutex-guarded rendezvous points. It exists so the ring, all-gather,
// and tree strategies can be exercised by tests (and by a single-process
// deployment with -c covering every "rank") without a real network
// layer.
type LocalNetwork struct {
	size int

	mu      sync.Mutex
	inboxes []map[srcTag][][]int32 // inboxes[dest][{src,tag}] -> FIFO of payloads

	cond *sync.Cond

	gather    *gatherRound
	broadcast *broadcastRound
}

// srcTag keys a destination's inbox by sender and tag, so Probe and
// Receive honour their src argument the way a point-to-point transport
// does — two goroutines receiving from different sources never race
// each other onto one message.
type srcTag struct{ src, tag int }

// NewLocalNetwork creates a network of n simulated ranks.
func NewLocalNetwork(n int) *LocalNetwork {
	net := &LocalNetwork{size: n}
	net.cond = sync.NewCond(&net.mu)
	net.inboxes = make([]map[srcTag][][]int32, n)
	for i := range net.inboxes {
		net.inboxes[i] = make(map[srcTag][][]int32)
	}
	return net
}

// Transport returns the LocalTransport view for the given rank.
func (n *LocalNetwork) Transport(rank int) *LocalTransport {
	return &LocalTransport{net: n, rank: rank}
}

// LocalTransport is one rank's handle onto a LocalNetwork.
type LocalTransport struct {
	net  *LocalNetwork
	rank int
}

func (t *LocalTransport) Rank() int { return t.rank }
func (t *LocalTransport) Size() int { return t.net.size }

type localRequest struct{ sent bool }

func (r *localRequest) TestSent() bool { return r.sent }

// Send delivers buf into dest's inbox immediately; the returned Request
// always reports already-sent, since an in-process channel send cannot
// meaningfully stay "in flight."
func (t *LocalTransport) Send(dest int, tag int, buf []int32) Request {
	cp := append([]int32(nil), buf...)
	key := srcTag{src: t.rank, tag: tag}
	n := t.net
	n.mu.Lock()
	n.inboxes[dest][key] = append(n.inboxes[dest][key], cp)
	n.mu.Unlock()
	n.cond.Broadcast()
	return &localRequest{sent: true}
}

// Probe reports whether a message tagged tag has arrived for this rank
// from src without consuming it.
func (t *LocalTransport) Probe(src int, tag int) bool {
	n := t.net
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.inboxes[t.rank][srcTag{src: src, tag: tag}]) > 0
}

// Receive blocks until a message tagged tag from src is available for
// this rank and returns it FIFO.
func (t *LocalTransport) Receive(src int, tag int) ([]int32, error) {
	key := srcTag{src: src, tag: tag}
	n := t.net
	n.mu.Lock()
	defer n.mu.Unlock()
	for len(n.inboxes[t.rank][key]) == 0 {
		n.cond.Wait()
	}
	q := n.inboxes[t.rank][key]
	buf := q[0]
	n.inboxes[t.rank][key] = q[1:]
	return buf, nil
}

// gatherRound is one in-flight AllGather rendezvous: every rank in the
// network must call AllGather exactly once per round (ranks not
// participating in any sub-communicator pass color < 0), so the
// coordinator knows the full group membership the way a real
// MPI_Comm_split does.
type gatherRound struct {
	arrived int
	colors  []int
	bufs    [][]int32
	done    chan struct{}
}

// AllGather implements the all-gather collective. Every rank must call
// it once per round; ranks that pass color < 0 sit out (receive a nil
// result) but still unblock the round for everyone else.
func (t *LocalTransport) AllGather(color int, buf []int32) ([][]int32, error) {
	n := t.net
	n.mu.Lock()
	if n.gather == nil {
		n.gather = &gatherRound{
			colors: make([]int, n.size),
			bufs:   make([][]int32, n.size),
			done:   make(chan struct{}),
		}
	}
	round := n.gather
	round.colors[t.rank] = color
	round.bufs[t.rank] = append([]int32(nil), buf...)
	round.arrived++
	if round.arrived == n.size {
		n.gather = nil
		close(round.done)
	}
	n.mu.Unlock()

	<-round.done

	if color < 0 {
		return nil, nil
	}
	var out [][]int32
	for r := 0; r < n.size; r++ {
		if round.colors[r] == color {
			out = append(out, round.bufs[r])
		}
	}
	return out, nil
}

// broadcastRound is one in-flight Broadcast rendezvous: every rank calls
// Broadcast with the same root each round; only root's buf is used.
type broadcastRound struct {
	arrived int
	value   []int32
	done    chan struct{}
}

// Broadcast implements the broadcast collective used by the termination
// sub-protocol (the tree strategy's root-to-leaves pass uses point-to-point
// Send with TagFinal instead). Every
// rank must call it once per round with the same root; non-root callers'
// buf argument is ignored.
func (t *LocalTransport) Broadcast(root int, buf []int32) ([]int32, error) {
	n := t.net
	n.mu.Lock()
	if n.broadcast == nil {
		n.broadcast = &broadcastRound{done: make(chan struct{})}
	}
	round := n.broadcast
	if t.rank == root {
		round.value = append([]int32(nil), buf...)
	}
	round.arrived++
	if round.arrived == n.size {
		n.broadcast = nil
		close(round.done)
	}
	n.mu.Unlock()

	<-round.done
	if round.value == nil {
		return nil, fmt.Errorf("global: broadcast root %d never supplied a value", root)
	}
	return round.value, nil
}

var _ Transport = (*LocalTransport)(nil)
