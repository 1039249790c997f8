// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/gateway"
)

// Tree is the tree-aggregated ("Mallob") global strategy: a binary heap
// topology (parent = (rank-1)/2, children =
// 2*rank+1, 2*rank+2) where each inner node merges its own buffer with
// its children's via a k-way merge on (size asc, lbd asc), subject to a
// budget that grows sub-linearly in the number of leaves aggregated so
// far, forwards the merge to its parent, and — once the root's merge
// reaches it on the way back down — rebroadcasts an identical,
// deduplicated pool to every node.
type Tree struct {
	transport Transport
	gateway   *gateway.Gateway
	term      *Terminator
	log       zerolog.Logger

	BaseBudget  int // per-leaf literal budget the growth factor scales from
	MaxClsSize  int // clauses longer than this are dropped from the merge
	SleepMillis int

	parent                int // -1 for the root
	leftChild, rightChild int // -1 when absent

	finalFilter *bloom.Filter // clauses already delivered by a prior final broadcast
}

// NewTree constructs a Tree strategy for this process's rank within an
// n-rank binary heap.
func NewTree(transport Transport, gw *gateway.Gateway, tm *Terminator, baseBudget, maxClsSize int, log zerolog.Logger) *Tree {
	if baseBudget <= 0 {
		baseBudget = DefaultGlobalBudget
	}
	rank := transport.Rank()
	n := transport.Size()
	t := &Tree{
		transport:   transport,
		gateway:     gw,
		term:        tm,
		log:         log,
		BaseBudget:  baseBudget,
		MaxClsSize:  maxClsSize,
		SleepMillis: defaultSleepMillis,
		parent:      -1,
		leftChild:   -1,
		rightChild:  -1,
		finalFilter: bloom.New(bloom.DefaultNumBits),
	}
	if rank != 0 {
		t.parent = (rank - 1) / 2
	}
	if lc := 2*rank + 1; lc < n {
		t.leftChild = lc
	}
	if rc := 2*rank + 2; rc < n {
		t.rightChild = rc
	}
	return t
}

// wireCapacity returns the exact int32 slot count a clause set occupies
// on the wire (size literals + lbd + terminating zero per clause), so the
// merged selection — whose literal budget grows past BaseBudget as leaf
// counts aggregate — is never truncated by a too-small buffer.
func wireCapacity(clauses []*clause.Record) int {
	n := 1
	for _, c := range clauses {
		n += c.Size() + 2
	}
	return n
}

func encodeWithLeafCount(clauses []*clause.Record, leafCount int) []int32 {
	buf, _ := Serialize(clauses, wireCapacity(clauses))
	return append(buf, int32(leafCount))
}

func decodeWithLeafCount(buf []int32) (clauses []*clause.Record, leafCount int) {
	if len(buf) == 0 {
		return nil, 0
	}
	leafCount = int(buf[len(buf)-1])
	clauses = Deserialize(buf[:len(buf)-1])
	return clauses, leafCount
}

// mergeBudget is the sub-linear growth curve for the merge's literal
// budget: aggregated * 0.875^log2(aggregated) * baseSize.
func mergeBudget(aggregated, baseSize int) int {
	if aggregated <= 1 {
		return baseSize
	}
	factor := math.Pow(0.875, math.Log2(float64(aggregated)))
	return int(float64(aggregated) * factor * float64(baseSize))
}

func (t *Tree) DoSharing() bool {
	done, err := t.term.Round()
	if err != nil {
		t.log.Error().Err(err).Msg("tree: termination round failed")
	}
	if done {
		return true
	}

	var leftClauses, rightClauses []*clause.Record
	leftLeaves, rightLeaves := 0, 0
	if t.leftChild >= 0 {
		buf, rerr := t.transport.Receive(t.leftChild, TagClauses)
		if rerr != nil {
			t.log.Error().Err(rerr).Msg("tree: receive from left child failed")
		} else {
			leftClauses, leftLeaves = decodeWithLeafCount(buf)
		}
	}
	if t.rightChild >= 0 {
		buf, rerr := t.transport.Receive(t.rightChild, TagClauses)
		if rerr != nil {
			t.log.Error().Err(rerr).Msg("tree: receive from right child failed")
		} else {
			rightClauses, rightLeaves = decodeWithLeafCount(buf)
		}
	}

	own := t.gateway.GetClausesToSend(t.BaseBudget)
	aggregated := 1 + leftLeaves + rightLeaves

	merged := make([]*clause.Record, 0, len(own)+len(leftClauses)+len(rightClauses))
	merged = append(merged, own...)
	merged = append(merged, leftClauses...)
	merged = append(merged, rightClauses...)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Size() != merged[j].Size() {
			return merged[i].Size() < merged[j].Size()
		}
		return merged[i].Lbd() < merged[j].Lbd()
	})

	budget := mergeBudget(aggregated, t.BaseBudget)
	seen := make(map[uint64]bool, len(merged))
	selected := make([]*clause.Record, 0, len(merged))
	used := 0
	for _, c := range merged {
		if t.MaxClsSize > 0 && c.Size() > t.MaxClsSize {
			continue
		}
		if seen[c.Checksum()] || t.finalFilter.ContainsChecksum(c.Checksum()) {
			continue
		}
		if used+c.Size() > budget {
			break
		}
		seen[c.Checksum()] = true
		selected = append(selected, c)
		used += c.Size()
	}

	if t.parent >= 0 {
		t.transport.Send(t.parent, TagClauses, encodeWithLeafCount(selected, aggregated))

		finalBuf, rerr := t.transport.Receive(t.parent, TagFinal)
		if rerr != nil {
			t.log.Error().Err(rerr).Msg("tree: receive final broadcast failed")
			return false
		}
		final := Deserialize(finalBuf)
		t.forwardFinal(finalBuf)
		t.absorbFinal(final)
		return false
	}

	// Root: selected is itself the fully aggregated, deduplicated pool.
	finalBuf, _ := Serialize(selected, wireCapacity(selected))
	t.forwardFinal(finalBuf)
	t.absorbFinal(selected)
	return false
}

func (t *Tree) forwardFinal(buf []int32) {
	if t.leftChild >= 0 {
		t.transport.Send(t.leftChild, TagFinal, buf)
	}
	if t.rightChild >= 0 {
		t.transport.Send(t.rightChild, TagFinal, buf)
	}
}

func (t *Tree) absorbFinal(clauses []*clause.Record) {
	fresh := make([]*clause.Record, 0, len(clauses))
	for _, c := range clauses {
		if t.finalFilter.TestAndInsert(c.Checksum(), dedupSaturation) == 1 {
			fresh = append(fresh, c)
		}
	}
	t.gateway.AddReceivedClauses(fresh)
}

func (t *Tree) SleepInterval() int { return t.SleepMillis }
