// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bloom implements the approximate duplicate-clause detector: a
// fixed-size bit array plus an auxiliary saturating-counter map, hashed
// with the lookup3-derived checksum from package clause.
//
// The bit set is performed via compare-and-swap rather than a plain
// read-modify-write, so concurrent inserters can never lose each other's
// bits: the filter may report false positives but never a false
// negative.
package bloom

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// DefaultNumBits is the default bit array size (2^20 bits) used by
// local sharing strategies.
const DefaultNumBits = 1 << 20

const bitsPerWord = 64

// Filter is an approximate set over clause checksums. It never produces a
// false negative: once testAndInsert has observed a checksum's bit set,
// Contains for that checksum (or any checksum colliding into the same
// bit) always reports true.
type Filter struct {
	numBits uint64
	words   []atomix.Uint64

	mu       sync.Mutex
	counters map[uint64]uint8 // bit index -> saturating count
}

// New creates a Filter with the given bit-array size, rounded down to a
// multiple of 64 bits (minimum one word).
func New(numBits uint64) *Filter {
	if numBits < bitsPerWord {
		numBits = bitsPerWord
	}
	words := numBits / bitsPerWord
	return &Filter{
		numBits:  words * bitsPerWord,
		words:    make([]atomix.Uint64, words),
		counters: make(map[uint64]uint8),
	}
}

func (f *Filter) bitIndex(checksum uint64) uint64 {
	return checksum % f.numBits
}

func (f *Filter) test(bit uint64) bool {
	word := bit / bitsPerWord
	mask := uint64(1) << (bit % bitsPerWord)
	return f.words[word].Load()&mask != 0
}

// set atomically ORs the bit into its word via a CAS retry loop.
func (f *Filter) set(bit uint64) {
	word := bit / bitsPerWord
	mask := uint64(1) << (bit % bitsPerWord)
	for {
		old := f.words[word].Load()
		if old&mask != 0 {
			return
		}
		if f.words[word].CompareAndSwapAcqRel(old, old|mask) {
			return
		}
	}
}

// TestAndInsert records checksum, returning the new saturating count for
// its bit: 1 the first time a bit is set, incrementing (capped at
// saturationLimit) on every subsequent collision into the same bit —
// whether from the same clause seen again or a genuine hash collision.
func (f *Filter) TestAndInsert(checksum uint64, saturationLimit uint8) uint8 {
	bit := f.bitIndex(checksum)
	if !f.test(bit) {
		f.set(bit)
		return 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.counters[bit]
	if !ok {
		count = 2
	} else if count < saturationLimit {
		count++
	} else {
		count = saturationLimit
	}
	f.counters[bit] = count
	return count
}

// Contains reports whether the single bit selected by hash(literals) is
// set, i.e. whether the clause (or a colliding one) has previously been
// inserted. False positives are possible; false negatives are not.
func (f *Filter) Contains(literals []int32, hash func([]int32) uint64) bool {
	return f.ContainsChecksum(hash(literals))
}

// ContainsChecksum is Contains for a caller that already has the clause's
// checksum (clause.Record.Checksum), avoiding a redundant hash pass —
// used by the tree global strategy to test its "previously broadcast"
// filter without side-effecting the saturating counter the way
// TestAndInsert would.
func (f *Filter) ContainsChecksum(checksum uint64) bool {
	return f.test(f.bitIndex(checksum))
}

// DuplicatePolicy classifies a TestAndInsert count and a clause's
// current lbd into a sharing decision (the canonical limits used by
// local strategies: saturationLimit=12, tier-2 at count==6, core at
// count==11).
type DuplicatePolicy int

const (
	// Share indicates the clause should be broadcast as-is.
	Share DuplicatePolicy = iota
	// PromoteTier2 indicates the clause should be downgraded to lbd=6 and shared.
	PromoteTier2
	// PromoteCore indicates the clause should be downgraded to lbd=2 and shared.
	PromoteCore
	// Skip indicates the clause is a plain repeat and should be dropped.
	Skip
)

// Classify applies the local-strategy duplicate policy: count==1 shares
// a fresh clause; count==6 with lbd>6 promotes to tier-2; count==11 with
// lbd>2 promotes to core; any other repeat is skipped.
func Classify(count uint8, lbd uint32) DuplicatePolicy {
	switch {
	case count == 1:
		return Share
	case count == 6 && lbd > 6:
		return PromoteTier2
	case count == 11 && lbd > 2:
		return PromoteCore
	default:
		return Skip
	}
}
