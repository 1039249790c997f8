// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bloom_test

import (
	"testing"

	"github.com/painless-sat/painlessgo/bloom"
)

func TestFirstInsertReturnsOne(t *testing.T) {
	f := bloom.New(bloom.DefaultNumBits)
	if got := f.TestAndInsert(42, 12); got != 1 {
		t.Fatalf("first TestAndInsert = %d, want 1", got)
	}
}

func TestDuplicatePromotionSequence(t *testing.T) {
	f := bloom.New(1 << 10) // small table to guarantee the same bucket is hit
	const checksum = 7

	counts := make([]uint8, 0, 6)
	for i := 0; i < 6; i++ {
		counts = append(counts, f.TestAndInsert(checksum, 12))
	}
	if counts[0] != 1 {
		t.Fatalf("1st insert = %d, want 1", counts[0])
	}
	if counts[5] != 6 {
		t.Fatalf("6th insert = %d, want 6", counts[5])
	}

	policy := bloom.Classify(counts[0], 8)
	if policy != bloom.Share {
		t.Fatalf("policy for 1st insert = %v, want Share", policy)
	}
	policy = bloom.Classify(counts[5], 8)
	if policy != bloom.PromoteTier2 {
		t.Fatalf("policy for 6th insert (lbd=8) = %v, want PromoteTier2", policy)
	}
	for _, c := range counts[1:5] {
		if bloom.Classify(c, 8) != bloom.Skip {
			t.Fatalf("policy for intermediate count %d = %v, want Skip", c, bloom.Classify(c, 8))
		}
	}
}

func TestSaturationCap(t *testing.T) {
	f := bloom.New(1 << 10)
	const checksum = 99
	var last uint8
	for i := 0; i < 30; i++ {
		last = f.TestAndInsert(checksum, 12)
	}
	if last != 12 {
		t.Fatalf("saturated count = %d, want capped at 12", last)
	}
}

func TestNeverFalseNegative(t *testing.T) {
	f := bloom.New(bloom.DefaultNumBits)
	hash := func(lits []int32) uint64 {
		var h uint64
		for _, l := range lits {
			h = h*31 + uint64(l)
		}
		return h
	}
	lits := []int32{1, 2, 3}
	f.TestAndInsert(hash(lits), 12)
	if !f.Contains(lits, hash) {
		t.Fatal("Contains must report true for a previously inserted clause")
	}
}
