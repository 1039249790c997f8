// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jenkins

import (
	"math/rand"
	"testing"
)

func TestHashLiteralsPermutationInvariant(t *testing.T) {
	lits := []int32{1, -2, 3, -4, 5}
	want := HashLiterals(lits)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		perm := append([]int32(nil), lits...)
		rng.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })
		if got := HashLiterals(perm); got != want {
			t.Fatalf("permutation %v: got %d, want %d", perm, got, want)
		}
	}
}

func TestHashLiteralsEmpty(t *testing.T) {
	if got := HashLiterals(nil); got != 0 {
		t.Fatalf("empty clause hash = %d, want 0", got)
	}
}

func TestLookup3Deterministic(t *testing.T) {
	if Lookup3(42) != Lookup3(42) {
		t.Fatal("Lookup3 is not deterministic")
	}
	if Lookup3(42) == Lookup3(43) {
		t.Fatal("Lookup3(42) == Lookup3(43), expected distinct keys to differ")
	}
}
