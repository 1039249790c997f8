// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clause_test

import (
	"testing"

	"github.com/painless-sat/painlessgo/clause"
)

func TestChecksumPermutationInvariant(t *testing.T) {
	a := clause.New([]int32{1, -2, 3}, 2, 0)
	b := clause.New([]int32{3, 1, -2}, 2, 1)
	if a.Checksum() != b.Checksum() {
		t.Fatalf("checksums differ for same literal set in different order: %d vs %d", a.Checksum(), b.Checksum())
	}
}

func TestSizeMatchesLiterals(t *testing.T) {
	r := clause.New([]int32{1, 2, 3, 4}, 3, 0)
	if r.Size() != 4 {
		t.Fatalf("size = %d, want 4", r.Size())
	}
}

func TestDowngradeOnlyLowers(t *testing.T) {
	r := clause.New([]int32{1, 2}, 8, 0)
	r.Downgrade(6)
	if r.Lbd() != 6 {
		t.Fatalf("lbd = %d, want 6", r.Lbd())
	}
	r.Downgrade(9)
	if r.Lbd() != 6 {
		t.Fatalf("downgrade must not raise lbd, got %d", r.Lbd())
	}
}

func TestLiteralsNotAliasedWithInput(t *testing.T) {
	lits := []int32{1, 2, 3}
	r := clause.New(lits, 1, 0)
	lits[0] = 99
	if r.Literals()[0] == 99 {
		t.Fatal("Record aliases caller's literal slice")
	}
}
