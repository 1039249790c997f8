// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package global_test

import (
	"reflect"
	"testing"

	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/global"
)

func TestSerializeMatchesSpecExample(t *testing.T) {
	clauses := []*clause.Record{
		clause.New([]int32{1, -2, 3}, 2, 0),
		clause.New([]int32{4, 5}, 1, 0),
	}
	buf, leftover := global.Serialize(clauses, 10)
	if len(leftover) != 0 {
		t.Fatalf("unexpected leftover: %v", leftover)
	}
	want := []int32{1, -2, 3, 2, 0, 4, 5, 1, 0, 0}
	if !reflect.DeepEqual(buf, want) {
		t.Fatalf("Serialize = %v, want %v", buf, want)
	}
}

func TestDeserializeRoundTrip(t *testing.T) {
	clauses := []*clause.Record{
		clause.New([]int32{1, -2, 3}, 2, 0),
		clause.New([]int32{4, 5}, 1, 0),
	}
	buf, _ := global.Serialize(clauses, 10)
	got := global.Deserialize(buf)
	if len(got) != 2 {
		t.Fatalf("Deserialize returned %d clauses, want 2", len(got))
	}
	if got[0].Size() != 3 || got[0].Lbd() != 2 {
		t.Fatalf("first clause = %+v", got[0])
	}
	if got[1].Size() != 2 || got[1].Lbd() != 1 {
		t.Fatalf("second clause = %+v", got[1])
	}
}

func TestSerializeReturnsLeftoverWhenOverCapacity(t *testing.T) {
	clauses := []*clause.Record{
		clause.New([]int32{1, 2, 3}, 1, 0), // needs 5 slots
		clause.New([]int32{4, 5, 6}, 1, 0), // needs 5 more, doesn't fit in capacity=6
	}
	buf, leftover := global.Serialize(clauses, 6)
	if len(leftover) != 1 {
		t.Fatalf("leftover = %d clauses, want 1", len(leftover))
	}
	if len(global.Deserialize(buf)) != 1 {
		t.Fatal("buffer should contain exactly the first clause")
	}
}
