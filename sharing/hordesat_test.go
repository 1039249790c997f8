// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"testing"

	"github.com/painless-sat/painlessgo/clause"
)

func TestHordeSatDoesNotFeedBackToOrigin(t *testing.T) {
	p0 := newFakeEntity(0, KindSolver)
	p1 := newFakeEntity(1, KindSolver)
	p0.setExport([]*clause.Record{clause.New([]int32{1, 2, 3}, 2, 0)})

	h := NewHordeSat([]Entity{p0, p1}, []Entity{p0, p1}, nil, nil)
	if done := h.DoSharing(); done {
		t.Fatal("DoSharing reported done with no EndFlag set")
	}

	if got := p0.pendingSnapshot(); len(got) != 0 {
		t.Fatalf("origin received its own clause back: %v", got)
	}
	if got := p1.pendingSnapshot(); len(got) != 1 {
		t.Fatalf("other consumer got %d clauses, want 1", len(got))
	}
}

func TestHordeSatIncreasesProductionWhenUnderfilled(t *testing.T) {
	p0 := newFakeEntity(0, KindSolver)
	p1 := newFakeEntity(1, KindSolver)

	h := NewHordeSat([]Entity{p0, p1}, []Entity{p0, p1}, nil, nil)
	h.DoSharing()

	if p0.increaseCount() != 1 {
		t.Fatalf("producer with an empty database was not given a production increase")
	}
}

func TestHordeSatSkipsReducerProducers(t *testing.T) {
	reducer := newFakeEntity(2, KindReducer)
	reducer.setExport([]*clause.Record{clause.New([]int32{1}, 1, 2)})
	consumer := newFakeEntity(0, KindSolver)

	h := NewHordeSat([]Entity{reducer}, []Entity{consumer}, nil, nil)
	h.DoSharing()

	if got := consumer.pendingSnapshot(); len(got) != 0 {
		t.Fatalf("reducer's clauses were shared, want them skipped entirely")
	}
}
