// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"sync"

	"github.com/painless-sat/painlessgo/clause"
)

// fakeEntity is a test double for Entity: a producer/consumer whose
// export queue and received clauses are both directly inspectable,
// standing in for a real solver or the gateway across the strategy
// tests in this package.
type fakeEntity struct {
	id   int32
	kind Kind

	mu        sync.Mutex
	pending   []*clause.Record
	toExport  []*clause.Record
	increases int
	decreases int
}

func newFakeEntity(id int32, kind Kind) *fakeEntity {
	return &fakeEntity{id: id, kind: kind}
}

func (e *fakeEntity) ID() int32 { return e.id }
func (e *fakeEntity) Kind() Kind { return e.kind }

func (e *fakeEntity) ImportClause(c *clause.Record) {
	e.mu.Lock()
	e.pending = append(e.pending, c)
	e.mu.Unlock()
}

func (e *fakeEntity) ImportClauses(cs []*clause.Record) {
	if len(cs) == 0 {
		return
	}
	e.mu.Lock()
	e.pending = append(e.pending, cs...)
	e.mu.Unlock()
}

func (e *fakeEntity) ExportClauses() []*clause.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.toExport
	e.toExport = nil
	return out
}

func (e *fakeEntity) SetLbdLimit(uint32) {}

func (e *fakeEntity) IncreaseClauseProduction() {
	e.mu.Lock()
	e.increases++
	e.mu.Unlock()
}

func (e *fakeEntity) DecreaseClauseProduction() {
	e.mu.Lock()
	e.decreases++
	e.mu.Unlock()
}

func (e *fakeEntity) setExport(cs []*clause.Record) {
	e.mu.Lock()
	e.toExport = cs
	e.mu.Unlock()
}

func (e *fakeEntity) pendingSnapshot() []*clause.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*clause.Record(nil), e.pending...)
}

func (e *fakeEntity) increaseCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.increases
}

var _ Entity = (*fakeEntity)(nil)
