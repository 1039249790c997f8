// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gateway_test

import (
	"testing"

	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/database"
	"github.com/painless-sat/painlessgo/gateway"
)

func TestImportClauseDropsAboveMaxVar(t *testing.T) {
	g := gateway.New(1, database.DefaultMaxSize, database.DefaultAdmissionCap, 10)

	g.ImportClause(clause.New([]int32{1, -2, 11}, 2, 0)) // var 11 > maxVar
	g.ImportClause(clause.New([]int32{1, -2, 9}, 2, 0))  // var 9 <= maxVar

	sent := g.GetClausesToSend(1000)
	if len(sent) != 1 {
		t.Fatalf("GetClausesToSend returned %d clauses, want 1", len(sent))
	}
	if sent[0].Size() != 3 {
		t.Fatalf("unexpected clause in toSend: %v", sent[0].Literals())
	}
}

func TestMaxVarZeroDisablesFilter(t *testing.T) {
	g := gateway.New(1, database.DefaultMaxSize, database.DefaultAdmissionCap, 0)
	g.ImportClause(clause.New([]int32{1, -2, 100000}, 2, 0))
	if len(g.GetClausesToSend(1000)) != 1 {
		t.Fatal("maxVar=0 must not filter any clause")
	}
}

func TestReceivedRoundTripsToExport(t *testing.T) {
	g := gateway.New(1, database.DefaultMaxSize, database.DefaultAdmissionCap, 0)
	c := clause.New([]int32{1, 2}, 4, clause.External)
	g.AddReceivedClauses([]*clause.Record{c})

	out := g.ExportClauses()
	if len(out) != 1 || out[0] != c {
		t.Fatalf("ExportClauses = %v, want [%v]", out, c)
	}
}

func TestRequeueReturnsClauseToSend(t *testing.T) {
	g := gateway.New(1, database.DefaultMaxSize, database.DefaultAdmissionCap, 0)
	c := clause.New([]int32{1, 2, 3}, 2, 0)
	g.Requeue([]*clause.Record{c})

	if got := g.GetClausesToSend(1000); len(got) != 1 {
		t.Fatalf("GetClausesToSend after Requeue = %d clauses, want 1", len(got))
	}
}
