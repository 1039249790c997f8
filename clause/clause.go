// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clause defines the learned clause record shared between solver
// producers, sharing strategies, and the global gateway.
package clause

import "github.com/painless-sat/painlessgo/internal/jenkins"

// Origin identifies the solver that produced a clause, or the sentinel
// External value for clauses that arrived from outside the local
// portfolio (e.g. over the network).
type Origin int32

// External marks a clause as not produced by a local solver instance.
const External Origin = -1

// Record is an immutable-after-construction learned clause.
//
// Once a Record is observable by any consumer its Literals, Size, Origin
// and Checksum never change. Lbd may be downgraded exactly once, by a
// promotion event, and only while the record is held exclusively by the
// local sharing strategy performing the promotion — i.e. before the
// record is handed to any consumer. Record carries no internal lock: the
// caller is responsible for the "held exclusively" discipline.
type Record struct {
	literals []int32
	lbd      uint32
	origin   Origin
	checksum uint64
}

// New builds a Record from a literal set and quality score. literals must
// contain no duplicates and no complementary pair; New does not validate
// this, and neither does database.Database's admission check, which
// looks only at size and the admission cap.
func New(literals []int32, lbd uint32, origin Origin) *Record {
	lits := append([]int32(nil), literals...)
	return &Record{
		literals: lits,
		lbd:      lbd,
		origin:   origin,
		checksum: jenkins.HashLiterals(lits),
	}
}

// Literals returns the clause's literal set. The returned slice must not
// be mutated by callers.
func (r *Record) Literals() []int32 { return r.literals }

// Size returns the literal count.
func (r *Record) Size() int { return len(r.literals) }

// Lbd returns the clause's current literals-blocks-distance glue score.
func (r *Record) Lbd() uint32 { return r.lbd }

// Origin returns the id of the producing solver, or External.
func (r *Record) Origin() Origin { return r.origin }

// Checksum returns the 64-bit commutative fingerprint of the literal set.
// Two clauses sharing the same literals in any order share a Checksum.
func (r *Record) Checksum() uint64 { return r.checksum }

// Downgrade reduces Lbd as part of a promotion event (see bloom.Filter).
// The caller must hold exclusive access to r — it must not yet have been
// handed to any consumer.
func (r *Record) Downgrade(lbd uint32) {
	if lbd < r.lbd {
		r.lbd = lbd
	}
}

// Clone returns a new Record built from the given literals, lbd and
// origin (it is New under another name), used by the strengthening
// strategy to replace a clause with a strictly shorter, reduced literal
// set that keeps the original's lbd and origin.
func Clone(literals []int32, lbd uint32, origin Origin) *Record {
	return New(literals, lbd, origin)
}
