// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package database implements the size-bucketed clause database: a fixed
// length array of clause queues indexed by clause length, used to score,
// budget, and hand out learned clauses.
package database

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"github.com/painless-sat/painlessgo/clause"
	"github.com/painless-sat/painlessgo/queue"
)

// DefaultMaxSize is the default clause length ceiling; longer clauses
// are refused at admission.
const DefaultMaxSize = 50

// DefaultAdmissionCap is the default per-bucket literal-weighted
// admission ceiling: a bucket refuses a clause once
// (bucketLen+1)*clauseSize would exceed it. Exposed as a constructor
// argument since it is a throughput-vs-memory knob.
const DefaultAdmissionCap = 10000

type bucket struct {
	buf        *queue.Queue[*clause.Record]
	cumulative atomix.Int64 // monotonically non-decreasing admitted count
}

// Database is a fixed-length array of clause queues, bucket i holding
// clauses of size i+1. It is not internally locked: callers must ensure
// only one strategy performs selection against a given Database at a
// time (concurrent producers enqueueing via AddClause is safe — that is
// the lock-free queue's job — but concurrent GiveSelection calls racing
// each other are not supported).
type Database struct {
	buckets      []bucket
	maxSize      int
	admissionCap int
}

// New creates a Database with buckets for clause sizes 1..maxSize.
func New(maxSize, admissionCap int) *Database {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if admissionCap <= 0 {
		admissionCap = DefaultAdmissionCap
	}
	d := &Database{
		buckets:      make([]bucket, maxSize),
		maxSize:      maxSize,
		admissionCap: admissionCap,
	}
	for i := range d.buckets {
		d.buckets[i].buf = queue.New[*clause.Record]()
	}
	return d
}

// AddClause admits c to its size bucket. It is refused (returns false,
// clause dropped) if c is empty, oversized, or admission would push the
// bucket's literal-weighted total above the admission cap.
func (d *Database) AddClause(c *clause.Record) bool {
	size := c.Size()
	if size == 0 || size > d.maxSize {
		return false
	}
	b := &d.buckets[size-1]
	if (b.buf.Size()+1)*size > d.admissionCap {
		return false
	}
	b.buf.Enqueue(c)
	b.cumulative.Add(1)
	return true
}

// GiveSelection drains clauses from smallest to largest bucket into a
// selection bounded by totalSizeInLiterals and returns the selected
// clauses; callers sum their sizes for the literals used. Whole buckets
// are drained when they fit
// entirely within the remaining budget; otherwise floor(remaining/size)
// clauses are drained one at a time.
func (d *Database) GiveSelection(totalSizeInLiterals int) []*clause.Record {
	var out []*clause.Record
	used := 0
	for i := range d.buckets {
		size := i + 1
		remaining := totalSizeInLiterals - used
		if remaining < size {
			return out
		}
		b := &d.buckets[i]
		n := b.buf.Size()
		if n == 0 {
			continue
		}
		if remaining >= size*n {
			out = b.buf.DrainInto(out)
			used += size * n
			continue
		}
		take := remaining / size
		for ; take > 0; take-- {
			c, ok := b.buf.TryDequeue()
			if !ok {
				break
			}
			out = append(out, c)
			used += size
		}
	}
	return out
}

// GiveOneClause drains a single clause from the smallest non-empty
// bucket. It reports false if the database is entirely empty.
func (d *Database) GiveOneClause() (*clause.Record, bool) {
	for i := range d.buckets {
		if c, ok := d.buckets[i].buf.TryDequeue(); ok {
			return c, true
		}
	}
	return nil, false
}

// DeleteFrom empties every bucket whose clause size is >= size, used by
// global strategies under memory pressure. Panics if size <= 0.
func (d *Database) DeleteFrom(size int) {
	if size <= 0 {
		panic(fmt.Sprintf("database: DeleteFrom requires size > 0, got %d", size))
	}
	for i := size - 1; i < len(d.buckets) && i >= 0; i++ {
		d.buckets[i].buf.Clear()
	}
}

// Size returns the total number of clauses currently held across all
// buckets.
func (d *Database) Size() int {
	total := 0
	for i := range d.buckets {
		total += d.buckets[i].buf.Size()
	}
	return total
}

// MaxSize returns the largest clause length this database admits.
func (d *Database) MaxSize() int { return d.maxSize }

// Stats returns the per-bucket cumulative admission counters (index i
// corresponds to clause size i+1), for diagnostics.
func (d *Database) Stats() []int64 {
	out := make([]int64, len(d.buckets))
	for i := range d.buckets {
		out[i] = d.buckets[i].cumulative.Load()
	}
	return out
}
