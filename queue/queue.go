// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the lock-free multi-producer/multi-consumer FIFO
// that clause producers and consumers share.
//
// The algorithm is Michael & Scott's classic lock-free queue: a singly
// linked list with a dummy sentinel node and independent atomic head and
// tail pointers. Unlike the bounded, slot-array designs elsewhere in this
// ecosystem (code.hybscloud.com/lfq's SCQ-based MPMC), this queue is
// unbounded — clause producers must never block on a full queue, so
// capacity is whatever memory allows, with admission control handled one
// layer up by the size-bucketed database.
//
// Node lifetime follows ordinary Go GC rules: once a node is unlinked by
// Dequeue, it becomes unreachable the moment no goroutine still holds a
// pointer into it, and the collector reclaims it. This is the "use a
// garbage collector" option for hazard-safety that a non-GC reimplementer
// would instead get from hazard pointers or epoch reclamation — nothing
// here performs the naive "delete after dequeue" that frees memory still
// visible to a racing reader.
package queue

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Queue is an unbounded MPMC FIFO of clause records (or any value type T).
//
// In addition to the destructive Enqueue/TryDequeue pair, Queue exposes
// ReadFront/ReadAll for non-destructive traversal and PopFront/Clear for
// destructive drains, so the one implementation serves both the
// producer/consumer FIFO role and the inspectable-buffer role.
type Queue[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
	size atomix.Int64
}

// New creates an empty queue, already holding the Michael-Scott dummy
// sentinel so head is never observed nil.
func New[T any]() *Queue[T] {
	sentinel := &node[T]{}
	q := &Queue[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue adds a value to the tail of the queue. Never blocks, never
// fails: the queue is unbounded.
func (q *Queue[T]) Enqueue(v T) {
	n := &node[T]{value: v}
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			sw.Once()
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(tail, n)
				q.size.Add(1)
				return
			}
		} else {
			// Tail lagged behind the true last node; help it along.
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// TryDequeue removes and returns the value stored in the node following
// the sentinel, advancing head past it. Reports false if the queue was
// observed empty.
func (q *Queue[T]) TryDequeue() (T, bool) {
	sw := spin.Wait{}
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			sw.Once()
			continue
		}
		if head == tail {
			if next == nil {
				var zero T
				return zero, false
			}
			// Tail lagged behind the true last node; help it along.
			q.tail.CompareAndSwap(tail, next)
		} else {
			v := next.value
			if q.head.CompareAndSwap(head, next) {
				q.size.Add(-1)
				return v, true
			}
		}
		sw.Once()
	}
}

// Size returns an advisory, best-effort count of enqueued-but-not-dequeued
// values. Concurrent callers must not rely on it for correctness.
func (q *Queue[T]) Size() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// ReadFront returns the value at the front of the queue without removing
// it. It may race with concurrent Enqueue/TryDequeue calls; it always
// terminates and never dereferences a freed node, because Go's garbage
// collector keeps any node this goroutine has loaded alive for as long as
// it holds the pointer.
func (q *Queue[T]) ReadFront() (T, bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	return next.value, true
}

// ReadAll returns a snapshot of every value currently in the queue,
// traversing from head to tail without dequeuing any of them. The
// traversal may observe a queue that is concurrently growing or shrinking
// and is therefore only a snapshot, not a linearizable read.
func (q *Queue[T]) ReadAll() []T {
	var out []T
	for n := q.head.Load().next.Load(); n != nil; n = n.next.Load() {
		out = append(out, n.value)
	}
	return out
}

// PopFront dequeues and discards the front value, if any. It reports
// whether a value was removed.
func (q *Queue[T]) PopFront() bool {
	_, ok := q.TryDequeue()
	return ok
}

// Clear destructively drains every value currently in the queue.
func (q *Queue[T]) Clear() {
	for q.PopFront() {
	}
}

// DrainInto dequeues every currently-available value, appends each to out,
// and returns the extended slice. Values enqueued concurrently with the
// drain may or may not be included, but every value present before the
// call started will be drained unless a concurrent consumer races it
// away first.
func (q *Queue[T]) DrainInto(out []T) []T {
	for {
		v, ok := q.TryDequeue()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
