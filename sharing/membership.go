// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sharing

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Stats collects a strategy's lifetime counters (received, shared,
// duplicate/promotion tallies), kept as plain non-atomic fields since
// each strategy's round runs on a single Sharer goroutine at a time.
type Stats struct {
	ReceivedClauses  int
	SharedClauses    int
	ReceivedDuplicas int
	PromotionTier2   int
	PromotionCore    int
	AlreadyTier2     int
	AlreadyCore      int
}

// base is embedded by every local strategy and implements the dynamic
// membership machinery: AddProducer/AddConsumer/RemoveProducer/
// RemoveConsumer enqueue under a mutex and set an atomic "must act"
// flag; the next round drains those queues before the sharing pass
// proper runs. addLock and removeLock are two separate mutexes, since
// add and remove never need to exclude each other.
type base struct {
	addLock    sync.Mutex
	removeLock sync.Mutex

	mustAdd    atomix.Bool
	mustRemove atomix.Bool

	addProducers []Entity
	addConsumers []Entity

	removeProducers []Entity
	removeConsumers []Entity

	producers []Entity
	consumers []Entity

	Stats Stats
}

// AddProducer enqueues entity to join the producer set at the start of
// the next round.
func (b *base) AddProducer(e Entity) {
	b.addLock.Lock()
	b.addProducers = append(b.addProducers, e)
	b.addLock.Unlock()
	b.mustAdd.Store(true)
}

// AddConsumer enqueues entity to join the consumer set at the start of
// the next round.
func (b *base) AddConsumer(e Entity) {
	b.addLock.Lock()
	b.addConsumers = append(b.addConsumers, e)
	b.addLock.Unlock()
	b.mustAdd.Store(true)
}

// RemoveProducer enqueues entity for removal from the producer set.
func (b *base) RemoveProducer(e Entity) {
	b.removeLock.Lock()
	b.removeProducers = append(b.removeProducers, e)
	b.removeLock.Unlock()
	b.mustRemove.Store(true)
}

// RemoveConsumer enqueues entity for removal from the consumer set.
func (b *base) RemoveConsumer(e Entity) {
	b.removeLock.Lock()
	b.removeConsumers = append(b.removeConsumers, e)
	b.removeLock.Unlock()
	b.mustRemove.Store(true)
}

// syncMembership splices the pending add/remove queues into producers
// and consumers, holding each lock only for the splice itself — never
// across a sharing round. It returns the consumers newly added this
// round, so a caller (HordeSatAlt) can replay saved unit clauses into
// them.
func (b *base) syncMembership() (newConsumers []Entity) {
	if b.mustRemove.Load() {
		b.removeLock.Lock()
		b.producers = spliceOut(b.producers, b.removeProducers)
		b.consumers = spliceOut(b.consumers, b.removeConsumers)
		b.removeProducers = nil
		b.removeConsumers = nil
		b.removeLock.Unlock()
		b.mustRemove.Store(false)
	}
	if b.mustAdd.Load() {
		b.addLock.Lock()
		b.producers = append(b.producers, b.addProducers...)
		newConsumers = append(newConsumers, b.addConsumers...)
		b.consumers = append(b.consumers, b.addConsumers...)
		b.addProducers = nil
		b.addConsumers = nil
		b.addLock.Unlock()
		b.mustAdd.Store(false)
	}
	return newConsumers
}

func spliceOut(present, toRemove []Entity) []Entity {
	if len(toRemove) == 0 {
		return present
	}
	dead := make(map[Entity]struct{}, len(toRemove))
	for _, e := range toRemove {
		dead[e] = struct{}{}
	}
	out := present[:0]
	for _, e := range present {
		if _, isDead := dead[e]; !isDead {
			out = append(out, e)
		}
	}
	return out
}
