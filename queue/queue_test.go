// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/painless-sat/painlessgo/queue"
)

func TestFIFOOrderSingleProducerSingleConsumer(t *testing.T) {
	q := queue.New[int]()
	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}
	for i := 0; i < 10; i++ {
		v, ok := q.TryDequeue()
		if !ok || v != i {
			t.Fatalf("dequeue %d: got (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestEmptyDequeue(t *testing.T) {
	q := queue.New[string]()
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("expected TryDequeue to report false on empty queue")
	}
}

func TestReadFrontNonDestructive(t *testing.T) {
	q := queue.New[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	v, ok := q.ReadFront()
	if !ok || v != 1 {
		t.Fatalf("ReadFront = (%d, %v), want (1, true)", v, ok)
	}
	// Still there.
	v2, ok2 := q.TryDequeue()
	if !ok2 || v2 != 1 {
		t.Fatalf("TryDequeue after ReadFront = (%d, %v), want (1, true)", v2, ok2)
	}
}

func TestReadAllSnapshot(t *testing.T) {
	q := queue.New[int]()
	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	all := q.ReadAll()
	if len(all) != 5 {
		t.Fatalf("ReadAll returned %d items, want 5", len(all))
	}
	if q.Size() != 5 {
		t.Fatalf("Size = %d after ReadAll, want 5 (non-destructive)", q.Size())
	}
}

func TestClearDrains(t *testing.T) {
	q := queue.New[int]()
	for i := 0; i < 7; i++ {
		q.Enqueue(i)
	}
	q.Clear()
	if q.Size() != 0 {
		t.Fatalf("Size after Clear = %d, want 0", q.Size())
	}
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("expected empty queue after Clear")
	}
}

// TestLinearizabilityUnderConcurrency runs N concurrent producers, then
// drains the queue on one goroutine to check no value is lost, fabricated
// or duplicated across the producers' race.
func TestLinearizabilityUnderConcurrency(t *testing.T) {
	const (
		producers   = 8
		perProducer = 2000
		totalValues = producers * perProducer
	)
	q := queue.New[int]()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(p*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	seen := make([]bool, totalValues)
	count := 0
	for {
		v, ok := q.TryDequeue()
		if !ok {
			break
		}
		if v < 0 || v >= totalValues {
			t.Fatalf("dequeued out-of-range value %d", v)
		}
		if seen[v] {
			t.Fatalf("value %d dequeued twice", v)
		}
		seen[v] = true
		count++
	}
	if count != totalValues {
		t.Fatalf("dequeued %d values, want %d", count, totalValues)
	}
}

func TestPerProducerFIFOUnderConcurrentConsumers(t *testing.T) {
	const items = 5000
	q := queue.New[int]()
	for i := 0; i < items; i++ {
		q.Enqueue(i)
	}

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := -1
			for {
				v, ok := q.TryDequeue()
				if !ok {
					return
				}
				if v <= last {
					t.Errorf("consumer observed %d after %d, want FIFO order", v, last)
				}
				last = v
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(got) != items {
		t.Fatalf("got %d items, want %d", len(got), items)
	}
	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("missing or duplicated value at position %d: %d", i, v)
		}
	}
}
