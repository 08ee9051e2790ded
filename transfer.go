package tangential

import (
	"fmt"
	"sort"
)

// transferPoint is a candidate connection between a parent ring and one of its children.
type transferPoint struct {
	child      NodeID
	parentPos  float64 // arc position on the parent ring
	point      Point   // point on the parent ring
	childPoint Point   // point on the child ring
	seg        int     // segment index on the parent ring
	dist       float64
}

// priority is higher for closer points.
func (tp *transferPoint) priority() float64 {
	return -tp.dist
}

func (tp transferPoint) String() string {
	return fmt.Sprintf("%v→%v (child %d, %v)", tp.point, tp.childPoint, tp.child, tp.dist)
}

// transferQueue is a bounded priority queue of transfer points. The heap is ordered with the lowest priority on top, so that it is evicted first when the queue is full.
type transferQueue struct {
	heap     []*transferPoint
	capacity int
}

func newTransferQueue(capacity int) *transferQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &transferQueue{
		heap:     make([]*transferPoint, 0, capacity),
		capacity: capacity,
	}
}

// Len returns the number of transfer points held.
func (q *transferQueue) Len() int {
	return len(q.heap)
}

// Push adds a transfer point. When the queue is full either the new point or the lowest priority point is evicted, and false is returned if it was the new point.
func (q *transferQueue) Push(tp transferPoint) bool {
	item := &tp
	if len(q.heap) < q.capacity {
		q.heap = append(q.heap, item)
		q.up(len(q.heap) - 1)
		return true
	} else if !q.lessItems(q.heap[0], item) {
		return false
	}
	q.heap[0] = item
	q.down(0, len(q.heap))
	return true
}

// Sorted returns the transfer points from highest to lowest priority. Ties are ordered by child ID and then by arc position so that the order is deterministic.
func (q *transferQueue) Sorted() []transferPoint {
	tps := make([]transferPoint, len(q.heap))
	for i, item := range q.heap {
		tps[i] = *item
	}
	sort.SliceStable(tps, func(i, j int) bool {
		if tps[i].priority() != tps[j].priority() {
			return tps[i].priority() > tps[j].priority()
		} else if tps[i].child != tps[j].child {
			return tps[i].child < tps[j].child
		}
		return tps[i].parentPos < tps[j].parentPos
	})
	return tps
}

func (q *transferQueue) lessItems(a, b *transferPoint) bool {
	if a.priority() != b.priority() {
		return a.priority() < b.priority()
	}
	return b.child < a.child
}

func (q *transferQueue) less(i, j int) bool {
	return q.lessItems(q.heap[i], q.heap[j])
}

func (q *transferQueue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
}

// from container/heap
func (q *transferQueue) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.less(j, i) {
			break
		}
		q.swap(i, j)
		j = i
	}
}

func (q *transferQueue) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.less(j, i) {
			break
		}
		q.swap(i, j)
		i = j
	}
	return i0 < i
}
