package tangential

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestTransferQueue(t *testing.T) {
	q := newTransferQueue(2)
	test.That(t, q.Push(transferPoint{child: 1, dist: 3.0}))
	test.That(t, q.Push(transferPoint{child: 2, dist: 1.0}))
	test.T(t, q.Len(), 2)

	// full, closer point evicts the farthest
	test.That(t, q.Push(transferPoint{child: 3, dist: 2.0}))
	test.T(t, q.Len(), 2)

	// full, farther point is rejected
	test.That(t, !q.Push(transferPoint{child: 4, dist: 5.0}))

	tps := q.Sorted()
	test.T(t, len(tps), 2)
	test.T(t, tps[0].child, NodeID(2))
	test.T(t, tps[1].child, NodeID(3))

	// the farthest point is evicted next
	test.That(t, q.Push(transferPoint{child: 5, dist: 0.5}))
	tps = q.Sorted()
	test.T(t, tps[0].child, NodeID(5))
	test.T(t, tps[1].child, NodeID(2))
}

func TestTransferQueueOrder(t *testing.T) {
	q := newTransferQueue(10)
	dists := []float64{5, 3, 8, 1, 9, 2, 7, 4, 6, 0}
	for i, dist := range dists {
		q.Push(transferPoint{child: NodeID(i), dist: dist})
	}
	test.T(t, q.Len(), 10)

	prev := -1.0
	for _, tp := range q.Sorted() {
		test.That(t, prev <= tp.dist)
		prev = tp.dist
	}

	// ties are ordered by child and position
	q = newTransferQueue(3)
	q.Push(transferPoint{child: 2, parentPos: 1.0, dist: 1.0})
	q.Push(transferPoint{child: 1, parentPos: 2.0, dist: 1.0})
	q.Push(transferPoint{child: 1, parentPos: 0.5, dist: 1.0})
	tps := q.Sorted()
	test.T(t, tps[0].child, NodeID(1))
	test.Float(t, tps[0].parentPos, 0.5)
	test.T(t, tps[1].child, NodeID(1))
	test.T(t, tps[2].child, NodeID(2))

	test.That(t, newTransferQueue(0).Push(transferPoint{}))
}
