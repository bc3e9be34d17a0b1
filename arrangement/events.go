package arrangement

import (
	"fmt"

	"github.com/tdewolff/bezier"
)

// event is an endpoint of an edge.
type event struct {
	point  *bezier.Point
	edge   int
	source bool
}

func (e event) String() string {
	end := "target"
	if e.source {
		end = "source"
	}
	return fmt.Sprintf("E%d.%s%v", e.edge, end, e.point)
}

// events is a heap priority queue of edge endpoints in xy-order.
type events struct {
	tr    bezier.Traits
	items []*event
}

func (q *events) Len() int {
	return len(q.items)
}

func (q *events) Less(i, j int) bool {
	return q.tr.CompareXY(q.items[i].point, q.items[j].point) == bezier.Smaller
}

func (q *events) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// AddEdge adds both endpoints of the edge.
func (q *events) AddEdge(index int, e Edge) {
	q.items = append(q.items,
		&event{point: e.Curve.Source(), edge: index, source: true},
		&event{point: e.Curve.Target(), edge: index, source: false},
	)
}

func (q *events) Init() {
	n := len(q.items)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *events) Pop() *event {
	n := len(q.items) - 1
	q.Swap(0, n)
	q.down(0, n)

	item := q.items[n]
	q.items = q.items[:n]
	return item
}

// from container/heap
func (q *events) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.Less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		i = j
	}
}
