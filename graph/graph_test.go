package graph

import (
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

// grid builds a w*h lattice of unit spaced nodes in the xz-plane with 4-neighbour edges.
func grid(w, h int, digraph bool) *Graph {
	g := NewGraph(digraph)
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			g.AddNode(NewNode(z*w+x, common.Vec3{float32(x), 0, float32(z)}))
		}
	}
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			i := z*w + x
			if x+1 < w {
				g.AddEdge(NewEdge(i, i+1, 1))
				if digraph {
					g.AddEdge(NewEdge(i+1, i, 1))
				}
			}
			if z+1 < h {
				g.AddEdge(NewEdge(i, i+w, 1))
				if digraph {
					g.AddEdge(NewEdge(i+w, i, 1))
				}
			}
		}
	}
	return g
}

func TestGraphBasics(t *testing.T) {
	g := NewGraph(false)
	g.AddNode(NewNode(0, common.Vec3{}))
	g.AddNode(NewNode(1, common.Vec3{1, 0, 0}))
	g.AddNode(NewNode(2, common.Vec3{2, 0, 0}))
	g.AddEdge(NewEdge(0, 1, 1))
	g.AddEdge(NewEdge(1, 2, 1))
	g.AddEdge(NewEdge(1, 9, 1))

	assertTrue(t, g.NodeCount() == 3, "node count")
	assertTrue(t, g.EdgeCount() == 4, "undirected edges are stored both ways")
	assertTrue(t, g.HasEdge(1, 0), "reverse edge present")
	assertTrue(t, !g.HasEdge(1, 9), "edge to a missing node is ignored")

	g.RemoveEdge(g.GetEdge(0, 1))
	assertTrue(t, !g.HasEdge(0, 1) && !g.HasEdge(1, 0), "undirected edge removal removes both")

	g.RemoveNode(2)
	assertTrue(t, g.NodeCount() == 2, "node removed")
	assertTrue(t, g.EdgeCount() == 0, "edges of removed node are gone")

	nodes := g.GetNodes()
	assertTrue(t, nodes[0].Index == 0 && nodes[1].Index == 1, "nodes ordered by index")

	g.Clear()
	assertTrue(t, g.NodeCount() == 0 && g.EdgeCount() == 0, "clear empties graph")
}

func TestGraphEdgesReferenceExistingNodes(t *testing.T) {
	g := grid(4, 3, true)
	for _, e := range g.GetEdges() {
		assertTrue(t, g.HasNode(e.From) && g.HasNode(e.To), "dangling edge")
	}
}

func TestPriorityQueueOrdersByLess(t *testing.T) {
	q := NewPriorityQueue(func(a, b int) bool { return a < b })
	for _, v := range []int{5, 1, 4, 2, 3} {
		q.Offer(v)
	}
	assertTrue(t, q.Peek() == 1, "peek returns smallest")
	var got []int
	for !q.Empty() {
		got = append(got, q.Poll())
	}
	for i := range got {
		assertTrue(t, got[i] == i+1, "poll returns ascending order")
	}
	q.Offer(9)
	q.Reset()
	assertTrue(t, q.Len() == 0, "reset empties queue")
}
