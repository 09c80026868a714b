package graph

import "github.com/gorustyt/gonavgraph/common"

// Node is a graph vertex addressed purely by index. Position is only read by
// the heuristics; UserData is free for the caller.
type Node struct {
	Index    int
	Position common.Vec3
	UserData any
}

func NewNode(index int, position common.Vec3) *Node {
	return &Node{Index: index, Position: position}
}

// Edge is a directed, weighted connection between two node indices.
type Edge struct {
	From int
	To   int
	Cost float32
}

func NewEdge(from, to int, cost float32) *Edge {
	return &Edge{From: from, To: to, Cost: cost}
}
