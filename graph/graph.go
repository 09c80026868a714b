package graph

import "sort"

// Graph stores nodes by index and an adjacency list of outgoing edges per node.
// When Digraph is false AddEdge also inserts the opposite edge.
type Graph struct {
	Digraph bool

	nodes map[int]*Node
	edges map[int][]*Edge
}

func NewGraph(digraph bool) *Graph {
	return &Graph{
		Digraph: digraph,
		nodes:   make(map[int]*Node),
		edges:   make(map[int][]*Edge),
	}
}

func (g *Graph) AddNode(node *Node) *Graph {
	g.nodes[node.Index] = node
	if _, ok := g.edges[node.Index]; !ok {
		g.edges[node.Index] = nil
	}
	return g
}

// AddEdge ignores edges whose endpoints are not in the graph, so every stored
// edge always refers to existing nodes.
func (g *Graph) AddEdge(edge *Edge) *Graph {
	if !g.HasNode(edge.From) || !g.HasNode(edge.To) {
		return g
	}
	g.edges[edge.From] = append(g.edges[edge.From], edge)
	if !g.Digraph && !g.HasEdge(edge.To, edge.From) {
		g.edges[edge.To] = append(g.edges[edge.To], NewEdge(edge.To, edge.From, edge.Cost))
	}
	return g
}

func (g *Graph) GetNode(index int) *Node {
	return g.nodes[index]
}

func (g *Graph) GetEdge(from, to int) *Edge {
	for _, e := range g.edges[from] {
		if e.To == to {
			return e
		}
	}
	return nil
}

func (g *Graph) HasNode(index int) bool {
	_, ok := g.nodes[index]
	return ok
}

func (g *Graph) HasEdge(from, to int) bool {
	return g.GetEdge(from, to) != nil
}

// GetNodes returns all nodes ordered by index.
func (g *Graph) GetNodes() []*Node {
	res := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Index < res[j].Index })
	return res
}

// GetEdgesOfNode returns the outgoing edges of a node. The slice is owned by the graph.
func (g *Graph) GetEdgesOfNode(index int) []*Edge {
	return g.edges[index]
}

// GetEdges returns every edge, grouped by source node in index order.
func (g *Graph) GetEdges() []*Edge {
	var res []*Edge
	for _, n := range g.GetNodes() {
		res = append(res, g.edges[n.Index]...)
	}
	return res
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	count := 0
	for _, list := range g.edges {
		count += len(list)
	}
	return count
}

// RemoveNode drops the node together with all edges leading to or from it.
func (g *Graph) RemoveNode(index int) *Graph {
	if !g.HasNode(index) {
		return g
	}
	delete(g.nodes, index)
	delete(g.edges, index)
	for from, list := range g.edges {
		kept := list[:0]
		for _, e := range list {
			if e.To != index {
				kept = append(kept, e)
			}
		}
		g.edges[from] = kept
	}
	return g
}

func (g *Graph) RemoveEdge(edge *Edge) *Graph {
	g.removeEdge(edge.From, edge.To)
	if !g.Digraph {
		g.removeEdge(edge.To, edge.From)
	}
	return g
}

func (g *Graph) removeEdge(from, to int) {
	list := g.edges[from]
	for i, e := range list {
		if e.To == to {
			g.edges[from] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (g *Graph) Clear() *Graph {
	g.nodes = make(map[int]*Node)
	g.edges = make(map[int][]*Edge)
	return g
}
