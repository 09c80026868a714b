package graph

import "github.com/gorustyt/gonavgraph/common"

// Heuristic estimates the remaining cost between two nodes of g.
type Heuristic func(g *Graph, source, target int) float32

func positions(g *Graph, source, target int) (a, b common.Vec3, ok bool) {
	s, t := g.GetNode(source), g.GetNode(target)
	if s == nil || t == nil {
		return a, b, false
	}
	return s.Position, t.Position, true
}

// HeuristicEuclid is admissible whenever edge costs are euclidean distances.
func HeuristicEuclid(g *Graph, source, target int) float32 {
	a, b, ok := positions(g, source, target)
	if !ok {
		return 0
	}
	return common.Vdist(a, b)
}

// HeuristicEuclidSquared is cheaper but not admissible; it trades optimality for speed.
func HeuristicEuclidSquared(g *Graph, source, target int) float32 {
	a, b, ok := positions(g, source, target)
	if !ok {
		return 0
	}
	return common.VdistSqr(a, b)
}

func HeuristicManhattan(g *Graph, source, target int) float32 {
	a, b, ok := positions(g, source, target)
	if !ok {
		return 0
	}
	return common.VdistManhattan(a, b)
}

// HeuristicDijkstra always returns zero, turning A* into Dijkstra's algorithm.
func HeuristicDijkstra(*Graph, int, int) float32 {
	return 0
}
