package graph

type queueEntry struct {
	cost  float32
	index int
}

// AStar searches a weighted graph from Source to Target, ordering the frontier
// by F = G + H.
//
// cost holds the best known G per node, shortestPathTree the settled edges and
// searchFrontier the provisional best edge leading to every reached node.
// Stale queue entries for already settled nodes are skipped when popped.
type AStar struct {
	Graph     *Graph
	Source    int
	Target    int
	Heuristic Heuristic

	found            bool
	cost             map[int]float32
	shortestPathTree map[int]*Edge
	searchFrontier   map[int]*Edge
	settled          map[int]bool
}

func NewAStar(g *Graph, source, target int) *AStar {
	a := &AStar{
		Graph:     g,
		Source:    source,
		Target:    target,
		Heuristic: HeuristicEuclid,
	}
	a.Clear()
	return a
}

func (a *AStar) Search() Searcher {
	a.Clear()
	if a.Graph == nil || !a.Graph.HasNode(a.Source) {
		return a
	}
	heuristic := a.Heuristic
	if heuristic == nil {
		heuristic = HeuristicDijkstra
	}
	open := NewPriorityQueue(func(t1, t2 queueEntry) bool { return t1.cost < t2.cost })
	a.cost[a.Source] = 0
	open.Offer(queueEntry{cost: 0, index: a.Source})

	for !open.Empty() {
		next := open.Poll()
		if a.settled[next.index] {
			continue
		}
		a.settled[next.index] = true
		if edge, ok := a.searchFrontier[next.index]; ok {
			a.shortestPathTree[next.index] = edge
		}
		if next.index == a.Target {
			a.found = true
			return a
		}

		for _, edge := range a.Graph.GetEdgesOfNode(next.index) {
			to := edge.To
			if a.settled[to] {
				continue
			}
			gCost := a.cost[next.index] + edge.Cost
			known, seen := a.cost[to]
			if !seen || gCost < known {
				a.cost[to] = gCost
				a.searchFrontier[to] = edge
				open.Offer(queueEntry{cost: gCost + heuristic(a.Graph, to, a.Target), index: to})
			}
		}
	}
	return a
}

func (a *AStar) Found() bool {
	return a.found
}

// GetPath returns the node indices from Source to Target, or an empty slice
// when the target was not reached or is unset (-1).
func (a *AStar) GetPath() []int {
	if !a.found || a.Target == -1 {
		return []int{}
	}
	path := walkBack(a.Source, a.Target, func(i int) (int, bool) {
		e, ok := a.shortestPathTree[i]
		if !ok {
			return 0, false
		}
		return e.From, true
	})
	if path == nil {
		return []int{}
	}
	return path
}

// GetSearchTree returns the settled edges.
func (a *AStar) GetSearchTree() []*Edge {
	res := make([]*Edge, 0, len(a.shortestPathTree))
	for _, e := range a.shortestPathTree {
		res = append(res, e)
	}
	return res
}

// Cost returns the accumulated cost to index, valid once the node is settled.
func (a *AStar) Cost(index int) (float32, bool) {
	c, ok := a.cost[index]
	return c, ok && a.settled[index]
}

func (a *AStar) Clear() {
	a.found = false
	a.cost = make(map[int]float32)
	a.shortestPathTree = make(map[int]*Edge)
	a.searchFrontier = make(map[int]*Edge)
	a.settled = make(map[int]bool)
}

// Dijkstra is A* without a heuristic.
type Dijkstra struct {
	*AStar
}

func NewDijkstra(g *Graph, source, target int) *Dijkstra {
	a := NewAStar(g, source, target)
	a.Heuristic = HeuristicDijkstra
	return &Dijkstra{AStar: a}
}

func (d *Dijkstra) Search() Searcher {
	d.AStar.Heuristic = HeuristicDijkstra
	d.AStar.Search()
	return d
}
