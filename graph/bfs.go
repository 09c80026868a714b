package graph

// BFS finds the path with the fewest edges, ignoring costs.
type BFS struct {
	Graph  *Graph
	Source int
	Target int

	found        bool
	route        map[int]int
	visited      map[int]bool
	spanningTree []*Edge
}

func NewBFS(g *Graph, source, target int) *BFS {
	b := &BFS{Graph: g, Source: source, Target: target}
	b.Clear()
	return b
}

func (b *BFS) Search() Searcher {
	b.Clear()
	if b.Graph == nil || !b.Graph.HasNode(b.Source) {
		return b
	}
	start := NewEdge(b.Source, b.Source, 0)
	queue := []*Edge{start}
	b.visited[b.Source] = true

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		b.route[next.To] = next.From
		if next != start {
			b.spanningTree = append(b.spanningTree, next)
		}
		if next.To == b.Target {
			b.found = true
			return b
		}
		for _, edge := range b.Graph.GetEdgesOfNode(next.To) {
			if !b.visited[edge.To] {
				queue = append(queue, edge)
				b.visited[edge.To] = true
			}
		}
	}
	return b
}

func (b *BFS) Found() bool { return b.found }

func (b *BFS) GetPath() []int {
	return routePath(b.found, b.Source, b.Target, b.route)
}

func (b *BFS) GetSearchTree() []*Edge {
	return append([]*Edge(nil), b.spanningTree...)
}

func (b *BFS) Clear() {
	b.found = false
	b.route = make(map[int]int)
	b.visited = make(map[int]bool)
	b.spanningTree = nil
}

func routePath(found bool, source, target int, route map[int]int) []int {
	if !found || target == -1 {
		return []int{}
	}
	path := walkBack(source, target, func(i int) (int, bool) {
		p, ok := route[i]
		return p, ok
	})
	if path == nil {
		return []int{}
	}
	return path
}
