package graph

// DFS explores depth first. The path it finds is valid but not shortest.
type DFS struct {
	Graph  *Graph
	Source int
	Target int

	found        bool
	route        map[int]int
	visited      map[int]bool
	spanningTree []*Edge
}

func NewDFS(g *Graph, source, target int) *DFS {
	d := &DFS{Graph: g, Source: source, Target: target}
	d.Clear()
	return d
}

func (d *DFS) Search() Searcher {
	d.Clear()
	if d.Graph == nil || !d.Graph.HasNode(d.Source) {
		return d
	}
	start := NewEdge(d.Source, d.Source, 0)
	stack := []*Edge{start}

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// a node may sit on the stack more than once
		if d.visited[next.To] {
			continue
		}
		d.route[next.To] = next.From
		d.visited[next.To] = true
		if next != start {
			d.spanningTree = append(d.spanningTree, next)
		}
		if next.To == d.Target {
			d.found = true
			return d
		}
		for _, edge := range d.Graph.GetEdgesOfNode(next.To) {
			if !d.visited[edge.To] {
				stack = append(stack, edge)
			}
		}
	}
	return d
}

func (d *DFS) Found() bool { return d.found }

func (d *DFS) GetPath() []int {
	return routePath(d.found, d.Source, d.Target, d.route)
}

func (d *DFS) GetSearchTree() []*Edge {
	return append([]*Edge(nil), d.spanningTree...)
}

func (d *DFS) Clear() {
	d.found = false
	d.route = make(map[int]int)
	d.visited = make(map[int]bool)
	d.spanningTree = nil
}
