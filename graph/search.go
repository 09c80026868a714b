package graph

// Searcher is implemented by every search algorithm in this package.
type Searcher interface {
	Search() Searcher
	Found() bool
	GetPath() []int
	GetSearchTree() []*Edge
	Clear()
}

var (
	_ Searcher = (*AStar)(nil)
	_ Searcher = (*Dijkstra)(nil)
	_ Searcher = (*BFS)(nil)
	_ Searcher = (*DFS)(nil)
)

// walkBack rebuilds source..target from a child->parent lookup.
func walkBack(source, target int, parent func(int) (int, bool)) []int {
	path := []int{target}
	current := target
	for current != source {
		p, ok := parent(current)
		if !ok {
			return nil
		}
		current = p
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
