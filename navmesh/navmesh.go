package navmesh

import (
	"math/rand"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/graph"
	"go.uber.org/zap"
)

const (
	DefaultEpsilonContainsTest float32 = 1
	DefaultEpsilonCoplanarTest float32 = 1e-3
)

type Options struct {
	// EpsilonContainsTest is the max plane distance for a point to count as on a region.
	EpsilonContainsTest float32 `json:"epsilonContainsTest"`
	// EpsilonCoplanarTest is the max plane distance of vertices for a merge to be accepted.
	EpsilonCoplanarTest float32 `json:"epsilonCoplanarTest"`
	MergeConvexRegions  bool    `json:"mergeConvexRegions"`
}

func DefaultOptions() Options {
	return Options{
		EpsilonContainsTest: DefaultEpsilonContainsTest,
		EpsilonCoplanarTest: DefaultEpsilonCoplanarTest,
		MergeConvexRegions:  true,
	}
}

// NavMesh is a static set of convex regions plus the graph connecting them.
// It is built once and then only read; UpdateSpatialIndex is the one mutation
// allowed after the build. None of the methods are safe for concurrent use
// with FromPolygons or UpdateSpatialIndex.
type NavMesh struct {
	Options

	graph        *graph.Graph
	regions      []*Polygon
	borderEdges  []*HalfEdge
	spatialIndex *CellSpacePartitioning
}

func NewNavMesh(opts Options) *NavMesh {
	return &NavMesh{
		Options: opts,
		graph:   graph.NewGraph(true),
	}
}

// Build turns raw contours into a navigation mesh. Contours with fewer than
// three points are logged and skipped.
func Build(contours [][]common.Vec3, opts Options) (*NavMesh, BuildStats) {
	m := NewNavMesh(opts)
	stats := m.FromContours(contours)
	return m, stats
}

func (m *NavMesh) Graph() *graph.Graph {
	return m.graph
}

func (m *NavMesh) Regions() []*Polygon {
	return m.regions
}

func (m *NavMesh) BorderEdges() []*HalfEdge {
	return m.borderEdges
}

func (m *NavMesh) SpatialIndex() *CellSpacePartitioning {
	return m.spatialIndex
}

func (m *NavMesh) Clear() *NavMesh {
	m.graph.Clear()
	m.regions = nil
	m.borderEdges = nil
	if m.spatialIndex != nil {
		m.spatialIndex.MakeEmpty()
	}
	return m
}

// GetNodeIndex returns the graph node index of region, -1 if it is not part of the mesh.
func (m *NavMesh) GetNodeIndex(region *Polygon) int {
	if region == nil {
		return -1
	}
	i := region.index
	if i < 0 || i >= len(m.regions) || m.regions[i] != region {
		return -1
	}
	return i
}

// GetRegionForPoint returns the first region, in region order, that contains
// point. With a spatial index only the cell of point is consulted.
func (m *NavMesh) GetRegionForPoint(point common.Vec3, epsilon float32) *Polygon {
	candidates := m.regions
	if m.spatialIndex != nil {
		candidates = m.spatialIndex.CellForPosition(point).Entries
	}
	for _, region := range candidates {
		if region.Contains(point, epsilon) {
			return region
		}
	}
	return nil
}

// GetClosestRegion returns the region whose centroid is nearest to point.
func (m *NavMesh) GetClosestRegion(point common.Vec3) *Polygon {
	var closest *Polygon
	minDistance := common.MaxFloat32()
	for _, region := range m.regions {
		d := common.VdistSqr(point, region.Centroid)
		if d < minDistance {
			minDistance = d
			closest = region
		}
	}
	return closest
}

func (m *NavMesh) GetRandomRegion(rng *rand.Rand) *Polygon {
	if len(m.regions) == 0 {
		return nil
	}
	if rng == nil {
		return m.regions[rand.Intn(len(m.regions))]
	}
	return m.regions[rng.Intn(len(m.regions))]
}

// FindPath returns waypoints from from to to. Points off the mesh fall back
// to the region with the nearest centroid. An empty result means no path.
func (m *NavMesh) FindPath(from, to common.Vec3) []common.Vec3 {
	return m.FindPathWith(from, to, graph.HeuristicEuclid)
}

func (m *NavMesh) FindPathWith(from, to common.Vec3, heuristic graph.Heuristic) []common.Vec3 {
	if len(m.regions) == 0 || !common.Visfinite(from) || !common.Visfinite(to) {
		return []common.Vec3{}
	}
	fromRegion := m.GetRegionForPoint(from, m.EpsilonContainsTest)
	toRegion := m.GetRegionForPoint(to, m.EpsilonContainsTest)
	if fromRegion == nil || toRegion == nil {
		if fromRegion == nil {
			fromRegion = m.GetClosestRegion(from)
		}
		if toRegion == nil {
			toRegion = m.GetClosestRegion(to)
		}
		logger.Warn("navmesh: from or to region not found, using closest region",
			zap.Int("from", fromRegion.index), zap.Int("to", toRegion.index))
	}
	if fromRegion == toRegion {
		return []common.Vec3{from, to}
	}

	astar := graph.NewAStar(m.graph, m.GetNodeIndex(fromRegion), m.GetNodeIndex(toRegion))
	astar.Heuristic = heuristic
	astar.Search()
	if !astar.Found() {
		return []common.Vec3{}
	}
	regionPath := astar.GetPath()

	corridor := NewCorridor()
	corridor.Push(from, from)
	for i := 0; i+1 < len(regionPath); i++ {
		left, right, ok := m.portalEdge(m.regions[regionPath[i]], m.regions[regionPath[i+1]])
		if !ok {
			// graph and half-edges disagree, only possible with a hand edited snapshot
			logger.Error("navmesh: missing portal between regions",
				zap.Int("from", regionPath[i]), zap.Int("to", regionPath[i+1]))
			return []common.Vec3{}
		}
		corridor.Push(left, right)
	}
	corridor.Push(to, to)
	return corridor.Generate()
}

// portalEdge returns the shared boundary of region and next as seen from
// region. Merged regions can meet along a run of collinear edges; the run is
// joined into one portal.
func (m *NavMesh) portalEdge(region, next *Polygon) (left, right common.Vec3, ok bool) {
	edge := region.PortalTo(next)
	if edge == nil {
		return left, right, false
	}
	first, last := edge, edge
	for first.Prev != edge && first.Prev.Twin != nil && first.Prev.Twin.Polygon == next {
		first = first.Prev
	}
	for last.Next != first && last.Next.Twin != nil && last.Next.Twin.Polygon == next {
		last = last.Next
	}
	return first.Tail(), last.Head(), true
}

// PathLength sums the segment lengths of a waypoint list.
func PathLength(path []common.Vec3) float32 {
	var length float32
	for i := 1; i < len(path); i++ {
		length += common.Vdist(path[i-1], path[i])
	}
	return length
}
