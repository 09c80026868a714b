package navmesh

import (
	"math/rand"
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

func near(a, b common.Vec3) bool {
	return common.VdistSqr(a, b) < 1e-8
}

// square returns the xz unit square at (x, z) in the order used by most
// level exports, which is the reverse of the region winding.
func square(x, z, y float32) []common.Vec3 {
	return []common.Vec3{
		{x, y, z},
		{x + 1, y, z},
		{x + 1, y, z + 1},
		{x, y, z + 1},
	}
}

// lShape is three unit squares: two in a row and one above the right one.
func lShape(t *testing.T) *NavMesh {
	t.Helper()
	m, stats := Build([][]common.Vec3{square(0, 0, 0), square(1, 0, 0), square(1, 1, 0)}, DefaultOptions())
	assertTrue(t, stats.Merged == 1, "row of two squares merges, the corner does not")
	assertTrue(t, len(m.Regions()) == 2, "two regions")
	return m
}

// gridMesh builds w*h unit squares, region index z*w+x when not merged.
func gridMesh(w, h int, merge bool) *NavMesh {
	var contours [][]common.Vec3
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			contours = append(contours, square(float32(x), float32(z), 0))
		}
	}
	opts := DefaultOptions()
	opts.MergeConvexRegions = merge
	m, _ := Build(contours, opts)
	return m
}

func checkMeshInvariants(t *testing.T, m *NavMesh) {
	t.Helper()
	assertTrue(t, m.Graph().NodeCount() == len(m.Regions()), "one node per region")
	for i, region := range m.Regions() {
		assertTrue(t, region.Index() == i, "region index matches position")
		assertTrue(t, m.GetNodeIndex(region) == i, "node index matches region")
		assertTrue(t, region.Convex(true), "region is convex")
		assertTrue(t, region.Coplanar(m.EpsilonCoplanarTest), "region is coplanar")
		for _, e := range region.Edges() {
			assertTrue(t, e.Polygon == region, "edge belongs to its ring")
			if e.Twin == nil {
				continue
			}
			assertTrue(t, e.Twin.Twin == e, "twin is symmetric")
			assertTrue(t, e.Twin.Polygon != region, "twin is in another region")
			assertTrue(t, e.Matches(e.Twin), "twin runs the other way")
			assertTrue(t, m.Graph().HasEdge(i, e.Twin.Polygon.Index()), "portal has a graph edge")
		}
	}
	for _, edge := range m.Graph().GetEdges() {
		assertTrue(t, edge.From != edge.To, "no self loops")
		from, to := m.Regions()[edge.From], m.Regions()[edge.To]
		assertTrue(t, from.PortalTo(to) != nil, "graph edge has a portal")
		assertTrue(t, common.Abs(edge.Cost-common.Vdist(from.Centroid, to.Centroid)) < 1e-5, "edge cost is centroid distance")
	}
}

func TestMergeCoplanarSquares(t *testing.T) {
	m, stats := Build([][]common.Vec3{square(0, 0, 0), square(1, 0, 0)}, DefaultOptions())
	assertTrue(t, len(m.Regions()) == 1, "squares merge into one region")
	assertTrue(t, m.Graph().NodeCount() == 1, "one node")
	assertTrue(t, m.Graph().EdgeCount() == 0, "no internal edges")
	assertTrue(t, stats.Portals == 1 && stats.Merged == 1, "one portal merged")
	assertTrue(t, len(m.BorderEdges()) == 6, "merged ring keeps both halves of the long sides")
	checkMeshInvariants(t, m)

	region := m.Regions()[0]
	assertTrue(t, region.Contains(common.Vec3{1.5, 0, 0.5}, 1), "merged region covers the second square")
	assertTrue(t, near(region.Centroid, common.Vec3{1, 0, 0.5}), "centroid of the merged ring")
}

func TestNonCoplanarSquaresStaySeparate(t *testing.T) {
	tilted := []common.Vec3{{1, 0, 0}, {2, 0.5, 0}, {2, 0.5, 1}, {1, 0, 1}}
	m, stats := Build([][]common.Vec3{square(0, 0, 0), tilted}, DefaultOptions())
	assertTrue(t, len(m.Regions()) == 2, "merge rejected")
	assertTrue(t, stats.Merged == 0, "nothing merged")
	assertTrue(t, m.Graph().HasEdge(0, 1) && m.Graph().HasEdge(1, 0), "edges both ways")
	assertTrue(t, m.Graph().EdgeCount() == 2, "one bidirectional edge")
	checkMeshInvariants(t, m)

	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{1.5, 0.25, 0.5}
	path := m.FindPath(from, to)
	assertTrue(t, len(path) >= 2 && len(path) <= 3, "short path through the portal")
	assertTrue(t, path[0] == from && path[len(path)-1] == to, "path runs from start to goal")
}

func TestMergeDisabled(t *testing.T) {
	m := gridMesh(3, 3, false)
	assertTrue(t, len(m.Regions()) == 9, "no merging")
	assertTrue(t, m.Graph().EdgeCount() == 24, "12 portals, both directions")
	checkMeshInvariants(t, m)

	merged := gridMesh(3, 3, true)
	assertTrue(t, len(merged.Regions()) < 9, "grid merges")
	checkMeshInvariants(t, merged)
}

func TestMergedGridsStayOnMesh(t *testing.T) {
	for _, n := range []int{2, 3, 10} {
		m := gridMesh(n, n, true)
		checkMeshInvariants(t, m)
		// unit squares merge into strips; neighbouring strips share n portals and stay apart
		assertTrue(t, len(m.Regions()) == n, "one region per strip")
		for _, region := range m.Regions() {
			assertTrue(t, region.Contains(region.Centroid, m.EpsilonContainsTest), "region contains its centroid")
		}
		for z := 0; z < n; z++ {
			for x := 0; x < n; x++ {
				p := common.Vec3{float32(x) + 0.5, 0, float32(z) + 0.5}
				assertTrue(t, m.GetRegionForPoint(p, m.EpsilonContainsTest) != nil, "cell center is on the mesh")
			}
		}
		from := common.Vec3{0.5, 0, 0.5}
		to := common.Vec3{float32(n) - 0.5, 0, float32(n) - 0.5}
		path := m.FindPath(from, to)
		assertTrue(t, len(path) == 2, "open square has line of sight")
	}
}

func TestSkipShortContours(t *testing.T) {
	m, stats := Build([][]common.Vec3{
		square(0, 0, 0),
		{{5, 0, 5}, {6, 0, 5}},
		nil,
	}, DefaultOptions())
	assertTrue(t, stats.InputContours == 3, "input count")
	assertTrue(t, stats.SkippedContours == 2, "two contours skipped")
	assertTrue(t, len(m.Regions()) == 1, "valid contour kept")
}

func TestFindPathFallsBackToClosestRegion(t *testing.T) {
	m := lShape(t)
	path := m.FindPath(common.Vec3{0.5, 100, 0.5}, common.Vec3{1.5, 0, 1.5})
	assertTrue(t, len(path) > 0, "fallback still finds a path")
}

func TestFindPathAroundCorner(t *testing.T) {
	m := lShape(t)
	checkMeshInvariants(t, m)
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{1.2, 0, 1.8}
	path := m.FindPath(from, to)
	assertTrue(t, len(path) == 3, "path bends once")
	if len(path) == 3 {
		assertTrue(t, near(path[1], common.Vec3{1, 0, 1}), "bend at the inner corner")
	}
	direct := common.Vdist(from, m.Regions()[0].Centroid) +
		common.Vdist(m.Regions()[0].Centroid, m.Regions()[1].Centroid) +
		common.Vdist(m.Regions()[1].Centroid, to)
	assertTrue(t, PathLength(path) <= direct+1e-5, "funnel path is not longer than the centroid chain")
}

func TestFindPathSamePoint(t *testing.T) {
	m := lShape(t)
	p := common.Vec3{0.5, 0, 0.5}
	path := m.FindPath(p, p)
	assertTrue(t, len(path) == 2 && path[0] == p && path[1] == p, "same point gives two copies")
}

func TestFindPathDisconnected(t *testing.T) {
	m, _ := Build([][]common.Vec3{square(0, 0, 0), square(5, 5, 0)}, DefaultOptions())
	path := m.FindPath(common.Vec3{0.5, 0, 0.5}, common.Vec3{5.5, 0, 5.5})
	assertTrue(t, path != nil && len(path) == 0, "no path is an empty list")
}

func TestFindPathEmptyMesh(t *testing.T) {
	m := NewNavMesh(DefaultOptions())
	assertTrue(t, len(m.FindPath(common.Vec3{}, common.Vec3{1, 0, 1})) == 0, "empty mesh has no path")
	assertTrue(t, m.GetClosestRegion(common.Vec3{}) == nil, "no closest region")
	assertTrue(t, m.GetRandomRegion(nil) == nil, "no random region")
}

func TestFindPathNonFinite(t *testing.T) {
	m := lShape(t)
	zero := float32(0)
	nan := zero / zero
	inf := 1 / zero
	on := common.Vec3{0.5, 0, 0.5}
	assertTrue(t, len(m.FindPath(common.Vec3{nan, 0, 0}, on)) == 0, "NaN start")
	assertTrue(t, len(m.FindPath(on, common.Vec3{0, inf, 0})) == 0, "infinite goal")
	assertTrue(t, len(m.FindPath(common.Vec3{-inf, 0, 0}, common.Vec3{0, 0, nan})) == 0, "both invalid")
}

func TestFindPathOnGrid(t *testing.T) {
	m := gridMesh(10, 10, false)
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{9.5, 0, 9.5}
	path := m.FindPath(from, to)
	assertTrue(t, len(path) >= 2, "path found")
	assertTrue(t, path[0] == from && path[len(path)-1] == to, "path endpoints")
	length := PathLength(path)
	assertTrue(t, length >= common.Vdist(from, to)-1e-4, "no shorter than the straight line")
	assertTrue(t, length <= 18+1e-4, "no longer than the staircase of centroids")
}

func TestRegionQueries(t *testing.T) {
	m := lShape(t)
	assertTrue(t, m.GetRegionForPoint(common.Vec3{1.5, 0, 1.5}, 1) == m.Regions()[1], "point in the corner square")
	assertTrue(t, m.GetRegionForPoint(common.Vec3{0.5, 0, 1.5}, 1) == nil, "point in the notch")
	assertTrue(t, m.GetRegionForPoint(common.Vec3{0.5, 2, 0.5}, 1) == nil, "point too far above")
	assertTrue(t, m.GetClosestRegion(common.Vec3{0.5, 0, 1.2}) == m.Regions()[0], "closest centroid")
	assertTrue(t, m.GetClosestRegion(common.Vec3{0.5, 0, 1.5}) == m.Regions()[1], "closest centroid above the notch")
	assertTrue(t, m.GetNodeIndex(nil) == -1, "nil region has no node")

	detached, _ := NewPolygonFromContour(square(0, 0, 0))
	assertTrue(t, m.GetNodeIndex(detached) == -1, "foreign polygon has no node")

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		r := m.GetRandomRegion(rng)
		assertTrue(t, m.GetNodeIndex(r) >= 0, "random region belongs to the mesh")
	}
}
