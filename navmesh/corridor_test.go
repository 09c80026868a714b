package navmesh

import (
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

func TestCorridorEmpty(t *testing.T) {
	c := NewCorridor()
	assertTrue(t, len(c.Generate()) == 0, "empty corridor")
}

func TestCorridorStraight(t *testing.T) {
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{2.5, 0, 0.5}
	c := NewCorridor().
		Push(from, from).
		Push(common.Vec3{1, 0, 1}, common.Vec3{1, 0, 0}).
		Push(common.Vec3{2, 0, 1}, common.Vec3{2, 0, 0}).
		Push(to, to)
	path := c.Generate()
	assertTrue(t, len(path) == 2, "line of sight")
	assertTrue(t, path[0] == from && path[1] == to, "endpoints")
	assertTrue(t, len(c.PortalEdges()) == 4, "portals kept")

	c.Reset()
	assertTrue(t, len(c.PortalEdges()) == 0, "reset")
}

func TestCorridorCorner(t *testing.T) {
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{1.2, 0, 1.8}
	path := NewCorridor().
		Push(from, from).
		Push(common.Vec3{1, 0, 1}, common.Vec3{2, 0, 1}).
		Push(to, to).
		Generate()
	assertTrue(t, len(path) == 3, "one bend")
	assertTrue(t, path[1] == common.Vec3{1, 0, 1}, "bend at the left portal vertex")
}

func TestCorridorSinglePortal(t *testing.T) {
	p := common.Vec3{1, 0, 1}
	path := NewCorridor().Push(p, p).Generate()
	assertTrue(t, len(path) == 1 && path[0] == p, "start only")
}

func TestCorridorTurnsBothWays(t *testing.T) {
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{2.8, 0, 2.1}
	path := NewCorridor().
		Push(from, from).
		Push(common.Vec3{1, 0, 1}, common.Vec3{1, 0, 0}).
		Push(common.Vec3{1, 0, 1}, common.Vec3{2, 0, 1}).
		Push(common.Vec3{1, 0, 2}, common.Vec3{2, 0, 2}).
		Push(common.Vec3{2, 0, 3}, common.Vec3{2, 0, 2}).
		Push(to, to).
		Generate()
	expect := []common.Vec3{from, {1, 0, 1}, {2, 0, 2}, to}
	assertTrue(t, len(path) == len(expect), "two bends")
	for i := 0; i < len(path) && i < len(expect); i++ {
		assertTrue(t, path[i] == expect[i], "bend on the left vertex, then on the right vertex")
	}
}

// cellMesh builds one unmerged unit square per cell, in cell order.
func cellMesh(cells [][2]float32) *NavMesh {
	var contours [][]common.Vec3
	for _, c := range cells {
		contours = append(contours, square(c[0], c[1], 0))
	}
	opts := DefaultOptions()
	opts.MergeConvexRegions = false
	m, _ := Build(contours, opts)
	return m
}

func checkPathOnMesh(t *testing.T, m *NavMesh, path []common.Vec3) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assertTrue(t, path[i] != path[i-1], "no repeated waypoints")
		seg := common.NewLineSegment(path[i-1], path[i])
		for k := 0; k <= 16; k++ {
			p := seg.At(float32(k) / 16)
			assertTrue(t, m.GetRegionForPoint(p, m.EpsilonContainsTest) != nil, "segment stays on the mesh")
		}
	}
}

func checkWaypoints(t *testing.T, path, expect []common.Vec3) {
	t.Helper()
	assertTrue(t, len(path) == len(expect), "waypoint count")
	for i := 0; i < len(path) && i < len(expect); i++ {
		assertTrue(t, near(path[i], expect[i]), "waypoint")
	}
}

func TestFindPathUTurn(t *testing.T) {
	m := cellMesh([][2]float32{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}})
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{0.5, 0, 2.5}
	path := m.FindPath(from, to)
	checkWaypoints(t, path, []common.Vec3{from, {2, 0, 1}, {2, 0, 2}, to})
	checkPathOnMesh(t, m, path)
}

func TestFindPathRightTurn(t *testing.T) {
	m, stats := Build([][]common.Vec3{square(0, 1, 0), square(1, 1, 0), square(1, 0, 0)}, DefaultOptions())
	assertTrue(t, stats.Merged == 1 && len(m.Regions()) == 2, "row merges, the corner does not")
	from := common.Vec3{0.5, 0, 1.5}
	to := common.Vec3{1.2, 0, 0.2}
	path := m.FindPath(from, to)
	checkWaypoints(t, path, []common.Vec3{from, {1, 0, 1}, to})
	checkPathOnMesh(t, m, path)
}

func TestFindPathSBend(t *testing.T) {
	m := cellMesh([][2]float32{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}})
	from := common.Vec3{0.5, 0, 0.5}
	to := common.Vec3{2.8, 0, 2.1}
	path := m.FindPath(from, to)
	checkWaypoints(t, path, []common.Vec3{from, {1, 0, 1}, {2, 0, 2}, to})
	checkPathOnMesh(t, m, path)
}
