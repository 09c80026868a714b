package navmesh

import (
	"errors"
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

func TestPolygonFromContour(t *testing.T) {
	_, err := NewPolygonFromContour([]common.Vec3{{0, 0, 0}, {1, 0, 0}})
	assertTrue(t, errors.Is(err, ErrContourTooShort), "two points are rejected")

	p, err := NewPolygonFromContour(square(0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, p.EdgeCount() == 4, "four edges")
	assertTrue(t, p.Index() == -1, "detached polygon has no index")
	assertTrue(t, common.ContourArea(p.Contour()) > 0, "winding normalised")
	assertTrue(t, near(p.Plane.Normal, common.Vec3{0, 1, 0}), "normal points up")
	assertTrue(t, common.Abs(p.Plane.DistanceToPoint(common.Vec3{0.3, 2, 0.3})) < 1e-6, "plane through the contour")
	assertTrue(t, near(p.Centroid, common.Vec3{0.5, 2, 0.5}), "centroid")

	for _, e := range p.Edges() {
		assertTrue(t, e.Next.Prev == e && e.Prev.Next == e, "ring links")
		assertTrue(t, e.Polygon == p, "owner")
		assertTrue(t, !e.IsPortal(), "no twin before linking")
	}

	b := p.Bounds()
	assertTrue(t, b.Min == common.Vec3{0, 2, 0} && b.Max == common.Vec3{1, 2, 1}, "bounds")
}

func TestPolygonCollinearStart(t *testing.T) {
	p, err := NewPolygonFromContour([]common.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {1, 0, 2}, {1, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, near(p.Plane.Normal, common.Vec3{0, 1, 0}), "plane skips the collinear triple")
}

func TestPolygonContains(t *testing.T) {
	p, _ := NewPolygonFromContour(square(0, 0, 0))
	cases := []struct {
		point  common.Vec3
		expect bool
	}{
		{common.Vec3{0.5, 0, 0.5}, true},
		{common.Vec3{0, 0, 0}, true},
		{common.Vec3{1, 0, 0.5}, true},
		{common.Vec3{0.5, 0.9, 0.5}, true},
		{common.Vec3{0.5, 1.1, 0.5}, false},
		{common.Vec3{1.01, 0, 0.5}, false},
		{common.Vec3{-0.5, 0, -0.5}, false},
	}
	for _, c := range cases {
		assertTrue(t, p.Contains(c.point, 1) == c.expect, "contains")
	}
}

func TestPolygonConvexAndCoplanar(t *testing.T) {
	p, _ := NewPolygonFromContour(square(0, 0, 0))
	assertTrue(t, p.Convex(true), "square is convex")

	concave, _ := NewPolygonFromContour([]common.Vec3{
		{0, 0, 0}, {2, 0, 0}, {2, 0, 2}, {1, 0, 2}, {1, 0, 1}, {0, 0, 1},
	})
	assertTrue(t, !concave.Convex(true), "L shape is not convex")
	assertTrue(t, concave.Coplanar(1e-3), "flat L shape is coplanar")

	// square with a zero-width slit cut in from the corner (1, 0)
	slit, _ := NewPolygonFromContour([]common.Vec3{
		{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}, {0.5, 0, 0}, {1, 0, 0},
	})
	assertTrue(t, !slit.Convex(true), "ring that doubles back is not convex")

	bent, _ := NewPolygonFromContour([]common.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0.5, 1}, {0, 0, 1}})
	assertTrue(t, !bent.Coplanar(1e-3), "lifted corner is not coplanar")
}

func TestTwinLinking(t *testing.T) {
	a, _ := NewPolygonFromContour(square(0, 0, 0))
	b, _ := NewPolygonFromContour(square(1, 0, 0))
	entries := linkTwins(append(a.Edges(), b.Edges()...))
	assertTrue(t, len(entries) == 1, "one shared edge")

	portal := a.PortalTo(b)
	assertTrue(t, portal != nil, "a has a portal to b")
	assertTrue(t, portal.Twin == b.PortalTo(a), "portals are twins")
	assertTrue(t, portal.Twin.Twin == portal, "symmetric")
	assertTrue(t, near(portal.Tail(), portal.Twin.Head()), "reversed direction")
	assertTrue(t, len(a.Neighbors()) == 1 && a.Neighbors()[0] == b, "neighbour")
	assertTrue(t, common.Abs(portal.Length()-1) < 1e-6, "unit length")
}
