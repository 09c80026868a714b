package navmesh

import (
	"errors"
	"fmt"

	"github.com/gorustyt/gonavgraph/common"
)

var ErrContourTooShort = errors.New("navmesh: contour needs at least three points")

// Region is a polygon that survived the merge pass and backs one graph node.
type Region = Polygon

// Polygon is a planar convex face stored as a ring of half-edges.
type Polygon struct {
	Centroid common.Vec3
	Plane    common.Plane
	Edge     *HalfEdge

	index int
}

// NewPolygonFromContour builds the half-edge ring for points. Contours wound
// clockwise on the xz-plane are reversed so every polygon has the winding
// LeftOn expects.
func NewPolygonFromContour(points []common.Vec3) (*Polygon, error) {
	p := &Polygon{index: -1}
	if err := p.FromContour(points); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Polygon) FromContour(points []common.Vec3) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: got %d", ErrContourTooShort, len(points))
	}
	contour := make([]common.Vec3, len(points))
	copy(contour, points)
	if common.ContourArea(contour) < 0 {
		for i, j := 0, len(contour)-1; i < j; i, j = i+1, j-1 {
			contour[i], contour[j] = contour[j], contour[i]
		}
	}

	edges := make([]*HalfEdge, len(contour))
	for i, point := range contour {
		edges[i] = NewHalfEdge(point)
	}
	n := len(edges)
	for i, current := range edges {
		current.Prev = edges[common.Prev(i, n)]
		current.Next = edges[common.Next(i, n)]
		current.Polygon = p
	}
	p.Edge = edges[0]
	p.computePlane(contour)
	p.ComputeCentroid()
	return nil
}

// computePlane uses the first three points, moving on to the next triple
// while the points are collinear.
func (p *Polygon) computePlane(contour []common.Vec3) {
	for i := 0; i+2 < len(contour); i++ {
		p.Plane.FromCoplanarPoints(contour[i], contour[i+1], contour[i+2])
		if p.Plane.Normal.Len() > 0 {
			return
		}
	}
}

// Index is the position in the owning mesh's region list, -1 if absorbed or detached.
func (p *Polygon) Index() int {
	return p.index
}

func (p *Polygon) Edges() []*HalfEdge {
	var res []*HalfEdge
	p.eachEdge(func(e *HalfEdge) bool {
		res = append(res, e)
		return false
	})
	return res
}

// eachEdge walks the ring once; f returning true stops the walk.
func (p *Polygon) eachEdge(f func(e *HalfEdge) (stop bool)) {
	if p.Edge == nil {
		return
	}
	edge := p.Edge
	common.DoWhile(func() bool {
		if f(edge) {
			return true
		}
		edge = edge.Next
		return false
	}, func() bool {
		return edge != p.Edge
	})
}

func (p *Polygon) EdgeCount() int {
	count := 0
	p.eachEdge(func(*HalfEdge) bool {
		count++
		return false
	})
	return count
}

// Contour returns the head vertices in ring order.
func (p *Polygon) Contour() []common.Vec3 {
	var res []common.Vec3
	p.eachEdge(func(e *HalfEdge) bool {
		res = append(res, e.Head())
		return false
	})
	return res
}

func (p *Polygon) ComputeCentroid() common.Vec3 {
	var sum common.Vec3
	count := 0
	p.eachEdge(func(e *HalfEdge) bool {
		sum = sum.Add(e.Head())
		count++
		return false
	})
	if count > 0 {
		p.Centroid = sum.Mul(1 / float32(count))
	}
	return p.Centroid
}

// Contains tests point against every edge on the xz-plane, boundary included,
// and against the polygon plane within epsilon.
func (p *Polygon) Contains(point common.Vec3, epsilon float32) bool {
	inside := true
	p.eachEdge(func(e *HalfEdge) bool {
		if !common.LeftOn(e.Tail(), e.Head(), point) {
			inside = false
			return true
		}
		return false
	})
	if !inside {
		return false
	}
	return common.Abs(p.Plane.DistanceToPoint(point)) <= epsilon
}

// Convex checks every consecutive vertex triple for a consistent turn.
// A ring that doubles back on itself is not convex even though the turn has
// zero area.
func (p *Polygon) Convex(ccw bool) bool {
	convex := true
	p.eachEdge(func(e *HalfEdge) bool {
		v1, v2, v3 := e.Tail(), e.Head(), e.Next.Head()
		if ccw {
			convex = common.LeftOn(v1, v2, v3)
		} else {
			convex = common.LeftOn(v3, v2, v1)
		}
		if convex && foldsBack(v1, v2, v3) {
			convex = false
		}
		return !convex
	})
	return convex
}

// foldsBack reports whether v2->v3 runs back along v1->v2.
func foldsBack(v1, v2, v3 common.Vec3) bool {
	d1, d2 := v2.Sub(v1), v3.Sub(v2)
	if d1.Dot(d2) >= 0 {
		return false
	}
	return d1.Cross(d2).LenSqr() <= 1e-12*d1.LenSqr()*d2.LenSqr()
}

func (p *Polygon) Coplanar(epsilon float32) bool {
	coplanar := true
	p.eachEdge(func(e *HalfEdge) bool {
		coplanar = common.Abs(p.Plane.DistanceToPoint(e.Head())) <= epsilon
		return !coplanar
	})
	return coplanar
}

func (p *Polygon) Bounds() common.AABB {
	return common.AABBFromPoints(p.Contour())
}

// PortalTo returns the edge of p whose twin belongs to other.
func (p *Polygon) PortalTo(other *Polygon) *HalfEdge {
	var portal *HalfEdge
	p.eachEdge(func(e *HalfEdge) bool {
		if e.Twin != nil && e.Twin.Polygon == other {
			portal = e
			return true
		}
		return false
	})
	return portal
}

// Neighbors returns the distinct polygons across the portal edges of p.
func (p *Polygon) Neighbors() []*Polygon {
	var res []*Polygon
	seen := make(map[*Polygon]bool)
	p.eachEdge(func(e *HalfEdge) bool {
		if e.Twin != nil && e.Twin.Polygon != nil && !seen[e.Twin.Polygon] {
			seen[e.Twin.Polygon] = true
			res = append(res, e.Twin.Polygon)
		}
		return false
	})
	return res
}
