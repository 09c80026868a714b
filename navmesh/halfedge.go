package navmesh

import "github.com/gorustyt/gonavgraph/common"

// HalfEdge is one directed side of a polygon edge. Vertex is the head; the
// tail is the previous edge's vertex. Twin is the opposite half-edge of the
// neighbouring polygon, nil on the border of the walkable surface.
type HalfEdge struct {
	Vertex  common.Vec3
	Next    *HalfEdge
	Prev    *HalfEdge
	Twin    *HalfEdge
	Polygon *Polygon
}

func NewHalfEdge(vertex common.Vec3) *HalfEdge {
	return &HalfEdge{Vertex: vertex}
}

func (e *HalfEdge) Head() common.Vec3 {
	return e.Vertex
}

// Tail returns the start vertex, or the head while the edge is still unlinked.
func (e *HalfEdge) Tail() common.Vec3 {
	if e.Prev == nil {
		return e.Vertex
	}
	return e.Prev.Vertex
}

func (e *HalfEdge) Length() float32 {
	return common.Vdist(e.Tail(), e.Head())
}

func (e *HalfEdge) SquaredLength() float32 {
	return common.VdistSqr(e.Tail(), e.Head())
}

// Direction is the unit vector from tail to head.
func (e *HalfEdge) Direction() common.Vec3 {
	return common.Vnormalize(e.Head().Sub(e.Tail()))
}

func (e *HalfEdge) Segment() common.LineSegment {
	return common.NewLineSegment(e.Tail(), e.Head())
}

func (e *HalfEdge) LinkTwin(twin *HalfEdge) {
	e.Twin = twin
	twin.Twin = e
}

// IsPortal reports whether the edge is shared with a neighbouring region.
func (e *HalfEdge) IsPortal() bool {
	return e.Twin != nil
}

// Matches reports whether other runs along the same segment in reverse.
func (e *HalfEdge) Matches(other *HalfEdge) bool {
	return common.Vequal(e.Tail(), other.Head()) && common.Vequal(e.Head(), other.Tail())
}
