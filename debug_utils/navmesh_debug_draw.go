package debug_utils

import (
	"strconv"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/navmesh"
)

const (
	DU_DRAWNAVMESH_PORTALS       = 0x01
	DU_DRAWNAVMESH_BORDERS       = 0x02
	DU_DRAWNAVMESH_GRAPH         = 0x04
	DU_DRAWNAVMESH_SPATIAL_INDEX = 0x08
	DU_DRAWNAVMESH_LABELS        = 0x10

	DU_DRAWNAVMESH_ALL = DU_DRAWNAVMESH_PORTALS | DU_DRAWNAVMESH_BORDERS | DU_DRAWNAVMESH_GRAPH |
		DU_DRAWNAVMESH_SPATIAL_INDEX | DU_DRAWNAVMESH_LABELS
)

// DuDebugDrawNavMesh draws every region filled with its own color plus the
// overlays selected by flags.
func DuDebugDrawNavMesh(dd DuDebugDraw, mesh *navmesh.NavMesh, flags int) {
	if dd == nil || mesh == nil {
		return
	}

	if flags&DU_DRAWNAVMESH_SPATIAL_INDEX != 0 && mesh.SpatialIndex() != nil {
		DuDebugDrawSpatialIndex(dd, mesh.SpatialIndex(), DuRGBA(0, 0, 0, 32))
	}

	for _, region := range mesh.Regions() {
		DuDebugDrawNavMeshPoly(dd, region, DuTransCol(dd.AreaToCol(region.Index()+1), 160))
	}

	if flags&DU_DRAWNAVMESH_PORTALS != 0 {
		dd.Begin(DU_DRAW_LINES, 1.5)
		col := DuRGBA(255, 255, 255, 160)
		for _, region := range mesh.Regions() {
			for _, e := range region.Edges() {
				// each portal is shared by two regions, draw it once
				if e.Twin != nil && e.Twin.Polygon != nil && region.Index() < e.Twin.Polygon.Index() {
					dd.Vertex(e.Tail(), col)
					dd.Vertex(e.Head(), col)
				}
			}
		}
		dd.End()
	}

	if flags&DU_DRAWNAVMESH_BORDERS != 0 {
		dd.Begin(DU_DRAW_LINES, 2.5)
		col := DuRGBA(0, 48, 64, 220)
		for _, e := range mesh.BorderEdges() {
			dd.Vertex(e.Tail(), col)
			dd.Vertex(e.Head(), col)
		}
		dd.End()
	}

	if flags&DU_DRAWNAVMESH_GRAPH != 0 {
		g := mesh.Graph()
		col := DuRGBA(255, 196, 0, 200)
		dd.Begin(DU_DRAW_LINES, 1)
		for _, edge := range g.GetEdges() {
			if edge.From < edge.To {
				dd.Vertex(g.GetNode(edge.From).Position, col)
				dd.Vertex(g.GetNode(edge.To).Position, col)
			}
		}
		dd.End()
		dd.Begin(DU_DRAW_POINTS, 4)
		for _, node := range g.GetNodes() {
			dd.Vertex(node.Position, col)
		}
		dd.End()
	}

	if flags&DU_DRAWNAVMESH_LABELS != 0 {
		col := DuRGBA(0, 0, 0, 255)
		for _, region := range mesh.Regions() {
			dd.Text(region.Centroid, strconv.Itoa(region.Index()), col)
		}
	}
}

// DuDebugDrawNavMeshPoly fills a convex region as a triangle fan and outlines it.
func DuDebugDrawNavMeshPoly(dd DuDebugDraw, region *navmesh.Polygon, col Colorb) {
	if dd == nil {
		return
	}
	contour := region.Contour()
	if len(contour) < 3 {
		return
	}
	dd.Begin(DU_DRAW_TRIS)
	for i := 2; i < len(contour); i++ {
		dd.Vertex(contour[0], col)
		dd.Vertex(contour[i-1], col)
		dd.Vertex(contour[i], col)
	}
	dd.End()

	dd.Begin(DU_DRAW_LINES, 1)
	edgeCol := DuDarkenCol(DuTransCol(col, 255))
	for i := range contour {
		dd.Vertex(contour[i], edgeCol)
		dd.Vertex(contour[common.Next(i, len(contour))], edgeCol)
	}
	dd.End()
}

func DuDebugDrawSpatialIndex(dd DuDebugDraw, index *navmesh.CellSpacePartitioning, col Colorb) {
	if dd == nil || index == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, 1)
	for _, cell := range index.Cells {
		DuAppendBoxWire(dd, cell.AABB, col)
	}
	dd.End()
}

// DuDebugDrawPath draws the waypoints of a path and the segments between them.
func DuDebugDrawPath(dd DuDebugDraw, path []common.Vec3, col Colorb, lineWidth float32) {
	if dd == nil || len(path) == 0 {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 1; i < len(path); i++ {
		dd.Vertex(path[i-1], col)
		dd.Vertex(path[i], col)
	}
	dd.End()
	dd.Begin(DU_DRAW_POINTS, lineWidth*2)
	for _, p := range path {
		dd.Vertex(p, col)
	}
	dd.End()
}

// DrawOptions controls DrawNavMesh.
type DrawOptions struct {
	// Scale is pixels per world unit.
	Scale  float32
	Margin float32
	Flags  int
}

func DefaultDrawOptions() DrawOptions {
	return DrawOptions{Scale: 32, Margin: 16, Flags: DU_DRAWNAVMESH_PORTALS | DU_DRAWNAVMESH_BORDERS | DU_DRAWNAVMESH_LABELS}
}

// DrawNavMesh renders mesh and the optional paths into a new image sized to the mesh bounds.
func DrawNavMesh(mesh *navmesh.NavMesh, opts DrawOptions, paths ...[]common.Vec3) *ImageDraw {
	bounds := common.EmptyAABB()
	for _, region := range mesh.Regions() {
		bounds.ExpandByAABB(region.Bounds())
	}
	for _, path := range paths {
		for _, p := range path {
			bounds.ExpandByPoint(p)
		}
	}
	if bounds.IsEmpty() {
		bounds = common.AABB{Max: common.Vec3{1, 0, 1}}
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultDrawOptions().Scale
	}
	dd := NewImageDraw(bounds, opts.Scale, opts.Margin, DuRGBA(255, 255, 255, 255))
	DuDebugDrawNavMesh(dd, mesh, opts.Flags)
	for i, path := range paths {
		DuDebugDrawPath(dd, path, DuDarkenCol(DuIntToCol(i+7, 255)), 3)
	}
	return dd
}
