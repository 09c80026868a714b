package debug_utils

import "github.com/gorustyt/gonavgraph/common"

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
	DU_DRAW_QUADS
)

// DuDebugDraw receives primitives between Begin and End, one vertex at a time.
type DuDebugDraw interface {
	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float32)

	/// Submit a vertex
	///  @param pos [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex(pos common.Vec3, color Colorb)

	/// End drawing primitives.
	End()

	/// Compute a color for given area.
	AreaToCol(area int) Colorb

	/// Draw a text label at pos.
	Text(pos common.Vec3, text string, color Colorb)
}

// DuDisplayList records primitives so they can be replayed on another DuDebugDraw.
type DuDisplayList struct {
	pos   []common.Vec3
	color []Colorb

	prim     DuDebugDrawPrimitives
	primSize float32
}

func NewDuDisplayList(capacity int) *DuDisplayList {
	if capacity < 8 {
		capacity = 8
	}
	return &DuDisplayList{
		pos:      make([]common.Vec3, 0, capacity),
		color:    make([]Colorb, 0, capacity),
		prim:     DU_DRAW_LINES,
		primSize: 1,
	}
}

func (d *DuDisplayList) Begin(prim DuDebugDrawPrimitives, size ...float32) {
	d.Clear()
	d.prim = prim
	d.primSize = 1
	if len(size) > 0 {
		d.primSize = size[0]
	}
}

func (d *DuDisplayList) Vertex(pos common.Vec3, color Colorb) {
	d.pos = append(d.pos, pos)
	d.color = append(d.color, color)
}

func (d *DuDisplayList) End() {}

func (d *DuDisplayList) AreaToCol(area int) Colorb {
	return duAreaToCol(area)
}

func (d *DuDisplayList) Text(common.Vec3, string, Colorb) {}

func (d *DuDisplayList) Clear() {
	d.pos = d.pos[:0]
	d.color = d.color[:0]
}

func (d *DuDisplayList) Size() int {
	return len(d.pos)
}

func (d *DuDisplayList) Draw(dd DuDebugDraw) {
	if dd == nil || len(d.pos) == 0 {
		return
	}
	dd.Begin(d.prim, d.primSize)
	for i := range d.pos {
		dd.Vertex(d.pos[i], d.color[i])
	}
	dd.End()
}

func duAreaToCol(area int) Colorb {
	if area == 0 {
		// Treat zero area type as default.
		return DuRGBA(0, 192, 255, 255)
	}
	return DuIntToCol(area, 255)
}

func DuDebugDrawCross(dd DuDebugDraw, pos common.Vec3, size float32, col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCross(dd, pos, size, col)
	dd.End()
}

// DuAppendCross adds the xz arms of a cross; y is flattened away by top-down views.
func DuAppendCross(dd DuDebugDraw, pos common.Vec3, s float32, col Colorb) {
	dd.Vertex(pos.Add(common.Vec3{-s, 0, 0}), col)
	dd.Vertex(pos.Add(common.Vec3{s, 0, 0}), col)
	dd.Vertex(pos.Add(common.Vec3{0, 0, -s}), col)
	dd.Vertex(pos.Add(common.Vec3{0, 0, s}), col)
}

func DuDebugDrawBoxWire(dd DuDebugDraw, box common.AABB, col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendBoxWire(dd, box, col)
	dd.End()
}

// DuAppendBoxWire adds the bottom rectangle of box.
func DuAppendBoxWire(dd DuDebugDraw, box common.AABB, col Colorb) {
	minx, miny, minz := box.Min[0], box.Min[1], box.Min[2]
	maxx, maxz := box.Max[0], box.Max[2]
	corners := []common.Vec3{{minx, miny, minz}, {maxx, miny, minz}, {maxx, miny, maxz}, {minx, miny, maxz}}
	for i := range corners {
		dd.Vertex(corners[i], col)
		dd.Vertex(corners[common.Next(i, len(corners))], col)
	}
}
