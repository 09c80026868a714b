package debug_utils

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gorustyt/gonavgraph/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageDraw rasterizes primitives into an RGBA image looking down the y axis:
// world x goes right and world z goes up.
type ImageDraw struct {
	Img *image.RGBA

	bounds common.AABB
	scale  float32
	margin float32

	raster *vector.Rasterizer
	prim   DuDebugDrawPrimitives
	size   float32
	verts  []common.Vec3
	colors []Colorb
}

// NewImageDraw sizes the image to bounds at scale pixels per world unit.
func NewImageDraw(bounds common.AABB, scale, margin float32, background Colorb) *ImageDraw {
	size := bounds.Size()
	w := int(math.Ceil(float64(size[0]*scale + 2*margin)))
	h := int(math.Ceil(float64(size[2]*scale + 2*margin)))
	w, h = max(w, 1), max(h, 1)
	d := &ImageDraw{
		Img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		bounds: bounds,
		scale:  scale,
		margin: margin,
		raster: vector.NewRasterizer(w, h),
	}
	draw.Draw(d.Img, d.Img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
	return d
}

// Project maps a world position to pixel coordinates.
func (d *ImageDraw) Project(p common.Vec3) (x, y float32) {
	x = d.margin + (p[0]-d.bounds.Min[0])*d.scale
	y = d.margin + (d.bounds.Max[2]-p[2])*d.scale
	return x, y
}

func (d *ImageDraw) Begin(prim DuDebugDrawPrimitives, size ...float32) {
	d.prim = prim
	d.size = 1
	if len(size) > 0 {
		d.size = size[0]
	}
	d.verts = d.verts[:0]
	d.colors = d.colors[:0]
}

func (d *ImageDraw) Vertex(pos common.Vec3, color Colorb) {
	d.verts = append(d.verts, pos)
	d.colors = append(d.colors, color)
}

func (d *ImageDraw) End() {
	switch d.prim {
	case DU_DRAW_POINTS:
		for i, v := range d.verts {
			d.fillPoint(v, d.colors[i])
		}
	case DU_DRAW_LINES:
		for i := 0; i+1 < len(d.verts); i += 2 {
			d.fillLine(d.verts[i], d.verts[i+1], d.colors[i])
		}
	case DU_DRAW_TRIS:
		for i := 0; i+2 < len(d.verts); i += 3 {
			d.fillPolygon(d.verts[i:i+3], d.colors[i])
		}
	case DU_DRAW_QUADS:
		for i := 0; i+3 < len(d.verts); i += 4 {
			d.fillPolygon(d.verts[i:i+4], d.colors[i])
		}
	}
	d.verts = d.verts[:0]
	d.colors = d.colors[:0]
}

func (d *ImageDraw) AreaToCol(area int) Colorb {
	return duAreaToCol(area)
}

// Text draws a label with its baseline starting at pos.
func (d *ImageDraw) Text(pos common.Vec3, text string, color Colorb) {
	x, y := d.Project(pos)
	drawer := font.Drawer{
		Dst:  d.Img,
		Src:  image.NewUniform(color.NRGBA()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	drawer.DrawString(text)
}

func (d *ImageDraw) fill(color Colorb) {
	d.raster.Draw(d.Img, d.Img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

func (d *ImageDraw) fillPolygon(verts []common.Vec3, color Colorb) {
	b := d.Img.Bounds()
	d.raster.Reset(b.Dx(), b.Dy())
	for i, v := range verts {
		x, y := d.Project(v)
		if i == 0 {
			d.raster.MoveTo(x, y)
		} else {
			d.raster.LineTo(x, y)
		}
	}
	d.raster.ClosePath()
	d.fill(color)
}

// fillLine draws a segment as a quad d.size pixels wide.
func (d *ImageDraw) fillLine(a, b common.Vec3, color Colorb) {
	ax, ay := d.Project(a)
	bx, by := d.Project(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		d.fillPoint(a, color)
		return
	}
	half := max(d.size, 1) / 2
	nx, ny := -dy/l*half, dx/l*half

	r := d.Img.Bounds()
	d.raster.Reset(r.Dx(), r.Dy())
	d.raster.MoveTo(ax+nx, ay+ny)
	d.raster.LineTo(bx+nx, by+ny)
	d.raster.LineTo(bx-nx, by-ny)
	d.raster.LineTo(ax-nx, ay-ny)
	d.raster.ClosePath()
	d.fill(color)
}

func (d *ImageDraw) fillPoint(p common.Vec3, color Colorb) {
	x, y := d.Project(p)
	half := max(d.size, 1) / 2
	r := d.Img.Bounds()
	d.raster.Reset(r.Dx(), r.Dy())
	d.raster.MoveTo(x-half, y-half)
	d.raster.LineTo(x+half, y-half)
	d.raster.LineTo(x+half, y+half)
	d.raster.LineTo(x-half, y+half)
	d.raster.ClosePath()
	d.fill(color)
}

func (d *ImageDraw) WritePNG(w io.Writer) error {
	return png.Encode(w, d.Img)
}
