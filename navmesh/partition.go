package navmesh

import (
	"math"
	"sort"

	"github.com/gorustyt/gonavgraph/common"
)

// Cell is one box of the grid with the polygons whose bounds touch it.
type Cell struct {
	AABB    common.AABB
	Entries []*Polygon
}

func (c *Cell) Empty() bool {
	return len(c.Entries) == 0
}

// CellSpacePartitioning is a uniform 3D grid over a fixed box. A polygon is
// stored in every cell its bounding box touches, so lookups are approximate
// and callers still run the exact containment test.
type CellSpacePartitioning struct {
	Bounds common.AABB
	CellsX int
	CellsY int
	CellsZ int
	Cells  []*Cell

	cellSize common.Vec3
}

func NewCellSpacePartitioning(bounds common.AABB, cellsX, cellsY, cellsZ int) *CellSpacePartitioning {
	cellsX, cellsY, cellsZ = max(cellsX, 1), max(cellsY, 1), max(cellsZ, 1)
	c := &CellSpacePartitioning{
		Bounds: bounds,
		CellsX: cellsX,
		CellsY: cellsY,
		CellsZ: cellsZ,
	}
	size := bounds.Size()
	c.cellSize = common.Vec3{size[0] / float32(cellsX), size[1] / float32(cellsY), size[2] / float32(cellsZ)}
	c.Cells = make([]*Cell, 0, cellsX*cellsY*cellsZ)
	for i := 0; i < cellsX; i++ {
		x := bounds.Min[0] + float32(i)*c.cellSize[0]
		for j := 0; j < cellsY; j++ {
			y := bounds.Min[1] + float32(j)*c.cellSize[1]
			for k := 0; k < cellsZ; k++ {
				z := bounds.Min[2] + float32(k)*c.cellSize[2]
				cellMin := common.Vec3{x, y, z}
				c.Cells = append(c.Cells, &Cell{AABB: common.AABB{Min: cellMin, Max: cellMin.Add(c.cellSize)}})
			}
		}
	}
	return c
}

// NewCellSpacePartitioningCentered builds a grid of the given size centered on the origin.
func NewCellSpacePartitioningCentered(width, height, depth float32, cellsX, cellsY, cellsZ int) *CellSpacePartitioning {
	half := common.Vec3{width / 2, height / 2, depth / 2}
	return NewCellSpacePartitioning(common.AABB{Min: half.Mul(-1), Max: half}, cellsX, cellsY, cellsZ)
}

func (c *CellSpacePartitioning) cellIndex(ix, iy, iz int) int {
	return ix*c.CellsY*c.CellsZ + iy*c.CellsZ + iz
}

// axisCoord maps a coordinate already inside the bounds to its cell on one axis.
func (c *CellSpacePartitioning) axisCoord(v float32, axis, cells int) int {
	extent := c.Bounds.Max[axis] - c.Bounds.Min[axis]
	if extent <= 0 {
		return 0
	}
	i := int(math.Floor(float64(float32(cells) * (v - c.Bounds.Min[axis]) / extent)))
	return common.Clamp(i, 0, cells-1)
}

func (c *CellSpacePartitioning) cellCoords(position common.Vec3) (int, int, int) {
	p := c.Bounds.ClampPoint(position)
	return c.axisCoord(p[0], 0, c.CellsX), c.axisCoord(p[1], 1, c.CellsY), c.axisCoord(p[2], 2, c.CellsZ)
}

// GetIndexForPosition clamps position into the grid and returns its cell index.
func (c *CellSpacePartitioning) GetIndexForPosition(position common.Vec3) int {
	ix, iy, iz := c.cellCoords(position)
	return c.cellIndex(ix, iy, iz)
}

func (c *CellSpacePartitioning) CellForPosition(position common.Vec3) *Cell {
	return c.Cells[c.GetIndexForPosition(position)]
}

// cellRange returns the cells that may touch aabb. One cell of slack on each
// side covers boxes lying exactly on a cell boundary.
func (c *CellSpacePartitioning) cellRange(aabb common.AABB) (lo, hi [3]int) {
	lx, ly, lz := c.cellCoords(aabb.Min)
	hx, hy, hz := c.cellCoords(aabb.Max)
	lo = [3]int{max(lx-1, 0), max(ly-1, 0), max(lz-1, 0)}
	hi = [3]int{min(hx+1, c.CellsX-1), min(hy+1, c.CellsY-1), min(hz+1, c.CellsZ-1)}
	return lo, hi
}

func (c *CellSpacePartitioning) forEachCell(aabb common.AABB, f func(cell *Cell)) {
	if !c.Bounds.Intersects(aabb) {
		return
	}
	lo, hi := c.cellRange(aabb)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				cell := c.Cells[c.cellIndex(x, y, z)]
				if cell.AABB.Intersects(aabb) {
					f(cell)
				}
			}
		}
	}
}

// AddPolygon stores polygon in every cell its bounds touch.
func (c *CellSpacePartitioning) AddPolygon(polygon *Polygon) {
	c.forEachCell(polygon.Bounds(), func(cell *Cell) {
		cell.Entries = append(cell.Entries, polygon)
	})
}

// Query returns the distinct polygons stored in cells touching aabb, in the
// order they were added.
func (c *CellSpacePartitioning) Query(aabb common.AABB) []*Polygon {
	var res []*Polygon
	seen := make(map[*Polygon]bool)
	c.forEachCell(aabb, func(cell *Cell) {
		for _, p := range cell.Entries {
			if !seen[p] {
				seen[p] = true
				res = append(res, p)
			}
		}
	})
	// cells are visited in grid order, restore region order
	sort.SliceStable(res, func(i, j int) bool { return res[i].index < res[j].index })
	return res
}

func (c *CellSpacePartitioning) MakeEmpty() {
	for _, cell := range c.Cells {
		cell.Entries = nil
	}
}

func (c *CellSpacePartitioning) ItemCount() int {
	n := 0
	for _, cell := range c.Cells {
		n += len(cell.Entries)
	}
	return n
}

// UpdateSpatialIndex refills the index from the current regions. Call it
// whenever the region list changes; there is no incremental update.
func (m *NavMesh) UpdateSpatialIndex() *NavMesh {
	if m.spatialIndex == nil {
		return m
	}
	m.spatialIndex.MakeEmpty()
	for _, region := range m.regions {
		m.spatialIndex.AddPolygon(region)
	}
	return m
}

// SetSpatialIndex installs index (nil removes it) and fills it from the regions.
func (m *NavMesh) SetSpatialIndex(index *CellSpacePartitioning) *NavMesh {
	m.spatialIndex = index
	return m.UpdateSpatialIndex()
}

// BuildSpatialIndex sizes a grid to the regions' bounds. Flat axes get a unit
// extent so points slightly above or below the surface still map to a cell.
func (m *NavMesh) BuildSpatialIndex(cellsX, cellsY, cellsZ int) *CellSpacePartitioning {
	bounds := common.EmptyAABB()
	for _, region := range m.regions {
		bounds.ExpandByAABB(region.Bounds())
	}
	if bounds.IsEmpty() {
		bounds = common.AABB{}
	}
	for axis := 0; axis < 3; axis++ {
		if bounds.Max[axis]-bounds.Min[axis] <= 0 {
			bounds.Min[axis] -= 0.5
			bounds.Max[axis] += 0.5
		}
	}
	index := NewCellSpacePartitioning(bounds, cellsX, cellsY, cellsZ)
	m.SetSpatialIndex(index)
	return index
}
