package navmesh

import "github.com/gorustyt/gonavgraph/common"

// PortalEdge is the shared boundary crossed between two regions. The start
// and end of a corridor are degenerate portals with Left == Right.
type PortalEdge struct {
	Left  common.Vec3
	Right common.Vec3
}

// Corridor turns a sequence of portals into the shortest path that stays
// inside them (string pulling).
type Corridor struct {
	portalEdges []PortalEdge
}

func NewCorridor() *Corridor {
	return &Corridor{}
}

func (c *Corridor) Push(left, right common.Vec3) *Corridor {
	c.portalEdges = append(c.portalEdges, PortalEdge{Left: left, Right: right})
	return c
}

func (c *Corridor) PortalEdges() []PortalEdge {
	return c.portalEdges
}

func (c *Corridor) Reset() {
	c.portalEdges = c.portalEdges[:0]
}

// Generate runs the funnel over the portals. The apex starts at the first
// portal; whenever one side of the funnel crosses the other, the crossed
// vertex becomes the new apex, is emitted, and the scan restarts after it.
func (c *Corridor) Generate() []common.Vec3 {
	portalEdges := c.portalEdges
	if len(portalEdges) == 0 {
		return []common.Vec3{}
	}

	var (
		apexIndex  = 0
		leftIndex  = 0
		rightIndex = 0

		portalApex  = portalEdges[0].Left
		portalLeft  = portalEdges[0].Left
		portalRight = portalEdges[0].Right
	)
	path := []common.Vec3{portalApex}

	for i := 1; i < len(portalEdges); i++ {
		left := portalEdges[i].Left
		right := portalEdges[i].Right

		// Right vertex.
		if common.Area(portalApex, portalRight, right) <= 0 {
			if portalApex == portalRight || common.Area(portalApex, portalLeft, right) > 0 {
				// tighten the funnel
				portalRight = right
				rightIndex = i
			} else {
				// right over left, left becomes the new apex
				path = appendWaypoint(path, portalLeft)
				portalApex = portalLeft
				apexIndex = leftIndex

				portalLeft = portalApex
				portalRight = portalApex
				leftIndex = apexIndex
				rightIndex = apexIndex

				// Restart
				i = apexIndex
				continue
			}
		}

		// Left vertex.
		if common.Area(portalApex, portalLeft, left) >= 0 {
			if portalApex == portalLeft || common.Area(portalApex, portalRight, left) < 0 {
				portalLeft = left
				leftIndex = i
			} else {
				path = appendWaypoint(path, portalRight)
				portalApex = portalRight
				apexIndex = rightIndex

				portalLeft = portalApex
				portalRight = portalApex
				leftIndex = apexIndex
				rightIndex = apexIndex

				i = apexIndex
				continue
			}
		}
	}

	return appendWaypoint(path, portalEdges[len(portalEdges)-1].Left)
}

// appendWaypoint skips a point equal to the last one, which happens when the
// apex is emitted again after a restart.
func appendWaypoint(path []common.Vec3, p common.Vec3) []common.Vec3 {
	if len(path) > 0 && path[len(path)-1] == p {
		return path
	}
	return append(path, p)
}
