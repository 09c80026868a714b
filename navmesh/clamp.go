package navmesh

import "github.com/gorustyt/gonavgraph/common"

// ClampMovement keeps a step from start to end on the mesh. If end is on a
// region it is returned as is. Otherwise the movement is projected onto the
// border edge closest to start so the agent slides along the wall; if the
// slide leaves the edge or the mesh, the agent stays at start.
func (m *NavMesh) ClampMovement(current *Polygon, start, end common.Vec3) (common.Vec3, *Polygon) {
	if region := m.GetRegionForPoint(end, m.EpsilonContainsTest); region != nil {
		return end, region
	}

	edge, closestPoint, ok := m.closestBorderEdge(start)
	if !ok {
		return start, current
	}

	edgeDirection := edge.Direction()
	length := end.Sub(start).Dot(edgeDirection)
	newPosition := closestPoint.Add(edgeDirection.Mul(length))

	clamped := start
	t := edge.Segment().ClosestPointToPointParameter(newPosition, false)
	if t >= 0 && t <= 1 {
		clamped = newPosition
	}

	if region := m.GetRegionForPoint(clamped, m.EpsilonContainsTest); region != nil {
		return clamped, region
	}
	return start, current
}

// closestBorderEdge searches the border edges of the spatial-index cell of
// point first and falls back to all border edges when the cell has none.
func (m *NavMesh) closestBorderEdge(point common.Vec3) (closest *HalfEdge, closestPoint common.Vec3, ok bool) {
	candidates := m.borderEdges
	if m.spatialIndex != nil {
		var local []*HalfEdge
		for _, region := range m.spatialIndex.CellForPosition(point).Entries {
			region.eachEdge(func(e *HalfEdge) bool {
				if e.Twin == nil {
					local = append(local, e)
				}
				return false
			})
		}
		if len(local) > 0 {
			candidates = local
		}
	}

	minDistance := common.MaxFloat32()
	for _, edge := range candidates {
		pointOnSegment := edge.Segment().ClosestPointToPoint(point, true)
		d := common.VdistSqr(pointOnSegment, point)
		if d < minDistance {
			minDistance = d
			closest = edge
			closestPoint = pointOnSegment
		}
	}
	return closest, closestPoint, closest != nil
}
