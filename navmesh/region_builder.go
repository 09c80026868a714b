package navmesh

import (
	"sort"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/graph"
	"go.uber.org/zap"
)

type BuildStats struct {
	InputContours   int
	SkippedContours int
	Portals         int
	Merged          int
	Regions         int
	BorderEdges     int
}

type edgeEntry struct {
	cost float32
	edge *HalfEdge
}

// FromContours builds a polygon per contour and then runs FromPolygons.
func (m *NavMesh) FromContours(contours [][]common.Vec3) BuildStats {
	polygons := make([]*Polygon, 0, len(contours))
	skipped := 0
	for i, contour := range contours {
		p, err := NewPolygonFromContour(contour)
		if err != nil {
			logger.Error("navmesh: unable to create polygon from contour",
				zap.Int("contour", i), zap.Error(err))
			skipped++
			continue
		}
		polygons = append(polygons, p)
	}
	stats := m.FromPolygons(polygons)
	stats.InputContours = len(contours)
	stats.SkippedContours = skipped
	return stats
}

// FromPolygons replaces the mesh content with polygons: twins are linked,
// adjacent coplanar polygons are merged while the result stays convex, and
// the graph is rebuilt with one node per surviving region.
func (m *NavMesh) FromPolygons(polygons []*Polygon) BuildStats {
	m.Clear()
	var stats BuildStats

	var initialEdgeList []*HalfEdge
	for _, p := range polygons {
		if p == nil || p.Edge == nil {
			continue
		}
		initialEdgeList = append(initialEdgeList, p.Edges()...)
		m.regions = append(m.regions, p)
	}

	sortedEdgeList := linkTwins(initialEdgeList)
	stats.Portals = len(sortedEdgeList)
	// longest shared edges first
	sort.SliceStable(sortedEdgeList, func(i, j int) bool {
		return sortedEdgeList[i].cost > sortedEdgeList[j].cost
	})

	if m.MergeConvexRegions {
		stats.Merged = m.mergePolygons(sortedEdgeList)
	}

	for i, region := range m.regions {
		region.index = i
		region.ComputeCentroid()
	}
	m.updateBorderEdges()
	m.buildGraph()
	if m.spatialIndex != nil {
		m.UpdateSpatialIndex()
	}

	stats.Regions = len(m.regions)
	stats.BorderEdges = len(m.borderEdges)
	logger.Debug("navmesh: build finished",
		zap.Int("regions", stats.Regions),
		zap.Int("portals", stats.Portals),
		zap.Int("merged", stats.Merged),
		zap.Int("borderEdges", stats.BorderEdges))
	return stats
}

// linkTwins pairs every edge with the edge running the other way between the
// same two vertices. It is quadratic in the edge count; the mesh is built once.
func linkTwins(edges []*HalfEdge) []edgeEntry {
	var res []edgeEntry
	for i, edge0 := range edges {
		if edge0.Twin != nil {
			continue
		}
		for j := i + 1; j < len(edges); j++ {
			edge1 := edges[j]
			if edge1.Twin != nil || edge1.Polygon == edge0.Polygon {
				continue
			}
			if edge0.Matches(edge1) {
				edge0.LinkTwin(edge1)
				res = append(res, edgeEntry{cost: edge0.SquaredLength(), edge: edge0})
				break
			}
		}
	}
	return res
}

// mergePolygons removes shared edges greedily, longest first. A merge splices
// the rings of both polygons around the edge pair; if the result is not convex
// and coplanar the four saved links are put back. Polygons joined by more than
// one portal are never merged: the remaining portal would stay in the ring as a
// zero-width slit with its twin in the same polygon.
func (m *NavMesh) mergePolygons(sortedEdgeList []edgeEntry) int {
	absorbed := make(map[*Polygon]bool)
	merged := 0
	for _, entry := range sortedEdgeList {
		candidate := entry.edge
		twin := candidate.Twin
		polygon, other := candidate.Polygon, twin.Polygon
		if polygon == nil || other == nil || polygon == other {
			continue
		}
		if sharedPortals(polygon, other) > 1 {
			continue
		}

		prev, next := candidate.Prev, candidate.Next
		prevTwin, nextTwin := twin.Prev, twin.Next

		prev.Next = nextTwin
		nextTwin.Prev = prev
		prevTwin.Next = next
		next.Prev = prevTwin
		polygon.Edge = prev

		if polygon.Convex(true) && polygon.Coplanar(m.EpsilonCoplanarTest) {
			polygon.eachEdge(func(e *HalfEdge) bool {
				e.Polygon = polygon
				return false
			})
			// the removed pair no longer belongs to any ring
			candidate.Polygon = nil
			twin.Polygon = nil
			other.Edge = nil
			other.index = -1
			absorbed[other] = true
			merged++
		} else {
			prev.Next = candidate
			next.Prev = candidate
			prevTwin.Next = twin
			nextTwin.Prev = twin
			polygon.Edge = candidate
		}
	}
	if merged > 0 {
		kept := m.regions[:0]
		for _, region := range m.regions {
			if !absorbed[region] {
				kept = append(kept, region)
			}
		}
		m.regions = kept
	}
	return merged
}

// sharedPortals counts the edges of polygon whose twin lies in other.
func sharedPortals(polygon, other *Polygon) int {
	n := 0
	polygon.eachEdge(func(e *HalfEdge) bool {
		if e.Twin != nil && e.Twin.Polygon == other {
			n++
		}
		return false
	})
	return n
}

func (m *NavMesh) updateBorderEdges() {
	m.borderEdges = m.borderEdges[:0]
	for _, region := range m.regions {
		region.eachEdge(func(e *HalfEdge) bool {
			if e.Twin == nil {
				m.borderEdges = append(m.borderEdges, e)
			}
			return false
		})
	}
}

func (m *NavMesh) buildGraph() {
	m.graph.Clear()
	for i, region := range m.regions {
		m.graph.AddNode(graph.NewNode(i, region.Centroid))
	}
	for i, region := range m.regions {
		region.eachEdge(func(e *HalfEdge) bool {
			if e.Twin == nil || e.Twin.Polygon == nil {
				return false
			}
			neighbor := m.GetNodeIndex(e.Twin.Polygon)
			if neighbor < 0 || m.graph.HasEdge(i, neighbor) {
				return false
			}
			cost := common.Vdist(region.Centroid, e.Twin.Polygon.Centroid)
			m.graph.AddEdge(graph.NewEdge(i, neighbor, cost))
			return false
		})
	}
}
