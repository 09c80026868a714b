package navmesh

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/common/message"
	"github.com/gorustyt/gonavgraph/common/rw"
	"github.com/gorustyt/gonavgraph/graph"
)

const (
	// NavMeshMagic reads "NAVG" in the little-endian stream.
	NavMeshMagic          = 'G'<<24 | 'V'<<16 | 'A'<<8 | 'N'
	NavMeshVersion uint32 = 1
)

var (
	ErrBadMagic        = errors.New("navmesh: wrong magic number")
	ErrBadVersion      = errors.New("navmesh: unsupported data version")
	ErrSnapshotInvalid = errors.New("navmesh: invalid snapshot")
)

// Snapshot is the persisted form of a built mesh: enough to restore it
// without running the merge pass again.
type Snapshot struct {
	Version      uint32                `json:"version"`
	Options      Options               `json:"options"`
	Regions      [][]common.Vec3       `json:"regions"`
	Graph        GraphSnapshot         `json:"graph"`
	SpatialIndex *SpatialIndexSnapshot `json:"spatialIndex,omitempty"`
}

type GraphSnapshot struct {
	Digraph bool           `json:"digraph"`
	Nodes   []NodeSnapshot `json:"nodes"`
	Edges   []EdgeSnapshot `json:"edges"`
}

type NodeSnapshot struct {
	Index    int         `json:"index"`
	Position common.Vec3 `json:"position"`
}

type EdgeSnapshot struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Cost float32 `json:"cost"`
}

type SpatialIndexSnapshot struct {
	Min    common.Vec3 `json:"min"`
	Max    common.Vec3 `json:"max"`
	CellsX int         `json:"cellsX"`
	CellsY int         `json:"cellsY"`
	CellsZ int         `json:"cellsZ"`
	// Cells holds the region indices of each cell in grid order.
	Cells [][]int `json:"cells"`
}

func (m *NavMesh) ToSnapshot() *Snapshot {
	s := &Snapshot{
		Version: NavMeshVersion,
		Options: m.Options,
		Regions: make([][]common.Vec3, 0, len(m.regions)),
		Graph:   GraphSnapshot{Digraph: m.graph.Digraph},
	}
	for _, region := range m.regions {
		s.Regions = append(s.Regions, region.Contour())
	}
	for _, node := range m.graph.GetNodes() {
		s.Graph.Nodes = append(s.Graph.Nodes, NodeSnapshot{Index: node.Index, Position: node.Position})
	}
	for _, edge := range m.graph.GetEdges() {
		s.Graph.Edges = append(s.Graph.Edges, EdgeSnapshot{From: edge.From, To: edge.To, Cost: edge.Cost})
	}
	if index := m.spatialIndex; index != nil {
		si := &SpatialIndexSnapshot{
			Min:    index.Bounds.Min,
			Max:    index.Bounds.Max,
			CellsX: index.CellsX,
			CellsY: index.CellsY,
			CellsZ: index.CellsZ,
			Cells:  make([][]int, len(index.Cells)),
		}
		for i, cell := range index.Cells {
			entries := make([]int, 0, len(cell.Entries))
			for _, region := range cell.Entries {
				entries = append(entries, region.index)
			}
			si.Cells[i] = entries
		}
		s.SpatialIndex = si
	}
	return s
}

// FromSnapshot replaces the mesh with the content of s. Twins are linked
// again from the contours; regions are not merged.
func (m *NavMesh) FromSnapshot(s *Snapshot) error {
	if s.Version != NavMeshVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, s.Version)
	}
	regions := make([]*Polygon, 0, len(s.Regions))
	var edges []*HalfEdge
	for i, contour := range s.Regions {
		p, err := NewPolygonFromContour(contour)
		if err != nil {
			return fmt.Errorf("%w: region %d: %w", ErrSnapshotInvalid, i, err)
		}
		p.index = i
		regions = append(regions, p)
		edges = append(edges, p.Edges()...)
	}

	g := graph.NewGraph(s.Graph.Digraph)
	for _, n := range s.Graph.Nodes {
		if n.Index < 0 || n.Index >= len(regions) {
			return fmt.Errorf("%w: node %d out of range", ErrSnapshotInvalid, n.Index)
		}
		g.AddNode(graph.NewNode(n.Index, n.Position))
	}
	for _, e := range s.Graph.Edges {
		if !g.HasNode(e.From) || !g.HasNode(e.To) {
			return fmt.Errorf("%w: edge %d->%d references a missing node", ErrSnapshotInvalid, e.From, e.To)
		}
		if !g.HasEdge(e.From, e.To) {
			g.AddEdge(graph.NewEdge(e.From, e.To, e.Cost))
		}
	}

	var index *CellSpacePartitioning
	if si := s.SpatialIndex; si != nil {
		if si.CellsX <= 0 || si.CellsY <= 0 || si.CellsZ <= 0 || len(si.Cells) != si.CellsX*si.CellsY*si.CellsZ {
			return fmt.Errorf("%w: spatial index has %d cells for %dx%dx%d",
				ErrSnapshotInvalid, len(si.Cells), si.CellsX, si.CellsY, si.CellsZ)
		}
		index = NewCellSpacePartitioning(common.AABB{Min: si.Min, Max: si.Max}, si.CellsX, si.CellsY, si.CellsZ)
		for i, entries := range si.Cells {
			for _, r := range entries {
				if r < 0 || r >= len(regions) {
					return fmt.Errorf("%w: cell %d references region %d", ErrSnapshotInvalid, i, r)
				}
				index.Cells[i].Entries = append(index.Cells[i].Entries, regions[r])
			}
		}
	}

	linkTwins(edges)
	m.Options = s.Options
	m.regions = regions
	m.graph = g
	m.spatialIndex = index
	m.updateBorderEdges()
	return nil
}

// NewNavMeshFromSnapshot is a shorthand for NewNavMesh followed by FromSnapshot.
func NewNavMeshFromSnapshot(s *Snapshot) (*NavMesh, error) {
	m := NewNavMesh(s.Options)
	if err := m.FromSnapshot(s); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NavMesh) ToJSON() ([]byte, error) {
	return json.Marshal(m.ToSnapshot())
}

func (m *NavMesh) FromJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotInvalid, err)
	}
	return m.FromSnapshot(&s)
}

// ToProto stores the snapshot as a protobuf Struct message.
func (m *NavMesh) ToProto() ([]byte, error) {
	return message.EncodeJSONDocument(m.ToSnapshot())
}

func (m *NavMesh) FromProto(data []byte) error {
	var s Snapshot
	if err := message.DecodeJSONDocument(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotInvalid, err)
	}
	return m.FromSnapshot(&s)
}

// ToBin writes the snapshot in a compact little-endian layout:
// header, options, regions, graph and an optional spatial index.
func (m *NavMesh) ToBin() []byte {
	s := m.ToSnapshot()
	w := rw.NewNavMeshDataBinWriter()
	w.WriteInt32(uint32(NavMeshMagic))
	w.WriteInt32(s.Version)

	w.WriteFloat32(s.Options.EpsilonContainsTest)
	w.WriteFloat32(s.Options.EpsilonCoplanarTest)
	w.WriteUInt8(boolByte(s.Options.MergeConvexRegions))

	w.WriteInt32(len(s.Regions))
	for _, contour := range s.Regions {
		w.WriteInt32(len(contour))
		for _, v := range contour {
			w.WriteVec3(v)
		}
	}

	w.WriteUInt8(boolByte(s.Graph.Digraph))
	w.WriteInt32(len(s.Graph.Nodes))
	for _, n := range s.Graph.Nodes {
		w.WriteInt32(n.Index)
		w.WriteVec3(n.Position)
	}
	w.WriteInt32(len(s.Graph.Edges))
	for _, e := range s.Graph.Edges {
		w.WriteInt32(e.From)
		w.WriteInt32(e.To)
		w.WriteFloat32(e.Cost)
	}

	si := s.SpatialIndex
	w.WriteUInt8(boolByte(si != nil))
	if si != nil {
		w.WriteVec3(si.Min)
		w.WriteVec3(si.Max)
		w.WriteInt32s([]int{si.CellsX, si.CellsY, si.CellsZ})
		for _, entries := range si.Cells {
			w.WriteInt32(len(entries))
			w.WriteInt32s(entries)
		}
	}
	return w.GetWriteBytes()
}

func (m *NavMesh) FromBin(data []byte) error {
	s, err := decodeBin(data)
	if err != nil {
		return err
	}
	return m.FromSnapshot(s)
}

func decodeBin(data []byte) (*Snapshot, error) {
	r := rw.NewNavMeshDataBinReader(data)
	if magic := r.ReadUInt32(); magic != NavMeshMagic {
		if r.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrSnapshotInvalid, r.Err())
		}
		return nil, ErrBadMagic
	}
	s := &Snapshot{Version: r.ReadUInt32()}
	if r.Err() == nil && s.Version != NavMeshVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, s.Version)
	}

	s.Options.EpsilonContainsTest = r.ReadFloat32()
	s.Options.EpsilonCoplanarTest = r.ReadFloat32()
	s.Options.MergeConvexRegions = r.ReadUInt8() != 0

	// counts are checked against the remaining bytes so a corrupt header
	// cannot trigger a huge allocation
	count := func(elemSize int) int {
		n := int(r.ReadInt32())
		if r.Err() != nil || n < 0 || n*elemSize > r.Size() {
			return -1
		}
		return n
	}

	regionCount := count(4)
	if regionCount < 0 {
		return nil, invalidBin(r, "region count")
	}
	s.Regions = make([][]common.Vec3, 0, regionCount)
	for i := 0; i < regionCount; i++ {
		n := count(12)
		if n < 0 {
			return nil, invalidBin(r, "vertex count")
		}
		contour := make([]common.Vec3, n)
		for j := range contour {
			contour[j] = r.ReadVec3()
		}
		s.Regions = append(s.Regions, contour)
	}

	s.Graph.Digraph = r.ReadUInt8() != 0
	nodeCount := count(16)
	if nodeCount < 0 {
		return nil, invalidBin(r, "node count")
	}
	for i := 0; i < nodeCount; i++ {
		s.Graph.Nodes = append(s.Graph.Nodes, NodeSnapshot{Index: int(r.ReadInt32()), Position: r.ReadVec3()})
	}
	edgeCount := count(12)
	if edgeCount < 0 {
		return nil, invalidBin(r, "edge count")
	}
	for i := 0; i < edgeCount; i++ {
		s.Graph.Edges = append(s.Graph.Edges, EdgeSnapshot{
			From: int(r.ReadInt32()),
			To:   int(r.ReadInt32()),
			Cost: r.ReadFloat32(),
		})
	}

	if r.ReadUInt8() != 0 {
		si := &SpatialIndexSnapshot{Min: r.ReadVec3(), Max: r.ReadVec3()}
		cells := make([]int32, 3)
		r.ReadInt32s(cells)
		si.CellsX, si.CellsY, si.CellsZ = int(cells[0]), int(cells[1]), int(cells[2])
		total := si.CellsX * si.CellsY * si.CellsZ
		if si.CellsX <= 0 || si.CellsY <= 0 || si.CellsZ <= 0 || total*4 > r.Size() {
			return nil, invalidBin(r, "cell counts")
		}
		si.Cells = make([][]int, total)
		for i := range si.Cells {
			n := count(4)
			if n < 0 {
				return nil, invalidBin(r, "cell entry count")
			}
			entries := make([]int, n)
			for j := range entries {
				entries[j] = int(r.ReadInt32())
			}
			si.Cells[i] = entries
		}
		s.SpatialIndex = si
	}
	if r.Err() != nil {
		return nil, invalidBin(r, "body")
	}
	return s, nil
}

func invalidBin(r *rw.ReaderWriter, what string) error {
	if r.Err() != nil {
		return fmt.Errorf("%w: %s: %w", ErrSnapshotInvalid, what, r.Err())
	}
	return fmt.Errorf("%w: bad %s", ErrSnapshotInvalid, what)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
