package navmesh

import (
	"encoding/json"
	"sort"

	"github.com/gorustyt/gonavgraph/common/logger"
	"go.uber.org/zap"
)

type costKey struct {
	from, to int
}

// CostEntry is one cached region pair in the serialized table.
type CostEntry struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Cost float32 `json:"cost"`
}

// CostTable caches the path length between every pair of regions, measured
// between region centroids. Pairs without a path are not stored.
type CostTable struct {
	costs map[costKey]float32
	size  int
}

func NewCostTable() *CostTable {
	return &CostTable{costs: make(map[costKey]float32)}
}

// Init runs FindPath for every ordered region pair. It costs n² searches and
// is meant for startup or offline baking.
func (t *CostTable) Init(mesh *NavMesh) *CostTable {
	t.Clear()
	regions := mesh.Regions()
	t.size = len(regions)
	unreachable := 0
	for i, from := range regions {
		for j, to := range regions {
			if i == j {
				t.Set(i, j, 0)
				continue
			}
			path := mesh.FindPath(from.Centroid, to.Centroid)
			if len(path) == 0 {
				unreachable++
				continue
			}
			t.Set(i, j, PathLength(path))
		}
	}
	logger.Debug("navmesh: cost table ready",
		zap.Int("regions", t.size), zap.Int("unreachable", unreachable))
	return t
}

func (t *CostTable) Set(from, to int, cost float32) *CostTable {
	t.costs[costKey{from, to}] = cost
	t.size = max(t.size, from+1, to+1)
	return t
}

// Get returns the cached cost; ok is false for unreachable or unknown pairs.
func (t *CostTable) Get(from, to int) (cost float32, ok bool) {
	cost, ok = t.costs[costKey{from, to}]
	return
}

// Size is the number of regions covered by the table.
func (t *CostTable) Size() int {
	return t.size
}

// Resize grows the covered region count to at least n.
func (t *CostTable) Resize(n int) *CostTable {
	t.size = max(t.size, n)
	return t
}

func (t *CostTable) Len() int {
	return len(t.costs)
}

func (t *CostTable) Clear() *CostTable {
	t.costs = make(map[costKey]float32)
	t.size = 0
	return t
}

// Entries lists the cached pairs ordered by from, then to.
func (t *CostTable) Entries() []CostEntry {
	res := make([]CostEntry, 0, len(t.costs))
	for k, v := range t.costs {
		res = append(res, CostEntry{From: k.from, To: k.to, Cost: v})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].From != res[j].From {
			return res[i].From < res[j].From
		}
		return res[i].To < res[j].To
	})
	return res
}

type costTableJSON struct {
	Size    int         `json:"size"`
	Entries []CostEntry `json:"entries"`
}

func (t *CostTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(costTableJSON{Size: t.size, Entries: t.Entries()})
}

func (t *CostTable) UnmarshalJSON(data []byte) error {
	var doc costTableJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	t.Clear()
	for _, e := range doc.Entries {
		t.Set(e.From, e.To, e.Cost)
	}
	t.Resize(doc.Size)
	return nil
}
