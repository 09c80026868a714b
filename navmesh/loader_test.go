package navmesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

const twoQuadsObj = `# two quads sharing an edge
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
v 2 0 0
v 2 0 1
vn 0 1 0
f 1//1 2//1 3//1 4//1
f 2/1/1 5/1/1 6/1/1 3/1/1
`

func TestLoadObj(t *testing.T) {
	contours, err := LoadObj(strings.NewReader(twoQuadsObj), 1)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, len(contours) == 2, "one contour per face")
	assertTrue(t, len(contours[0]) == 4 && len(contours[1]) == 4, "faces keep every vertex")
	assertTrue(t, contours[1][1] == common.Vec3{2, 0, 0}, "first index component is the vertex")

	m, stats := Build(contours, DefaultOptions())
	assertTrue(t, stats.Merged == 1 && len(m.Regions()) == 1, "quads merge")

	scaled, err := LoadObj(strings.NewReader(twoQuadsObj), 2)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, scaled[0][2] == common.Vec3{2, 0, 2}, "scale applied")
}

func TestLoadObjErrors(t *testing.T) {
	_, err := LoadObj(strings.NewReader("v 0 0 0\nf 1 2 3\n"), 1)
	assertTrue(t, err != nil, "face with unknown vertices")
	_, err = LoadObj(strings.NewReader("v 0 zero 0\n"), 1)
	assertTrue(t, err != nil, "bad coordinate")
	_, err = LoadObj(strings.NewReader("v 0 0\n"), 1)
	assertTrue(t, err != nil, "short vertex")
}

func TestLoadObjNegativeIndex(t *testing.T) {
	contours, err := LoadObj(strings.NewReader("v 0 0 0\nv 0 0 1\nv 1 0 1\nf -3 -2 -1\n"), 1)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, len(contours) == 1 && contours[0][0] == common.Vec3{}, "relative indices")
}

func TestLoadPolygonsHJSON(t *testing.T) {
	data := []byte(`{
  # a corridor of two squares
  polygons: [
    [[0, 0, 0], [1, 0, 0], [1, 0, 1], [0, 0, 1]]
    [[1, 0, 0], [2, 0, 0], [2, 0, 1], [1, 0, 1]]
  ]
}`)
	contours, err := LoadPolygonsHJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, len(contours) == 2, "two polygons")
	assertTrue(t, contours[1][2] == common.Vec3{2, 0, 1}, "vertex")

	_, err = LoadPolygonsHJSON([]byte(`{polygons: [[[0, 0`))
	assertTrue(t, err != nil, "broken document")
}

func TestLoadContoursFile(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "level.OBJ")
	if err := os.WriteFile(objPath, []byte(twoQuadsObj), 0o644); err != nil {
		t.Fatal(err)
	}
	contours, err := LoadContoursFile(objPath)
	assertTrue(t, err == nil && len(contours) == 2, "obj by extension")

	hjsonPath := filepath.Join(dir, "level.hjson")
	if err = os.WriteFile(hjsonPath, []byte("{polygons: [[[0,0,0],[1,0,0],[1,0,1]]]}"), 0o644); err != nil {
		t.Fatal(err)
	}
	contours, err = LoadContoursFile(hjsonPath)
	assertTrue(t, err == nil && len(contours) == 1, "hjson otherwise")

	_, err = LoadContoursFile(filepath.Join(dir, "missing.obj"))
	assertTrue(t, err != nil, "missing file")
}
