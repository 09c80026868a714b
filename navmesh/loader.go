package navmesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/hjson/hjson-go/v4"
)

// LoadObj reads the vertices and faces of a Wavefront OBJ stream. Every face
// becomes one contour; normals, texture coordinates and other records are
// ignored. Faces referencing unknown vertices are an error.
func LoadObj(r io.Reader, scale float32) ([][]common.Vec3, error) {
	var (
		verts    []common.Vec3
		contours [][]common.Vec3
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		ss := strings.Fields(row)
		switch ss[0] {
		case "v":
			if len(ss) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs three coordinates", lineNo)
			}
			var v common.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(ss[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				v[i] = float32(f) * scale
			}
			verts = append(verts, v)
		case "f":
			contour := make([]common.Vec3, 0, len(ss)-1)
			for _, s := range ss[1:] {
				// v, v/vt, v//vn and v/vt/vn all start with the vertex index
				vs := strings.Split(s, "/")
				vi, err := strconv.Atoi(vs[0])
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				if vi < 0 {
					vi += len(verts)
				} else {
					vi--
				}
				if vi < 0 || vi >= len(verts) {
					return nil, fmt.Errorf("obj line %d: vertex index %s out of range", lineNo, vs[0])
				}
				contour = append(contour, verts[vi])
			}
			contours = append(contours, contour)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return contours, nil
}

func LoadObjFile(path string, scale float32) ([][]common.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadObj(f, scale)
}

// PolygonFile is the HJSON polygon input:
//
//	{
//	  polygons: [
//	    [[0, 0, 0], [0, 0, 1], [1, 0, 1], [1, 0, 0]]
//	  ]
//	}
type PolygonFile struct {
	Polygons [][][3]float32 `json:"polygons"`
}

func LoadPolygonsHJSON(data []byte) ([][]common.Vec3, error) {
	var file PolygonFile
	if err := hjson.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse polygons: %w", err)
	}
	contours := make([][]common.Vec3, 0, len(file.Polygons))
	for _, polygon := range file.Polygons {
		contour := make([]common.Vec3, 0, len(polygon))
		for _, p := range polygon {
			contour = append(contour, common.Vec3(p))
		}
		contours = append(contours, contour)
	}
	return contours, nil
}

// LoadContoursFile picks the loader from the file extension: .obj or HJSON/JSON otherwise.
func LoadContoursFile(path string) ([][]common.Vec3, error) {
	if strings.HasSuffix(strings.ToLower(path), ".obj") {
		return LoadObjFile(path, 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadPolygonsHJSON(data)
}
