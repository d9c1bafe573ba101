package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// objCorner is one face corner: 0-based position and texcoord indices,
// with uv = -1 when the corner has none.
type objCorner struct {
	v, uv int
}

// ParseOBJ reads OBJ geometry: v, vt and f statements. Polygons are
// fan-triangulated, relative (negative) indices are resolved, texture v is
// flipped so row 0 is the top of the image, and the mesh is converted from
// OBJ's right-handed space. Other statements are ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var texcoords []math3d.Vec2
	var corners []objCorner
	ignored := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: math3d.V3(p[0], p[1], p[2])})

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			texcoords = append(texcoords, math3d.V2(t[0], 1-t[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d corners: %w", lineNo, len(fields)-1, ErrMalformed)
			}
			corners = corners[:0]
			for _, field := range fields[1:] {
				c, err := parseCorner(field, len(mesh.Vertices), len(texcoords))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, objFace(corners[0], corners[i], corners[i+1], texcoords))
			}

		default:
			ignored++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if ignored > 0 {
		logging.Logger().Debug("obj statements ignored", "mesh", name, "count", ignored)
	}

	mesh.toLeftHanded()
	mesh.CalculateBounds()
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d: %w", n, len(fields), ErrMalformed)
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		out[i] = f
	}
	return out, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". Normals are ignored.
func parseCorner(s string, numV, numVT int) (objCorner, error) {
	parts := strings.Split(s, "/")
	v, err := resolveIndex(parts[0], numV)
	if err != nil {
		return objCorner{}, fmt.Errorf("vertex index %q: %w", parts[0], err)
	}
	c := objCorner{v: v, uv: -1}
	if len(parts) > 1 && parts[1] != "" {
		c.uv, err = resolveIndex(parts[1], numVT)
		if err != nil {
			return objCorner{}, fmt.Errorf("texcoord index %q: %w", parts[1], err)
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative OBJ index to a 0-based one.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, ErrIndexOutOfRange
	}
	if i < 0 || i >= n {
		return 0, ErrIndexOutOfRange
	}
	return i, nil
}

func objFace(a, b, c objCorner, texcoords []math3d.Vec2) Face {
	f := Face{V: [3]int{a.v, b.v, c.v}, Color: DefaultColor}
	for i, corner := range [3]objCorner{a, b, c} {
		if corner.uv >= 0 {
			f.UV[i] = texcoords[corner.uv]
		}
	}
	return f
}
