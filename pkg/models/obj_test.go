package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

const squareOBJ = `# unit square, counter-clockwise seen from +Z
o square
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl none
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(squareOBJ), "square")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if got := mesh.VertexCount(); got != 4 {
		t.Errorf("VertexCount = %d, want 4", got)
	}
	if got := mesh.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount = %d, want 2", got)
	}

	// z is negated for the left-handed frame.
	if p := mesh.GetVertex(2); p != math3d.V3(1, 1, -1) {
		t.Errorf("vertex 2 = %v, want (1, 1, -1)", p)
	}

	// Fan (0,1,2),(0,2,3) with corners 1 and 2 swapped.
	if mesh.Faces[0].V != [3]int{0, 2, 1} || mesh.Faces[1].V != [3]int{0, 3, 2} {
		t.Errorf("faces = %v, %v; want [0 2 1], [0 3 2]", mesh.Faces[0].V, mesh.Faces[1].V)
	}

	// Texture v is flipped: vt (1, 1) addresses the top row.
	if uv := mesh.Faces[0].UV[1]; uv != math3d.V2(1, 0) {
		t.Errorf("corner uv = %v, want (1, 0)", uv)
	}
	if mesh.Faces[0].Color != DefaultColor {
		t.Errorf("color = %v, want DefaultColor", mesh.Faces[0].Color)
	}

	// The square was counter-clockwise from +Z, so it faces -Z after
	// conversion and winds outward toward -Z.
	a, b, c := mesh.GetVertex(mesh.Faces[0].V[0]), mesh.GetVertex(mesh.Faces[0].V[1]), mesh.GetVertex(mesh.Faces[0].V[2])
	if n := b.Sub(a).Cross(c.Sub(a)); n.Z >= 0 {
		t.Errorf("normal = %v, want -Z", n)
	}
}

func TestParseOBJCornerFormats(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.25
f 1 2 3
f 1//1 2//1 3//1
f 1/1 2/1 3/1
f -3/-1 -2/-1 -1/-1
`
	mesh, err := ParseOBJ(strings.NewReader(src), "formats")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got := mesh.TriangleCount(); got != 4 {
		t.Fatalf("TriangleCount = %d, want 4", got)
	}
	for i, f := range mesh.Faces {
		if f.V != [3]int{0, 2, 1} {
			t.Errorf("face %d = %v, want [0 2 1]", i, f.V)
		}
	}
	if uv := mesh.Faces[0].UV[0]; uv != (math3d.Vec2{}) {
		t.Errorf("corner without vt has uv %v, want zero", uv)
	}
	if uv := mesh.Faces[3].UV[0]; uv != math3d.V2(0.25, 0.75) {
		t.Errorf("relative vt = %v, want (0.25, 0.75)", uv)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad float", "v 0 x 0\n", ErrMalformed},
		{"short vertex", "v 0 0\n", ErrMalformed},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformed},
		{"bad index", "v 0 0 0\nf 1 a 1\n", ErrMalformed},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrIndexOutOfRange},
		{"past end", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrIndexOutOfRange},
		{"relative past start", "v 0 0 0\nf -2 1 1\n", ErrIndexOutOfRange},
		{"missing texcoord", "v 0 0 0\nf 1/1 1/1 1/1\n", ErrIndexOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src), tc.name)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.obj")
	if err := os.WriteFile(path, []byte(squareOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Name != "square.obj" {
		t.Errorf("Name = %q, want square.obj", mesh.Name)
	}
	lo, hi := mesh.GetBounds()
	if lo != math3d.V3(0, 0, -1) || hi != math3d.V3(1, 1, -1) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
}
