package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softrast/pkg/render"
)

func smallConfig() config {
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 64, 48
	return cfg
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestRenderPNGCube(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cube.png")
	cfg := smallConfig()

	stats, err := renderPNG(cfg, "", out, shot{Yaw: 30, Pitch: 20, Distance: 4})
	if err != nil {
		t.Fatalf("renderPNG: %v", err)
	}
	// Three sides face the camera.
	if stats.Triangles != 6 || stats.Backfaces != 6 {
		t.Errorf("stats = %+v, want 6 triangles and 6 backfaces", stats)
	}
	if stats.Pixels == 0 {
		t.Error("no pixels written")
	}

	img := decodePNG(t, out)
	if img.Bounds() != image.Rect(0, 0, 64, 48) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	bg := color.NRGBAModel.Convert(color.NRGBA{0x1e, 0x1e, 0x28, 0xff})
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != bg {
		t.Errorf("corner = %v, want background %v", got, bg)
	}
	if got := color.NRGBAModel.Convert(img.At(32, 24)); got == bg {
		t.Error("center pixel shows the background, want the cube")
	}
}

func TestRenderPNGModes(t *testing.T) {
	dir := t.TempDir()
	base := smallConfig()

	// The scalar and wide loops write the same image.
	var frames [][]byte
	for _, mode := range []string{"scalar", "wide"} {
		cfg := base
		cfg.Raster = mode
		out := filepath.Join(dir, mode+".png")
		if _, err := renderPNG(cfg, "", out, shot{Yaw: -40, Pitch: 10, Distance: 3.5}); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, data)
	}
	if !bytes.Equal(frames[0], frames[1]) {
		t.Error("scalar and wide images differ")
	}

	wire := base
	wire.Wireframe = true
	stats, err := renderPNG(wire, "", filepath.Join(dir, "wire.png"), shot{Distance: 4})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Pixels != 0 || stats.Triangles == 0 {
		t.Errorf("wireframe stats = %+v", stats)
	}
}

func TestRenderPNGErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig()

	if _, err := renderPNG(cfg, filepath.Join(dir, "missing.obj"), filepath.Join(dir, "a.png"), shot{Distance: 4}); err == nil {
		t.Error("expected an error for a missing model")
	}
	if _, err := renderPNG(cfg, "", filepath.Join(dir, "no", "such", "dir.png"), shot{Distance: 4}); err == nil {
		t.Error("expected an error for an unwritable output")
	}
}

func TestLoadModelOBJWithTexture(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.obj")
	err := os.WriteFile(obj, []byte(strings.Join([]string{
		"v 0 0 0", "v 4 0 0", "v 0 2 0",
		"vt 0 0", "vt 1 0", "vt 0 1",
		"f 1/1 2/2 3/3",
	}, "\n")), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	tex := filepath.Join(dir, "tex.png")
	checker := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			c := color.NRGBA{R: 255, A: 255}
			if (x/8+y/8)%2 == 1 {
				c = color.NRGBA{B: 255, A: 255}
			}
			checker.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tex, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := smallConfig()
	cfg.Texture = tex
	cfg.MaxTextureSize = 16
	model, err := loadModel(obj, cfg)
	if err != nil {
		t.Fatalf("loadModel: %v", err)
	}
	if model.Texture == nil || model.Texture.Width != 16 || model.Texture.Height != 16 {
		t.Errorf("texture = %+v, want 16x16", model.Texture)
	}

	bounds, ok := model.Mesh.(render.BoundedMeshRenderer)
	if !ok {
		t.Fatal("mesh has no bounds")
	}
	lo, hi := bounds.GetBounds()
	// Fit scales the longest side to 2 and centers the mesh.
	if size := hi.Sub(lo); size.X != 2 || size.Y != 1 {
		t.Errorf("fitted size = %v, want (2, 1, 0)", size)
	}

	cfg.Texture = filepath.Join(dir, "none.png")
	if _, err := loadModel(obj, cfg); err == nil {
		t.Error("expected an error for a missing texture")
	}
}
