package render

import (
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(5, 3)
	fb.Depth[7] = 0.5
	fb.Clear(ColorBlue)

	for i := range fb.Pixels {
		if fb.Pixels[i] != ColorBlue {
			t.Fatalf("pixel %d = %08x, want blue", i, fb.Pixels[i])
		}
		if fb.Depth[i] != FarDepth {
			t.Fatalf("depth %d = %v, want FarDepth", i, fb.Depth[i])
		}
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(1, 1, ColorRed)
	fb.Resize(7, 2)

	if fb.Width != 7 || fb.Height != 2 || len(fb.Pixels) != 14 || len(fb.Depth) != 14 {
		t.Fatalf("resized to %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	if fb.GetPixel(1, 1) != ColorBlack || fb.Depth[0] != FarDepth {
		t.Error("resize did not clear the buffers")
	}

	fb.Resize(-1, 3)
	if fb.Width != 0 || len(fb.Pixels) != 0 || fb.Bytes() != nil {
		t.Error("negative size did not produce an empty buffer")
	}
}

func TestFramebufferPixelBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)
	fb.SetPixel(0, 4, ColorRed)
	for i, c := range fb.Pixels {
		if c != ColorBlack {
			t.Fatalf("out-of-bounds write reached pixel %d", i)
		}
	}
	if got := fb.GetPixel(10, 10); got != 0 {
		t.Errorf("GetPixel out of bounds = %08x, want 0", got)
	}
	fb.SetPixel(3, 2, ColorRed)
	if fb.Pixels[2*4+3] != ColorRed {
		t.Error("SetPixel did not write row-major")
	}
}

func TestFramebufferBytesAlias(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, RGBA(0x11, 0x22, 0x33, 0x44))

	b := fb.Bytes()
	if len(b) != 3*2*4 || fb.Pitch() != 12 {
		t.Fatalf("len = %d, pitch = %d", len(b), fb.Pitch())
	}
	off := 1*fb.Pitch() + 2*4
	if got := binary.NativeEndian.Uint32(b[off:]); got != 0x44112233 {
		t.Errorf("raw pixel = %08x, want 44112233", got)
	}

	b[0], b[1], b[2], b[3] = 0, 0, 0, 0
	if fb.Pixels[0] != 0 {
		t.Error("Bytes does not alias Pixels")
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(6, 4)
	fb.SetPixel(5, 3, ColorRed)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if r, g, b, a := img.At(5, 3).RGBA(); r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("pixel = %v, want red", img.At(5, 3))
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}

func TestColorConversions(t *testing.T) {
	c := RGBA(10, 20, 30, 40)
	if r, g, b, a := c.Components(); r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("Components = %d %d %d %d", r, g, b, a)
	}
	if got := ColorModel.Convert(c.NRGBA()); got != c {
		t.Errorf("ColorModel round trip = %v, want %08x", got, c)
	}
	if got := ColorModel.Convert(c); got != c {
		t.Errorf("ColorModel identity = %v", got)
	}
}
