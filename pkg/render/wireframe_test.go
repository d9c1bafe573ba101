package render

import (
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 2, 5, 12, 5, 11},
		{"vertical", 4, 1, 4, 9, 9},
		{"x-major down", 0, 0, 15, 5, 16},
		{"x-major up", 15, 0, 0, 5, 16},
		{"y-major right", 3, 0, 7, 15, 16},
		{"y-major left", 7, 15, 3, 0, 16},
		{"diagonal", 0, 0, 9, 9, 10},
		{"point", 6, 6, 6, 6, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(16, 16)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := countColor(fb, ColorWhite); got != tc.want {
				t.Errorf("drew %d pixels, want %d", got, tc.want)
			}
			if fb.GetPixel(tc.x0, tc.y0) != ColorWhite || fb.GetPixel(tc.x1, tc.y1) != ColorWhite {
				t.Error("endpoints not drawn")
			}
		})
	}
}

func TestDrawLineSymmetric(t *testing.T) {
	a := NewFramebuffer(32, 32)
	b := NewFramebuffer(32, 32)
	a.DrawLine(1, 3, 29, 17, ColorWhite)
	b.DrawLine(29, 17, 1, 3, ColorWhite)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs by direction", i)
		}
	}
}

func TestDrawLineClipped(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.drawLineClipped(-1e9, 8, 1e9, 8, ColorWhite)
	if got := countColor(fb, ColorWhite); got != 16 {
		t.Errorf("drew %d pixels, want a full row of 16", got)
	}

	fb.Clear(ColorBlack)
	fb.drawLineClipped(-5, -5, -1, 20, ColorWhite)
	if got := countColor(fb, ColorWhite); got != 0 {
		t.Errorf("off-screen line drew %d pixels", got)
	}
}

func TestDrawTriangleOutline(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	tri := ScreenTriangle{V: [3]math3d.Vec3{
		math3d.V3(2, 2, 1), math3d.V3(20, 2, 1), math3d.V3(2, 20, 1),
	}}
	fb.drawTriangleOutline(&tri, ColorGreen)

	for _, p := range [][2]int{{2, 2}, {20, 2}, {2, 20}, {10, 2}, {2, 10}, {11, 11}} {
		if fb.GetPixel(p[0], p[1]) != ColorGreen {
			t.Errorf("outline missing pixel %v", p)
		}
	}
	if fb.GetPixel(6, 6) != ColorBlack {
		t.Error("outline filled the interior")
	}
}
