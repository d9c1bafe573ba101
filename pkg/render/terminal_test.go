package render

import (
	"image/color"
	"testing"
)

func TestFramebufferSize(t *testing.T) {
	w, h := FramebufferSize(80, 24)
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize(80, 24) = %d, %d; want 80, 48", w, h)
	}
}

func TestCellColor(t *testing.T) {
	if got := cellColor(RGBA(1, 2, 3, 0)); got != nil {
		t.Errorf("transparent pixel = %v, want nil", got)
	}
	if got := cellColor(RGBA(1, 2, 3, 128)); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("cellColor = %v, want opaque (1, 2, 3)", got)
	}
}

func TestHalfBlock(t *testing.T) {
	c := halfBlock(RGB(255, 0, 0), RGB(0, 0, 255))
	if c.Content != "▀" || c.Width != 1 {
		t.Fatalf("cell = %q width %d", c.Content, c.Width)
	}
	if c.Style.Fg != (color.RGBA{R: 255, A: 255}) || c.Style.Bg != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("style fg %v bg %v, want red over blue", c.Style.Fg, c.Style.Bg)
	}
}
