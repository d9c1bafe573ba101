package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto area of scr. Each cell packs two
// vertically adjacent pixels into an upper half block (▀): the top pixel
// is the foreground and the bottom pixel the background, so the
// framebuffer should be twice as tall as area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := min(area.Max.X-area.Min.X, fb.Width)
	rows := area.Max.Y - area.Min.Y
	for y := range rows {
		for x := range cols {
			scr.SetCell(area.Min.X+x, area.Min.Y+y, halfBlock(fb.GetPixel(x, 2*y), fb.GetPixel(x, 2*y+1)))
		}
	}
}

func halfBlock(top, bottom Color) *uv.Cell {
	return &uv.Cell{
		Content: "▀",
		Width:   1,
		Style:   uv.Style{Fg: cellColor(top), Bg: cellColor(bottom)},
	}
}

// FramebufferSize returns the framebuffer size that fills a terminal of
// cols x rows cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// cellColor converts a packed color for a terminal cell.
// Transparent pixels leave the cell's color unset.
func cellColor(c Color) color.Color {
	r, g, b, a := c.Components()
	if a == 0 {
		return nil
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
