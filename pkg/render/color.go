package render

import "image/color"

// Color is a packed 0xAARRGGBB pixel, the layout of the color buffer.
type Color uint32

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// RGBA creates a color from straight (non-premultiplied) components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFromRGBA packs a color.RGBA.
func ColorFromRGBA(c color.RGBA) Color {
	return RGBA(c.R, c.G, c.B, c.A)
}

// Components returns the straight 8-bit channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// NRGBA returns the color as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// ColorModel converts any color.Color to a packed Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
})

// Colors for convenience
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 0, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGray    = RGB(128, 128, 128)
)
