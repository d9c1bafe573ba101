// Package render implements the softrast pipeline: vertex transform, backface
// culling, near-plane clipping, screen projection and edge-function
// rasterization into a color and depth buffer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"unsafe"
)

// FarDepth is the cleared depth value. Depth stores 1/w, where larger is
// nearer, so the most negative float is farther than anything drawable.
const FarDepth = -math.MaxFloat64

// Framebuffer owns the color and depth buffers for one render target.
// Pixels and Depth are row-major and indexed y*Width+x without bounds checks;
// the rasterizer clamps to the buffer before writing.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color   // packed 0xAARRGGBB
	Depth  []float64 // 1/w per pixel
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers and clears them to black.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]Color, width*height)
	fb.Depth = make([]float64, width*height)
	fb.Clear(ColorBlack)
}

// Clear fills the color buffer with c and resets depth to FarDepth.
func (fb *Framebuffer) Clear(c Color) {
	fill(fb.Pixels, c)
	fill(fb.Depth, FarDepth)
}

// fill sets every element of s to v using doubling copies.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for filled := 1; filled < len(s); filled *= 2 {
		copy(s[filled:], s[:filled])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// Pitch returns the length of one row of the color buffer in bytes.
func (fb *Framebuffer) Pitch() int {
	return fb.Width * 4
}

// Bytes returns the color buffer as raw bytes in native byte order, suitable
// for blitting to an ARGB8888 surface. The slice aliases Pixels.
func (fb *Framebuffer) Bytes() []byte {
	if len(fb.Pixels) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&fb.Pixels[0])), len(fb.Pixels)*4)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.GetPixel(x, y)
}

// ToImage converts the color buffer to an image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		r, g, b, a := c.Components()
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}

// SavePNG saves the color buffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
