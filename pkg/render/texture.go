package render

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/wide"
)

// Texture holds a 2D image for texture mapping. Row 0 is the top of the
// image, so UV (0, 0) addresses the top-left texel.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewTexture creates a transparent texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewSolidTexture creates a 1x1 texture of a single color.
func NewSolidTexture(c Color) *Texture {
	tex := NewTexture(1, 1)
	tex.Pixels[0] = c
	return tex
}

// LoadTexture loads a texture from an image file. When maxSize is positive,
// images larger than maxSize on either side are downscaled to fit.
func LoadTexture(path string, maxSize int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	b := img.Bounds()
	logging.Logger().Info("texture loaded", "path", path, "format", format, "width", b.Dx(), "height", b.Dy())

	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		img = downscale(img, maxSize)
	}
	return TextureFromImage(img), nil
}

// downscale fits img inside a maxSize square, keeping the aspect ratio.
func downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	scale := float64(maxSize) / float64(max(b.Dx(), b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := range tex.Width {
			p := row[x*4 : x*4+4]
			tex.Pixels[y*tex.Width+x] = RGBA(p[0], p[1], p[2], p[3])
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex
}

// Empty reports whether the texture has no texels.
func (t *Texture) Empty() bool {
	return t == nil || len(t.Pixels) == 0
}

// Sample returns the nearest texel to (u, v). The texel index
// floor(v*h)*w + floor(u*w) is clamped to the pixel buffer, so coordinates
// slightly outside [0, 1) from edge rounding never read out of bounds.
func (t *Texture) Sample(u, v float64) Color {
	return t.Pixels[t.index(u, v)]
}

func (t *Texture) index(u, v float64) int {
	x := math.Floor(u * float64(t.Width))
	y := math.Floor(v * float64(t.Height))
	i := y*float64(t.Width) + x

	// Clamp in float so huge or NaN coordinates never reach the int conversion.
	if !(i > 0) {
		return 0
	}
	if last := float64(len(t.Pixels) - 1); i > last {
		return len(t.Pixels) - 1
	}
	return int(i)
}

// Gather samples one texel per set lane. Unset lanes are left zero.
func (t *Texture) Gather(u, v wide.F64x4, m wide.Mask4) wide.U32x4 {
	var out wide.U32x4
	for i := range out {
		if m.Lane(i) {
			out[i] = uint32(t.Pixels[t.index(u[i], v[i])])
		}
	}
	return out
}
