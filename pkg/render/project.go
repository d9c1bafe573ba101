package render

import (
	"fmt"

	"github.com/taigrr/softrast/pkg/math3d"
)

// ToScreen divides t by w and maps it to pixel coordinates for a target of
// size 2*halfW by 2*halfH. Screen y grows downward. Texture coordinates are
// copied unchanged; the rasterizer weights them by 1/w during setup.
func ToScreen(t *ClipTriangle, halfW, halfH float64) ScreenTriangle {
	var s ScreenTriangle
	for i, v := range t.V {
		if debugAssertions && !(v.W > 0) {
			panic(fmt.Sprintf("render: vertex %d reached projection with w = %v", i, v.W))
		}
		invW := 1 / v.W
		s.V[i] = math3d.V3(
			v.X*invW*halfW+halfW,
			-v.Y*invW*halfH+halfH,
			invW,
		)
	}
	s.UV = t.UV
	s.Color = t.Color
	return s
}
