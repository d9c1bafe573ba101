package render

import "github.com/taigrr/softrast/pkg/wide"

// The wide rasterizer walks each row of the pixel box in blocks of
// wide.Lanes pixels. It performs the same operations as drawTriangleScalar
// in the same order, so every written pixel and depth value is bit-identical.

// coverage evaluates edge e for a block starting dx pixels into the row
// and returns the lanes on the inside of it.
func (e *edge) coverage(row float64, dx wide.F64x4) (wide.F64x4, wide.Mask4) {
	w := dx.MulAdd(wide.SplatF64(e.colInc), wide.SplatF64(row))
	zero := wide.SplatF64(0)
	in := w.Greater(zero).Or(w.Equal(zero).And(wide.SplatMask(e.topLeft)))
	return w, in
}

// depthTestBatch compares candidate depths against depth[idx:idx+n] for the
// lanes in m, writes the passing lanes and returns them.
func depthTestBatch(depth []float64, idx, n int, cand wide.F64x4, m wide.Mask4) wide.Mask4 {
	var cur wide.F64x4
	for i := range n {
		cur[i] = depth[idx+i]
	}
	pass := m.And(cand.GreaterEq(cur))
	if !pass.Any() {
		return pass
	}
	out := wide.SelectF64(pass, cand, cur)
	for i := range n {
		depth[idx+i] = out[i]
	}
	return pass
}

// writeColorBatch stores src into pixels[idx:idx+n] for the lanes in m.
func writeColorBatch(pixels []Color, idx, n int, src wide.U32x4, m wide.Mask4) {
	var cur wide.U32x4
	for i := range n {
		cur[i] = uint32(pixels[idx+i])
	}
	out := wide.SelectU32(m, src, cur)
	for i := range n {
		pixels[idx+i] = Color(out[i])
	}
}

// drawTriangleWide rasterizes t into fb four pixels at a time and returns
// the number of pixels written. A nil tex draws the triangle's flat color.
func drawTriangleWide(fb *Framebuffer, t *ScreenTriangle, tex *Texture) int {
	s, ok := setupTriangle(t, fb.Width, fb.Height)
	if !ok {
		return 0
	}

	invArea := wide.SplatF64(s.invArea)
	z0, dz1, dz2 := wide.SplatF64(s.z0), wide.SplatF64(s.dz1), wide.SplatF64(s.dz2)
	u0, du1, du2 := wide.SplatF64(s.u0), wide.SplatF64(s.du1), wide.SplatF64(s.du2)
	v0, dv1, dv2 := wide.SplatF64(s.v0), wide.SplatF64(s.dv1), wide.SplatF64(s.dv2)
	flat := wide.U32x4{uint32(s.color), uint32(s.color), uint32(s.color), uint32(s.color)}

	written := 0
	for y := s.minY; y <= s.maxY; y++ {
		dy := float64(y - s.minY)
		r0, r1, r2 := s.e[0].row(dy), s.e[1].row(dy), s.e[2].row(dy)
		base := y * fb.Width

		for x := s.minX; x <= s.maxX; x += wide.Lanes {
			n := min(wide.Lanes, s.maxX-x+1)
			dx := wide.RampF64(float64(x - s.minX))

			_, in0 := s.e[0].coverage(r0, dx)
			w1, in1 := s.e[1].coverage(r1, dx)
			w2, in2 := s.e[2].coverage(r2, dx)
			inside := wide.FirstN(n).And(in0).And(in1).And(in2)
			if !inside.Any() {
				continue
			}

			beta := w1.Mul(invArea)
			gamma := w2.Mul(invArea)
			invW := gamma.MulAdd(dz2, beta.MulAdd(dz1, z0))

			idx := base + x
			pass := depthTestBatch(fb.Depth, idx, n, invW, inside)
			if !pass.Any() {
				continue
			}

			src := flat
			if tex != nil {
				rz := invW.Recip()
				u := gamma.MulAdd(du2, beta.MulAdd(du1, u0)).Mul(rz)
				v := gamma.MulAdd(dv2, beta.MulAdd(dv1, v0)).Mul(rz)
				src = tex.Gather(u, v, pass)
			}
			writeColorBatch(fb.Pixels, idx, n, src, pass)

			for i := range n {
				if pass.Lane(i) {
					written++
				}
			}
		}
	}
	return written
}
