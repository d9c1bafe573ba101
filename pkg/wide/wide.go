// Package wide provides fixed-width lane types for data-parallel pixel work.
//
// The types are plain arrays so the compiler can keep them in registers and
// vectorize the loops where the target supports it. Every lane operation
// rounds exactly like the equivalent scalar expression, so a batched pipeline
// can reproduce a scalar one bit for bit.
package wide

import "math"

// Lanes is the number of elements processed per batch.
const Lanes = 4

// F64x4 holds four float64 lanes.
type F64x4 [Lanes]float64

// U32x4 holds four uint32 lanes, typically packed colors.
type U32x4 [Lanes]uint32

// Mask4 holds one all-ones or all-zeros word per lane.
type Mask4 [Lanes]uint64

const laneOn = ^uint64(0)

// SplatF64 returns a vector with all lanes set to v.
func SplatF64(v float64) F64x4 {
	return F64x4{v, v, v, v}
}

// RampF64 returns {start, start+1, start+2, start+3}.
func RampF64(start float64) F64x4 {
	return F64x4{start, start + 1, start + 2, start + 3}
}

// Add returns the lane-wise sum.
func (a F64x4) Add(b F64x4) F64x4 {
	return F64x4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns the lane-wise difference.
func (a F64x4) Sub(b F64x4) F64x4 {
	return F64x4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Mul returns the lane-wise product.
func (a F64x4) Mul(b F64x4) F64x4 {
	return F64x4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// MulAdd returns a*b + c per lane, with the product rounded before the add.
// The explicit conversion keeps the compiler from fusing the operations.
func (a F64x4) MulAdd(b, c F64x4) F64x4 {
	var r F64x4
	for i := range r {
		r[i] = float64(a[i]*b[i]) + c[i]
	}
	return r
}

// Recip returns 1/a per lane.
func (a F64x4) Recip() F64x4 {
	return F64x4{1 / a[0], 1 / a[1], 1 / a[2], 1 / a[3]}
}

// Greater returns a mask of lanes where a > b.
func (a F64x4) Greater(b F64x4) Mask4 {
	var m Mask4
	for i := range m {
		if a[i] > b[i] {
			m[i] = laneOn
		}
	}
	return m
}

// GreaterEq returns a mask of lanes where a >= b.
func (a F64x4) GreaterEq(b F64x4) Mask4 {
	var m Mask4
	for i := range m {
		if a[i] >= b[i] {
			m[i] = laneOn
		}
	}
	return m
}

// Equal returns a mask of lanes where a == b.
func (a F64x4) Equal(b F64x4) Mask4 {
	var m Mask4
	for i := range m {
		if a[i] == b[i] {
			m[i] = laneOn
		}
	}
	return m
}

// SplatMask returns a mask with every lane set to on.
func SplatMask(on bool) Mask4 {
	if on {
		return Mask4{laneOn, laneOn, laneOn, laneOn}
	}
	return Mask4{}
}

// FirstN returns a mask with lanes [0, n) set.
func FirstN(n int) Mask4 {
	var m Mask4
	for i := 0; i < n && i < Lanes; i++ {
		m[i] = laneOn
	}
	return m
}

// And returns the lane-wise intersection.
func (m Mask4) And(o Mask4) Mask4 {
	return Mask4{m[0] & o[0], m[1] & o[1], m[2] & o[2], m[3] & o[3]}
}

// Or returns the lane-wise union.
func (m Mask4) Or(o Mask4) Mask4 {
	return Mask4{m[0] | o[0], m[1] | o[1], m[2] | o[2], m[3] | o[3]}
}

// Any reports whether at least one lane is set.
func (m Mask4) Any() bool {
	return m[0]|m[1]|m[2]|m[3] != 0
}

// Lane reports whether lane i is set.
func (m Mask4) Lane(i int) bool {
	return m[i] != 0
}

// Bits packs the mask into the low four bits, lane 0 first.
func (m Mask4) Bits() uint8 {
	var b uint8
	for i := range m {
		if m[i] != 0 {
			b |= 1 << i
		}
	}
	return b
}

// SelectF64 returns a where the mask is set and b elsewhere. The blend works
// on the IEEE-754 bit patterns, so NaN payloads and signed zeros pass through
// untouched.
func SelectF64(m Mask4, a, b F64x4) F64x4 {
	var r F64x4
	for i := range r {
		bits := math.Float64bits(a[i])&m[i] | math.Float64bits(b[i])&^m[i]
		r[i] = math.Float64frombits(bits)
	}
	return r
}

// SelectU32 returns a where the mask is set and b elsewhere.
func SelectU32(m Mask4, a, b U32x4) U32x4 {
	var r U32x4
	for i := range r {
		lane := uint32(m[i])
		r[i] = a[i]&lane | b[i]&^lane
	}
	return r
}
