package wide

import (
	"math"
	"testing"
)

func TestMulAddMatchesScalar(t *testing.T) {
	a := F64x4{0.1, 1e16, -3.25, 7}
	b := F64x4{0.2, 1.0000001, 0.5, 1.0 / 3}
	c := F64x4{0.3, -1e16, 2, 1e-9}

	got := a.MulAdd(b, c)
	for i := range got {
		want := float64(a[i]*b[i]) + c[i]
		if math.Float64bits(got[i]) != math.Float64bits(want) {
			t.Errorf("lane %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestCompareMasks(t *testing.T) {
	a := F64x4{1, 2, 3, 4}
	b := F64x4{2, 2, 2, 2}

	tests := []struct {
		name string
		got  Mask4
		want uint8
	}{
		{"greater", a.Greater(b), 0b1100},
		{"greater-eq", a.GreaterEq(b), 0b1110},
		{"equal", a.Equal(b), 0b0010},
		{"first two", FirstN(2), 0b0011},
		{"first six", FirstN(6), 0b1111},
		{"and", a.GreaterEq(b).And(FirstN(3)), 0b0110},
		{"or", a.Greater(b).Or(FirstN(1)), 0b1101},
		{"splat off", SplatMask(false), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got.Bits(); got != tc.want {
				t.Errorf("bits = %04b, want %04b", got, tc.want)
			}
		})
	}
}

func TestAnyShortCircuit(t *testing.T) {
	if (Mask4{}).Any() {
		t.Error("empty mask reports Any")
	}
	if !FirstN(1).Any() {
		t.Error("one-lane mask reports none")
	}
}

func TestSelect(t *testing.T) {
	m := FirstN(2)
	f := SelectF64(m, F64x4{1, 2, 3, 4}, F64x4{-1, -2, math.Copysign(0, -1), -4})
	if f[0] != 1 || f[1] != 2 || f[3] != -4 {
		t.Errorf("SelectF64 = %v", f)
	}
	if !math.Signbit(f[2]) {
		t.Error("negative zero lost its sign bit")
	}

	u := SelectU32(m, U32x4{1, 2, 3, 4}, U32x4{9, 9, 9, 9})
	if u != (U32x4{1, 2, 9, 9}) {
		t.Errorf("SelectU32 = %v", u)
	}
}

func TestRamp(t *testing.T) {
	if got := RampF64(4); got != (F64x4{4, 5, 6, 7}) {
		t.Errorf("RampF64(4) = %v", got)
	}
	if got := SplatF64(2).Mul(RampF64(0)).Add(SplatF64(1)).Sub(SplatF64(1)); got != (F64x4{0, 2, 4, 6}) {
		t.Errorf("arith = %v", got)
	}
	if got := SplatF64(4).Recip(); got != SplatF64(0.25) {
		t.Errorf("Recip = %v", got)
	}
}
