// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curvemath

import (
	"fmt"
	"math/big"
)

// These constants define the serialized point format prefixes from SEC 1
// section 2.3.3.
const (
	pointCompressedEven = 0x02
	pointCompressedOdd  = 0x03
	pointUncompressed   = 0x04
)

// Point is an affine point on a short Weierstrass curve or the distinguished
// point at infinity, represented by nil coordinates.  Points are immutable
// once created; all arithmetic returns fresh instances.
type Point struct {
	// X and Y are the affine coordinates.  Both are nil for the point at
	// infinity and non-nil otherwise.
	X *big.Int
	Y *big.Int
}

// NewPoint returns an affine point with copies of the provided coordinates.
func NewPoint(x, y *big.Int) *Point {
	return &Point{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

// Infinity returns the point at infinity, the identity element of the curve
// group.
func Infinity() *Point {
	return &Point{}
}

// IsInfinity returns whether the point is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p == nil || p.X == nil || p.Y == nil
}

// Equal returns whether the two points represent the same group element.
func (p *Point) Equal(other *Point) bool {
	if p.IsInfinity() || other.IsInfinity() {
		return p.IsInfinity() && other.IsInfinity()
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// String returns the point as "(x, y)" in hex, or "(infinity)".
func (p *Point) String() string {
	if p.IsInfinity() {
		return "(infinity)"
	}
	return fmt.Sprintf("(%x, %x)", p.X, p.Y)
}

// mustInverse returns the modular inverse of a nonzero operand.  Callers are
// required to have already excluded the zero case, so a failure here means
// the internal arithmetic invariants are broken and continuing would produce
// silently wrong group elements.
func mustInverse(a, m *big.Int) *big.Int {
	inv, err := ModInverse(a, m)
	if err != nil {
		panic(fmt.Sprintf("curvemath: internal error: %v", err))
	}
	return inv
}

// IsOnCurve returns whether the affine coordinates satisfy the curve
// equation y^2 = x^3 + A*x + B over the field prime.  The comparison is an
// exact big-integer equality after full reduction, never an approximation.
// Coordinates outside [0, P) are not on the curve.
func IsOnCurve(x, y *big.Int, curve *CurveParams) bool {
	if x == nil || y == nil {
		return false
	}
	if x.Sign() < 0 || y.Sign() < 0 || x.Cmp(curve.P) >= 0 || y.Cmp(curve.P) >= 0 {
		return false
	}

	// y^2 mod p.
	lhs := ModMul(y, y, curve.P)

	// x^3 + A*x + B mod p.
	rhs := ModMul(x, x, curve.P)
	rhs = ModMul(rhs, x, curve.P)
	if curve.A.Sign() != 0 {
		rhs = ModAdd(rhs, ModMul(curve.A, x, curve.P), curve.P)
	}
	rhs = ModAdd(rhs, curve.B, curve.P)

	return lhs.Cmp(rhs) == 0
}

// DoublePoint returns 2*P using the tangent-line slope
// lambda = (3*x^2 + A) * (2*y)^-1 mod p.  Doubling a point whose y
// coordinate is zero yields the point at infinity since the tangent there
// is vertical.
func DoublePoint(p *Point, curve *CurveParams) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	if p.Y.Sign() == 0 {
		return Infinity()
	}

	// lambda = (3*x^2 + A) / (2*y)
	num := ModMul(p.X, p.X, curve.P)
	num = ModMul(big.NewInt(3), num, curve.P)
	if curve.A.Sign() != 0 {
		num = ModAdd(num, curve.A, curve.P)
	}
	den := ModAdd(p.Y, p.Y, curve.P)
	lambda := ModMul(num, mustInverse(den, curve.P), curve.P)

	// x3 = lambda^2 - 2*x, y3 = lambda*(x - x3) - y.
	x3 := ModMul(lambda, lambda, curve.P)
	x3 = ModSub(x3, p.X, curve.P)
	x3 = ModSub(x3, p.X, curve.P)

	y3 := ModSub(p.X, x3, curve.P)
	y3 = ModMul(lambda, y3, curve.P)
	y3 = ModSub(y3, p.Y, curve.P)

	return &Point{X: x3, Y: y3}
}

// AddPoints returns P + Q, handling all four affine cases: either operand at
// infinity returns the other, equal points are doubled, points sharing an x
// coordinate with opposite y sum to infinity, and the general case uses the
// chord slope lambda = (y2 - y1) * (x2 - x1)^-1 mod p.
func AddPoints(p, q *Point, curve *CurveParams) *Point {
	if p.IsInfinity() {
		if q.IsInfinity() {
			return Infinity()
		}
		return NewPoint(q.X, q.Y)
	}
	if q.IsInfinity() {
		return NewPoint(p.X, p.Y)
	}

	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) == 0 {
			return DoublePoint(p, curve)
		}
		// Same x with different y means y2 = p - y1, so the chord is
		// vertical and the sum is the identity.
		return Infinity()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := ModSub(q.Y, p.Y, curve.P)
	den := ModSub(q.X, p.X, curve.P)
	lambda := ModMul(num, mustInverse(den, curve.P), curve.P)

	// x3 = lambda^2 - x1 - x2, y3 = lambda*(x1 - x3) - y1.
	x3 := ModMul(lambda, lambda, curve.P)
	x3 = ModSub(x3, p.X, curve.P)
	x3 = ModSub(x3, q.X, curve.P)

	y3 := ModSub(p.X, x3, curve.P)
	y3 = ModMul(lambda, y3, curve.P)
	y3 = ModSub(y3, p.Y, curve.P)

	return &Point{X: x3, Y: y3}
}

// NegatePoint returns -P, the point with the same x coordinate and negated
// y coordinate.
func NegatePoint(p *Point, curve *CurveParams) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	if p.Y.Sign() == 0 {
		return NewPoint(p.X, p.Y)
	}
	return &Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Sub(curve.P, p.Y)}
}

// ScalarMult returns k*P via double-and-add over the bits of k, processed
// from least significant to most significant.  The accumulator starts at the
// point at infinity, so a zero scalar yields infinity through the normal
// flow rather than an early return.  Negative scalars are reduced modulo the
// group order first, which selects the same group element.
func ScalarMult(k *big.Int, p *Point, curve *CurveParams) *Point {
	if k.Sign() < 0 {
		k = new(big.Int).Mod(k, curve.N)
	}

	total := Infinity()
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			total = AddPoints(total, addend, curve)
		}
		addend = DoublePoint(addend, curve)
	}
	return total
}

// ScalarBaseMult returns k*G for the curve's base point G.
func ScalarBaseMult(k *big.Int, curve *CurveParams) *Point {
	return ScalarMult(k, curve.Generator(), curve)
}

// paddedBytes returns v as a fixed-width big-endian byte string for the
// curve's field size.
func paddedBytes(v *big.Int, curve *CurveParams) []byte {
	out := make([]byte, curve.ByteSize())
	b := v.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

// SerializeCompressed returns the point in the 33-byte SEC 1 compressed
// format: a 0x02 or 0x03 prefix encoding the parity of y followed by the
// padded x coordinate.  It returns nil for the point at infinity, which has
// no serialized form.
func SerializeCompressed(p *Point, curve *CurveParams) []byte {
	if p.IsInfinity() {
		return nil
	}
	prefix := byte(pointCompressedEven)
	if p.Y.Bit(0) == 1 {
		prefix = pointCompressedOdd
	}
	out := make([]byte, 0, 1+curve.ByteSize())
	out = append(out, prefix)
	return append(out, paddedBytes(p.X, curve)...)
}

// SerializeUncompressed returns the point in the 65-byte SEC 1 uncompressed
// format: a 0x04 prefix followed by the padded x and y coordinates.  It
// returns nil for the point at infinity.
func SerializeUncompressed(p *Point, curve *CurveParams) []byte {
	if p.IsInfinity() {
		return nil
	}
	out := make([]byte, 0, 1+2*curve.ByteSize())
	out = append(out, pointUncompressed)
	out = append(out, paddedBytes(p.X, curve)...)
	return append(out, paddedBytes(p.Y, curve)...)
}

// ParsePoint deserializes a point from the SEC 1 compressed or uncompressed
// format and validates curve membership.  Decompression solves the curve
// equation for y and selects the root matching the encoded parity; an x
// coordinate with no square root on the curve is rejected.
func ParsePoint(b []byte, curve *CurveParams) (*Point, error) {
	byteSize := curve.ByteSize()
	if len(b) == 0 {
		return nil, makeError(ErrInvalidPointEncoding, "point bytes are empty")
	}

	switch b[0] {
	case pointCompressedEven, pointCompressedOdd:
		if len(b) != 1+byteSize {
			str := fmt.Sprintf("compressed point is %d bytes, want %d",
				len(b), 1+byteSize)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(curve.P) >= 0 {
			return nil, makeError(ErrPointNotOnCurve,
				"x coordinate is not a field element")
		}

		// rhs = x^3 + A*x + B mod p.
		rhs := ModMul(x, x, curve.P)
		rhs = ModMul(rhs, x, curve.P)
		if curve.A.Sign() != 0 {
			rhs = ModAdd(rhs, ModMul(curve.A, x, curve.P), curve.P)
		}
		rhs = ModAdd(rhs, curve.B, curve.P)

		y := new(big.Int).ModSqrt(rhs, curve.P)
		if y == nil {
			str := fmt.Sprintf("x coordinate %x is not on the curve", x)
			return nil, makeError(ErrPointNotOnCurve, str)
		}
		wantOdd := b[0] == pointCompressedOdd
		if (y.Bit(0) == 1) != wantOdd {
			y.Sub(curve.P, y)
		}
		return &Point{X: x, Y: y}, nil

	case pointUncompressed:
		if len(b) != 1+2*byteSize {
			str := fmt.Sprintf("uncompressed point is %d bytes, want %d",
				len(b), 1+2*byteSize)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		x := new(big.Int).SetBytes(b[1 : 1+byteSize])
		y := new(big.Int).SetBytes(b[1+byteSize:])
		if !IsOnCurve(x, y, curve) {
			str := fmt.Sprintf("point (%x, %x) is not on curve %s",
				x, y, curve.Name)
			return nil, makeError(ErrPointNotOnCurve, str)
		}
		return &Point{X: x, Y: y}, nil
	}

	str := fmt.Sprintf("unsupported point format prefix %#02x", b[0])
	return nil, makeError(ErrInvalidPointEncoding, str)
}
