// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curvemath

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Known small multiples of the secp256k1 base point used throughout the
// arithmetic tests.
var (
	secp256k1G2x = hexToBigInt("c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5")
	secp256k1G2y = hexToBigInt("1ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a")
	secp256k1G3x = hexToBigInt("f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9")
	secp256k1G3y = hexToBigInt("388f7b0f632de8140fe337e62a37f3566500a99934c2231b6cb9fd7584b8e672")
)

// TestPointInfinity ensures the identity element is recognized in all of its
// representations and compares equal only to itself.
func TestPointInfinity(t *testing.T) {
	curve := Secp256k1()

	if !Infinity().IsInfinity() {
		t.Fatal("Infinity() is not the point at infinity")
	}
	var nilPoint *Point
	if !nilPoint.IsInfinity() {
		t.Fatal("nil point is not treated as infinity")
	}
	if !Infinity().Equal(nilPoint) {
		t.Fatal("infinity representations do not compare equal")
	}
	if Infinity().Equal(curve.Generator()) {
		t.Fatal("infinity compares equal to the generator")
	}
	if got := Infinity().String(); got != "(infinity)" {
		t.Fatalf("unexpected string form %q", got)
	}
}

// TestAddPoints exercises all four affine addition cases against known
// multiples of the base point.
func TestAddPoints(t *testing.T) {
	curve := Secp256k1()
	g := curve.Generator()
	g2 := NewPoint(secp256k1G2x, secp256k1G2y)
	g3 := NewPoint(secp256k1G3x, secp256k1G3y)

	tests := []struct {
		name string
		p    *Point
		q    *Point
		want *Point
	}{{
		name: "infinity plus infinity",
		p:    Infinity(),
		q:    Infinity(),
		want: Infinity(),
	}, {
		name: "infinity plus G",
		p:    Infinity(),
		q:    g,
		want: g,
	}, {
		name: "G plus infinity",
		p:    g,
		q:    Infinity(),
		want: g,
	}, {
		name: "G plus negated G",
		p:    g,
		q:    NegatePoint(g, curve),
		want: Infinity(),
	}, {
		name: "G plus G doubles",
		p:    g,
		q:    g,
		want: g2,
	}, {
		name: "chord case G plus 2G",
		p:    g,
		q:    g2,
		want: g3,
	}, {
		name: "chord case 2G plus G",
		p:    g2,
		q:    g,
		want: g3,
	}}

	for _, test := range tests {
		result := AddPoints(test.p, test.q, curve)
		if !result.Equal(test.want) {
			t.Errorf("%s: unexpected result -- got %v, want %v", test.name,
				result, test.want)
			continue
		}
		if !result.IsInfinity() && !IsOnCurve(result.X, result.Y, curve) {
			t.Errorf("%s: result is not on the curve", test.name)
		}
	}
}

// TestDoublePoint ensures tangent doubling matches the known 2G value and
// handles the degenerate inputs.
func TestDoublePoint(t *testing.T) {
	curve := Secp256k1()

	result := DoublePoint(curve.Generator(), curve)
	if result.X.Cmp(secp256k1G2x) != 0 || result.Y.Cmp(secp256k1G2y) != 0 {
		t.Fatalf("doubling G: got %v, want (%x, %x)", result, secp256k1G2x,
			secp256k1G2y)
	}

	if !DoublePoint(Infinity(), curve).IsInfinity() {
		t.Fatal("doubling infinity did not return infinity")
	}

	// A zero y coordinate means the tangent line is vertical.  No such point
	// exists on secp256k1, but the formula must still degrade to infinity
	// rather than attempting to invert zero.
	if !DoublePoint(NewPoint(bigOne, big.NewInt(0)), curve).IsInfinity() {
		t.Fatal("doubling a point with y=0 did not return infinity")
	}
}

// TestNegatePoint ensures negation mirrors the y coordinate and sums with
// the original to the identity.
func TestNegatePoint(t *testing.T) {
	curve := Secp256k1()
	g := curve.Generator()

	neg := NegatePoint(g, curve)
	if neg.X.Cmp(g.X) != 0 {
		t.Fatal("negation changed the x coordinate")
	}
	wantY := new(big.Int).Sub(curve.P, g.Y)
	if neg.Y.Cmp(wantY) != 0 {
		t.Fatalf("unexpected negated y -- got %x, want %x", neg.Y, wantY)
	}
	if !AddPoints(g, neg, curve).IsInfinity() {
		t.Fatal("point plus its negation is not infinity")
	}
	if !NegatePoint(Infinity(), curve).IsInfinity() {
		t.Fatal("negated infinity is not infinity")
	}
}

// TestScalarMult ensures double-and-add produces the known multiples,
// treats the group order as a full cycle, and yields infinity for a zero
// scalar through the normal code path.
func TestScalarMult(t *testing.T) {
	curve := Secp256k1()
	g := curve.Generator()
	nMinus1G := &Point{
		X: new(big.Int).Set(curve.Gx),
		Y: new(big.Int).Sub(curve.P, curve.Gy),
	}

	tests := []struct {
		name string
		k    *big.Int
		want *Point
	}{{
		name: "zero scalar",
		k:    big.NewInt(0),
		want: Infinity(),
	}, {
		name: "one",
		k:    big.NewInt(1),
		want: g,
	}, {
		name: "two",
		k:    big.NewInt(2),
		want: NewPoint(secp256k1G2x, secp256k1G2y),
	}, {
		name: "three",
		k:    big.NewInt(3),
		want: NewPoint(secp256k1G3x, secp256k1G3y),
	}, {
		name: "group order",
		k:    new(big.Int).Set(curve.N),
		want: Infinity(),
	}, {
		name: "order minus one is negated G",
		k:    new(big.Int).Sub(curve.N, bigOne),
		want: nMinus1G,
	}, {
		name: "order plus one wraps to G",
		k:    new(big.Int).Add(curve.N, bigOne),
		want: g,
	}, {
		name: "negative scalar reduces modulo the order",
		k:    big.NewInt(-1),
		want: nMinus1G,
	}}

	for _, test := range tests {
		result := ScalarMult(test.k, g, curve)
		if !result.Equal(test.want) {
			t.Errorf("%s: unexpected result -- got %v, want %v", test.name,
				result, test.want)
		}
	}
}

// TestScalarBaseMultCrossCheck verifies the textbook double-and-add against
// the optimized secp256k1 implementation for a spread of scalars.
func TestScalarBaseMultCrossCheck(t *testing.T) {
	curve := Secp256k1()

	scalars := []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(0xdeadbeef),
		new(big.Int).Set(curve.HalfN),
		new(big.Int).Sub(curve.N, bigOne),
	}
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 32)
	for i := 0; i < 16; i++ {
		rng.Read(buf)
		k := new(big.Int).SetBytes(buf)
		k.Mod(k, curve.N)
		if k.Sign() == 0 {
			continue
		}
		scalars = append(scalars, k)
	}

	for _, k := range scalars {
		got := SerializeUncompressed(ScalarBaseMult(k, curve), curve)

		var kBytes [32]byte
		k.FillBytes(kBytes[:])
		want := secp.PrivKeyFromBytes(kBytes[:]).PubKey().
			SerializeUncompressed()

		if !bytes.Equal(got, want) {
			t.Fatalf("scalar %x: mismatch with reference implementation -- "+
				"got %x, want %x", k, got, want)
		}
	}
}

// TestIsOnCurve ensures curve membership checks are exact and bounds-aware.
func TestIsOnCurve(t *testing.T) {
	k1 := Secp256k1()
	r1 := Secp256r1()

	tests := []struct {
		name  string
		x, y  *big.Int
		curve *CurveParams
		want  bool
	}{{
		name:  "secp256k1 generator",
		x:     k1.Gx,
		y:     k1.Gy,
		curve: k1,
		want:  true,
	}, {
		name:  "secp256r1 generator",
		x:     r1.Gx,
		y:     r1.Gy,
		curve: r1,
		want:  true,
	}, {
		name:  "secp256k1 generator against the wrong curve",
		x:     k1.Gx,
		y:     k1.Gy,
		curve: r1,
		want:  false,
	}, {
		name:  "y off by one",
		x:     k1.Gx,
		y:     new(big.Int).Add(k1.Gy, bigOne),
		curve: k1,
		want:  false,
	}, {
		name:  "x at the field prime",
		x:     k1.P,
		y:     k1.Gy,
		curve: k1,
		want:  false,
	}, {
		name:  "negative y",
		x:     k1.Gx,
		y:     new(big.Int).Neg(k1.Gy),
		curve: k1,
		want:  false,
	}, {
		name:  "nil coordinates",
		x:     nil,
		y:     nil,
		curve: k1,
		want:  false,
	}}

	for _, test := range tests {
		if got := IsOnCurve(test.x, test.y, test.curve); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestPointSerializeParse ensures both SEC 1 encodings round-trip through
// the parser and match the reference implementation's encodings.
func TestPointSerializeParse(t *testing.T) {
	curve := Secp256k1()
	g := curve.Generator()

	wantCompressed := hexToBytes("0279be667ef9dcbbac55a06295ce870b07029" +
		"bfcdb2dce28d959f2815b16f81798")
	if got := SerializeCompressed(g, curve); !bytes.Equal(got, wantCompressed) {
		t.Fatalf("compressed G: got %x, want %x", got, wantCompressed)
	}

	wantUncompressed := append([]byte{0x04}, append(g.X.Bytes(),
		g.Y.Bytes()...)...)
	if got := SerializeUncompressed(g, curve); !bytes.Equal(got, wantUncompressed) {
		t.Fatalf("uncompressed G: got %x, want %x", got, wantUncompressed)
	}

	if SerializeCompressed(Infinity(), curve) != nil {
		t.Fatal("infinity must not have a compressed encoding")
	}
	if SerializeUncompressed(Infinity(), curve) != nil {
		t.Fatal("infinity must not have an uncompressed encoding")
	}

	// Round-trip several points through both encodings.  Negated G has an
	// odd y coordinate, so the 0x03 prefix path is covered as well.
	points := []*Point{NegatePoint(g, curve)}
	for _, k := range []int64{1, 2, 3, 7, 1000003} {
		points = append(points, ScalarBaseMult(big.NewInt(k), curve))
	}
	for i, p := range points {

		fromComp, err := ParsePoint(SerializeCompressed(p, curve), curve)
		if err != nil {
			t.Fatalf("point %d: parse compressed: %v", i, err)
		}
		if !fromComp.Equal(p) {
			t.Fatalf("point %d: compressed round trip mismatch", i)
		}

		fromUncomp, err := ParsePoint(SerializeUncompressed(p, curve), curve)
		if err != nil {
			t.Fatalf("point %d: parse uncompressed: %v", i, err)
		}
		if !fromUncomp.Equal(p) {
			t.Fatalf("point %d: uncompressed round trip mismatch", i)
		}
	}
}

// TestParsePointErrors ensures malformed and off-curve encodings are
// rejected with the expected error kinds.
func TestParsePointErrors(t *testing.T) {
	curve := Secp256k1()
	g := curve.Generator()

	badY := NewPoint(g.X, new(big.Int).Add(g.Y, bigOne))
	offCurveUncompressed := append([]byte{0x04}, append(paddedBytes(badY.X,
		curve), paddedBytes(badY.Y, curve)...)...)

	// x = 0 gives rhs = 7, which is a quadratic non-residue modulo the
	// secp256k1 field prime, so no point with a zero x coordinate exists.
	noRoot := make([]byte, 33)
	noRoot[0] = 0x02

	xAtPrime := append([]byte{0x02}, paddedBytes(curve.P, curve)...)

	tests := []struct {
		name     string
		in       []byte
		wantKind ErrorKind
	}{{
		name:     "empty input",
		in:       nil,
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "unknown prefix",
		in:       append([]byte{0x05}, make([]byte, 32)...),
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "hybrid prefix is not supported",
		in:       append([]byte{0x06}, make([]byte, 64)...),
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "compressed point too short",
		in:       []byte{0x02, 0x01},
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "compressed point too long",
		in:       append([]byte{0x02}, make([]byte, 33)...),
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "uncompressed point too short",
		in:       append([]byte{0x04}, make([]byte, 63)...),
		wantKind: ErrInvalidPointEncoding,
	}, {
		name:     "compressed x beyond the field prime",
		in:       xAtPrime,
		wantKind: ErrPointNotOnCurve,
	}, {
		name:     "compressed x with no square root",
		in:       noRoot,
		wantKind: ErrPointNotOnCurve,
	}, {
		name:     "uncompressed point off the curve",
		in:       offCurveUncompressed,
		wantKind: ErrPointNotOnCurve,
	}}

	for _, test := range tests {
		result, err := ParsePoint(test.in, curve)
		if !errors.Is(err, test.wantKind) {
			t.Errorf("%s: unexpected error -- got %v, want %v", test.name,
				err, test.wantKind)
			continue
		}
		if result != nil {
			t.Errorf("%s: expected nil point", test.name)
		}
	}
}
