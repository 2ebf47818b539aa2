//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package elligator implements the Elligator2 map between 254-bit
// representatives and edwards25519 points. Public keys carry a random
// small-order component so that their representatives are
// indistinguishable from uniformly random bit strings.
//
// The forward map takes a representative r to a point (u, v) on the
// Montgomery curve v² = u³ + Au² + u, which is then converted to the
// birationally equivalent twisted Edwards curve. About half of the
// curve points have a representative and the inverse map fails for
// the rest.
package elligator

import (
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// Size is the byte size of representatives, keys, and compressed
// points.
const Size = 32

// MaxRetries is the number of times SampleRepresentable redraws the
// key after the initial attempt.
const MaxRetries = 64

var (
	// ErrRepresentationExhausted is returned when SampleRepresentable
	// does not find a representable key.
	ErrRepresentationExhausted = errors.New(
		"elligator: no representable key found")

	// ErrBadRepresentative is returned when a representative maps to
	// a degenerate point.
	ErrBadRepresentative = errors.New("elligator: bad representative")

	// ErrBadScalar is returned when the public point of a key has no
	// representative.
	ErrBadScalar = errors.New("elligator: key is not representable")
)

var (
	one     = new(field.Element).One()
	two     = new(field.Element).Add(one, one)
	curveA  = new(field.Element).Mult32(one, 486662)
	negA    = new(field.Element).Negate(curveA)
	sqrtM2A *field.Element

	// torsion holds the eight points of the small-order subgroup,
	// torsion[i] = i·T where T generates the subgroup.
	torsion [8]*edwards25519.Point
)

// torsionGenerator encodes a point of order 8.
var torsionGenerator = []byte{
	0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0,
	0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0,
	0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39,
	0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05,
}

func init() {
	// sqrt(-(A+2)) scales the Montgomery v to the Edwards x.
	t := new(field.Element).Add(curveA, two)
	t.Negate(t)

	var wasSquare int
	sqrtM2A, wasSquare = new(field.Element).SqrtRatio(t, one)
	if wasSquare != 1 {
		panic("elligator: -(A+2) is not a square")
	}

	gen, err := new(edwards25519.Point).SetBytes(torsionGenerator)
	if err != nil {
		panic(err)
	}
	torsion[0] = edwards25519.NewIdentityPoint()
	for i := 1; i < len(torsion); i++ {
		torsion[i] = new(edwards25519.Point).Add(torsion[i-1], gen)
	}
	if new(edwards25519.Point).Add(torsion[7], gen).Equal(torsion[0]) != 1 {
		panic("elligator: invalid torsion generator")
	}
}

// SampleRepresentable draws a private key and a tweak from rand. It
// redraws the key up to MaxRetries times until the public point
// PublicKey(key) has a representative. The tweak does not affect
// representability and it is drawn only once.
func SampleRepresentable(rand io.Reader) ([Size]byte, byte, error) {
	var key [Size]byte
	var tweak [1]byte

	if _, err := io.ReadFull(rand, key[:]); err != nil {
		return key, 0, err
	}
	if _, err := io.ReadFull(rand, tweak[:]); err != nil {
		return key, 0, err
	}

	for i := 0; ; i++ {
		_, err := ToRepresentative(key, tweak[0])
		if err == nil {
			return key, tweak[0], nil
		}
		if i >= MaxRetries {
			break
		}
		if _, err := io.ReadFull(rand, key[:]); err != nil {
			return key, 0, err
		}
	}
	for i := range key {
		key[i] = 0
	}
	return key, 0, ErrRepresentationExhausted
}

// ToRepresentative computes the representative of the public point
// PublicKey(key). The two high bits of the representative are taken
// from the tweak.
func ToRepresentative(key [Size]byte, tweak byte) ([Size]byte, error) {
	var rep [Size]byte

	X, Y, Z, _ := PublicKey(key).ExtendedCoordinates()

	zInv := new(field.Element).Invert(Z)
	x := new(field.Element).Multiply(X, zInv)
	y := new(field.Element).Multiply(Y, zInv)

	// u = (1+y)/(1-y), v = sqrt(-(A+2))·u/x
	n := new(field.Element).Add(one, y)
	d := new(field.Element).Subtract(one, y)
	u := new(field.Element).Multiply(n, d.Invert(d))
	v := new(field.Element).Multiply(sqrtM2A, u)
	v.Multiply(v, new(field.Element).Invert(x))

	// Representable iff u != -A and -2u(u+A) is a square.
	uA := new(field.Element).Add(u, curveA)
	t := new(field.Element).Multiply(u, uA)
	t.Multiply(t, two)
	t.Negate(t)

	inv, isSquare := new(field.Element).SqrtRatio(one, t)
	if isSquare != 1 || t.Equal(new(field.Element).Zero()) == 1 {
		return rep, ErrBadScalar
	}

	// The sign of v selects the branch of the forward map.
	num := new(field.Element).Select(u, uA, v.IsNegative())
	r := new(field.Element).Multiply(num, inv)

	// Use the root that fits in 254 bits.
	r2 := new(field.Element).Add(r, r)
	r.Select(new(field.Element).Negate(r), r, r2.IsNegative())

	copy(rep[:], r.Bytes())
	rep[31] |= tweak & 0xc0

	return rep, nil
}

// FromRepresentative maps the representative to its edwards25519
// point. The two high bits of the representative are ignored.
func FromRepresentative(rep [Size]byte) (*edwards25519.Point, error) {
	rep[31] &= 0x3f

	r, err := new(field.Element).SetBytes(rep[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRepresentative, err)
	}

	// w = -A/(1+2r²)
	den := new(field.Element).Square(r)
	den.Multiply(den, two)
	den.Add(den, one)
	w := new(field.Element).Multiply(negA, den.Invert(den))

	// If g(w) is square then u = w and v = sqrt(g(w)). Otherwise
	// u = -w-A and v = -sqrt(g(u)).
	v1, isSquare := new(field.Element).SqrtRatio(curveEquation(w), one)

	u2 := new(field.Element).Negate(w)
	u2.Subtract(u2, curveA)
	v2, _ := new(field.Element).SqrtRatio(curveEquation(u2), one)
	v2.Negate(v2)

	u := new(field.Element).Select(w, u2, isSquare)
	v := new(field.Element).Select(v1, v2, isSquare)

	return montgomeryToEdwards(u, v)
}

// curveEquation computes u³ + Au² + u.
func curveEquation(u *field.Element) *field.Element {
	t := new(field.Element).Add(u, curveA)
	t.Multiply(t, u)
	t.Add(t, one)
	return t.Multiply(t, u)
}

// montgomeryToEdwards converts the Montgomery point (u, v) to the
// edwards25519 point (sqrt(-(A+2))·u/v, (u-1)/(u+1)).
func montgomeryToEdwards(u, v *field.Element) (*edwards25519.Point, error) {
	zero := new(field.Element).Zero()
	uPlus1 := new(field.Element).Add(u, one)
	if v.Equal(zero) == 1 || uPlus1.Equal(zero) == 1 {
		return nil, ErrBadRepresentative
	}

	y := new(field.Element).Subtract(u, one)
	y.Multiply(y, uPlus1.Invert(uPlus1))

	x := new(field.Element).Multiply(sqrtM2A, u)
	x.Multiply(x, new(field.Element).Invert(v))

	var encoding [Size]byte
	copy(encoding[:], y.Bytes())
	encoding[31] |= byte(x.IsNegative()) << 7

	p, err := new(edwards25519.Point).SetBytes(encoding[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRepresentative, err)
	}
	return p, nil
}

func clamped(key [Size]byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetBytesWithClamping(key[:])
	if err != nil {
		panic(err)
	}
	return s
}

// ScalarMult computes clamp(key)·p over the full curve group. The
// clamped key is a multiple of the cofactor so the small-order
// component of p is cleared and the result is in the prime-order
// subgroup, as with X25519.
func ScalarMult(p *edwards25519.Point, key [Size]byte) *edwards25519.Point {
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64

	// clamp(key)/8 < 2^252 is a canonical scalar.
	var k [Size]byte
	for i := 0; i < Size-1; i++ {
		k[i] = key[i]>>3 | key[i+1]<<5
	}
	k[Size-1] = key[Size-1] >> 3

	s, err := edwards25519.NewScalar().SetCanonicalBytes(k[:])
	if err != nil {
		panic(err)
	}
	result := edwards25519.NewIdentityPoint().ScalarMult(s, p)
	return result.MultByCofactor(result)
}

// ScalarBaseMult computes clamp(key)·B.
func ScalarBaseMult(key [Size]byte) *edwards25519.Point {
	return edwards25519.NewIdentityPoint().ScalarBaseMult(clamped(key))
}

// PublicKey computes the public point of the key. It is clamp(key)·B
// plus the small-order point selected by the three low bits of the
// key, which clamping discards. The representatives of public points
// then decode to all curve points and not only to the prime-order
// subgroup.
func PublicKey(key [Size]byte) *edwards25519.Point {
	p := ScalarBaseMult(key)
	return p.Add(p, torsion[key[0]&7])
}

// Compress returns the 32-byte compressed encoding of p.
func Compress(p *edwards25519.Point) [Size]byte {
	var result [Size]byte
	copy(result[:], p.Bytes())
	return result
}
