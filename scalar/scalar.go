//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package scalar converts item labels and 32-byte buffers to and
// from elements of the edwards25519 scalar field. It also implements
// the two hash oracles of the PSI protocol: H1 maps items to field
// elements and H2 derives the final per-item keys.
package scalar

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
)

// Size is the byte size of an encoded scalar.
const Size = 32

var (
	// ErrNonCanonical is returned when a 32-byte value is not a
	// canonical encoding of a field element.
	ErrNonCanonical = errors.New("scalar: non-canonical encoding")
)

// New returns a new zero scalar.
func New() *edwards25519.Scalar {
	return edwards25519.NewScalar()
}

// FromItem implements H1. It hashes the item with SHA-256 and reduces
// the little-endian digest modulo the group order.
func FromItem(item string) *edwards25519.Scalar {
	digest := sha256.Sum256([]byte(item))
	return Reduce(digest)
}

// FinalKey implements H2: SHA-256(item || point).
func FinalKey(item string, point []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(item))
	h.Write(point)

	var result [32]byte
	h.Sum(result[:0])
	return result
}

// Reduce interprets b as a little-endian integer and reduces it
// modulo the group order. The reduction loses information for values
// that are not below the group order.
func Reduce(b [32]byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], b[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// Only fails if the input is not 64 bytes long.
		panic(err)
	}
	return s
}

// FromBytes decodes a canonical scalar encoding.
func FromBytes(b [32]byte) (*edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		return nil, ErrNonCanonical
	}
	return s, nil
}

// ToBytes returns the canonical little-endian encoding of s.
func ToBytes(s *edwards25519.Scalar) [32]byte {
	var result [32]byte
	copy(result[:], s.Bytes())
	return result
}

// FromByte returns the scalar with the small value b.
func FromByte(b byte) *edwards25519.Scalar {
	var buf [32]byte
	buf[0] = b

	s, err := FromBytes(buf)
	if err != nil {
		panic(err)
	}
	return s
}

// Split splits the 32-byte value f into a body and an extra byte. The
// body is f with its most significant byte cleared and it is always
// a canonical field element. The extra is the cleared byte.
// Join(Split(f)) == f for all f.
func Split(f [32]byte) (body, extra *edwards25519.Scalar) {
	extra = FromByte(f[31])
	f[31] = 0
	body, err := FromBytes(f)
	if err != nil {
		panic(err)
	}
	return body, extra
}

// Join reconstructs a 32-byte value from the body and the low byte
// of extra.
func Join(body, extra *edwards25519.Scalar) [32]byte {
	result := ToBytes(body)
	result[31] = extra.Bytes()[0]
	return result
}
