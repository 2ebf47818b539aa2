//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package scalar

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// order is the little-endian encoding of the group order
// 2^252 + 27742317777372353535851937790883648493.
var order = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

func TestCanonicalRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		var b [32]byte
		_, err := rand.Read(b[:])
		require.NoError(t, err)
		// Below 2^252 and thus below the group order.
		b[31] &= 0x0f

		s, err := FromBytes(b)
		require.NoError(t, err)
		require.Equal(t, b, ToBytes(s))
	}

	_, err := FromBytes(order)
	require.ErrorIs(t, err, ErrNonCanonical)

	one := order
	one[0]--
	s, err := FromBytes(one)
	require.NoError(t, err)
	require.Equal(t, one, ToBytes(s))
}

func TestReduce(t *testing.T) {
	require.Equal(t, 1, Reduce(order).Equal(New()))

	var b [32]byte
	_, err := rand.Read(b[:])
	require.NoError(t, err)

	// Reduction is deterministic on both sides.
	r0 := Reduce(b)
	r1 := Reduce(b)
	require.Equal(t, ToBytes(r0), ToBytes(r1))

	s, err := FromBytes(ToBytes(r0))
	require.NoError(t, err)
	require.Equal(t, 1, s.Equal(r0))
}

func TestFromItem(t *testing.T) {
	a := FromItem("apple")
	require.Equal(t, 1, a.Equal(FromItem("apple")))
	require.Equal(t, 0, a.Equal(FromItem("banana")))
	require.Equal(t, 1, a.Equal(Reduce(sha256.Sum256([]byte("apple")))))
}

func TestFinalKey(t *testing.T) {
	point := make([]byte, 32)
	point[0] = 1

	k := FinalKey("cherry", point)
	require.Equal(t, sha256.Sum256(append([]byte("cherry"), point...)), k)
	require.NotEqual(t, k, FinalKey("date", point))
}

func TestSplitJoin(t *testing.T) {
	for i := 0; i < 100; i++ {
		var f [32]byte
		_, err := rand.Read(f[:])
		require.NoError(t, err)

		body, extra := Split(f)
		assert.Equal(t, f[31], extra.Bytes()[0])
		assert.Equal(t, byte(0), body.Bytes()[31])
		assert.Equal(t, f, Join(body, extra))
	}
}

func TestFromByte(t *testing.T) {
	for _, b := range []byte{0, 1, 0x7f, 0xff} {
		s := FromByte(b)
		require.Equal(t, b, s.Bytes()[0])
		for _, v := range s.Bytes()[1:] {
			require.Equal(t, byte(0), v)
		}
	}
}
