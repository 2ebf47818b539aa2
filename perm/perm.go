//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package perm implements the public ideal permutation Π over 32-byte
// strings. The permutation is AES-256 with a fixed key schedule,
// applied to the two 16-byte halves of the input. The implementation
// is the 32-bit fully fixsliced AES which processes both halves in
// one bitsliced state and does not use lookup tables.
//
// Permute is AES-256 decryption and InversePermute is encryption so
// that Permute(InversePermute(x)) == x for all x.
package perm

import (
	"encoding/binary"
	"math/bits"
)

// Size is the permutation input and output size in bytes.
const Size = 32

// fixslice is the bitsliced state of two AES blocks.
type fixslice [8]uint32

// Permute applies Π to x.
func Permute(x [Size]byte) [Size]byte {
	var st fixslice
	bitslice(&st, x[:16], x[16:])
	decrypt(&st)
	return invBitslice(&st)
}

// InversePermute applies the inverse of Π to x.
func InversePermute(x [Size]byte) [Size]byte {
	var st fixslice
	bitslice(&st, x[:16], x[16:])
	encrypt(&st)
	return invBitslice(&st)
}

func encrypt(st *fixslice) {
	addRoundKey(st, roundKeys[:8])

	rk := 8
	for {
		subBytes(st)
		mixColumns1(st)
		addRoundKey(st, roundKeys[rk:rk+8])
		rk += 8

		if rk == 112 {
			break
		}

		subBytes(st)
		mixColumns2(st)
		addRoundKey(st, roundKeys[rk:rk+8])
		rk += 8

		subBytes(st)
		mixColumns3(st)
		addRoundKey(st, roundKeys[rk:rk+8])
		rk += 8

		subBytes(st)
		mixColumns0(st)
		addRoundKey(st, roundKeys[rk:rk+8])
		rk += 8
	}

	shiftRows2(st)
	subBytes(st)
	addRoundKey(st, roundKeys[112:])
}

func decrypt(st *fixslice) {
	addRoundKey(st, roundKeys[112:])
	invSubBytes(st)
	// ShiftRows twice is an involution.
	shiftRows2(st)

	rk := 104
	for {
		addRoundKey(st, roundKeys[rk:rk+8])
		invMixColumns1(st)
		invSubBytes(st)
		rk -= 8

		if rk == 0 {
			break
		}

		addRoundKey(st, roundKeys[rk:rk+8])
		invMixColumns0(st)
		invSubBytes(st)
		rk -= 8

		addRoundKey(st, roundKeys[rk:rk+8])
		invMixColumns3(st)
		invSubBytes(st)
		rk -= 8

		addRoundKey(st, roundKeys[rk:rk+8])
		invMixColumns2(st)
		invSubBytes(st)
		rk -= 8
	}

	addRoundKey(st, roundKeys[:8])
}

func addRoundKey(st *fixslice, key []uint32) {
	for i := range st {
		st[i] ^= key[i]
	}
}

func mixColumns0(st *fixslice) {
	mixColumns(st, rotateRows1, rotateRows2)
}

func mixColumns1(st *fixslice) {
	mixColumns(st, rotateRowsColumns11, rotateRowsColumns22)
}

func mixColumns2(st *fixslice) {
	mixColumns(st, rotateRowsColumns12, rotateRows2)
}

func mixColumns3(st *fixslice) {
	mixColumns(st, rotateRowsColumns13, rotateRowsColumns22)
}

func invMixColumns0(st *fixslice) {
	invMixColumns(st, rotateRows1, rotateRows2)
}

func invMixColumns1(st *fixslice) {
	invMixColumns(st, rotateRowsColumns11, rotateRowsColumns22)
}

func invMixColumns2(st *fixslice) {
	invMixColumns(st, rotateRowsColumns12, rotateRows2)
}

func invMixColumns3(st *fixslice) {
	invMixColumns(st, rotateRowsColumns13, rotateRowsColumns22)
}

// mixColumns computes MixColumns in the fixsliced representation. The
// rotations depend on the round number mod 4.
func mixColumns(st *fixslice, r1, r2 func(uint32) uint32) {
	var b, c fixslice
	for i := range st {
		b[i] = r1(st[i])
		c[i] = st[i] ^ b[i]
	}
	st[0] = b[0] ^ c[7] ^ r2(c[0])
	st[1] = b[1] ^ c[0] ^ c[7] ^ r2(c[1])
	st[2] = b[2] ^ c[1] ^ r2(c[2])
	st[3] = b[3] ^ c[2] ^ c[7] ^ r2(c[3])
	st[4] = b[4] ^ c[3] ^ c[7] ^ r2(c[4])
	st[5] = b[5] ^ c[4] ^ r2(c[5])
	st[6] = b[6] ^ c[5] ^ r2(c[6])
	st[7] = b[7] ^ c[6] ^ r2(c[7])
}

func invMixColumns(st *fixslice, r1, r2 func(uint32) uint32) {
	var c, d, e fixslice
	for i := range st {
		c[i] = st[i] ^ r1(st[i])
	}

	d[0] = st[0] ^ c[7]
	d[1] = st[1] ^ c[0] ^ c[7]
	d[2] = st[2] ^ c[1]
	d[3] = st[3] ^ c[2] ^ c[7]
	d[4] = st[4] ^ c[3] ^ c[7]
	d[5] = st[5] ^ c[4]
	d[6] = st[6] ^ c[5]
	d[7] = st[7] ^ c[6]

	e[0] = c[0] ^ d[6]
	e[1] = c[1] ^ d[6] ^ d[7]
	e[2] = c[2] ^ d[0] ^ d[7]
	e[3] = c[3] ^ d[1] ^ d[6]
	e[4] = c[4] ^ d[2] ^ d[6] ^ d[7]
	e[5] = c[5] ^ d[3] ^ d[7]
	e[6] = c[6] ^ d[4]
	e[7] = c[7] ^ d[5]

	for i := range st {
		st[i] = d[i] ^ e[i] ^ r2(e[i])
	}
}

func ror(x uint32, rows, cols int) uint32 {
	return bits.RotateLeft32(x, -((rows << 3) + (cols << 1)))
}

func rotateRows1(x uint32) uint32 {
	return ror(x, 1, 0)
}

func rotateRows2(x uint32) uint32 {
	return ror(x, 2, 0)
}

func rotateRowsColumns11(x uint32) uint32 {
	return (ror(x, 1, 1) & 0x3f3f3f3f) | (ror(x, 0, 1) & 0xc0c0c0c0)
}

func rotateRowsColumns12(x uint32) uint32 {
	return (ror(x, 1, 2) & 0x0f0f0f0f) | (ror(x, 0, 2) & 0xf0f0f0f0)
}

func rotateRowsColumns13(x uint32) uint32 {
	return (ror(x, 1, 3) & 0x03030303) | (ror(x, 0, 3) & 0xfcfcfcfc)
}

func rotateRowsColumns22(x uint32) uint32 {
	return (ror(x, 2, 2) & 0x0f0f0f0f) | (ror(x, 1, 2) & 0xf0f0f0f0)
}

func deltaSwap1(a *uint32, shift uint, mask uint32) {
	t := (*a ^ (*a >> shift)) & mask
	*a ^= t ^ (t << shift)
}

func deltaSwap2(a, b *uint32, shift uint, mask uint32) {
	t := (*a ^ (*b >> shift)) & mask
	*a ^= t
	*b ^= t << shift
}

// shiftRows2 applies ShiftRows twice.
func shiftRows2(st *fixslice) {
	for i := range st {
		deltaSwap1(&st[i], 4, 0x0f000f00)
	}
}

// swapIndices performs the bit index swaps 5<->0, 6<->1, and 7<->2
// between the block layout and the bitsliced layout. The swaps are
// involutions so the same function bitslices and un-bitslices.
func swapIndices(t *fixslice) {
	deltaSwap2(&t[1], &t[0], 1, 0x55555555)
	deltaSwap2(&t[3], &t[2], 1, 0x55555555)
	deltaSwap2(&t[5], &t[4], 1, 0x55555555)
	deltaSwap2(&t[7], &t[6], 1, 0x55555555)

	deltaSwap2(&t[2], &t[0], 2, 0x33333333)
	deltaSwap2(&t[3], &t[1], 2, 0x33333333)
	deltaSwap2(&t[6], &t[4], 2, 0x33333333)
	deltaSwap2(&t[7], &t[5], 2, 0x33333333)

	deltaSwap2(&t[4], &t[0], 4, 0x0f0f0f0f)
	deltaSwap2(&t[5], &t[1], 4, 0x0f0f0f0f)
	deltaSwap2(&t[6], &t[2], 4, 0x0f0f0f0f)
	deltaSwap2(&t[7], &t[3], 4, 0x0f0f0f0f)
}

// bitslice interleaves the columns of the two blocks: even words come
// from in0 and odd words from in1.
func bitslice(st *fixslice, in0, in1 []byte) {
	for i := 0; i < 4; i++ {
		st[2*i] = binary.LittleEndian.Uint32(in0[4*i:])
		st[2*i+1] = binary.LittleEndian.Uint32(in1[4*i:])
	}
	swapIndices(st)
}

func invBitslice(st *fixslice) [Size]byte {
	t := *st
	swapIndices(&t)

	var result [Size]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(result[4*i:], t[2*i])
		binary.LittleEndian.PutUint32(result[16+4*i:], t[2*i+1])
	}
	return result
}
