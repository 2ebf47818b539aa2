//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package perm

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

var vector = [Size]byte{
	8, 92, 171, 248, 211, 32, 99, 66, 143, 219, 210, 186, 31, 199, 94, 242,
	244, 64, 217, 138, 209, 138, 165, 115, 87, 17, 196, 2, 170, 117, 224, 249,
}

var knownAnswers = []struct {
	in  string
	out string
}{
	{
		in:  "0000000000000000000000000000000000000000000000000000000000000000",
		out: "0423ac0ce40205731028529c1bbe94f50423ac0ce40205731028529c1bbe94f5",
	},
	{
		in:  hex.EncodeToString(vector[:]),
		out: "7964aba78681b3b609f3dbc05005e9519cc5c02fe7cb8b96942d868d3ec59899",
	},
}

func decode(t *testing.T, s string) [Size]byte {
	var result [Size]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	copy(result[:], b)
	return result
}

func TestKnownAnswers(t *testing.T) {
	for idx, test := range knownAnswers {
		in := decode(t, test.in)
		out := decode(t, test.out)

		got := InversePermute(in)
		if got != out {
			t.Errorf("t%d: InversePermute=%x, expected %x", idx, got, out)
		}
		got = Permute(out)
		if got != in {
			t.Errorf("t%d: Permute=%x, expected %x", idx, got, in)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 1000; i++ {
		var x [Size]byte
		_, err := rand.Read(x[:])
		if err != nil {
			t.Fatal(err)
		}
		if Permute(InversePermute(x)) != x {
			t.Fatalf("Permute(InversePermute(%x)) failed", x)
		}
		if InversePermute(Permute(x)) != x {
			t.Fatalf("InversePermute(Permute(%x)) failed", x)
		}
	}
}

func TestInjective(t *testing.T) {
	seen := make(map[[Size]byte]bool)
	var x [Size]byte
	for i := 0; i < 4096; i++ {
		x[0] = byte(i)
		x[17] = byte(i >> 8)
		y := Permute(x)
		if seen[y] {
			t.Fatalf("collision at %x", x)
		}
		seen[y] = true
	}
}

// The halves are permuted independently with the same key.
func TestHalves(t *testing.T) {
	var x [Size]byte
	copy(x[16:], vector[:16])
	copy(x[:16], vector[:16])

	y := InversePermute(x)
	if !bytes.Equal(y[:16], y[16:]) {
		t.Fatalf("halves differ: %x", y)
	}
}

func TestSubBytes(t *testing.T) {
	for i := 0; i < 256; i += Size {
		var in [Size]byte
		for j := range in {
			in[j] = byte(i + j)
		}
		var st fixslice
		bitslice(&st, in[:16], in[16:])
		subBytes(&st)
		invSubBytes(&st)
		if out := invBitslice(&st); out != in {
			t.Fatalf("invSubBytes(subBytes(%x))=%x", in, out)
		}
	}
}
