//
// protocol_test.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func value32(b byte) [ValueSize]byte {
	var result [ValueSize]byte
	for i := range result {
		result[i] = b + byte(i)
	}
	return result
}

func data(size int) []byte {
	result := make([]byte, size)
	for i := range result {
		result[i] = byte(i * 7)
	}
	return result
}

var tests = []interface{}{
	byte(42),
	uint16(43),
	uint32(44),
	value32(1),
	[][ValueSize]byte{value32(2), value32(3), value32(4)},
	[][ValueSize]byte{},
	data(0),
	data(1024),
	data(writeBufSize + 13),
	data(2*readBufSize + 7),
}

func writer(c *Conn) {
	for _, test := range tests {
		switch d := test.(type) {
		case byte:
			if err := c.SendByte(d); err != nil {
				fmt.Printf("SendByte: %v\n", err)
			}

		case uint16:
			if err := c.SendUint16(int(d)); err != nil {
				fmt.Printf("SendUint16: %v\n", err)
			}

		case uint32:
			if err := c.SendUint32(int(d)); err != nil {
				fmt.Printf("SendUint32: %v\n", err)
			}

		case [ValueSize]byte:
			if err := c.Send32(d); err != nil {
				fmt.Printf("Send32: %v\n", err)
			}

		case [][ValueSize]byte:
			if err := c.SendVector32(d); err != nil {
				fmt.Printf("SendVector32: %v\n", err)
			}

		case []byte:
			if err := c.SendData(d); err != nil {
				fmt.Printf("SendData [%v]byte: %v\n", len(d), err)
			}

		default:
			fmt.Printf("writer: invalid data: %v(%T)\n", test, test)
		}
	}
	if err := c.Flush(); err != nil {
		fmt.Printf("Flush: %v\n", err)
	}
}

func TestProtocol(t *testing.T) {
	cw, c := Pipe()

	go writer(cw)

	for _, test := range tests {
		switch d := test.(type) {
		case byte:
			v, err := c.ReceiveByte()
			if err != nil {
				t.Fatalf("ReceiveByte: %v", err)
			}
			if v != d {
				t.Errorf("ReceiveByte: got %v, expected %v", v, d)
			}

		case uint16:
			v, err := c.ReceiveUint16()
			if err != nil {
				t.Fatalf("ReceiveUint16: %v", err)
			}
			if v != int(d) {
				t.Errorf("ReceiveUint16: got %v, expected %v", v, d)
			}

		case uint32:
			v, err := c.ReceiveUint32()
			if err != nil {
				t.Fatalf("ReceiveUint32: %v", err)
			}
			if v != int(d) {
				t.Errorf("ReceiveUint32: got %v, expected %v", v, d)
			}

		case [ValueSize]byte:
			v, err := c.Receive32()
			if err != nil {
				t.Fatalf("Receive32: %v", err)
			}
			if v != d {
				t.Errorf("Receive32: got %x, expected %x", v, d)
			}

		case [][ValueSize]byte:
			v, err := c.ReceiveVector32(len(d))
			if err != nil {
				t.Fatalf("ReceiveVector32: %v", err)
			}
			if len(v) != len(d) {
				t.Fatalf("ReceiveVector32: got %v values, expected %v",
					len(v), len(d))
			}
			for i := range v {
				if v[i] != d[i] {
					t.Errorf("ReceiveVector32: value %v mismatch", i)
				}
			}

		case []byte:
			v, err := c.ReceiveData()
			if err != nil {
				t.Fatalf("ReceiveData: %v", err)
			}
			if !bytes.Equal(v, d) {
				t.Errorf("ReceiveData: got [%v]byte, expected [%v]byte",
					len(v), len(d))
			}

		default:
			t.Errorf("invalid value: %v(%T)", test, test)
		}
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestVectorLimit(t *testing.T) {
	cw, c := Pipe()

	go func() {
		cw.SendVector32([][ValueSize]byte{value32(1), value32(2)})
		cw.Flush()
	}()

	_, err := c.ReceiveVector32(1)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("ReceiveVector32: got %v, expected %v", err, ErrTooLarge)
	}
}

func TestDataLimit(t *testing.T) {
	cw, c := Pipe()

	go func() {
		cw.SendUint32(MaxDataSize + 1)
		cw.Flush()
	}()

	_, err := c.ReceiveData()
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("ReceiveData: got %v, expected %v", err, ErrTooLarge)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	cw, c := Pipe()

	go func() {
		cw.SendUint32(100)
		cw.SendByte(1)
		cw.Close()
	}()

	_, err := c.ReceiveData()
	if err == nil {
		t.Fatalf("ReceiveData succeeded on truncated data")
	}
}

func TestIOStats(t *testing.T) {
	cw, c := Pipe()

	go func() {
		cw.Send32(value32(0))
		cw.Flush()
	}()
	if _, err := c.Receive32(); err != nil {
		t.Fatal(err)
	}

	sum := cw.Stats.Add(c.Stats)
	if sum.Sum() != 2*ValueSize {
		t.Errorf("Sum: got %v, expected %v", sum.Sum(), 2*ValueSize)
	}
}
