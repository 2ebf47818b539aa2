//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements the framed two-party connection which
// carries the PSI protocol messages.
package p2p

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 1024 * 1024

	// MaxDataSize is the largest data frame ReceiveData accepts.
	MaxDataSize = 256 * 1024 * 1024

	// ValueSize is the size of fixed-size protocol values.
	ValueSize = 32
)

var (
	// ErrTooLarge is returned when a received frame or vector
	// exceeds its size limit.
	ErrTooLarge = errors.New("p2p: frame too large")
)

// Conn implements a protocol connection. All values are sent in
// big-endian byte order. Sent data is buffered until Flush or until
// the write buffer fills up. The buffers are handed to a background
// writer so that encoding the next message overlaps with I/O.
type Conn struct {
	conn      io.ReadWriter
	WriteBuf  []byte
	WritePos  int
	ReadBuf   []byte
	ReadStart int
	ReadEnd   int
	Stats     IOStats

	fromWriter chan []byte
	toWriter   chan []byte
	writerErr  error
}

// IOStats implements I/O statistics.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:    new(atomic.Uint64),
		Recvd:   new(atomic.Uint64),
		Flushed: new(atomic.Uint64),
	}
}

// Add adds the argument stats to this IOStats and returns the sum.
func (stats IOStats) Add(o IOStats) IOStats {
	result := NewIOStats()
	result.Sent.Store(stats.Sent.Load() + o.Sent.Load())
	result.Recvd.Store(stats.Recvd.Load() + o.Recvd.Load())
	result.Flushed.Store(stats.Flushed.Load() + o.Flushed.Load())
	return result
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent.Load() + stats.Recvd.Load()
}

// NewConn creates a new connection around the argument connection.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:       conn,
		ReadBuf:    make([]byte, readBufSize),
		fromWriter: make(chan []byte, numBuffers),
		toWriter:   make(chan []byte, numBuffers),
		Stats:      NewIOStats(),
	}

	go c.writer()

	c.WriteBuf = <-c.fromWriter

	return c
}

func (c *Conn) writer() {
	for i := 0; i < numBuffers; i++ {
		c.fromWriter <- make([]byte, writeBufSize)
	}

	for buf := range c.toWriter {
		if _, err := c.conn.Write(buf); err != nil && c.writerErr == nil {
			c.writerErr = err
		}
		c.fromWriter <- buf[0:cap(buf)]
	}
	close(c.fromWriter)
}

// NeedSpace ensures the write buffer has space for count bytes. The
// function flushes the output if needed.
func (c *Conn) NeedSpace(count int) error {
	if c.WritePos+count > len(c.WriteBuf) {
		return c.Flush()
	}
	return nil
}

// Flush flushed any pending data in the connection.
func (c *Conn) Flush() error {
	if c.WritePos > 0 {
		c.Stats.Sent.Add(uint64(c.WritePos))
		c.toWriter <- c.WriteBuf[0:c.WritePos]

		next := <-c.fromWriter
		if c.writerErr != nil {
			return c.writerErr
		}

		c.WriteBuf = next
		c.WritePos = 0
		c.Stats.Flushed.Add(1)
	}
	return nil
}

// Fill fills the input buffer from the connection so that it holds
// at least n unread bytes. Any unused data in the buffer is moved to
// the beginning of the buffer. The argument n must not exceed the
// size of the read buffer.
func (c *Conn) Fill(n int) error {
	if n > len(c.ReadBuf) {
		return fmt.Errorf("p2p: fill %d exceeds buffer size %d",
			n, len(c.ReadBuf))
	}
	if c.ReadStart < c.ReadEnd {
		copy(c.ReadBuf[0:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadEnd -= c.ReadStart
		c.ReadStart = 0
	} else {
		c.ReadStart = 0
		c.ReadEnd = 0
	}
	for c.ReadStart+n > c.ReadEnd {
		got, err := c.conn.Read(c.ReadBuf[c.ReadEnd:])
		c.Stats.Recvd.Add(uint64(got))
		c.ReadEnd += got
		if err != nil {
			if c.ReadStart+n <= c.ReadEnd {
				break
			}
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// Close flushes any pending data and closes the connection.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	// Wait that flush completes.
	close(c.toWriter)
	for range c.fromWriter {
	}
	if c.writerErr != nil {
		return c.writerErr
	}
	closer, ok := c.conn.(io.Closer)
	if ok {
		return closer.Close()
	}
	return nil
}

// SendByte sends a byte value.
func (c *Conn) SendByte(val byte) error {
	if err := c.NeedSpace(1); err != nil {
		return err
	}
	c.WriteBuf[c.WritePos] = val
	c.WritePos++
	return nil
}

// SendUint16 sends an uint16 value.
func (c *Conn) SendUint16(val int) error {
	if err := c.NeedSpace(2); err != nil {
		return err
	}
	c.WriteBuf[c.WritePos+0] = byte((uint32(val) >> 8) & 0xff)
	c.WriteBuf[c.WritePos+1] = byte(uint32(val) & 0xff)
	c.WritePos += 2
	return nil
}

// SendUint32 sends an uint32 value.
func (c *Conn) SendUint32(val int) error {
	if err := c.NeedSpace(4); err != nil {
		return err
	}
	c.WriteBuf[c.WritePos+0] = byte((uint32(val) >> 24) & 0xff)
	c.WriteBuf[c.WritePos+1] = byte((uint32(val) >> 16) & 0xff)
	c.WriteBuf[c.WritePos+2] = byte((uint32(val) >> 8) & 0xff)
	c.WriteBuf[c.WritePos+3] = byte(uint32(val) & 0xff)
	c.WritePos += 4
	return nil
}

// Send32 sends a fixed-size 32-byte value.
func (c *Conn) Send32(val [ValueSize]byte) error {
	if err := c.NeedSpace(ValueSize); err != nil {
		return err
	}
	copy(c.WriteBuf[c.WritePos:], val[:])
	c.WritePos += ValueSize
	return nil
}

// SendData sends binary data as an uint32 length followed by the
// data bytes. Data larger than the write buffer is sent in multiple
// buffers.
func (c *Conn) SendData(val []byte) error {
	if len(val) > MaxDataSize {
		return ErrTooLarge
	}
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	for len(val) > 0 {
		if c.WritePos >= len(c.WriteBuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.WriteBuf[c.WritePos:], val)
		c.WritePos += n
		val = val[n:]
	}
	return nil
}

// SendVector32 sends a vector of 32-byte values as an uint32 count
// followed by the values.
func (c *Conn) SendVector32(vals [][ValueSize]byte) error {
	if err := c.SendUint32(len(vals)); err != nil {
		return err
	}
	for _, v := range vals {
		if err := c.Send32(v); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveByte receives a byte value.
func (c *Conn) ReceiveByte() (byte, error) {
	if c.ReadStart+1 > c.ReadEnd {
		if err := c.Fill(1); err != nil {
			return 0, err
		}
	}
	val := c.ReadBuf[c.ReadStart]
	c.ReadStart++
	return val, nil
}

// ReceiveUint16 receives an uint16 value.
func (c *Conn) ReceiveUint16() (int, error) {
	if c.ReadStart+2 > c.ReadEnd {
		if err := c.Fill(2); err != nil {
			return 0, err
		}
	}
	val := uint32(c.ReadBuf[c.ReadStart+0])
	val <<= 8
	val |= uint32(c.ReadBuf[c.ReadStart+1])
	c.ReadStart += 2

	return int(val), nil
}

// ReceiveUint32 receives an uint32 value.
func (c *Conn) ReceiveUint32() (int, error) {
	if c.ReadStart+4 > c.ReadEnd {
		if err := c.Fill(4); err != nil {
			return 0, err
		}
	}
	val := uint32(c.ReadBuf[c.ReadStart+0])
	val <<= 8
	val |= uint32(c.ReadBuf[c.ReadStart+1])
	val <<= 8
	val |= uint32(c.ReadBuf[c.ReadStart+2])
	val <<= 8
	val |= uint32(c.ReadBuf[c.ReadStart+3])
	c.ReadStart += 4

	return int(val), nil
}

// Receive32 receives a fixed-size 32-byte value.
func (c *Conn) Receive32() ([ValueSize]byte, error) {
	var result [ValueSize]byte
	if c.ReadStart+ValueSize > c.ReadEnd {
		if err := c.Fill(ValueSize); err != nil {
			return result, err
		}
	}
	copy(result[:], c.ReadBuf[c.ReadStart:])
	c.ReadStart += ValueSize

	return result, nil
}

// ReceiveData receives binary data. It fails with ErrTooLarge if the
// data length exceeds MaxDataSize.
func (c *Conn) ReceiveData() ([]byte, error) {
	l, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if l > MaxDataSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, l)
	}

	result := make([]byte, l)
	var pos int
	for pos < l {
		if c.ReadStart >= c.ReadEnd {
			n := l - pos
			if n > len(c.ReadBuf) {
				n = len(c.ReadBuf)
			}
			if err := c.Fill(n); err != nil {
				return nil, err
			}
		}
		n := copy(result[pos:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadStart += n
		pos += n
	}

	return result, nil
}

// ReceiveVector32 receives a vector of at most max 32-byte values.
func (c *Conn) ReceiveVector32(max int) ([][ValueSize]byte, error) {
	count, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if count > max {
		return nil, fmt.Errorf("%w: %d values, max %d", ErrTooLarge,
			count, max)
	}
	result := make([][ValueSize]byte, count)
	for i := range result {
		result[i], err = c.Receive32()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
