//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"fmt"

	"github.com/markkurossi/psi/p2p"
	"github.com/markkurossi/psi/poly"
)

const (
	// Magic identifies PSI protocol connections.
	Magic = 0x50534931

	// Version is the protocol version.
	Version = 1

	// MaxKeys is the largest key set a Receiver accepts.
	MaxKeys = p2p.MaxDataSize / KeySize
)

// handshake exchanges the protocol magic, version, and roles with
// the peer.
func handshake(conn *p2p.Conn, role Role) error {
	if err := conn.SendUint32(Magic); err != nil {
		return err
	}
	if err := conn.SendUint16(Version); err != nil {
		return err
	}
	if err := conn.SendByte(byte(role)); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}

	magic, err := conn.ReceiveUint32()
	if err != nil {
		return err
	}
	if magic != Magic {
		return fmt.Errorf("%w: invalid magic 0x%08x", ErrProtocol, magic)
	}
	version, err := conn.ReceiveUint16()
	if err != nil {
		return err
	}
	if version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrProtocol, version)
	}
	b, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	peer := Role(b)
	if peer == role || (peer != SenderRole && peer != ReceiverRole) {
		return fmt.Errorf("%w: %s connected to %s", ErrProtocol, role, peer)
	}
	return nil
}

func xfer(conn *p2p.Conn) string {
	return FileSize(conn.Stats.Sum()).String()
}

// RunSender runs the sender side of the protocol over the connection.
// The timing may be nil.
func RunSender(conn *p2p.Conn, sender *Sender, timing *Timing) error {
	if err := handshake(conn, SenderRole); err != nil {
		return err
	}
	timing.Sample("Handshake", xfer(conn))

	m, err := sender.Round1()
	if err != nil {
		return err
	}
	if err := conn.Send32(m); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	timing.Sample("Round 1", xfer(conn))

	p1, err := receivePolynomial(conn)
	if err != nil {
		return err
	}
	p2, err := receivePolynomial(conn)
	if err != nil {
		return err
	}
	timing.Sample("Recv P", xfer(conn))

	keys, err := sender.Round2(p1, p2)
	if err != nil {
		return err
	}
	if err := conn.SendVector32(keys); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	timing.Sample("Round 2", xfer(conn))

	return nil
}

// RunReceiver runs the receiver side of the protocol over the
// connection and returns the intersection. The timing may be nil.
func RunReceiver(conn *p2p.Conn, receiver *Receiver, timing *Timing) (
	[]string, error) {

	if err := handshake(conn, ReceiverRole); err != nil {
		return nil, err
	}
	timing.Sample("Handshake", xfer(conn))

	p1, p2, err := receiver.Round1()
	if err != nil {
		return nil, err
	}
	m, err := conn.Receive32()
	if err != nil {
		return nil, err
	}
	if err := conn.SendData(p1.Marshal()); err != nil {
		return nil, err
	}
	if err := conn.SendData(p2.Marshal()); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	timing.Sample("Round 1", xfer(conn))

	keys, err := conn.ReceiveVector32(MaxKeys)
	if err != nil {
		return nil, err
	}
	timing.Sample("Recv K", xfer(conn))

	result, err := receiver.Round2(keys, m)
	if err != nil {
		return nil, err
	}
	timing.Sample("Round 2", xfer(conn))

	return result, nil
}

func receivePolynomial(conn *p2p.Conn) (*poly.Polynomial, error) {
	data, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	p, err := poly.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	return p, nil
}
