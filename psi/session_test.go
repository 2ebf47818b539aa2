//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/markkurossi/psi/p2p"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	sc, rc := p2p.Pipe()

	sender := NewSender(testConfig(t, "TestSession-sender"), senderSet)
	receiver := NewReceiver(testConfig(t, "TestSession-receiver"),
		receiverSet)

	done := make(chan error)
	go func() {
		done <- RunSender(sc, sender, nil)
	}()

	timing := NewTiming()
	result, err := RunReceiver(rc, receiver, timing)
	require.NoError(t, err)
	require.NoError(t, <-done)

	if diff := cmp.Diff([]string{"cherry", "date"}, result); diff != "" {
		t.Errorf("intersection mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, timing.Samples, 4)

	var buf bytes.Buffer
	timing.Print(&buf, rc.Stats)
	require.True(t, strings.Contains(buf.String(), "Recv K"))

	require.NoError(t, rc.Close())
	require.NoError(t, sc.Close())
}

func TestSessionRoleMismatch(t *testing.T) {
	c0, c1 := p2p.Pipe()

	done := make(chan error)
	go func() {
		done <- RunSender(c0, NewSender(nil, senderSet), nil)
	}()

	err := RunSender(c1, NewSender(nil, senderSet), nil)
	require.ErrorIs(t, err, ErrProtocol)
	require.ErrorIs(t, <-done, ErrProtocol)
}

func TestSessionBadMagic(t *testing.T) {
	c0, c1 := p2p.Pipe()

	go func() {
		c0.SendUint32(0x12345678)
		c0.SendUint16(Version)
		c0.SendByte(byte(SenderRole))
		c0.Flush()
	}()

	_, err := RunReceiver(c1, NewReceiver(nil, receiverSet), nil)
	require.ErrorIs(t, err, ErrProtocol)
}

func TestSessionMalformedPolynomial(t *testing.T) {
	c0, c1 := p2p.Pipe()

	go func() {
		if err := handshake(c0, ReceiverRole); err != nil {
			return
		}
		if _, err := c0.Receive32(); err != nil {
			return
		}
		c0.SendData(make([]byte, 33))
		c0.Flush()
	}()

	err := RunSender(c1, NewSender(nil, senderSet), nil)
	require.ErrorIs(t, err, ErrProtocol)
}
