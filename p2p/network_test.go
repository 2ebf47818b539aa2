//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestServeDial(t *testing.T) {
	logger := zaptest.NewLogger(t)

	server, err := Listen("127.0.0.1:0", logger)
	require.NoError(t, err)
	defer server.Close()

	done := make(chan error)
	go func() {
		done <- server.Serve(context.Background(), 1, func(conn *Conn) error {
			v, err := conn.Receive32()
			if err != nil {
				return err
			}
			if err := conn.Send32(value32(v[0] + 1)); err != nil {
				return err
			}
			return conn.Flush()
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := Dial(ctx, server.Addr().String(), 100*time.Millisecond,
		logger)
	require.NoError(t, err)

	require.NoError(t, conn.Send32(value32(10)))
	require.NoError(t, conn.Flush())

	v, err := conn.Receive32()
	require.NoError(t, err)
	require.Equal(t, value32(11), v)
	require.NoError(t, conn.Close())

	require.NoError(t, <-done)
}

func TestServeCancel(t *testing.T) {
	server, err := Listen("127.0.0.1:0", nil)
	require.NoError(t, err)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- server.Serve(ctx, 0, func(conn *Conn) error {
			return nil
		})
	}()
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
}

func TestDialCancel(t *testing.T) {
	server, err := Listen("127.0.0.1:0", nil)
	require.NoError(t, err)
	addr := server.Addr().String()
	require.NoError(t, server.Close())

	ctx, cancel := context.WithTimeout(context.Background(),
		200*time.Millisecond)
	defer cancel()

	_, err = Dial(ctx, addr, 50*time.Millisecond, nil)
	require.Error(t, err)
}
