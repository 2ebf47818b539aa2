//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultRetryDelay is the delay between connection attempts in Dial.
const DefaultRetryDelay = 5 * time.Second

// Handler handles one accepted connection. The server closes the
// connection after the handler returns.
type Handler func(conn *Conn) error

// Server accepts two-party protocol connections.
type Server struct {
	logger   *zap.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

// Listen creates a new server listening on the TCP address addr.
func Listen(addr string, logger *zap.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:   logger,
		listener: listener,
	}, nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting connections and waits until active handlers
// return.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

// Serve accepts connections until the context is canceled or the
// server is closed. Each connection is handled in its own goroutine.
// If count is positive, Serve returns after handling count
// connections.
func (s *Server) Serve(ctx context.Context, count int, handler Handler) error {
	stop := context.AfterFunc(ctx, func() {
		s.listener.Close()
	})
	defer stop()

	for i := 0; count <= 0 || i < count; i++ {
		nc, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.logger.Debug("accepted connection",
			zap.Stringer("remote", nc.RemoteAddr()))

		s.wg.Add(1)
		go func(conn *Conn, remote string) {
			defer s.wg.Done()

			err := handler(conn)
			if cerr := conn.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				s.logger.Warn("connection failed", zap.String("remote", remote),
					zap.Error(err))
			} else {
				s.logger.Debug("connection done", zap.String("remote", remote))
			}
		}(NewConn(nc), nc.RemoteAddr().String())
	}
	s.wg.Wait()
	return nil
}

// Dial connects to the TCP address addr. Failed connection attempts
// are retried after delay until the context is done. A non-positive
// delay uses DefaultRetryDelay.
func Dial(ctx context.Context, addr string, delay time.Duration,
	logger *zap.Logger) (*Conn, error) {

	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	var dialer net.Dialer
	for {
		logger.Debug("connecting", zap.String("addr", addr))
		nc, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			logger.Debug("connected", zap.String("addr", addr))
			return NewConn(nc), nil
		}
		logger.Info("connect failed, retrying",
			zap.String("addr", addr),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}
