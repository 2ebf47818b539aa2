//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"io"
)

// Pipe creates an in-memory connection pair. Anything sent to the
// first endpoint can be received from the second and vice versa.
func Pipe() (*Conn, *Conn) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()

	return NewConn(&pipeEnd{r: ar, w: aw}), NewConn(&pipeEnd{r: br, w: bw})
}

type pipeEnd struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeEnd) Read(data []byte) (int, error) {
	return p.r.Read(data)
}

func (p *pipeEnd) Write(data []byte) (int, error) {
	return p.w.Write(data)
}

// Close closes both directions. The peer sees io.EOF on its next read
// and io.ErrClosedPipe on its next write.
func (p *pipeEnd) Close() error {
	werr := p.w.Close()
	if err := p.r.Close(); err != nil {
		return err
	}
	return werr
}
