//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/markkurossi/psi/elligator"
	"github.com/markkurossi/psi/env"
	"github.com/markkurossi/psi/perm"
	"github.com/markkurossi/psi/poly"
	"github.com/markkurossi/psi/scalar"
	"go.uber.org/zap"
)

// Sender implements the PSI sender. The Sender learns nothing about
// the intersection.
type Sender struct {
	party
	key [elligator.Size]byte
}

// NewSender creates a new sender for the items. The config may be
// nil.
func NewSender(config *env.Config, items []string) *Sender {
	return &Sender{
		party: newParty(SenderRole, config, items),
	}
}

// Round1 samples the Sender's private key share a and returns the
// message m, which is the representative of a·B.
func (s *Sender) Round1() ([elligator.Size]byte, error) {
	var m [elligator.Size]byte

	if err := s.expect(Created); err != nil {
		return m, err
	}
	key, tweak, err := elligator.SampleRepresentable(s.rand)
	if err != nil {
		s.abort()
		return m, fmt.Errorf("psi: sender round 1: %w", err)
	}
	m, err = elligator.ToRepresentative(key, tweak)
	if err != nil {
		zero(key[:])
		s.abort()
		return m, fmt.Errorf("psi: sender round 1: %w", err)
	}
	s.key = key
	s.state = Round1Done

	s.logger.Debug("round 1 done", zap.Int("items", len(s.items)))

	return m, nil
}

// Round2 evaluates the Receiver's polynomials at the Sender's items
// and returns the shuffled set of final keys K. An item whose value
// does not map to a curve point gets a random key so the size of K
// is always the size of the Sender's set. Any error aborts the
// protocol.
func (s *Sender) Round2(p1, p2 *poly.Polynomial) ([][KeySize]byte, error) {
	if err := s.expect(Round1Done); err != nil {
		return nil, err
	}
	defer zero(s.key[:])

	if p1 == nil || p2 == nil || p1.Degree() < 1 || p2.Degree() < 1 {
		s.abort()
		return nil, ErrDegenerateInput
	}
	if len(p1.Coeffs) != len(p2.Coeffs) {
		s.abort()
		return nil, fmt.Errorf("psi: sender round 2: %w: %d and %d",
			poly.ErrLengthMismatch, len(p1.Coeffs), len(p2.Coeffs))
	}

	start := time.Now()
	keys := make([][KeySize]byte, len(s.items))
	var failures atomic.Int64

	err := s.forEach(func(i int) error {
		item := s.items[i]

		f := p1.Evaluate(scalar.FromItem(item))
		extra := p2.Evaluate(f)
		rep := perm.Permute(scalar.Join(f, extra))

		point, err := elligator.FromRepresentative(rep)
		if err != nil {
			if !errors.Is(err, elligator.ErrBadRepresentative) {
				return err
			}
			failures.Add(1)
			_, err = io.ReadFull(s.rand, keys[i][:])
			return err
		}
		shared := elligator.Compress(elligator.ScalarMult(point, s.key))
		keys[i] = scalar.FinalKey(item, shared[:])
		return nil
	})
	if err != nil {
		s.abort()
		return nil, fmt.Errorf("psi: sender round 2: %w", err)
	}
	if err := shuffle(s.rand, keys); err != nil {
		s.abort()
		return nil, fmt.Errorf("psi: sender round 2: %w", err)
	}
	s.state = Round2Done

	s.logger.Debug("round 2 done",
		zap.Int("items", len(s.items)),
		zap.Int("degree", p1.Degree()),
		zap.Int64("failures", failures.Load()),
		zap.Duration("elapsed", time.Since(start)))

	return keys, nil
}

func (s *Sender) abort() {
	zero(s.key[:])
	s.state = Aborted
}
