//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"fmt"
	"time"

	"filippo.io/edwards25519"
	"github.com/markkurossi/psi/elligator"
	"github.com/markkurossi/psi/env"
	"github.com/markkurossi/psi/perm"
	"github.com/markkurossi/psi/poly"
	"github.com/markkurossi/psi/scalar"
	"go.uber.org/zap"
)

// Receiver implements the PSI receiver. The Receiver learns the
// intersection of its set with the Sender's set.
type Receiver struct {
	party
	keys [][elligator.Size]byte
}

// NewReceiver creates a new receiver for the items. The config may be
// nil.
func NewReceiver(config *env.Config, items []string) *Receiver {
	return &Receiver{
		party: newParty(ReceiverRole, config, items),
	}
}

// Round1 samples a private key share b_i for each item y_i and
// encodes the values f_i = Π⁻¹(msg(b_i)) into two polynomials. P1
// maps H1(y_i) to the low 31 bytes of f_i and P2 maps P1(H1(y_i)) to
// the most significant byte of f_i.
func (r *Receiver) Round1() (p1, p2 *poly.Polynomial, err error) {
	if err := r.expect(Created); err != nil {
		return nil, nil, err
	}
	start := time.Now()

	n := len(r.items)
	keys := make([][elligator.Size]byte, n)
	xs := make([]*edwards25519.Scalar, n)
	bodies := make([]*edwards25519.Scalar, n)
	extras := make([]*edwards25519.Scalar, n)

	err = r.forEach(func(i int) error {
		key, tweak, err := elligator.SampleRepresentable(r.rand)
		if err != nil {
			return err
		}
		rep, err := elligator.ToRepresentative(key, tweak)
		if err != nil {
			return err
		}
		keys[i] = key
		xs[i] = scalar.FromItem(r.items[i])
		bodies[i], extras[i] = scalar.Split(perm.InversePermute(rep))
		return nil
	})
	if err == nil {
		p1, err = poly.Interpolate(xs, bodies)
	}
	if err == nil {
		p2, err = poly.Interpolate(bodies, extras)
	}
	if err != nil {
		for i := range keys {
			zero(keys[i][:])
		}
		r.state = Aborted
		return nil, nil, fmt.Errorf("psi: receiver round 1: %w", err)
	}
	r.keys = keys
	r.state = Round1Done

	r.logger.Debug("round 1 done",
		zap.Int("items", n),
		zap.Int("degree", p1.Degree()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Stringer("p1", p1),
		zap.Stringer("p2", p2))

	return p1, p2, nil
}

// Round2 computes the final key of each item from the Sender's
// message m and outputs the items whose keys are in the Sender's key
// set. The output preserves the order of the Receiver's items. An
// invalid m aborts the protocol.
func (r *Receiver) Round2(keys [][KeySize]byte, m [elligator.Size]byte) (
	[]string, error) {

	if err := r.expect(Round1Done); err != nil {
		return nil, err
	}
	defer func() {
		for i := range r.keys {
			zero(r.keys[i][:])
		}
	}()

	point, err := elligator.FromRepresentative(m)
	if err != nil {
		r.state = Aborted
		return nil, fmt.Errorf("psi: receiver round 2: %w", err)
	}
	start := time.Now()

	finals := make([][KeySize]byte, len(r.items))
	err = r.forEach(func(i int) error {
		shared := elligator.Compress(elligator.ScalarMult(point, r.keys[i]))
		finals[i] = scalar.FinalKey(r.items[i], shared[:])
		return nil
	})
	if err != nil {
		r.state = Aborted
		return nil, fmt.Errorf("psi: receiver round 2: %w", err)
	}

	set := make(map[[KeySize]byte]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	var result []string
	for i, k := range finals {
		if set[k] {
			result = append(result, r.items[i])
		}
	}
	r.state = Round2Done

	r.logger.Debug("round 2 done",
		zap.Int("items", len(r.items)),
		zap.Int("keys", len(keys)),
		zap.Int("intersection", len(result)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}
