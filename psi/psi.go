//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package psi implements two-party private set intersection from
// oblivious key-value stores. The Receiver learns which of its items
// are also in the Sender's set and nothing else. The Sender learns
// nothing about the Receiver's set apart from its size.
//
// The protocol has two rounds:
//
//	Sender                          Receiver
//	  m = Round1()  ──────────────▶
//	               ◀──────────────  P1, P2 = Round1()
//	  K = Round2(P1, P2) ─────────▶
//	                                I = Round2(K, m)
//
// The Sender's message m is the Elligator2 representative of its
// public key share. The Receiver encodes the representatives of its
// per-item key shares into the polynomials P1 and P2 so that the
// Sender can recover the share of each common item but learns nothing
// about the others. The Sender answers with the shuffled key set K
// and the Receiver outputs the items whose keys appear in K.
package psi

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/markkurossi/psi/env"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// KeySize is the size of the final per-item keys.
const KeySize = 32

var (
	// ErrDegenerateInput is returned when the Receiver's polynomials
	// have degree less than one.
	ErrDegenerateInput = errors.New("psi: degenerate input")

	// ErrInvalidState is returned when a protocol round is called out
	// of order.
	ErrInvalidState = errors.New("psi: invalid state")

	// ErrProtocol is returned for malformed or unexpected protocol
	// messages.
	ErrProtocol = errors.New("psi: protocol error")
)

// Role identifies the protocol party.
type Role byte

// Protocol roles.
const (
	SenderRole Role = iota + 1
	ReceiverRole
)

var roles = map[Role]string{
	SenderRole:   "sender",
	ReceiverRole: "receiver",
}

func (r Role) String() string {
	name, ok := roles[r]
	if ok {
		return name
	}
	return fmt.Sprintf("{Role %d}", r)
}

// State defines the protocol state of a party.
type State int

// Party states.
const (
	Created State = iota
	Round1Done
	Round2Done
	Aborted
)

var states = map[State]string{
	Created:    "created",
	Round1Done: "round1",
	Round2Done: "round2",
	Aborted:    "aborted",
}

func (s State) String() string {
	name, ok := states[s]
	if ok {
		return name
	}
	return fmt.Sprintf("{State %d}", s)
}

// party implements the state common to both roles.
type party struct {
	role   Role
	config *env.Config
	logger *zap.Logger
	rand   io.Reader
	items  []string
	state  State
}

func newParty(role Role, config *env.Config, items []string) party {
	return party{
		role:   role,
		config: config,
		logger: config.GetLogger().Named("psi." + role.String()),
		rand: &lockedReader{
			r: config.GetRandom(),
		},
		items: items,
		state: Created,
	}
}

// Role returns the party's role.
func (p *party) Role() Role {
	return p.role
}

// State returns the party's protocol state.
func (p *party) State() State {
	return p.state
}

// Items returns the party's input set.
func (p *party) Items() []string {
	return p.items
}

func (p *party) expect(state State) error {
	if p.state != state {
		return fmt.Errorf("%w: %s in state %s, expected %s",
			ErrInvalidState, p.role, p.state, state)
	}
	return nil
}

// forEach calls f for each input item index on the configured number
// of worker goroutines. It returns the first error f returns.
func (p *party) forEach(f func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(p.config.Workers())

	for i := range p.items {
		g.Go(func() error {
			return f(i)
		})
	}
	return g.Wait()
}

// lockedReader serializes reads from a shared random source.
type lockedReader struct {
	m sync.Mutex
	r io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.m.Lock()
	defer l.m.Unlock()
	return l.r.Read(p)
}

// shuffle permutes keys uniformly at random with the Fisher-Yates
// algorithm.
func shuffle(r io.Reader, keys [][KeySize]byte) error {
	for i := len(keys) - 1; i > 0; i-- {
		j, err := rand.Int(r, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		keys[i], keys[j.Int64()] = keys[j.Int64()], keys[i]
	}
	return nil
}

func zero(keys ...[]byte) {
	for _, key := range keys {
		for i := range key {
			key[i] = 0
		}
	}
}
