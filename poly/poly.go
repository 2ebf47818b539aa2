//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package poly implements polynomials over the edwards25519 scalar
// field.
package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"filippo.io/edwards25519"
	"github.com/markkurossi/psi/scalar"
	"github.com/markkurossi/text/superscript"
)

var (
	// ErrLengthMismatch is returned when the abscissas and ordinates
	// have different lengths.
	ErrLengthMismatch = errors.New("poly: length mismatch")

	// ErrEmptyInput is returned when interpolating zero points.
	ErrEmptyInput = errors.New("poly: empty input")

	// ErrDuplicateAbscissa is returned when two interpolation points
	// share the same abscissa.
	ErrDuplicateAbscissa = errors.New("poly: duplicate abscissa")

	// ErrMalformed is returned when decoding an invalid polynomial
	// encoding.
	ErrMalformed = errors.New("poly: malformed encoding")
)

// Polynomial defines a polynomial over the scalar field. The
// coefficients are in the ascending order of degree: Coeffs[i] is
// the coefficient of xⁱ.
type Polynomial struct {
	Coeffs []*edwards25519.Scalar
}

// Degree returns the degree of the polynomial, which is
// len(Coeffs)-1. The leading coefficient may be zero.
func (p *Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Evaluate evaluates the polynomial at x.
func (p *Polynomial) Evaluate(x *edwards25519.Scalar) *edwards25519.Scalar {
	result := scalar.New()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		result.MultiplyAdd(result, x, p.Coeffs[i])
	}
	return result
}

// Interpolate computes the unique polynomial of degree at most
// len(xs)-1 that passes through the points (xs[i], ys[i]).
//
// The Lagrange basis polynomials are derived from the master
// polynomial M(x) = ∏(x-xs[m]) by synthetic division so the
// interpolation takes O(n²) multiplications and n inversions.
func Interpolate(xs, ys []*edwards25519.Scalar) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissas, %d ordinates",
			ErrLengthMismatch, len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	seen := make(map[[scalar.Size]byte]bool)
	for _, x := range xs {
		key := scalar.ToBytes(x)
		if seen[key] {
			return nil, ErrDuplicateAbscissa
		}
		seen[key] = true
	}

	master := masterPolynomial(xs)

	result := make([]*edwards25519.Scalar, n)
	for i := range result {
		result[i] = scalar.New()
	}

	q := make([]*edwards25519.Scalar, n)
	for i := range q {
		q[i] = scalar.New()
	}
	for j := 0; j < n; j++ {
		// q(x) = M(x)/(x-xs[j])
		q[n-1].Set(master[n])
		for k := n - 1; k > 0; k-- {
			q[k-1].MultiplyAdd(xs[j], q[k], master[k])
		}

		// q(xs[j]) = ∏(xs[j]-xs[m]) for m != j
		den := (&Polynomial{Coeffs: q}).Evaluate(xs[j])
		factor := scalar.New().Invert(den)
		factor.Multiply(factor, ys[j])

		for k := 0; k < n; k++ {
			result[k].MultiplyAdd(factor, q[k], result[k])
		}
	}

	return &Polynomial{
		Coeffs: result,
	}, nil
}

// masterPolynomial computes the coefficients of ∏(x-xs[m]).
func masterPolynomial(xs []*edwards25519.Scalar) []*edwards25519.Scalar {
	m := make([]*edwards25519.Scalar, len(xs)+1)
	for i := range m {
		m[i] = scalar.New()
	}
	m[0] = scalar.FromByte(1)

	neg := scalar.New()
	for i, x := range xs {
		neg.Negate(x)
		// Multiply the degree i polynomial by (x-xs[i]).
		m[i+1].Set(m[i])
		for k := i; k > 0; k-- {
			m[k].MultiplyAdd(neg, m[k], m[k-1])
		}
		m[0].Multiply(neg, m[0])
	}
	return m
}

// Marshal encodes the polynomial as the concatenation of its 32-byte
// little-endian coefficients, lowest degree first.
func (p *Polynomial) Marshal() []byte {
	result := make([]byte, 0, len(p.Coeffs)*scalar.Size)
	for _, c := range p.Coeffs {
		result = append(result, c.Bytes()...)
	}
	return result
}

// Unmarshal decodes the polynomial from its Marshal encoding.
func Unmarshal(data []byte) (*Polynomial, error) {
	if len(data) == 0 || len(data)%scalar.Size != 0 {
		return nil, fmt.Errorf("%w: invalid length %d", ErrMalformed,
			len(data))
	}
	result := &Polynomial{
		Coeffs: make([]*edwards25519.Scalar, len(data)/scalar.Size),
	}
	for i := range result.Coeffs {
		var buf [scalar.Size]byte
		copy(buf[:], data[i*scalar.Size:])

		c, err := scalar.FromBytes(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient %d: %v",
				ErrMalformed, i, err)
		}
		result.Coeffs[i] = c
	}
	return result, nil
}

func (p *Polynomial) String() string {
	var sb strings.Builder
	for i, c := range p.Coeffs {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(decimal(c))
		switch i {
		case 0:
		case 1:
			sb.WriteString("x")
		default:
			sb.WriteString("x")
			sb.WriteString(superscript.Itoa(i))
		}
	}
	return sb.String()
}

func decimal(s *edwards25519.Scalar) string {
	le := s.Bytes()
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(be)-1-i] = b
	}
	return new(big.Int).SetBytes(be).String()
}
