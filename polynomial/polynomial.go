// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polynomial implements the tiny slice of
// Polynomials.NonNegativePolynomial spec §6 requires: a top-lifted
// non-negative quantity that PureMemory.Range multiplies together to
// bound loop trip counts.
package polynomial

import "math/big"

// NonNegativePolynomial is top-lifted: either Top ("could not be
// bounded") or a concrete non-negative magnitude.
type NonNegativePolynomial struct {
	top   bool
	value big.Int
}

// Top is the unbounded polynomial.
func Top() NonNegativePolynomial { return NonNegativePolynomial{top: true} }

// One is the multiplicative identity.
func One() NonNegativePolynomial {
	p := NonNegativePolynomial{}
	p.value.SetInt64(1)
	return p
}

// OfInt lifts a concrete non-negative magnitude. Negative n is
// clamped to zero: a width computation that went negative means an
// empty range, which contributes a zero factor, not an error.
func OfInt(n *big.Int) NonNegativePolynomial {
	p := NonNegativePolynomial{}
	if n.Sign() < 0 {
		return p
	}
	p.value.Set(n)
	return p
}

// IsTop reports whether p is unbounded.
func (p NonNegativePolynomial) IsTop() bool { return p.top }

// Value returns p's magnitude and true, when p is not Top.
func (p NonNegativePolynomial) Value() (*big.Int, bool) {
	if p.top {
		return nil, false
	}
	return new(big.Int).Set(&p.value), true
}

// Mult returns p * o, Top absorbing.
func (p NonNegativePolynomial) Mult(o NonNegativePolynomial) NonNegativePolynomial {
	if p.top || o.top {
		return Top()
	}
	out := NonNegativePolynomial{}
	out.value.Mul(&p.value, &o.value)
	return out
}

func (p NonNegativePolynomial) String() string {
	if p.top {
		return "top"
	}
	return p.value.String()
}
