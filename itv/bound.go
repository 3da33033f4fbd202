// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

import (
	"fmt"
	"math/big"
)

// boundKind distinguishes the three shapes a Bound can take: the two
// infinities, and a finite affine term coeff*Symbol + const (with
// Symbol absent, this degenerates to a plain constant).
type boundKind uint8

const (
	boundNegInf boundKind = iota
	boundPosInf
	boundFinite
)

// Bound is one endpoint of an Itv. It is either an infinity or a
// finite affine term over at most one Symbol: coeff*sym + off. A zero
// coeff (or absent symbol) makes it a plain integer constant -
// this is the common case for every interval produced by concrete
// arithmetic; the symbolic case only arises from MakeSym and its
// propagation through Plus/Minus/Subst.
type Bound struct {
	kind  boundKind
	coeff int64 // multiplies sym; zero/ignored when hasSym is false
	sym   Symbol
	hasSym bool
	off   big.Int
}

// NegInf and PosInf are the two unbounded ends.
func NegInf() Bound { return Bound{kind: boundNegInf} }
func PosInf() Bound { return Bound{kind: boundPosInf} }

// BoundOfInt builds a finite constant bound.
func BoundOfInt(n int64) Bound {
	b := Bound{kind: boundFinite}
	b.off.SetInt64(n)
	return b
}

// BoundOfBigInt builds a finite constant bound from an arbitrary
// precision integer, per spec §4.1 of_big_int.
func BoundOfBigInt(n *big.Int) Bound {
	b := Bound{kind: boundFinite}
	b.off.Set(n)
	return b
}

// BoundOfSymbol builds coeff*sym + off.
func BoundOfSymbol(coeff int64, sym Symbol, off int64) Bound {
	b := Bound{kind: boundFinite, coeff: coeff, sym: sym, hasSym: coeff != 0}
	b.off.SetInt64(off)
	return b
}

// IsInf reports whether b is one of the two infinities.
func (b Bound) IsInf() bool { return b.kind != boundFinite }

// IsSymbolic reports whether b carries a non-zero-coefficient symbol.
func (b Bound) IsSymbolic() bool { return b.kind == boundFinite && b.hasSym }

// Symbols returns the set of symbols mentioned by b.
func (b Bound) Symbols() SymbolSet {
	if !b.IsSymbolic() {
		return EmptySymbolSet()
	}
	return singletonSymbolSet(b.sym)
}

// AsConst returns b's integer value and true, when b is a finite
// non-symbolic bound.
func (b Bound) AsConst() (*big.Int, bool) {
	if b.kind != boundFinite || b.hasSym {
		return nil, false
	}
	return new(big.Int).Set(&b.off), true
}

// Eq reports structural equality of the two bounds.
func (b Bound) Eq(o Bound) bool {
	if b.kind != o.kind {
		return false
	}
	if b.kind != boundFinite {
		return true
	}
	if b.hasSym != o.hasSym {
		return false
	}
	if b.hasSym && (b.coeff != o.coeff || b.sym != o.sym) {
		return false
	}
	return b.off.Cmp(&o.off) == 0
}

// Leq is a *partial* order: b ≤ o is decidable only when both are
// finite non-symbolic, both are the same infinity, one side is an
// infinity that trivially decides it, or both carry the identical
// symbol term (in which case it reduces to comparing offsets). Two
// finite bounds over different symbols are incomparable and Leq
// reports false for both directions - callers (Itv.Leq) must be
// written so that is never unsound, only imprecise.
func (b Bound) Leq(o Bound) bool {
	if b.kind == boundNegInf || o.kind == boundPosInf {
		return true
	}
	if o.kind == boundNegInf || b.kind == boundPosInf {
		return b.kind == o.kind
	}
	// both finite
	if b.hasSym != o.hasSym || (b.hasSym && (b.sym != o.sym || b.coeff != o.coeff)) {
		return false
	}
	return b.off.Cmp(&o.off) <= 0
}

// Min returns the pointwise-smaller bound when comparable, else
// NegInf (the conservative choice for a lower bound).
func boundMin(a, b Bound) Bound {
	if a.Leq(b) {
		return a
	}
	if b.Leq(a) {
		return b
	}
	return NegInf()
}

// Max returns the pointwise-larger bound when comparable, else
// PosInf (the conservative choice for an upper bound).
func boundMax(a, b Bound) Bound {
	if a.Leq(b) {
		return b
	}
	if b.Leq(a) {
		return a
	}
	return PosInf()
}

// Add returns a + b when both are finite, collapsing to the
// appropriate infinity otherwise. Symbolic terms only add cleanly
// when at most one side carries a symbol, or both carry the same
// one; mixed distinct symbols degenerate to a non-symbolic bound
// using only the constant parts (a conservative widening of
// precision, never of soundness, since the caller only uses Add
// inside interval arithmetic which tolerates losing a symbolic term).
func (b Bound) Add(o Bound) Bound {
	if b.kind == boundNegInf || o.kind == boundNegInf {
		if b.kind == boundPosInf || o.kind == boundPosInf {
			return PosInf() // -inf + +inf : conservative per Itv arithmetic caller context
		}
		return NegInf()
	}
	if b.kind == boundPosInf || o.kind == boundPosInf {
		return PosInf()
	}
	out := Bound{kind: boundFinite}
	out.off.Add(&b.off, &o.off)
	switch {
	case b.hasSym && !o.hasSym:
		out.hasSym, out.sym, out.coeff = true, b.sym, b.coeff
	case o.hasSym && !b.hasSym:
		out.hasSym, out.sym, out.coeff = true, o.sym, o.coeff
	case b.hasSym && o.hasSym && b.sym == o.sym:
		out.coeff = b.coeff + o.coeff
		out.hasSym = out.coeff != 0
		out.sym = b.sym
	}
	return out
}

// Neg returns -b.
func (b Bound) Neg() Bound {
	switch b.kind {
	case boundNegInf:
		return PosInf()
	case boundPosInf:
		return NegInf()
	default:
		out := Bound{kind: boundFinite, hasSym: b.hasSym, sym: b.sym, coeff: -b.coeff}
		out.off.Neg(&b.off)
		return out
	}
}

// Sub returns b - o.
func (b Bound) Sub(o Bound) Bound { return b.Add(o.Neg()) }

// MulConst returns n*b for a plain integer n, used by interval
// multiplication when one operand is a singleton constant.
func (b Bound) MulConst(n int64) Bound {
	switch b.kind {
	case boundNegInf:
		if n > 0 {
			return NegInf()
		} else if n < 0 {
			return PosInf()
		}
		return BoundOfInt(0)
	case boundPosInf:
		if n > 0 {
			return PosInf()
		} else if n < 0 {
			return NegInf()
		}
		return BoundOfInt(0)
	default:
		out := Bound{kind: boundFinite, hasSym: b.hasSym, sym: b.sym, coeff: b.coeff * n}
		out.off.Mul(&b.off, big.NewInt(n))
		return out
	}
}

// Subst replaces any symbol mentioned by b per m, collapsing to a
// plain constant shift when the symbol has a binding and leaving b
// unchanged (still symbolic) otherwise - matching spec §4.1
// substitute, which only rewrites the symbols the caller knows about.
func (b Bound) Subst(m SubstMap) Bound {
	if !b.IsSymbolic() {
		return b
	}
	repl, ok := m.Lookup(b.sym)
	if !ok {
		return b
	}
	return repl.MulConst(b.coeff).Add(BoundOfBigInt(&b.off))
}

func (b Bound) String() string {
	switch b.kind {
	case boundNegInf:
		return "-oo"
	case boundPosInf:
		return "+oo"
	default:
		if !b.hasSym {
			return b.off.String()
		}
		if b.off.Sign() == 0 {
			return fmt.Sprintf("%d*%s", b.coeff, b.sym)
		}
		return fmt.Sprintf("%d*%s%+d", b.coeff, b.sym, &b.off)
	}
}
