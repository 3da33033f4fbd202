// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package itv implements Itv, the numeric-interval lattice spec §6
// names as an external collaborator. Every bound may carry a single
// symbolic term (see Bound), which is as much symbolic-bounds support
// as AbstractValue.make_symbolic / substitute (spec §4.1) require.
package itv

import (
	"fmt"
	"math/big"
)

// Itv is a (possibly unbounded, possibly empty) interval [lb, ub].
// The zero value is NOT a valid Itv (it is neither Bot nor Top);
// always build one via Bot, Top, OfInt, or one of the other
// constructors below.
type Itv struct {
	bottom bool
	lb, ub Bound
}

// Bot is the bottom element: the empty interval.
func Bot() Itv { return Itv{bottom: true} }

// Top is [-oo, +oo].
func Top() Itv { return Itv{lb: NegInf(), ub: PosInf()} }

// Nat is [0, +oo), the "natural number" interval used as the default
// array stride per spec §4.1 (of_array_alloc).
func Nat() Itv { return Itv{lb: BoundOfInt(0), ub: PosInf()} }

// Pos is (0, +oo) represented as [1, +oo).
func Pos() Itv { return Itv{lb: BoundOfInt(1), ub: PosInf()} }

// Zero is the singleton interval [0,0].
func Zero() Itv { return OfInt(0) }

// One is the singleton interval [1,1].
func One() Itv { return OfInt(1) }

// M1_255 is [-1, 255], the interval wagon-era C-string readers use to
// mean "a byte value, or EOF sentinel -1".
func M1_255() Itv { return Itv{lb: BoundOfInt(-1), ub: BoundOfInt(255)} }

// OfInt builds the singleton interval [n,n].
func OfInt(n int64) Itv { return Itv{lb: BoundOfInt(n), ub: BoundOfInt(n)} }

// OfBigInt builds the singleton interval [n,n] from an arbitrary
// precision integer, per spec §4.1 of_big_int.
func OfBigInt(n *big.Int) Itv { return Itv{lb: BoundOfBigInt(n), ub: BoundOfBigInt(n)} }

// Bool3 is the three-valued boolean OfBool/comparisons return:
// definitely false, definitely true, or unknown (top).
type Bool3 uint8

const (
	False Bool3 = iota
	True
	TopBool
)

// OfBool renders b as a boolean-shaped interval: {0}, {1}, or [0,1].
func OfBool(b Bool3) Itv {
	switch b {
	case False:
		return OfInt(0)
	case True:
		return OfInt(1)
	default:
		return Itv{lb: BoundOfInt(0), ub: BoundOfInt(1)}
	}
}

// IsEmpty reports whether v is bottom.
func (v Itv) IsEmpty() bool {
	if v.bottom {
		return true
	}
	c1, ok1 := v.lb.AsConst()
	c2, ok2 := v.ub.AsConst()
	return ok1 && ok2 && c1.Cmp(c2) > 0
}

// EqConst reports whether v is exactly the singleton {n}.
func (v Itv) EqConst(n int64) bool {
	if v.IsEmpty() {
		return false
	}
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	return lok && uok && lc.Cmp(big.NewInt(n)) == 0 && uc.Cmp(big.NewInt(n)) == 0
}

// Lower and Upper expose the two bounds, mainly for tests and pretty
// printing.
func (v Itv) Lower() Bound { return v.lb }
func (v Itv) Upper() Bound { return v.ub }

// Normalize collapses an inverted [lb>ub] range to Bot. All
// constructors above already produce normalized values; Normalize
// exists for the substitute pipeline (spec §4.1), which may produce
// an inverted range after substituting a symbol with a constant.
func (v Itv) Normalize() Itv {
	if v.bottom {
		return v
	}
	if v.IsEmpty() {
		return Bot()
	}
	return v
}

// Leq is the interval partial order: bottom below everything, and
// otherwise pointwise lb/ub containment, per Bound.Leq's partiality
// rules for mismatched symbols.
func (v Itv) Leq(o Itv) bool {
	if v.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	return o.lb.Leq(v.lb) && v.ub.Leq(o.ub)
}

// Join is the pointwise interval hull.
func (v Itv) Join(o Itv) Itv {
	if v.bottom {
		return o
	}
	if o.bottom {
		return v
	}
	return Itv{lb: boundMin(v.lb, o.lb), ub: boundMax(v.ub, o.ub)}
}

// Widen applies a threshold-free widening: once either bound has
// moved away from the previous iterate, jump straight to infinity on
// that side. numIters is accepted for interface-compatibility with
// the generic widen(prev, next, num_iters) signature (spec §6) but
// this lattice does not delay widening by iteration count.
func (v Itv) Widen(next Itv, numIters int) Itv {
	_ = numIters
	if v.bottom {
		return next
	}
	if next.bottom {
		return v
	}
	lb := v.lb
	if !v.lb.Leq(next.lb) {
		lb = NegInf()
	}
	ub := v.ub
	if !next.ub.Leq(v.ub) {
		ub = PosInf()
	}
	return Itv{lb: lb, ub: ub}
}

func (v Itv) String() string {
	if v.bottom {
		return "bot"
	}
	return fmt.Sprintf("[%s, %s]", v.lb, v.ub)
}

// GetSymbols returns every symbol mentioned in either bound.
func (v Itv) GetSymbols() SymbolSet {
	if v.bottom {
		return EmptySymbolSet()
	}
	return v.lb.Symbols().Union(v.ub.Symbols())
}

// MakeSym builds a fresh symbolic interval [sym, sym] for path,
// minted from symtab. Unsigned additionally clamps the lower bound to
// zero, matching unsigned integer parameters.
func MakeSym(path SymbolPath, symtab *SymbolTable, unsigned bool) Itv {
	sym := symtab.Fresh(path)
	lb := BoundOfSymbol(1, sym, 0)
	ub := BoundOfSymbol(1, sym, 0)
	if unsigned {
		lb = BoundOfInt(0)
	}
	return Itv{lb: lb, ub: ub}
}

// Subst replaces every symbol in v per m.
func (v Itv) Subst(m SubstMap) Itv {
	if v.bottom {
		return v
	}
	return Itv{lb: v.lb.Subst(m), ub: v.ub.Subst(m)}.Normalize()
}

// Range returns the (non-negative) width of v, ub - lb + 1, used by
// PureMemory.Range to bound loop trip counts. Symbolic or unbounded
// widths report ok=false (the caller substitutes Polynomial.Top).
func (v Itv) Range() (width *big.Int, ok bool) {
	if v.bottom {
		return big.NewInt(0), true
	}
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	if !lok || !uok {
		return nil, false
	}
	w := new(big.Int).Sub(uc, lc)
	w.Add(w, big.NewInt(1))
	if w.Sign() < 0 {
		w.SetInt64(0)
	}
	return w, true
}

// GetIteratorItv narrows v to its non-negative part, [max(lb,0), ub],
// modeling a for-loop counter that only ever takes non-negative
// values on entry to the loop body.
func (v Itv) GetIteratorItv() Itv {
	if v.bottom {
		return v
	}
	return Itv{lb: boundMax(v.lb, BoundOfInt(0)), ub: v.ub}.Normalize()
}
