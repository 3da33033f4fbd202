// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

import "math/big"

// Plus returns v + o, pointwise over the bounds (spec §4.1: every
// binary arithmetic op produces a value whose only non-bottom
// component is the computed interval).
func (v Itv) Plus(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	return Itv{lb: v.lb.Add(o.lb), ub: v.ub.Add(o.ub)}
}

// Minus returns v - o.
func (v Itv) Minus(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	return Itv{lb: v.lb.Sub(o.ub), ub: v.ub.Sub(o.lb)}
}

// Neg returns -v.
func (v Itv) Neg() Itv {
	if v.bottom {
		return Bot()
	}
	return Itv{lb: v.ub.Neg(), ub: v.lb.Neg()}
}

// Mult returns v * o. Precise when either side is a non-symbolic
// singleton constant; otherwise collapses to Top, since this domain
// does not track products of two unknown ranges symbolically.
func (v Itv) Mult(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	if n, ok := singletonConst(v); ok {
		return scaleBy(o, n)
	}
	if n, ok := singletonConst(o); ok {
		return scaleBy(v, n)
	}
	lc1, lok1 := v.lb.AsConst()
	uc1, uok1 := v.ub.AsConst()
	lc2, lok2 := o.lb.AsConst()
	uc2, uok2 := o.ub.AsConst()
	if lok1 && uok1 && lok2 && uok2 {
		candidates := []*big.Int{
			new(big.Int).Mul(lc1, lc2),
			new(big.Int).Mul(lc1, uc2),
			new(big.Int).Mul(uc1, lc2),
			new(big.Int).Mul(uc1, uc2),
		}
		lo, hi := candidates[0], candidates[0]
		for _, c := range candidates[1:] {
			if c.Cmp(lo) < 0 {
				lo = c
			}
			if c.Cmp(hi) > 0 {
				hi = c
			}
		}
		return Itv{lb: BoundOfBigInt(lo), ub: BoundOfBigInt(hi)}
	}
	return Top()
}

func singletonConst(v Itv) (int64, bool) {
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	if lok && uok && lc.Cmp(uc) == 0 && lc.IsInt64() {
		return lc.Int64(), true
	}
	return 0, false
}

func scaleBy(v Itv, n int64) Itv {
	a, b := v.lb.MulConst(n), v.ub.MulConst(n)
	if n < 0 {
		a, b = b, a
	}
	return Itv{lb: a, ub: b}
}

// Div returns v / o (truncating integer division). Precise when o is
// a non-zero constant singleton; otherwise collapses to Top, since
// division by a range may divide by zero or invert monotonicity.
func (v Itv) Div(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	n, ok := singletonConst(o)
	if !ok || n == 0 {
		return Top()
	}
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	if !lok || !uok {
		return Top()
	}
	a := new(big.Int).Quo(lc, big.NewInt(n))
	b := new(big.Int).Quo(uc, big.NewInt(n))
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return Itv{lb: BoundOfBigInt(a), ub: BoundOfBigInt(b)}
}

// ModSem returns v mod o in C/Go truncating-remainder semantics, when
// o is a non-zero constant singleton; Top otherwise. The result is
// always within (-|o|, |o|).
func (v Itv) ModSem(o Itv) Itv {
	n, ok := singletonConst(o)
	if v.bottom || o.bottom || !ok || n == 0 {
		if v.bottom || o.bottom {
			return Bot()
		}
		return Top()
	}
	if n < 0 {
		n = -n
	}
	return Itv{lb: BoundOfInt(-(n - 1)), ub: BoundOfInt(n - 1)}
}

// ShiftLT returns v << o, when o is a non-negative constant singleton.
func (v Itv) ShiftLT(o Itv) Itv {
	n, ok := singletonConst(o)
	if v.bottom || o.bottom {
		return Bot()
	}
	if !ok || n < 0 || n > 62 {
		return Top()
	}
	return v.Mult(OfInt(int64(1) << uint(n)))
}

// ShiftRT returns v >> o (arithmetic shift), when o is a non-negative
// constant singleton.
func (v Itv) ShiftRT(o Itv) Itv {
	n, ok := singletonConst(o)
	if v.bottom || o.bottom {
		return Bot()
	}
	if !ok || n < 0 {
		return Top()
	}
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	if !lok || !uok {
		return Top()
	}
	a := new(big.Int).Rsh(lc, uint(n))
	b := new(big.Int).Rsh(uc, uint(n))
	return Itv{lb: BoundOfBigInt(a), ub: BoundOfBigInt(b)}
}

// BAndSem returns an over-approximation of v & o: precise {0,1} mask
// behavior when both sides are within [0,1] (boolean-flag idiom);
// otherwise the non-negative hull of the smaller range, since bitwise
// and never exceeds the smaller non-negative operand.
func (v Itv) BAndSem(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	if isBooleanRange(v) && isBooleanRange(o) {
		return Itv{lb: BoundOfInt(0), ub: BoundOfInt(1)}
	}
	vlc, vlok := v.lb.AsConst()
	olc, olok := o.lb.AsConst()
	if vlok && olok && vlc.Sign() >= 0 && olc.Sign() >= 0 {
		return Itv{lb: BoundOfInt(0), ub: boundMinDecidable(v.ub, o.ub)}
	}
	return Top()
}

func isBooleanRange(v Itv) bool {
	lc, lok := v.lb.AsConst()
	uc, uok := v.ub.AsConst()
	return lok && uok && lc.Sign() >= 0 && uc.Cmp(big.NewInt(1)) <= 0
}

// LNot returns the logical negation of v treated as a boolean
// interval: {0}->{1}, {1}->{0}, anything else (including Top) -> Top.
func (v Itv) LNot() Itv {
	if v.bottom {
		return Bot()
	}
	switch {
	case v.EqConst(0):
		return OfInt(1)
	case v.EqConst(1):
		return OfInt(0)
	default:
		return OfBool(TopBool)
	}
}

// compareBoolean renders the result of applying cmp to every pair of
// concrete values the two (possibly unbounded) intervals might take,
// as a boolean-shaped interval. It is intentionally conservative: if
// the decision isn't provable from the finite parts of the bounds
// alone, the answer is TopBool.
func compareBoolean(v, o Itv, cmp func(a, b *big.Int) bool) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	vl, vlok := v.lb.AsConst()
	vu, vuok := v.ub.AsConst()
	ol, olok := o.lb.AsConst()
	ou, ouok := o.ub.AsConst()
	if vlok && vuok && olok && ouok {
		allTrue, allFalse := true, true
		corners := [][2]*big.Int{{vl, ol}, {vl, ou}, {vu, ol}, {vu, ou}}
		for _, c := range corners {
			if cmp(c[0], c[1]) {
				allFalse = false
			} else {
				allTrue = false
			}
		}
		switch {
		case allTrue:
			return OfBool(True)
		case allFalse:
			return OfBool(False)
		}
	}
	return OfBool(TopBool)
}

// Lt, Le, Gt, Ge, Eq, Ne are the six numeric comparisons, each
// returning a boolean-shaped interval per spec §4.1.
func (v Itv) Lt(o Itv) Itv { return compareBoolean(v, o, func(a, b *big.Int) bool { return a.Cmp(b) < 0 }) }
func (v Itv) Le(o Itv) Itv { return compareBoolean(v, o, func(a, b *big.Int) bool { return a.Cmp(b) <= 0 }) }
func (v Itv) Gt(o Itv) Itv { return compareBoolean(v, o, func(a, b *big.Int) bool { return a.Cmp(b) > 0 }) }
func (v Itv) Ge(o Itv) Itv { return compareBoolean(v, o, func(a, b *big.Int) bool { return a.Cmp(b) >= 0 }) }

func (v Itv) Eq(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	if n1, ok1 := singletonConst(v); ok1 {
		if n2, ok2 := singletonConst(o); ok2 {
			return OfBool(boolOf(n1 == n2))
		}
	}
	if !v.Join(o).IsEmpty() && v.Leq(o) && o.Leq(v) {
		return OfBool(True)
	}
	return OfBool(TopBool)
}

func (v Itv) Ne(o Itv) Itv { return v.Eq(o).LNot() }

func boolOf(b bool) Bool3 {
	if b {
		return True
	}
	return False
}

// LogicalAnd and LogicalOr treat each operand as a boolean (zero vs.
// non-zero) and compute the three-valued result.
func (v Itv) LogicalAnd(o Itv) Itv {
	if v.EqConst(0) || o.EqConst(0) {
		return OfInt(0)
	}
	if isNonZeroConst(v) && isNonZeroConst(o) {
		return OfInt(1)
	}
	return OfBool(TopBool)
}

func (v Itv) LogicalOr(o Itv) Itv {
	if isNonZeroConst(v) || isNonZeroConst(o) {
		return OfInt(1)
	}
	if v.EqConst(0) && o.EqConst(0) {
		return OfInt(0)
	}
	return OfBool(TopBool)
}

func isNonZeroConst(v Itv) bool {
	n, ok := singletonConst(v)
	return ok && n != 0
}
