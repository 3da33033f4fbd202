// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

// CompOp names a comparison operator for PruneComp, mirroring the
// handful of branch-condition shapes a CFG front-end emits.
type CompOp uint8

const (
	OpLt CompOp = iota
	OpLe
	OpGt
	OpGe
)

// PruneEqZero narrows v to the part of its range equal to zero.
func (v Itv) PruneEqZero() Itv {
	if v.bottom {
		return v
	}
	return v.meetConst(0, 0)
}

// PruneNeZero narrows v by removing zero from its range, when v is
// exactly {0} (collapsing to Bot) or leaves v unchanged otherwise -
// removing an interior point from a range loses convexity, so any
// wider interval containing zero is left as-is.
func (v Itv) PruneNeZero() Itv {
	if v.bottom {
		return v
	}
	if v.EqConst(0) {
		return Bot()
	}
	return v
}

// PruneComp narrows v using the fact that "v `op` o" holds.
func (v Itv) PruneComp(op CompOp, o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	switch op {
	case OpLt:
		return v.pruneUpperStrict(o.ub)
	case OpLe:
		return v.pruneUpper(o.ub)
	case OpGt:
		return v.pruneLowerStrict(o.lb)
	case OpGe:
		return v.pruneLower(o.lb)
	default:
		return v
	}
}

// PruneEq narrows v using the fact that "v = o" holds: the meet of
// the two ranges.
func (v Itv) PruneEq(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	return Itv{lb: boundMaxDecidable(v.lb, o.lb), ub: boundMinDecidable(v.ub, o.ub)}.Normalize()
}

// PruneNe narrows v using the fact that "v != o" holds. Precise only
// when o is the singleton equal to one of v's endpoints; otherwise v
// is left unchanged (removing an interior point breaks convexity).
func (v Itv) PruneNe(o Itv) Itv {
	if v.bottom || o.bottom {
		return Bot()
	}
	n, ok := singletonConst(o)
	if !ok {
		return v
	}
	if lc, lok := v.lb.AsConst(); lok && lc.Int64() == n {
		return v.pruneLowerStrict(v.lb)
	}
	if uc, uok := v.ub.AsConst(); uok && uc.Int64() == n {
		return v.pruneUpperStrict(v.ub)
	}
	return v
}

func (v Itv) meetConst(lo, hi int64) Itv {
	return Itv{lb: boundMaxDecidable(v.lb, BoundOfInt(lo)), ub: boundMinDecidable(v.ub, BoundOfInt(hi))}.Normalize()
}

func (v Itv) pruneUpper(ub Bound) Itv {
	return Itv{lb: v.lb, ub: boundMinDecidable(v.ub, ub)}.Normalize()
}

func (v Itv) pruneUpperStrict(ub Bound) Itv {
	if c, ok := ub.AsConst(); ok {
		return v.pruneUpper(BoundOfBigInt(decrement(c)))
	}
	return v.pruneUpper(ub)
}

func (v Itv) pruneLower(lb Bound) Itv {
	return Itv{lb: boundMaxDecidable(v.lb, lb), ub: v.ub}.Normalize()
}

func (v Itv) pruneLowerStrict(lb Bound) Itv {
	if c, ok := lb.AsConst(); ok {
		return v.pruneLower(BoundOfBigInt(increment(c)))
	}
	return v.pruneLower(lb)
}

// boundMinDecidable/boundMaxDecidable behave like boundMin/boundMax
// but are named separately at the pruning call sites to make clear
// that an incomparable (symbolic, mismatched) pair conservatively
// keeps the original side rather than forcing an infinity - pruning
// must never discard information the operand already had.
func boundMinDecidable(a, b Bound) Bound {
	if a.Leq(b) {
		return a
	}
	if b.Leq(a) {
		return b
	}
	return a
}

func boundMaxDecidable(a, b Bound) Bound {
	if a.Leq(b) {
		return b
	}
	if b.Leq(a) {
		return a
	}
	return a
}
