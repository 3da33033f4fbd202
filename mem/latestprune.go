// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"fmt"

	"github.com/go-interpreter/absint/loc"
)

// pruneKind distinguishes LatestPrune's five shapes (spec §3, §4.4).
type pruneKind uint8

const (
	pruneLatest pruneKind = iota
	pruneTrueBranch
	pruneFalseBranch
	pruneV
	pruneTop
)

// LatestPrune tracks how the most recent branch condition relates to
// a named boolean program variable (spec §3, §4.4): a tagged variant,
// not an inheritance hierarchy, per spec §9.
type LatestPrune struct {
	kind   pruneKind
	x      loc.Ident
	hasX   bool
	p      PrunePairs // Latest, TrueBranch, FalseBranch
	pTrue  PrunePairs // V
	pFalse PrunePairs // V
}

// TopLatestPrune is the top element: no information.
func TopLatestPrune() LatestPrune { return LatestPrune{kind: pruneTop} }

// Latest records a pruning that has not yet been attached to a named
// boolean variable.
func Latest(p PrunePairs) LatestPrune { return LatestPrune{kind: pruneLatest, p: p} }

// TrueBranchOf records that after pruning p, x was assigned 1.
func TrueBranchOf(x loc.Ident, p PrunePairs) LatestPrune {
	return LatestPrune{kind: pruneTrueBranch, x: x, hasX: true, p: p}
}

// FalseBranchOf records that after pruning p, x was assigned 0.
func FalseBranchOf(x loc.Ident, p PrunePairs) LatestPrune {
	return LatestPrune{kind: pruneFalseBranch, x: x, hasX: true, p: p}
}

// VOf is the joined state of both branches of an if-then-else pruning
// x: x=1 refines by pTrue, x=0 by pFalse.
func VOf(x loc.Ident, pTrue, pFalse PrunePairs) LatestPrune {
	return LatestPrune{kind: pruneV, x: x, hasX: true, pTrue: pTrue, pFalse: pFalse}
}

// BoundVar returns the variable a TrueBranch/FalseBranch/V record is
// attached to, if any.
func (l LatestPrune) BoundVar() (loc.Ident, bool) { return l.x, l.hasX }

// Leq is the partial order spec §4.4 describes: Top above everything,
// same-tag-same-variable pointwise on the attached PrunePairs, and the
// two asymmetric cross-rules TrueBranch/FalseBranch ≤ V. All other
// combinations are incomparable.
func (l LatestPrune) Leq(o LatestPrune) bool {
	if o.kind == pruneTop {
		return true
	}
	if l.kind == pruneTop {
		return false
	}
	switch l.kind {
	case pruneLatest:
		return o.kind == pruneLatest && l.p.Leq(o.p)
	case pruneTrueBranch:
		switch o.kind {
		case pruneTrueBranch:
			return l.x == o.x && l.p.Leq(o.p)
		case pruneV:
			return l.x == o.x && l.p.Leq(o.pTrue)
		default:
			return false
		}
	case pruneFalseBranch:
		switch o.kind {
		case pruneFalseBranch:
			return l.x == o.x && l.p.Leq(o.p)
		case pruneV:
			return l.x == o.x && l.p.Leq(o.pFalse)
		default:
			return false
		}
	case pruneV:
		return o.kind == pruneV && l.x == o.x && l.pTrue.Leq(o.pTrue) && l.pFalse.Leq(o.pFalse)
	default:
		return false
	}
}

// Join implements spec §4.4's join table, falling back to Top for
// every combination not named there. It additionally folds a
// TrueBranch/FalseBranch into an existing V of the same variable
// (joining only the matching side) rather than collapsing straight to
// Top, the natural completion of "TrueBranch ⊔ FalseBranch = V" and
// "V ⊔ V = V" when one side is already a V.
func (l LatestPrune) Join(o LatestPrune) LatestPrune {
	if l.Leq(o) {
		return o
	}
	if o.Leq(l) {
		return l
	}
	switch {
	case l.kind == pruneLatest && o.kind == pruneLatest:
		return Latest(l.p.Join(o.p))
	case l.kind == pruneTrueBranch && o.kind == pruneTrueBranch && l.x == o.x:
		return TrueBranchOf(l.x, l.p.Join(o.p))
	case l.kind == pruneFalseBranch && o.kind == pruneFalseBranch && l.x == o.x:
		return FalseBranchOf(l.x, l.p.Join(o.p))
	case l.kind == pruneTrueBranch && o.kind == pruneFalseBranch && l.x == o.x:
		return VOf(l.x, l.p, o.p)
	case l.kind == pruneFalseBranch && o.kind == pruneTrueBranch && l.x == o.x:
		return VOf(l.x, o.p, l.p)
	case l.kind == pruneV && o.kind == pruneV && l.x == o.x:
		return VOf(l.x, l.pTrue.Join(o.pTrue), l.pFalse.Join(o.pFalse))
	case l.kind == pruneTrueBranch && o.kind == pruneV && l.x == o.x:
		return VOf(l.x, l.p.Join(o.pTrue), o.pFalse)
	case l.kind == pruneV && o.kind == pruneTrueBranch && l.x == o.x:
		return VOf(l.x, l.pTrue.Join(o.p), l.pFalse)
	case l.kind == pruneFalseBranch && o.kind == pruneV && l.x == o.x:
		return VOf(l.x, o.pTrue, l.p.Join(o.pFalse))
	case l.kind == pruneV && o.kind == pruneFalseBranch && l.x == o.x:
		return VOf(l.x, l.pTrue, l.pFalse.Join(o.p))
	default:
		return TopLatestPrune()
	}
}

// Widen delegates to Join: the lattice has finite height (spec §4.4).
func (l LatestPrune) Widen(o LatestPrune, _ int) LatestPrune { return l.Join(o) }

func (l LatestPrune) String() string {
	switch l.kind {
	case pruneTop:
		return "top"
	case pruneLatest:
		return fmt.Sprintf("latest(%s)", l.p)
	case pruneTrueBranch:
		return fmt.Sprintf("true_branch(%s, %s)", l.x, l.p)
	case pruneFalseBranch:
		return fmt.Sprintf("false_branch(%s, %s)", l.x, l.p)
	case pruneV:
		return fmt.Sprintf("v(%s, %s, %s)", l.x, l.pTrue, l.pFalse)
	default:
		return "?"
	}
}
