// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"

	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/val"
)

func prunePairsWith(l loc.Loc, n int64) PrunePairs {
	return TopPrunePairs().Set(l, val.OfInt(n))
}

func TestLatestPruneLatticeLaws(t *testing.T) {
	x := loc.NewIdent("x")
	p := prunePairsWith(loc.OfVar("x"), 5)

	lp := TrueBranchOf(x, p)
	if !lp.Leq(TopLatestPrune()) {
		t.Errorf("everything should be leq Top")
	}
	if !lp.Leq(lp) {
		t.Errorf("leq should be reflexive")
	}
	j := lp.Join(lp)
	if !j.Leq(lp) || !lp.Leq(j) {
		t.Errorf("join of x with itself should equal x")
	}
}

func TestJoinTrueFalseBranchMakesV(t *testing.T) {
	x := loc.NewIdent("x")
	p := prunePairsWith(loc.OfVar("x"), 5)
	q := prunePairsWith(loc.OfVar("x"), 6)

	got := TrueBranchOf(x, p).Join(FalseBranchOf(x, q))
	want := VOf(x, p, q)
	if !got.Leq(want) || !want.Leq(got) {
		t.Errorf("join(TrueBranch(x,p), FalseBranch(x,q)) = %v, want %v", got, want)
	}
}

func TestJoinTrueBranchDifferentVariablesIsTop(t *testing.T) {
	x, y := loc.NewIdent("x"), loc.NewIdent("y")
	p := prunePairsWith(loc.OfVar("x"), 5)
	q := prunePairsWith(loc.OfVar("y"), 6)

	got := TrueBranchOf(x, p).Join(TrueBranchOf(y, q))
	if !got.Leq(TopLatestPrune()) || !TopLatestPrune().Leq(got) {
		t.Errorf("join of TrueBranch on different variables should be Top, got %v", got)
	}
}

func TestTrueBranchLeqVIffPairsLeq(t *testing.T) {
	x := loc.NewIdent("x")
	p := prunePairsWith(loc.OfVar("x"), 5)
	tight := prunePairsWith(loc.OfVar("x"), 5)
	loose := TopPrunePairs()

	v := VOf(x, tight, loose)
	if !TrueBranchOf(x, p).Leq(v) {
		t.Errorf("TrueBranch(x,p) should be leq V(x,p,_) when p leq the V's true side")
	}

	incomparable := prunePairsWith(loc.OfVar("x"), 7)
	if TrueBranchOf(x, incomparable).Leq(VOf(x, p, loose)) {
		t.Errorf("TrueBranch(x,p') should not be leq V(x,p,_) when p' disagrees with p at a shared key")
	}
}
