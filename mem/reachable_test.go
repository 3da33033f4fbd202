// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"

	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/trace"
	"github.com/go-interpreter/absint/val"
)

func TestAddStackThenFind(t *testing.T) {
	m := InitReachableMemory()
	l := loc.OfVar("x")
	v := val.OfInt(5)
	m = m.AddStack(l, v)

	got := m.Find(l)
	if !got.Leq(v) || !v.Leq(got) {
		t.Errorf("Find(l) after AddStack(l,v) = %v, want %v", got, v)
	}
	if !m.IsStackLoc(l) {
		t.Errorf("l should be a stack location after AddStack")
	}
}

func TestAddHeapMaterializesRelationalSymbols(t *testing.T) {
	m := InitReachableMemory()
	l := loc.OfVar("g")
	v := val.OfInt(5)
	m = m.AddHeap(l, v)

	got, ok := m.FindOpt(l)
	if !ok {
		t.Fatalf("AddHeap should bind l in mem_pure")
	}
	if !got.Itv().Leq(v.Itv()) || !v.Itv().Leq(got.Itv()) {
		t.Errorf("AddHeap should preserve itv")
	}
	if got.Sym().IsBot() {
		t.Errorf("AddHeap should materialize a non-bottom value symbol for a non-empty interval")
	}
}

func TestFindHeapDefaultsToTopOnMiss(t *testing.T) {
	m := InitReachableMemory()
	l := loc.OfVar("unseen")
	got := m.Find(l)
	if !got.Itv().Leq(itv.Top()) || !itv.Top().Leq(got.Itv()) {
		t.Errorf("Find on an unmentioned non-stack location should have itv = top")
	}
}

func TestFindSetIsJoinOverLocations(t *testing.T) {
	m := InitReachableMemory()
	a, b := loc.OfVar("a"), loc.OfVar("b")
	m = m.AddStack(a, val.OfInt(1)).AddStack(b, val.OfInt(2))

	got := m.FindSet(loc.Singleton(a).Union(loc.Singleton(b)))
	want := val.OfInt(1).Join(val.OfInt(2))
	if !got.Leq(want) || !want.Leq(got) {
		t.Errorf("FindSet({a,b}) = %v, want %v", got, want)
	}
}

// TestBranchMergeScenario follows a boolean flag through an
// if/else that assigns it 1 on the true side and 0 on the false
// side, each guarded by a distinct refinement of x, then checks
// that joining the branches and resolving a temporary known to
// alias x recovers the true-branch refinement.
func TestBranchMergeScenario(t *testing.T) {
	xid := loc.NewIdent("x")
	rid := loc.NewIdent("r")
	x := loc.OfIdent(xid)

	m0 := InitReachableMemory().AddStack(x, val.TopInterval())
	m0.alias.Map = m0.alias.Map.Load(rid, Simple(x))

	pTrue := TopPrunePairs().Set(x, val.OfInt(5))
	mTrue := m0.UpdateMem(loc.Singleton(x), val.OfInt(1))
	mTrue = mTrue.SetPrunePairs(pTrue)
	mTrue = mTrue.UpdateLatestPrune(loc.Var(xid), loc.Const(1))

	pFalse := TopPrunePairs().Set(x, val.OfInt(6))
	mFalse := m0.UpdateMem(loc.Singleton(x), val.OfInt(0))
	mFalse = mFalse.SetPrunePairs(pFalse)
	mFalse = mFalse.UpdateLatestPrune(loc.Var(xid), loc.Const(0))

	joined := mTrue.Join(mFalse)
	want := VOf(xid, pTrue, pFalse)
	if !joined.latestPrune.Leq(want) || !want.Leq(joined.latestPrune) {
		t.Fatalf("joined latest_prune = %v, want %v", joined.latestPrune, want)
	}

	refined := joined.ApplyLatestPrune(CondVar(rid))
	got := refined.Find(x)
	if !got.Leq(val.OfInt(5)) || !val.OfInt(5).Leq(got) {
		t.Errorf("after apply_latest_prune, x should be bound to of_int(5), got %v", got)
	}
}

// TestUnknownCallScenario checks that binding an unknown call's
// result pollutes both the call's own temporary and the
// distinguished Unknown location, each carrying the call's
// provenance.
func TestUnknownCallScenario(t *testing.T) {
	id := loc.NewIdent("t0")
	here := trace.Location("memcpy.c:42")

	m := InitReachableMemory().AddUnknownFrom(id, "memcpy", true, here)

	got := m.Find(loc.OfIdent(id))
	if !got.Itv().Leq(itv.Top()) || !itv.Top().Leq(got.Itv()) {
		t.Errorf("unknown call result should carry top itv, got %v", got.Itv())
	}
	if got.Traces().IsEmpty() {
		t.Errorf("unknown call result should carry a non-empty trace")
	}

	unk := m.Find(loc.Unknown)
	if !unk.Itv().Leq(itv.Top()) || !itv.Top().Leq(unk.Itv()) {
		t.Errorf("Unknown location should carry top itv after an unknown call, got %v", unk.Itv())
	}
	if unk.Traces().IsEmpty() {
		t.Errorf("Unknown location should carry the unknown call's trace")
	}
}

// TestReachabilityClosureScenario is spec scenario 6: a chain of
// powloc-only bindings a -> {b}, b -> {c}, c -> bot should close to
// exactly {a, b, c} from the root {a}.
func TestReachabilityClosureScenario(t *testing.T) {
	a, b, c := loc.OfVar("a"), loc.OfVar("b"), loc.OfVar("c")

	m := InitReachableMemory()
	m = m.AddHeap(a, val.OfPowLoc(loc.Singleton(b), trace.Empty()))
	m = m.AddHeap(b, val.OfPowLoc(loc.Singleton(c), trace.Empty()))
	m.memPure = m.memPure.Set(c, val.Bot())

	got := m.GetReachableLocsFrom([]loc.Loc{a})
	want := loc.Singleton(a).Union(loc.Singleton(b)).Union(loc.Singleton(c))
	if !got.Leq(want) || !want.Leq(got) {
		t.Errorf("get_reachable_locs_from({a}) = %v, want %v", got, want)
	}
}
