// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"

	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/relation"
	"github.com/go-interpreter/absint/val"
)

func TestBottomReadsDefaultSafely(t *testing.T) {
	b := Bottom()
	l := loc.OfVar("x")

	if b.IsStackLoc(l) {
		t.Errorf("Bottom should never report a stack location")
	}
	if _, ok := b.FindOpt(l); ok {
		t.Errorf("Bottom.FindOpt should always miss")
	}
	if got := b.Find(l); !got.IsBot() {
		t.Errorf("Bottom.Find = %v, want bottom", got)
	}
	if got := b.GetReachableLocsFrom([]loc.Loc{l}); !got.Leq(loc.PowLocEmpty()) {
		t.Errorf("Bottom.GetReachableLocsFrom should be empty, got %v", got)
	}
	if !b.GetRelation().IsUnsat() {
		t.Errorf("Bottom.GetRelation should be the unsatisfiable store")
	}
}

func TestBottomWritesStayBottom(t *testing.T) {
	b := Bottom()
	l := loc.OfVar("x")

	if got := b.AddStack(l, val.OfInt(1)); !got.IsBottom() {
		t.Errorf("a write to Bottom should stay Bottom")
	}
	if got := b.UpdateMem(loc.Singleton(l), val.OfInt(1)); !got.IsBottom() {
		t.Errorf("UpdateMem on Bottom should stay Bottom")
	}
	if got := b.ForgetLocs([]loc.Loc{l}); !got.IsBottom() {
		t.Errorf("ForgetLocs on Bottom should stay Bottom")
	}
}

func TestInstantiateRelationSkipsBottomCallee(t *testing.T) {
	caller := Init().AddStack(loc.OfVar("x"), val.OfInt(1))
	got := caller.InstantiateRelation(relation.NewSubstMap(), Bottom())
	if !got.Leq(caller) || !caller.Leq(got) {
		t.Errorf("InstantiateRelation with a Bottom callee should leave the caller unchanged")
	}
}

func TestMemoryLatticeLawsAroundBottom(t *testing.T) {
	b := Bottom()
	i := Init()

	if !b.Leq(i) {
		t.Errorf("Bottom should be leq everything")
	}
	if i.Leq(b) {
		t.Errorf("a non-bottom memory should not be leq Bottom")
	}
	if j := b.Join(i); !j.Leq(i) || !i.Leq(j) {
		t.Errorf("Bottom join x should equal x")
	}
	if w := b.Widen(i, 0); !w.Leq(i) || !i.Leq(w) {
		t.Errorf("Bottom widen x should equal x")
	}
	if !i.Leq(i) {
		t.Errorf("leq should be reflexive")
	}
}

func TestDebugStringGatedByWriteHTML(t *testing.T) {
	m := Init().AddStack(loc.OfVar("x"), val.OfInt(1))

	if got := m.DebugString(&config.Configuration{}); got != "" {
		t.Errorf("DebugString should be empty when WriteHTML is off, got %q", got)
	}
	if got := Bottom().DebugString(&config.Configuration{WriteHTML: true}); got != "" {
		t.Errorf("Bottom.DebugString should always be empty, got %q", got)
	}
	if got := m.DebugString(&config.Configuration{WriteHTML: true}); got == "" {
		t.Errorf("DebugString should be non-empty when WriteHTML is on")
	}
}
