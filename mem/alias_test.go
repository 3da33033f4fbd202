// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"testing"

	"github.com/go-interpreter/absint/loc"
)

func TestAliasMapStoreInvalidatesBinding(t *testing.T) {
	l := loc.OfVar("x")
	id := loc.NewIdent("t0")
	m := EmptyAliasMap().Load(id, Simple(l))
	m = m.Store(l)
	if _, found := m.Find(id); found {
		t.Errorf("Store(l) should drop every binding whose target mentions l")
	}
}

func TestAliasMapStoreLeavesUnrelatedBindings(t *testing.T) {
	l, other := loc.OfVar("x"), loc.OfVar("y")
	id := loc.NewIdent("t0")
	m := EmptyAliasMap().Load(id, Simple(other))
	m = m.Store(l)
	if _, found := m.Find(id); !found {
		t.Errorf("Store(l) should not touch bindings mentioning a different location")
	}
}

func TestAliasTargetJoinPanicsOnUnequalOperands(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("Join of unequal AliasTargets should panic")
		} else if _, ok := r.(PreconditionViolation); !ok {
			t.Errorf("panic value = %T, want PreconditionViolation", r)
		}
	}()
	Simple(loc.OfVar("x")).Join(Simple(loc.OfVar("y")))
}

func TestAliasStoreSimpleSetsReturnAlias(t *testing.T) {
	id := loc.NewIdent("t0")
	target := loc.OfVar("a")
	a := EmptyAlias()
	a.Map = a.Map.Load(id, Simple(target))

	retSlot := loc.OfVar("$ret")
	a = a.StoreSimple(retSlot, true, loc.Var(id))

	got, ok := a.Ret.Get()
	if !ok || !got.IsSimple() || got.Loc() != target {
		t.Errorf("StoreSimple on the return slot should set Ret = Simple(%v), got %v (present=%v)", target, got, ok)
	}
}

func TestRemoveTemp(t *testing.T) {
	id := loc.NewIdent("t0")
	m := EmptyAliasMap().Load(id, Simple(loc.OfVar("x")))
	m = m.RemoveTemp(id)
	if _, found := m.Find(id); found {
		t.Errorf("RemoveTemp should drop the binding")
	}
}
