// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// powLocEqual lets cmp.Diff compare PowLoc values structurally: top
// first, then the underlying mapset.Set via its own Equal, since the
// set's concrete type has no exported fields cmp could recurse into.
func powLocEqual() cmp.Option {
	return cmp.Comparer(func(a, b PowLoc) bool {
		if a.top != b.top {
			return false
		}
		if a.top {
			return true
		}
		if a.locs == nil || b.locs == nil {
			return a.locs == nil && b.locs == nil
		}
		return a.locs.Equal(b.locs)
	})
}

// TestFieldEqualityIsStructural guards against Loc holding a pointer
// to its base: two Field locations built from separately constructed
// but equal bases must compare equal, since Loc is used directly as a
// map key throughout the mem package.
func TestFieldEqualityIsStructural(t *testing.T) {
	a := Field(OfVar("x"), "len")
	b := Field(OfVar("x"), "len")
	if a != b {
		t.Fatalf("Field(OfVar(x), len) != Field(OfVar(x), len): %v vs %v", a, b)
	}

	base1 := OfAllocsite(NewAllocsite("site1"))
	base2 := OfAllocsite(NewAllocsite("site1"))
	if Field(base1, "f") != Field(base2, "f") {
		t.Errorf("fields built off equal-but-distinct bases should compare equal")
	}
}

func TestFieldBaseRoundTrips(t *testing.T) {
	base := OfVar("x")
	f := Field(base, "len")
	got, ok := f.FieldBase()
	if !ok || got != base.String() {
		t.Errorf("FieldBase() = (%q, %v), want (%q, true)", got, ok, base.String())
	}
	if _, ok := base.FieldBase(); ok {
		t.Errorf("a non-field Loc should not report a field base")
	}
}

func TestLocLessIsATotalOrder(t *testing.T) {
	locs := []Loc{OfVar("b"), OfVar("a"), OfIdent(NewIdent("t")), Unknown, OfAllocsite(NewAllocsite("s"))}
	for i := range locs {
		if locs[i].Less(locs[i]) {
			t.Errorf("Less should be irreflexive: %v", locs[i])
		}
		for j := range locs {
			if i == j {
				continue
			}
			if locs[i].Less(locs[j]) && locs[j].Less(locs[i]) {
				t.Errorf("Less should be antisymmetric between %v and %v", locs[i], locs[j])
			}
		}
	}
}

func TestPowLocLatticeLaws(t *testing.T) {
	a, b := OfVar("a"), OfVar("b")
	p := Singleton(a)
	q := Singleton(a).Add(b)

	if !p.Leq(q) {
		t.Errorf("{a} should be leq {a,b}")
	}
	if !PowLocBot().Leq(p) {
		t.Errorf("bottom should be leq everything")
	}
	if !p.Leq(PowLocUnknown()) {
		t.Errorf("everything should be leq Unknown")
	}
	if j := p.Union(q); !j.Leq(q) || !q.Leq(j) {
		t.Errorf("Union should be idempotent when one side already dominates: got %v, want %v", j, q)
	}
	if !PowLocUnknown().Union(p).IsUnknown() {
		t.Errorf("Union with Unknown should stay Unknown")
	}
}

func TestPowLocUnionIsCommutativeAndIdempotent(t *testing.T) {
	p := Singleton(OfVar("a")).Add(OfVar("b"))
	q := Singleton(OfVar("b")).Add(OfVar("c"))
	opt := powLocEqual()

	if diff := cmp.Diff(p.Union(q), q.Union(p), opt); diff != "" {
		t.Errorf("Union should be commutative (-p∪q +q∪p):\n%s", diff)
	}
	if diff := cmp.Diff(p.Union(p), p, opt); diff != "" {
		t.Errorf("Union should be idempotent (-p∪p +p):\n%s", diff)
	}
}

func TestPowLocFoldOrderIsSorted(t *testing.T) {
	p := Singleton(OfVar("z")).Add(OfVar("a")).Add(OfVar("m"))
	var seen []string
	p.Fold(func(l Loc) { seen = append(seen, l.String()) })
	want := []string{"a", "m", "z"}
	for i, w := range want {
		if seen[i] != w {
			t.Fatalf("Fold order = %v, want %v", seen, want)
		}
	}
}
