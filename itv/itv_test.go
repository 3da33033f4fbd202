// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

import (
	"testing"
)

func TestLatticeLaws(t *testing.T) {
	vals := []Itv{Bot(), Top(), Nat(), OfInt(0), OfInt(5), OfInt(-3), M1_255()}
	for _, x := range vals {
		if !Bot().Leq(x) {
			t.Errorf("bot not leq %v", x)
		}
		if !x.Leq(Top()) {
			t.Errorf("%v not leq top", x)
		}
		if !x.Leq(x) {
			t.Errorf("%v not leq itself", x)
		}
		for _, y := range vals {
			j := x.Join(y)
			if !x.Leq(j) || !y.Leq(j) {
				t.Errorf("join(%v,%v)=%v not an upper bound", x, y, j)
			}
			if w := x.Widen(y, 0); !j.Leq(w) {
				t.Errorf("widen(%v,%v)=%v should be >= join %v", x, y, w, j)
			}
		}
	}
}

func TestJoinCommutative(t *testing.T) {
	a, b := OfInt(1), OfInt(5)
	j1, j2 := a.Join(b), b.Join(a)
	if !j1.Leq(j2) || !j2.Leq(j1) {
		t.Errorf("join not commutative: %v vs %v", j1, j2)
	}
}

func TestArithmeticOnInts(t *testing.T) {
	tcs := []struct {
		name string
		got  Itv
		want Itv
	}{
		{"plus", OfInt(2).Plus(OfInt(3)), OfInt(5)},
		{"minus", OfInt(2).Minus(OfInt(3)), OfInt(-1)},
		{"mult", OfInt(4).Mult(OfInt(3)), OfInt(12)},
		{"div", OfInt(7).Div(OfInt(2)), OfInt(3)},
		{"mod", OfInt(7).ModSem(OfInt(3)), Itv{lb: BoundOfInt(-2), ub: BoundOfInt(2)}},
		{"neg", OfInt(5).Neg(), OfInt(-5)},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.Leq(tc.want) || !tc.want.Leq(tc.got) {
				t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
			}
		})
	}
}

func TestComparisonWithPointerLikeTopCollapsesToBoolTop(t *testing.T) {
	// Regression anchor for the val package's pointer-comparison rule;
	// here we only check the underlying boolean-interval shape.
	top := OfBool(TopBool)
	if !top.Leq(Itv{lb: BoundOfInt(0), ub: BoundOfInt(1)}) {
		t.Errorf("OfBool(Top) should be [0,1], got %v", top)
	}
}

func TestPruneComp(t *testing.T) {
	x := Nat()
	lt10 := x.PruneComp(OpLt, OfInt(10))
	if c, ok := lt10.Upper().AsConst(); !ok || c.Int64() != 9 {
		t.Errorf("PruneComp(Lt, 10) upper = %v, want 9", lt10.Upper())
	}
	ge5 := x.PruneComp(OpGe, OfInt(5))
	if c, ok := ge5.Lower().AsConst(); !ok || c.Int64() != 5 {
		t.Errorf("PruneComp(Ge, 5) lower = %v, want 5", ge5.Lower())
	}
}

func TestPruneEqZero(t *testing.T) {
	v := Itv{lb: BoundOfInt(-5), ub: BoundOfInt(5)}
	got := v.PruneEqZero()
	if !got.EqConst(0) {
		t.Errorf("PruneEqZero(%v) = %v, want {0}", v, got)
	}
}

func TestPruneNeZeroOnSingleton(t *testing.T) {
	if got := OfInt(0).PruneNeZero(); !got.IsEmpty() {
		t.Errorf("PruneNeZero({0}) = %v, want bot", got)
	}
}

func TestRange(t *testing.T) {
	w, ok := Itv{lb: BoundOfInt(2), ub: BoundOfInt(5)}.Range()
	if !ok || w.Int64() != 4 {
		t.Errorf("Range([2,5]) = %v, want 4", w)
	}
	if _, ok := Top().Range(); ok {
		t.Errorf("Range(top) should not be decidable")
	}
}

func TestMakeSymAndSubst(t *testing.T) {
	symtab := NewSymbolTable()
	path := SymbolPath{Normal: "formal", RepresentsMultipleValues: false}
	sym := MakeSym(path, symtab, false)
	if sym.GetSymbols().IsEmpty() {
		t.Fatalf("MakeSym should mention its own symbol")
	}
	m := NewSubstMap()
	for _, s := range sym.GetSymbols().ToSlice() {
		m.Bind(s, BoundOfInt(42))
	}
	got := sym.Subst(m)
	if !got.EqConst(42) {
		t.Errorf("Subst bound symbol = %v, want {42}", got)
	}
}

func TestWidenStabilizes(t *testing.T) {
	// monotone f(x) = x ⊔ [0, upper(x)+1]
	f := func(x Itv) Itv {
		c, ok := x.Upper().AsConst()
		n := int64(0)
		if ok {
			n = c.Int64() + 1
		}
		return x.Join(Itv{lb: BoundOfInt(0), ub: BoundOfInt(n)})
	}
	cur := Bot()
	for i := 0; i < 1000; i++ {
		next := cur.Widen(f(cur), i)
		if next.Leq(cur) && cur.Leq(next) {
			return // stabilized
		}
		cur = next
	}
	t.Fatalf("widening did not stabilize within 1000 iterations")
}
