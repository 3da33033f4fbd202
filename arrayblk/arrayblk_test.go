// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayblk

import (
	"testing"

	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
)

func TestMakeAndSetLength(t *testing.T) {
	site := loc.NewAllocsite("line10")
	a := Make(site, itv.Bot(), itv.OfInt(0), itv.OfInt(0).Join(itv.OfInt(10)))
	if a.IsBot() {
		t.Fatalf("Make should not be bot")
	}
	grown := a.SetLength(itv.OfInt(20))
	e, ok := grown.Get(site)
	if !ok {
		t.Fatalf("entry missing after SetLength")
	}
	if !e.Size.EqConst(20) {
		t.Errorf("SetLength size = %v, want {20}", e.Size)
	}
}

func TestLatticeLaws(t *testing.T) {
	s1 := loc.NewAllocsite("a")
	s2 := loc.NewAllocsite("b")
	x := Make(s1, itv.OfInt(4), itv.OfInt(0), itv.OfInt(10))
	y := Make(s2, itv.OfInt(4), itv.OfInt(0), itv.OfInt(5))
	bot := Bot()

	if !bot.Leq(x) {
		t.Errorf("bot not leq x")
	}
	j := x.Join(y)
	if !x.Leq(j) || !y.Leq(j) {
		t.Errorf("join not an upper bound")
	}
	if w := x.Widen(y, 0); !j.Leq(w) {
		t.Errorf("widen should be >= join")
	}
}

func TestPlusMinusOffset(t *testing.T) {
	site := loc.NewAllocsite("a")
	a := Make(site, itv.OfInt(1), itv.OfInt(0), itv.OfInt(10))
	shifted := a.PlusOffset(itv.OfInt(3))
	e, _ := shifted.Get(site)
	if c, ok := e.Offset.Lower().AsConst(); !ok || c.Int64() != 3 {
		t.Errorf("PlusOffset lower = %v, want 3", e.Offset.Lower())
	}
	back := shifted.MinusOffset(itv.OfInt(3))
	e2, _ := back.Get(site)
	if c, ok := e2.Offset.Lower().AsConst(); !ok || c.Int64() != 0 {
		t.Errorf("MinusOffset lower = %v, want 0", e2.Offset.Lower())
	}
}
