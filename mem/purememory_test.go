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

func TestPureMemoryLatticeLaws(t *testing.T) {
	x, y := loc.OfVar("x"), loc.OfVar("y")
	m1 := EmptyPureMemory().Set(x, val.OfInt(1))
	m2 := EmptyPureMemory().Set(x, val.OfInt(2)).Set(y, val.OfInt(5))

	j := m1.Join(m2)
	if !m1.Leq(j) || !m2.Leq(j) {
		t.Fatalf("join should dominate both operands")
	}
	j2 := m2.Join(m1)
	if !j.Leq(j2) || !j2.Leq(j) {
		t.Errorf("join should be commutative")
	}
	if !m1.Leq(m1) {
		t.Errorf("leq should be reflexive")
	}
}

func TestPureMemoryRangeBoundsLoopTripCount(t *testing.T) {
	i := loc.OfVar("i")
	mem := EmptyPureMemory().Set(i, val.OfInterval(itv.OfInt(0).Join(itv.OfInt(9)), trace.Empty()))
	p := Range(func(l loc.Loc) bool { return l == i }, mem)
	if p.IsTop() {
		t.Fatalf("range over a bounded interval should not be top")
	}
	width, ok := p.Value()
	if !ok || width.Int64() != 10 {
		t.Errorf("range width = %v, want 10", width)
	}
}
