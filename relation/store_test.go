// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relation

import (
	"testing"

	"github.com/go-interpreter/absint/loc"
)

func TestMeetConstraintsDetectsUnsat(t *testing.T) {
	a := OfLoc(loc.OfVar("a"))
	b := OfLoc(loc.OfVar("b"))
	s := Empty().MeetConstraints([]Constraint{{A: a, B: b, Diff: 1}})
	if s.IsUnsat() {
		t.Fatalf("single constraint should be satisfiable")
	}
	s2 := s.MeetConstraints([]Constraint{{A: a, B: b, Diff: 2}})
	if !s2.IsUnsat() {
		t.Errorf("contradictory constraint should be unsat")
	}
}

func TestLeqAndJoin(t *testing.T) {
	a := OfLoc(loc.OfVar("a"))
	b := OfLoc(loc.OfVar("b"))
	s := Empty().MeetConstraints([]Constraint{{A: a, B: b, Diff: 5}})
	top := Empty()
	if !s.Leq(top) {
		t.Errorf("any store should be leq the empty store")
	}
	j := s.Join(top)
	if !s.Leq(j) {
		t.Errorf("s should be leq its join with top")
	}
}

func TestLeqBottomOrdering(t *testing.T) {
	a := OfLoc(loc.OfVar("a"))
	b := OfLoc(loc.OfVar("b"))
	sat := Empty().MeetConstraints([]Constraint{{A: a, B: b, Diff: 5}})
	bot := BotStore()

	if !bot.Leq(sat) {
		t.Errorf("bottom (unsat) should be leq any satisfiable store")
	}
	if !bot.Leq(Empty()) {
		t.Errorf("bottom (unsat) should be leq top (empty)")
	}
	if sat.Leq(bot) {
		t.Errorf("a satisfiable store should not be leq bottom (unsat)")
	}
	if !bot.Leq(bot) {
		t.Errorf("leq should be reflexive at bottom")
	}
}

func TestForgetLocs(t *testing.T) {
	av := loc.OfVar("a")
	bv := loc.OfVar("b")
	a := OfLoc(av)
	b := OfLoc(bv)
	s := Empty().MeetConstraints([]Constraint{{A: a, B: b, Diff: 0}})
	s2 := s.ForgetLocs([]loc.Loc{av})
	if s2.IsUnsat() {
		t.Fatalf("forgetting a loc should not make the store unsat")
	}
}

func TestInstantiateRenames(t *testing.T) {
	formal := OfLoc(loc.OfVar("formal"))
	other := OfLoc(loc.OfVar("other"))
	callee := Empty().MeetConstraints([]Constraint{{A: formal, B: other, Diff: 3}})

	actual := OfLoc(loc.OfVar("actual"))
	actualOther := OfLoc(loc.OfVar("actual_other"))
	m := NewSubstMap()
	m.Bind(formal, actual)
	m.Bind(other, actualOther)

	caller := Empty()
	out := Instantiate(m, caller, callee)
	if out.IsUnsat() {
		t.Fatalf("instantiate should not be unsat")
	}
	rootA, offA := out.find(actual)
	rootB, offB := out.find(actualOther)
	if rootA != rootB {
		t.Fatalf("renamed symbols should be related")
	}
	if offA-offB != 3 {
		t.Errorf("renamed diff = %d, want 3", offA-offB)
	}
}
