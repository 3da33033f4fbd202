// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relation implements Relation, the relational-constraints
// engine spec §6 names as an external collaborator. No operation in
// this package reads config.Configuration.RelationalDomainEnabled:
// every operation, printing included, behaves the same whatever the
// flag's value.
//
// The constraint language kept here is deliberately small: a set of
// difference constraints "sym1 - sym2 = k" over integer offsets,
// maintained as a weighted union-find forest. This is enough to
// answer the three questions the val and mem packages actually ask
// of Relation - "are these two symbols known equal (up to a
// constant)", "is the store unsatisfiable", "rename symbols across a
// call boundary" - without pulling in a full Presburger/polyhedra
// solver, which is explicitly out of scope (spec §1).
package relation

import (
	"fmt"

	"github.com/go-interpreter/absint/loc"
)

// symKind distinguishes what a Sym names.
type symKind uint8

const (
	symBot symKind = iota
	symTop
	symLoc
	symLocOffset
	symLocSize
	symAllocOffset
	symAllocSize
)

// Sym names a relational variable: the value, offset, or size of a
// location or allocation site.
type Sym struct {
	kind  symKind
	l     loc.Loc
	site  loc.Allocsite
}

// Bot and Top are the flat extremes of the Sym "lattice" (spec §6
// gives Sym bot/top without further operations; they only ever
// appear as sentinels here, e.g. the result of Sym.GetVar on an
// AbstractValue that carries no relational symbol).
func Bot() Sym { return Sym{kind: symBot} }
func Top() Sym { return Sym{kind: symTop} }

// OfLoc names the current value of location l.
func OfLoc(l loc.Loc) Sym { return Sym{kind: symLoc, l: l} }

// OfLocOffset names the offset of the array pointer stored at l.
func OfLocOffset(l loc.Loc) Sym { return Sym{kind: symLocOffset, l: l} }

// OfLocSize names the size of the array stored at l.
func OfLocSize(l loc.Loc) Sym { return Sym{kind: symLocSize, l: l} }

// OfAllocsiteOffset names the offset symbol minted when allocation
// site a is created.
func OfAllocsiteOffset(a loc.Allocsite) Sym { return Sym{kind: symAllocOffset, site: a} }

// OfAllocsiteSize names the size symbol minted when allocation site a
// is created.
func OfAllocsiteSize(a loc.Allocsite) Sym { return Sym{kind: symAllocSize, site: a} }

// IsBot and IsTop report whether s is one of the two sentinels.
func (s Sym) IsBot() bool { return s.kind == symBot }
func (s Sym) IsTop() bool { return s.kind == symTop }

// GetVar returns a value usable as a map key identifying s uniquely;
// exported for callers (mem) that need to use a Sym as a Go map key
// without reaching into its private fields.
func (s Sym) GetVar() Sym { return s }

func (s Sym) String() string {
	switch s.kind {
	case symBot:
		return "bot"
	case symTop:
		return "top"
	case symLoc:
		return fmt.Sprintf("val(%s)", s.l)
	case symLocOffset:
		return fmt.Sprintf("off(%s)", s.l)
	case symLocSize:
		return fmt.Sprintf("size(%s)", s.l)
	case symAllocOffset:
		return fmt.Sprintf("off(%s)", s.site)
	case symAllocSize:
		return fmt.Sprintf("size(%s)", s.site)
	default:
		return "?"
	}
}
