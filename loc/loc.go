// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loc implements the front-end vocabulary spec §3 calls
// "Locations": abstract storage cells, SSA temporaries, allocation
// sites, and front-end expressions. None of this is produced by a
// real SIL/CFG front-end here (out of scope per spec §1); it is the
// minimal closed vocabulary the rest of the domain needs to exist.
package loc

import "fmt"

// Ident denotes an SSA-style logical temporary introduced by the
// front-end.
type Ident struct{ name string }

// NewIdent wraps a temporary's front-end name.
func NewIdent(name string) Ident { return Ident{name: name} }

func (i Ident) String() string { return i.name }

// Allocsite identifies an array object abstractly by the program
// point that created it.
type Allocsite struct{ site string }

// NewAllocsite wraps an allocation program point.
func NewAllocsite(site string) Allocsite { return Allocsite{site: site} }

func (a Allocsite) String() string { return "alloc:" + a.site }

// locKind distinguishes the five shapes a Loc can take (spec §3).
type locKind uint8

const (
	kindVar locKind = iota
	kindTemp
	kindField
	kindAlloc
	kindUnknown
)

// Loc is an abstract location: a program variable, a logical
// temporary, a field projection, an allocation-site slot, or the
// distinguished Unknown location. Loc is a flat, comparable value (no
// pointers) and is usable as a map key directly: a field projection
// stores its base's rendered form rather than a *Loc, so two field
// locations built off equal bases always compare == regardless of
// which call produced the base.
type Loc struct {
	kind    locKind
	name    string // var/temp name, or the allocation's base object name
	baseStr string // set only for kindField: base.String()
	field   string // set only for kindField
}

// Unknown is the distinguished top location: "somewhere I can't name",
// used by ReachableMemory.AddUnknownFrom to pollute the heap summary.
var Unknown = Loc{kind: kindUnknown, name: "?"}

// OfVar builds the location a named program variable denotes.
func OfVar(name string) Loc { return Loc{kind: kindVar, name: name} }

// OfIdent builds the location an SSA temporary denotes.
func OfIdent(id Ident) Loc { return Loc{kind: kindTemp, name: id.name} }

// OfAllocsite builds the base location of an allocation site (the
// array object itself, as opposed to any of its per-element symbols).
func OfAllocsite(a Allocsite) Loc { return Loc{kind: kindAlloc, name: a.site} }

// Field builds the location of a field projection off of base.
func Field(base Loc, field string) Loc {
	return Loc{kind: kindField, baseStr: base.String(), field: field}
}

// IsUnknown reports whether l is the distinguished Unknown location.
func (l Loc) IsUnknown() bool { return l.kind == kindUnknown }

func (l Loc) String() string {
	switch l.kind {
	case kindVar:
		return l.name
	case kindTemp:
		return "$" + l.name
	case kindField:
		return fmt.Sprintf("%s.%s", l.baseStr, l.field)
	case kindAlloc:
		return "alloc:" + l.name
	default:
		return "unknown"
	}
}

// Less gives Loc a total order (by kind, then by rendered name),
// satisfying spec §3's "locations have equality and a total order".
func (l Loc) Less(o Loc) bool {
	if l.kind != o.kind {
		return l.kind < o.kind
	}
	return l.String() < o.String()
}

// FieldBase returns the rendered form of l's base location, when l is
// a field projection built by Field; used by ReachableMemory's
// reachability closure to find "every field-of-l" without reaching
// into Loc's private representation.
func (l Loc) FieldBase() (string, bool) {
	if l.kind != kindField {
		return "", false
	}
	return l.baseStr, true
}

// OffsetSymLoc and SizeSymLoc are the synthetic per-allocation-site
// locations Relation.Sym.OfAllocsiteOffset / OfAllocsiteSize key off
// of; exposed here since ReachableMemory.AddHeap needs to derive
// Relation.Sym.OfLocOffset / OfLocSize from a plain Loc too (spec
// §4.6 add_heap).
func (l Loc) OffsetSymLoc() Loc { return Field(l, "$offset") }
func (l Loc) SizeSymLoc() Loc   { return Field(l, "$size") }
