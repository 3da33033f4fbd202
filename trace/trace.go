// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace implements TraceSet, the external collaborator from
// spec §6 that records how an abstract value arose (assignment,
// symbolic binding, array declaration, or an unmodeled call).
package trace

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Location is the opaque source-location handle threaded through every
// trace element. The core never interprets it, only carries and prints
// it, so a plain string stands in for whatever location type the SIL/CFG
// front-end provides.
type Location string

// Elem is a single provenance entry. It is a tagged variant; construct
// one via the Assign/SymAssign/ArrDecl/UnknownFrom/Call constructors
// rather than the zero value.
type Elem struct {
	kind     elemKind
	loc      Location
	sym      Location // only meaningful for SymAssign
	callee   string   // only meaningful for UnknownFrom; "" means unknown callee
	hasCallee bool
	callSite Location // only meaningful for Call
	sub      Set      // caller ∪ callee traces folded under a Call
}

type elemKind uint8

const (
	kindAssign elemKind = iota
	kindSymAssign
	kindArrDecl
	kindUnknownFrom
	kindCall
)

// Assign records a plain store to a location.
func Assign(loc Location) Elem { return Elem{kind: kindAssign, loc: loc} }

// SymAssign records that a relational symbol naming loc was bound at
// location loc2, as performed by AbstractValue.make_symbolic.
func SymAssign(loc, loc2 Location) Elem {
	return Elem{kind: kindSymAssign, loc: loc, sym: loc2}
}

// ArrDecl records an array-length/stride mutation at loc, as performed
// by AbstractValue.set_array_length.
func ArrDecl(loc Location) Elem { return Elem{kind: kindArrDecl, loc: loc} }

// UnknownFrom records that a value came from a call to an unmodeled
// procedure. callee is absent ("", false) when the call target itself
// could not be resolved.
func UnknownFrom(callee string, hasCallee bool, loc Location) Elem {
	return Elem{kind: kindUnknownFrom, loc: loc, callee: callee, hasCallee: hasCallee}
}

// Kind reports which constructor built e, for callers that need to
// branch on provenance (tests, debug printing).
func (e Elem) Kind() string {
	switch e.kind {
	case kindAssign:
		return "Assign"
	case kindSymAssign:
		return "SymAssign"
	case kindArrDecl:
		return "ArrDecl"
	case kindUnknownFrom:
		return "UnknownFrom"
	case kindCall:
		return "Call"
	default:
		return "?"
	}
}

// Location returns the location carried by e.
func (e Elem) Location() Location { return e.loc }

func (e Elem) String() string {
	switch e.kind {
	case kindAssign:
		return fmt.Sprintf("Assign(%s)", e.loc)
	case kindSymAssign:
		return fmt.Sprintf("SymAssign(%s, %s)", e.loc, e.sym)
	case kindArrDecl:
		return fmt.Sprintf("ArrDecl(%s)", e.loc)
	case kindUnknownFrom:
		if e.hasCallee {
			return fmt.Sprintf("UnknownFrom(%s, %s)", e.callee, e.loc)
		}
		return fmt.Sprintf("UnknownFrom(?, %s)", e.loc)
	case kindCall:
		return fmt.Sprintf("Call(%s, |caller ∪ callee|=%d)", e.callSite, e.sub.Size())
	default:
		return "<bad trace elem>"
	}
}

// Set is TraceSet: a finite set of provenance elements, joined by union.
type Set struct {
	elems mapset.Set[Elem]
}

// Empty is the bottom element of the TraceSet lattice.
func Empty() Set { return Set{elems: mapset.NewThreadUnsafeSet[Elem]()} }

// Singleton builds a one-element trace set.
func Singleton(e Elem) Set {
	s := Empty()
	s.elems.Add(e)
	return s
}

// IsEmpty reports whether s carries no provenance at all.
func (s Set) IsEmpty() bool { return s.elems == nil || s.elems.Cardinality() == 0 }

// Size returns the number of elements carried by s.
func (s Set) Size() int {
	if s.elems == nil {
		return 0
	}
	return s.elems.Cardinality()
}

// AddElem returns s ∪ {e}.
func (s Set) AddElem(e Elem) Set {
	out := s.clone()
	out.elems.Add(e)
	return out
}

// Join returns the union of s and other, the TraceSet lattice join.
func (s Set) Join(other Set) Set {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	out := s.clone()
	out.elems = out.elems.Union(other.elems)
	return out
}

// Leq reports whether s ≤ other, i.e. s ⊆ other.
func (s Set) Leq(other Set) bool {
	if s.IsEmpty() {
		return true
	}
	if other.IsEmpty() {
		return false
	}
	return s.elems.IsSubset(other.elems)
}

// Widen for TraceSet has no dedicated widening operator; the set grows
// monotonically and is bounded by the number of syntactic locations in
// the analyzed procedure, so plain join already has finite height.
func (s Set) Widen(other Set, _ int) Set { return s.Join(other) }

// Call folds caller and callee trace sets under a single Call element,
// tagging them with the call site location, as used by
// AbstractValue.substitute.
func Call(callSite Location, caller, callee Set) Set {
	merged := caller.Join(callee)
	e := Elem{kind: kindCall, callSite: callSite, sub: merged}
	return Singleton(e)
}

// Elements returns the elements of s as a slice, for printing and
// tests. Order is unspecified.
func (s Set) Elements() []Elem {
	if s.elems == nil {
		return nil
	}
	return s.elems.ToSlice()
}

func (s Set) clone() Set {
	if s.elems == nil {
		return Empty()
	}
	return Set{elems: s.elems.Clone()}
}

func (s Set) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	return fmt.Sprintf("%v", s.Elements())
}
