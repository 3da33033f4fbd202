// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

import (
	"fmt"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// Symbol names a fresh logical quantity introduced when a value is
// found to be unknown on entry to a procedure (the size of an
// unmodeled caller-provided array, the value of a formal parameter,
// ...). Symbols are compared by identity of (path, id).
type Symbol struct {
	id   uint64
	path SymbolPath
}

// SymbolPath records where a symbol came from: the syntactic path used
// to reach it from a formal parameter (e.g. "param.field[*]"), plus
// whether dereferencing that path can land on more than one concrete
// cell (an array element, or a field reached through a summary node).
type SymbolPath struct {
	// Normal is a human-readable rendering of the access path, e.g.
	// "a->b" or "arr[*].len". It has no semantic meaning beyond
	// identity and printing.
	Normal string

	// RepresentsMultipleValues is true when walking this path can
	// reach more than one concrete memory cell, per spec §4.1
	// (make_symbolic derives AbstractValue.represents_multiple_values
	// from this field).
	RepresentsMultipleValues bool
}

func (p SymbolPath) String() string { return p.Normal }

// Id returns the symbol's unique numeric identity, for use as a map
// key or in debug output.
func (s Symbol) Id() uint64 { return s.id }

// Path returns the SymbolPath this symbol was minted from.
func (s Symbol) Path() SymbolPath { return s.path }

func (s Symbol) String() string {
	return fmt.Sprintf("$%d:%s", s.id, s.path.Normal)
}

// SymbolTable is the shared, mutable resource spec §5 calls out:
// "the domain passes it through as an opaque handle and does not
// itself synchronize". Mutation (minting a fresh symbol) is expected
// to be serialized by the enclosing fixed-point driver; the counter
// itself is implemented with an atomic so that a driver that does
// fan out concurrent procedure analyses sharing one table does not
// corrupt the counter, even though per spec it need not bother.
type SymbolTable struct {
	counter uint64
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable { return &SymbolTable{} }

// Fresh mints a new Symbol for path. Two calls with equal paths still
// yield distinct symbols: identity, not path, is what equality and
// the symbol-substitution map key off of.
func (t *SymbolTable) Fresh(path SymbolPath) Symbol {
	id := atomic.AddUint64(&t.counter, 1)
	return Symbol{id: id, path: path}
}

// SymbolSet is the finite-set-of-symbols lattice (spec §6), used as
// the return type of GetSymbols.
type SymbolSet struct {
	syms mapset.Set[Symbol]
}

// EmptySymbolSet is the bottom element.
func EmptySymbolSet() SymbolSet { return SymbolSet{syms: mapset.NewThreadUnsafeSet[Symbol]()} }

func singletonSymbolSet(s Symbol) SymbolSet {
	out := EmptySymbolSet()
	out.syms.Add(s)
	return out
}

// Union returns s ∪ other.
func (s SymbolSet) Union(other SymbolSet) SymbolSet {
	if s.syms == nil {
		return other
	}
	if other.syms == nil {
		return s
	}
	return SymbolSet{syms: s.syms.Union(other.syms)}
}

// IsEmpty reports whether s carries no symbols.
func (s SymbolSet) IsEmpty() bool { return s.syms == nil || s.syms.Cardinality() == 0 }

// Contains reports whether sym ∈ s.
func (s SymbolSet) Contains(sym Symbol) bool {
	if s.syms == nil {
		return false
	}
	return s.syms.Contains(sym)
}

// ToSlice returns the symbols in s, in unspecified order.
func (s SymbolSet) ToSlice() []Symbol {
	if s.syms == nil {
		return nil
	}
	return s.syms.ToSlice()
}

// SubstMap maps a caller Symbol to the Bound it should be replaced
// with at a call site (spec §4.1 substitute, §6 Relation.SubstMap).
type SubstMap struct {
	binding map[uint64]Bound
}

// NewSubstMap builds an empty substitution map.
func NewSubstMap() SubstMap { return SubstMap{binding: make(map[uint64]Bound)} }

// Bind records that sym should be replaced by b.
func (m SubstMap) Bind(sym Symbol, b Bound) { m.binding[sym.id] = b }

// Lookup returns the bound sym should be replaced with, if any.
func (m SubstMap) Lookup(sym Symbol) (Bound, bool) {
	if m.binding == nil {
		return Bound{}, false
	}
	b, ok := m.binding[sym.id]
	return b, ok
}
