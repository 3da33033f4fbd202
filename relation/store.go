// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
)

// Constraint asserts A - B = Diff, the only relational fact this
// simplified engine can record (see package doc for why).
type Constraint struct {
	A, B Sym
	Diff int64
}

// Store is the relational constraint store: a set of difference
// constraints over Syms, represented as a weighted union-find forest
// for cheap meet/satisfiability, plus an explicit Unsat flag.
type Store struct {
	unsat  bool
	parent map[Sym]Sym
	weight map[Sym]int64 // sym = parent[sym] + weight[sym]
}

// Empty is the top store: no constraints recorded yet.
func Empty() Store { return Store{} }

// BotStore is the unsatisfiable store.
func BotStore() Store { return Store{unsat: true} }

// IsUnsat reports whether s is known unsatisfiable.
func (s Store) IsUnsat() bool { return s.unsat }

func (s Store) clone() Store {
	out := Store{unsat: s.unsat, parent: make(map[Sym]Sym, len(s.parent)), weight: make(map[Sym]int64, len(s.weight))}
	for k, v := range s.parent {
		out.parent[k] = v
	}
	for k, v := range s.weight {
		out.weight[k] = v
	}
	return out
}

// find returns sym's representative root and sym's offset from that
// root (sym = root + offset). It does not compress paths: the store is
// left unmodified.
func (s Store) find(sym Sym) (Sym, int64) {
	p, ok := s.parent[sym]
	if !ok {
		return sym, 0
	}
	root, off := s.find(p)
	return root, s.weight[sym] + off
}

// MeetConstraints adds cs to s, returning BotStore if any constraint
// contradicts the existing store.
func (s Store) MeetConstraints(cs []Constraint) Store {
	if s.unsat {
		return s
	}
	out := s.clone()
	for _, c := range cs {
		rootA, offA := out.find(c.A)
		rootB, offB := out.find(c.B)
		if rootA == rootB {
			// existing relation is rootA + offA - (rootA + offB) = offA - offB
			if offA-offB != c.Diff {
				return BotStore()
			}
			continue
		}
		// union: rootA = rootB + (c.Diff + offB - offA)
		if out.parent == nil {
			out.parent = map[Sym]Sym{}
			out.weight = map[Sym]int64{}
		}
		out.parent[rootA] = rootB
		out.weight[rootA] = c.Diff + offB - offA
	}
	return out
}

// Leq reports whether every constraint implied by o is also implied
// by s (s is more precise, i.e. s ≤ o in the "more constraints below"
// sense the meet-semilattice direction spec §6 implies for a
// constraint store: fewer reachable states is "smaller").
func (s Store) Leq(o Store) bool {
	if s.unsat {
		return true
	}
	if o.unsat {
		return false
	}
	for sym := range o.parent {
		rootS, offS := s.find(sym)
		rootOtherInS, offRelInS := s.find(o.parent[sym])
		if rootS != rootOtherInS {
			return false
		}
		if offS-offRelInS != o.weight[sym] {
			return false
		}
	}
	return true
}

// Join keeps only the constraints present (up to implication) in
// both s and o - the standard difference-constraint join: intersect
// the edge sets after normalizing through each store's own find.
func (s Store) Join(o Store) Store {
	if s.unsat {
		return o
	}
	if o.unsat {
		return s
	}
	out := Empty()
	seen := map[[2]Sym]bool{}
	check := func(sym Sym) {
		rootS, offS := s.find(sym)
		rootO, _ := o.find(sym)
		_ = rootO
		if rootS == sym {
			return
		}
		key := [2]Sym{sym, rootS}
		if seen[key] {
			return
		}
		seen[key] = true
		if rO, oO := o.find(sym); rO == rootS && oO == offS {
			out = out.MeetConstraints([]Constraint{{A: sym, B: rootS, Diff: offS}})
		}
	}
	for sym := range s.parent {
		check(sym)
	}
	for sym := range o.parent {
		check(sym)
	}
	return out
}

// Widen has no dedicated operator: the variable set only grows within
// one procedure body and difference constraints over it form a
// lattice of finite height bounded by the number of distinct Syms, so
// plain Join already terminates.
func (s Store) Widen(o Store, _ int) Store { return s.Join(o) }

// ForgetLocs removes every Sym that mentions a location in locs,
// projecting them out of the store (used when a scope's temporaries
// or a summary's non-formal locations go out of scope).
func (s Store) ForgetLocs(locs []loc.Loc) Store {
	if s.unsat || len(s.parent) == 0 {
		return s
	}
	drop := make(map[loc.Loc]bool, len(locs))
	for _, l := range locs {
		drop[l] = true
	}
	mentions := func(sym Sym) bool {
		switch sym.kind {
		case symLoc, symLocOffset, symLocSize:
			return drop[sym.l]
		default:
			return false
		}
	}
	out := Empty()
	for sym, p := range s.parent {
		if mentions(sym) || mentions(p) {
			continue
		}
		out = out.MeetConstraints([]Constraint{{A: sym, B: p, Diff: s.weight[sym]}})
	}
	return out
}

// InitParam registers that l's value symbol exists as a fresh,
// unconstrained variable. It is a structural no-op in this
// simplified engine (an unmentioned Sym is already its own free
// root) kept for interface parity with spec §6's init_param.
func (s Store) InitParam(l loc.Loc) Store { _ = l; return s }

// InitArray leaves s unchanged. The store holds only differences
// between symbols, so neither the offset/size intervals nor sizeConst
// are recorded; with sizeConst non-nil it meets only the trivial
// constraint size(site) - size(site) = 0.
func (s Store) InitArray(site loc.Allocsite, offset, size itv.Itv, sizeConst *int64) Store {
	_ = offset
	out := s
	if sizeConst != nil {
		out = out.MeetConstraints([]Constraint{{A: OfAllocsiteSize(site), B: OfAllocsiteSize(site), Diff: 0}})
		_ = size
	}
	return out
}

// SubstMap renames Syms across a call boundary (callee symbol ->
// caller symbol/expression), per spec §6 Relation.SubstMap.
type SubstMap struct {
	binding map[Sym]Sym
}

// NewSubstMap builds an empty rename map.
func NewSubstMap() SubstMap { return SubstMap{binding: map[Sym]Sym{}} }

// Bind records that callee symbol 'from' should be read as caller
// symbol 'to'.
func (m SubstMap) Bind(from, to Sym) { m.binding[from] = to }

func (m SubstMap) rename(sym Sym) Sym {
	if to, ok := m.binding[sym]; ok {
		return to
	}
	return sym
}

// Rename is the exported form of rename, used by val.Value.Substitute
// to carry a callee's relational symbols into the caller's space.
func (m SubstMap) Rename(sym Sym) Sym { return m.rename(sym) }

// Instantiate specializes callee against caller at a call site: every
// constraint callee carries over the formals is rewritten through m
// into caller's symbol space and merged in. Per spec §4.7, when
// callee is the bottom memory the Memory-level wrapper short-circuits
// before ever calling this; at the Store level there is no bottom
// sentinel distinct from Unsat, so an unsat callee store simply
// contributes no constraints (already handled by MeetConstraints's
// own unsat short-circuit on the caller side, and by the loop below
// finding no edges to rename when callee.parent is empty/unsat).
func Instantiate(m SubstMap, caller, callee Store) Store {
	if callee.unsat {
		return caller
	}
	out := caller
	var cs []Constraint
	for sym, p := range callee.parent {
		cs = append(cs, Constraint{A: m.rename(sym), B: m.rename(p), Diff: callee.weight[sym]})
	}
	return out.MeetConstraints(cs)
}

func (s Store) String() string {
	if s.unsat {
		return "unsat"
	}
	if len(s.parent) == 0 {
		return "{}"
	}
	var parts []string
	for sym, p := range s.parent {
		parts = append(parts, fmt.Sprintf("%s - %s = %d", sym, p, s.weight[sym]))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
