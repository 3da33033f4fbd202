// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loc

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// PowLoc is the powerset-of-locations lattice (spec §3, §6): a finite
// set of Locs, topped by the distinguished Unknown location standing
// in for "could point anywhere".
type PowLoc struct {
	top  bool
	locs mapset.Set[Loc]
}

// PowLocBot is the empty set, the lattice bottom.
func PowLocBot() PowLoc { return PowLoc{locs: mapset.NewThreadUnsafeSet[Loc]()} }

// PowLocEmpty is an alias for PowLocBot, matching spec §6 naming
// (PowLoc.empty).
func PowLocEmpty() PowLoc { return PowLocBot() }

// PowLocUnknown is the top element.
func PowLocUnknown() PowLoc { return PowLoc{top: true} }

// Singleton builds a one-location set.
func Singleton(l Loc) PowLoc {
	p := PowLocBot()
	p.locs.Add(l)
	return p
}

// IsBot reports whether p carries no locations and isn't top.
func (p PowLoc) IsBot() bool { return !p.top && (p.locs == nil || p.locs.Cardinality() == 0) }

// IsUnknown reports whether p is the top element.
func (p PowLoc) IsUnknown() bool { return p.top }

// IsSingletonOrMore reports whether p denotes at least one concrete
// location (used by ReachableMemory.can_strong_update together with a
// cardinality-1 check).
func (p PowLoc) IsSingletonOrMore() bool {
	return p.top || (p.locs != nil && p.locs.Cardinality() >= 1)
}

// Add returns p ∪ {l}.
func (p PowLoc) Add(l Loc) PowLoc {
	if p.top {
		return p
	}
	out := p.clone()
	out.locs.Add(l)
	return out
}

// Mem reports whether l ∈ p.
func (p PowLoc) Mem(l Loc) bool {
	if p.top {
		return true
	}
	return p.locs != nil && p.locs.Contains(l)
}

// Union returns p ∪ o.
func (p PowLoc) Union(o PowLoc) PowLoc {
	if p.top || o.top {
		return PowLocUnknown()
	}
	out := p.clone()
	if o.locs != nil {
		out.locs = out.locs.Union(o.locs)
	}
	return out
}

// Leq reports p ≤ o, i.e. p ⊆ o (with Unknown as top).
func (p PowLoc) Leq(o PowLoc) bool {
	if o.top {
		return true
	}
	if p.top {
		return false
	}
	if p.locs == nil || p.locs.Cardinality() == 0 {
		return true
	}
	return o.locs != nil && p.locs.IsSubset(o.locs)
}

// Fold calls f with every location in p in a deterministic (sorted)
// order; it is a no-op when p is top, matching PowLoc.fold's contract
// that Unknown cannot be iterated concretely.
func (p PowLoc) Fold(f func(Loc)) {
	if p.top || p.locs == nil {
		return
	}
	ls := p.locs.ToSlice()
	sort.Slice(ls, func(i, j int) bool { return ls[i].Less(ls[j]) })
	for _, l := range ls {
		f(l)
	}
}

// ToSlice returns p's locations sorted by Loc.Less; empty when p is
// top.
func (p PowLoc) ToSlice() []Loc {
	var out []Loc
	p.Fold(func(l Loc) { out = append(out, l) })
	return out
}

func (p PowLoc) clone() PowLoc {
	if p.locs == nil {
		return PowLocBot()
	}
	return PowLoc{locs: p.locs.Clone()}
}

func (p PowLoc) String() string {
	if p.top {
		return "unknown"
	}
	var parts []string
	p.Fold(func(l Loc) { parts = append(parts, l.String()) })
	return "{" + strings.Join(parts, ", ") + "}"
}
