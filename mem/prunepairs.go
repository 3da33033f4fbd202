// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/val"
)

// PrunePairs is the inverted finite map Loc -> AbstractValue spec §3,
// §4.5 describes: the empty map is Top (no refinement recorded), and
// a state with strictly more entries is strictly more refined, hence
// strictly smaller in this lattice's order. The lattice's join
// combines two refinement states down toward Top by keeping only the
// keys both sides agree carry information for, loosening the value at
// each surviving key (spec's prose calls this combination step a
// "meet" because it intersects the two sides' information, but it is
// this lattice's own join/LUB: moving from two incomparable refined
// states up toward the shared upper bound).
type PrunePairs struct {
	m *immutable.Map[loc.Loc, val.Value]
}

// TopPrunePairs is the empty map: no refinement recorded.
func TopPrunePairs() PrunePairs {
	return PrunePairs{m: immutable.NewMap[loc.Loc, val.Value](locHash)}
}

func (p PrunePairs) base() *immutable.Map[loc.Loc, val.Value] {
	if p.m == nil {
		return immutable.NewMap[loc.Loc, val.Value](locHash)
	}
	return p.m
}

// Get returns the refined value recorded for l, if any.
func (p PrunePairs) Get(l loc.Loc) (val.Value, bool) {
	if p.m == nil {
		return val.Bot(), false
	}
	return p.m.Get(l)
}

// Set records (or overwrites) the refinement for l.
func (p PrunePairs) Set(l loc.Loc, v val.Value) PrunePairs {
	return PrunePairs{m: p.base().Set(l, v)}
}

// Len returns the number of refined locations.
func (p PrunePairs) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

func (p PrunePairs) keys() []loc.Loc {
	if p.m == nil {
		return nil
	}
	out := make([]loc.Loc, 0, p.m.Len())
	itr := p.m.Iterator()
	for !itr.Done() {
		k, _ := itr.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Fold calls f once per entry, in Loc.Less order.
func (p PrunePairs) Fold(f func(loc.Loc, val.Value)) {
	for _, l := range p.keys() {
		v, _ := p.Get(l)
		f(l, v)
	}
}

// Leq reports p ≤ o: p is at least as refined as o, i.e. p carries
// every location o refines, each refined at least as precisely.
func (p PrunePairs) Leq(o PrunePairs) bool {
	ok := true
	o.Fold(func(l loc.Loc, ov val.Value) {
		if !ok {
			return
		}
		pv, present := p.Get(l)
		if !present || !pv.Leq(ov) {
			ok = false
		}
	})
	return ok
}

// Join keeps only the locations both sides refine, joining (loosening)
// the value at each (spec §4.5).
func (p PrunePairs) Join(o PrunePairs) PrunePairs {
	out := TopPrunePairs()
	p.Fold(func(l loc.Loc, pv val.Value) {
		if ov, present := o.Get(l); present {
			out = out.Set(l, pv.Join(ov))
		}
	})
	return out
}

// Widen has no dedicated operator: the key set is bounded by the
// finitely many locations mentioned in the branch condition just
// pruned, so plain join already has finite height (spec §4.4's
// widen=join note applies equally here).
func (p PrunePairs) Widen(o PrunePairs, _ int) PrunePairs { return p.Join(o) }

func (p PrunePairs) String() string {
	var parts []string
	p.Fold(func(l loc.Loc, v val.Value) {
		parts = append(parts, fmt.Sprintf("%s -> %s", l, v))
	})
	return "{" + strings.Join(parts, ", ") + "}"
}
