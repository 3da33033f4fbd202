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
	"github.com/go-interpreter/absint/polynomial"
	"github.com/go-interpreter/absint/val"
)

// PureMemory is the finite map Loc -> AbstractValue (spec §3, §4.2): a
// plain lattice-map with pointwise join at shared keys and union of
// keys. A location absent from the map has no meaning on its own; it
// is ReachableMemory's read discipline (find_stack/find_heap) that
// assigns absence its stack-bottom or heap-top-interval default.
type PureMemory struct {
	m *immutable.Map[loc.Loc, val.Value]
}

// EmptyPureMemory is the map with no entries.
func EmptyPureMemory() PureMemory {
	return PureMemory{m: immutable.NewMap[loc.Loc, val.Value](locHash)}
}

func (p PureMemory) base() *immutable.Map[loc.Loc, val.Value] {
	if p.m == nil {
		return immutable.NewMap[loc.Loc, val.Value](locHash)
	}
	return p.m
}

// Get returns the value stored for l, if any.
func (p PureMemory) Get(l loc.Loc) (val.Value, bool) {
	if p.m == nil {
		return val.Bot(), false
	}
	return p.m.Get(l)
}

// Set returns a copy of p with l bound to v, structurally sharing
// every other entry.
func (p PureMemory) Set(l loc.Loc, v val.Value) PureMemory {
	return PureMemory{m: p.base().Set(l, v)}
}

// Len returns the number of bound locations.
func (p PureMemory) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Fold calls f once per entry, in Loc.Less order.
func (p PureMemory) Fold(f func(loc.Loc, val.Value)) {
	for _, l := range p.keys() {
		v, _ := p.Get(l)
		f(l, v)
	}
}

func (p PureMemory) keys() []loc.Loc {
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

// Leq holds when every entry of p is dominated by the corresponding
// entry of o (absent on either side standing in for bottom).
func (p PureMemory) Leq(o PureMemory) bool {
	ok := true
	p.Fold(func(l loc.Loc, v val.Value) {
		if !ok {
			return
		}
		ov, _ := o.Get(l)
		if !v.Leq(ov) {
			ok = false
		}
	})
	return ok
}

// Join is the pointwise join over the union of both maps' keys.
func (p PureMemory) Join(o PureMemory) PureMemory {
	out := p
	o.Fold(func(l loc.Loc, ov val.Value) {
		if v, present := out.Get(l); present {
			out = out.Set(l, v.Join(ov))
		} else {
			out = out.Set(l, ov)
		}
	})
	return out
}

// Widen widens every shared entry and copies over entries unique to
// either side (widen against an implicit-bottom other side is the
// identity, matching Itv.Widen/ArrayBlk.Widen's own bottom handling).
func (p PureMemory) Widen(o PureMemory, numIters int) PureMemory {
	out := p
	o.Fold(func(l loc.Loc, ov val.Value) {
		if v, present := out.Get(l); present {
			out = out.Set(l, v.Widen(ov, numIters))
		} else {
			out = out.Set(l, ov)
		}
	})
	return out
}

// Range is the derived query spec §4.2 describes: the product, over
// every bound location that passes filter, of the top-lifted
// polynomial width of that location's interval. Used to bound loop
// trip counts from the sizes of the arrays/indices a loop ranges over.
func Range(filter func(loc.Loc) bool, mem PureMemory) polynomial.NonNegativePolynomial {
	out := polynomial.One()
	mem.Fold(func(l loc.Loc, v val.Value) {
		if !filter(l) {
			return
		}
		width, ok := v.Itv().Range()
		if !ok {
			out = out.Mult(polynomial.Top())
			return
		}
		out = out.Mult(polynomial.OfInt(width))
	})
	return out
}

func (p PureMemory) String() string {
	var parts []string
	p.Fold(func(l loc.Loc, v val.Value) {
		parts = append(parts, fmt.Sprintf("%s -> %s", l, v))
	})
	return "{" + strings.Join(parts, ", ") + "}"
}
