// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import "github.com/go-interpreter/absint/relation"

// Leq is the pointwise partial order over all six lattice
// components.
func (v Value) Leq(o Value) bool {
	return v.itv.Leq(o.itv) &&
		leqSym(v.sym, o.sym) &&
		v.powloc.Leq(o.powloc) &&
		v.arrblk.Leq(o.arrblk) &&
		leqSym(v.offsetSym, o.offsetSym) &&
		leqSym(v.sizeSym, o.sizeSym) &&
		v.traces.Leq(o.traces)
}

// Join is the pointwise join; RepresentsMultipleValues joins by
// disjunction and traces by set union (spec §4.1).
func (v Value) Join(o Value) Value {
	return Value{
		itv:                      v.itv.Join(o.itv),
		sym:                      joinSym(v.sym, o.sym),
		powloc:                   v.powloc.Union(o.powloc),
		arrblk:                   v.arrblk.Join(o.arrblk),
		offsetSym:                joinSym(v.offsetSym, o.offsetSym),
		sizeSym:                  joinSym(v.sizeSym, o.sizeSym),
		traces:                   v.traces.Join(o.traces),
		RepresentsMultipleValues: v.RepresentsMultipleValues || o.RepresentsMultipleValues,
	}
}

// Widen widens each sub-lattice, delegating its iteration count
// (spec §4.1: "a widening step delegates its iteration count to each
// sub-lattice").
func (v Value) Widen(o Value, numIters int) Value {
	return Value{
		itv:                      v.itv.Widen(o.itv, numIters),
		sym:                      joinSym(v.sym, o.sym),
		powloc:                   v.powloc.Union(o.powloc),
		arrblk:                   v.arrblk.Widen(o.arrblk, numIters),
		offsetSym:                joinSym(v.offsetSym, o.offsetSym),
		sizeSym:                  joinSym(v.sizeSym, o.sizeSym),
		traces:                   v.traces.Join(o.traces),
		RepresentsMultipleValues: v.RepresentsMultipleValues || o.RepresentsMultipleValues,
	}
}

// joinSym is a flat-lattice join over relational symbols: equal
// symbols join to themselves, anything else collapses to Top (the
// domain has no way to "merge" two distinct symbolic names).
func joinSym(a, b relation.Sym) relation.Sym {
	if a.IsBot() {
		return b
	}
	if b.IsBot() {
		return a
	}
	if a == b {
		return a
	}
	return relation.Top()
}

// leqSym is joinSym's companion order: bot is below everything, top
// is above everything, and two non-sentinel symbols are related only
// if they name the same thing.
func leqSym(a, b relation.Sym) bool {
	if a.IsBot() || b.IsTop() {
		return true
	}
	if b.IsBot() {
		return a.IsBot()
	}
	return a == b
}
