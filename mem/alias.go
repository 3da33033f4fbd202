// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"fmt"
	"sort"

	"github.com/benbjohnson/immutable"

	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/val"
)

// aliasKind distinguishes AliasTarget's two shapes (spec §3).
type aliasKind uint8

const (
	aliasSimple aliasKind = iota
	aliasEmpty
)

// AliasTarget is a tagged variant naming what a temporary currently
// aliases: either the live value of a location (Simple) or that
// location's emptiness bit (Empty), as recorded after a
// container.empty() test. The lattice is flat: equality is the only
// relation below identity, and Join of two unequal targets is a
// precondition violation (spec §7, §9).
type AliasTarget struct {
	kind aliasKind
	l    loc.Loc
}

// Simple builds the "this temporary holds the current value of l"
// target.
func Simple(l loc.Loc) AliasTarget { return AliasTarget{kind: aliasSimple, l: l} }

// EmptyOf builds the "this temporary equals 1 iff l is logically
// empty" target.
func EmptyOf(l loc.Loc) AliasTarget { return AliasTarget{kind: aliasEmpty, l: l} }

// IsSimple and IsEmptyTarget report which shape t has.
func (t AliasTarget) IsSimple() bool      { return t.kind == aliasSimple }
func (t AliasTarget) IsEmptyTarget() bool { return t.kind == aliasEmpty }

// Loc returns the location t names.
func (t AliasTarget) Loc() loc.Loc { return t.l }

// mentions reports whether t's referenced location is l, per the
// AliasMap.store invalidation rule (spec §4.3: "drop every binding
// whose target mentions loc").
func (t AliasTarget) mentions(l loc.Loc) bool { return t.l == l }

// Leq is the flat order: t ≤ o iff t = o.
func (t AliasTarget) Leq(o AliasTarget) bool { return t == o }

// PreconditionViolation is the panic value AliasTarget.Join raises
// when asked to join two unequal targets. Spec §7 classifies this as
// a programmer-error precondition violation, not a recoverable
// analysis outcome: the calling driver promised the flat-lattice
// contract ("AliasTarget.join requires its inputs to be equal") and
// broke it. Spec §9's open question notes a safer widen-to-top
// variant is conceivable future work but is not part of the current
// contract, so this implementation asserts rather than degrades.
type PreconditionViolation struct{ Msg string }

func (p PreconditionViolation) Error() string { return p.Msg }

// Join requires t = o; joining unequal targets panics with a
// PreconditionViolation (spec §7, §9).
func (t AliasTarget) Join(o AliasTarget) AliasTarget {
	if t == o {
		return t
	}
	panic(PreconditionViolation{Msg: fmt.Sprintf("AliasTarget.Join of unequal targets: %s vs %s", t, o)})
}

// Widen delegates to Join: the flat lattice has height one.
func (t AliasTarget) Widen(o AliasTarget, _ int) AliasTarget { return t.Join(o) }

func (t AliasTarget) String() string {
	if t.kind == aliasEmpty {
		return fmt.Sprintf("empty(%s)", t.l)
	}
	return fmt.Sprintf("simple(%s)", t.l)
}

// AliasReturn is the flat lattice over AliasTarget attached to the
// procedure's return slot (spec §3), extended with an explicit
// "nothing recorded yet" bottom distinct from any AliasTarget (an
// Open Question spec.md leaves to the implementation: a plain flat
// lattice over AliasTarget alone has no representable bottom, yet
// every procedure starts with no return alias at all).
type AliasReturn struct {
	present bool
	target  AliasTarget
}

// NoReturnAlias is the bottom: no alias has been recorded for the
// return slot yet.
func NoReturnAlias() AliasReturn { return AliasReturn{} }

// ReturnOfSimple and ReturnOfEmpty lift a concrete target.
func ReturnOfSimple(l loc.Loc) AliasReturn { return AliasReturn{present: true, target: Simple(l)} }
func ReturnOfEmpty(l loc.Loc) AliasReturn  { return AliasReturn{present: true, target: EmptyOf(l)} }

// Get returns the recorded target, if any.
func (r AliasReturn) Get() (AliasTarget, bool) { return r.target, r.present }

// Leq is bottom-below-everything, then the flat order.
func (r AliasReturn) Leq(o AliasReturn) bool {
	if !r.present {
		return true
	}
	if !o.present {
		return false
	}
	return r.target.Leq(o.target)
}

// Join propagates bottom and otherwise requires equality, like
// AliasTarget.Join.
func (r AliasReturn) Join(o AliasReturn) AliasReturn {
	if !r.present {
		return o
	}
	if !o.present {
		return r
	}
	return AliasReturn{present: true, target: r.target.Join(o.target)}
}

// Widen delegates to Join: finite height, same as AliasTarget.
func (r AliasReturn) Widen(o AliasReturn, _ int) AliasReturn { return r.Join(o) }

func (r AliasReturn) String() string {
	if !r.present {
		return "none"
	}
	return r.target.String()
}

// identKeys returns m's bound Idents in a deterministic (string) order.
func identKeys(m *immutable.Map[loc.Ident, AliasTarget]) []loc.Ident {
	if m == nil {
		return nil
	}
	out := make([]loc.Ident, 0, m.Len())
	itr := m.Iterator()
	for !itr.Done() {
		k, _ := itr.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// AliasMap is Ident -> AliasTarget (spec §3, §4.3).
type AliasMap struct {
	m *immutable.Map[loc.Ident, AliasTarget]
}

// EmptyAliasMap is the map with no bindings.
func EmptyAliasMap() AliasMap {
	return AliasMap{m: immutable.NewMap[loc.Ident, AliasTarget](identHash)}
}

func (a AliasMap) base() *immutable.Map[loc.Ident, AliasTarget] {
	if a.m == nil {
		return immutable.NewMap[loc.Ident, AliasTarget](identHash)
	}
	return a.m
}

// Load binds id -> target (spec §4.3 load).
func (a AliasMap) Load(id loc.Ident, target AliasTarget) AliasMap {
	return AliasMap{m: a.base().Set(id, target)}
}

// Find looks up id (spec §4.3 find).
func (a AliasMap) Find(id loc.Ident) (AliasTarget, bool) {
	if a.m == nil {
		return AliasTarget{}, false
	}
	return a.m.Get(id)
}

// RemoveTemp drops id, used when an SSA temporary goes out of scope
// (spec §4.3 remove_temp).
func (a AliasMap) RemoveTemp(id loc.Ident) AliasMap {
	if a.m == nil {
		return a
	}
	return AliasMap{m: a.m.Delete(id)}
}

// Store drops every binding whose target mentions l, the post-write
// invalidation rule spec §4.3/§3 requires.
func (a AliasMap) Store(l loc.Loc) AliasMap {
	out := a
	for _, id := range identKeys(a.m) {
		t, _ := a.Find(id)
		if t.mentions(l) {
			out = out.RemoveTemp(id)
		}
	}
	return out
}

func (a AliasMap) String() string {
	s := "{"
	first := true
	for _, id := range identKeys(a.m) {
		t, _ := a.Find(id)
		if !first {
			s += ", "
		}
		first = false
		s += fmt.Sprintf("%s -> %s", id, t)
	}
	return s + "}"
}

// Alias bundles the temporary-alias map with the return-slot alias
// (spec §3 Alias = { map, ret }).
type Alias struct {
	Map AliasMap
	Ret AliasReturn
}

// EmptyAlias is the initial, empty Alias.
func EmptyAlias() Alias { return Alias{Map: EmptyAliasMap(), Ret: NoReturnAlias()} }

// StoreSimple performs Map.Store(l); when isReturnSlot is set and expr
// is a bare reference to a temporary currently holding Simple(target),
// it additionally records the return alias as Simple(target) (spec
// §4.3 Alias.store_simple).
func (a Alias) StoreSimple(l loc.Loc, isReturnSlot bool, expr loc.Exp) Alias {
	out := a
	out.Map = a.Map.Store(l)
	if !isReturnSlot {
		return out
	}
	id, ok := expr.AsIdent()
	if !ok {
		return out
	}
	t, found := a.Map.Find(id)
	if !found || !t.IsSimple() {
		return out
	}
	out.Ret = ReturnOfSimple(t.Loc())
	return out
}

// StoreEmpty performs Map.Store(l); when formal's get_all_locs is a
// singleton location, records the return alias as Empty(that
// location), capturing an `empty()`-style API result (spec §4.3
// Alias.store_empty).
func (a Alias) StoreEmpty(formal val.Value, l loc.Loc) Alias {
	out := a
	out.Map = a.Map.Store(l)
	locs := formal.GetAllLocs()
	sl := locs.ToSlice()
	if len(sl) != 1 {
		return out
	}
	out.Ret = ReturnOfEmpty(sl[0])
	return out
}

func (a Alias) String() string {
	return fmt.Sprintf("{map=%s, ret=%s}", a.Map, a.Ret)
}

// Leq, Join, and Widen give Alias the lattice shape spec §8 requires
// of every "alias component": pointwise over the map and the return
// slot. AliasMap.Join (and thus Alias.Join) panics via
// AliasTarget.Join if the two sides disagree on a shared binding's
// target, the same precondition-violation contract as AliasTarget
// itself.
func (a AliasMap) Leq(o AliasMap) bool {
	ok := true
	for _, id := range identKeys(a.m) {
		if !ok {
			break
		}
		t, _ := a.Find(id)
		ot, present := o.Find(id)
		if !present || !t.Leq(ot) {
			ok = false
		}
	}
	return ok
}

// Join relies on Idents being SSA-style logical temporaries (spec
// §3): a given Ident is bound once, so two merging branches should
// never disagree on its target, which is what keeps AliasTarget.Join's
// panic unreachable here in practice.
func (a AliasMap) Join(o AliasMap) AliasMap {
	out := a
	for _, id := range identKeys(o.m) {
		ot, _ := o.Find(id)
		if t, present := out.Find(id); present {
			out = out.Load(id, t.Join(ot))
		} else {
			out = out.Load(id, ot)
		}
	}
	return out
}

func (a AliasMap) Widen(o AliasMap, _ int) AliasMap { return a.Join(o) }

func (a Alias) Leq(o Alias) bool { return a.Map.Leq(o.Map) && a.Ret.Leq(o.Ret) }

func (a Alias) Join(o Alias) Alias {
	return Alias{Map: a.Map.Join(o.Map), Ret: a.Ret.Join(o.Ret)}
}

func (a Alias) Widen(o Alias, numIters int) Alias {
	return Alias{Map: a.Map.Widen(o.Map, numIters), Ret: a.Ret.Widen(o.Ret, numIters)}
}
