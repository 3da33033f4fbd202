// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"fmt"

	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/relation"
	"github.com/go-interpreter/absint/trace"
	"github.com/go-interpreter/absint/val"
)

// ReachableMemory is the record spec §3, §4.6 describes:
// { stack_locs, mem_pure, alias, latest_prune, relation }.
type ReachableMemory struct {
	stackLocs   StackLocSet
	memPure     PureMemory
	alias       Alias
	latestPrune LatestPrune
	rel         relation.Store
}

// InitReachableMemory is the state a procedure's analysis starts from
// (spec §3 Lifecycle): empty stack set, empty pure memory, empty
// alias, LatestPrune = Top, empty relational store.
func InitReachableMemory() ReachableMemory {
	return ReachableMemory{
		stackLocs:   EmptyStackLocSet(),
		memPure:     EmptyPureMemory(),
		alias:       EmptyAlias(),
		latestPrune: TopLatestPrune(),
		rel:         relation.Empty(),
	}
}

// StackLocs, MemPure, AliasState, LatestPruneState, and Relation
// expose the five fields directly, for callers (Memory, checkers,
// tests) that need to inspect one component without going through a
// derived query.
func (r ReachableMemory) StackLocs() StackLocSet        { return r.stackLocs }
func (r ReachableMemory) MemPure() PureMemory           { return r.memPure }
func (r ReachableMemory) AliasState() Alias             { return r.alias }
func (r ReachableMemory) LatestPruneState() LatestPrune { return r.latestPrune }
func (r ReachableMemory) Relation() relation.Store      { return r.rel }

// ---- Read discipline (spec §4.6) ----

// IsStackLoc reports whether l is bound to the current frame's stack.
func (r ReachableMemory) IsStackLoc(l loc.Loc) bool { return r.stackLocs.Contains(l) }

// FindOpt is the raw lookup in mem_pure, with no default applied.
func (r ReachableMemory) FindOpt(l loc.Loc) (val.Value, bool) { return r.memPure.Get(l) }

// FindStack defaults to bottom on miss: an unbound stack location is
// unreachable in the current frame.
func (r ReachableMemory) FindStack(l loc.Loc) val.Value {
	if v, ok := r.FindOpt(l); ok {
		return v
	}
	return val.Bot()
}

// FindHeap defaults to top-interval on miss: an unmentioned heap cell
// is an arbitrary integer, not an unreachable one (spec §9 design
// note: the default deliberately carries bottom powloc/arrayblk - the
// domain assumes unknown numeric cells are arbitrary integers but not
// arbitrary pointers).
func (r ReachableMemory) FindHeap(l loc.Loc) val.Value {
	if v, ok := r.FindOpt(l); ok {
		return v
	}
	return val.TopInterval()
}

// Find dispatches to FindStack or FindHeap by stack membership.
func (r ReachableMemory) Find(l loc.Loc) val.Value {
	if r.IsStackLoc(l) {
		return r.FindStack(l)
	}
	return r.FindHeap(l)
}

// FindSet is the join of Find over every location in p. An unknown
// (top) p denotes "could be any location", which this domain can only
// answer with a fully unknown value.
func (r ReachableMemory) FindSet(p loc.PowLoc) val.Value {
	if p.IsUnknown() {
		return val.TopInterval()
	}
	out := val.Bot()
	p.Fold(func(l loc.Loc) { out = out.Join(r.Find(l)) })
	return out
}

// ---- Write discipline (spec §4.6) ----

// AddStack inserts l into stack_locs and binds (l, v) in mem_pure.
func (r ReachableMemory) AddStack(l loc.Loc, v val.Value) ReachableMemory {
	out := r
	out.stackLocs = r.stackLocs.Add(l)
	out.memPure = r.memPure.Set(l, v)
	return out
}

// ReplaceStack updates l's value only, leaving stack_locs unchanged.
func (r ReachableMemory) ReplaceStack(l loc.Loc, v val.Value) ReachableMemory {
	out := r
	out.memPure = r.memPure.Set(l, v)
	return out
}

// AddHeap stores v at l with its relational symbols materialized: the
// value symbol names l unless the interval is empty, and the
// offset/size symbols name l's offset/size unless the array
// descriptor is bottom (spec §4.6 add_heap).
func (r ReachableMemory) AddHeap(l loc.Loc, v val.Value) ReachableMemory {
	out := v
	if !v.Itv().IsEmpty() {
		out = out.WithSym(relation.OfLoc(l))
	}
	if !v.ArrayBlk().IsBot() {
		out = out.WithOffsetSym(relation.OfLocOffset(l)).WithSizeSym(relation.OfLocSize(l))
	}
	result := r
	result.memPure = r.memPure.Set(l, out)
	return result
}

// writeOne dispatches a single-location write to ReplaceStack or
// AddHeap, the common step strong_update/weak_update both build on.
func (r ReachableMemory) writeOne(l loc.Loc, v val.Value) ReachableMemory {
	if r.IsStackLoc(l) {
		return r.ReplaceStack(l, v)
	}
	return r.AddHeap(l, v)
}

// StrongUpdate overwrites every location in p with v.
func (r ReachableMemory) StrongUpdate(p loc.PowLoc, v val.Value) ReachableMemory {
	out := r
	p.Fold(func(l loc.Loc) { out = out.writeOne(l, v) })
	return out
}

// WeakUpdate joins v into every location in p's current value, used
// when p may denote more than one concrete cell.
func (r ReachableMemory) WeakUpdate(p loc.PowLoc, v val.Value) ReachableMemory {
	out := r
	p.Fold(func(l loc.Loc) { out = out.writeOne(l, v.Join(out.Find(l))) })
	return out
}

// CanStrongUpdate reports whether p is precise enough for a strong
// update: exactly one concrete location, whose current value is not
// itself a multi-valued (summary) slot (spec §4.6, glossary
// "Multi-valued slot").
func (r ReachableMemory) CanStrongUpdate(p loc.PowLoc) bool {
	if p.IsUnknown() {
		return false
	}
	sl := p.ToSlice()
	if len(sl) != 1 {
		return false
	}
	return !r.Find(sl[0]).RepresentsMultipleValues
}

// UpdateMem picks strong or weak update depending on CanStrongUpdate.
func (r ReachableMemory) UpdateMem(p loc.PowLoc, v val.Value) ReachableMemory {
	if r.CanStrongUpdate(p) {
		return r.StrongUpdate(p, v)
	}
	return r.WeakUpdate(p, v)
}

// TransformMem applies f to the current value at each location in p,
// writing the result back with the same strong/weak discipline as
// WeakUpdate (a transform touches a location's own current value, so
// it is never more precise than a weak update).
func (r ReachableMemory) TransformMem(f func(val.Value) val.Value, p loc.PowLoc) ReachableMemory {
	out := r
	p.Fold(func(l loc.Loc) { out = out.writeOne(l, f(out.Find(l))) })
	return out
}

// ---- Unknown calls (spec §4.6) ----

// AddUnknownFrom binds id's location to an UnknownFrom value on the
// stack, and joins that same value into the distinguished Unknown
// heap location so that downstream reads through Unknown observe the
// pollution.
func (r ReachableMemory) AddUnknownFrom(id loc.Ident, callee string, hasCallee bool, location trace.Location) ReachableMemory {
	v := val.UnknownFrom(callee, hasCallee, location)
	out := r.AddStack(loc.OfIdent(id), v)
	cur, _ := out.FindOpt(loc.Unknown)
	out.memPure = out.memPure.Set(loc.Unknown, cur.Join(v))
	return out
}

// ---- Pruning integration (spec §4.6) ----

// SetPrunePairs records p as the latest (not-yet-variable-attached)
// pruning.
func (r ReachableMemory) SetPrunePairs(p PrunePairs) ReachableMemory {
	out := r
	out.latestPrune = Latest(p)
	return out
}

// UpdateLatestPrune promotes a Latest(p) record to TrueBranch/
// FalseBranch when lhs is a program variable and rhs is the integer
// literal 1 or 0; any other write demotes latest_prune to Top (spec
// §4.6, §3 invariant "any memory write unrelated to x demotes the
// record to Top").
func (r ReachableMemory) UpdateLatestPrune(lhs, rhs loc.Exp) ReachableMemory {
	out := r
	x, xok := lhs.AsIdent()
	n, nok := rhs.AsConst()
	if xok && nok && (n == 0 || n == 1) && out.latestPrune.kind == pruneLatest {
		p := out.latestPrune.p
		if n == 1 {
			out.latestPrune = TrueBranchOf(x, p)
		} else {
			out.latestPrune = FalseBranchOf(x, p)
		}
		return out
	}
	out.latestPrune = TopLatestPrune()
	return out
}

// Cond is a branch condition as apply_latest_prune needs to see it: a
// bare reference to a temporary, or its logical negation (spec §4.6).
type Cond struct {
	id      loc.Ident
	negated bool
}

// CondVar builds the condition "id is truthy".
func CondVar(id loc.Ident) Cond { return Cond{id: id} }

// CondNot builds the condition "id is falsy" (the logical negation of
// CondVar(id)).
func CondNot(id loc.Ident) Cond { return Cond{id: id, negated: true} }

// ApplyLatestPrune folds the matching side of a V(x, p_true, p_false)
// record back into memory when cond names a temporary the alias map
// says currently equals x (spec §4.6).
func (r ReachableMemory) ApplyLatestPrune(cond Cond) ReachableMemory {
	if r.latestPrune.kind != pruneV {
		return r
	}
	x, _ := r.latestPrune.BoundVar()
	target, found := r.alias.Map.Find(cond.id)
	if !found || !target.IsSimple() || target.Loc() != loc.OfIdent(x) {
		return r
	}
	p := r.latestPrune.pTrue
	if cond.negated {
		p = r.latestPrune.pFalse
	}
	out := r
	p.Fold(func(l loc.Loc, v val.Value) {
		out = out.UpdateMem(loc.Singleton(l), v)
	})
	return out
}

// ---- Reachability (spec §4.6) ----

// GetReachableLocsFrom is the smallest location set containing roots
// and closed under "if l is in, add get_all_locs(mem_pure[l]) and
// every field-of-l" (spec §4.6).
func (r ReachableMemory) GetReachableLocsFrom(roots []loc.Loc) loc.PowLoc {
	visited := loc.PowLocBot()
	var stack []loc.Loc
	push := func(l loc.Loc) {
		if !visited.Mem(l) {
			visited = visited.Add(l)
			stack = append(stack, l)
		}
	}
	for _, rt := range roots {
		push(rt)
	}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if v, ok := r.FindOpt(l); ok {
			v.GetAllLocs().Fold(push)
		}
		base := l.String()
		r.memPure.Fold(func(k loc.Loc, _ val.Value) {
			if b, isField := k.FieldBase(); isField && b == base {
				push(k)
			}
		})
	}
	return visited
}

// ---- Relational store delegation (spec §4.6) ----

func (r ReachableMemory) IsRelationUnsat() bool { return r.rel.IsUnsat() }

func (r ReachableMemory) MeetConstraints(cs []relation.Constraint) ReachableMemory {
	out := r
	out.rel = r.rel.MeetConstraints(cs)
	return out
}

// StoreRelation asserts that every location in p currently shares
// symVal/symOff/symSize as its value/offset/size relational symbol,
// delegating the bookkeeping to Relation.meet_constraints (spec §4.6,
// §6).
func (r ReachableMemory) StoreRelation(p loc.PowLoc, symVal, symOff, symSize relation.Sym) ReachableMemory {
	var cs []relation.Constraint
	p.Fold(func(l loc.Loc) {
		cs = append(cs,
			relation.Constraint{A: relation.OfLoc(l), B: symVal, Diff: 0},
			relation.Constraint{A: relation.OfLocOffset(l), B: symOff, Diff: 0},
			relation.Constraint{A: relation.OfLocSize(l), B: symSize, Diff: 0},
		)
	})
	return r.MeetConstraints(cs)
}

func (r ReachableMemory) ForgetLocs(locs []loc.Loc) ReachableMemory {
	out := r
	out.rel = r.rel.ForgetLocs(locs)
	return out
}

func (r ReachableMemory) InitParamRelation(l loc.Loc) ReachableMemory {
	out := r
	out.rel = r.rel.InitParam(l)
	return out
}

func (r ReachableMemory) InitArrayRelation(site loc.Allocsite, offset, size itv.Itv, sizeConst *int64) ReachableMemory {
	out := r
	out.rel = r.rel.InitArray(site, offset, size, sizeConst)
	return out
}

// InstantiateRelation specializes caller's relational store with
// callee's constraints renamed through m at a call site (spec §4.6,
// §4.7); the Memory-level bottom-lift short-circuits before this is
// ever called with a bottom callee.
func InstantiateRelation(m relation.SubstMap, caller, callee ReachableMemory) ReachableMemory {
	out := caller
	out.rel = relation.Instantiate(m, caller.rel, callee.rel)
	return out
}

// ---- Lattice (spec §8: universal lattice laws apply to ReachableMemory too) ----

func (r ReachableMemory) Leq(o ReachableMemory) bool {
	return r.stackLocs.Leq(o.stackLocs) &&
		r.memPure.Leq(o.memPure) &&
		r.alias.Leq(o.alias) &&
		r.latestPrune.Leq(o.latestPrune) &&
		r.rel.Leq(o.rel)
}

func (r ReachableMemory) Join(o ReachableMemory) ReachableMemory {
	return ReachableMemory{
		stackLocs:   r.stackLocs.Join(o.stackLocs),
		memPure:     r.memPure.Join(o.memPure),
		alias:       r.alias.Join(o.alias),
		latestPrune: r.latestPrune.Join(o.latestPrune),
		rel:         r.rel.Join(o.rel),
	}
}

func (r ReachableMemory) Widen(o ReachableMemory, numIters int) ReachableMemory {
	return ReachableMemory{
		stackLocs:   r.stackLocs.Widen(o.stackLocs, numIters),
		memPure:     r.memPure.Widen(o.memPure, numIters),
		alias:       r.alias.Widen(o.alias, numIters),
		latestPrune: r.latestPrune.Widen(o.latestPrune, numIters),
		rel:         r.rel.Widen(o.rel, numIters),
	}
}

func (r ReachableMemory) String() string {
	return fmt.Sprintf("{stack=%s, mem=%s, alias=%s, prune=%s, rel=%s}",
		r.stackLocs, r.memPure, r.alias, r.latestPrune, r.rel)
}

// DebugString renders prune pairs and latest-prune state as a
// human-readable report, gated by cfg.WriteHTML the same way
// logging.Note is: a diagnostic for the HTML debug report, never
// consulted by any lattice operation.
func (r ReachableMemory) DebugString(cfg *config.Configuration) string {
	if !cfg.HTMLNotesEnabled() {
		return ""
	}
	return fmt.Sprintf("latest_prune: %s\nalias: %s", r.latestPrune, r.alias)
}
