// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/relation"
	"github.com/go-interpreter/absint/trace"
	"github.com/go-interpreter/absint/val"
)

// Memory is the bottom-lift of ReachableMemory spec §3, §4.7
// describes: Bottom ⊔ { NonBottom(ReachableMemory) }, where Bottom
// denotes an unreachable program point. Every ReachableMemory
// operation gets a wrapper here that short-circuits to a documented
// default on Bottom rather than delegating.
type Memory struct {
	bottom bool
	r      ReachableMemory
}

// Bottom is the unreachable-program-point memory.
func Bottom() Memory { return Memory{bottom: true} }

// Init is the entry-point memory (spec §3 Lifecycle).
func Init() Memory { return NonBottom(InitReachableMemory()) }

// NonBottom lifts a concrete ReachableMemory.
func NonBottom(r ReachableMemory) Memory { return Memory{r: r} }

// IsBottom reports whether m denotes an unreachable program point.
func (m Memory) IsBottom() bool { return m.bottom }

// Reachable returns m's ReachableMemory and true, when m is not
// Bottom.
func (m Memory) Reachable() (ReachableMemory, bool) { return m.r, !m.bottom }

// lift wraps a ReachableMemory -> ReachableMemory transfer, defaulting
// to Bottom (a write to an unreachable point stays unreachable).
func (m Memory) lift(f func(ReachableMemory) ReachableMemory) Memory {
	if m.bottom {
		return m
	}
	return NonBottom(f(m.r))
}

// ---- Read discipline ----

func (m Memory) IsStackLoc(l loc.Loc) bool {
	if m.bottom {
		return false
	}
	return m.r.IsStackLoc(l)
}

func (m Memory) FindOpt(l loc.Loc) (val.Value, bool) {
	if m.bottom {
		return val.Bot(), false
	}
	return m.r.FindOpt(l)
}

func (m Memory) FindStack(l loc.Loc) val.Value {
	if m.bottom {
		return val.Bot()
	}
	return m.r.FindStack(l)
}

func (m Memory) FindHeap(l loc.Loc) val.Value {
	if m.bottom {
		return val.Bot()
	}
	return m.r.FindHeap(l)
}

func (m Memory) Find(l loc.Loc) val.Value {
	if m.bottom {
		return val.Bot()
	}
	return m.r.Find(l)
}

func (m Memory) FindSet(p loc.PowLoc) val.Value {
	if m.bottom {
		return val.Bot()
	}
	return m.r.FindSet(p)
}

// ---- Write discipline ----

func (m Memory) AddStack(l loc.Loc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.AddStack(l, v) })
}

func (m Memory) ReplaceStack(l loc.Loc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.ReplaceStack(l, v) })
}

func (m Memory) AddHeap(l loc.Loc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.AddHeap(l, v) })
}

func (m Memory) StrongUpdate(p loc.PowLoc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.StrongUpdate(p, v) })
}

func (m Memory) WeakUpdate(p loc.PowLoc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.WeakUpdate(p, v) })
}

func (m Memory) CanStrongUpdate(p loc.PowLoc) bool {
	if m.bottom {
		return false
	}
	return m.r.CanStrongUpdate(p)
}

func (m Memory) UpdateMem(p loc.PowLoc, v val.Value) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.UpdateMem(p, v) })
}

func (m Memory) TransformMem(f func(val.Value) val.Value, p loc.PowLoc) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.TransformMem(f, p) })
}

// ---- Unknown calls ----

func (m Memory) AddUnknownFrom(id loc.Ident, callee string, hasCallee bool, location trace.Location) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory {
		return r.AddUnknownFrom(id, callee, hasCallee, location)
	})
}

// ---- Pruning integration ----

func (m Memory) SetPrunePairs(p PrunePairs) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.SetPrunePairs(p) })
}

func (m Memory) UpdateLatestPrune(lhs, rhs loc.Exp) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.UpdateLatestPrune(lhs, rhs) })
}

func (m Memory) ApplyLatestPrune(cond Cond) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.ApplyLatestPrune(cond) })
}

// ---- Reachability ----

func (m Memory) GetReachableLocsFrom(roots []loc.Loc) loc.PowLoc {
	if m.bottom {
		return loc.PowLocEmpty()
	}
	return m.r.GetReachableLocsFrom(roots)
}

// ---- Relational store delegation ----

func (m Memory) GetRelation() relation.Store {
	if m.bottom {
		return relation.BotStore()
	}
	return m.r.Relation()
}

func (m Memory) IsRelationUnsat() bool {
	if m.bottom {
		return false
	}
	return m.r.IsRelationUnsat()
}

func (m Memory) MeetConstraints(cs []relation.Constraint) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.MeetConstraints(cs) })
}

func (m Memory) StoreRelation(p loc.PowLoc, symVal, symOff, symSize relation.Sym) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.StoreRelation(p, symVal, symOff, symSize) })
}

func (m Memory) ForgetLocs(locs []loc.Loc) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.ForgetLocs(locs) })
}

func (m Memory) InitParamRelation(l loc.Loc) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.InitParamRelation(l) })
}

func (m Memory) InitArrayRelation(site loc.Allocsite, offset, size itv.Itv, sizeConst *int64) Memory {
	return m.lift(func(r ReachableMemory) ReachableMemory { return r.InitArrayRelation(site, offset, size, sizeConst) })
}

// InstantiateRelation specializes caller (m) against callee at a call
// site. Per spec §4.7, when callee is Bottom the caller is returned
// unchanged; when the caller is Bottom there is nothing to specialize
// either way.
func (m Memory) InstantiateRelation(s relation.SubstMap, callee Memory) Memory {
	if callee.bottom || m.bottom {
		return m
	}
	return NonBottom(InstantiateRelation(s, m.r, callee.r))
}

// ---- Lattice ----

func (m Memory) Leq(o Memory) bool {
	if m.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	return m.r.Leq(o.r)
}

func (m Memory) Join(o Memory) Memory {
	if m.bottom {
		return o
	}
	if o.bottom {
		return m
	}
	return NonBottom(m.r.Join(o.r))
}

func (m Memory) Widen(o Memory, numIters int) Memory {
	if m.bottom {
		return o
	}
	if o.bottom {
		return m
	}
	return NonBottom(m.r.Widen(o.r, numIters))
}

func (m Memory) String() string {
	if m.bottom {
		return "bottom"
	}
	return m.r.String()
}

// DebugString delegates to ReachableMemory.DebugString, returning ""
// for Bottom (nothing to report at an unreachable point).
func (m Memory) DebugString(cfg *config.Configuration) string {
	if m.bottom {
		return ""
	}
	return m.r.DebugString(cfg)
}
