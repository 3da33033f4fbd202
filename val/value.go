// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package val implements AbstractValue (spec §3, §4.1): the lattice
// element attached to every location and expression during the
// analysis. It is the largest single component of the domain,
// combining a numeric interval, relational symbols, a pointer-to-
// location set, an array descriptor, and a provenance trace set.
package val

import (
	"fmt"
	"math/big"

	"github.com/go-interpreter/absint/arrayblk"
	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/logging"
	"github.com/go-interpreter/absint/relation"
	"github.com/go-interpreter/absint/trace"
)

// Value is AbstractValue: a product of six lattice components plus
// two scalar fields (spec §3).
type Value struct {
	itv       itv.Itv
	sym       relation.Sym
	powloc    loc.PowLoc
	arrblk    arrayblk.ArrayBlk
	offsetSym relation.Sym
	sizeSym   relation.Sym
	traces    trace.Set

	// RepresentsMultipleValues is true when this value summarizes
	// several concrete cells.
	RepresentsMultipleValues bool
}

// Bot is the bottom element: every component at its own bottom.
func Bot() Value {
	return Value{
		itv:    itv.Bot(),
		sym:    relation.Bot(),
		powloc: loc.PowLocBot(),
		arrblk: arrayblk.Bot(),
		offsetSym: relation.Bot(),
		sizeSym:   relation.Bot(),
		traces:    trace.Empty(),
	}
}

// TopInterval is bottom everywhere except a fully unknown interval.
func TopInterval() Value {
	v := Bot()
	v.itv = itv.Top()
	return v
}

// OfInt builds the singleton-interval value {n}.
func OfInt(n int64) Value {
	v := Bot()
	v.itv = itv.OfInt(n)
	return v
}

// OfBigInt builds the singleton-interval value {n} from an arbitrary
// precision integer.
func OfBigInt(n *big.Int) Value {
	v := Bot()
	v.itv = itv.OfBigInt(n)
	return v
}

// OfInterval lifts a bare interval, optionally tagging it with
// traces.
func OfInterval(i itv.Itv, traces trace.Set) Value {
	v := Bot()
	v.itv = i
	v.traces = traces
	return v
}

// OfLocation builds a pointer value denoting exactly {l}.
func OfLocation(l loc.Loc) Value {
	v := Bot()
	v.powloc = loc.Singleton(l)
	return v
}

// OfPowLoc lifts a location set, tagged with traces.
func OfPowLoc(p loc.PowLoc, traces trace.Set) Value {
	v := Bot()
	v.powloc = p
	v.traces = traces
	return v
}

// OfArrayAlloc builds the value denoting a freshly allocated array:
// stride defaults to itv.Nat() when the caller has no concrete
// stride (itv.Bot()); offsetSym and sizeSym are set to fresh
// relational symbols derived from the allocation site, per spec
// §4.1 of_array_alloc.
func OfArrayAlloc(site loc.Allocsite, stride, offset, size itv.Itv, traces trace.Set) Value {
	v := Bot()
	v.arrblk = arrayblk.Make(site, stride, offset, size)
	v.offsetSym = relation.OfAllocsiteOffset(site)
	v.sizeSym = relation.OfAllocsiteSize(site)
	v.traces = traces
	return v
}

// MakeSymbolic builds a symbolic input value for a formal/unknown
// location l: an interval symbol drawn from symtab, a relational
// symbol naming l, a trace element recording the symbolic
// assignment, and RepresentsMultipleValues derived from path.
func MakeSymbolic(l loc.Loc, symtab *itv.SymbolTable, path itv.SymbolPath, location trace.Location, unsigned bool) Value {
	v := Bot()
	v.itv = itv.MakeSym(path, symtab, unsigned)
	v.sym = relation.OfLoc(l)
	v.traces = trace.Singleton(trace.SymAssign(trace.Location(fmt.Sprint(l)), location))
	v.RepresentsMultipleValues = path.RepresentsMultipleValues
	return v
}

// UnknownFrom builds a top-valued value tagged with an UnknownFrom
// trace, used whenever a call to an unmodeled procedure returns.
func UnknownFrom(callee string, hasCallee bool, location trace.Location) Value {
	v := TopInterval()
	v.traces = trace.Singleton(trace.UnknownFrom(callee, hasCallee, location))
	return v
}

// Itv, PowLoc, ArrayBlk, Traces expose the six lattice components for
// callers (mem, checkers) that need to inspect them directly.
func (v Value) Itv() itv.Itv             { return v.itv }
func (v Value) PowLoc() loc.PowLoc       { return v.powloc }
func (v Value) ArrayBlk() arrayblk.ArrayBlk { return v.arrblk }
func (v Value) Sym() relation.Sym        { return v.sym }
func (v Value) OffsetSym() relation.Sym  { return v.offsetSym }
func (v Value) SizeSym() relation.Sym    { return v.sizeSym }
func (v Value) Traces() trace.Set        { return v.traces }

// WithSym, WithOffsetSym, WithSizeSym return a copy of v with the
// given relational symbol materialized; used by ReachableMemory's
// AddHeap (spec §4.6) to name a fresh heap cell's value/offset/size.
func (v Value) WithSym(s relation.Sym) Value       { v.sym = s; return v }
func (v Value) WithOffsetSym(s relation.Sym) Value { v.offsetSym = s; return v }
func (v Value) WithSizeSym(s relation.Sym) Value   { v.sizeSym = s; return v }

// GetAllLocs returns every location v may point to, directly via
// powloc or indirectly via its array descriptor's per-allocation-site
// base locations (spec §3: get_all_locs(v) = powloc(v) ∪
// locations(arrayblk(v))).
func (v Value) GetAllLocs() loc.PowLoc {
	return v.powloc.Union(v.arrblk.GetPowLoc())
}

// IsBot reports whether every component of v is bottom.
func (v Value) IsBot() bool {
	return v.itv.IsEmpty() && v.powloc.IsBot() && v.arrblk.IsBot() &&
		v.sym.IsBot() && v.offsetSym.IsBot() && v.sizeSym.IsBot() && v.traces.IsEmpty()
}

// SetArrayLength replaces v's array size interval with length and
// appends an ArrDecl trace element (spec §4.1).
func SetArrayLength(location trace.Location, length itv.Itv, v Value) Value {
	out := v
	out.arrblk = v.arrblk.SetLength(length)
	out.traces = v.traces.AddElem(trace.ArrDecl(location))
	return out
}

// SetArrayStride replaces v's stride if it differs from newStride
// (spec §4.1).
func SetArrayStride(newStride itv.Itv, v Value) Value {
	out := v
	out.arrblk = v.arrblk.SetStride(newStride)
	return out
}

// debugNoteMultiValue logs the "pruned a multi-valued slot" note
// spec §4.1/§7 describes as diagnostic-only: it never changes the
// returned value, only what is logged when cfg.WriteHTML is set.
func debugNoteMultiValue(cfg *config.Configuration, v Value, op string) {
	if !v.RepresentsMultipleValues {
		return
	}
	logging.Note(cfg, "pruned a multi-valued slot", map[string]interface{}{"op": op})
}

func (v Value) String() string {
	return fmt.Sprintf("{itv=%s, sym=%s, powloc=%s, arr=%s, offsetSym=%s, sizeSym=%s, multi=%v}",
		v.itv, v.sym, v.powloc, v.arrblk, v.offsetSym, v.sizeSym, v.RepresentsMultipleValues)
}
