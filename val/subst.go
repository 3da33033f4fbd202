// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import (
	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/relation"
	"github.com/go-interpreter/absint/trace"
)

// Subst bundles everything Substitute needs to specialize a callee
// value against a caller's memory at a call site: a binding from
// callee interval-symbols to caller bounds, a binding from callee
// relational symbols to caller ones, and a way to look up the
// caller-side traces that justify a given interval symbol's value.
type Subst struct {
	Itv     itv.SubstMap
	Rel     relation.SubstMap
	TraceOf func(itv.Symbol) trace.Set
}

// Substitute specializes v (a callee-side value) against Subst at
// call site callSite, per spec §4.1:
//   - collect every symbol mentioned in v.itv and v.arrayblk;
//   - look up each one's caller trace via TraceOf and join them;
//   - build a new trace set call(call_site, caller_traces, v.traces);
//   - apply Itv/Rel substitution to every sub-component;
//   - normalize, mapping any sub-component that became bottom to the
//     joined bottom.
func (v Value) Substitute(s Subst, callSite trace.Location) Value {
	syms := v.itv.GetSymbols().Union(v.arrblk.GetSymbols())
	callerTraces := trace.Empty()
	for _, sym := range syms.ToSlice() {
		callerTraces = callerTraces.Join(s.TraceOf(sym))
	}

	out := Value{
		itv:                      v.itv.Subst(s.Itv),
		sym:                      s.Rel.Rename(v.sym),
		powloc:                   v.powloc, // locations are not renamed: spec leaves location substitution external
		arrblk:                   v.arrblk.Subst(s.Itv).Normalize(),
		offsetSym:                s.Rel.Rename(v.offsetSym),
		sizeSym:                  s.Rel.Rename(v.sizeSym),
		traces:                   trace.Call(callSite, callerTraces, v.traces),
		RepresentsMultipleValues: v.RepresentsMultipleValues,
	}

	if out.itv.IsEmpty() && out.arrblk.IsBot() && out.powloc.IsBot() {
		out.sym = relation.Bot()
		out.offsetSym = relation.Bot()
		out.sizeSym = relation.Bot()
	}
	return out
}
