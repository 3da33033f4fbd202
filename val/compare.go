// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import "github.com/go-interpreter/absint/itv"

// hasPointerInfo reports whether v carries any non-bottom pointer or
// array information, per spec §4.1's comparison rule.
func (v Value) hasPointerInfo() bool {
	return !v.powloc.IsBot() || !v.arrblk.IsBot()
}

// compare applies f to the two operands' intervals unless either
// side carries pointer or array information, in which case the
// result is forced to the top boolean - the domain does not reason
// about pointer-value equality (spec §4.1).
func compare(a, b Value, f func(x, y itv.Itv) itv.Itv) Value {
	out := Bot()
	if a.hasPointerInfo() || b.hasPointerInfo() {
		out.itv = itv.OfBool(itv.TopBool)
	} else {
		out.itv = f(a.itv, b.itv)
	}
	out.traces = a.traces.Join(b.traces)
	return out
}

func (v Value) Lt(o Value) Value { return compare(v, o, itv.Itv.Lt) }
func (v Value) Le(o Value) Value { return compare(v, o, itv.Itv.Le) }
func (v Value) Gt(o Value) Value { return compare(v, o, itv.Itv.Gt) }
func (v Value) Ge(o Value) Value { return compare(v, o, itv.Itv.Ge) }
func (v Value) Eq(o Value) Value { return compare(v, o, itv.Itv.Eq) }
func (v Value) Ne(o Value) Value { return compare(v, o, itv.Itv.Ne) }

func (v Value) LogicalAnd(o Value) Value { return compare(v, o, itv.Itv.LogicalAnd) }
func (v Value) LogicalOr(o Value) Value  { return compare(v, o, itv.Itv.LogicalOr) }
