// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import "github.com/go-interpreter/absint/itv"

// binaryOp applies f to the two operands' intervals; every other
// component of the result is bottom, and traces are unioned from
// both operands (spec §4.1: "produces a value whose only non-bottom
// component is the computed interval").
func binaryOp(a, b Value, f func(x, y itv.Itv) itv.Itv) Value {
	out := Bot()
	out.itv = f(a.itv, b.itv)
	out.traces = a.traces.Join(b.traces)
	return out
}

func (v Value) Plus(o Value) Value    { return binaryOp(v, o, itv.Itv.Plus) }
func (v Value) Minus(o Value) Value   { return binaryOp(v, o, itv.Itv.Minus) }
func (v Value) Mult(o Value) Value    { return binaryOp(v, o, itv.Itv.Mult) }
func (v Value) Div(o Value) Value     { return binaryOp(v, o, itv.Itv.Div) }
func (v Value) Mod(o Value) Value     { return binaryOp(v, o, itv.Itv.ModSem) }
func (v Value) ShiftLT(o Value) Value { return binaryOp(v, o, itv.Itv.ShiftLT) }
func (v Value) ShiftRT(o Value) Value { return binaryOp(v, o, itv.Itv.ShiftRT) }
func (v Value) BAnd(o Value) Value    { return binaryOp(v, o, itv.Itv.BAndSem) }

// Neg and LNot are the two unary arithmetic/logical ops.
func (v Value) Neg() Value {
	out := Bot()
	out.itv = v.itv.Neg()
	out.traces = v.traces
	return out
}

func (v Value) LNot() Value {
	out := Bot()
	out.itv = v.itv.LNot()
	out.traces = v.traces
	return out
}

// isNonArrayPointer reports whether v denotes a pointer to a single
// non-array location: non-bottom powloc but no array descriptor.
func (v Value) isNonArrayPointer() bool {
	return !v.powloc.IsBot() && v.arrblk.IsBot()
}

// PlusPointer shifts v's array offset by i.Itv(); when v is a
// pointer-to-non-array, the result becomes a top interval (model
// precision loss) with unioned traces, per spec §4.1.
func (v Value) PlusPointer(i Value) Value {
	if v.isNonArrayPointer() {
		out := TopInterval()
		out.traces = v.traces.Join(i.traces)
		return out
	}
	out := Bot()
	out.arrblk = v.arrblk.PlusOffset(i.itv)
	out.offsetSym = v.offsetSym
	out.sizeSym = v.sizeSym
	out.traces = v.traces.Join(i.traces)
	return out
}

// MinusPointer is PlusPointer with i negated.
func (v Value) MinusPointer(i Value) Value {
	neg := Bot()
	neg.itv = i.itv.Neg()
	neg.traces = i.traces
	return v.PlusPointer(neg)
}

// MinusPointerPointer returns the interval of element-count
// differences between two array pointers; Top if both are
// pointers-to-non-array (spec §4.1).
func (v Value) MinusPointerPointer(o Value) Value {
	if v.isNonArrayPointer() && o.isNonArrayPointer() {
		out := TopInterval()
		out.traces = v.traces.Join(o.traces)
		return out
	}
	out := Bot()
	out.itv = v.arrblk.Diff(o.arrblk)
	out.traces = v.traces.Join(o.traces)
	return out
}
