// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import (
	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/itv"
)

// PruneEqZero and PruneNeZero refine the interval only (spec §4.1).
func (v Value) PruneEqZero(cfg *config.Configuration) Value {
	debugNoteMultiValue(cfg, v, "prune_eq_zero")
	out := v
	out.itv = v.itv.PruneEqZero()
	return out
}

func (v Value) PruneNeZero(cfg *config.Configuration) Value {
	debugNoteMultiValue(cfg, v, "prune_ne_zero")
	out := v
	out.itv = v.itv.PruneNeZero()
	return out
}

// PruneComp refines both the interval and the array descriptor (the
// latter used for array-size refinement by bounds tests), per spec
// §4.1.
func (v Value) PruneComp(cfg *config.Configuration, op itv.CompOp, o Value) Value {
	debugNoteMultiValue(cfg, v, "prune_comp")
	out := v
	out.itv = v.itv.PruneComp(op, o.itv)
	out.arrblk = v.arrblk.PruneComp(op, o.arrblk)
	return out
}

// PruneEq refines both interval and array descriptor.
func (v Value) PruneEq(cfg *config.Configuration, o Value) Value {
	debugNoteMultiValue(cfg, v, "prune_eq")
	out := v
	out.itv = v.itv.PruneEq(o.itv)
	out.arrblk = v.arrblk.PruneEq(o.arrblk)
	return out
}

// PruneNe refines both interval and array descriptor.
func (v Value) PruneNe(cfg *config.Configuration, o Value) Value {
	debugNoteMultiValue(cfg, v, "prune_ne")
	out := v
	out.itv = v.itv.PruneNe(o.itv)
	out.arrblk = v.arrblk.PruneNe(o.arrblk)
	return out
}
