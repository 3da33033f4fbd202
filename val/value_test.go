// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package val

import (
	"testing"

	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/trace"
)

func TestArithmeticOnInts(t *testing.T) {
	got := OfInt(2).Plus(OfInt(3))
	want := OfInt(5)
	if !got.itv.Leq(want.itv) || !want.itv.Leq(got.itv) {
		t.Errorf("2+3 = %v, want %v", got.itv, want.itv)
	}
}

func TestComparisonWithPointerYieldsTopBool(t *testing.T) {
	ptr := OfLocation(loc.OfVar("x"))
	got := ptr.Lt(OfInt(3))
	want := itv.OfBool(itv.TopBool)
	if !got.itv.Leq(want) || !want.Leq(got.itv) {
		t.Errorf("lt(ptr, 3).itv = %v, want %v", got.itv, want)
	}
}

func TestGetAllLocsOfLocation(t *testing.T) {
	l := loc.OfVar("x")
	v := OfLocation(l)
	locs := v.GetAllLocs()
	if !locs.Mem(l) || len(locs.ToSlice()) != 1 {
		t.Errorf("GetAllLocs(of_location(l)) = %v, want {%v}", locs, l)
	}
}

func TestPlusPointerOnArray(t *testing.T) {
	site := loc.NewAllocsite("a")
	arr2 := OfArrayAlloc(site, itv.OfInt(1), itv.OfInt(0), itv.OfInt(10), trace.Empty())
	shifted := arr2.PlusPointer(OfInt(3))
	e, ok := shifted.ArrayBlk().Get(site)
	if !ok {
		t.Fatalf("missing array entry after PlusPointer")
	}
	if c, ok := e.Offset.Lower().AsConst(); !ok || c.Int64() != 3 {
		t.Errorf("offset lower = %v, want 3", e.Offset.Lower())
	}
}

func TestPlusPointerOnNonArrayPointerLosesPrecision(t *testing.T) {
	v := OfLocation(loc.OfVar("x"))
	got := v.PlusPointer(OfInt(3))
	if !got.itv.Leq(itv.Top()) || got.itv.IsEmpty() {
		t.Errorf("plus_pointer on non-array pointer should be top interval, got %v", got.itv)
	}
	if !got.arrblk.IsBot() {
		t.Errorf("plus_pointer on non-array pointer should have bottom arrayblk")
	}
}

func TestSetArrayLength(t *testing.T) {
	site := loc.NewAllocsite("a")
	v := OfArrayAlloc(site, itv.OfInt(4), itv.OfInt(0), itv.OfInt(10), trace.Empty())
	grown := SetArrayLength(trace.Location("L"), itv.OfInt(20), v)
	e, _ := grown.ArrayBlk().Get(site)
	if !e.Size.EqConst(20) {
		t.Errorf("SetArrayLength size = %v, want {20}", e.Size)
	}
	if grown.traces.Size() != v.traces.Size()+1 {
		t.Errorf("SetArrayLength should append one trace element")
	}
}

func TestMakeSymbolic(t *testing.T) {
	symtab := itv.NewSymbolTable()
	path := itv.SymbolPath{Normal: "a", RepresentsMultipleValues: true}
	v := MakeSymbolic(loc.OfVar("a"), symtab, path, trace.Location("L"), false)
	if v.itv.GetSymbols().IsEmpty() {
		t.Fatalf("make_symbolic should produce a non-empty symbol set")
	}
	if v.traces.Size() != 1 {
		t.Errorf("make_symbolic traces size = %d, want 1", v.traces.Size())
	}
	if !v.RepresentsMultipleValues {
		t.Errorf("RepresentsMultipleValues should follow path.RepresentsMultipleValues")
	}
}

func TestPruneMultiValuedNoteDoesNotChangeSemantics(t *testing.T) {
	cfg := &config.Configuration{WriteHTML: true}
	v := OfInterval(itv.OfInt(-5).Join(itv.OfInt(5)), trace.Empty())
	v.RepresentsMultipleValues = true
	got := v.PruneEqZero(cfg)
	want := v.PruneEqZero(nil)
	if !got.itv.Leq(want.itv) || !want.itv.Leq(got.itv) {
		t.Errorf("debug flag should not change PruneEqZero's result")
	}
}
