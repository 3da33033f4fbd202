// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arrayblk implements ArrayBlk, the array-descriptor lattice
// spec §6 names as an external collaborator: for each allocation
// site an array-typed value might denote, a stride, an offset
// interval, and a size interval.
package arrayblk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-interpreter/absint/itv"
	"github.com/go-interpreter/absint/loc"
)

// Entry is the per-allocation-site record.
type Entry struct {
	Stride itv.Itv // element size; usually a constant, rarely symbolic
	Offset itv.Itv // byte/element offset of the current pointer within the array
	Size   itv.Itv // number of elements in the array
}

func (e Entry) join(o Entry) Entry {
	return Entry{
		Stride: e.Stride.Join(o.Stride),
		Offset: e.Offset.Join(o.Offset),
		Size:   e.Size.Join(o.Size),
	}
}

func (e Entry) leq(o Entry) bool {
	return e.Stride.Leq(o.Stride) && e.Offset.Leq(o.Offset) && e.Size.Leq(o.Size)
}

func (e Entry) widen(o Entry, n int) Entry {
	return Entry{
		Stride: e.Stride.Widen(o.Stride, n),
		Offset: e.Offset.Widen(o.Offset, n),
		Size:   e.Size.Widen(o.Size, n),
	}
}

// ArrayBlk maps each allocation site an array-typed value might
// denote to its Entry. The zero value is Bot (no allocation sites).
type ArrayBlk struct {
	entries map[loc.Allocsite]Entry
}

// Bot is the empty descriptor: "this value is not, as far as we
// know, a pointer into any array".
func Bot() ArrayBlk { return ArrayBlk{} }

// IsBot reports whether a carries no allocation sites.
func (a ArrayBlk) IsBot() bool { return len(a.entries) == 0 }

// Make builds a single-allocation-site descriptor. stride defaults
// to itv.Nat() (the "natural-number interval") when the caller passes
// itv.Bot(), matching spec §4.1's of_array_alloc default.
func Make(site loc.Allocsite, stride, offset, size itv.Itv) ArrayBlk {
	if stride.IsEmpty() {
		stride = itv.Nat()
	}
	return ArrayBlk{entries: map[loc.Allocsite]Entry{site: {Stride: stride, Offset: offset, Size: size}}}
}

// Sites returns a's allocation sites sorted by string rendering, for
// deterministic iteration.
func (a ArrayBlk) Sites() []loc.Allocsite {
	out := make([]loc.Allocsite, 0, len(a.entries))
	for s := range a.entries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Get returns the Entry for site, and whether it is present.
func (a ArrayBlk) Get(site loc.Allocsite) (Entry, bool) {
	e, ok := a.entries[site]
	return e, ok
}

func (a ArrayBlk) mapEntries(f func(Entry) Entry) ArrayBlk {
	if a.IsBot() {
		return a
	}
	out := make(map[loc.Allocsite]Entry, len(a.entries))
	for s, e := range a.entries {
		out[s] = f(e)
	}
	return ArrayBlk{entries: out}
}

// SetLength replaces the size interval of every allocation site in a
// with len, per spec §4.1 set_array_length.
func (a ArrayBlk) SetLength(length itv.Itv) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry { e.Size = length; return e })
}

// SetStride replaces the stride of every allocation site in a with
// newStride, when it differs from the current one (spec §4.1
// set_array_stride).
func (a ArrayBlk) SetStride(newStride itv.Itv) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry {
		if e.Stride.Leq(newStride) && newStride.Leq(e.Stride) {
			return e
		}
		e.Stride = newStride
		return e
	})
}

// Strideof returns the join of every allocation site's stride.
func (a ArrayBlk) Strideof() itv.Itv {
	acc := itv.Bot()
	for _, e := range a.entries {
		acc = acc.Join(e.Stride)
	}
	return acc
}

// GetPowLoc returns the set of per-allocation-site base locations a
// denotes, used by AbstractValue.get_all_locs.
func (a ArrayBlk) GetPowLoc() loc.PowLoc {
	p := loc.PowLocBot()
	for _, site := range a.Sites() {
		p = p.Add(loc.OfAllocsite(site))
	}
	return p
}

// GetSymbols returns every symbol mentioned by any entry's bounds.
func (a ArrayBlk) GetSymbols() itv.SymbolSet {
	out := itv.EmptySymbolSet()
	for _, e := range a.entries {
		out = out.Union(e.Stride.GetSymbols()).Union(e.Offset.GetSymbols()).Union(e.Size.GetSymbols())
	}
	return out
}

// Leq is the pointwise sub-map order: every site in a must be present
// in o with a leq entry. (ArrayBlk is not inverted like PrunePairs:
// more sites is more information, same direction as PureMemory.)
func (a ArrayBlk) Leq(o ArrayBlk) bool {
	for s, e := range a.entries {
		oe, ok := o.entries[s]
		if !ok || !e.leq(oe) {
			return false
		}
	}
	return true
}

// Join unions the allocation sites and pointwise-joins shared ones.
func (a ArrayBlk) Join(o ArrayBlk) ArrayBlk {
	if a.IsBot() {
		return o
	}
	if o.IsBot() {
		return a
	}
	out := make(map[loc.Allocsite]Entry, len(a.entries)+len(o.entries))
	for s, e := range a.entries {
		out[s] = e
	}
	for s, e := range o.entries {
		if cur, ok := out[s]; ok {
			out[s] = cur.join(e)
		} else {
			out[s] = e
		}
	}
	return ArrayBlk{entries: out}
}

// Widen widens the shared sites and keeps new ones as-is (a site that
// appears only in next will be widened against Bot on the next round
// by the fixed-point engine's own iteration, which is sound since Bot
// is the identity for that site's first appearance).
func (a ArrayBlk) Widen(o ArrayBlk, n int) ArrayBlk {
	if a.IsBot() {
		return o
	}
	if o.IsBot() {
		return a
	}
	out := make(map[loc.Allocsite]Entry, len(a.entries)+len(o.entries))
	for s, e := range a.entries {
		out[s] = e
	}
	for s, e := range o.entries {
		if cur, ok := out[s]; ok {
			out[s] = cur.widen(e, n)
		} else {
			out[s] = e
		}
	}
	return ArrayBlk{entries: out}
}

// PlusOffset shifts every entry's offset interval by i.
func (a ArrayBlk) PlusOffset(i itv.Itv) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry { e.Offset = e.Offset.Plus(i); return e })
}

// MinusOffset shifts every entry's offset interval by -i.
func (a ArrayBlk) MinusOffset(i itv.Itv) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry { e.Offset = e.Offset.Minus(i); return e })
}

// Diff returns the interval of possible element-count differences
// between two pointers into the same allocation sites (spec §4.1
// minus_pointer_pointer, array/array branch). Sites present in only
// one side do not contribute (their difference is not well defined).
func (a ArrayBlk) Diff(o ArrayBlk) itv.Itv {
	acc := itv.Bot()
	for s, e := range a.entries {
		oe, ok := o.entries[s]
		if !ok {
			continue
		}
		acc = acc.Join(e.Offset.Minus(oe.Offset))
	}
	return acc
}

// PruneComp narrows every entry's size interval using op against o's
// size, used by bounds-check pruning (spec §4.1 prune_comp).
func (a ArrayBlk) PruneComp(op itv.CompOp, o ArrayBlk) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry {
		bound := itv.Bot()
		for _, oe := range o.entries {
			bound = bound.Join(oe.Size)
		}
		if bound.IsEmpty() {
			return e
		}
		e.Size = e.Size.PruneComp(op, bound)
		return e
	})
}

// PruneEq and PruneNe narrow every entry's size interval by the meet
// (resp. the PruneNe rule) against the join of o's size intervals.
func (a ArrayBlk) PruneEq(o ArrayBlk) ArrayBlk {
	bound := itv.Bot()
	for _, oe := range o.entries {
		bound = bound.Join(oe.Size)
	}
	return a.mapEntries(func(e Entry) Entry {
		if bound.IsEmpty() {
			return e
		}
		e.Size = e.Size.PruneEq(bound)
		return e
	})
}

func (a ArrayBlk) PruneNe(o ArrayBlk) ArrayBlk {
	bound := itv.Bot()
	for _, oe := range o.entries {
		bound = bound.Join(oe.Size)
	}
	return a.mapEntries(func(e Entry) Entry {
		if bound.IsEmpty() {
			return e
		}
		e.Size = e.Size.PruneNe(bound)
		return e
	})
}

// Subst rewrites every entry's bounds per m, per spec §4.1 substitute.
func (a ArrayBlk) Subst(m itv.SubstMap) ArrayBlk {
	return a.mapEntries(func(e Entry) Entry {
		return Entry{Stride: e.Stride.Subst(m), Offset: e.Offset.Subst(m), Size: e.Size.Subst(m)}
	})
}

// Normalize drops any entry whose size or offset collapsed to bottom,
// since such an entry no longer denotes a reachable array.
func (a ArrayBlk) Normalize() ArrayBlk {
	if a.IsBot() {
		return a
	}
	out := make(map[loc.Allocsite]Entry)
	for s, e := range a.entries {
		e.Offset, e.Size, e.Stride = e.Offset.Normalize(), e.Size.Normalize(), e.Stride.Normalize()
		if e.Offset.IsEmpty() || e.Size.IsEmpty() {
			continue
		}
		out[s] = e
	}
	if len(out) == 0 {
		return Bot()
	}
	return ArrayBlk{entries: out}
}

func (a ArrayBlk) String() string {
	if a.IsBot() {
		return "bot"
	}
	var parts []string
	for _, s := range a.Sites() {
		e := a.entries[s]
		parts = append(parts, fmt.Sprintf("%s{stride=%s, offset=%s, size=%s}", s, e.Stride, e.Offset, e.Size))
	}
	return strings.Join(parts, "; ")
}
