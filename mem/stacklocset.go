// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/go-interpreter/absint/loc"
)

// StackLocSet is the set of locations bound to the current frame's
// stack (spec §3): membership affects ReachableMemory's read-default
// and strong-update policy.
type StackLocSet struct {
	locs *immutable.Map[loc.Loc, struct{}]
}

// EmptyStackLocSet is the bottom element: no locations on the stack.
func EmptyStackLocSet() StackLocSet {
	return StackLocSet{locs: immutable.NewMap[loc.Loc, struct{}](locHash)}
}

func (s StackLocSet) base() *immutable.Map[loc.Loc, struct{}] {
	if s.locs == nil {
		return immutable.NewMap[loc.Loc, struct{}](locHash)
	}
	return s.locs
}

// Contains reports whether l is bound on the current frame's stack.
func (s StackLocSet) Contains(l loc.Loc) bool {
	if s.locs == nil {
		return false
	}
	_, ok := s.locs.Get(l)
	return ok
}

// Add returns s ∪ {l}.
func (s StackLocSet) Add(l loc.Loc) StackLocSet {
	return StackLocSet{locs: s.base().Set(l, struct{}{})}
}

// Len returns the number of stack locations.
func (s StackLocSet) Len() int {
	if s.locs == nil {
		return 0
	}
	return s.locs.Len()
}

// ToSlice returns s's locations sorted by Loc.Less, for deterministic
// iteration in tests and debug output.
func (s StackLocSet) ToSlice() []loc.Loc {
	if s.locs == nil {
		return nil
	}
	out := make([]loc.Loc, 0, s.locs.Len())
	itr := s.locs.Iterator()
	for !itr.Done() {
		k, _ := itr.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Leq reports s ⊆ o.
func (s StackLocSet) Leq(o StackLocSet) bool {
	for _, l := range s.ToSlice() {
		if !o.Contains(l) {
			return false
		}
	}
	return true
}

// Join is set union.
func (s StackLocSet) Join(o StackLocSet) StackLocSet {
	out := s
	for _, l := range o.ToSlice() {
		out = out.Add(l)
	}
	return out
}

// Widen has no dedicated operator: the stack location set for one
// procedure body is bounded by its (finite) set of local variables, so
// plain join already has finite height.
func (s StackLocSet) Widen(o StackLocSet, _ int) StackLocSet { return s.Join(o) }

func (s StackLocSet) String() string {
	var parts []string
	for _, l := range s.ToSlice() {
		parts = append(parts, l.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
