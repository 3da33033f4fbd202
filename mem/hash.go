// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mem implements the memory lattices spec §3-§4 build on top
// of AbstractValue: PureMemory, StackLocSet, the Alias components,
// PrunePairs, LatestPrune, and the ReachableMemory/Memory records that
// combine them. Every snapshot taken by a transfer function is a
// persistent value built with github.com/benbjohnson/immutable, so
// that two states computed from the same predecessor share the bulk
// of their structure (spec §5, §9: "implementations SHOULD use
// reference-counted persistent maps or path-copying trees").
package mem

import (
	"hash/fnv"

	"github.com/benbjohnson/immutable"

	"github.com/go-interpreter/absint/loc"
)

// locHasher hashes loc.Loc by its rendered string. Loc is a flat,
// pointer-free value type, so two equal Locs always render identically
// and == already agrees with that rendering; the hash only needs to be
// consistent with ==, not injective.
type locHasher struct{}

func (locHasher) Hash(l loc.Loc) uint32 {
	h := fnv.New32a()
	h.Write([]byte(l.String()))
	return h.Sum32()
}

func (locHasher) Equal(a, b loc.Loc) bool { return a == b }

var locHash immutable.Hasher[loc.Loc] = locHasher{}

type identHasher struct{}

func (identHasher) Hash(id loc.Ident) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id.String()))
	return h.Sum32()
}

func (identHasher) Equal(a, b loc.Ident) bool { return a == b }

var identHash immutable.Hasher[loc.Ident] = identHasher{}
