// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/mem"
	"github.com/go-interpreter/absint/val"
)

func TestParseScriptRunsEveryInstruction(t *testing.T) {
	src := `
# a comment, then a blank line

stack x = 5
heap g = 7
update x = 9
unknown t = memcpy
forget g
`
	steps, err := parseScript(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("got %d steps, want 5", len(steps))
	}

	m := mem.Init()
	for _, s := range steps {
		m = s.apply(m)
	}

	x := loc.OfVar("x")
	got := m.Find(x)
	if !got.Leq(val.OfInt(9)) || !val.OfInt(9).Leq(got) {
		t.Errorf("x = %v, want 9", got)
	}

	tv := m.Find(loc.OfIdent(loc.NewIdent("t")))
	if tv.Traces().IsEmpty() {
		t.Errorf("unknown-call result should carry a trace")
	}
}

func TestParseScriptRejectsBadSyntax(t *testing.T) {
	for _, src := range []string{
		"stack x 5\n",
		"unknown t\n",
		"frobnicate x\n",
		"stack x = abc\n",
	} {
		if _, err := parseScript(strings.NewReader(src)); err == nil {
			t.Errorf("parseScript(%q) should have failed", src)
		}
	}
}
