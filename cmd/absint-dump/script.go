// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-interpreter/absint/loc"
	"github.com/go-interpreter/absint/mem"
	"github.com/go-interpreter/absint/trace"
	"github.com/go-interpreter/absint/val"
)

// step is one parsed line of an instruction script.
type step struct {
	lineno int
	raw    string
	apply  func(m mem.Memory) mem.Memory
}

// parseScript reads a tiny line-based instruction language used to
// exercise the domain end to end, one Memory transition per line:
//
//	stack x = 5        AddStack(x, of_int(5))
//	heap g = 5          AddHeap(g, of_int(5))
//	update x = 7        UpdateMem({x}, of_int(7))
//	unknown t = memcpy   AddUnknownFrom(t, "memcpy", here)
//	forget x             ForgetLocs({x})
//
// Blank lines and lines starting with # are ignored.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		s, err := parseLine(lineno, raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		steps = append(steps, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseLine(lineno int, raw string) (step, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return step{}, fmt.Errorf("empty instruction")
	}

	switch fields[0] {
	case "stack", "heap", "update":
		name, n, err := parseAssign(fields[1:])
		if err != nil {
			return step{}, err
		}
		l := loc.OfVar(name)
		return step{lineno: lineno, raw: raw, apply: func(m mem.Memory) mem.Memory {
			switch fields[0] {
			case "stack":
				return m.AddStack(l, val.OfInt(n))
			case "heap":
				return m.AddHeap(l, val.OfInt(n))
			default:
				return m.UpdateMem(loc.Singleton(l), val.OfInt(n))
			}
		}}, nil

	case "unknown":
		if len(fields) != 4 || fields[2] != "=" {
			return step{}, fmt.Errorf("want: unknown <name> = <callee>")
		}
		id := loc.NewIdent(fields[1])
		callee := fields[3]
		here := trace.Location(fmt.Sprintf("script.txt:%d", lineno))
		return step{lineno: lineno, raw: raw, apply: func(m mem.Memory) mem.Memory {
			return m.AddUnknownFrom(id, callee, true, here)
		}}, nil

	case "forget":
		if len(fields) != 2 {
			return step{}, fmt.Errorf("want: forget <name>")
		}
		l := loc.OfVar(fields[1])
		return step{lineno: lineno, raw: raw, apply: func(m mem.Memory) mem.Memory {
			return m.ForgetLocs([]loc.Loc{l})
		}}, nil

	default:
		return step{}, fmt.Errorf("unknown instruction %q", fields[0])
	}
}

func parseAssign(fields []string) (name string, n int64, err error) {
	if len(fields) != 3 || fields[1] != "=" {
		return "", 0, fmt.Errorf("want: <name> = <int>")
	}
	n, err = strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad integer %q: %w", fields[2], err)
	}
	return fields[0], n, nil
}
