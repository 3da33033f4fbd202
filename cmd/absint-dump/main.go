// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command absint-dump runs a tiny hand-written instruction script
// against the abstract memory domain and prints the Memory lattice
// element after each instruction, the way wasm-dump walks a module's
// sections. It is not a SIL/CFG front-end: the script format is a
// minimal stand-in for a real program, just enough to drive every
// operation in the mem package at least once.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-interpreter/absint/config"
	"github.com/go-interpreter/absint/logging"
	"github.com/go-interpreter/absint/mem"
)

var (
	flagVerbose bool
	flagQuiet   bool
)

func main() {
	root := &cobra.Command{
		Use:   "absint-dump <script>",
		Short: "Run a memory-domain instruction script and print the lattice trace",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVarP(&flagVerbose, "v", "v", false, "enable trace-level logging (sets DebugLevel to 1)")
	root.Flags().BoolVarP(&flagQuiet, "q", "q", false, "print only the final Memory, not every step")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "absint-dump:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := &config.Configuration{}
	if flagVerbose {
		cfg.DebugLevel = 1
	}
	logging.Configure(cfg)

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	steps, err := parseScript(f)
	if err != nil {
		return err
	}

	m := mem.Init()
	for _, s := range steps {
		m = s.apply(m)
		if !flagQuiet {
			fmt.Printf("%3d: %-28s -> %s\n", s.lineno, s.raw, m)
		}
	}
	if flagQuiet {
		fmt.Println(m)
	}
	return nil
}
