// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging provides the domain's debug-gated diagnostic output.
//
// It plays the role the teacher package's validate.PrintDebugInfo +
// package-level *log.Logger played: a single place that every lattice
// package calls into, so that turning tracing on or off is a one-line
// change at the call site instead of a scattered series of "if debug"
// checks.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/go-interpreter/absint/config"
)

var std = logrus.New()

func init() {
	std.SetOutput(io.Discard)
	std.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Configure points the logger at stderr or discards its output depending
// on cfg.DebugLevel and cfg.WriteHTML, mirroring validate.PrintDebugInfo
// in the teacher.
func Configure(cfg *config.Configuration) {
	if cfg.TraceEnabled() || cfg.HTMLNotesEnabled() {
		std.SetOutput(os.Stderr)
	} else {
		std.SetOutput(io.Discard)
	}
	std.SetLevel(logrus.DebugLevel)
}

// Trace logs a structured debug line gated on cfg.DebugLevel. fields may
// be nil.
func Trace(cfg *config.Configuration, msg string, fields logrus.Fields) {
	if !cfg.TraceEnabled() {
		return
	}
	std.WithFields(fields).Debug(msg)
}

// Note emits a diagnostic-only message (e.g. "pruned a multi-valued
// slot") gated on cfg.WriteHTML. These never affect analysis results;
// see spec §7.
func Note(cfg *config.Configuration, msg string, fields logrus.Fields) {
	if !cfg.HTMLNotesEnabled() {
		return
	}
	std.WithFields(fields).Info(msg)
}
