// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loc

// Exp is a front-end expression tree: a variable reference, an
// integer constant, or a unary/binary operator node. The domain never
// evaluates an Exp itself (that's the transfer function's job,
// external to this spec per §1); Exp only needs to exist so that
// call sites like Alias.StoreSimple can pattern-match "is the
// right-hand side a bare temporary".
type Exp struct {
	kind ExpKind
	id   Ident
	n    int64
}

// ExpKind distinguishes the handful of expression shapes the domain
// needs to recognize.
type ExpKind uint8

const (
	ExpVar ExpKind = iota
	ExpConst
)

// Var builds an expression that is a bare reference to a temporary.
func Var(id Ident) Exp { return Exp{kind: ExpVar, id: id} }

// Const builds an integer-literal expression.
func Const(n int64) Exp { return Exp{kind: ExpConst, n: n} }

// Kind reports which shape e has.
func (e Exp) Kind() ExpKind { return e.kind }

// AsIdent returns the temporary e refers to, when e is ExpVar.
func (e Exp) AsIdent() (Ident, bool) {
	if e.kind != ExpVar {
		return Ident{}, false
	}
	return e.id, true
}

// AsConst returns e's integer value, when e is ExpConst.
func (e Exp) AsConst() (int64, bool) {
	if e.kind != ExpConst {
		return 0, false
	}
	return e.n, true
}
