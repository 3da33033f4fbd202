// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package itv

import "math/big"

func decrement(n *big.Int) *big.Int { return new(big.Int).Sub(n, big.NewInt(1)) }
func increment(n *big.Int) *big.Int { return new(big.Int).Add(n, big.NewInt(1)) }
