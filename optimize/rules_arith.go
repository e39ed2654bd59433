// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// constantFold folds push_int;push_int;add (or ;mul) into a single
// push_int of the computed value, per
// original_source/JOOSA-src/patterns.h's constant_fold.
func constantFold(s *code.Stream, cur **code.Instr) bool {
	a, ok := code.IsPushInt(*cur)
	if !ok {
		return false
	}
	b, ok := code.IsPushInt((*cur).Next)
	if !ok {
		return false
	}
	third := (*cur).Next.Next
	switch {
	case code.IsAdd(third):
		return s.Replace(cur, 3, code.NewPushInt(a+b, nil))
	case code.IsMul(third):
		return s.Replace(cur, 3, code.NewPushInt(a*b, nil))
	}
	return false
}

// simplifyMultiplicationRight rewrites load_int x;push_int k;mul for the
// three constants the catalog special-cases (patterns.h's
// simplify_multiplication_right): multiplying by 0 collapses to the
// constant, by 1 to the bare load, and by 2 to a self-add via dup+add
// (cheaper than a general multiply on this machine).
func simplifyMultiplicationRight(s *code.Stream, cur **code.Instr) bool {
	x, ok := code.IsLoadInt(*cur)
	if !ok {
		return false
	}
	k, ok := code.IsPushInt((*cur).Next)
	if !ok {
		return false
	}
	if !code.IsMul((*cur).Next.Next) {
		return false
	}
	switch k {
	case 0:
		return s.Replace(cur, 3, code.NewPushInt(0, nil))
	case 1:
		return s.Replace(cur, 3, code.NewLoadInt(x, nil))
	case 2:
		return s.Replace(cur, 3, code.NewLoadInt(x, code.NewSimple(code.Dup, code.NewSimple(code.Add, nil))))
	}
	return false
}

// positiveIncrement rewrites push_int k;add;store_int x (0<=k<=127) into
// store_int x;inc x k, trading a push+add+store for a dedicated
// increment — patterns.h's positive_increment, including its own
// caveat that this can grow code size when inc costs more than the
// sequence it replaces; kept anyway since the catalog ships it
// unconditionally.
func positiveIncrement(s *code.Stream, cur **code.Instr) bool {
	k, ok := code.IsPushInt(*cur)
	if !ok || k < 0 || k > 127 {
		return false
	}
	if !code.IsAdd((*cur).Next) {
		return false
	}
	x, ok := code.IsStoreInt((*cur).Next.Next)
	if !ok {
		return false
	}
	return s.Replace(cur, 3, code.NewStoreInt(x, code.NewInc(x, k, nil)))
}

// negativeIncrement is positiveIncrement's subtraction counterpart:
// push_int k;sub;store_int x (0<=k<=127) becomes store_int x;inc x -k.
func negativeIncrement(s *code.Stream, cur **code.Instr) bool {
	k, ok := code.IsPushInt(*cur)
	if !ok || k < 0 || k > 127 {
		return false
	}
	if !code.IsSub((*cur).Next) {
		return false
	}
	x, ok := code.IsStoreInt((*cur).Next.Next)
	if !ok {
		return false
	}
	return s.Replace(cur, 3, code.NewStoreInt(x, code.NewInc(x, -k, nil)))
}
