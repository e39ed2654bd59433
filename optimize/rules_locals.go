// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// simplifyAstoreAload turns store_ref k;load_ref k (same slot) into
// dup;store_ref k, since the stored value is immediately reloaded —
// patterns.h's simplify_astore_aload.
func simplifyAstoreAload(s *code.Stream, cur **code.Instr) bool {
	a, ok := code.IsStoreRef(*cur)
	if !ok {
		return false
	}
	b, ok := code.IsLoadRef((*cur).Next)
	if !ok || a != b {
		return false
	}
	return s.Replace(cur, 2, code.NewSimple(code.Dup, code.NewStoreRef(a, nil)))
}

// simplifyIstoreIload is simplifyAstoreAload's int-local counterpart
// (patterns.h's simplify_istore_iload).
func simplifyIstoreIload(s *code.Stream, cur **code.Instr) bool {
	a, ok := code.IsStoreInt(*cur)
	if !ok {
		return false
	}
	b, ok := code.IsLoadInt((*cur).Next)
	if !ok || a != b {
		return false
	}
	return s.Replace(cur, 2, code.NewSimple(code.Dup, code.NewStoreInt(a, nil)))
}

// simplifyAloadAstore removes load_ref k;store_ref k (same slot): the
// value is loaded only to be stored back unchanged (patterns.h's
// simplify_aload_astore).
func simplifyAloadAstore(s *code.Stream, cur **code.Instr) bool {
	a, ok := code.IsLoadRef(*cur)
	if !ok {
		return false
	}
	b, ok := code.IsStoreRef((*cur).Next)
	if !ok || a != b {
		return false
	}
	return s.Replace(cur, 2, nil)
}

// simplifyIloadIstore is simplifyAloadAstore's int-local counterpart
// (patterns.h's simplify_iload_istore).
func simplifyIloadIstore(s *code.Stream, cur **code.Instr) bool {
	a, ok := code.IsLoadInt(*cur)
	if !ok {
		return false
	}
	b, ok := code.IsStoreInt((*cur).Next)
	if !ok || a != b {
		return false
	}
	return s.Replace(cur, 2, nil)
}
