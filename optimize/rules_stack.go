// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// simplifyDupXXXPop collapses dup;X;pop into X whenever X is a normal
// (non-branching, non-terminating) instruction that consumes exactly
// the value dup just duplicated and leaves nothing extra behind: net
// effect delta -1, reading exactly one stack value. Per patterns.h's
// simplify_dup_xxx_pop; the precondition is expressed against this
// package's own StackEffect convention (delta/used/affected), not
// against the original C's stack_effect call signature, since the sign
// and magnitude conventions differ between the two.
func simplifyDupXXXPop(s *code.Stream, cur **code.Instr) bool {
	if !code.IsDup(*cur) {
		return false
	}
	x := (*cur).Next
	if x == nil {
		return false
	}
	class, delta, used, _ := code.StackEffect(x)
	if class != code.Normal || delta != -1 || used != 1 {
		return false
	}
	if !code.IsPop(x.Next) {
		return false
	}
	return s.Replace(cur, 3, cloneInstr(x))
}

// simplifyMemberStore drops the dup/pop bracketing a member-store
// sequence that was generated for statement context (the pushed value
// is never used): dup;load_ref k;swap;putfield f;pop becomes
// load_ref k;swap;putfield f. Per patterns.h's simplify_member_store.
func simplifyMemberStore(s *code.Stream, cur **code.Instr) bool {
	if !code.IsDup(*cur) {
		return false
	}
	n1 := (*cur).Next
	k, ok := code.IsLoadRef(n1)
	if !ok {
		return false
	}
	n2 := n1.Next
	if !code.IsSwap(n2) {
		return false
	}
	n3 := n2.Next
	if n3 == nil || n3.Kind != code.PutField {
		return false
	}
	if !code.IsPop(n3.Next) {
		return false
	}
	return s.Replace(cur, 5, code.NewLoadRef(k, code.NewSimple(code.Swap, code.NewDescriptor(code.PutField, n3.StrVal, nil))))
}

// dupPop removes a dup immediately discarded by pop, per patterns.h's
// dup_pop/remove_dup_pop (the catalog carries both names for the same
// rewrite; this package registers it once as dup_pop).
func dupPop(s *code.Stream, cur **code.Instr) bool {
	if !code.IsDup(*cur) {
		return false
	}
	if !code.IsPop((*cur).Next) {
		return false
	}
	return s.Replace(cur, 2, nil)
}

// basicUnswap drops a swap that follows two independent pure push
// expressions by reordering the pushes themselves: #1;#2;swap becomes
// #2;#1. Per patterns.h's basic_unswap, which deletes the swap node
// outright rather than reproducing it; keeping the swap here would both
// invert the resulting stack order (#1 below #2, not #2 below #1) and
// leave a new #2;#1;swap window that matches this same rule again,
// looping forever.
func basicUnswap(s *code.Stream, cur **code.Instr) bool {
	c1 := *cur
	if !code.IsPureSinglePush(c1) {
		return false
	}
	c2 := c1.Next
	if !code.IsPureSinglePush(c2) {
		return false
	}
	swap := c2.Next
	if !code.IsSwap(swap) {
		return false
	}
	newHead := cloneInstr(c2)
	newHead.Next = cloneInstr(c1)
	return s.Replace(cur, 3, newHead)
}

// basicExpressionPop removes a pure single-push expression immediately
// discarded by pop (patterns.h's basic_expression_pop).
func basicExpressionPop(s *code.Stream, cur **code.Instr) bool {
	if !code.IsPureSinglePush(*cur) {
		return false
	}
	if !code.IsPop((*cur).Next) {
		return false
	}
	return s.Replace(cur, 2, nil)
}
