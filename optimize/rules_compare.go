// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// simplifyIcmp0 rewrites push_int 0;icmpeq/icmpne into the cheaper
// single-operand ifzero/ifnonzero, per patterns.h's simplify_icmp_0.
func simplifyIcmp0(s *code.Stream, cur **code.Instr) bool {
	v, ok := code.IsPushInt(*cur)
	if !ok || v != 0 {
		return false
	}
	next := (*cur).Next
	switch {
	case next != nil && next.Kind == code.ICmpEq:
		return s.Replace(cur, 2, code.NewBranch(code.IfZero, next.Lbl, nil))
	case next != nil && next.Kind == code.ICmpNe:
		return s.Replace(cur, 2, code.NewBranch(code.IfNonZero, next.Lbl, nil))
	}
	return false
}

// simplifyAcmpNull is simplifyIcmp0's reference counterpart:
// push_null;acmpeq/acmpne becomes ifnull/ifnonnull, per patterns.h's
// simplify_acmp_null.
func simplifyAcmpNull(s *code.Stream, cur **code.Instr) bool {
	if !code.IsPushNull(*cur) {
		return false
	}
	next := (*cur).Next
	switch {
	case next != nil && next.Kind == code.ACmpEq:
		return s.Replace(cur, 2, code.NewBranch(code.IfNull, next.Lbl, nil))
	case next != nil && next.Kind == code.ACmpNe:
		return s.Replace(cur, 2, code.NewBranch(code.IfNonNull, next.Lbl, nil))
	}
	return false
}

// boolCmpKind reports whether n is ifzero/ifnonzero and, if so, whether
// it is the "equals zero" sense (true) or the "not equals zero" sense
// (false) plus its target label. The Go counterpart of patterns.h's
// is_boolcmp/makeCODEboolcmp pair, folded into one query plus a
// constructor switch at each call site.
func boolCmpKind(n *code.Instr) (isEq bool, l code.LabelID, ok bool) {
	if n == nil {
		return false, 0, false
	}
	switch n.Kind {
	case code.IfZero:
		return true, n.Lbl, true
	case code.IfNonZero:
		return false, n.Lbl, true
	}
	return false, 0, false
}

func makeBoolCmp(isEq bool, l code.LabelID, next *code.Instr) *code.Instr {
	if isEq {
		return code.NewBranch(code.IfZero, l, next)
	}
	return code.NewBranch(code.IfNonZero, l, next)
}

// simplifyDupIfeqIfeq collapses
//
//	dup
//	ifzero/ifnonzero L1
//	pop
//	...
//	L1:
//	ifzero/ifnonzero L2   (same sense as above)
//
// into a single branch straight to L2, per patterns.h's
// simplify_dup_ifeq_ifeq: once the duplicated value is known to decide
// the first branch, popping it and testing the very same condition
// again at L1 is redundant.
func simplifyDupIfeqIfeq(s *code.Stream, cur **code.Instr) bool {
	aEq, l1, l2, ok := dupIfeqWindow(s, cur)
	if !ok {
		return false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false
	}
	bEq, _, ok := boolCmpKind(dest1.Next)
	if !ok || aEq != bEq {
		return false
	}
	if err := s.DropLabel(l1); err != nil {
		return false
	}
	if err := s.CopyLabel(l2); err != nil {
		return false
	}
	return s.Replace(cur, 3, makeBoolCmp(aEq, l2, nil))
}

// simplifyDupIfeqIfne is simplifyDupIfeqIfeq's sibling for the case
// where the second branch tests the opposite sense: the two conditions
// can't be merged into one branch, but the dup/pop bracket is still
// removable by introducing a fresh label that lands just past the
// second branch (patterns.h's simplify_dup_ifeq_ifne).
func simplifyDupIfeqIfne(s *code.Stream, cur **code.Instr) bool {
	aEq, l1, _, ok := dupIfeqWindow(s, cur)
	if !ok {
		return false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false
	}
	bEq, _, ok := boolCmpKind(dest1.Next)
	if !ok || aEq == bEq {
		return false
	}
	if err := s.DropLabel(l1); err != nil {
		return false
	}
	l3 := s.NextLabel()
	secondBranch := dest1.Next
	l3Code := code.NewLabel(l3, secondBranch.Next)
	s.InsertNewLabel(l3, l3Code, 1)
	secondBranch.Next = l3Code
	return s.Replace(cur, 3, makeBoolCmp(aEq, l3, nil))
}

// dupIfeqWindow matches the shared dup;ifzero/ifnonzero L1;pop prefix
// of simplifyDupIfeqIfeq/simplifyDupIfeqIfne and resolves L1's
// destination branch, returning the first branch's sense and both
// labels.
func dupIfeqWindow(s *code.Stream, cur **code.Instr) (aEq bool, l1, l2 code.LabelID, ok bool) {
	if !code.IsDup(*cur) {
		return false, 0, 0, false
	}
	n1 := (*cur).Next
	aEq, l1, ok = boolCmpKind(n1)
	if !ok {
		return false, 0, 0, false
	}
	if !code.IsPop(n1.Next) {
		return false, 0, 0, false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false, 0, 0, false
	}
	_, l2, ok = boolCmpKind(dest1.Next)
	if !ok {
		return false, 0, 0, false
	}
	return aEq, l1, l2, true
}

// simplifyIconst0GotoIfeq collapses
//
//	push_int 0
//	goto L1
//	...
//	L1:
//	ifzero L2
//
// into goto L2 directly: the pushed 0 makes the eventual ifzero always
// taken. Per patterns.h's simplify_iconst_0_goto_ifeq; it only covers
// the ifzero/zero case, the general case (any constant, either sense)
// is simplifyIconstGotoIfeq.
func simplifyIconst0GotoIfeq(s *code.Stream, cur **code.Instr) bool {
	v, ok := code.IsPushInt(*cur)
	if !ok || v != 0 {
		return false
	}
	l1, ok := code.IsGoto((*cur).Next)
	if !ok {
		return false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false
	}
	if dest1.Next == nil || dest1.Next.Kind != code.IfZero {
		return false
	}
	l2 := dest1.Next.Lbl
	if err := s.DropLabel(l1); err != nil {
		return false
	}
	if err := s.CopyLabel(l2); err != nil {
		return false
	}
	return s.Replace(cur, 2, code.NewBranch(code.Goto, l2, nil))
}

// simplifyIconst0GotoDupIfeq is simplifyIconst0GotoIfeq's variant for
// when the landing site also dup's the value before testing it (the
// pushed 0 is kept, since the code at L2 still consumes the value the
// dup preserved): push_int 0;goto L1 ... L1: dup;ifzero L2 becomes
// push_int 0;goto L2. Per patterns.h's simplify_iconst_0_goto_dup_ifeq.
func simplifyIconst0GotoDupIfeq(s *code.Stream, cur **code.Instr) bool {
	v, ok := code.IsPushInt(*cur)
	if !ok || v != 0 {
		return false
	}
	l1, ok := code.IsGoto((*cur).Next)
	if !ok {
		return false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false
	}
	if !code.IsDup(dest1.Next) {
		return false
	}
	ifzero := dest1.Next.Next
	if ifzero == nil || ifzero.Kind != code.IfZero {
		return false
	}
	l2 := ifzero.Lbl
	if err := s.DropLabel(l1); err != nil {
		return false
	}
	if err := s.CopyLabel(l2); err != nil {
		return false
	}
	return s.Replace(cur, 2, code.NewPushInt(0, code.NewBranch(code.Goto, l2, nil)))
}

// simplifyIconstNonzeroDupIfeqPop removes a dead guard entirely:
// push_int v (v!=0);dup;ifzero L1;pop ... L1: — since v is nonzero the
// branch is never taken and the dup/pop bracket only exists to retest
// it, so the whole window can be deleted. Per patterns.h's
// simplify_iconst_1_dup_ifeq_pop (named for its original v==1 example,
// but the C guard is any v!=0).
func simplifyIconstNonzeroDupIfeqPop(s *code.Stream, cur **code.Instr) bool {
	v, ok := code.IsPushInt(*cur)
	if !ok || v == 0 {
		return false
	}
	n1 := (*cur).Next
	if !code.IsDup(n1) {
		return false
	}
	n2 := n1.Next
	if n2 == nil || n2.Kind != code.IfZero {
		return false
	}
	if !code.IsPop(n2.Next) {
		return false
	}
	if err := s.DropLabel(n2.Lbl); err != nil {
		return false
	}
	return s.Replace(cur, 4, nil)
}

// simplifyIconstGotoIfeq generalizes simplifyIconst0GotoIfeq to any
// pushed constant and either branch sense, per patterns.h's
// simplify_iconst_goto_ifeq: when the constant's truthiness agrees with
// the eventual branch's sense the branch is always taken (retarget to
// its destination); when it disagrees the branch is never taken, so a
// fresh label is spliced in just past it to serve as the new landing
// site.
func simplifyIconstGotoIfeq(s *code.Stream, cur **code.Instr) bool {
	v1, ok := code.IsPushInt(*cur)
	if !ok {
		return false
	}
	l1, ok := code.IsGoto((*cur).Next)
	if !ok {
		return false
	}
	dest1, err := s.Destination(l1)
	if err != nil {
		return false
	}
	branchIsEq, l2, ok := boolCmpKind(dest1.Next)
	if !ok {
		return false
	}
	truthy := v1 != 0
	if err := s.DropLabel(l1); err != nil {
		return false
	}
	if truthy != branchIsEq {
		if err := s.CopyLabel(l2); err != nil {
			return false
		}
		return s.Replace(cur, 2, code.NewBranch(code.Goto, l2, nil))
	}
	l3 := s.NextLabel()
	branch := dest1.Next
	l3Code := code.NewLabel(l3, branch.Next)
	s.InsertNewLabel(l3, l3Code, 1)
	branch.Next = l3Code
	return s.Replace(cur, 2, code.NewBranch(code.Goto, l3, nil))
}

// removeIconstIfeq collapses push_int v;ifzero/ifnonzero L into an
// unconditional jump or a no-op depending on whether v's truthiness
// matches the branch's sense, per patterns.h's remove_iconst_ifeq. The
// "always taken" case needs no label-count adjustment: the deleted
// branch and the inserted goto both reference L exactly once.
func removeIconstIfeq(s *code.Stream, cur **code.Instr) bool {
	v, ok := code.IsPushInt(*cur)
	if !ok {
		return false
	}
	isEq, l, ok := boolCmpKind((*cur).Next)
	if !ok {
		return false
	}
	truthy := v != 0
	taken := truthy != isEq
	if taken {
		return s.Replace(cur, 2, code.NewBranch(code.Goto, l, nil))
	}
	if err := s.DropLabel(l); err != nil {
		return false
	}
	return s.Replace(cur, 2, nil)
}
