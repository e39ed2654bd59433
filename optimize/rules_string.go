// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// simplifyLdcStringIfnonnull drops a redundant non-null test on a
// string literal, which is never null: push_string s;dup;ifnonnull L1
// becomes push_string s;goto L1. Per patterns.h's
// simplify_ldc_string_ifnonnull. No label-count adjustment is needed:
// the deleted ifnonnull and the inserted goto reference the same L1
// exactly once each.
func simplifyLdcStringIfnonnull(s *code.Stream, cur **code.Instr) bool {
	str, ok := code.IsPushString(*cur)
	if !ok {
		return false
	}
	n1 := (*cur).Next
	if !code.IsDup(n1) {
		return false
	}
	n2 := n1.Next
	if n2 == nil || n2.Kind != code.IfNonNull {
		return false
	}
	return s.Replace(cur, 3, code.NewPushString(str, code.NewBranch(code.Goto, n2.Lbl, nil)))
}

// stringConcatDescriptor is the JVM method descriptor
// simplifyConcatStringIfnonnull recognizes: String.concat always
// returns a non-null reference, so a dup/ifnonnull guard right after
// calling it is dead.
const stringConcatDescriptor = "java/lang/String/concat(Ljava/lang/String;)Ljava/lang/String;"

// simplifyConcatStringIfnonnull is simplifyLdcStringIfnonnull's
// counterpart for String.concat's result, per patterns.h's
// simplify_concat_string_ifnonnull. Unlike the literal case, the
// invokevirtual node itself is left untouched; only the dup;ifnonnull
// pair after it is replaced, since the call's descriptor never needs
// to be reconstructed.
func simplifyConcatStringIfnonnull(s *code.Stream, cur **code.Instr) bool {
	n0 := *cur
	if n0 == nil || n0.Kind != code.InvokeVirtual || n0.StrVal != stringConcatDescriptor {
		return false
	}
	n1 := n0.Next
	if !code.IsDup(n1) {
		return false
	}
	n2 := n1.Next
	if n2 == nil || n2.Kind != code.IfNonNull {
		return false
	}
	slot := &n0.Next
	return s.Replace(slot, 2, code.NewBranch(code.Goto, n2.Lbl, nil))
}
