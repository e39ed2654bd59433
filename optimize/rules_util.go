// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// cloneInstr copies n's kind and operand fields into a fresh node with a
// nil successor. Used by rules that retarget a single node in place
// (goto-chasing, label fusion): going through Stream.ReplaceModified
// with a one-node clone keeps the splice bookkeeping (and the edits
// counters) in one place rather than hand-rolling pointer surgery
// alongside it.
func cloneInstr(n *code.Instr) *code.Instr {
	return &code.Instr{
		Kind:   n.Kind,
		IntVal: n.IntVal,
		StrVal: n.StrVal,
		Slot:   n.Slot,
		Lbl:    n.Lbl,
	}
}
