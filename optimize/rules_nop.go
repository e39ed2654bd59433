// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// removeNop deletes a nop placeholder once it is no longer the final
// node of the stream, per spec.md §4.3's nop-removal edge case. A nop
// at the very end is left alone: some callers rely on the stream never
// becoming completely empty (an empty method body has nowhere for
// Stream.Head to point), and a trailing nop is the code generator's own
// way of guaranteeing that.
func removeNop(s *code.Stream, cur **code.Instr) bool {
	if !code.IsNop(*cur) {
		return false
	}
	if (*cur).Next == nil {
		return false
	}
	return s.ReplaceModified(cur, 1, nil)
}
