// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// deadStoreBudget bounds the forward walk removeDeadStore performs
// before giving up and assuming the slot might still be live, per
// spec.md §4.4 (a deliberate widening of patterns.h's own N_LOOKAHEAD
// of 32, chosen there only to keep JOOSA's unoptimized recursive walk
// fast on 1997 hardware).
const deadStoreBudget = 200

// removeDeadStore replaces a store to a local that is never loaded
// before either the method returns or the slot is overwritten, per
// spec.md §4.4 / patterns.h's remove_dead_store. store_int/store_ref
// become a single pop, since the value they would have stored is still
// produced on the stack and must be discarded to keep stack height
// correct; inc (which has no stack operand) is simply deleted.
func removeDeadStore(s *code.Stream, cur **code.Instr) bool {
	n := *cur
	var (
		k     int
		isInc bool
	)
	switch {
	case n == nil:
		return false
	case n.Kind == code.StoreInt, n.Kind == code.StoreRef:
		k = n.Slot
	case n.Kind == code.Inc:
		k = n.Slot
		isInc = true
	default:
		return false
	}

	budget := deadStoreBudget
	if !deadStoreDead(s, n.Next, k, &budget) {
		return false
	}
	if isInc {
		return s.Replace(cur, 1, nil)
	}
	return s.Replace(cur, 1, code.NewSimple(code.Pop, nil))
}

// deadStoreDead reports whether no path forward from n can observe
// slot k's current value before it is either overwritten or the method
// returns, within the remaining budget. A conditional branch forks the
// walk across both the fallthrough and the branch target; both must
// succeed. Per spec.md §4.4 / patterns.h's check_no_loads, the slot is
// checked by number only, not by the type of the store under test:
// reaching load_int k or load_ref k is a failure, and reaching
// store_int k or store_ref k is a success, regardless of which store
// kind started the walk, since the code generator may reuse a slot
// number across an int and a ref binding within one method body.
// Reaching another inc on k is conservatively treated the same as a
// load: inc reads the slot's current value before writing it back, so
// it is a genuine use even though it is neither load_int nor load_ref —
// patterns.h's own check_no_loads predates inc and does not account for
// it; spec.md is silent on the point, so this is resolved here in
// favor of soundness over the extra optimizations it costs.
func deadStoreDead(s *code.Stream, n *code.Instr, k int, budget *int) bool {
	*budget--
	if *budget <= 0 {
		return false
	}
	if n != nil && (n.Kind == code.LoadInt || n.Kind == code.LoadRef) && n.Slot == k {
		return false
	}
	if n != nil && n.Kind == code.Inc && n.Slot == k {
		return false
	}
	if n == nil {
		return true
	}
	if n.Kind == code.ReturnVoid || n.Kind == code.ReturnInt || n.Kind == code.ReturnRef {
		return true
	}
	if (n.Kind == code.StoreInt || n.Kind == code.StoreRef) && n.Slot == k {
		return true
	}
	if l, ok := code.IsGoto(n); ok {
		dest, err := s.Destination(l)
		if err != nil {
			return false
		}
		return deadStoreDead(s, dest, k, budget)
	}
	if l, ok := code.UsesLabel(n); ok {
		dest, err := s.Destination(l)
		if err != nil {
			return false
		}
		return deadStoreDead(s, n.Next, k, budget) &&
			deadStoreDead(s, dest, k, budget)
	}
	return deadStoreDead(s, n.Next, k, budget)
}
