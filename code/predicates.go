// Copyright 1997 Laurie Hendren & Michael I. Schwartzbach (JOOS); adapted.
//
// These predicates are the Go counterpart of JOOSA's is_iload/is_ldc_int/
// is_imul family (original_source/JOOSA-src/patterns.h): a small,
// uniform way for a rule matcher to both test a node's kind and extract
// its operand in one step.

package code

// IsPushInt reports whether n is a push_int and returns its value.
func IsPushInt(n *Instr) (int32, bool) {
	if n != nil && n.Kind == PushInt {
		return n.IntVal, true
	}
	return 0, false
}

// IsPushString reports whether n is a push_string and returns its value.
func IsPushString(n *Instr) (string, bool) {
	if n != nil && n.Kind == PushString {
		return n.StrVal, true
	}
	return "", false
}

// IsPushNull reports whether n is push_null.
func IsPushNull(n *Instr) bool { return n != nil && n.Kind == PushNull }

// IsLoadInt reports whether n is load_int and returns its slot.
func IsLoadInt(n *Instr) (int, bool) {
	if n != nil && n.Kind == LoadInt {
		return n.Slot, true
	}
	return 0, false
}

// IsStoreInt reports whether n is store_int and returns its slot.
func IsStoreInt(n *Instr) (int, bool) {
	if n != nil && n.Kind == StoreInt {
		return n.Slot, true
	}
	return 0, false
}

// IsLoadRef reports whether n is load_ref and returns its slot.
func IsLoadRef(n *Instr) (int, bool) {
	if n != nil && n.Kind == LoadRef {
		return n.Slot, true
	}
	return 0, false
}

// IsStoreRef reports whether n is store_ref and returns its slot.
func IsStoreRef(n *Instr) (int, bool) {
	if n != nil && n.Kind == StoreRef {
		return n.Slot, true
	}
	return 0, false
}

func is(n *Instr, k Kind) bool { return n != nil && n.Kind == k }

// IsAdd, IsSub, IsMul, IsDiv, IsRem, IsNeg, IsI2C report whether n is the
// corresponding zero-operand arithmetic instruction.
func IsAdd(n *Instr) bool { return is(n, Add) }
func IsSub(n *Instr) bool { return is(n, Sub) }
func IsMul(n *Instr) bool { return is(n, Mul) }
func IsDiv(n *Instr) bool { return is(n, Div) }
func IsRem(n *Instr) bool { return is(n, Rem) }
func IsNeg(n *Instr) bool { return is(n, Neg) }
func IsI2C(n *Instr) bool { return is(n, I2C) }

// IsDup, IsPop, IsSwap report whether n is the corresponding
// stack-manipulation instruction.
func IsDup(n *Instr) bool  { return is(n, Dup) }
func IsPop(n *Instr) bool  { return is(n, Pop) }
func IsSwap(n *Instr) bool { return is(n, Swap) }

// IsGoto reports whether n is an unconditional jump and returns its
// target label.
func IsGoto(n *Instr) (LabelID, bool) {
	if n != nil && n.Kind == Goto {
		return n.Lbl, true
	}
	return 0, false
}

// IsLabel reports whether n is a label-definition node and returns its
// identifier.
func IsLabel(n *Instr) (LabelID, bool) {
	if n != nil && n.Kind == Label {
		return n.Lbl, true
	}
	return 0, false
}

// IsCond reports whether n is any conditional branch (not an
// unconditional goto) and returns its kind and target.
func IsCond(n *Instr) (Kind, LabelID, bool) {
	if n != nil && IsConditional(n.Kind) {
		return n.Kind, n.Lbl, true
	}
	return 0, 0, false
}

// IsReturnVoid reports whether n is the void return instruction.
func IsReturnVoid(n *Instr) bool { return is(n, ReturnVoid) }

// IsNop reports whether n is a nop placeholder.
func IsNop(n *Instr) bool { return is(n, Nop) }

// UsesLabel reports whether n is label-using (jump or conditional jump)
// and returns the label it targets.
func UsesLabel(n *Instr) (LabelID, bool) {
	if n != nil && IsLabelUsing(n.Kind) {
		return n.Lbl, true
	}
	return 0, false
}

// IsPureSinglePush reports whether n is a "pure" single-push expression
// with no side effect beyond pushing one value: push_int, push_string,
// push_null, load_int, or load_ref. Used by the pure-expression-pop and
// unswap-of-pure-pair rules.
func IsPureSinglePush(n *Instr) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case PushInt, PushString, PushNull, LoadInt, LoadRef:
		return true
	}
	return false
}
