// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package code

// Instr is a single instruction node in the stream: a tagged value with
// a Kind discriminant, the operand payload relevant to that kind, and
// the link to the successor node (nil at end of stream).
//
// Only the fields relevant to Kind are meaningful; this mirrors
// disasm.Instr's Op+Immediates shape rather than a Go interface per
// instruction kind; the instruction set is closed and small enough that
// a flat struct keeps every rule's pattern match a simple field read.
type Instr struct {
	Kind Kind

	IntVal int32   // PushInt, Inc (signed byte constant, but stored widened)
	StrVal string  // PushString, GetField/PutField/InvokeVirtual/InvokeNonVirtual/New/InstanceOf/CheckCast descriptor
	Slot   int     // LoadInt/StoreInt/LoadRef/StoreRef/Inc local-variable slot
	Lbl    LabelID // Goto/If*/ICmp*/ACmp* target, or Label's own identifier

	Next *Instr
}

// LabelID identifies a label. The zero value is never allocated by
// Stream.NextLabel.
type LabelID int

func newNode(k Kind) *Instr { return &Instr{Kind: k} }

// NewPushInt builds a push_int node.
func NewPushInt(v int32, next *Instr) *Instr {
	n := newNode(PushInt)
	n.IntVal = v
	n.Next = next
	return n
}

// NewPushString builds a push_string node.
func NewPushString(s string, next *Instr) *Instr {
	n := newNode(PushString)
	n.StrVal = s
	n.Next = next
	return n
}

// NewPushNull builds a push_null node.
func NewPushNull(next *Instr) *Instr {
	n := newNode(PushNull)
	n.Next = next
	return n
}

// NewLoadInt builds a load_int slot node.
func NewLoadInt(slot int, next *Instr) *Instr {
	n := newNode(LoadInt)
	n.Slot = slot
	n.Next = next
	return n
}

// NewStoreInt builds a store_int slot node.
func NewStoreInt(slot int, next *Instr) *Instr {
	n := newNode(StoreInt)
	n.Slot = slot
	n.Next = next
	return n
}

// NewLoadRef builds a load_ref slot node.
func NewLoadRef(slot int, next *Instr) *Instr {
	n := newNode(LoadRef)
	n.Slot = slot
	n.Next = next
	return n
}

// NewStoreRef builds a store_ref slot node.
func NewStoreRef(slot int, next *Instr) *Instr {
	n := newNode(StoreRef)
	n.Slot = slot
	n.Next = next
	return n
}

// NewInc builds an inc-slot-by-constant node. c must satisfy
// -128 <= c <= 127 (the rules that produce it already bound it to
// 0<=c<=127 or its negation).
func NewInc(slot int, c int32, next *Instr) *Instr {
	n := newNode(Inc)
	n.Slot = slot
	n.IntVal = c
	n.Next = next
	return n
}

// NewSimple builds a zero-operand node (add/sub/mul/div/rem/neg/i2c/dup/
// pop/swap/return{void,int,ref}/nop).
func NewSimple(k Kind, next *Instr) *Instr {
	n := newNode(k)
	n.Next = next
	return n
}

// NewBranch builds a goto or conditional-branch node targeting l.
func NewBranch(k Kind, l LabelID, next *Instr) *Instr {
	n := newNode(k)
	n.Lbl = l
	n.Next = next
	return n
}

// NewLabel builds a label-definition node carrying identifier l.
func NewLabel(l LabelID, next *Instr) *Instr {
	n := newNode(Label)
	n.Lbl = l
	n.Next = next
	return n
}

// NewDescriptor builds a getfield/putfield/invokevirtual/invokenonvirtual/
// new/instanceof/checkcast node with the given descriptor string.
func NewDescriptor(k Kind, descriptor string, next *Instr) *Instr {
	n := newNode(k)
	n.StrVal = descriptor
	n.Next = next
	return n
}

// Equal reports whether two instructions are the "safe" or "risky"
// equal (per spec.md §4.3's factoring-equality predicates) for the
// purposes of common-tail factoring: same kind and same operands.
// It does not compare Next.
func Equal(a, b *Instr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PushInt, Inc:
		return a.IntVal == b.IntVal && a.Slot == b.Slot
	case PushString:
		return a.StrVal == b.StrVal
	case LoadInt, StoreInt, LoadRef, StoreRef:
		return a.Slot == b.Slot
	case Goto, IfZero, IfNonZero, IfNull, IfNonNull,
		ICmpEq, ICmpNe, ICmpLt, ICmpLe, ICmpGt, ICmpGe, ACmpEq, ACmpNe:
		return a.Lbl == b.Lbl
	case GetField, PutField, InvokeVirtual, InvokeNonVirtual, New, InstanceOf, CheckCast:
		return a.StrVal == b.StrVal
	default:
		// Add, Sub, Mul, Div, Rem, Neg, I2C, Dup, Pop, Swap, ReturnVoid,
		// ReturnInt, ReturnRef, Nop: no operand to compare.
		return true
	}
}

// IsSafeToFactor reports whether a node's kind belongs to the "safe"
// equality class of spec.md §4.3's common-tail factoring: kinds whose
// operand-stack effect is type-stable across a control-flow merge.
func IsSafeToFactor(k Kind) bool {
	switch k {
	case Nop, I2C, Add, Sub, Mul, Div, Rem, Neg, ReturnInt, ReturnVoid,
		Dup, Swap, IfZero, IfNonZero, ICmpEq, ICmpNe, ICmpLt, ICmpLe, ICmpGt, ICmpGe,
		LoadInt, StoreInt, PushString, PushInt, Inc:
		return true
	}
	return false
}

// IsRiskyToFactor reports whether a node's kind is additionally
// permitted under the "risky" equality class: getfield/putfield/
// invokevirtual, gated on byte-equal descriptor strings (already
// enforced by Equal). These can violate stack-type verification at a
// control-flow merge and so are offered only behind
// optimize.Options.EnableRiskyFactoring.
func IsRiskyToFactor(k Kind) bool {
	if IsSafeToFactor(k) {
		return true
	}
	switch k {
	case GetField, PutField, InvokeVirtual:
		return true
	}
	return false
}
