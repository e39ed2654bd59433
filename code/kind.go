// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package code implements the mutable instruction-stream representation
// that the peephole optimizer rewrites: a singly-linked sequence of
// tagged instruction nodes plus the label registry that tracks, for
// every label identifier, its defining node and the exact number of
// instructions that still target it.
package code

// Kind discriminates the payload carried by an Instr.
type Kind int

const (
	// Stack constants.
	PushInt Kind = iota
	PushString
	PushNull

	// Locals.
	LoadInt
	StoreInt
	LoadRef
	StoreRef
	Inc

	// Arithmetic.
	Add
	Sub
	Mul
	Div
	Rem
	Neg
	I2C

	// Stack manipulation.
	Dup
	Pop
	Swap

	// Control flow.
	Goto
	IfZero
	IfNonZero
	IfNull
	IfNonNull
	ICmpEq
	ICmpNe
	ICmpLt
	ICmpLe
	ICmpGt
	ICmpGe
	ACmpEq
	ACmpNe
	ReturnVoid
	ReturnInt
	ReturnRef

	// Labels.
	Label

	// Objects/methods. Operand is a descriptor string (StrVal).
	GetField
	PutField
	InvokeVirtual
	InvokeNonVirtual
	New
	InstanceOf
	CheckCast

	// Nop is a placeholder instruction. No rule in the catalog emits
	// one; a nop in the input is deleted by remove_nop once it is no
	// longer the final node of the stream.
	Nop
)

var kindNames = map[Kind]string{
	PushInt: "push_int", PushString: "push_string", PushNull: "push_null",
	LoadInt: "load_int", StoreInt: "store_int", LoadRef: "load_ref", StoreRef: "store_ref", Inc: "inc",
	Add: "add", Sub: "sub", Mul: "mul", Div: "div", Rem: "rem", Neg: "neg", I2C: "i2c",
	Dup: "dup", Pop: "pop", Swap: "swap",
	Goto: "goto", IfZero: "ifzero", IfNonZero: "ifnonzero", IfNull: "ifnull", IfNonNull: "ifnonnull",
	ICmpEq: "icmpeq", ICmpNe: "icmpne", ICmpLt: "icmplt", ICmpLe: "icmple", ICmpGt: "icmpgt", ICmpGe: "icmpge",
	ACmpEq: "acmpeq", ACmpNe: "acmpne",
	ReturnVoid: "return", ReturnInt: "ireturn", ReturnRef: "areturn",
	Label:            "label",
	GetField:         "getfield",
	PutField:         "putfield",
	InvokeVirtual:    "invokevirtual",
	InvokeNonVirtual: "invokenonvirtual",
	New:              "new",
	InstanceOf:       "instanceof",
	CheckCast:        "checkcast",
	Nop:              "nop",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// invertTable maps each conditional-branch kind to its inverse, used by
// InvertCond.
var invertTable = map[Kind]Kind{
	IfZero: IfNonZero, IfNonZero: IfZero,
	IfNull: IfNonNull, IfNonNull: IfNull,
	ACmpEq: ACmpNe, ACmpNe: ACmpEq,
	ICmpEq: ICmpNe, ICmpNe: ICmpEq,
	ICmpLt: ICmpGe, ICmpGe: ICmpLt,
	ICmpLe: ICmpGt, ICmpGt: ICmpLe,
}

// InvertCond returns the logical inverse of a conditional-branch kind,
// per spec.md §4.3's inversion table: ifzero<->ifnonzero,
// acmpeq<->acmpne, ifnull<->ifnonnull, icmpeq<->icmpne, icmplt<->icmpge,
// icmple<->icmpgt.
func InvertCond(k Kind) (Kind, bool) {
	inv, ok := invertTable[k]
	return inv, ok
}

// IsLabelUsing reports whether a node of this kind carries a label
// operand (i.e. is a jump or conditional jump).
func IsLabelUsing(k Kind) bool {
	switch k {
	case Goto, IfZero, IfNonZero, IfNull, IfNonNull,
		ICmpEq, ICmpNe, ICmpLt, ICmpLe, ICmpGt, ICmpGe, ACmpEq, ACmpNe:
		return true
	}
	return false
}

// IsConditional reports whether a node of this kind is a conditional
// branch (as opposed to the unconditional Goto).
func IsConditional(k Kind) bool {
	return IsLabelUsing(k) && k != Goto
}

// IsTerminator reports whether control never falls through past a node
// of this kind (goto, and every flavor of return).
func IsTerminator(k Kind) bool {
	switch k {
	case Goto, ReturnVoid, ReturnInt, ReturnRef:
		return true
	}
	return false
}
