// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package code

// Classification groups instruction kinds for the purposes of
// StackEffect's caller: whether a node can redirect control flow
// (JumpOrConditional), marks a position other instructions can target
// (LabelClass), never falls through (Terminator), or none of the above
// (Normal).
type Classification int

const (
	Normal Classification = iota
	JumpOrConditional
	LabelClass
	Terminator
)

type effect struct {
	class    Classification
	delta    int // net stack height change
	used     int // pre-existing stack values read
	affected int // stack values written as new top
}

var effects = map[Kind]effect{
	PushInt:    {Normal, 1, 0, 1},
	PushString: {Normal, 1, 0, 1},
	PushNull:   {Normal, 1, 0, 1},

	LoadInt: {Normal, 1, 0, 1},
	LoadRef: {Normal, 1, 0, 1},
	StoreInt: {Normal, -1, 1, 0},
	StoreRef: {Normal, -1, 1, 0},
	Inc:      {Normal, 0, 0, 0},

	Add: {Normal, -1, 2, 1},
	Sub: {Normal, -1, 2, 1},
	Mul: {Normal, -1, 2, 1},
	Div: {Normal, -1, 2, 1},
	Rem: {Normal, -1, 2, 1},
	Neg: {Normal, 0, 1, 1},
	I2C: {Normal, 0, 1, 1},

	Dup:  {Normal, 1, 1, 2},
	Pop:  {Normal, -1, 1, 0},
	Swap: {Normal, 0, 2, 2},

	Goto:      {JumpOrConditional, 0, 0, 0},
	IfZero:    {JumpOrConditional, -1, 1, 0},
	IfNonZero: {JumpOrConditional, -1, 1, 0},
	IfNull:    {JumpOrConditional, -1, 1, 0},
	IfNonNull: {JumpOrConditional, -1, 1, 0},
	ICmpEq:    {JumpOrConditional, -2, 2, 0},
	ICmpNe:    {JumpOrConditional, -2, 2, 0},
	ICmpLt:    {JumpOrConditional, -2, 2, 0},
	ICmpLe:    {JumpOrConditional, -2, 2, 0},
	ICmpGt:    {JumpOrConditional, -2, 2, 0},
	ICmpGe:    {JumpOrConditional, -2, 2, 0},
	ACmpEq:    {JumpOrConditional, -2, 2, 0},
	ACmpNe:    {JumpOrConditional, -2, 2, 0},

	ReturnVoid: {Terminator, 0, 0, 0},
	ReturnInt:  {Terminator, -1, 1, 0},
	ReturnRef:  {Terminator, -1, 1, 0},

	Label: {LabelClass, 0, 0, 0},

	GetField:         {Normal, 0, 1, 1},
	PutField:         {Normal, -2, 2, 0},
	InvokeVirtual:    {Normal, 0, 0, 0},
	InvokeNonVirtual: {Normal, 0, 0, 0},
	New:              {Normal, 1, 0, 1},
	InstanceOf:       {Normal, 0, 1, 1},
	CheckCast:        {Normal, 0, 1, 1},

	Nop: {Normal, 0, 0, 0},
}

// StackEffect classifies node and reports its net operand-stack height
// change (delta), the number of pre-existing stack values it reads
// (used), and the number of values it writes as new top-of-stack
// (affected), per spec.md §4.1.
//
// Call arity is not modeled here (delta/used/affected are all reported
// as 0 for InvokeVirtual/InvokeNonVirtual, whatever the descriptor),
// and field access is tabulated as a single-slot value: no rule in the catalog
// needs anything finer than what's tabulated, since the only precondition
// that consults StackEffect is the "dup;X;pop" collapse, which never
// matches field/call instructions.
func StackEffect(n *Instr) (class Classification, delta, used, affected int) {
	e, ok := effects[n.Kind]
	if !ok {
		return Normal, 0, 0, 0
	}
	return e.class, e.delta, e.used, e.affected
}
