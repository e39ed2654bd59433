// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package code_test

import (
	"testing"

	"github.com/go-interpreter/peephole/code"
)

func TestIsPushIntExtractsValue(t *testing.T) {
	n := code.NewPushInt(42, nil)
	v, ok := code.IsPushInt(n)
	if !ok || v != 42 {
		t.Fatalf("IsPushInt(push_int 42) = (%d, %v), want (42, true)", v, ok)
	}
	if _, ok := code.IsPushInt(code.NewSimple(code.Pop, nil)); ok {
		t.Fatalf("IsPushInt matched a pop")
	}
	if _, ok := code.IsPushInt(nil); ok {
		t.Fatalf("IsPushInt matched nil")
	}
}

func TestIsPushStringExtractsValue(t *testing.T) {
	n := code.NewPushString("hi", nil)
	v, ok := code.IsPushString(n)
	if !ok || v != "hi" {
		t.Fatalf("IsPushString = (%q, %v), want (\"hi\", true)", v, ok)
	}
}

func TestIsPushNull(t *testing.T) {
	if !code.IsPushNull(code.NewSimple(code.PushNull, nil)) {
		t.Fatalf("IsPushNull did not match push_null")
	}
	if code.IsPushNull(code.NewSimple(code.Pop, nil)) {
		t.Fatalf("IsPushNull matched pop")
	}
}

func TestSlotPredicates(t *testing.T) {
	if slot, ok := code.IsLoadInt(code.NewLoadInt(3, nil)); !ok || slot != 3 {
		t.Fatalf("IsLoadInt = (%d, %v), want (3, true)", slot, ok)
	}
	if slot, ok := code.IsStoreInt(code.NewStoreInt(4, nil)); !ok || slot != 4 {
		t.Fatalf("IsStoreInt = (%d, %v), want (4, true)", slot, ok)
	}
	if slot, ok := code.IsLoadRef(code.NewLoadRef(5, nil)); !ok || slot != 5 {
		t.Fatalf("IsLoadRef = (%d, %v), want (5, true)", slot, ok)
	}
	if slot, ok := code.IsStoreRef(code.NewStoreRef(6, nil)); !ok || slot != 6 {
		t.Fatalf("IsStoreRef = (%d, %v), want (6, true)", slot, ok)
	}
	if _, ok := code.IsLoadInt(code.NewLoadRef(5, nil)); ok {
		t.Fatalf("IsLoadInt matched a load_ref")
	}
}

func TestArithmeticPredicates(t *testing.T) {
	cases := []struct {
		k    code.Kind
		pred func(*code.Instr) bool
	}{
		{code.Add, code.IsAdd},
		{code.Sub, code.IsSub},
		{code.Mul, code.IsMul},
		{code.Div, code.IsDiv},
		{code.Rem, code.IsRem},
		{code.Neg, code.IsNeg},
		{code.I2C, code.IsI2C},
	}
	for _, c := range cases {
		n := code.NewSimple(c.k, nil)
		if !c.pred(n) {
			t.Errorf("predicate for %v did not match its own kind", c.k)
		}
		if c.pred(code.NewSimple(code.Nop, nil)) {
			t.Errorf("predicate for %v matched nop", c.k)
		}
	}
}

func TestStackPredicates(t *testing.T) {
	if !code.IsDup(code.NewSimple(code.Dup, nil)) {
		t.Fatalf("IsDup did not match dup")
	}
	if !code.IsPop(code.NewSimple(code.Pop, nil)) {
		t.Fatalf("IsPop did not match pop")
	}
	if !code.IsSwap(code.NewSimple(code.Swap, nil)) {
		t.Fatalf("IsSwap did not match swap")
	}
}

func TestIsGoto(t *testing.T) {
	l, ok := code.IsGoto(code.NewBranch(code.Goto, 7, nil))
	if !ok || l != 7 {
		t.Fatalf("IsGoto = (%d, %v), want (7, true)", l, ok)
	}
	if _, ok := code.IsGoto(code.NewBranch(code.IfZero, 7, nil)); ok {
		t.Fatalf("IsGoto matched a conditional branch")
	}
}

func TestIsLabel(t *testing.T) {
	l, ok := code.IsLabel(code.NewLabel(2, nil))
	if !ok || l != 2 {
		t.Fatalf("IsLabel = (%d, %v), want (2, true)", l, ok)
	}
	if _, ok := code.IsLabel(code.NewSimple(code.Nop, nil)); ok {
		t.Fatalf("IsLabel matched a non-label node")
	}
}

func TestIsCond(t *testing.T) {
	k, l, ok := code.IsCond(code.NewBranch(code.IfNonZero, 9, nil))
	if !ok || k != code.IfNonZero || l != 9 {
		t.Fatalf("IsCond = (%v, %d, %v), want (IfNonZero, 9, true)", k, l, ok)
	}
	if _, _, ok := code.IsCond(code.NewBranch(code.Goto, 9, nil)); ok {
		t.Fatalf("IsCond matched an unconditional goto")
	}
}

func TestIsReturnVoidAndIsNop(t *testing.T) {
	if !code.IsReturnVoid(code.NewSimple(code.ReturnVoid, nil)) {
		t.Fatalf("IsReturnVoid did not match return")
	}
	if !code.IsNop(code.NewSimple(code.Nop, nil)) {
		t.Fatalf("IsNop did not match nop")
	}
	if code.IsReturnVoid(code.NewSimple(code.Nop, nil)) {
		t.Fatalf("IsReturnVoid matched nop")
	}
}

func TestUsesLabel(t *testing.T) {
	l, ok := code.UsesLabel(code.NewBranch(code.IfZero, 5, nil))
	if !ok || l != 5 {
		t.Fatalf("UsesLabel = (%d, %v), want (5, true)", l, ok)
	}
	if _, ok := code.UsesLabel(code.NewSimple(code.Add, nil)); ok {
		t.Fatalf("UsesLabel matched a non-label-using instruction")
	}
}

func TestIsPureSinglePush(t *testing.T) {
	pure := []*code.Instr{
		code.NewPushInt(1, nil),
		code.NewPushString("s", nil),
		code.NewPushNull(nil),
		code.NewLoadInt(0, nil),
		code.NewLoadRef(0, nil),
	}
	for _, n := range pure {
		if !code.IsPureSinglePush(n) {
			t.Errorf("IsPureSinglePush(%v) = false, want true", n.Kind)
		}
	}
	impure := []*code.Instr{
		code.NewSimple(code.Dup, nil),
		code.NewSimple(code.Add, nil),
		nil,
	}
	for _, n := range impure {
		if code.IsPureSinglePush(n) {
			t.Errorf("IsPureSinglePush(%v) = true, want false", n)
		}
	}
}
