// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asmtext_test

import (
	"strings"
	"testing"

	"github.com/go-interpreter/peephole/asmtext"
	"github.com/go-interpreter/peephole/code"
)

func TestParseGotoReturn(t *testing.T) {
	s, err := asmtext.Parse([]byte("push_int 1\ngoto L0\nL0:\nreturn\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := code.IsPushInt(s.Head); !ok || v != 1 {
		t.Fatalf("head = %+v, want push_int 1", s.Head)
	}
	if got := s.RefCount(0); got != 1 {
		t.Fatalf("RefCount(L0) = %d, want 1", got)
	}
	dst, err := s.Destination(0)
	if err != nil {
		t.Fatalf("Destination(L0): %v", err)
	}
	if dst.Next == nil || dst.Next.Kind != code.ReturnVoid {
		t.Fatalf("L0 should be followed by return, got %+v", dst.Next)
	}
}

func TestParseLocalsAndInc(t *testing.T) {
	s, err := asmtext.Parse([]byte("load_int 2\ninc 2 3\nstore_int 2\nreturn\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := s.Head
	if n.Kind != code.LoadInt || n.Slot != 2 {
		t.Fatalf("node 0 = %+v", n)
	}
	n = n.Next
	if n.Kind != code.Inc || n.Slot != 2 || n.IntVal != 3 {
		t.Fatalf("node 1 = %+v", n)
	}
	n = n.Next
	if n.Kind != code.StoreInt || n.Slot != 2 {
		t.Fatalf("node 2 = %+v", n)
	}
}

func TestParseDescriptorOperand(t *testing.T) {
	s, err := asmtext.Parse([]byte(`load_ref 0
getfield "Foo/bar:I"
areturn
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Head.Next.Kind != code.GetField || s.Head.Next.StrVal != "Foo/bar:I" {
		t.Fatalf("getfield node = %+v", s.Head.Next)
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	src := "; a leading comment\n\n  \nreturn ; trailing comment\n"
	s, err := asmtext.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Head.Kind != code.ReturnVoid || s.Head.Next != nil {
		t.Fatalf("stream = %+v, want a single return", s.Head)
	}
}

func TestParseUnknownMnemonicIsAnError(t *testing.T) {
	_, err := asmtext.Parse([]byte("frobnicate\n"))
	if err == nil {
		t.Fatalf("expected a parse error for an unknown mnemonic")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Fatalf("error = %q, want it to mention the bad mnemonic", err.Error())
	}
}

func TestParseMissingOperandIsAnError(t *testing.T) {
	_, err := asmtext.Parse([]byte("push_int\n")) // no operand follows
	if err == nil {
		t.Fatalf("expected a parse error for a missing operand")
	}
}

func TestParseUndefinedLabelIsAnError(t *testing.T) {
	_, err := asmtext.Parse([]byte("goto L9\nreturn\n"))
	if err == nil {
		t.Fatalf("expected an error: L9 is referenced but never defined")
	}
}
