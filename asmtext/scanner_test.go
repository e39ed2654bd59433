// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asmtext_test

import (
	"testing"

	"github.com/go-interpreter/peephole/asmtext"
)

func scanAll(src string) []*asmtext.Token {
	sc := asmtext.NewScanner([]byte(src))
	var toks []*asmtext.Token
	for {
		tok := sc.Next()
		toks = append(toks, tok)
		if tok.Kind == asmtext.EOF {
			return toks
		}
	}
}

func TestScannerKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []asmtext.TokenKind
	}{
		{"push_int 1", []asmtext.TokenKind{asmtext.IDENT, asmtext.INT, asmtext.EOF}},
		{"L3:", []asmtext.TokenKind{asmtext.LABELDEF, asmtext.EOF}},
		{`push_string "foo"`, []asmtext.TokenKind{asmtext.IDENT, asmtext.STRING, asmtext.EOF}},
		{"goto L1\nL1:\nreturn", []asmtext.TokenKind{
			asmtext.IDENT, asmtext.IDENT, asmtext.NEWLINE,
			asmtext.LABELDEF, asmtext.NEWLINE,
			asmtext.IDENT, asmtext.EOF,
		}},
		{"push_int -5", []asmtext.TokenKind{asmtext.IDENT, asmtext.INT, asmtext.EOF}},
		{"; a comment\nreturn", []asmtext.TokenKind{asmtext.NEWLINE, asmtext.IDENT, asmtext.EOF}},
	}
	for _, tt := range tests {
		toks := scanAll(tt.src)
		if len(toks) != len(tt.want) {
			t.Fatalf("%q: got %d tokens, want %d (%v)", tt.src, len(toks), len(tt.want), toks)
		}
		for i, tok := range toks {
			if tok.Kind != tt.want[i] {
				t.Errorf("%q: token %d = %s, want %s", tt.src, i, tok.Kind, tt.want[i])
			}
		}
	}
}

func TestScannerIntText(t *testing.T) {
	toks := scanAll("push_int -5")
	if toks[1].Text != "-5" {
		t.Fatalf("INT token text = %q, want %q", toks[1].Text, "-5")
	}
}

func TestScannerStringEscapes(t *testing.T) {
	toks := scanAll(`push_string "a\"b"`)
	if toks[1].Text != `a"b` {
		t.Fatalf("STRING token text = %q, want %q", toks[1].Text, `a"b`)
	}
}

func TestScannerUnterminatedStringIsAnError(t *testing.T) {
	sc := asmtext.NewScanner([]byte(`push_string "oops`))
	for {
		tok := sc.Next()
		if tok.Kind == asmtext.EOF {
			break
		}
	}
	if len(sc.Errors) == 0 {
		t.Fatalf("expected an error for an unterminated string literal")
	}
}
