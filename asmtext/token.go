// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asmtext implements a small line-oriented textual notation for
// code.Stream: one mnemonic per line, labels written as "L<n>:", so the
// optimizer can be exercised from a file instead of only from
// constructed code.Stream values. The grammar is this repository's own;
// it does not reproduce JOOS/JVM assembly syntax.
package asmtext

import "fmt"

// Token is a single lexical token: its kind, its text (for a STRING, the
// literal's contents with quotes removed and escapes decoded), and its
// source position.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

func (t *Token) String() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("<%s %q>", t.Kind, t.Text)
}

// TokenKind discriminates the lexical category of a Token. A mnemonic
// is scanned as an IDENT carrying the instruction name in Text; the
// parser maps that name to a code.Kind.
type TokenKind int

const (
	EOF TokenKind = iota
	NEWLINE
	IDENT     // bare word: a mnemonic, or a label reference like L3
	LABELDEF  // "L3:" — a label definition
	INT       // signed decimal integer literal
	STRING    // double-quoted descriptor/string literal
)

var tokenKindNames = map[TokenKind]string{
	EOF:      "EOF",
	NEWLINE:  "NEWLINE",
	IDENT:    "IDENT",
	LABELDEF: "LABELDEF",
	INT:      "INT",
	STRING:   "STRING",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}
