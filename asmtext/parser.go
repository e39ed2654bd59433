// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asmtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-interpreter/peephole/code"
)

// simpleKinds lists the zero-operand mnemonics: add, sub, dup, return,
// and so on. Anything not in this table, not a label definition, and
// not one of the explicitly handled operand-carrying mnemonics below is
// a parse error.
var simpleKinds = map[string]code.Kind{
	"add": code.Add, "sub": code.Sub, "mul": code.Mul, "div": code.Div, "rem": code.Rem,
	"neg": code.Neg, "i2c": code.I2C,
	"dup": code.Dup, "pop": code.Pop, "swap": code.Swap,
	"return": code.ReturnVoid, "ireturn": code.ReturnInt, "areturn": code.ReturnRef,
	"push_null": code.PushNull,
	"nop":       code.Nop,
}

var branchKinds = map[string]code.Kind{
	"goto": code.Goto, "ifzero": code.IfZero, "ifnonzero": code.IfNonZero,
	"ifnull": code.IfNull, "ifnonnull": code.IfNonNull,
	"icmpeq": code.ICmpEq, "icmpne": code.ICmpNe,
	"icmplt": code.ICmpLt, "icmple": code.ICmpLe, "icmpgt": code.ICmpGt, "icmpge": code.ICmpGe,
	"acmpeq": code.ACmpEq, "acmpne": code.ACmpNe,
}

var slotKinds = map[string]func(slot int, next *code.Instr) *code.Instr{
	"load_int":  code.NewLoadInt,
	"store_int": code.NewStoreInt,
	"load_ref":  code.NewLoadRef,
	"store_ref": code.NewStoreRef,
}

var descriptorKinds = map[string]code.Kind{
	"getfield": code.GetField, "putfield": code.PutField,
	"invokevirtual": code.InvokeVirtual, "invokenonvirtual": code.InvokeNonVirtual,
	"new": code.New, "instanceof": code.InstanceOf, "checkcast": code.CheckCast,
}

// ParseError reports a syntax problem at a source position.
type ParseError struct {
	Line, Column int
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("asmtext: line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse reads a complete .pasm listing and returns the code.Stream it
// describes. Labels may be referenced before their defining line; every
// reference is resolved once the whole chain is built, mirroring
// code.NewStream's own two-pass construction.
func Parse(src []byte) (*code.Stream, error) {
	p := &parser{scanner: NewScanner(src)}
	p.advance()
	head, err := p.parseLines()
	if err != nil {
		return nil, err
	}
	if len(p.scanner.Errors) > 0 {
		return nil, p.scanner.Errors[0]
	}
	s := code.NewStream(head)
	if err := validateLabels(s); err != nil {
		return nil, err
	}
	return s, nil
}

// validateLabels reports the first reference to a label with no
// defining line; code.NewStream itself stays silent about this (it
// only counts references against labels it already knows), so a
// listing with a typo'd label would otherwise optimize silently with a
// reference count nothing in the stream actually backs.
func validateLabels(s *code.Stream) error {
	for n := s.Head; n != nil; n = n.Next {
		if l, ok := code.UsesLabel(n); ok {
			if _, err := s.Destination(l); err != nil {
				return fmt.Errorf("asmtext: %v", err)
			}
		}
	}
	return nil
}

type parser struct {
	scanner *Scanner
	tok     *Token
}

func (p *parser) advance() { p.tok = p.scanner.Next() }

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: p.tok.Line, Column: p.tok.Column, Msg: fmt.Sprintf(format, args...)}
}

// parseLines consumes lines until EOF, linking each parsed instruction
// to the next and returning the chain's head.
func (p *parser) parseLines() (*code.Instr, error) {
	var head, tail *code.Instr
	appendNode := func(n *code.Instr) {
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
	}

	for {
		for p.tok.Kind == NEWLINE {
			p.advance()
		}
		if p.tok.Kind == EOF {
			break
		}
		n, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		if n != nil {
			appendNode(n)
		}
		if p.tok.Kind != NEWLINE && p.tok.Kind != EOF {
			return nil, p.errorf("expected end of line, got %s", p.tok)
		}
	}
	return head, nil
}

func (p *parser) parseLine() (*code.Instr, error) {
	tok := p.tok
	switch tok.Kind {
	case LABELDEF:
		l, err := parseLabelID(tok.Text)
		if err != nil {
			return nil, p.errorf("%s", err)
		}
		p.advance()
		return code.NewLabel(l, nil), nil
	case IDENT:
		return p.parseInstruction(tok.Text)
	default:
		return nil, p.errorf("expected a mnemonic or label definition, got %s", tok)
	}
}

func (p *parser) parseInstruction(mnemonic string) (*code.Instr, error) {
	p.advance() // consume the mnemonic

	if k, ok := simpleKinds[mnemonic]; ok {
		return code.NewSimple(k, nil), nil
	}
	if k, ok := branchKinds[mnemonic]; ok {
		l, err := p.parseLabelOperand()
		if err != nil {
			return nil, err
		}
		return code.NewBranch(k, l, nil), nil
	}
	if ctor, ok := slotKinds[mnemonic]; ok {
		slot, err := p.parseIntOperand()
		if err != nil {
			return nil, err
		}
		return ctor(int(slot), nil), nil
	}
	if k, ok := descriptorKinds[mnemonic]; ok {
		str, err := p.parseStringOperand()
		if err != nil {
			return nil, err
		}
		return code.NewDescriptor(k, str, nil), nil
	}
	switch mnemonic {
	case "push_int":
		v, err := p.parseIntOperand()
		if err != nil {
			return nil, err
		}
		return code.NewPushInt(v, nil), nil
	case "push_string":
		str, err := p.parseStringOperand()
		if err != nil {
			return nil, err
		}
		return code.NewPushString(str, nil), nil
	case "inc":
		slot, err := p.parseIntOperand()
		if err != nil {
			return nil, err
		}
		delta, err := p.parseIntOperand()
		if err != nil {
			return nil, err
		}
		return code.NewInc(int(slot), delta, nil), nil
	}
	return nil, p.errorf("unknown mnemonic %q", mnemonic)
}

func (p *parser) parseIntOperand() (int32, error) {
	if p.tok.Kind != INT {
		return 0, p.errorf("expected an integer operand, got %s", p.tok)
	}
	v, err := strconv.ParseInt(p.tok.Text, 10, 32)
	if err != nil {
		return 0, p.errorf("invalid integer literal %q", p.tok.Text)
	}
	p.advance()
	return int32(v), nil
}

func (p *parser) parseStringOperand() (string, error) {
	if p.tok.Kind != STRING {
		return "", p.errorf("expected a string operand, got %s", p.tok)
	}
	s := p.tok.Text
	p.advance()
	return s, nil
}

func (p *parser) parseLabelOperand() (code.LabelID, error) {
	if p.tok.Kind != IDENT {
		return 0, p.errorf("expected a label reference, got %s", p.tok)
	}
	l, err := parseLabelID(p.tok.Text)
	if err != nil {
		return 0, p.errorf("%s", err)
	}
	p.advance()
	return l, nil
}

// parseLabelID parses the "L<n>" form shared by label definitions and
// label references.
func parseLabelID(text string) (code.LabelID, error) {
	if !strings.HasPrefix(text, "L") {
		return 0, fmt.Errorf("expected a label of the form L<n>, got %q", text)
	}
	n, err := strconv.Atoi(text[1:])
	if err != nil {
		return 0, fmt.Errorf("expected a label of the form L<n>, got %q", text)
	}
	return code.LabelID(n), nil
}
