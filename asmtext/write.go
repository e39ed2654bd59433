// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asmtext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-interpreter/peephole/code"
)

// Write serializes s back to the textual notation Parse reads, one
// instruction per line. It is the inverse of Parse modulo label
// numbering, which is preserved as-is from the stream's own LabelIDs.
func Write(w io.Writer, s *code.Stream) error {
	for n := s.Head; n != nil; n = n.Next {
		line, err := formatInstr(n)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// String renders s to text in one call, for tests and quick inspection.
func String(s *code.Stream) string {
	var sb strings.Builder
	_ = Write(&sb, s)
	return sb.String()
}

func formatInstr(n *code.Instr) (string, error) {
	if n.Kind == code.Label {
		return fmt.Sprintf("L%d:", n.Lbl), nil
	}
	mnemonic := n.Kind.String()
	if _, ok := simpleKinds[mnemonic]; ok {
		return mnemonic, nil
	}
	if _, ok := branchKinds[mnemonic]; ok {
		return mnemonic + " L" + strconv.Itoa(int(n.Lbl)), nil
	}
	if _, ok := slotKinds[mnemonic]; ok {
		return mnemonic + " " + strconv.Itoa(n.Slot), nil
	}
	if _, ok := descriptorKinds[mnemonic]; ok {
		return mnemonic + " " + quote(n.StrVal), nil
	}
	switch n.Kind {
	case code.PushInt:
		return "push_int " + strconv.Itoa(int(n.IntVal)), nil
	case code.PushString:
		return "push_string " + quote(n.StrVal), nil
	case code.Inc:
		return "inc " + strconv.Itoa(n.Slot) + " " + strconv.Itoa(int(n.IntVal)), nil
	}
	return "", fmt.Errorf("asmtext: cannot format instruction kind %q", mnemonic)
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
