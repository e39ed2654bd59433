// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/go-interpreter/peephole/code"

// factorEligible reports whether a node's kind belongs to the equality
// class a factoring rule is permitted to merge on, per spec.md §4.3's
// two equality predicates (code.IsSafeToFactor/IsRiskyToFactor).
func factorEligible(k code.Kind, risky bool) bool {
	if risky {
		return code.IsRiskyToFactor(k)
	}
	return code.IsSafeToFactor(k)
}

// factorInstructionBeforeGoto implements spec.md §4.3's factor-before-
// goto variant (patterns.h's factor_instruction, generalized with the
// risky/safe equality choice): X;goto L1, with a later equal X followed
// by goto L2 or directly by label L2 where L1==L2, is rewritten to
// goto L3 where L3 is a fresh label spliced in immediately before the
// second X. The second X and its tail are left untouched; only the
// first occurrence collapses to a jump into it.
func factorInstructionBeforeGoto(risky bool) Matcher {
	return func(s *code.Stream, cur **code.Instr) bool {
		x := *cur
		if x == nil {
			return false
		}
		if _, isLabel := code.IsLabel(x); isLabel {
			return false
		}
		if !factorEligible(x.Kind, risky) {
			return false
		}
		l1, ok := code.IsGoto(x.Next)
		if !ok {
			return false
		}

		prev := x.Next
		for p := prev.Next; p != nil; prev, p = p, p.Next {
			if !code.Equal(x, p) {
				continue
			}
			matched := false
			if l2, ok := code.IsGoto(p.Next); ok && l1 == l2 {
				matched = true
			} else if l2, ok := code.IsLabel(p.Next); ok && l1 == l2 {
				matched = true
			}
			if !matched {
				continue
			}

			l3 := s.NextLabel()
			l3Code := code.NewLabel(l3, p)
			s.InsertNewLabel(l3, l3Code, 1)
			if err := s.DropLabel(l1); err != nil {
				return false
			}
			prev.Next = l3Code
			return s.Replace(cur, 2, code.NewBranch(code.Goto, l3, nil))
		}
		return false
	}
}

// factorInstructionBeforeLabel implements spec.md §4.3's factor-before-
// label variant: X;label L1, with a later equal X followed by goto L2
// where L1==L2, is rewritten so a fresh label L3 is spliced in
// immediately before the *current* X, and the later occurrence's
// X;goto L2 window collapses to goto L3. There is no patterns.h source
// for this direction; it is spec.md's explicitly named symmetric
// counterpart to factor_instruction, built the same way.
func factorInstructionBeforeLabel(risky bool) Matcher {
	return func(s *code.Stream, cur **code.Instr) bool {
		x := *cur
		if x == nil {
			return false
		}
		if _, isLabel := code.IsLabel(x); isLabel {
			return false
		}
		if !factorEligible(x.Kind, risky) {
			return false
		}
		l1, ok := code.IsLabel(x.Next)
		if !ok {
			return false
		}

		prev := x.Next
		for p := prev.Next; p != nil; prev, p = p, p.Next {
			if !code.Equal(x, p) {
				continue
			}
			l2, ok := code.IsGoto(p.Next)
			if !ok || l1 != l2 {
				continue
			}

			l3 := s.NextLabel()
			l3Code := code.NewLabel(l3, x)
			s.InsertNewLabel(l3, l3Code, 1)
			if err := s.DropLabel(l1); err != nil {
				return false
			}
			*cur = l3Code
			pSlot := &prev.Next
			return s.Replace(pSlot, 2, code.NewBranch(code.Goto, l3, nil))
		}
		return false
	}
}

// riskyFactorInstructionBeforeGoto wraps factorInstructionBeforeGoto's
// risky-equality variant so it refuses to match unless opts enables it
// (spec.md §9: shipped registered but disabled by default).
func riskyFactorInstructionBeforeGoto(opts Options) Matcher {
	inner := factorInstructionBeforeGoto(true)
	return func(s *code.Stream, cur **code.Instr) bool {
		if !opts.EnableRiskyFactoring {
			return false
		}
		return inner(s, cur)
	}
}

// riskyFactorInstructionBeforeLabel is riskyFactorInstructionBeforeGoto's
// before-label counterpart.
func riskyFactorInstructionBeforeLabel(opts Options) Matcher {
	inner := factorInstructionBeforeLabel(true)
	return func(s *code.Stream, cur **code.Instr) bool {
		if !opts.EnableRiskyFactoring {
			return false
		}
		return inner(s, cur)
	}
}
